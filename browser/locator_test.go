package browser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBy(t *testing.T) {
	assert := require.New(t)

	lower, err := NewLocator(`css`, `div#x`)
	assert.NoError(err)

	upper, err := NewLocator(`CSS`, `div#x`)
	assert.NoError(err)
	assert.Equal(lower, upper)

	for name, by := range map[string]By{
		`xpath`: ByXPath,
		`Css`:   ByCSS,
		`id`:    ByID,
		`NAME`:  ByName,
		`class`: ByClass,
		`tag`:   ByTag,
		`link`:  ByLink,
		`plink`: ByPartialLink,
	} {
		parsed, err := ParseBy(name)
		assert.NoError(err)
		assert.Equal(by, parsed)
	}

	_, err = ParseBy(`XYZ`)
	assert.Error(err)
	assert.True(IsInvalidQueryErr(err))
}

func TestParseSelectMode(t *testing.T) {
	assert := require.New(t)

	for _, name := range []string{`text`, `VALUE`, `Index`} {
		_, err := ParseSelectMode(name)
		assert.NoError(err)
	}

	_, err := ParseSelectMode(`label`)
	assert.Error(err)
}

func TestFrameRef(t *testing.T) {
	assert := require.New(t)

	byIndex := FrameByIndex(2)
	assert.True(byIndex.ByIndex())
	assert.Equal(`frame[2]`, byIndex.String())

	loc, err := NewLocator(`id`, `content`)
	assert.NoError(err)

	byLocator := FrameByLocator(loc)
	assert.False(byLocator.ByIndex())
}

func TestXPathLiteral(t *testing.T) {
	assert := require.New(t)

	assert.Equal(`'plain'`, xpathLiteral(`plain`))
	assert.Equal(`"it's"`, xpathLiteral(`it's`))
	assert.Equal(`'say "hi"'`, xpathLiteral(`say "hi"`))
	assert.Equal(`concat('a', "'", 'b"c')`, xpathLiteral(`a'b"c`))
}
