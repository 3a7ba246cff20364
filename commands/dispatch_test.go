package commands

import (
	"errors"
	"testing"

	"github.com/nelabs/webscript/browser"
	"github.com/nelabs/webscript/scripting"
	"github.com/stretchr/testify/require"
)

func dispatchLine(env *Commands, raw string) error {
	_, err := env.RunLine(scripting.Line{Number: 1, Raw: raw})
	return err
}

func TestDispatchUnknownCommand(t *testing.T) {
	assert := require.New(t)

	env, _ := newTestEnv(newMockSession())

	err := dispatchLine(env, `teleport ID box`)

	assert.Error(err)
	assert.True(errors.Is(err, ErrUnknownCommand))
}

func TestDispatchArityBounds(t *testing.T) {
	assert := require.New(t)

	env, _ := newTestEnv(newMockSession())

	err := dispatchLine(env, `click ID`)
	assert.True(errors.Is(err, ErrArgument), "too few: %v", err)

	err = dispatchLine(env, `frame_index 0 extra`)
	assert.True(errors.Is(err, ErrArgument), "too many: %v", err)

	err = dispatchLine(env, `back extra`)
	assert.True(errors.Is(err, ErrArgument), "zero-arg command given args: %v", err)
}

func TestDispatchIntegerArguments(t *testing.T) {
	assert := require.New(t)

	env, _ := newTestEnv(newMockSession())

	err := dispatchLine(env, `sleep soon`)
	assert.True(errors.Is(err, ErrArgument))

	err = dispatchLine(env, `frame_index two`)
	assert.True(errors.Is(err, ErrArgument))
}

func TestDispatchJoinsTrailingArguments(t *testing.T) {
	assert := require.New(t)

	session := newMockSession()
	session.url = `https://example.test/?q=hello world`
	box := session.addElement(`ID`, `box`, &mockElement{displayed: true, enabled: true})
	env, _ := newTestEnv(session)

	assert.NoError(dispatchLine(env, `assert_url_contains hello world`))
	assert.NoError(dispatchLine(env, `write ID box two words here`))
	assert.Equal(`two words here`, box.text)
}

func TestDispatchInvalidLocatorStrategy(t *testing.T) {
	assert := require.New(t)

	env, _ := newTestEnv(newMockSession())

	err := dispatchLine(env, `click XYZ box`)

	assert.Error(err)
	assert.True(browser.IsInvalidQueryErr(err))
}

func TestDispatchSendKeysDecodesChords(t *testing.T) {
	assert := require.New(t)

	session := newMockSession()
	box := session.addElement(`ID`, `box`, &mockElement{displayed: true, enabled: true})
	env, _ := newTestEnv(session)

	assert.NoError(dispatchLine(env, `send_keys ID box CTRL_A {ENTER}`))
	assert.Equal(1, box.clicks)
	assert.Equal([]string{`CTRL+A`, `{ENTER}`}, box.keys)

	err := dispatchLine(env, `send_keys ID box {NOT_A_KEY}`)
	assert.Error(err)
	assert.True(scripting.IsKeyDecodeErr(err))
}

func TestDispatchSelectValidatesMode(t *testing.T) {
	assert := require.New(t)

	session := newMockSession()
	session.addElement(`ID`, `menu`, &mockElement{displayed: true, enabled: true})
	env, _ := newTestEnv(session)

	assert.NoError(dispatchLine(env, `select ID menu text Oranges`))
	assert.Equal([]string{`select text Oranges`}, session.actions)

	err := dispatchLine(env, `select ID menu color red`)
	assert.True(errors.Is(err, ErrArgument), "bad mode: %v", err)

	err = dispatchLine(env, `select ID menu index third`)
	assert.True(errors.Is(err, ErrArgument), "non-integer index: %v", err)
}

func TestDispatchCookieCommands(t *testing.T) {
	assert := require.New(t)

	session := newMockSession()
	env, out := newTestEnv(session)

	assert.NoError(dispatchLine(env, `cookie_set token abc123`))
	assert.Equal(`abc123`, session.cookies[`token`].Value)

	assert.NoError(dispatchLine(env, `cookies_set "a:1; b:2"`))
	assert.Equal(`1`, session.cookies[`a`].Value)
	assert.Equal(`2`, session.cookies[`b`].Value)

	err := dispatchLine(env, `cookies_set "malformed"`)
	assert.True(errors.Is(err, ErrArgument))

	assert.NoError(dispatchLine(env, `cookie_get token`))
	assert.Contains(out.String(), `token=abc123`)

	assert.NoError(dispatchLine(env, `cookie_delete token`))
	assert.Nil(session.cookies[`token`])

	assert.NoError(dispatchLine(env, `cookie_clear`))
	assert.Empty(session.cookies)
}

func TestDispatchUploadRequiresExistingFile(t *testing.T) {
	assert := require.New(t)

	session := newMockSession()
	session.addElement(`ID`, `file`, &mockElement{displayed: true, enabled: true})
	env, _ := newTestEnv(session)

	err := dispatchLine(env, `upload ID file /no/such/file.zip`)

	assert.Error(err)
	assert.True(errors.Is(err, browser.ErrFileNotFound))
}
