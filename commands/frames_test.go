package commands

import (
	"errors"
	"testing"

	"github.com/nelabs/webscript/browser"
	"github.com/stretchr/testify/require"
)

func TestFrameStackBalance(t *testing.T) {
	assert := require.New(t)

	session := newMockSession()
	env, _ := newTestEnv(session)

	assert.NoError(dispatchLine(env, `frame_index 0`))
	assert.Equal(1, env.Context().FrameDepth())

	assert.NoError(dispatchLine(env, `frame ID inner`))
	assert.Equal(2, env.Context().FrameDepth())

	assert.NoError(dispatchLine(env, `frame_parent`))
	assert.Equal(1, env.Context().FrameDepth())

	assert.NoError(dispatchLine(env, `frame_default`))
	assert.Equal(0, env.Context().FrameDepth())
}

func TestFrameParentReplaysRemainingStack(t *testing.T) {
	assert := require.New(t)

	session := newMockSession()
	env, _ := newTestEnv(session)

	assert.NoError(dispatchLine(env, `frame_index 0`))
	assert.NoError(dispatchLine(env, `frame ID inner`))
	assert.NoError(dispatchLine(env, `frame_parent`))

	assert.Equal([]string{
		`frame[0]`,
		`frame[ID "inner"]`,
		`default`,
		`frame[0]`,
	}, session.switches)
}

func TestFrameParentAtTopLevelFails(t *testing.T) {
	assert := require.New(t)

	env, _ := newTestEnv(newMockSession())

	err := dispatchLine(env, `frame_parent`)

	assert.Error(err)
	assert.True(errors.Is(err, browser.ErrNavigation))
	assert.Equal(`NavigationError`, ErrorKind(err))
}

func TestFrameDefaultIsIdempotent(t *testing.T) {
	assert := require.New(t)

	session := newMockSession()
	env, _ := newTestEnv(session)

	assert.NoError(dispatchLine(env, `frame_default`))
	assert.NoError(dispatchLine(env, `frame_default`))
	assert.Equal(0, env.Context().FrameDepth())
	assert.Equal([]string{`default`, `default`}, session.switches)
}
