package commands

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/nelabs/webscript/browser"
	"github.com/stretchr/testify/require"
)

func withPollInterval(interval time.Duration, fn func()) {
	var previous = WaitPollInterval
	WaitPollInterval = interval
	defer func() {
		WaitPollInterval = previous
	}()

	fn()
}

func idLocator(value string) *browser.Locator {
	return &browser.Locator{By: browser.ByID, Value: value}
}

func TestWaitExpiresAfterTimeout(t *testing.T) {
	assert := require.New(t)

	env, _ := newTestEnv(newMockSession())

	withPollInterval(20*time.Millisecond, func() {
		started := time.Now()

		err := env.await(WaitSpec{
			Condition: WaitPresent,
			Locator:   idLocator(`ghost`),
			Timeout:   200 * time.Millisecond,
		})

		elapsed := time.Since(started)

		assert.Error(err)
		assert.True(browser.IsTimeoutErr(err))
		assert.GreaterOrEqual(elapsed, 200*time.Millisecond)
		assert.Less(elapsed, 600*time.Millisecond)
	})
}

func TestWaitSatisfiedAfterRetries(t *testing.T) {
	assert := require.New(t)

	session := newMockSession()
	session.addElement(`ID`, `slow`, &mockElement{displayed: true, enabled: true})
	session.notBefore[locKey(`ID`, `slow`)] = 3
	env, _ := newTestEnv(session)

	withPollInterval(5*time.Millisecond, func() {
		err := env.await(WaitSpec{
			Condition: WaitPresent,
			Locator:   idLocator(`slow`),
			Timeout:   time.Second,
		})

		assert.NoError(err)
		assert.Equal(4, session.findCalls[locKey(`ID`, `slow`)])
	})
}

func TestWaitStructuralErrorShortCircuits(t *testing.T) {
	assert := require.New(t)

	session := newMockSession()
	session.findErrs[locKey(`ID`, `broken`)] = fmt.Errorf("%w: malformed expression", browser.ErrInvalidQuery)
	env, _ := newTestEnv(session)

	withPollInterval(time.Hour, func() {
		err := env.await(WaitSpec{
			Condition: WaitPresent,
			Locator:   idLocator(`broken`),
			Timeout:   time.Second,
		})

		assert.Error(err)
		assert.True(browser.IsInvalidQueryErr(err))
		assert.Equal(1, session.findCalls[locKey(`ID`, `broken`)])
	})
}

func TestWaitInvisibleSatisfiedByAbsence(t *testing.T) {
	assert := require.New(t)

	env, _ := newTestEnv(newMockSession())

	err := env.await(WaitSpec{
		Condition: WaitInvisible,
		Locator:   idLocator(`gone`),
		Timeout:   time.Second,
	})

	assert.NoError(err)
}

func TestWaitVisibleRequiresDisplayed(t *testing.T) {
	assert := require.New(t)

	session := newMockSession()
	session.addElement(`ID`, `hidden`, &mockElement{displayed: false, enabled: true})
	env, _ := newTestEnv(session)

	withPollInterval(10*time.Millisecond, func() {
		err := env.await(WaitSpec{
			Condition: WaitVisible,
			Locator:   idLocator(`hidden`),
			Timeout:   50 * time.Millisecond,
		})

		assert.Error(err)
		assert.True(browser.IsTimeoutErr(err))
	})
}

func TestWaitClickableRequiresEnabled(t *testing.T) {
	assert := require.New(t)

	session := newMockSession()
	session.addElement(`ID`, `grey`, &mockElement{displayed: true, enabled: false})
	session.addElement(`ID`, `live`, &mockElement{displayed: true, enabled: true})
	env, _ := newTestEnv(session)

	withPollInterval(10*time.Millisecond, func() {
		err := env.await(WaitSpec{
			Condition: WaitClickable,
			Locator:   idLocator(`grey`),
			Timeout:   50 * time.Millisecond,
		})

		assert.True(browser.IsTimeoutErr(err))

		assert.NoError(env.await(WaitSpec{
			Condition: WaitClickable,
			Locator:   idLocator(`live`),
			Timeout:   time.Second,
		}))
	})
}

func TestWaitDefaultTimeoutWhenOmitted(t *testing.T) {
	assert := require.New(t)

	env := New(newMockSession(), &Options{DefaultTimeout: 60 * time.Millisecond})

	withPollInterval(10*time.Millisecond, func() {
		started := time.Now()
		err := dispatchLine(env, `wait_present ID ghost`)
		elapsed := time.Since(started)

		assert.True(browser.IsTimeoutErr(err))
		assert.GreaterOrEqual(elapsed, 60*time.Millisecond)
		assert.Less(elapsed, 500*time.Millisecond)
	})
}

func TestWaitExplicitZeroTimeout(t *testing.T) {
	assert := require.New(t)

	session := newMockSession()
	session.addElement(`ID`, `box`, &mockElement{displayed: true, enabled: true})
	env := New(session, &Options{DefaultTimeout: 5 * time.Second})

	// a zero timeout still gets its one evaluation
	assert.NoError(dispatchLine(env, `wait_present ID box 0`))

	// and expires immediately instead of burning the default
	started := time.Now()
	err := dispatchLine(env, `wait_present ID ghost 0`)

	assert.True(browser.IsTimeoutErr(err))
	assert.Less(time.Since(started), time.Second)
	assert.Equal(1, session.findCalls[locKey(`ID`, `ghost`)])
}

func TestWaitNegativeTimeoutRejected(t *testing.T) {
	assert := require.New(t)

	env, _ := newTestEnv(newMockSession())

	err := dispatchLine(env, `wait_visible ID x -5`)
	assert.True(errors.Is(err, ErrArgument), "locator wait: %v", err)

	err = dispatchLine(env, `wait_url_contains hello -1`)
	assert.True(errors.Is(err, ErrArgument), "substring wait: %v", err)
}

func TestWaitTextContains(t *testing.T) {
	assert := require.New(t)

	session := newMockSession()
	session.addElement(`ID`, `banner`, &mockElement{displayed: true, enabled: true, text: `welcome back, Ada`})
	env, _ := newTestEnv(session)

	assert.NoError(dispatchLine(env, `wait_text ID banner welcome 1`))

	withPollInterval(10*time.Millisecond, func() {
		err := dispatchLine(env, `wait_text ID banner farewell 1`)
		assert.True(browser.IsTimeoutErr(err))
	})
}

func TestWaitURLAndTitleContains(t *testing.T) {
	assert := require.New(t)

	session := newMockSession()
	session.url = `https://example.test/dashboard`
	session.title = `Dashboard - Example`
	env, _ := newTestEnv(session)

	assert.NoError(dispatchLine(env, `wait_url_contains dashboard 1`))
	assert.NoError(dispatchLine(env, `wait_title_contains Example 1`))

	withPollInterval(10*time.Millisecond, func() {
		err := dispatchLine(env, `wait_url_contains missing 1`)
		assert.True(browser.IsTimeoutErr(err))
	})
}
