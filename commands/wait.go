package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/ghetzel/go-stockutil/log"
	"github.com/nelabs/webscript/browser"
)

// WaitPollInterval is how often wait conditions are re-evaluated. It is
// observable in timing-sensitive scripts but not contractual.
var WaitPollInterval = 250 * time.Millisecond

type WaitCondition string

const (
	WaitPresent       WaitCondition = `present`
	WaitVisible       WaitCondition = `visible`
	WaitClickable     WaitCondition = `clickable`
	WaitInvisible     WaitCondition = `invisible`
	WaitText          WaitCondition = `text-contains`
	WaitURLContains   WaitCondition = `url-contains`
	WaitTitleContains WaitCondition = `title-contains`
)

// WaitSpec is one fully-resolved wait: the condition, its subject, and the
// timeout. Argument parsing substitutes the context default only when the
// script named no timeout at all; an explicit zero is honored and means one
// evaluation with immediate expiry.
type WaitSpec struct {
	Condition WaitCondition
	Locator   *browser.Locator
	Substring string
	Timeout   time.Duration
}

func (self WaitSpec) String() string {
	var subject string

	switch {
	case self.Locator != nil && self.Substring != ``:
		subject = fmt.Sprintf("%v ~ %q", *self.Locator, self.Substring)
	case self.Locator != nil:
		subject = (*self.Locator).String()
	default:
		subject = fmt.Sprintf("%q", self.Substring)
	}

	return fmt.Sprintf("wait for %s on %s", self.Condition, subject)
}

type pollOutcome int

const (
	stillPolling pollOutcome = iota
	satisfied
	expired
)

// await runs the poll loop: evaluate, and either finish, expire, or sleep and
// go around again. Structural evaluation errors abort immediately; "not yet"
// evaluation errors were already folded into an unsatisfied result.
func (self *Commands) await(spec WaitSpec) error {
	var started = time.Now()
	var deadline = started.Add(spec.Timeout)
	var outcome = stillPolling

	for outcome == stillPolling {
		ok, err := self.evaluateWait(spec)

		if err != nil {
			return err
		}

		switch {
		case ok:
			outcome = satisfied
		case !time.Now().Before(deadline):
			outcome = expired
		default:
			time.Sleep(WaitPollInterval)
		}
	}

	if outcome == expired {
		return fmt.Errorf("%w: %v not satisfied after %v", browser.ErrTimeout, spec, time.Since(started).Round(time.Millisecond))
	}

	log.Debugf("[wait] %v satisfied after %v", spec, time.Since(started).Round(time.Millisecond))
	return nil
}

// evaluateWait performs one poll. An absent element is "not satisfied yet"
// for every condition except invisibility, where it means done; any other
// session failure is structural and returned as-is.
func (self *Commands) evaluateWait(spec WaitSpec) (bool, error) {
	switch spec.Condition {
	case WaitPresent, WaitVisible, WaitClickable, WaitText:
		var el, err = self.session.Find(*spec.Locator)

		if err != nil {
			if browser.IsElementNotFoundErr(err) {
				return false, nil
			}

			return false, err
		}

		switch spec.Condition {
		case WaitPresent:
			return true, nil
		case WaitVisible:
			return self.elementVisible(el)
		case WaitClickable:
			if visible, err := self.elementVisible(el); err != nil || !visible {
				return visible, err
			}

			if enabled, err := el.Enabled(); err == nil {
				return enabled, nil
			} else if browser.IsElementNotFoundErr(err) {
				return false, nil
			} else {
				return false, err
			}
		default:
			if text, err := el.Text(); err == nil {
				return strings.Contains(text, spec.Substring), nil
			} else if browser.IsElementNotFoundErr(err) {
				return false, nil
			} else {
				return false, err
			}
		}

	case WaitInvisible:
		var el, err = self.session.Find(*spec.Locator)

		if err != nil {
			if browser.IsElementNotFoundErr(err) {
				return true, nil
			}

			return false, err
		}

		if visible, err := self.elementVisible(el); err == nil {
			return !visible, nil
		} else {
			return false, err
		}

	case WaitURLContains:
		if url, err := self.session.CurrentURL(); err == nil {
			return strings.Contains(url, spec.Substring), nil
		} else {
			return false, err
		}

	case WaitTitleContains:
		if title, err := self.session.Title(); err == nil {
			return strings.Contains(title, spec.Substring), nil
		} else {
			return false, err
		}
	}

	return false, fmt.Errorf("unknown wait condition %q", spec.Condition)
}

// elementVisible treats an element that vanished between find and probe as
// simply not visible yet.
func (self *Commands) elementVisible(el browser.Element) (bool, error) {
	if visible, err := el.Displayed(); err == nil {
		return visible, nil
	} else if browser.IsElementNotFoundErr(err) {
		return false, nil
	} else {
		return false, err
	}
}

// locatorWait parses the common (BY, selector, [timeout]) argument shape.
func (self *Commands) locatorWait(condition WaitCondition, args []string) error {
	loc, err := self.locatorArg(args[0], args[1])

	if err != nil {
		return err
	}

	var timeout = self.ctx.DefaultTimeout

	if len(args) > 2 {
		if timeout, err = self.timeoutArg(args[2]); err != nil {
			return err
		}
	}

	return self.await(WaitSpec{
		Condition: condition,
		Locator:   &loc,
		Timeout:   timeout,
	})
}

func (self *Commands) timeoutArg(value string) (time.Duration, error) {
	if seconds, err := intArg(`timeout`, value); err == nil {
		if seconds < 0 {
			return 0, fmt.Errorf("%w: timeout must not be negative, got %d", ErrArgument, seconds)
		}

		return time.Duration(seconds) * time.Second, nil
	} else {
		return 0, err
	}
}

func (self *Commands) doWaitPresent(args []string) error {
	return self.locatorWait(WaitPresent, args)
}

func (self *Commands) doWaitVisible(args []string) error {
	return self.locatorWait(WaitVisible, args)
}

func (self *Commands) doWaitClickable(args []string) error {
	return self.locatorWait(WaitClickable, args)
}

func (self *Commands) doWaitInvisible(args []string) error {
	return self.locatorWait(WaitInvisible, args)
}

func (self *Commands) doWaitText(args []string) error {
	loc, err := self.locatorArg(args[0], args[1])

	if err != nil {
		return err
	}

	var timeout = self.ctx.DefaultTimeout

	if len(args) > 3 {
		if timeout, err = self.timeoutArg(args[3]); err != nil {
			return err
		}
	}

	return self.await(WaitSpec{
		Condition: WaitText,
		Locator:   &loc,
		Substring: args[2],
		Timeout:   timeout,
	})
}

func (self *Commands) substringWait(condition WaitCondition, args []string) error {
	var timeout = self.ctx.DefaultTimeout
	var err error

	if len(args) > 1 {
		if timeout, err = self.timeoutArg(args[1]); err != nil {
			return err
		}
	}

	return self.await(WaitSpec{
		Condition: condition,
		Substring: args[0],
		Timeout:   timeout,
	})
}

func (self *Commands) doWaitURLContains(args []string) error {
	return self.substringWait(WaitURLContains, args)
}

func (self *Commands) doWaitTitleContains(args []string) error {
	return self.substringWait(WaitTitleContains, args)
}
