package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ghetzel/go-stockutil/log"
	"github.com/nelabs/webscript/browser"
	"github.com/nelabs/webscript/scripting"
)

// Report is the outcome of one script run.
type Report struct {
	OK         bool
	Executed   int
	FailedLine int
	FailedText string
	ErrorKind  string
	Err        error
	KeepOpen   bool
	Elapsed    time.Duration
}

func (self *Report) String() string {
	if self.OK {
		return fmt.Sprintf("ok: %d commands in %v", self.Executed, self.Elapsed.Round(time.Millisecond))
	}

	return fmt.Sprintf("line %d: %s: %s: %v", self.FailedLine, self.FailedText, self.ErrorKind, self.Err)
}

// Run executes a script strictly in line order against this instance's
// session and context. The first failing command aborts the run unless the
// ignore-errors policy is on, in which case failures are logged and execution
// continues.
func (self *Commands) Run(script *scripting.Script) *Report {
	var started = time.Now()

	self.seedWindows()

	var report = &Report{OK: true}

	for _, line := range script.Lines() {
		executed, err := self.RunLine(line)

		if executed {
			report.Executed += 1
		}

		if err != nil {
			if self.ignoreErrors {
				log.Warningf("line %d: %q failed: %s: %v (continuing)", line.Number, strings.TrimSpace(line.Raw), ErrorKind(err), err)
				continue
			}

			report.OK = false
			report.FailedLine = line.Number
			report.FailedText = strings.TrimSpace(line.Raw)
			report.ErrorKind = ErrorKind(err)
			report.Err = err
			break
		}
	}

	report.KeepOpen = self.ctx.KeepOpen
	report.Elapsed = time.Since(started)
	return report
}

// RunLine takes one raw line through tokenize → variable interpolation →
// alias resolution → dispatch. The boolean reports whether a command actually
// ran (comments and blank lines do not).
func (self *Commands) RunLine(line scripting.Line) (bool, error) {
	tokens, err := scripting.Tokenize(line.Raw)

	if err != nil {
		return false, err
	}

	if len(tokens) == 0 {
		return false, nil
	}

	for i, token := range tokens {
		if interpolated, err := self.ctx.Interpolate(token); err == nil {
			tokens[i] = interpolated
		} else {
			return false, err
		}
	}

	var name = strings.ToLower(scripting.ResolveAlias(tokens[0]))

	var cmd = &scripting.Command{
		Line: line.Number,
		Name: name,
		Args: tokens[1:],
	}

	log.Debugf("[run] line %d: %s %v", cmd.Line, cmd.Name, cmd.Args)
	return true, self.Dispatch(cmd)
}

// ErrorKind names the taxonomy bucket an error belongs to, for reporting.
func ErrorKind(err error) string {
	switch {
	case scripting.IsTokenizeErr(err):
		return `TokenizeError`
	case errors.Is(err, ErrUnknownCommand):
		return `UnknownCommand`
	case errors.Is(err, ErrArgument):
		return `ArgumentError`
	case scripting.IsKeyDecodeErr(err):
		return `KeyDecodeError`
	case browser.IsInvalidQueryErr(err):
		return `InvalidQueryExpression`
	case browser.IsElementNotFoundErr(err):
		return `ElementNotFound`
	case browser.IsNotInteractableErr(err):
		return `NotInteractable`
	case browser.IsTimeoutErr(err):
		return `TimeoutError`
	case errors.Is(err, browser.ErrWindowIndex):
		return `WindowIndexError`
	case errors.Is(err, browser.ErrNavigation):
		return `NavigationError`
	case errors.Is(err, browser.ErrNoActiveWindow):
		return `NoActiveWindow`
	case errors.Is(err, browser.ErrAssertion):
		return `AssertionFailure`
	case errors.Is(err, browser.ErrFileNotFound):
		return `FileNotFoundError`
	default:
		return `CommandError`
	}
}
