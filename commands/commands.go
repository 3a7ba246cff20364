// Package commands implements the command registry, the dispatcher, the
// explicit-wait engine, the navigation state tracker, and the sequential run
// loop that executes a loaded script against one browser session.
package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ghetzel/go-stockutil/stringutil"
	"github.com/nelabs/webscript/browser"
	"github.com/nelabs/webscript/scripting"
	"github.com/nelabs/webscript/utils"
	defaults "github.com/mcuadros/go-defaults"
)

var (
	ErrUnknownCommand = errors.New(`unknown command`)
	ErrArgument       = errors.New(`argument error`)
)

type Options struct {
	// The wait timeout applied when a wait command names none. Fixed for the
	// whole run.
	DefaultTimeout time.Duration `json:"default_timeout" default:"15s"`

	// Log command failures and keep executing instead of aborting the run.
	IgnoreErrors bool `json:"ignore_errors"`

	// Whether pause may block on operator input.
	Interactive bool `json:"interactive"`

	Stdout io.Writer `json:"-"`
}

// Commands binds the registry's handlers to one session and one execution
// context.
type Commands struct {
	session      browser.Session
	ctx          *Context
	stdout       io.Writer
	ignoreErrors bool
}

func New(session browser.Session, options *Options) *Commands {
	if options == nil {
		options = new(Options)
	}

	defaults.SetDefaults(options)
	options.DefaultTimeout = utils.FudgeTimeout(options.DefaultTimeout)

	var stdout io.Writer = options.Stdout

	if stdout == nil {
		stdout = os.Stdout
	}

	var ctx = NewContext(options.DefaultTimeout)
	ctx.Interactive = options.Interactive

	return &Commands{
		session:      session,
		ctx:          ctx,
		stdout:       stdout,
		ignoreErrors: options.IgnoreErrors,
	}
}

func (self *Commands) Context() *Context {
	return self.ctx
}

// Dispatch validates a resolved command against its registry entry and
// invokes the handler. Handlers never see malformed arity or (for typed
// arguments) raw unconverted text.
func (self *Commands) Dispatch(cmd *scripting.Command) error {
	var entry, ok = registry[cmd.Name]

	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Name)
	}

	var args = cmd.Args

	if entry.JoinFrom >= 0 {
		if len(args) < entry.JoinFrom {
			return fmt.Errorf("%w: %s needs at least %d arguments", ErrArgument, cmd.Name, entry.MinArgs)
		}

		var head = args[:entry.JoinFrom]

		if len(args) > entry.JoinFrom {
			args = append(append([]string{}, head...), strings.Join(args[entry.JoinFrom:], ` `))
		} else {
			args = head
		}
	}

	if len(args) < entry.MinArgs {
		return fmt.Errorf("%w: %s takes at least %d arguments, got %d", ErrArgument, cmd.Name, entry.MinArgs, len(args))
	}

	if entry.MaxArgs >= 0 && len(args) > entry.MaxArgs {
		return fmt.Errorf("%w: %s takes at most %d arguments, got %d", ErrArgument, cmd.Name, entry.MaxArgs, len(args))
	}

	if entry.NeedsWindow && !self.ctx.HasActiveWindow() {
		return fmt.Errorf("%w: %s requires a window; select one with window_latest or window_index", browser.ErrNoActiveWindow, cmd.Name)
	}

	return entry.Handler(self, args)
}

// locatorArg resolves the standard (BY, selector) argument pair.
func (self *Commands) locatorArg(byToken string, selector string) (browser.Locator, error) {
	return browser.NewLocator(byToken, selector)
}

func (self *Commands) find(byToken string, selector string) (browser.Element, error) {
	if loc, err := self.locatorArg(byToken, selector); err == nil {
		return self.session.Find(loc)
	} else {
		return nil, err
	}
}

// intArg converts a positional argument to an integer at the dispatch
// boundary.
func intArg(name string, value string) (int, error) {
	if v, err := stringutil.ConvertToInteger(value); err == nil {
		return int(v), nil
	} else {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", ErrArgument, name, value)
	}
}
