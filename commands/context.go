package commands

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ghetzel/go-stockutil/rxutil"
	"github.com/ghetzel/go-stockutil/sliceutil"
	"github.com/ghetzel/go-stockutil/typeutil"
	"github.com/nelabs/webscript/browser"
)

var rxVariable = regexp.MustCompile(`\$\{(?P<name>[A-Za-z_][A-Za-z0-9_]*)\}`)

// Context is the per-run mutable execution state. Exactly one exists per
// script run, owned by the run loop and passed by reference to every handler.
type Context struct {
	DefaultTimeout time.Duration
	Interactive    bool
	KeepOpen       bool
	frames         []browser.FrameRef
	windows        []string
	currentWindow  string
	windowClosed   bool
	vars           map[string]interface{}
}

func NewContext(defaultTimeout time.Duration) *Context {
	return &Context{
		DefaultTimeout: defaultTimeout,
		vars:           make(map[string]interface{}),
	}
}

// --- frame stack ------------------------------------------------------------

func (self *Context) PushFrame(ref browser.FrameRef) {
	self.frames = append(self.frames, ref)
}

// PopFrame removes the innermost frame and returns the refs still entered.
func (self *Context) PopFrame() ([]browser.FrameRef, error) {
	if len(self.frames) == 0 {
		return nil, fmt.Errorf("%w: already at the top-level document", browser.ErrNavigation)
	}

	self.frames = self.frames[:len(self.frames)-1]
	return self.Frames(), nil
}

func (self *Context) ClearFrames() {
	self.frames = nil
}

func (self *Context) FrameDepth() int {
	return len(self.frames)
}

func (self *Context) Frames() []browser.FrameRef {
	var refs = make([]browser.FrameRef, len(self.frames))
	copy(refs, self.frames)
	return refs
}

// --- window registry ---------------------------------------------------------

// MergeWindows appends handles not yet known, preserving discovery order, and
// returns the newly discovered ones in that order.
func (self *Context) MergeWindows(handles []string) []string {
	var discovered []string

	for _, handle := range handles {
		if !sliceutil.ContainsString(self.windows, handle) {
			self.windows = append(self.windows, handle)
			discovered = append(discovered, handle)
		}
	}

	return discovered
}

func (self *Context) Windows() []string {
	var handles = make([]string, len(self.windows))
	copy(handles, self.windows)
	return handles
}

func (self *Context) WindowAt(index int) (string, error) {
	if index < 0 || index >= len(self.windows) {
		return ``, fmt.Errorf("%w: index %d, %d windows known", browser.ErrWindowIndex, index, len(self.windows))
	}

	return self.windows[index], nil
}

func (self *Context) SetCurrentWindow(handle string) {
	self.currentWindow = handle
	self.windowClosed = false
}

// CurrentWindow fails after window_close until a window command selects a new
// handle.
func (self *Context) CurrentWindow() (string, error) {
	if self.windowClosed {
		return ``, fmt.Errorf("%w: the active window was closed", browser.ErrNoActiveWindow)
	}

	return self.currentWindow, nil
}

func (self *Context) HasActiveWindow() bool {
	return !self.windowClosed
}

// DropWindow forgets a handle and, if it was current, leaves the window
// context undefined.
func (self *Context) DropWindow(handle string) {
	var kept = self.windows[:0]

	for _, existing := range self.windows {
		if existing != handle {
			kept = append(kept, existing)
		}
	}

	self.windows = kept

	if self.currentWindow == handle {
		self.currentWindow = ``
		self.windowClosed = true
	}
}

// --- script variables ---------------------------------------------------------

func (self *Context) SetVar(name string, value interface{}) {
	self.vars[name] = value
}

// Interpolate replaces ${name} references in a token with stored variable
// values, repeatedly until none remain. Undefined variables are an argument
// error.
func (self *Context) Interpolate(token string) (string, error) {
	for {
		var match = rxutil.Match(rxVariable, token)

		if match == nil {
			return token, nil
		}

		var name = match.Group(`name`)

		if value, ok := self.vars[name]; ok {
			token = strings.Replace(token, `${`+name+`}`, typeutil.V(value).String(), 1)
		} else {
			return ``, fmt.Errorf("%w: undefined variable %q", ErrArgument, name)
		}
	}
}
