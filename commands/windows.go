package commands

import (
	"github.com/ghetzel/go-stockutil/log"
)

// seedWindows primes the handle registry with whatever the session already
// has open, so window_index addresses handles in discovery order from the
// very first command.
func (self *Commands) seedWindows() {
	if handles, err := self.session.WindowHandles(); err == nil {
		self.ctx.MergeWindows(handles)
	} else {
		log.Warningf("could not enumerate windows: %v", err)
	}

	if handle, err := self.session.ActiveWindow(); err == nil {
		self.ctx.SetCurrentWindow(handle)
	}
}

// window_latest re-scans the session's handles, appends anything new in
// discovery order, and switches to the newest one.
func (self *Commands) doWindowLatest(args []string) error {
	handles, err := self.session.WindowHandles()

	if err != nil {
		return err
	}

	var discovered = self.ctx.MergeWindows(handles)
	var known = self.ctx.Windows()

	var target string

	if len(discovered) > 0 {
		target = discovered[len(discovered)-1]
	} else if len(known) > 0 {
		target = known[len(known)-1]
	} else {
		return nil
	}

	if err := self.session.SwitchWindow(target); err != nil {
		return err
	}

	self.ctx.SetCurrentWindow(target)
	return nil
}

func (self *Commands) doWindowIndex(args []string) error {
	index, err := intArg(`index`, args[0])

	if err != nil {
		return err
	}

	handle, err := self.ctx.WindowAt(index)

	if err != nil {
		return err
	}

	if err := self.session.SwitchWindow(handle); err != nil {
		return err
	}

	self.ctx.SetCurrentWindow(handle)
	return nil
}

// window_close closes the active window and leaves the window context
// undefined until the next window command selects a handle.
func (self *Commands) doWindowClose(args []string) error {
	handle, err := self.ctx.CurrentWindow()

	if err != nil {
		return err
	}

	if err := self.session.CloseWindow(handle); err != nil {
		return err
	}

	self.ctx.DropWindow(handle)
	return nil
}
