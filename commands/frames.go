package commands

import (
	"github.com/nelabs/webscript/browser"
)

// The engine owns the frame stack: the session only ever switches to the
// top-level document, to an index, or to a frame element. Moving to the
// parent frame is a switch to the top followed by a replay of the remaining
// stack, re-resolving locator-entered frames so no stale handles are held.

func (self *Commands) doFrame(args []string) error {
	loc, err := self.locatorArg(args[0], args[1])

	if err != nil {
		return err
	}

	var ref = browser.FrameByLocator(loc)

	if err := self.session.SwitchFrame(ref); err != nil {
		return err
	}

	self.ctx.PushFrame(ref)
	return nil
}

func (self *Commands) doFrameIndex(args []string) error {
	index, err := intArg(`index`, args[0])

	if err != nil {
		return err
	}

	var ref = browser.FrameByIndex(index)

	if err := self.session.SwitchFrame(ref); err != nil {
		return err
	}

	self.ctx.PushFrame(ref)
	return nil
}

func (self *Commands) doFrameParent(args []string) error {
	remaining, err := self.ctx.PopFrame()

	if err != nil {
		return err
	}

	return self.replayFrames(remaining)
}

func (self *Commands) doFrameDefault(args []string) error {
	if err := self.session.SwitchToDefault(); err != nil {
		return err
	}

	self.ctx.ClearFrames()
	return nil
}

func (self *Commands) replayFrames(refs []browser.FrameRef) error {
	if err := self.session.SwitchToDefault(); err != nil {
		return err
	}

	for _, ref := range refs {
		if err := self.session.SwitchFrame(ref); err != nil {
			return err
		}
	}

	return nil
}
