package commands

import (
	"fmt"
	"path/filepath"

	"github.com/ghetzel/go-stockutil/fileutil"
	"github.com/ghetzel/go-stockutil/pathutil"
	"github.com/nelabs/webscript/browser"
	"github.com/nelabs/webscript/scripting"
)

func (self *Commands) doClick(args []string) error {
	if el, err := self.find(args[0], args[1]); err == nil {
		return el.Click()
	} else {
		return err
	}
}

func (self *Commands) doRightClick(args []string) error {
	if el, err := self.find(args[0], args[1]); err == nil {
		return self.session.RightClick(el)
	} else {
		return err
	}
}

func (self *Commands) doDoubleClick(args []string) error {
	if el, err := self.find(args[0], args[1]); err == nil {
		return self.session.DoubleClick(el)
	} else {
		return err
	}
}

func (self *Commands) doHover(args []string) error {
	if el, err := self.find(args[0], args[1]); err == nil {
		return self.session.Hover(el)
	} else {
		return err
	}
}

func (self *Commands) doClickJS(args []string) error {
	if el, err := self.find(args[0], args[1]); err == nil {
		return self.session.ClickJS(el)
	} else {
		return err
	}
}

func (self *Commands) doClear(args []string) error {
	if el, err := self.find(args[0], args[1]); err == nil {
		return el.Clear()
	} else {
		return err
	}
}

// write focuses the field with a click, then sends the text as keystrokes.
func (self *Commands) doWrite(args []string) error {
	if el, err := self.find(args[0], args[1]); err == nil {
		if err := el.Click(); err != nil {
			return err
		}

		return el.SendKeys(args[2])
	} else {
		return err
	}
}

func (self *Commands) doSendKeys(args []string) error {
	actions, err := scripting.DecodeKeys(args[2:])

	if err != nil {
		return err
	}

	if el, err := self.find(args[0], args[1]); err == nil {
		if err := el.Click(); err != nil {
			return err
		}

		return self.session.SendKeyActions(el, actions)
	} else {
		return err
	}
}

// press sends keys to whichever element currently holds focus.
func (self *Commands) doPress(args []string) error {
	actions, err := scripting.DecodeKeys(args)

	if err != nil {
		return err
	}

	if el, err := self.session.ActiveElement(); err == nil {
		return self.session.SendKeyActions(el, actions)
	} else {
		return err
	}
}

func (self *Commands) doWriteCE(args []string) error {
	if el, err := self.find(args[0], args[1]); err == nil {
		return self.session.SetTextCE(el, args[2])
	} else {
		return err
	}
}

func (self *Commands) doWriteJS(args []string) error {
	if el, err := self.find(args[0], args[1]); err == nil {
		return self.session.SetTextJS(el, args[2])
	} else {
		return err
	}
}

func (self *Commands) doDragDrop(args []string) error {
	src, err := self.find(args[0], args[1])

	if err != nil {
		return err
	}

	dst, err := self.find(args[2], args[3])

	if err != nil {
		return err
	}

	return self.session.DragAndDrop(src, dst)
}

func (self *Commands) doDragOffset(args []string) error {
	x, err := intArg(`x`, args[2])

	if err != nil {
		return err
	}

	y, err := intArg(`y`, args[3])

	if err != nil {
		return err
	}

	if el, err := self.find(args[0], args[1]); err == nil {
		return self.session.DragByOffset(el, x, y)
	} else {
		return err
	}
}

func (self *Commands) doSelect(args []string) error {
	mode, err := browser.ParseSelectMode(args[2])

	if err != nil {
		return fmt.Errorf("%w: %v", ErrArgument, err)
	}

	if mode == browser.SelectByIndex {
		if _, err := intArg(`index`, args[3]); err != nil {
			return err
		}
	}

	if el, err := self.find(args[0], args[1]); err == nil {
		return self.session.SelectOption(el, mode, args[3])
	} else {
		return err
	}
}

// upload sends a local file path to a file input. The path must exist here;
// a missing file would otherwise fail opaquely inside the browser.
func (self *Commands) doUpload(args []string) error {
	path, err := pathutil.ExpandUser(args[2])

	if err != nil {
		return fmt.Errorf("%w: %v", browser.ErrFileNotFound, err)
	}

	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	if !fileutil.FileExists(path) {
		return fmt.Errorf("%w: %s", browser.ErrFileNotFound, path)
	}

	if el, err := self.find(args[0], args[1]); err == nil {
		return el.SendKeys(path)
	} else {
		return err
	}
}
