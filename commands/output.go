package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ghetzel/go-stockutil/log"
	"github.com/ghetzel/go-stockutil/pathutil"
	"github.com/nelabs/webscript/browser"
)

func (self *Commands) doAssertText(args []string) error {
	el, err := self.find(args[0], args[1])

	if err != nil {
		return err
	}

	if text, err := el.Text(); err == nil {
		if !strings.Contains(text, args[2]) {
			return fmt.Errorf("%w: element text does not contain %q", browser.ErrAssertion, args[2])
		}

		return nil
	} else {
		return err
	}
}

func (self *Commands) doAssertURLContains(args []string) error {
	if url, err := self.session.CurrentURL(); err == nil {
		if !strings.Contains(url, args[0]) {
			return fmt.Errorf("%w: url %q does not contain %q", browser.ErrAssertion, url, args[0])
		}

		return nil
	} else {
		return err
	}
}

func (self *Commands) doAssertTitleContains(args []string) error {
	if title, err := self.session.Title(); err == nil {
		if !strings.Contains(title, args[0]) {
			return fmt.Errorf("%w: title %q does not contain %q", browser.ErrAssertion, title, args[0])
		}

		return nil
	} else {
		return err
	}
}

func (self *Commands) doPrintText(args []string) error {
	el, err := self.find(args[0], args[1])

	if err != nil {
		return err
	}

	if text, err := el.Text(); err == nil {
		fmt.Fprintln(self.stdout, text)
		return nil
	} else {
		return err
	}
}

func (self *Commands) doPrintAttr(args []string) error {
	el, err := self.find(args[0], args[1])

	if err != nil {
		return err
	}

	if value, err := el.Attr(args[2]); err == nil {
		fmt.Fprintln(self.stdout, value)
		return nil
	} else {
		return err
	}
}

func (self *Commands) doEcho(args []string) error {
	fmt.Fprintln(self.stdout, strings.Join(args, ` `))
	return nil
}

func (self *Commands) doExecJS(args []string) error {
	if result, err := self.session.ExecuteScript(args[0], nil); err == nil {
		if result != nil {
			log.Debugf("[js] returned %v", result)
		}

		return nil
	} else {
		return err
	}
}

// preparePath expands and creates the directory an output file will land in.
func preparePath(path string) (string, error) {
	expanded, err := pathutil.ExpandUser(path)

	if err != nil {
		return ``, fmt.Errorf("%w: %v", browser.ErrFileNotFound, err)
	}

	if err := os.MkdirAll(filepath.Dir(expanded), 0755); err != nil {
		return ``, fmt.Errorf("%w: %v", browser.ErrFileNotFound, err)
	}

	return expanded, nil
}

func (self *Commands) doScreenshot(args []string) error {
	path, err := preparePath(args[0])

	if err != nil {
		return err
	}

	if data, err := self.session.Screenshot(); err == nil {
		return os.WriteFile(path, data, 0644)
	} else {
		return err
	}
}

func (self *Commands) doScreenshotElement(args []string) error {
	path, err := preparePath(args[2])

	if err != nil {
		return err
	}

	el, err := self.find(args[0], args[1])

	if err != nil {
		return err
	}

	if data, err := el.Screenshot(); err == nil {
		return os.WriteFile(path, data, 0644)
	} else {
		return err
	}
}
