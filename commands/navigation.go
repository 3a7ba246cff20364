package commands

import (
	"github.com/ghetzel/go-stockutil/log"
	"github.com/nelabs/webscript/browser"
)

const jsScrollBy = `window.scrollBy(arguments[0], arguments[1]);`
const jsScrollTop = `window.scrollTo(0, 0);`
const jsScrollBottom = `window.scrollTo(0, document.body.scrollHeight);`

func (self *Commands) doGoto(args []string) error {
	return self.session.Navigate(args[0])
}

func (self *Commands) doBack(args []string) error {
	return self.session.Back()
}

func (self *Commands) doForward(args []string) error {
	return self.session.Forward()
}

func (self *Commands) doRefresh(args []string) error {
	return self.session.Refresh()
}

// Window sizing is best-effort: headless or kiosk environments routinely
// reject it, and scripts should not die over that.
func (self *Commands) doMaximize(args []string) error {
	if err := self.session.MaximizeWindow(); err != nil {
		log.Warningf("maximize: %v", err)
	}

	return nil
}

func (self *Commands) doMinimize(args []string) error {
	if err := self.session.MinimizeWindow(); err != nil {
		if browser.IsNotSupportedErr(err) {
			log.Warningf("minimize is not supported by this session")
		} else {
			log.Warningf("minimize: %v", err)
		}
	}

	return nil
}

func (self *Commands) doSetWindow(args []string) error {
	width, err := intArg(`width`, args[0])

	if err != nil {
		return err
	}

	height, err := intArg(`height`, args[1])

	if err != nil {
		return err
	}

	return self.session.ResizeWindow(width, height)
}

func (self *Commands) doScrollIntoView(args []string) error {
	var block = `center`

	if len(args) > 2 {
		block = args[2]
	}

	if el, err := self.find(args[0], args[1]); err == nil {
		return self.session.ScrollIntoView(el, block)
	} else {
		return err
	}
}

func (self *Commands) doScrollBy(args []string) error {
	x, err := intArg(`x`, args[0])

	if err != nil {
		return err
	}

	y, err := intArg(`y`, args[1])

	if err != nil {
		return err
	}

	_, err = self.session.ExecuteScript(jsScrollBy, []interface{}{x, y})
	return err
}

func (self *Commands) doScrollTop(args []string) error {
	_, err := self.session.ExecuteScript(jsScrollTop, nil)
	return err
}

func (self *Commands) doScrollBottom(args []string) error {
	_, err := self.session.ExecuteScript(jsScrollBottom, nil)
	return err
}
