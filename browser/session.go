package browser

import (
	"github.com/nelabs/webscript/scripting"
)

// Element is a handle on one located page element.
type Element interface {
	Click() error
	Clear() error
	SendKeys(text string) error
	Text() (string, error)
	Attr(name string) (string, error)
	Displayed() (bool, error)
	Enabled() (bool, error)
	Screenshot() ([]byte, error)
}

// Cookie is the slice of browser cookie state the engine cares about.
type Cookie struct {
	Name   string
	Value  string
	Domain string
	Path   string
	Secure bool
}

// Session is the capability interface the command engine drives. It is the
// narrow seam between the engine and whatever actually performs browser
// actions; the engine never talks to a driver directly.
type Session interface {
	Navigate(url string) error
	Back() error
	Forward() error
	Refresh() error
	CurrentURL() (string, error)
	Title() (string, error)

	Find(loc Locator) (Element, error)
	ActiveElement() (Element, error)

	Hover(el Element) error
	RightClick(el Element) error
	DoubleClick(el Element) error
	DragAndDrop(src Element, dst Element) error
	DragByOffset(el Element, xOffset int, yOffset int) error
	SendKeyActions(el Element, actions []scripting.KeyAction) error
	SelectOption(el Element, mode SelectMode, value string) error

	ClickJS(el Element) error
	SetTextJS(el Element, text string) error
	SetTextCE(el Element, text string) error
	ScrollIntoView(el Element, block string) error
	ExecuteScript(code string, args []interface{}) (interface{}, error)

	SwitchFrame(ref FrameRef) error
	SwitchToDefault() error

	WindowHandles() ([]string, error)
	ActiveWindow() (string, error)
	SwitchWindow(handle string) error
	CloseWindow(handle string) error
	MaximizeWindow() error
	MinimizeWindow() error
	ResizeWindow(width int, height int) error

	Cookie(name string) (*Cookie, error)
	SetCookie(cookie *Cookie) error
	DeleteCookie(name string) error
	ClearCookies() error

	Screenshot() ([]byte, error)

	Quit() error
}
