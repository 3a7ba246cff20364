package commands

import (
	"fmt"

	"github.com/nelabs/webscript/browser"
	"github.com/nelabs/webscript/scripting"
)

type mockElement struct {
	text      string
	attrs     map[string]string
	displayed bool
	enabled   bool
	clicks    int
	cleared   int
	keys      []string
}

func (self *mockElement) Click() error {
	self.clicks += 1
	return nil
}

func (self *mockElement) Clear() error {
	self.cleared += 1
	self.text = ``
	return nil
}

func (self *mockElement) SendKeys(text string) error {
	self.text += text
	return nil
}

func (self *mockElement) Text() (string, error) {
	return self.text, nil
}

func (self *mockElement) Attr(name string) (string, error) {
	return self.attrs[name], nil
}

func (self *mockElement) Displayed() (bool, error) {
	return self.displayed, nil
}

func (self *mockElement) Enabled() (bool, error) {
	return self.enabled, nil
}

func (self *mockElement) Screenshot() ([]byte, error) {
	return []byte(`png`), nil
}

// mockSession is a scripted stand-in for a live browser session. Elements are
// registered by locator, optionally hidden for the first few lookups so wait
// behavior can be exercised.
type mockSession struct {
	elements  map[string]*mockElement
	findErrs  map[string]error
	notBefore map[string]int
	findCalls map[string]int
	url       string
	title     string
	windows   []string
	current   string
	closed    []string
	switches  []string
	cookies   map[string]*browser.Cookie
	scripts   []string
	actions   []string
	active    *mockElement
	quit      bool
}

func newMockSession() *mockSession {
	return &mockSession{
		elements:  make(map[string]*mockElement),
		findErrs:  make(map[string]error),
		notBefore: make(map[string]int),
		findCalls: make(map[string]int),
		cookies:   make(map[string]*browser.Cookie),
		windows:   []string{`w0`},
		current:   `w0`,
	}
}

func locKey(by string, value string) string {
	return by + `|` + value
}

func (self *mockSession) addElement(by string, value string, el *mockElement) *mockElement {
	if el.attrs == nil {
		el.attrs = make(map[string]string)
	}

	self.elements[locKey(by, value)] = el
	return el
}

func (self *mockSession) Navigate(url string) error {
	self.url = url
	return nil
}

func (self *mockSession) Back() error {
	self.actions = append(self.actions, `back`)
	return nil
}

func (self *mockSession) Forward() error {
	self.actions = append(self.actions, `forward`)
	return nil
}

func (self *mockSession) Refresh() error {
	self.actions = append(self.actions, `refresh`)
	return nil
}

func (self *mockSession) CurrentURL() (string, error) {
	return self.url, nil
}

func (self *mockSession) Title() (string, error) {
	return self.title, nil
}

func (self *mockSession) Find(loc browser.Locator) (browser.Element, error) {
	var key = locKey(string(loc.By), loc.Value)

	self.findCalls[key] += 1

	if err, ok := self.findErrs[key]; ok {
		return nil, err
	}

	if self.findCalls[key] <= self.notBefore[key] {
		return nil, fmt.Errorf("%w: %v", browser.ErrElementNotFound, loc)
	}

	if el, ok := self.elements[key]; ok {
		return el, nil
	}

	return nil, fmt.Errorf("%w: %v", browser.ErrElementNotFound, loc)
}

func (self *mockSession) ActiveElement() (browser.Element, error) {
	if self.active != nil {
		return self.active, nil
	}

	return nil, fmt.Errorf("%w: no focused element", browser.ErrElementNotFound)
}

func (self *mockSession) Hover(el browser.Element) error {
	self.actions = append(self.actions, `hover`)
	return nil
}

func (self *mockSession) RightClick(el browser.Element) error {
	self.actions = append(self.actions, `rclick`)
	return nil
}

func (self *mockSession) DoubleClick(el browser.Element) error {
	self.actions = append(self.actions, `dclick`)
	return nil
}

func (self *mockSession) DragAndDrop(src browser.Element, dst browser.Element) error {
	self.actions = append(self.actions, `drag_drop`)
	return nil
}

func (self *mockSession) DragByOffset(el browser.Element, x int, y int) error {
	self.actions = append(self.actions, fmt.Sprintf("drag_offset %d %d", x, y))
	return nil
}

func (self *mockSession) SendKeyActions(el browser.Element, actions []scripting.KeyAction) error {
	var target = el.(*mockElement)

	for _, action := range actions {
		target.keys = append(target.keys, action.String())
	}

	return nil
}

func (self *mockSession) SelectOption(el browser.Element, mode browser.SelectMode, value string) error {
	self.actions = append(self.actions, fmt.Sprintf("select %s %s", mode, value))
	return nil
}

func (self *mockSession) ClickJS(el browser.Element) error {
	el.(*mockElement).clicks += 1
	return nil
}

func (self *mockSession) SetTextJS(el browser.Element, text string) error {
	el.(*mockElement).text = text
	return nil
}

func (self *mockSession) SetTextCE(el browser.Element, text string) error {
	el.(*mockElement).text = text
	return nil
}

func (self *mockSession) ScrollIntoView(el browser.Element, block string) error {
	self.actions = append(self.actions, `scroll_into_view `+block)
	return nil
}

func (self *mockSession) ExecuteScript(code string, args []interface{}) (interface{}, error) {
	self.scripts = append(self.scripts, code)
	return nil, nil
}

func (self *mockSession) SwitchFrame(ref browser.FrameRef) error {
	self.switches = append(self.switches, ref.String())
	return nil
}

func (self *mockSession) SwitchToDefault() error {
	self.switches = append(self.switches, `default`)
	return nil
}

func (self *mockSession) WindowHandles() ([]string, error) {
	var handles = make([]string, len(self.windows))
	copy(handles, self.windows)
	return handles, nil
}

func (self *mockSession) ActiveWindow() (string, error) {
	return self.current, nil
}

func (self *mockSession) SwitchWindow(handle string) error {
	self.current = handle
	return nil
}

func (self *mockSession) CloseWindow(handle string) error {
	self.closed = append(self.closed, handle)

	var kept = self.windows[:0]

	for _, existing := range self.windows {
		if existing != handle {
			kept = append(kept, existing)
		}
	}

	self.windows = kept
	return nil
}

func (self *mockSession) MaximizeWindow() error {
	self.actions = append(self.actions, `maximize`)
	return nil
}

func (self *mockSession) MinimizeWindow() error {
	return browser.ErrNotSupported
}

func (self *mockSession) ResizeWindow(width int, height int) error {
	self.actions = append(self.actions, fmt.Sprintf("resize %dx%d", width, height))
	return nil
}

func (self *mockSession) Cookie(name string) (*browser.Cookie, error) {
	if cookie, ok := self.cookies[name]; ok {
		return cookie, nil
	}

	return nil, fmt.Errorf("no cookie named %q", name)
}

func (self *mockSession) SetCookie(cookie *browser.Cookie) error {
	self.cookies[cookie.Name] = cookie
	return nil
}

func (self *mockSession) DeleteCookie(name string) error {
	delete(self.cookies, name)
	return nil
}

func (self *mockSession) ClearCookies() error {
	self.cookies = make(map[string]*browser.Cookie)
	return nil
}

func (self *mockSession) Screenshot() ([]byte, error) {
	return []byte(`png`), nil
}

func (self *mockSession) Quit() error {
	self.quit = true
	return nil
}
