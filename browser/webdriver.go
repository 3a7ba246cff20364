package browser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ghetzel/go-stockutil/log"
	"github.com/nelabs/webscript/scripting"
	"github.com/tebeka/selenium"
)

// seleniumStrategies maps the BY enumeration onto WebDriver locator strategy
// names.
var seleniumStrategies = map[By]string{
	ByXPath:       selenium.ByXPATH,
	ByCSS:         selenium.ByCSSSelector,
	ByID:          selenium.ByID,
	ByName:        selenium.ByName,
	ByClass:       selenium.ByClassName,
	ByTag:         selenium.ByTagName,
	ByLink:        selenium.ByLinkText,
	ByPartialLink: selenium.ByPartialLinkText,
}

// seleniumKeys maps canonical special key names onto WebDriver key codepoints.
var seleniumKeys = map[string]string{
	`ENTER`:     selenium.EnterKey,
	`TAB`:       selenium.TabKey,
	`ESCAPE`:    selenium.EscapeKey,
	`SPACE`:     selenium.SpaceKey,
	`BACKSPACE`: selenium.BackspaceKey,
	`DELETE`:    selenium.DeleteKey,
	`HOME`:      selenium.HomeKey,
	`END`:       selenium.EndKey,
	`PAGE_UP`:   selenium.PageUpKey,
	`PAGE_DOWN`: selenium.PageDownKey,
	`LEFT`:      selenium.LeftArrowKey,
	`RIGHT`:     selenium.RightArrowKey,
	`UP`:        selenium.UpArrowKey,
	`DOWN`:      selenium.DownArrowKey,
	`CTRL`:      selenium.ControlKey,
	`SHIFT`:     selenium.ShiftKey,
	`ALT`:       selenium.AltKey,
	`CMD`:       selenium.MetaKey,
	`META`:      selenium.MetaKey,
}

const jsClick = `arguments[0].click();`

const jsScrollIntoView = `arguments[0].scrollIntoView({block: arguments[1], inline: 'nearest'});`

// jsSetValue writes through the input/textarea prototype value setter so that
// framework-managed fields (React, Vue) observe the change, then fires the
// input and change events.
const jsSetValue = `
	var el = arguments[0], text = arguments[1];
	var tag = el.tagName ? el.tagName.toLowerCase() : '';
	if (tag === 'input' || tag === 'textarea') {
		var proto = (tag === 'input') ? HTMLInputElement.prototype : HTMLTextAreaElement.prototype;
		var desc = Object.getOwnPropertyDescriptor(proto, 'value');
		if (desc && desc.set) { desc.set.call(el, text); } else { el.value = text; }
	} else {
		el.textContent = text;
	}
	el.dispatchEvent(new Event('input', {bubbles: true}));
	el.dispatchEvent(new Event('change', {bubbles: true}));
	try { el.focus(); } catch (e) {}
`

// jsSetContentEditable clears a contenteditable (or role=textbox) element and
// inserts text via execCommand, falling back to textContent plus synthetic
// input events.
const jsSetContentEditable = `
	var el = arguments[0], text = arguments[1];
	try { el.focus(); } catch (e) {}
	try {
		var sel = window.getSelection && window.getSelection();
		if (sel && sel.rangeCount) { sel.removeAllRanges(); }
		var range = document.createRange();
		range.selectNodeContents(el);
		if (sel) { sel.addRange(range); }
		document.execCommand('delete');
	} catch (e) {
		try { el.textContent = ''; } catch (e2) {}
	}
	var ok = false;
	try { ok = document.execCommand && document.execCommand('insertText', false, text); } catch (e) {}
	if (!ok) {
		try { el.textContent = text; } catch (e) {}
		el.dispatchEvent(new Event('input', {bubbles: true}));
		el.dispatchEvent(new Event('change', {bubbles: true}));
	}
`

// WebDriverSession implements Session against a live WebDriver connection.
type WebDriverSession struct {
	wd      selenium.WebDriver
	cleanup func() error
}

func NewWebDriverSession(wd selenium.WebDriver) *WebDriverSession {
	return &WebDriverSession{wd: wd}
}

// classifyDriverErr folds the remote driver's stringly-typed failures into
// the local error taxonomy. Unrecognized errors pass through unchanged.
func classifyDriverErr(err error) error {
	if err == nil {
		return nil
	}

	var msg = strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, `no such element`),
		strings.Contains(msg, `unable to locate element`),
		strings.Contains(msg, `unable to find element`),
		strings.Contains(msg, `stale element reference`):
		return fmt.Errorf("%w: %v", ErrElementNotFound, err)
	case strings.Contains(msg, `invalid selector`),
		strings.Contains(msg, `invalid xpath`),
		strings.Contains(msg, `invalid element state`):
		return fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	case strings.Contains(msg, `not interactable`),
		strings.Contains(msg, `not clickable`),
		strings.Contains(msg, `element is not currently visible`):
		return fmt.Errorf("%w: %v", ErrNotInteractable, err)
	case strings.Contains(msg, `no such window`),
		strings.Contains(msg, `window already closed`):
		return fmt.Errorf("%w: %v", ErrNoActiveWindow, err)
	case strings.Contains(msg, `no such frame`):
		return fmt.Errorf("%w: %v", ErrNavigation, err)
	}

	return err
}

type webElement struct {
	el selenium.WebElement
}

func (self *webElement) Click() error {
	return classifyDriverErr(self.el.Click())
}

func (self *webElement) Clear() error {
	return classifyDriverErr(self.el.Clear())
}

func (self *webElement) SendKeys(text string) error {
	return classifyDriverErr(self.el.SendKeys(text))
}

func (self *webElement) Text() (string, error) {
	if text, err := self.el.Text(); err == nil {
		return text, nil
	} else {
		return ``, classifyDriverErr(err)
	}
}

func (self *webElement) Attr(name string) (string, error) {
	if value, err := self.el.GetAttribute(name); err == nil {
		return value, nil
	} else {
		return ``, classifyDriverErr(err)
	}
}

func (self *webElement) Displayed() (bool, error) {
	if visible, err := self.el.IsDisplayed(); err == nil {
		return visible, nil
	} else {
		return false, classifyDriverErr(err)
	}
}

func (self *webElement) Enabled() (bool, error) {
	if enabled, err := self.el.IsEnabled(); err == nil {
		return enabled, nil
	} else {
		return false, classifyDriverErr(err)
	}
}

func (self *webElement) Screenshot() ([]byte, error) {
	if data, err := self.el.Screenshot(true); err == nil {
		return data, nil
	} else {
		return nil, classifyDriverErr(err)
	}
}

// unwrap recovers the underlying WebElement from an Element produced by this
// session.
func unwrap(el Element) (selenium.WebElement, error) {
	if we, ok := el.(*webElement); ok {
		return we.el, nil
	}

	return nil, fmt.Errorf("element handle does not belong to this session")
}

func (self *WebDriverSession) Navigate(url string) error {
	return classifyDriverErr(self.wd.Get(url))
}

func (self *WebDriverSession) Back() error {
	return classifyDriverErr(self.wd.Back())
}

func (self *WebDriverSession) Forward() error {
	return classifyDriverErr(self.wd.Forward())
}

func (self *WebDriverSession) Refresh() error {
	return classifyDriverErr(self.wd.Refresh())
}

func (self *WebDriverSession) CurrentURL() (string, error) {
	if url, err := self.wd.CurrentURL(); err == nil {
		return url, nil
	} else {
		return ``, classifyDriverErr(err)
	}
}

func (self *WebDriverSession) Title() (string, error) {
	if title, err := self.wd.Title(); err == nil {
		return title, nil
	} else {
		return ``, classifyDriverErr(err)
	}
}

func (self *WebDriverSession) Find(loc Locator) (Element, error) {
	var strategy, ok = seleniumStrategies[loc.By]

	if !ok {
		return nil, fmt.Errorf("%w: unknown locator strategy %q", ErrInvalidQuery, loc.By)
	}

	if el, err := self.wd.FindElement(strategy, loc.Value); err == nil {
		return &webElement{el: el}, nil
	} else {
		return nil, classifyDriverErr(err)
	}
}

func (self *WebDriverSession) ActiveElement() (Element, error) {
	if el, err := self.wd.ActiveElement(); err == nil {
		return &webElement{el: el}, nil
	} else {
		return nil, classifyDriverErr(err)
	}
}

func (self *WebDriverSession) Hover(el Element) error {
	if we, err := unwrap(el); err == nil {
		return classifyDriverErr(we.MoveTo(0, 0))
	} else {
		return err
	}
}

func (self *WebDriverSession) RightClick(el Element) error {
	if we, err := unwrap(el); err == nil {
		if err := we.MoveTo(0, 0); err != nil {
			return classifyDriverErr(err)
		}

		return classifyDriverErr(self.wd.Click(selenium.RightButton))
	} else {
		return err
	}
}

func (self *WebDriverSession) DoubleClick(el Element) error {
	if we, err := unwrap(el); err == nil {
		if err := we.MoveTo(0, 0); err != nil {
			return classifyDriverErr(err)
		}

		return classifyDriverErr(self.wd.DoubleClick())
	} else {
		return err
	}
}

func (self *WebDriverSession) DragAndDrop(src Element, dst Element) error {
	srcEl, err := unwrap(src)

	if err != nil {
		return err
	}

	dstEl, err := unwrap(dst)

	if err != nil {
		return err
	}

	for _, step := range []func() error{
		func() error { return srcEl.MoveTo(0, 0) },
		self.wd.ButtonDown,
		func() error { return dstEl.MoveTo(0, 0) },
		self.wd.ButtonUp,
	} {
		if err := step(); err != nil {
			return classifyDriverErr(err)
		}
	}

	return nil
}

func (self *WebDriverSession) DragByOffset(el Element, xOffset int, yOffset int) error {
	we, err := unwrap(el)

	if err != nil {
		return err
	}

	for _, step := range []func() error{
		func() error { return we.MoveTo(0, 0) },
		self.wd.ButtonDown,
		func() error { return we.MoveTo(xOffset, yOffset) },
		self.wd.ButtonUp,
	} {
		if err := step(); err != nil {
			return classifyDriverErr(err)
		}
	}

	return nil
}

// renderKeyActions flattens decoded key actions into one WebDriver key
// sequence. Chords emit modifier+key followed by the NULL key, which releases
// held modifiers per the WebDriver input model.
func renderKeyActions(actions []scripting.KeyAction) (string, error) {
	var sequence strings.Builder

	for _, action := range actions {
		switch action.Type {
		case scripting.SpecialKey:
			if key, ok := seleniumKeys[action.Name]; ok {
				sequence.WriteString(key)
			} else {
				return ``, fmt.Errorf("%w: unmapped key name %q", scripting.ErrKeyDecode, action.Name)
			}
		case scripting.ChordKey:
			if modifier, ok := seleniumKeys[action.Modifier]; ok {
				sequence.WriteString(modifier)
				sequence.WriteString(action.Key)
				sequence.WriteString(selenium.NullKey)
			} else {
				return ``, fmt.Errorf("%w: unmapped modifier %q", scripting.ErrKeyDecode, action.Modifier)
			}
		default:
			sequence.WriteString(action.Text)
		}
	}

	return sequence.String(), nil
}

func (self *WebDriverSession) SendKeyActions(el Element, actions []scripting.KeyAction) error {
	if sequence, err := renderKeyActions(actions); err == nil {
		return el.SendKeys(sequence)
	} else {
		return err
	}
}

// xpathLiteral quotes an arbitrary string for embedding in an XPath
// expression, using concat() when the value mixes both quote characters.
func xpathLiteral(value string) string {
	if !strings.Contains(value, `'`) {
		return `'` + value + `'`
	}

	if !strings.Contains(value, `"`) {
		return `"` + value + `"`
	}

	var parts = strings.Split(value, `'`)

	for i, part := range parts {
		parts[i] = `'` + part + `'`
	}

	return `concat(` + strings.Join(parts, `, "'", `) + `)`
}

func (self *WebDriverSession) SelectOption(el Element, mode SelectMode, value string) error {
	we, err := unwrap(el)

	if err != nil {
		return err
	}

	switch mode {
	case SelectByText:
		if option, err := we.FindElement(selenium.ByXPATH, fmt.Sprintf(`.//option[normalize-space(.)=%s]`, xpathLiteral(value))); err == nil {
			return classifyDriverErr(option.Click())
		} else {
			return classifyDriverErr(err)
		}
	case SelectByValue:
		if option, err := we.FindElement(selenium.ByXPATH, fmt.Sprintf(`.//option[@value=%s]`, xpathLiteral(value))); err == nil {
			return classifyDriverErr(option.Click())
		} else {
			return classifyDriverErr(err)
		}
	case SelectByIndex:
		if options, err := we.FindElements(selenium.ByTagName, `option`); err == nil {
			index, err := strconv.Atoi(value)

			if err != nil {
				return fmt.Errorf("option index must be an integer, got %q", value)
			}

			if index < 0 || index >= len(options) {
				return fmt.Errorf("%w: option index %d out of range (%d options)", ErrElementNotFound, index, len(options))
			}

			return classifyDriverErr(options[index].Click())
		} else {
			return classifyDriverErr(err)
		}
	default:
		return fmt.Errorf("unknown select mode %q", mode)
	}
}

func (self *WebDriverSession) ClickJS(el Element) error {
	if we, err := unwrap(el); err == nil {
		_, err := self.wd.ExecuteScript(jsClick, []interface{}{we})
		return classifyDriverErr(err)
	} else {
		return err
	}
}

func (self *WebDriverSession) SetTextJS(el Element, text string) error {
	if we, err := unwrap(el); err == nil {
		if err := self.ScrollIntoView(el, `center`); err != nil {
			log.Debugf("[session] pre-write scroll failed: %v", err)
		}

		_, err := self.wd.ExecuteScript(jsSetValue, []interface{}{we, text})
		return classifyDriverErr(err)
	} else {
		return err
	}
}

func (self *WebDriverSession) SetTextCE(el Element, text string) error {
	if we, err := unwrap(el); err == nil {
		if err := self.ScrollIntoView(el, `center`); err != nil {
			log.Debugf("[session] pre-write scroll failed: %v", err)
		}

		_, err := self.wd.ExecuteScript(jsSetContentEditable, []interface{}{we, text})
		return classifyDriverErr(err)
	} else {
		return err
	}
}

func (self *WebDriverSession) ScrollIntoView(el Element, block string) error {
	if we, err := unwrap(el); err == nil {
		_, err := self.wd.ExecuteScript(jsScrollIntoView, []interface{}{we, block})
		return classifyDriverErr(err)
	} else {
		return err
	}
}

func (self *WebDriverSession) ExecuteScript(code string, args []interface{}) (interface{}, error) {
	if result, err := self.wd.ExecuteScript(code, args); err == nil {
		return result, nil
	} else {
		return nil, classifyDriverErr(err)
	}
}

func (self *WebDriverSession) SwitchFrame(ref FrameRef) error {
	if ref.ByIndex() {
		return classifyDriverErr(self.wd.SwitchFrame(ref.Index))
	}

	if el, err := self.Find(*ref.Locator); err == nil {
		if we, err := unwrap(el); err == nil {
			return classifyDriverErr(self.wd.SwitchFrame(we))
		} else {
			return err
		}
	} else {
		return err
	}
}

func (self *WebDriverSession) SwitchToDefault() error {
	return classifyDriverErr(self.wd.SwitchFrame(nil))
}

func (self *WebDriverSession) WindowHandles() ([]string, error) {
	if handles, err := self.wd.WindowHandles(); err == nil {
		return handles, nil
	} else {
		return nil, classifyDriverErr(err)
	}
}

func (self *WebDriverSession) ActiveWindow() (string, error) {
	if handle, err := self.wd.CurrentWindowHandle(); err == nil {
		return handle, nil
	} else {
		return ``, classifyDriverErr(err)
	}
}

func (self *WebDriverSession) SwitchWindow(handle string) error {
	return classifyDriverErr(self.wd.SwitchWindow(handle))
}

func (self *WebDriverSession) CloseWindow(handle string) error {
	return classifyDriverErr(self.wd.CloseWindow(handle))
}

func (self *WebDriverSession) MaximizeWindow() error {
	return classifyDriverErr(self.wd.MaximizeWindow(``))
}

func (self *WebDriverSession) MinimizeWindow() error {
	// the wire client exposes no minimize endpoint
	return ErrNotSupported
}

func (self *WebDriverSession) ResizeWindow(width int, height int) error {
	return classifyDriverErr(self.wd.ResizeWindow(``, width, height))
}

func (self *WebDriverSession) Cookie(name string) (*Cookie, error) {
	if cookie, err := self.wd.GetCookie(name); err == nil {
		return &Cookie{
			Name:   cookie.Name,
			Value:  cookie.Value,
			Domain: cookie.Domain,
			Path:   cookie.Path,
			Secure: cookie.Secure,
		}, nil
	} else {
		return nil, classifyDriverErr(err)
	}
}

func (self *WebDriverSession) SetCookie(cookie *Cookie) error {
	return classifyDriverErr(self.wd.AddCookie(&selenium.Cookie{
		Name:   cookie.Name,
		Value:  cookie.Value,
		Domain: cookie.Domain,
		Path:   cookie.Path,
		Secure: cookie.Secure,
	}))
}

func (self *WebDriverSession) DeleteCookie(name string) error {
	return classifyDriverErr(self.wd.DeleteCookie(name))
}

func (self *WebDriverSession) ClearCookies() error {
	return classifyDriverErr(self.wd.DeleteAllCookies())
}

func (self *WebDriverSession) Screenshot() ([]byte, error) {
	if data, err := self.wd.Screenshot(); err == nil {
		return data, nil
	} else {
		return nil, classifyDriverErr(err)
	}
}

func (self *WebDriverSession) Quit() error {
	var err = self.wd.Quit()

	if self.cleanup != nil {
		if cerr := self.cleanup(); cerr != nil {
			log.Warningf("[session] cleanup: %v", cerr)
		}
	}

	return classifyDriverErr(err)
}
