package commands

// Entry describes one canonical command: its arity bounds, whether trailing
// arguments collapse into one, whether it needs an active window context, and
// the handler invoked once validation passes.
type Entry struct {
	Name        string
	MinArgs     int
	MaxArgs     int // -1 = unbounded
	JoinFrom    int // -1 = no joining; otherwise args[JoinFrom:] merge into one
	NeedsWindow bool
	Handler     func(self *Commands, args []string) error
}

// registry maps canonical command names to their entries. It is built once at
// process start and never mutated afterwards.
var registry = buildRegistry()

func buildRegistry() map[string]*Entry {
	var table = make(map[string]*Entry)

	var add = func(name string, minArgs int, maxArgs int, handler func(*Commands, []string) error) *Entry {
		var entry = &Entry{
			Name:        name,
			MinArgs:     minArgs,
			MaxArgs:     maxArgs,
			JoinFrom:    -1,
			NeedsWindow: true,
			Handler:     handler,
		}

		table[name] = entry
		return entry
	}

	// element interaction
	add(`click`, 2, 2, (*Commands).doClick)
	add(`rclick`, 2, 2, (*Commands).doRightClick)
	add(`dclick`, 2, 2, (*Commands).doDoubleClick)
	add(`hover`, 2, 2, (*Commands).doHover)
	add(`click_js`, 2, 2, (*Commands).doClickJS)
	add(`clear`, 2, 2, (*Commands).doClear)
	add(`write`, 3, -1, (*Commands).doWrite).JoinFrom = 2
	add(`send_keys`, 3, -1, (*Commands).doSendKeys)
	add(`press`, 1, -1, (*Commands).doPress)
	add(`write_ce`, 3, -1, (*Commands).doWriteCE).JoinFrom = 2
	add(`write_js`, 3, -1, (*Commands).doWriteJS).JoinFrom = 2

	// drag
	add(`drag_drop`, 4, 4, (*Commands).doDragDrop)
	add(`drag_offset`, 4, 4, (*Commands).doDragOffset)

	// navigation
	add(`goto`, 1, 1, (*Commands).doGoto)
	add(`back`, 0, 0, (*Commands).doBack)
	add(`forward`, 0, 0, (*Commands).doForward)
	add(`refresh`, 0, 0, (*Commands).doRefresh)
	add(`maximize`, 0, 0, (*Commands).doMaximize)
	add(`minimize`, 0, 0, (*Commands).doMinimize)
	add(`set_window`, 2, 2, (*Commands).doSetWindow)

	// frames
	add(`frame`, 2, 2, (*Commands).doFrame)
	add(`frame_index`, 1, 1, (*Commands).doFrameIndex)
	add(`frame_parent`, 0, 0, (*Commands).doFrameParent)
	add(`frame_default`, 0, 0, (*Commands).doFrameDefault)

	// windows; latest/index are how a window context is (re)established
	add(`window_latest`, 0, 0, (*Commands).doWindowLatest).NeedsWindow = false
	add(`window_index`, 1, 1, (*Commands).doWindowIndex).NeedsWindow = false
	add(`window_close`, 0, 0, (*Commands).doWindowClose)

	// explicit waits
	add(`wait_present`, 2, 3, (*Commands).doWaitPresent)
	add(`wait_visible`, 2, 3, (*Commands).doWaitVisible)
	add(`wait_clickable`, 2, 3, (*Commands).doWaitClickable)
	add(`wait_invisible`, 2, 3, (*Commands).doWaitInvisible)
	add(`wait_text`, 3, 4, (*Commands).doWaitText)
	add(`wait_url_contains`, 1, 2, (*Commands).doWaitURLContains)
	add(`wait_title_contains`, 1, 2, (*Commands).doWaitTitleContains)

	// scrolling
	add(`scroll_into_view`, 2, 3, (*Commands).doScrollIntoView)
	add(`scroll_by`, 2, 2, (*Commands).doScrollBy)
	add(`scroll_top`, 0, 0, (*Commands).doScrollTop)
	add(`scroll_bottom`, 0, 0, (*Commands).doScrollBottom)

	// dropdowns
	add(`select`, 4, 4, (*Commands).doSelect)

	// upload, capture, javascript
	add(`upload`, 3, 3, (*Commands).doUpload)
	add(`screenshot`, 1, 1, (*Commands).doScreenshot)
	add(`screenshot_element`, 3, 3, (*Commands).doScreenshotElement)
	add(`exec_js`, 1, -1, (*Commands).doExecJS).JoinFrom = 0

	// assertions and output
	add(`assert_text`, 3, -1, (*Commands).doAssertText).JoinFrom = 2
	add(`assert_url_contains`, 1, -1, (*Commands).doAssertURLContains).JoinFrom = 0
	add(`assert_title_contains`, 1, -1, (*Commands).doAssertTitleContains).JoinFrom = 0
	add(`print_text`, 2, 2, (*Commands).doPrintText)
	add(`print_attr`, 3, 3, (*Commands).doPrintAttr)
	add(`echo`, 0, -1, (*Commands).doEcho).NeedsWindow = false

	// cookies
	add(`cookie_set`, 2, 2, (*Commands).doCookieSet)
	add(`cookies_set`, 1, 1, (*Commands).doCookiesSet)
	add(`cookie_get`, 1, 1, (*Commands).doCookieGet)
	add(`cookie_delete`, 1, 1, (*Commands).doCookieDelete)
	add(`cookie_clear`, 0, 0, (*Commands).doCookieClear)

	// everything else
	add(`sleep`, 1, 1, (*Commands).doSleep).NeedsWindow = false
	add(`pause`, 0, 0, (*Commands).doPause).NeedsWindow = false
	add(`keep_open`, 0, 0, (*Commands).doKeepOpen).NeedsWindow = false
	add(`set_var`, 2, 2, (*Commands).doSetVar).NeedsWindow = false

	return table
}
