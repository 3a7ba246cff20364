package commands

import (
	"fmt"
	"strings"

	"github.com/ghetzel/go-stockutil/stringutil"
	"github.com/nelabs/webscript/browser"
)

func (self *Commands) doCookieSet(args []string) error {
	return self.session.SetCookie(&browser.Cookie{
		Name:  args[0],
		Value: args[1],
	})
}

// cookies_set takes a batch in "name:value;name:value" form.
func (self *Commands) doCookiesSet(args []string) error {
	for _, pair := range strings.Split(args[0], `;`) {
		if strings.TrimSpace(pair) == `` {
			continue
		}

		var name, value = stringutil.SplitPair(pair, `:`)
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)

		if name == `` || value == `` {
			return fmt.Errorf("%w: malformed cookie %q, want name:value", ErrArgument, pair)
		}

		if err := self.session.SetCookie(&browser.Cookie{
			Name:  name,
			Value: value,
		}); err != nil {
			return err
		}
	}

	return nil
}

// cookie_get prints the named cookie, or an empty line when it is absent.
func (self *Commands) doCookieGet(args []string) error {
	if cookie, err := self.session.Cookie(args[0]); err == nil {
		fmt.Fprintf(self.stdout, "%s=%s; domain=%s; path=%s\n", cookie.Name, cookie.Value, cookie.Domain, cookie.Path)
	} else {
		fmt.Fprintln(self.stdout, ``)
	}

	return nil
}

func (self *Commands) doCookieDelete(args []string) error {
	return self.session.DeleteCookie(args[0])
}

func (self *Commands) doCookieClear(args []string) error {
	return self.session.ClearCookies()
}
