package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ghetzel/go-stockutil/log"
	"github.com/ghetzel/go-stockutil/pathutil"
	defaults "github.com/mcuadros/go-defaults"
	"github.com/phayes/freeport"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/firefox"
)

type BrowserKind string

const (
	Edge    BrowserKind = `edge`
	Chrome  BrowserKind = `chrome`
	Firefox BrowserKind = `firefox`
)

func ParseBrowserKind(name string) (BrowserKind, error) {
	switch kind := BrowserKind(name); kind {
	case Edge, Chrome, Firefox:
		return kind, nil
	default:
		return ``, fmt.Errorf("unsupported browser %q", name)
	}
}

var DefaultStartWait = 500 * time.Millisecond

// Chromium drops these in a profile directory that is already in use by
// another process.
var profileLockFiles = []string{
	`SingletonLock`,
	`SingletonCookie`,
	`SingletonSocket`,
	`SingletonStartupLock`,
}

var defaultDriverBinaries = map[BrowserKind]string{
	Edge:    `msedgedriver`,
	Chrome:  `chromedriver`,
	Firefox: `geckodriver`,
}

// Launcher starts a local WebDriver service for the selected browser and
// opens a session against it.
type Launcher struct {
	Browser          string        `json:"browser" default:"edge"`
	DriverPath       string        `json:"driver_path"`
	Headless         bool          `json:"headless"`
	UserAgent        string        `json:"user_agent"`
	UserDataDir      string        `json:"user_data_dir"`
	ProfileDirectory string        `json:"profile_directory"`
	StartWait        time.Duration `json:"start_wait"`
	service          *selenium.Service
}

func NewLauncher() *Launcher {
	var launcher = new(Launcher)

	defaults.SetDefaults(launcher)
	launcher.StartWait = DefaultStartWait

	return launcher
}

func (self *Launcher) driverBinary(kind BrowserKind) string {
	if self.DriverPath != `` {
		return self.DriverPath
	}

	return defaultDriverBinaries[kind]
}

// prepareUserDataDir expands and creates the profile directory, falling back
// to a unique sibling directory when the requested one is locked by another
// browser process.
func (self *Launcher) prepareUserDataDir() (string, error) {
	if self.UserDataDir == `` {
		return ``, nil
	}

	dir, err := pathutil.ExpandUser(self.UserDataDir)

	if err != nil {
		return ``, err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return ``, err
	}

	for _, lock := range profileLockFiles {
		if pathutil.Exists(filepath.Join(dir, lock)) {
			var unique = fmt.Sprintf("%s_%d", dir, time.Now().Unix())

			if err := os.MkdirAll(unique, 0755); err != nil {
				return ``, err
			}

			log.Noticef("[launch] profile %s is locked, using %s instead", dir, unique)
			return unique, nil
		}
	}

	return dir, nil
}

func (self *Launcher) chromiumArgs(userDataDir string) []string {
	var args []string

	if self.Headless {
		args = append(args, `--headless=new`)
	}

	args = append(args, `--disable-gpu`)

	if self.UserAgent != `` {
		args = append(args, `--user-agent=`+self.UserAgent)
	}

	if userDataDir != `` {
		args = append(args, `--user-data-dir=`+userDataDir)
	}

	if self.ProfileDirectory != `` {
		args = append(args, `--profile-directory=`+self.ProfileDirectory)
	}

	return args
}

// Launch starts the driver service and opens a WebDriver session. The caller
// owns the returned session; its Quit also stops the service.
func (self *Launcher) Launch() (*WebDriverSession, error) {
	kind, err := ParseBrowserKind(self.Browser)

	if err != nil {
		return nil, err
	}

	port, err := freeport.GetFreePort()

	if err != nil {
		return nil, fmt.Errorf("could not allocate driver port: %v", err)
	}

	userDataDir, err := self.prepareUserDataDir()

	if err != nil {
		return nil, err
	}

	var caps selenium.Capabilities
	var urlPrefix string

	switch kind {
	case Chrome, Edge:
		if service, err := selenium.NewChromeDriverService(self.driverBinary(kind), port); err == nil {
			self.service = service
		} else {
			return nil, fmt.Errorf("could not start driver service: %v", err)
		}

		var browserName = `chrome`

		if kind == Edge {
			browserName = `MicrosoftEdge`
		}

		caps = selenium.Capabilities{`browserName`: browserName}
		caps.AddChrome(chrome.Capabilities{
			Args: self.chromiumArgs(userDataDir),
		})

		urlPrefix = fmt.Sprintf("http://localhost:%d/wd/hub", port)

	case Firefox:
		if service, err := selenium.NewGeckoDriverService(self.driverBinary(kind), port); err == nil {
			self.service = service
		} else {
			return nil, fmt.Errorf("could not start driver service: %v", err)
		}

		var args []string

		if self.Headless {
			args = append(args, `-headless`)
		}

		caps = selenium.Capabilities{`browserName`: `firefox`}
		caps.AddFirefox(firefox.Capabilities{
			Args: args,
		})

		urlPrefix = fmt.Sprintf("http://localhost:%d", port)
	}

	time.Sleep(self.StartWait)

	if wd, err := selenium.NewRemote(caps, urlPrefix); err == nil {
		log.Debugf("[launch] %s session open via %s", kind, urlPrefix)

		var session = NewWebDriverSession(wd)
		session.cleanup = self.Stop
		return session, nil
	} else {
		self.Stop()
		return nil, fmt.Errorf("could not open browser session: %v", err)
	}
}

func (self *Launcher) Stop() error {
	if self.service != nil {
		var service = self.service
		self.service = nil
		return service.Stop()
	}

	return nil
}
