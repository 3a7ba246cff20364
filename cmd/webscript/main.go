package main

import (
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/ghetzel/cli"
	"github.com/ghetzel/go-stockutil/log"
	webscript "github.com/nelabs/webscript"
	"github.com/nelabs/webscript/browser"
	"github.com/nelabs/webscript/commands"
	"github.com/nelabs/webscript/scripting"
)

const (
	exitScriptError = 1
	exitSetupError  = 2
)

func main() {
	app := cli.NewApp()
	app.Name = `webscript`
	app.Usage = webscript.Slogan
	app.Version = webscript.Version
	app.EnableBashCompletion = true

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   `log-level, L`,
			Usage:  `Level of log output verbosity`,
			Value:  `info`,
			EnvVar: `LOGLEVEL`,
		},
		cli.StringFlag{
			Name:  `commands, c`,
			Usage: `Path to the command script to execute.`,
			Value: `command.txt`,
		},
		cli.IntFlag{
			Name:  `timeout, t`,
			Usage: `Default explicit-wait timeout, in seconds.`,
			Value: 15,
		},
		cli.StringFlag{
			Name:  `browser, b`,
			Usage: `Which browser to drive: edge, chrome, firefox`,
			Value: `edge`,
		},
		cli.StringFlag{
			Name:  `driver-path`,
			Usage: `Path to the browser driver binary (default: found in PATH).`,
		},
		cli.StringFlag{
			Name:  `start-url`,
			Usage: `A URL to open before the script starts.`,
		},
		cli.BoolFlag{
			Name:  `headless`,
			Usage: `Run the browser without a visible window.`,
		},
		cli.BoolFlag{
			Name:  `maximize`,
			Usage: `Maximize the browser window after launch.`,
		},
		cli.StringFlag{
			Name:  `user-agent`,
			Usage: `Override the browser User-Agent.`,
		},
		cli.StringFlag{
			Name:  `user-data-dir`,
			Usage: `Browser profile data directory.`,
		},
		cli.StringFlag{
			Name:  `profile-directory`,
			Usage: `Named profile within the user data directory.`,
		},
		cli.BoolFlag{
			Name:  `ignore-error`,
			Usage: `Log failing commands and keep executing instead of aborting.`,
		},
	}

	app.Before = func(c *cli.Context) error {
		log.SetLevelString(c.String(`log-level`))
		return nil
	}

	app.Action = func(c *cli.Context) {
		script, err := scripting.LoadScriptFile(c.String(`commands`))

		if err != nil {
			log.Criticalf("could not load script: %v", err)
			os.Exit(exitSetupError)
		}

		launcher := browser.NewLauncher()
		launcher.Browser = c.String(`browser`)
		launcher.DriverPath = c.String(`driver-path`)
		launcher.Headless = c.Bool(`headless`)
		launcher.UserAgent = c.String(`user-agent`)
		launcher.UserDataDir = c.String(`user-data-dir`)
		launcher.ProfileDirectory = c.String(`profile-directory`)

		session, err := launcher.Launch()

		if err != nil {
			log.Criticalf("could not launch browser: %v", err)
			os.Exit(exitSetupError)
		}

		if c.Bool(`maximize`) && !c.Bool(`headless`) {
			if err := session.MaximizeWindow(); err != nil {
				log.Warningf("maximize: %v", err)
			}
		}

		if url := c.String(`start-url`); url != `` {
			if err := session.Navigate(url); err != nil {
				log.Criticalf("could not open start url: %v", err)
				session.Quit()
				os.Exit(exitSetupError)
			}
		}

		env := commands.New(session, &commands.Options{
			DefaultTimeout: time.Duration(c.Int(`timeout`)) * time.Second,
			IgnoreErrors:   c.Bool(`ignore-error`),
			Interactive:    stdinIsInteractive(),
		})

		report := env.Run(script)

		if report.OK {
			color.Green("%v", report)
		} else {
			color.Red("%v", report)
		}

		if report.KeepOpen {
			log.Noticef("keep_open was set: leaving the browser running; interrupt to exit")
			waitForInterrupt()
		} else if err := session.Quit(); err != nil {
			log.Warningf("session teardown: %v", err)
		}

		if !report.OK {
			os.Exit(exitScriptError)
		}
	}

	app.Run(os.Args)
}

func stdinIsInteractive() bool {
	if info, err := os.Stdin.Stat(); err == nil {
		return (info.Mode() & os.ModeCharDevice) != 0
	}

	return false
}

func waitForInterrupt() {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt)
	<-signalChan
}
