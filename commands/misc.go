package commands

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/ghetzel/go-stockutil/log"
)

func (self *Commands) doSleep(args []string) error {
	seconds, err := intArg(`seconds`, args[0])

	if err != nil {
		return err
	}

	time.Sleep(time.Duration(seconds) * time.Second)
	return nil
}

// pause blocks for operator input when a terminal is attached, and is skipped
// otherwise. It never fails.
func (self *Commands) doPause(args []string) error {
	if !self.ctx.Interactive {
		log.Noticef("pause skipped: no interactive input available")
		return nil
	}

	fmt.Fprint(self.stdout, "press enter to continue ... ")

	if _, err := bufio.NewReader(os.Stdin).ReadString('\n'); err != nil {
		log.Debugf("pause: %v", err)
	}

	return nil
}

// keep_open transfers session teardown to the operator: after the run ends,
// the browser stays up.
func (self *Commands) doKeepOpen(args []string) error {
	self.ctx.KeepOpen = true
	return nil
}

func (self *Commands) doSetVar(args []string) error {
	self.ctx.SetVar(args[0], args[1])
	return nil
}
