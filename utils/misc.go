package utils

import "time"

// FudgeTimeout allows timeouts to be given as bare integers representing
// seconds: a duration smaller than one millisecond almost certainly arrived
// as a plain integer, so reinterpret it.
func FudgeTimeout(timeout time.Duration) time.Duration {
	if timeout > 0 && timeout < time.Millisecond {
		return time.Duration(int(timeout)) * time.Second
	}

	return timeout
}
