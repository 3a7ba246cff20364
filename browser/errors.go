package browser

import (
	"errors"
)

var (
	ErrInvalidQuery    = errors.New(`invalid query expression`)
	ErrElementNotFound = errors.New(`element not found`)
	ErrNotInteractable = errors.New(`element not interactable`)
	ErrTimeout         = errors.New(`timeout`)
	ErrWindowIndex     = errors.New(`window index out of range`)
	ErrNavigation      = errors.New(`navigation error`)
	ErrNoActiveWindow  = errors.New(`no active window`)
	ErrAssertion       = errors.New(`assertion failure`)
	ErrFileNotFound    = errors.New(`file not found`)
	ErrNotSupported    = errors.New(`not supported`)
)

func IsInvalidQueryErr(err error) bool {
	return errors.Is(err, ErrInvalidQuery)
}

func IsElementNotFoundErr(err error) bool {
	return errors.Is(err, ErrElementNotFound)
}

func IsNotInteractableErr(err error) bool {
	return errors.Is(err, ErrNotInteractable)
}

func IsTimeoutErr(err error) bool {
	return errors.Is(err, ErrTimeout)
}

func IsNotSupportedErr(err error) bool {
	return errors.Is(err, ErrNotSupported)
}
