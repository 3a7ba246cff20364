// Package browser defines the session capability the command engine drives,
// the locator model, the error taxonomy, and the WebDriver-backed
// implementation of all three.
package browser

import (
	"fmt"
	"strings"
)

// By names a locator strategy.
type By string

const (
	ByXPath       By = `XPATH`
	ByCSS         By = `CSS`
	ByID          By = `ID`
	ByName        By = `NAME`
	ByClass       By = `CLASS`
	ByTag         By = `TAG`
	ByLink        By = `LINK`
	ByPartialLink By = `PLINK`
)

// Locator pairs a strategy with an opaque selector string. Selector syntax is
// not validated here; bad XPath/CSS surfaces later as a driver query error.
type Locator struct {
	By    By
	Value string
}

func (self Locator) String() string {
	return fmt.Sprintf("%s %q", self.By, self.Value)
}

// ParseBy matches a strategy name case-insensitively against the fixed
// enumeration.
func ParseBy(name string) (By, error) {
	switch by := By(strings.ToUpper(name)); by {
	case ByXPath, ByCSS, ByID, ByName, ByClass, ByTag, ByLink, ByPartialLink:
		return by, nil
	default:
		return ``, fmt.Errorf("%w: unknown locator strategy %q", ErrInvalidQuery, name)
	}
}

// NewLocator resolves a (BY, selector) token pair into a Locator.
func NewLocator(byToken string, value string) (Locator, error) {
	if by, err := ParseBy(byToken); err == nil {
		return Locator{By: by, Value: value}, nil
	} else {
		return Locator{}, err
	}
}

// FrameRef identifies one entered frame: either a frame index or the locator
// the frame element was resolved from. Keeping the locator (rather than the
// element handle) lets the frame stack be replayed after a switch back to the
// top-level document without holding stale handles.
type FrameRef struct {
	Index   int
	Locator *Locator
}

func FrameByIndex(index int) FrameRef {
	return FrameRef{Index: index}
}

func FrameByLocator(loc Locator) FrameRef {
	return FrameRef{Locator: &loc}
}

func (self FrameRef) ByIndex() bool {
	return self.Locator == nil
}

func (self FrameRef) String() string {
	if self.ByIndex() {
		return fmt.Sprintf("frame[%d]", self.Index)
	}

	return fmt.Sprintf("frame[%v]", *self.Locator)
}

// SelectMode names how a dropdown option is matched.
type SelectMode string

const (
	SelectByText  SelectMode = `text`
	SelectByValue SelectMode = `value`
	SelectByIndex SelectMode = `index`
)

func ParseSelectMode(name string) (SelectMode, error) {
	switch mode := SelectMode(strings.ToLower(name)); mode {
	case SelectByText, SelectByValue, SelectByIndex:
		return mode, nil
	default:
		return ``, fmt.Errorf("select mode must be text|value|index, got %q", name)
	}
}
