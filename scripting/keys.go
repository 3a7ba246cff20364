package scripting

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ghetzel/go-stockutil/stringutil"
)

var ErrKeyDecode = errors.New(`key decode error`)

func IsKeyDecodeErr(err error) bool {
	return errors.Is(err, ErrKeyDecode)
}

type KeyActionType int

const (
	LiteralKey KeyActionType = iota
	SpecialKey
	ChordKey
)

// KeyAction is one decoded key input: literal text, a named special key, or
// a modifier chord sent as a single input event.
type KeyAction struct {
	Type     KeyActionType
	Text     string // LiteralKey: verbatim text, Unicode preserved
	Name     string // SpecialKey: canonical key name
	Modifier string // ChordKey: the modifier key name
	Key      string // ChordKey: the chorded key
}

func Literal(text string) KeyAction {
	return KeyAction{Type: LiteralKey, Text: text}
}

func Special(name string) KeyAction {
	return KeyAction{Type: SpecialKey, Name: name}
}

func Chord(modifier string, key string) KeyAction {
	return KeyAction{Type: ChordKey, Modifier: modifier, Key: key}
}

func (self KeyAction) String() string {
	switch self.Type {
	case SpecialKey:
		return fmt.Sprintf("{%s}", self.Name)
	case ChordKey:
		return fmt.Sprintf("%s+%s", self.Modifier, self.Key)
	default:
		return self.Text
	}
}

// specialKeys maps accepted key names to their canonical spelling.
var specialKeys = map[string]string{
	`ENTER`:     `ENTER`,
	`TAB`:       `TAB`,
	`ESC`:       `ESCAPE`,
	`ESCAPE`:    `ESCAPE`,
	`SPACE`:     `SPACE`,
	`BACKSPACE`: `BACKSPACE`,
	`DELETE`:    `DELETE`,
	`HOME`:      `HOME`,
	`END`:       `END`,
	`PAGE_UP`:   `PAGE_UP`,
	`PAGE_DOWN`: `PAGE_DOWN`,
	`LEFT`:      `LEFT`,
	`RIGHT`:     `RIGHT`,
	`UP`:        `UP`,
	`DOWN`:      `DOWN`,
	`CTRL`:      `CTRL`,
	`SHIFT`:     `SHIFT`,
	`ALT`:       `ALT`,
	`CMD`:       `CMD`,
	`META`:      `META`,
}

var modifierKeys = map[string]bool{
	`CTRL`:  true,
	`SHIFT`: true,
	`ALT`:   true,
	`CMD`:   true,
	`META`:  true,
}

// keyCombos is the closed set of MODIFIER_KEY shorthand tokens. Tokens
// outside this set are ordinary literal text; arbitrary chords are still
// reachable through the bare-modifier form ({CTRL} x).
var keyCombos = map[string]bool{
	`CTRL_A`: true,
	`CTRL_C`: true,
	`CTRL_V`: true,
	`CTRL_X`: true,
	`CTRL_S`: true,
	`CTRL_Z`: true,
	`CTRL_Y`: true,
}

// DecodeKeys turns a token sequence into key actions in a single left-to-right
// pass with one token of lookahead. The rules, in order:
//
//  1. a token fully wrapped in braces is a special key (or, for combo
//     shorthands like {CTRL_A}, a chord); unknown names fail
//  2. an unwrapped token from the fixed combo table decomposes into a chord
//     on its own; other MODIFIER_X spellings stay literal
//  3. a bare modifier token ({CTRL}) consumes the following token to form a
//     chord; this is the only two-token rule
//  4. anything else is literal text, passed through verbatim
func DecodeKeys(tokens []string) ([]KeyAction, error) {
	var actions = make([]KeyAction, 0, len(tokens))

	for i := 0; i < len(tokens); i++ {
		var token = tokens[i]

		if stringutil.IsSurroundedBy(token, `{`, `}`) && len(token) > 2 {
			var name = strings.ToUpper(token[1 : len(token)-1])

			if modifier, key, ok := comboParts(name); ok {
				actions = append(actions, Chord(modifier, key))
			} else if canonical, ok := specialKeys[name]; ok {
				if modifierKeys[canonical] && i+1 < len(tokens) {
					i += 1
					actions = append(actions, Chord(canonical, tokens[i]))
				} else {
					actions = append(actions, Special(canonical))
				}
			} else {
				return nil, fmt.Errorf("%w: unknown key name %q", ErrKeyDecode, token)
			}

			continue
		}

		if modifier, key, ok := comboParts(token); ok {
			actions = append(actions, Chord(modifier, key))
		} else {
			actions = append(actions, Literal(token))
		}
	}

	return actions, nil
}

// comboParts splits a combo shorthand token (e.g. CTRL_A) into its chord
// parts. Only the fixed combo table qualifies, so ordinary snake_case text
// and unlisted MODIFIER_X spellings stay literal.
func comboParts(token string) (string, string, bool) {
	if keyCombos[token] {
		var modifier, key = stringutil.SplitPair(token, `_`)
		return modifier, key, true
	}

	return ``, ``, false
}
