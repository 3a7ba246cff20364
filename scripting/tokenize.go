package scripting

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// CommentMarker begins a comment line. A line whose first non-whitespace
// character is this marker tokenizes to nothing.
var CommentMarker = `#`

var ErrTokenize = errors.New(`tokenize error`)

func IsTokenizeErr(err error) bool {
	return errors.Is(err, ErrTokenize)
}

// Tokenize splits one script line into tokens. Tokens are separated by
// whitespace outside of quotes; both ' and " delimit quoted spans, which
// become a single token with the delimiters stripped (embedded whitespace and
// Unicode text intact). In unquoted text a backslash escapes the following
// rune; inside quotes it only escapes the active quote character and itself,
// so Windows paths like "C:\Users\me" pass through untouched. Blank lines and
// comment lines yield a nil token list.
func Tokenize(line string) ([]string, error) {
	var trimmed = strings.TrimSpace(line)

	if trimmed == `` || strings.HasPrefix(trimmed, CommentMarker) {
		return nil, nil
	}

	var tokens []string
	var current strings.Builder
	var quote rune
	var escaped bool
	var started bool

	for _, r := range trimmed {
		switch {
		case escaped:
			if quote != 0 && r != quote && r != '\\' {
				current.WriteRune('\\')
			}

			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
			started = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			started = true
		case unicode.IsSpace(r):
			if started {
				tokens = append(tokens, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}

	if escaped {
		return nil, fmt.Errorf("%w: dangling escape at end of line", ErrTokenize)
	}

	if quote != 0 {
		return nil, fmt.Errorf("%w: unterminated %q quote", ErrTokenize, quote)
	}

	if started {
		tokens = append(tokens, current.String())
	}

	return tokens, nil
}
