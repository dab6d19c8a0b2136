package document

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrSyntax is matched by every error the parser returns.
var ErrSyntax = errors.New("document: syntax error")

// SyntaxError describes where parsing stopped. Offset is a byte index into
// the text handed to the top-level parse call.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("document: syntax error at offset %d: %s", e.Offset, e.Msg)
}

// Is reports whether target is ErrSyntax.
func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }

func syntaxErr(offset int, format string, args ...any) error {
	return &SyntaxError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

// Parse decodes a document whose outermost value is an object or an array.
//
// Postcondition: Returns an Object or Array Value, or a *SyntaxError.
func Parse(text string) (Value, error) {
	i := skipWhitespace(text, 0)
	if i >= len(text) {
		return Value{}, syntaxErr(i, "empty document")
	}
	switch text[i] {
	case '{':
		obj, err := ParseObject(text)
		if err != nil {
			return Value{}, err
		}
		return ObjectValue(obj), nil
	case '[':
		arr, err := ParseArray(text)
		if err != nil {
			return Value{}, err
		}
		return Array(arr), nil
	default:
		return Value{}, syntaxErr(i, "document must start with '{' or '[', got %q", text[i])
	}
}

// ParseObject decodes text, which after trimming must start with '{' and end
// with '}'.
//
// Postcondition: Returns a non-nil Object or a *SyntaxError; no partial result.
func ParseObject(text string) (*Object, error) {
	return parseObjectAt(text, 0)
}

// ParseArray decodes text, which after trimming must start with '[' and end
// with ']'.
//
// Postcondition: Returns a non-nil slice or a *SyntaxError; no partial result.
func ParseArray(text string) ([]Value, error) {
	return parseArrayAt(text, 0)
}

// trimRegion strips surrounding whitespace and the outer delimiters,
// returning the interior and its absolute offset.
func trimRegion(text string, base int, open, close byte) (string, int, error) {
	lead := len(text) - len(strings.TrimLeft(text, " \t\r\n"))
	s := strings.TrimSpace(text)
	if len(s) < 2 || s[0] != open || s[len(s)-1] != close {
		return "", 0, syntaxErr(base+lead, "expected %q ... %q region", open, close)
	}
	return s[1 : len(s)-1], base + lead + 1, nil
}

func parseObjectAt(text string, base int) (*Object, error) {
	body, off, err := trimRegion(text, base, '{', '}')
	if err != nil {
		return nil, err
	}
	obj := NewObject()
	if strings.TrimSpace(body) == "" {
		return obj, nil
	}

	i := 0
	for {
		i = skipWhitespace(body, i)
		if i >= len(body) {
			// trailing comma
			return obj, nil
		}
		if body[i] != '"' {
			return nil, syntaxErr(off+i, "expected '\"' to open key, got %q", body[i])
		}
		end := FindStringEnd(body, i+1)
		if end >= len(body) {
			return nil, syntaxErr(off+i, "unterminated key")
		}
		key := unescape(body[i+1 : end])

		colon := strings.IndexByte(body[end+1:], ':')
		if colon < 0 {
			return nil, syntaxErr(off+end+1, "missing ':' after key %q", key)
		}
		i = skipWhitespace(body, end+1+colon+1)

		v, next, err := parseValue(body, i, off)
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)

		i, err = afterValue(body, next, off)
		if err != nil {
			return nil, err
		}
		if i >= len(body) {
			return obj, nil
		}
	}
}

func parseArrayAt(text string, base int) ([]Value, error) {
	body, off, err := trimRegion(text, base, '[', ']')
	if err != nil {
		return nil, err
	}
	items := []Value{}
	if strings.TrimSpace(body) == "" {
		return items, nil
	}

	i := 0
	for {
		i = skipWhitespace(body, i)
		if i >= len(body) {
			return items, nil
		}
		v, next, err := parseValue(body, i, off)
		if err != nil {
			return nil, err
		}
		items = append(items, v)

		i, err = afterValue(body, next, off)
		if err != nil {
			return nil, err
		}
		if i >= len(body) {
			return items, nil
		}
	}
}

// afterValue accepts optional whitespace followed by ',' or the end of the
// region. It returns the index to resume from, or len(body) to stop.
func afterValue(body string, i, off int) (int, error) {
	i = skipWhitespace(body, i)
	if i >= len(body) {
		return len(body), nil
	}
	if body[i] != ',' {
		return 0, syntaxErr(off+i, "expected ',' or end of region, got %q", body[i])
	}
	return i + 1, nil
}

// parseValue decodes the value starting at text[i] and returns the index
// just past it.
func parseValue(text string, i, off int) (Value, int, error) {
	if i >= len(text) {
		return Value{}, 0, syntaxErr(off+i, "missing value")
	}
	switch c := text[i]; {
	case c == '"':
		end := FindStringEnd(text, i+1)
		if end >= len(text) {
			return Value{}, 0, syntaxErr(off+i, "unterminated string")
		}
		return String(unescape(text[i+1 : end])), end + 1, nil

	case c == '{':
		end := FindMatchingBracket(text, i, '{', '}')
		obj, err := parseObjectAt(text[i:end+1], off+i)
		if err != nil {
			return Value{}, 0, err
		}
		return ObjectValue(obj), end + 1, nil

	case c == '[':
		end := FindMatchingBracket(text, i, '[', ']')
		arr, err := parseArrayAt(text[i:end+1], off+i)
		if err != nil {
			return Value{}, 0, err
		}
		return Array(arr), end + 1, nil

	case c == 't':
		return literal(text, i, off, "true", Bool(true))
	case c == 'f':
		return literal(text, i, off, "false", Bool(false))
	case c == 'n':
		return literal(text, i, off, "null", Null())

	case c == '-' || (c >= '0' && c <= '9'):
		j := i
		for j < len(text) && isNumberByte(text[j]) {
			j++
		}
		n, err := parseNumber(text[i:j])
		if err != nil {
			return Value{}, 0, syntaxErr(off+i, "%v", err)
		}
		return Number(n), j, nil

	default:
		return Value{}, 0, syntaxErr(off+i, "unexpected character %q", c)
	}
}

func literal(text string, i, off int, word string, v Value) (Value, int, error) {
	if !strings.HasPrefix(text[i:], word) {
		return Value{}, 0, syntaxErr(off+i, "invalid literal, expected %q", word)
	}
	return v, i + len(word), nil
}

// NumberToken converts tok using the same numeric grammar as the parser:
// a '-' or digit followed only by digits, '.' and '-', with the parser's
// placement rules. Exponents, hex forms and signs other than a leading '-'
// are rejected.
func NumberToken(tok string) (float64, bool) {
	if tok == "" || !(tok[0] == '-' || (tok[0] >= '0' && tok[0] <= '9')) {
		return 0, false
	}
	for i := 0; i < len(tok); i++ {
		if !isNumberByte(tok[i]) {
			return 0, false
		}
	}
	n, err := parseNumber(tok)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseNumber converts a greedy [0-9.-] run. A '-' is only legal as the
// first byte and '.' may occur once.
func parseNumber(tok string) (float64, error) {
	if strings.Count(tok, ".") > 1 {
		return 0, fmt.Errorf("invalid number %q: more than one '.'", tok)
	}
	if strings.LastIndexByte(tok, '-') > 0 {
		return 0, fmt.Errorf("invalid number %q: misplaced '-'", tok)
	}
	if !strings.Contains(tok, ".") {
		n, err := strconv.ParseInt(tok, 10, 64)
		if err == nil {
			return float64(n), nil
		}
		if !errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("invalid integer %q", tok)
		}
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", tok)
	}
	return f, nil
}
