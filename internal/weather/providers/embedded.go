package providers

import (
	"errors"
	"strings"
)

var (
	errNoArray      = errors.New("data key is not followed by an array")
	errUnterminated = errors.New("unterminated array")
)

// dataArrays finds every `key: [...]` assignment in script and returns the
// isolated arrays in document order. The key match is case-insensitive and may
// be quoted. Bare null literals inside the arrays are rewritten to 0.
func dataArrays(script, key string) ([]string, error) {
	// ASCII-only folding keeps byte offsets in lower valid for script.
	lower := asciiLower(script)
	needle := asciiLower(key)

	var (
		arrays  []string
		lastErr error
	)
	for from := 0; ; {
		idx := strings.Index(lower[from:], needle)
		if idx < 0 {
			break
		}
		pos := from + idx + len(needle)
		from = pos

		start, ok := arrayStart(script, pos)
		if !ok {
			lastErr = errNoArray
			continue
		}

		arr, end, err := isolateArray(script, start)
		if err != nil {
			lastErr = err
			continue
		}
		arrays = append(arrays, arr)
		from = end
	}

	if len(arrays) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return arrays, nil
}

// arrayStart skips an optional closing quote, the colon and whitespace after a
// key and reports where the '[' opening its value sits.
func arrayStart(s string, pos int) (int, bool) {
	if pos < len(s) && (s[pos] == '"' || s[pos] == '\'') {
		pos++
	}
	pos = skipSpace(s, pos)
	if pos >= len(s) || s[pos] != ':' {
		return 0, false
	}
	pos = skipSpace(s, pos+1)
	if pos >= len(s) || s[pos] != '[' {
		return 0, false
	}
	return pos, true
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func skipSpace(s string, pos int) int {
	for pos < len(s) {
		switch s[pos] {
		case ' ', '\t', '\n', '\r':
			pos++
		default:
			return pos
		}
	}
	return pos
}

// isolateArray returns the array opening at s[start] up to its matching ']'
// and the offset just past it. Brackets inside string literals are ignored.
func isolateArray(s string, start int) (string, int, error) {
	var (
		b        strings.Builder
		depth    int
		inString bool
		escaped  bool
	)

	for i := start; i < len(s); i++ {
		c := s[i]

		if inString {
			b.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '[', '{':
			depth++
		case ']', '}':
			depth--
		case 'n':
			if isNullLiteral(s, i) {
				b.WriteByte('0')
				i += len("null") - 1
				continue
			}
		}
		b.WriteByte(c)

		if depth == 0 {
			return b.String(), i + 1, nil
		}
	}

	return "", 0, errUnterminated
}

func isNullLiteral(s string, i int) bool {
	if !strings.HasPrefix(s[i:], "null") {
		return false
	}
	if i > 0 && isIdentByte(s[i-1]) {
		return false
	}
	end := i + len("null")
	return end >= len(s) || !isIdentByte(s[end])
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
