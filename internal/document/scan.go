package document

// FindStringEnd returns the index of the unescaped '"' that closes the string
// whose first content byte is at start. A backslash always consumes the byte
// after it, whatever that byte is.
//
// Postcondition: Returns len(text) when no closing quote exists.
func FindStringEnd(text string, start int) int {
	i := start
	for i < len(text) {
		switch text[i] {
		case '\\':
			i += 2
		case '"':
			return i
		default:
			i++
		}
	}
	return len(text)
}

// FindMatchingBracket returns the index of the close byte that balances the
// open byte at or after start. Delimiters inside string literals are not
// counted.
//
// Postcondition: Returns len(text)-1 when the depth never returns to zero.
func FindMatchingBracket(text string, start int, open, close byte) int {
	depth := 0
	inString := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(text) - 1
}

func skipWhitespace(text string, i int) int {
	for i < len(text) {
		switch text[i] {
		case ' ', '\t', '\n', '\r':
			i++
		default:
			return i
		}
	}
	return i
}

func isNumberByte(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.' || c == '-'
}

// unescape resolves backslash escapes in raw string content. Unknown escapes
// yield the escaped byte itself.
func unescape(raw string) string {
	i := 0
	for i < len(raw) && raw[i] != '\\' {
		i++
	}
	if i == len(raw) {
		return raw
	}
	buf := make([]byte, 0, len(raw))
	buf = append(buf, raw[:i]...)
	for ; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 >= len(raw) {
			buf = append(buf, c)
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			buf = append(buf, '\n')
		case 'r':
			buf = append(buf, '\r')
		case 't':
			buf = append(buf, '\t')
		case 'b':
			buf = append(buf, '\b')
		case 'f':
			buf = append(buf, '\f')
		default:
			buf = append(buf, raw[i])
		}
	}
	return string(buf)
}
