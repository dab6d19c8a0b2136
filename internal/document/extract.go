package document

import "strings"

// ExtractString returns the string value of the first occurrence of key in
// text without parsing the document. It is a substring search: the first
// "key" token anywhere in text wins, nested or not.
//
// Postcondition: Returns ("", false) if the key, the following ':', the
// value's opening quote, or its closing quote cannot be found.
func ExtractString(text, key string) (string, bool) {
	token := `"` + key + `"`
	k := strings.Index(text, token)
	if k < 0 {
		return "", false
	}
	rest := k + len(token)
	colon := strings.IndexByte(text[rest:], ':')
	if colon < 0 {
		return "", false
	}
	rest += colon + 1
	quote := strings.IndexByte(text[rest:], '"')
	if quote < 0 {
		return "", false
	}
	start := rest + quote + 1
	end := FindStringEnd(text, start)
	if end >= len(text) {
		return "", false
	}
	return unescape(text[start:end]), true
}
