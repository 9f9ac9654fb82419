package tabular

import (
	"strings"
	"unicode/utf8"
)

// utf8BOM is the byte order mark some Windows tools prepend to CSV exports.
const utf8BOM = "\ufeff"

// sanitize strips a leading BOM and replaces invalid UTF-8 sequences with
// U+FFFD so downstream string handling never sees broken encoding.
func sanitize(text string) string {
	text = strings.TrimPrefix(text, utf8BOM)

	if utf8.ValidString(text) {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for len(text) > 0 {
		r, size := utf8.DecodeRuneInString(text)
		if r == utf8.RuneError && size == 1 {
			b.WriteRune(utf8.RuneError)
			text = text[1:]
		} else {
			b.WriteString(text[:size])
			text = text[size:]
		}
	}
	return b.String()
}
