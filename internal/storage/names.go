package storage

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SafeName reduces an uploaded filename to ASCII letters, digits, "_", "."
// and "-". Accents are folded ("résumé.txt" -> "resume.txt"), path separators
// and whitespace become "_", leading/trailing dots and underscores are
// dropped. The result may be empty.
func SafeName(name string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(name) {
		if r > unicode.MaxASCII {
			continue
		}
		if r == '/' || r == '\\' {
			r = ' '
		}
		b.WriteRune(r)
	}
	s := strings.Join(strings.Fields(b.String()), "_")
	s = unsafeName.ReplaceAllString(s, "")
	return strings.Trim(s, "._")
}
