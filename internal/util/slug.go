package util

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// Slugify lowercases s and keeps letters and digits of any script, joining
// runs of everything else with a single hyphen. Latin diacritics are dropped.
// Text with no letters or digits yields "course-" plus a random suffix.
// maxLen <= 0 means 100.
func Slugify(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = 100
	}

	var b strings.Builder
	pendingHyphen := false
	for _, r := range norm.NFD.String(strings.ToLower(strings.TrimSpace(s))) {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}
	out := norm.NFC.String(b.String())

	if utf8.RuneCountInString(out) > maxLen {
		out = strings.Trim(string([]rune(out)[:maxLen]), "-")
	}
	if out == "" {
		return "course-" + ShortID()
	}
	return out
}

// ShortID returns the first eight hex digits of a random uuid.
func ShortID() string {
	return uuid.NewString()[:8]
}
