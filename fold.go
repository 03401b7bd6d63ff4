package robowriter

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Fold returns the font table code used to draw r.  Characters outside of
// the table are decomposed and drawn as their base character, so that "é"
// is written as "e".  ok is false if there is no such code.
func Fold(r rune, maxCharacters int) (code int, ok bool) {
	if r >= 0 && int(r) < maxCharacters {
		return int(r), true
	}
	base, _ := utf8.DecodeRuneInString(norm.NFD.String(string(r)))
	if base == utf8.RuneError || int(base) >= maxCharacters {
		return 0, false
	}
	return int(base), true
}
