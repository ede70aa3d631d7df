// Package slug derives URL-safe identifiers from human-readable names.
//
// The result only ever contains ASCII lowercase letters, digits and '-'.
// Accents are folded to their base letter first ("Café" becomes "cafe");
// every other run of characters collapses into a single '-', and leading or
// trailing separators are dropped. Names with nothing usable yield "".
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Separator joins the alphanumeric runs of a slug.
const Separator = '-'

// Func turns a name into a slug.
type Func func(name string) string

// Make is the default Func.
func Make(name string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	b.Grow(len(folded))
	pending := false
	for _, r := range folded {
		switch {
		case r >= 'A' && r <= 'Z':
			r += 'a' - 'A'
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		default:
			pending = b.Len() > 0
			continue
		}
		if pending {
			b.WriteRune(Separator)
			pending = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
