package memory

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// fold normaliza para búsquedas: sin mayúsculas ni diacríticos ("Đường" -> "duong").
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = strings.NewReplacer("đ", "d", "Đ", "D").Replace(out)
	return folder.String(out)
}

// matches informa si name contiene search ignorando mayúsculas y tildes. search vacío coincide siempre.
func matches(name, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(fold(name), fold(search))
}
