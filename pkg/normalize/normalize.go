package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// SearchTerm normaliza un término de búsqueda: minúsculas, sin tildes/diacríticos
// y sin espacios sobrantes. "Café  Árabe" -> "cafe arabe".
// Así la búsqueda de productos es insensible a acentos en nombres en español.
func SearchTerm(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}
