// Package textutil provides text normalization shared by extraction and ranking.
package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

// Normalize collapses every run of whitespace to a single space and trims
// leading and trailing whitespace. The result never contains consecutive
// whitespace characters.
func Normalize(s string) string {
	return whitespaceRE.ReplaceAllString(strings.TrimSpace(s), " ")
}
