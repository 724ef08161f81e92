// Package filename turns user supplied upload names into safe file names.
package filename

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripRe = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

var windowsDeviceFiles = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true,
	"LPT1": true, "LPT2": true, "LPT3": true,
}

// Secure returns a flat ASCII file name built from name: accents are folded,
// path separators and whitespace become underscores and everything outside
// [A-Za-z0-9_.-] is dropped. The result may be empty.
func Secure(name string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	ascii, _, err := transform.String(t, name)
	if err != nil {
		return ""
	}

	ascii = strings.NewReplacer("/", " ", "\\", " ").Replace(ascii)
	ascii = strings.Join(strings.Fields(ascii), "_")
	ascii = strings.Trim(stripRe.ReplaceAllString(ascii, ""), "._")

	if ascii != "" && windowsDeviceFiles[strings.ToUpper(strings.Split(ascii, ".")[0])] {
		ascii = "_" + ascii
	}
	return ascii
}
