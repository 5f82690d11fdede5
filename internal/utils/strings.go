package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fallback returns v trimmed, or fallback when v is blank.
func Fallback(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

var dStroke = strings.NewReplacer("đ", "d", "Đ", "D")

// ASCIIFold strips Vietnamese diacritics ("Nguyễn Văn Đức" -> "Nguyen Van
// Duc") for outputs limited to Latin-1, such as the PDF core fonts.
func ASCIIFold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, dStroke.Replace(s))
	if err != nil {
		return s
	}
	return out
}

// SafeFilename makes s usable inside a Content-Disposition filename.
func SafeFilename(s string) string {
	s = strings.TrimSpace(ASCIIFold(s))
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
