package content

import (
	"regexp"
	"strings"
)

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)

	// Turkish letters folded to ASCII so "Kaçkar Dağları" -> "kackar-daglari".
	turkishFold = strings.NewReplacer(
		"ç", "c", "Ç", "c",
		"ğ", "g", "Ğ", "g",
		"ı", "i", "İ", "i",
		"ö", "o", "Ö", "o",
		"ş", "s", "Ş", "s",
		"ü", "u", "Ü", "u",
	)
)

// MakeSlug generates a URL-safe slug from a display name.
// Example: "Yayla Turları" -> "yayla-turlari"
func MakeSlug(name string) string {
	base := turkishFold.Replace(strings.TrimSpace(name))
	base = strings.ToLower(base)
	base = strings.ReplaceAll(base, " ", "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	if base == "" {
		base = "page"
	}
	return base
}
