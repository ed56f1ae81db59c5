package helper

import (
	"regexp"
	"strings"
	"unicode"
)

// GenerateSlug menormalkan string menjadi slug:
// - lower-case
// - spasi & non-alnum jadi "-"
// - collapse multiple "-" -> satu "-"
// - trim "-" di kedua ujung
func GenerateSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
		} else {
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	out := strings.Trim(b.String(), "-")

	// Pastikan tidak ada "--" beruntun (guard tambahan)
	reDash := regexp.MustCompile(`-+`)
	return reDash.ReplaceAllString(out, "-")
}

// GenerateMaterialSlug: slug judul + suffix acak 4 huruf kecil.
// Slug materi tidak dijamin unik — material_id yang jadi kunci.
func GenerateMaterialSlug(title string) string {
	base := GenerateSlug(title)
	if base == "" {
		base = "materi"
	}
	return base + "-" + strings.ToLower(RandomString(4))
}
