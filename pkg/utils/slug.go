package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugCleanup = regexp.MustCompile("[^a-z0-9]+")

// NormalizeSlug converts arbitrary text into a URL-safe slug consisting only of
// lowercase letters, digits and hyphens. The function is idempotent: applying it
// to its own output returns the same string.
func NormalizeSlug(text string) string {
	text = transliterate(text)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	text, _, _ = transform.String(t, text)

	text = strings.ToLower(text)
	text = slugCleanup.ReplaceAllString(text, "-")
	text = strings.Trim(text, "-")

	return text
}

// SanitizeSlugInput performs the keystroke-level cleanup used while a slug is
// being typed: lowercase and drop anything outside [a-z0-9-]. Unlike
// NormalizeSlug it keeps leading/trailing hyphens so the caret position stays
// stable while the user is still typing.
func SanitizeSlugInput(text string) string {
	text = strings.ToLower(text)

	var b strings.Builder
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// transliterate maps Devanagari letters to a Latin approximation so that Nepali
// page titles still produce readable slugs.
func transliterate(text string) string {
	translitMap := map[rune]string{
		'अ': "a", 'आ': "aa", 'इ': "i", 'ई': "ee", 'उ': "u",
		'ऊ': "oo", 'ए': "e", 'ऐ': "ai", 'ओ': "o", 'औ': "au",
		'क': "ka", 'ख': "kha", 'ग': "ga", 'घ': "gha", 'ङ': "nga",
		'च': "cha", 'छ': "chha", 'ज': "ja", 'झ': "jha", 'ञ': "nya",
		'ट': "ta", 'ठ': "tha", 'ड': "da", 'ढ': "dha", 'ण': "na",
		'त': "ta", 'थ': "tha", 'द': "da", 'ध': "dha", 'न': "na",
		'प': "pa", 'फ': "pha", 'ब': "ba", 'भ': "bha", 'म': "ma",
		'य': "ya", 'र': "ra", 'ल': "la", 'व': "wa",
		'श': "sha", 'ष': "sha", 'स': "sa", 'ह': "ha",
		'ा': "a", 'ि': "i", 'ी': "i", 'ु': "u", 'ू': "u",
		'े': "e", 'ै': "ai", 'ो': "o", 'ौ': "au", '्': "",
		'ं': "n", 'ः': "", 'ँ': "n",
		'०': "0", '१': "1", '२': "2", '३': "3", '४': "4",
		'५': "5", '६': "6", '७': "7", '८': "8", '९': "9",
	}

	var result strings.Builder
	for _, char := range text {
		if replacement, ok := translitMap[char]; ok {
			result.WriteString(replacement)
		} else {
			result.WriteRune(char)
		}
	}

	return result.String()
}
