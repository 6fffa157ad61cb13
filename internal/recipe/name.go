package recipe

import "strings"

// NameFromFilename derives a program name from a recipe file name: the
// .json suffix is dropped, anything outside [A-Za-z0-9_-] becomes an
// underscore, edge underscores are trimmed, and the rest become spaces.
func NameFromFilename(filename string) string {
	stem := strings.TrimSuffix(filename, ".json")

	var b strings.Builder
	b.Grow(len(stem))
	for _, r := range stem {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	cleaned := strings.ReplaceAll(strings.Trim(b.String(), "_"), "_", " ")
	if cleaned == "" {
		return FallbackProgramName
	}
	return cleaned
}
