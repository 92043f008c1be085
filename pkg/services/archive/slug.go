package archive

import "strings"

const maxSlugLen = 60

// Slugify reduces a question to a filesystem-safe file name fragment:
// lowercased, runs of non-alphanumerics collapsed to a single underscore,
// trimmed and bounded in length.
func Slugify(s string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		default:
			pendingSep = true
		}
	}

	slug := b.String()
	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(slug[:maxSlugLen], "_")
	}
	if slug == "" {
		slug = "report"
	}
	return slug
}
