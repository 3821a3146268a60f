package upload

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// buildFileName generates a collision-resistant name preserving the
// sanitized original: millisecond timestamp plus a random fragment, so two
// same-named uploads in the same millisecond still cannot collide.
func buildFileName(original string) string {
	base := sanitizeName(filepath.Base(strings.TrimSpace(original)))
	frag := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), frag, base)
}

// sanitizeName keeps alphanumerics, hyphens, underscores, and dots; every
// other rune becomes a hyphen. The result is never empty.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	out := strings.Trim(b.String(), "-.")
	if out == "" {
		return "file"
	}
	return out
}
