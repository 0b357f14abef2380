package drafts

import (
	"fmt"
	"strings"
	"time"
)

// Key prefixes for the two draft flavors.
const (
	PrefixSaved    = "draft"
	PrefixAutosave = "autosave"
)

// Slug lowercases s and collapses non-alphanumeric runs to single hyphens,
// trimming leading and trailing hyphens.
func Slug(s string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// NewKey builds a draft storage key: {prefix}_{ownerSegment}_{typeSegment}_{millis}.
func NewKey(prefix, owner, obstacleType string, at time.Time) string {
	return fmt.Sprintf("%s_%s_%s_%d", prefix, Slug(owner), Slug(obstacleType), at.UnixMilli())
}

// IsAutosaveKey reports whether key carries the autosave prefix.
func IsAutosaveKey(key string) bool {
	return strings.HasPrefix(key, PrefixAutosave+"_")
}

// IsDraftKey reports whether key carries either draft prefix.
func IsDraftKey(key string) bool {
	return strings.HasPrefix(key, PrefixSaved+"_") || IsAutosaveKey(key)
}
