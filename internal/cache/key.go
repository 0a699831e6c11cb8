package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// KeyForSource returns the cache key of a source URL. Scheme and host are
// lower-cased and fragments dropped so equivalent URLs share an entry.
func KeyForSource(source string) string {
	normalized := strings.TrimSpace(source)
	if u, err := url.Parse(normalized); err == nil && u.Scheme != "" {
		u.Scheme = strings.ToLower(u.Scheme)
		u.Host = strings.ToLower(u.Host)
		u.Fragment = ""
		normalized = u.String()
	}

	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
