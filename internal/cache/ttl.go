package cache

// TTL bounds and defaults.
const (
	// DefaultTTLSeconds is one hour.
	DefaultTTLSeconds = 3600

	// MinTTLSeconds is one minute.
	MinTTLSeconds = 60

	// MaxTTLSeconds is seven days.
	MaxTTLSeconds = 604800
)

// ClampTTL keeps ttlSeconds within [MinTTLSeconds, MaxTTLSeconds].
// Zero or negative values select DefaultTTLSeconds.
func ClampTTL(ttlSeconds int) int {
	switch {
	case ttlSeconds <= 0:
		return DefaultTTLSeconds
	case ttlSeconds < MinTTLSeconds:
		return MinTTLSeconds
	case ttlSeconds > MaxTTLSeconds:
		return MaxTTLSeconds
	default:
		return ttlSeconds
	}
}
