package redis

// Config holds Redis connection and key layout settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// KeyPrefix namespaces the credential hash, so several clients can
	// share one Redis instance
	KeyPrefix string

	// Pool settings
	PoolSize     int
	MinIdleConns int
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		KeyPrefix:    "ponto",
		PoolSize:     4,
		MinIdleConns: 1,
	}
}
