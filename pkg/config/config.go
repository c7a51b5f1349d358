package config

import "time"

// APIConfig configures the resilient HTTP client and the notification
// repository client built on top of it.
type APIConfig struct {
	// BaseURL is the notification API root, e.g. "https://api.example.com".
	BaseURL string `env:"API_BASE_URL,required"`

	// RequestTimeout bounds a single HTTP attempt.
	RequestTimeout time.Duration `env:"API_REQUEST_TIMEOUT" envDefault:"15s"`

	// RetryAttempts is the total number of attempts per retried operation.
	RetryAttempts int `env:"API_RETRY_ATTEMPTS" envDefault:"3"`

	// RetryBaseDelay is the delay after the first failed attempt. Each
	// subsequent delay doubles.
	RetryBaseDelay time.Duration `env:"API_RETRY_BASE_DELAY" envDefault:"1s"`
}

// PushConfig configures the websocket push channel.
type PushConfig struct {
	// URL is the push endpoint, ws or wss scheme. Empty disables push.
	URL string `env:"PUSH_URL"`

	// BufferSize is the event queue buffer between the read loop and the
	// state manager.
	BufferSize int `env:"PUSH_BUFFER_SIZE" envDefault:"64"`
}

// AuditConfig configures the failure audit log.
type AuditConfig struct {
	// LogCapacity bounds the in-memory ring buffer.
	LogCapacity int `env:"AUDIT_LOG_CAPACITY" envDefault:"100"`

	// RedisURL, when set, mirrors audit entries to Redis for inspection
	// across sessions. Empty keeps the audit log in memory only.
	RedisURL string `env:"AUDIT_REDIS_URL"`
}
