package apiclient

import (
	"math"
	"math/rand"
	"time"
)

// BackoffStrategy calculates retry delays.
// Implementations must be safe for concurrent use.
type BackoffStrategy interface {
	// NextInterval returns the delay to wait after the given failed attempt.
	// Attempt is 1-indexed: 1 is the first failed attempt.
	NextInterval(attempt int) time.Duration
}

// ExponentialBackoff grows the delay by Multiplier per attempt, with an
// optional cap and jitter. Zero jitter yields deterministic delays, which
// Retry relies on for its documented timing.
type ExponentialBackoff struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration // zero means uncapped
	Multiplier      float64
	JitterFactor    float64
}

// NextInterval returns InitialInterval * Multiplier^(attempt-1), jittered
// by ±JitterFactor and capped at MaxInterval when set.
func (e ExponentialBackoff) NextInterval(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	initial := e.InitialInterval
	if initial == 0 {
		initial = time.Second
	}

	multiplier := e.Multiplier
	if multiplier == 0 {
		multiplier = 2
	}

	interval := float64(initial) * math.Pow(multiplier, float64(attempt-1))

	if e.JitterFactor > 0 {
		randomJitter := (rand.Float64()*2 - 1) * e.JitterFactor
		interval = interval * (1 + randomJitter)
	}

	if e.MaxInterval > 0 && interval > float64(e.MaxInterval) {
		interval = float64(e.MaxInterval)
	}

	return time.Duration(interval)
}

// FixedBackoff waits the same interval after every failed attempt.
type FixedBackoff struct {
	Interval time.Duration
}

func (f FixedBackoff) NextInterval(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	return f.Interval
}

// DefaultReconnectBackoff returns the backoff used for long-lived connection
// recovery: exponential with a cap and jitter to avoid coordinated
// reconnect storms.
func DefaultReconnectBackoff() BackoffStrategy {
	return ExponentialBackoff{
		InitialInterval: time.Second,
		MaxInterval:     30 * time.Second,
		Multiplier:      2,
		JitterFactor:    0.1,
	}
}
