// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package lock

// DefaultMaxAttempts is the number of failed attempts allowed before lockout.
const DefaultMaxAttempts = 5

// AttemptLimiter counts failed attempts against a fixed maximum.
// The count only grows: a correct entry does not reset it and there is
// no unlock.
type AttemptLimiter struct {
	failed      int
	maxAttempts int
}

// LimiterOption configures an AttemptLimiter.
type LimiterOption func(*AttemptLimiter)

// WithMaxAttempts sets the number of failures that triggers lockout.
// Values below 1 are ignored.
func WithMaxAttempts(max int) LimiterOption {
	return func(l *AttemptLimiter) {
		if max > 0 {
			l.maxAttempts = max
		}
	}
}

// NewAttemptLimiter creates a limiter with no failures recorded.
func NewAttemptLimiter(opts ...LimiterOption) *AttemptLimiter {
	l := &AttemptLimiter{maxAttempts: DefaultMaxAttempts}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// RecordFailure counts one failed attempt and returns the attempts left
// and whether the limiter is now locked out.
func (l *AttemptLimiter) RecordFailure() (remaining int, lockedOut bool) {
	l.failed++
	return l.Remaining(), l.IsLockedOut()
}

// Remaining returns the attempts left before lockout, never negative.
func (l *AttemptLimiter) Remaining() int {
	if r := l.maxAttempts - l.failed; r > 0 {
		return r
	}
	return 0
}

// IsLockedOut reports whether the failure count has reached the maximum.
func (l *AttemptLimiter) IsLockedOut() bool {
	return l.failed >= l.maxAttempts
}

// Failed returns the number of failures recorded.
func (l *AttemptLimiter) Failed() int {
	return l.failed
}

// MaxAttempts returns the configured maximum.
func (l *AttemptLimiter) MaxAttempts() int {
	return l.maxAttempts
}
