package entity

import "time"

// OTP is the one-time verification code held for a single user.
// There is at most one live record per user; validity is derived from CreatedAt.
type OTP struct {
	UserID    string
	Code      string
	CreatedAt time.Time
}

// ExpiresAt returns the last instant at which the code is still accepted.
func (o *OTP) ExpiresAt(window time.Duration) time.Time {
	return o.CreatedAt.Add(window)
}

// IsLive reports whether now is within the validity window (inclusive).
func (o *OTP) IsLive(now time.Time, window time.Duration) bool {
	return !now.After(o.ExpiresAt(window))
}
