// Package common contains shared constants and helpers used across
// noteapp components.
package common

import "time"

const (
	// AuthorizationHeaderName carries the bearer credential on outbound requests.
	AuthorizationHeaderName = "Authorization"
	// BearerPrefix precedes the token in the Authorization header value.
	BearerPrefix = "Bearer "
	// RequestIDHeaderName carries a per-request correlation id.
	RequestIDHeaderName = "X-Request-ID"
)

// Durable record names.
const (
	AuthTokenKey    = "authToken"
	UserDataKey     = "userData"
	PendingEmailKey = "pendingEmail"
)

// SessionRetention is how long authToken and userData survive in storage.
const SessionRetention = 7 * 24 * time.Hour

// ResendCooldownSeconds is the wait before a verification code can be resent.
const ResendCooldownSeconds = 60

// OTPLength is the number of digits in a verification code.
const OTPLength = 6
