package common

import "errors"

var (
	// ErrStorageUnavailable is returned when the durable storage cannot be reached.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrInvalidToken is returned for bearer tokens that cannot be decoded.
	ErrInvalidToken = errors.New("invalid token")
)
