package commands

import "errors"

var (
	// ErrInvalidAddress means a postal code did not resolve to a usable address.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrDistanceUnavailable means no positive road distance exists between two addresses.
	ErrDistanceUnavailable = errors.New("distance unavailable")
	// ErrTrackingCodeExhausted means every generated tracking code collided with an existing one.
	ErrTrackingCodeExhausted = errors.New("tracking code attempts exhausted")
)
