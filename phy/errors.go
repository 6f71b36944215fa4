package phy

import "errors"

// Configuration errors: reported synchronously from construction/encode,
// per the teacher's config-validation convention in config.go.
var (
	ErrBadRate    = errors.New("phy: unrecognized rate code")
	ErrBadSeed    = errors.New("phy: scrambler seed must be nonzero and fit in 7 bits")
	ErrBadLength  = errors.New("phy: length must be in range 1..4095 bytes")
	ErrBadPayload = errors.New("phy: payload length does not match declared length")
)

// Decode errors: surfaced through the synchronizer's callback with
// Result.Valid == false rather than as a Go error, per spec section 7.
var (
	ErrSignalParity = errors.New("phy: SIGNAL field parity check failed")
	ErrSignalRange  = errors.New("phy: decoded rate/length out of range")
	ErrServiceCheck = errors.New("phy: descrambled SERVICE field is not all-zero")
)
