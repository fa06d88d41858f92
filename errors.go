package moa

import "errors"

// ErrUnknownBackend is the sentinel behind Compile's UNKNOWN_BACKEND
// failure (spec §6): the caller named a backend that was never
// registered via RegisterBackend.
var ErrUnknownBackend = errors.New("moa: unknown backend")
