package database

import "errors"

// ErrNotReady wraps every failed readiness check, so callers can match it
// regardless of the driver error underneath.
var ErrNotReady = errors.New("database not reachable")
