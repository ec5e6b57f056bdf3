// Package repository stores activities and bookings in a SQL database
// (MySQL or SQLite).  The sentinel errors below are shared with the MongoDB
// store so higher layers such as services and handlers can tell the failure
// cases apart without knowing which backend is in use.
package repository

import "errors"

// ErrActivityNotFound is returned when a booking references an activity
// that does not exist.  Handlers translate this into an HTTP 404 response.
var ErrActivityNotFound = errors.New("activity not found")

