// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios.  For
// example, ErrForbidden indicates that the current user is not
// authorized to act on a resource, while ErrConflict signals that an
// operation cannot proceed due to existing dependent records (e.g.
// deleting a tour that still has bookings).
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they may not touch.  Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot be performed
// because of conflicting state, such as removing a tour that still has
// bookings.  Handlers translate this into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrNoChange indicates an UPDATE attempted to set fields equal to the
// current values.
var ErrNoChange = errors.New("no change")
