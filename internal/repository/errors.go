// Package repository defines error values shared across repositories so that
// handlers can map storage outcomes onto HTTP responses: ErrUsernameExists
// becomes a 409, ErrTicketNotFound a 404, ErrNoFilter a 400. Anything else
// bubbling out of a repository is an infrastructure failure the caller may
// retry with the same arguments.
package repository

import "errors"

// ErrUsernameExists is returned when account creation collides with an
// existing normalized username. The unique index on normalized_name is the
// final authority; concurrent creates with the same name yield exactly one
// success and one ErrUsernameExists.
var ErrUsernameExists = errors.New("username already exists")

// ErrTicketNotFound is returned when a conditional cancel matches no row,
// either because the seat is unknown for this account or because it was
// already cancelled. The two cases are deliberately indistinguishable.
var ErrTicketNotFound = errors.New("ticket not found or already cancelled")

// ErrNoFilter is returned when a search is attempted with every filter
// empty. Unfiltered full scans are rejected rather than served.
var ErrNoFilter = errors.New("at least one filter is required")

// ErrCounterCorrupt is returned when the sequence counter yields no usable
// value even after the one built-in repair pass.
var ErrCounterCorrupt = errors.New("counter row is corrupt")
