// Package queue defines message payloads exchanged over the message broker.
package queue

// TicketCancelledEvent is published after a seat cancellation commits. It
// identifies the seat by its natural key; AccountID is the owner at the
// moment of cancellation, which the ledger row itself no longer references.
type TicketCancelledEvent struct {
	AccountID   string `json:"account_id"`
	FlightID    string `json:"flight_id"`
	SeatNo      string `json:"seat_no"`
	CancelledAt string `json:"cancelled_at"`
}
