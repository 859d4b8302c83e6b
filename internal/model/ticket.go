package model

import "time"

// SeatStatus is the lifecycle state of a seat record.
type SeatStatus string

const (
	SeatAvailable SeatStatus = "Available"
	SeatBooked    SeatStatus = "Booked"
	SeatCancelled SeatStatus = "Cancelled"
)

// Ticket is a single seat record. The same shape is stored in two tables:
// ticket_ledger holds Booked/Cancelled rows tied to an account, and
// inventory_catalog holds Available rows open for booking. The natural key
// of a seat within a flight is (flight_id, seat_no); a PNR may span several
// seats and carries no uniqueness guarantee.
type Ticket struct {
	PNR              string     `json:"pnr"`
	FlightID         string     `json:"flight_id"`
	SeatNo           string     `json:"seat_no"`
	Src              string     `json:"src"`
	Dst              string     `json:"dst"`
	DepTime          *time.Time `json:"dep_time,omitempty"`
	ArrTime          *time.Time `json:"arr_time,omitempty"`
	CurrentDeparture string     `json:"current_departure,omitempty"`
	CurrentArrival   string     `json:"current_arrival,omitempty"`
	CurrentStatus    string     `json:"current_status,omitempty"`
	AirlineName      string     `json:"airline_name"`
	SeatStatus       SeatStatus `json:"seat_status"`
	AccountID        *string    `json:"account_id"`
	CancelledAt      *time.Time `json:"cancelled_at,omitempty"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
