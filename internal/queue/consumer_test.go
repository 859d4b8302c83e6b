package queue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCancellation(t *testing.T) {
	ev := TicketCancelledEvent{
		AccountID:   "CUS100001",
		FlightID:    "LH0100",
		SeatNo:      "9B",
		CancelledAt: "2026-09-01T10:30:00Z",
	}
	assert.Equal(t,
		"[2026-09-01T10:30:00Z] Ticket cancelled | account_id=CUS100001 | flight_id=LH0100 | seat_no=9B\n",
		formatCancellation(ev))
}

func TestTicketCancelledEventRoundTrip(t *testing.T) {
	in := TicketCancelledEvent{
		AccountID:   "CUS100002",
		FlightID:    "BA0900",
		SeatNo:      "22D",
		CancelledAt: "2026-09-01T11:00:00Z",
	}
	body, err := json.Marshal(in)
	require.NoError(t, err)

	var out TicketCancelledEvent
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, in, out)
}
