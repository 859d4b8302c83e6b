package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/airdeskhq/airdesk/internal/model"
)

// ticketColumns is the shared projection for both seat-record tables.
const ticketColumns = "pnr, flight_id, seat_no, src, dst, dep_time, arr_time, " +
	"current_departure, current_arrival, current_status, airline_name, " +
	"seat_status, account_id, cancelled_at, updated_at"

// TicketRepo manages the two seat-record partitions: ticket_ledger (rows
// presently or formerly tied to a booking) and inventory_catalog (rows open
// for booking). The catalog is a derived, eventually consistent projection
// maintained by an external seeding job, not a source of truth; the two
// tables are not guaranteed disjoint and no query here deduplicates across
// them. The only write path is the conditional cancel on the ledger.
type TicketRepo struct{ DB *sql.DB }

func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{DB: db} }

// ListBooked returns the ledger rows currently booked by the account.
func (r *TicketRepo) ListBooked(ctx context.Context, accountID string) ([]model.Ticket, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+ticketColumns+" FROM ticket_ledger WHERE account_id=? AND seat_status=?",
		accountID, model.SeatBooked)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

// Cancel flips one booked ledger row to Cancelled and clears its owner.
// The precondition (this account, this seat, still Booked) and the mutation
// are a single conditional UPDATE, so two concurrent cancel attempts on the
// same seat both run but only one matches; the loser gets ErrTicketNotFound.
// Nothing is re-listed into the catalog and no compensation is performed.
func (r *TicketRepo) Cancel(ctx context.Context, accountID, flightID, seatNo string) error {
	const q = `UPDATE ticket_ledger
	           SET seat_status = ?, account_id = NULL,
	               cancelled_at = UTC_TIMESTAMP(), updated_at = UTC_TIMESTAMP()
	           WHERE account_id = ? AND flight_id = ? AND seat_no = ? AND seat_status = ?`
	res, err := r.DB.ExecContext(ctx, q, model.SeatCancelled, accountID, flightID, seatNo, model.SeatBooked)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTicketNotFound
	}
	return nil
}

// SearchCatalog returns available seats matching the filter set. The
// Available restriction is implicit; result ordering is whatever the
// storage engine yields.
func (r *TicketRepo) SearchCatalog(ctx context.Context, f TicketFilters) ([]model.Ticket, error) {
	conds, args := f.where()
	conds = append([]string{"seat_status = ?"}, conds...)
	args = append([]any{model.SeatAvailable}, args...)

	q := "SELECT " + ticketColumns + " FROM inventory_catalog WHERE " + strings.Join(conds, " AND ")
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

// SearchLedger runs the same filter set against the ledger partition,
// regardless of seat status. Used by the status aggregation query.
func (r *TicketRepo) SearchLedger(ctx context.Context, f TicketFilters) ([]model.Ticket, error) {
	conds, args := f.where()
	q := "SELECT " + ticketColumns + " FROM ticket_ledger WHERE " + strings.Join(conds, " AND ")
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func scanTickets(rows *sql.Rows) ([]model.Ticket, error) {
	out := make([]model.Ticket, 0)
	for rows.Next() {
		var (
			t         model.Ticket
			dep, arr  sql.NullTime
			cancelled sql.NullTime
			accountID sql.NullString
			curDep    sql.NullString
			curArr    sql.NullString
			curStatus sql.NullString
		)
		if err := rows.Scan(
			&t.PNR, &t.FlightID, &t.SeatNo, &t.Src, &t.Dst,
			&dep, &arr, &curDep, &curArr, &curStatus,
			&t.AirlineName, &t.SeatStatus, &accountID, &cancelled, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if dep.Valid {
			v := dep.Time
			t.DepTime = &v
		}
		if arr.Valid {
			v := arr.Time
			t.ArrTime = &v
		}
		if cancelled.Valid {
			v := cancelled.Time
			t.CancelledAt = &v
		}
		if accountID.Valid {
			v := accountID.String
			t.AccountID = &v
		}
		t.CurrentDeparture = curDep.String
		t.CurrentArrival = curArr.String
		t.CurrentStatus = curStatus.String
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
