package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/airdeskhq/airdesk/internal/model"
	"github.com/airdeskhq/airdesk/internal/queue"
	"github.com/airdeskhq/airdesk/internal/repository"
	queue_publisher "github.com/airdeskhq/airdesk/internal/service"
)

// TicketStore is what the ticket endpoints need from the seat-record
// repository: the ledger read/cancel paths and the two partition searches.
type TicketStore interface {
	ListBooked(ctx context.Context, accountID string) ([]model.Ticket, error)
	Cancel(ctx context.Context, accountID, flightID, seatNo string) error
	SearchCatalog(ctx context.Context, f repository.TicketFilters) ([]model.Ticket, error)
	SearchLedger(ctx context.Context, f repository.TicketFilters) ([]model.Ticket, error)
}

// TicketHandler serves the booking-state endpoints: list own tickets,
// cancel a seat, search the inventory catalog and aggregate status across
// both partitions.
type TicketHandler struct {
	Tickets TicketStore
}

func NewTicketHandler(t TicketStore) *TicketHandler { return &TicketHandler{Tickets: t} }

type cancelReq struct {
	FlightID string `json:"flight_id"`
	SeatNo   string `json:"seat_no"`
}

// MyTickets returns the caller's currently booked seats.
func (h *TicketHandler) MyTickets(c echo.Context) error {
	accountID, _ := c.Get("account_id").(string)
	if accountID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tickets, err := h.Tickets.ListBooked(ctx, accountID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"tickets": tickets})
}

// Cancel flips one of the caller's booked seats to Cancelled. The
// precondition check and the mutation are a single conditional update in
// the repository, so concurrent attempts on the same seat resolve to
// exactly one success; every other caller sees a 404. On success a
// cancellation event is published best-effort.
func (h *TicketHandler) Cancel(c echo.Context) error {
	accountID, _ := c.Get("account_id").(string)
	if accountID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req cancelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	flightID := strings.TrimSpace(req.FlightID)
	seatNo := strings.TrimSpace(req.SeatNo)
	if flightID == "" || seatNo == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "flight_id, seat_no are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Tickets.Cancel(ctx, accountID, flightID, seatNo); err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found or already cancelled"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}

	// Best-effort event; a broker outage must not fail the cancellation.
	go func() {
		ev := queue.TicketCancelledEvent{
			AccountID:   accountID,
			FlightID:    flightID,
			SeatNo:      seatNo,
			CancelledAt: time.Now().UTC().Format(time.RFC3339),
		}
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pubCancel()
		_ = queue_publisher.PublishTicketCancelled(pubCtx, ev)
	}()

	return c.JSON(http.StatusOK, echo.Map{"message": "Cancelled successfully"})
}

// Search returns available seats from the inventory catalog matching the
// supplied filters. At least one filter is required; an all-empty request
// is rejected instead of scanning the whole catalog.
func (h *TicketHandler) Search(c echo.Context) error {
	f, err := filtersFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tickets, err := h.Tickets.SearchCatalog(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"tickets": tickets})
}

// Status runs the same filter set independently against the ledger and the
// catalog and returns both result sets uncombined. The partitions are not
// guaranteed disjoint, so no deduplication is attempted; matched_filters
// echoes back the filters that were actually supplied.
func (h *TicketHandler) Status(c echo.Context) error {
	f, err := filtersFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	fromLedger, err := h.Tickets.SearchLedger(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	fromCatalog, err := h.Tickets.SearchCatalog(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"from_ledger":     fromLedger,
		"from_catalog":    fromCatalog,
		"matched_filters": f.Supplied(),
	})
}

func filtersFromQuery(c echo.Context) (repository.TicketFilters, error) {
	return repository.NewTicketFilters(
		c.QueryParam("pnr"),
		c.QueryParam("flight_id"),
		c.QueryParam("src"),
		c.QueryParam("dst"),
		c.QueryParam("airline_name"),
	)
}
