package repository

import "strings"

// TicketFilters is the normalized filter set shared by the catalog search
// and the status aggregation query. Both entry points must go through
// NewTicketFilters so normalization cannot drift between them. The zero
// value matches nothing useful; always build it through the constructor,
// which fails closed on all-empty input.
type TicketFilters struct {
	PNR      string // uppercased, exact match
	FlightID string // uppercased, exact match
	Src      string // uppercased, exact match
	Dst      string // uppercased, exact match
	Airline  string // trimmed, case-insensitive prefix match
}

// NewTicketFilters trims and normalizes the raw filter values. PNR, flight,
// source and destination are uppercased for exact comparison; the airline
// name keeps its casing and is matched as a case-insensitive prefix at query
// time. When every field is empty after trimming it returns ErrNoFilter so
// that no caller can ever issue an unbounded scan.
func NewTicketFilters(pnr, flightID, src, dst, airline string) (TicketFilters, error) {
	f := TicketFilters{
		PNR:      strings.ToUpper(strings.TrimSpace(pnr)),
		FlightID: strings.ToUpper(strings.TrimSpace(flightID)),
		Src:      strings.ToUpper(strings.TrimSpace(src)),
		Dst:      strings.ToUpper(strings.TrimSpace(dst)),
		Airline:  strings.TrimSpace(airline),
	}
	if f.PNR == "" && f.FlightID == "" && f.Src == "" && f.Dst == "" && f.Airline == "" {
		return TicketFilters{}, ErrNoFilter
	}
	return f, nil
}

// Supplied returns only the filters that were actually provided, for
// echoing back to clients in the status aggregation response.
func (f TicketFilters) Supplied() map[string]string {
	m := make(map[string]string)
	if f.PNR != "" {
		m["pnr"] = f.PNR
	}
	if f.FlightID != "" {
		m["flight_id"] = f.FlightID
	}
	if f.Src != "" {
		m["src"] = f.Src
	}
	if f.Dst != "" {
		m["dst"] = f.Dst
	}
	if f.Airline != "" {
		m["airline_name"] = f.Airline
	}
	return m
}

// where assembles the SQL predicates for this filter set. The arguments are
// already normalized by the constructor and the tables use a
// case-insensitive utf8mb4 collation, so the columns are compared bare;
// wrapping them in a function would stop the secondary indexes from serving
// the query. The airline name becomes an escaped LIKE prefix pattern.
func (f TicketFilters) where() ([]string, []any) {
	var conds []string
	var args []any
	if f.PNR != "" {
		conds = append(conds, "pnr = ?")
		args = append(args, f.PNR)
	}
	if f.FlightID != "" {
		conds = append(conds, "flight_id = ?")
		args = append(args, f.FlightID)
	}
	if f.Src != "" {
		conds = append(conds, "src = ?")
		args = append(args, f.Src)
	}
	if f.Dst != "" {
		conds = append(conds, "dst = ?")
		args = append(args, f.Dst)
	}
	if f.Airline != "" {
		conds = append(conds, `airline_name LIKE ? ESCAPE '\\'`)
		args = append(args, AirlinePrefixPattern(f.Airline))
	}
	return conds, args
}

// AirlinePrefixPattern converts an airline filter into the LIKE pattern used
// for prefix matching: metacharacters are escaped, the value is uppercased
// and a single trailing wildcard is appended. "Luf" matches "Lufthansa" but
// not "Austrian Lufthansa".
func AirlinePrefixPattern(airline string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(strings.ToUpper(airline)) + "%"
}
