package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTicketFiltersRejectsAllEmpty(t *testing.T) {
	_, err := NewTicketFilters("", "", "", "", "")
	require.ErrorIs(t, err, ErrNoFilter)

	// Whitespace-only input counts as empty.
	_, err = NewTicketFilters("  ", "\t", "", " ", "  ")
	require.ErrorIs(t, err, ErrNoFilter)
}

func TestNewTicketFiltersNormalizes(t *testing.T) {
	f, err := NewTicketFilters(" ab12cd ", "lh0100", " fra", "jfk ", "  Lufthansa ")
	require.NoError(t, err)

	assert.Equal(t, "AB12CD", f.PNR)
	assert.Equal(t, "LH0100", f.FlightID)
	assert.Equal(t, "FRA", f.Src)
	assert.Equal(t, "JFK", f.Dst)
	// Airline keeps its casing; prefix comparison is case-insensitive later.
	assert.Equal(t, "Lufthansa", f.Airline)
}

func TestNewTicketFiltersSingleFieldSuffices(t *testing.T) {
	f, err := NewTicketFilters("", "", "", "", "Luf")
	require.NoError(t, err)
	assert.Equal(t, "Luf", f.Airline)
}

func TestSuppliedEchoesOnlyProvidedFilters(t *testing.T) {
	f, err := NewTicketFilters("", "lh0100", "", "", "Luf")
	require.NoError(t, err)

	m := f.Supplied()
	assert.Equal(t, map[string]string{
		"flight_id":    "LH0100",
		"airline_name": "Luf",
	}, m)
}

func TestAirlinePrefixPattern(t *testing.T) {
	assert.Equal(t, "LUF%", AirlinePrefixPattern("Luf"))
	assert.Equal(t, "LUF%", AirlinePrefixPattern("luf"))
	// LIKE metacharacters in the filter must not act as wildcards.
	assert.Equal(t, `50\% AIRWAYS%`, AirlinePrefixPattern("50% Airways"))
	assert.Equal(t, `A\_B%`, AirlinePrefixPattern("a_b"))
	assert.Equal(t, `A\\B%`, AirlinePrefixPattern(`a\b`))
}

func TestWherePredicates(t *testing.T) {
	f, err := NewTicketFilters("pnr1", "", "fra", "", "Luf")
	require.NoError(t, err)

	conds, args := f.where()
	require.Len(t, conds, 3)
	require.Len(t, args, 3)
	assert.Equal(t, "pnr = ?", conds[0])
	assert.Equal(t, "PNR1", args[0])
	assert.Equal(t, "src = ?", conds[1])
	assert.Equal(t, "FRA", args[1])
	assert.Equal(t, `airline_name LIKE ? ESCAPE '\\'`, conds[2])
	assert.Equal(t, "LUF%", args[2])
}

func TestWherePredicatesAreIndexable(t *testing.T) {
	// Bare column comparisons let the secondary indexes serve the query;
	// normalization happens in the constructor, not in SQL.
	f, err := NewTicketFilters("ab12cd", "lh0100", "fra", "jfk", "")
	require.NoError(t, err)

	conds, _ := f.where()
	for _, c := range conds {
		assert.NotContains(t, c, "(")
	}
}
