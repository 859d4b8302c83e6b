package repository

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResult struct{ last int64 }

func (r fakeResult) LastInsertId() (int64, error) { return r.last, nil }
func (r fakeResult) RowsAffected() (int64, error) { return 1, nil }

// scriptedExecer plays back LastInsertId values for successive increment
// upserts and records every repair UPDATE it receives. A value of 0 is what
// the driver reports when the seq column is NULL.
type scriptedExecer struct {
	increments []int64
	repairs    [][]any
}

func (f *scriptedExecer) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if strings.HasPrefix(query, "UPDATE counters") {
		f.repairs = append(f.repairs, args)
		return fakeResult{}, nil
	}
	if len(f.increments) == 0 {
		return fakeResult{}, nil
	}
	v := f.increments[0]
	f.increments = f.increments[1:]
	return fakeResult{last: v}, nil
}

func TestCounterIncrementHealthy(t *testing.T) {
	exec := &scriptedExecer{increments: []int64{100043}}
	repo := &CounterRepo{DB: exec}

	v, err := repo.Increment(context.Background(), "customer")
	require.NoError(t, err)
	assert.Equal(t, int64(100043), v)
	assert.Empty(t, exec.repairs, "healthy counter must not trigger a repair")
}

func TestCounterIncrementRepairsNullSeq(t *testing.T) {
	// First upsert hits a NULL seq, the repair reseeds, the retry succeeds.
	exec := &scriptedExecer{increments: []int64{0, counterSeedBase + 1}}
	repo := &CounterRepo{DB: exec}

	v, err := repo.Increment(context.Background(), "customer")
	require.NoError(t, err)
	assert.Equal(t, int64(counterSeedBase+1), v)

	require.Len(t, exec.repairs, 1)
	assert.Equal(t, []any{counterSeedBase, "customer"}, exec.repairs[0])
}

func TestCounterIncrementCorruptAfterRepair(t *testing.T) {
	// The retry after the repair pass still yields no usable value; that is
	// reported as a typed failure, not retried again.
	exec := &scriptedExecer{increments: []int64{0, 0}}
	repo := &CounterRepo{DB: exec}

	_, err := repo.Increment(context.Background(), "customer")
	require.ErrorIs(t, err, ErrCounterCorrupt)
	assert.Len(t, exec.repairs, 1, "repair must run exactly once")
}
