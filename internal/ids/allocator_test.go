package ids

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCounters is an in-memory CounterStore with the same atomicity
// guarantee the SQL implementation provides.
type memCounters struct {
	mu   sync.Mutex
	vals map[string]int64
}

func newMemCounters() *memCounters { return &memCounters{vals: make(map[string]int64)} }

func (m *memCounters) Increment(ctx context.Context, name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vals[name]++
	return m.vals[name], nil
}

func TestSequenceFormatsPrefixedPaddedID(t *testing.T) {
	counters := newMemCounters()
	counters.vals[CustomerCounter] = 100042

	alloc := NewCustomerSequence(counters)
	id, err := alloc.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "CUS100043", id)
}

func TestSequencePadsSmallValues(t *testing.T) {
	alloc := NewCustomerSequence(newMemCounters())
	id, err := alloc.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "CUS000001", id)
}

func TestSequenceConcurrentAllocationsAreDistinct(t *testing.T) {
	const n = 200
	alloc := NewCustomerSequence(newMemCounters())

	out := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := alloc.Next(context.Background())
			require.NoError(t, err)
			out <- id
		}()
	}
	wg.Wait()
	close(out)

	seen := make(map[string]bool, n)
	for id := range out {
		require.False(t, seen[id], "duplicate identifier %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestRandomAllocatorIsDropInReplacement(t *testing.T) {
	var alloc Allocator = NewCustomerRandom()

	a, err := alloc.Next(context.Background())
	require.NoError(t, err)
	b, err := alloc.Next(context.Background())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a, "CUS-"))
	assert.NotEqual(t, a, b)
}
