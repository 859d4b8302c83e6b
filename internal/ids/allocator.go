// Package ids issues customer identifiers. Every other component treats the
// identifier as an opaque string, so the allocation policy can be swapped
// (sequential counter vs. random token) without touching any consumer.
package ids

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CustomerCounter is the counter name backing customer identifiers.
const CustomerCounter = "customer"

const customerPrefix = "CUS"

// CounterStore is the one-operation interface an allocator needs from the
// storage layer: increment-and-fetch on a named counter, atomic under
// unbounded concurrent callers.
type CounterStore interface {
	Increment(ctx context.Context, name string) (int64, error)
}

// Allocator produces a fresh, never-repeating identifier.
type Allocator interface {
	Next(ctx context.Context) (string, error)
}

// Sequence allocates prefixed, zero-padded identifiers from an atomic
// counter. Values are strictly increasing in commit order.
type Sequence struct {
	Counters CounterStore
	Name     string
	Prefix   string
}

// NewCustomerSequence returns the allocator for customer ids: CUS followed
// by the zero-padded six-digit counter value, e.g. CUS100001.
func NewCustomerSequence(c CounterStore) *Sequence {
	return &Sequence{Counters: c, Name: CustomerCounter, Prefix: customerPrefix}
}

func (s *Sequence) Next(ctx context.Context) (string, error) {
	v, err := s.Counters.Increment(ctx, s.Name)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%06d", s.Prefix, v), nil
}

// Random allocates prefixed random tokens. A drop-in replacement for
// Sequence when uniqueness, not orderability, is the only requirement.
type Random struct {
	Prefix string
}

// NewCustomerRandom returns the random-token allocator for customer ids.
func NewCustomerRandom() Random { return Random{Prefix: customerPrefix + "-"} }

func (r Random) Next(ctx context.Context) (string, error) {
	return r.Prefix + uuid.NewString(), nil
}
