// internal/core/services/sequence.go
package services

import (
	"sync"

	"github.com/clementech/checkout-be/internal/core/domain"
)

// SequenceAllocator produces monotonically increasing bill numbers that
// survive process restarts. The counter is explicit state injected into
// the checkout service, initialized once at startup from the persisted
// bill history, never hidden package-level state.
type SequenceAllocator struct {
	mu   sync.Mutex
	next int64
}

// NewSequenceAllocator returns an allocator starting at 1.
func NewSequenceAllocator() *SequenceAllocator {
	return &SequenceAllocator{next: 1}
}

// Initialize sets the counter to maxExisting+1. A non-positive maximum
// resets the counter to 1 (empty history).
func (s *SequenceAllocator) Initialize(maxExisting int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if maxExisting < 0 {
		maxExisting = 0
	}
	s.next = maxExisting + 1
}

// InitializeFromBills scans persisted bills and sets the counter to
// max(billNumber)+1, or 1 when none exist.
func (s *SequenceAllocator) InitializeFromBills(bills []domain.Bill) {
	var max int64
	for _, b := range bills {
		if b.BillNumber > max {
			max = b.BillNumber
		}
	}
	s.Initialize(max)
}

// Next returns the current counter value and increments it.
func (s *SequenceAllocator) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.next
	s.next++
	return n
}

// Peek returns the number the next call to Next would allocate.
func (s *SequenceAllocator) Peek() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}
