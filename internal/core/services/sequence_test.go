package services_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clementech/checkout-be/internal/core/domain"
	"github.com/clementech/checkout-be/internal/core/services"
)

func TestSequenceAllocator_StartsAtOne(t *testing.T) {
	seq := services.NewSequenceAllocator()

	assert.Equal(t, int64(1), seq.Peek())
	assert.Equal(t, int64(1), seq.Next())
	assert.Equal(t, int64(2), seq.Next())
	assert.Equal(t, int64(3), seq.Peek())
}

func TestSequenceAllocator_Initialize(t *testing.T) {
	tests := []struct {
		name        string
		maxExisting int64
		wantNext    int64
	}{
		{name: "resumes_after_history", maxExisting: 41, wantNext: 42},
		{name: "empty_history", maxExisting: 0, wantNext: 1},
		{name: "negative_treated_as_empty", maxExisting: -7, wantNext: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := services.NewSequenceAllocator()
			seq.Initialize(tt.maxExisting)
			assert.Equal(t, tt.wantNext, seq.Next())
		})
	}
}

func TestSequenceAllocator_InitializeFromBills(t *testing.T) {
	seq := services.NewSequenceAllocator()
	seq.InitializeFromBills([]domain.Bill{
		{BillNumber: 3},
		{BillNumber: 17},
		{BillNumber: 5},
	})
	assert.Equal(t, int64(18), seq.Next())

	seq.InitializeFromBills(nil)
	assert.Equal(t, int64(1), seq.Next())
}

func TestSequenceAllocator_ConcurrentNext(t *testing.T) {
	seq := services.NewSequenceAllocator()

	const goroutines = 50
	seen := make(chan int64, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen <- seq.Next()
		}()
	}
	wg.Wait()
	close(seen)

	unique := make(map[int64]bool, goroutines)
	for n := range seen {
		assert.False(t, unique[n], "number %d allocated twice", n)
		unique[n] = true
	}
	assert.Len(t, unique, goroutines)
	assert.Equal(t, int64(goroutines+1), seq.Peek())
}
