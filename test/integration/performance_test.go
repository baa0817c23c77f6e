package integration

import (
	"sync"
	"testing"
	"time"

	"github.com/iwvelando/emi-calculator/pkg/loans"
)

// TestLongTermPerformance checks that the longest realistic terms stay fast.
func TestLongTermPerformance(t *testing.T) {
	start := time.Now()
	schedule, err := loans.CalculateSchedule(2500000, 7.25, 100)
	if err != nil {
		t.Fatalf("CalculateSchedule() error = %v", err)
	}
	elapsed := time.Since(start)

	if len(schedule.Entries) != 1200 {
		t.Fatalf("expected 1200 entries, got %d", len(schedule.Entries))
	}
	if elapsed > time.Second {
		t.Errorf("schedule took %v, expected well under a second", elapsed)
	}
	t.Logf("computed %d months in %v", len(schedule.Entries), elapsed)
}

// TestConcurrentCalculations runs many calculations in parallel; run with -race.
func TestConcurrentCalculations(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := loans.CalculateSchedule(float64(10000*(i+1)), float64(i%15), float64(i%30+1)); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("unexpected error: %v", err)
	}
}

func BenchmarkCalculateSchedule(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := loans.CalculateSchedule(500000, 8.5, 20); err != nil {
			b.Fatal(err)
		}
	}
}
