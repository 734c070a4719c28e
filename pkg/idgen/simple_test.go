package idgen

import (
	"context"
	"errors"
	"math"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
)

func TestSimpleGenerator_WrapsAroundPastMax(t *testing.T) {
	gen := NewSimpleGenerator(NewRangePolicy(RangeConfig{
		MinValues: map[string]int64{"slot": 5},
		MaxValues: map[string]int64{"slot": 7},
	}))

	want := []string{"5", "6", "7", "5", "6"}
	for i, w := range want {
		got, err := gen.GenerateID(context.Background(), "slot")
		if err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
		if got != w {
			t.Fatalf("call %d: got %s, want %s", i, got, w)
		}
	}
}

func TestSimpleGenerator_ScopesAreIndependent(t *testing.T) {
	gen := NewSimpleGenerator(NewRangePolicy(RangeConfig{PermitUnlimited: true}))

	for _, want := range []string{"1", "2"} {
		got, _ := gen.GenerateID(context.Background(), "order")
		if got != want {
			t.Fatalf("GenerateID = %s, want %s", got, want)
		}
	}
	if got, _ := gen.GenerateGlobalID(context.Background(), "order"); got != "1" {
		t.Fatalf("GenerateGlobalID = %s, want 1", got)
	}
}

func TestSimpleGenerator_ConfigErrors(t *testing.T) {
	gen := NewSimpleGenerator(NewRangePolicy(RangeConfig{}))

	if _, err := gen.GenerateID(context.Background(), ""); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for blank name, got %v", err)
	}
	if _, err := gen.GenerateID(context.Background(), "order"); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for missing max, got %v", err)
	}
}

func TestSimpleGenerator_Concurrency(t *testing.T) {
	gen := NewSimpleGenerator(NewRangePolicy(RangeConfig{PermitUnlimited: true}))
	numGoroutines := 50
	numIDs := 1000

	var mu sync.Mutex
	seen := make(map[string]bool, numGoroutines*numIDs)
	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < numIDs; j++ {
				id, err := gen.GenerateID(context.Background(), "order")
				if err != nil {
					t.Errorf("concurrent generation failed: %v", err)
					return
				}
				mu.Lock()
				if seen[id] {
					t.Errorf("duplicate id generated: %s", id)
				}
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != numGoroutines*numIDs {
		t.Fatalf("expected %d ids, got %d", numGoroutines*numIDs, len(seen))
	}
}

func TestSimpleGenerator_ConcurrentWrapStaysInRange(t *testing.T) {
	gen := NewSimpleGenerator(NewRangePolicy(RangeConfig{MaxValues: map[string]int64{"slot": 10}}))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id, err := gen.GenerateID(context.Background(), "slot")
				if err != nil {
					t.Errorf("GenerateID failed: %v", err)
					return
				}
				if len(id) > 2 || id == "0" || (len(id) == 2 && id != "10") {
					t.Errorf("id %s outside [1, 10]", id)
				}
			}
		}()
	}
	wg.Wait()
}

func TestSimpleGenerator_WrapsInsteadOfGoingNegative(t *testing.T) {
	gen := NewSimpleGenerator(NewRangePolicy(RangeConfig{PermitUnlimited: true}))
	near := new(atomic.Int64)
	near.Store(math.MaxInt64 - 1)
	gen.counters.Store(scopedName{name: "order"}, near)

	want := []string{strconv.FormatInt(math.MaxInt64, 10), "1", "2"}
	for _, w := range want {
		got, err := gen.GenerateID(context.Background(), "order")
		if err != nil {
			t.Fatalf("GenerateID failed: %v", err)
		}
		if got != w {
			t.Fatalf("GenerateID = %s, want %s", got, w)
		}
	}
}
