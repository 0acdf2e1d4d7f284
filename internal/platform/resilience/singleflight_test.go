package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_DeduplicatesConcurrentCalls(t *testing.T) {
	t.Parallel()

	var sf SingleFlight
	var calls atomic.Int32

	const workers = 16
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err, _ := sf.Do("batch", func() (any, error) {
				calls.Add(1)
				time.Sleep(20 * time.Millisecond)
				return 42, nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if got, _ := v.(int); got != 42 {
				t.Errorf("unexpected value: %v", v)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected one underlying call, got %d", got)
	}
}

func TestSingleFlight_SequentialCallsRunSeparately(t *testing.T) {
	t.Parallel()

	var sf SingleFlight
	var calls atomic.Int32

	for i := 0; i < 3; i++ {
		_, _, shared := sf.Do("key", func() (any, error) {
			calls.Add(1)
			return nil, nil
		})
		if shared {
			t.Fatalf("sequential call %d should not share a result", i)
		}
	}

	if got := calls.Load(); got != 3 {
		t.Fatalf("expected 3 calls, got %d", got)
	}
}
