package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

// =============================================================================
// Pool Creation Tests
// =============================================================================

func TestPool_Create(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("pool should be running after creation")
	}
}

func TestPool_DefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -5} {
		pool := NewPool(n)
		if got, want := pool.Workers(), runtime.GOMAXPROCS(0); got != want {
			t.Errorf("NewPool(%d).Workers() = %d, want %d", n, got, want)
		}
		pool.Close()
	}
}

// =============================================================================
// Run Tests
// =============================================================================

func TestPool_Run(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	var counter atomic.Int64
	tasks := make([]func(), 100)
	for i := range tasks {
		tasks[i] = func() { counter.Add(1) }
	}
	pool.Run(tasks)

	if counter.Load() != 100 {
		t.Errorf("counter = %d, want 100", counter.Load())
	}
}

func TestPool_RunEmpty(t *testing.T) {
	pool := NewPool(2)
	defer pool.Close()

	pool.Run(nil)
	pool.Run([]func(){})
}

func TestPool_RunAfterClose(t *testing.T) {
	pool := NewPool(2)
	pool.Close()

	if pool.IsRunning() {
		t.Error("pool should not be running after Close")
	}

	ran := 0
	pool.Run([]func(){func() { ran++ }, func() { ran++ }})
	if ran != 2 {
		t.Errorf("ran = %d after Close, want 2", ran)
	}
}

func TestPool_CloseTwice(t *testing.T) {
	pool := NewPool(2)
	pool.Close()
	pool.Close()
}

func TestPool_ConcurrentRun(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	var counter atomic.Int64
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tasks := make([]func(), 50)
			for i := range tasks {
				tasks[i] = func() { counter.Add(1) }
			}
			pool.Run(tasks)
		}()
	}
	wg.Wait()

	if counter.Load() != 400 {
		t.Errorf("counter = %d, want 400", counter.Load())
	}
}

// =============================================================================
// Rows / ForEach Tests
// =============================================================================

func TestPool_RowsCoverage(t *testing.T) {
	pool := NewPool(3)
	defer pool.Close()

	for _, height := range []int{1, 2, 5, 11, 12, 13, 100, 257} {
		hits := make([]atomic.Int32, height)
		pool.Rows(height, func(y0, y1 int) {
			if y0 >= y1 {
				t.Errorf("height %d: empty band [%d, %d)", height, y0, y1)
			}
			for y := y0; y < y1; y++ {
				hits[y].Add(1)
			}
		})
		for y := range hits {
			if n := hits[y].Load(); n != 1 {
				t.Errorf("height %d: row %d visited %d times, want 1", height, y, n)
			}
		}
	}
}

func TestPool_RowsZeroHeight(t *testing.T) {
	pool := NewPool(2)
	defer pool.Close()

	called := false
	pool.Rows(0, func(int, int) { called = true })
	if called {
		t.Error("Rows(0) invoked fn")
	}
}

func TestPool_ForEach(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	out := make([]int, 1000)
	pool.ForEach(len(out), func(i int) { out[i] = i * i })
	for i, v := range out {
		if v != i*i {
			t.Fatalf("out[%d] = %d, want %d", i, v, i*i)
		}
	}
}
