package status

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestMetricMapGetCachesPointer(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()

	first := m.Get("sched.ticks")
	second := m.Get("sched.ticks")
	if first != second {
		t.Error("Get returned different pointers for same key")
	}

	first.Store(42)
	if got := second.Load(); got != 42 {
		t.Errorf("Cached pointer value = %d, want 42", got)
	}
}

func TestMetricMapConcurrentGet(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Get("shared").Add(1)
			}
		}()
	}
	wg.Wait()

	if got := m.Get("shared").Load(); got != 2000 {
		t.Errorf("Concurrent adds = %d, want 2000", got)
	}
	if got := m.Count(); got != 1 {
		t.Errorf("Count = %d, want 1", got)
	}
}

func TestMetricMapRangeSorted(t *testing.T) {
	m := NewMetricMap[atomic.Int64]()
	m.Get("zebra")
	m.Get("alpha")
	m.Get("mid")

	var keys []string
	m.Range(func(key string, ptr *atomic.Int64) {
		keys = append(keys, key)
	})

	want := []string{"alpha", "mid", "zebra"}
	for i, k := range want {
		if keys[i] != k {
			t.Fatalf("Range order = %v, want %v", keys, want)
		}
	}
}

func TestAtomicFloat(t *testing.T) {
	var f AtomicFloat

	if got := f.Get(); got != 0 {
		t.Errorf("Zero value = %v, want 0", got)
	}

	f.Set(3.5)
	if got := f.Get(); got != 3.5 {
		t.Errorf("Get after Set = %v, want 3.5", got)
	}

	if got := f.Add(1.25); got != 4.75 {
		t.Errorf("Add returned %v, want 4.75", got)
	}
}

func TestRegistryLines(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("sched.ticks").Store(18)
	r.Bools.Get("sched.paused").Store(false)
	r.Floats.Get("sched.alpha").Set(0.25)

	lines := r.Lines()
	if len(lines) != 3 {
		t.Fatalf("Lines count = %d, want 3", len(lines))
	}
	if lines[0] != "sched.paused=false" {
		t.Errorf("lines[0] = %q", lines[0])
	}
	if lines[1] != "sched.ticks=18" {
		t.Errorf("lines[1] = %q", lines[1])
	}
	if lines[2] != "sched.alpha=0.2500" {
		t.Errorf("lines[2] = %q", lines[2])
	}

	if got := r.TotalCount(); got != 3 {
		t.Errorf("TotalCount = %d, want 3", got)
	}
}
