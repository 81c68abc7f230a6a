package metrics

import (
	"sync"
	"testing"
)

func TestRegistry_GetOrCreate(t *testing.T) {
	r := NewRegistry()

	c1 := r.Counter("dispatcher/txs")
	c2 := r.Counter("dispatcher/txs")
	if c1 != c2 {
		t.Fatal("same name must return the same counter")
	}

	g1 := r.Gauge("subcall/depth")
	g2 := r.Gauge("subcall/depth")
	if g1 != g2 {
		t.Fatal("same name must return the same gauge")
	}

	h1 := r.Histogram("dispatcher/gas_used")
	h2 := r.Histogram("dispatcher/gas_used")
	if h1 != h2 {
		t.Fatal("same name must return the same histogram")
	}
}

func TestRegistry_KindsAreSeparate(t *testing.T) {
	r := NewRegistry()
	r.Counter("shared")
	r.Gauge("shared")

	snap := r.Snapshot()
	// Last writer wins in the snapshot map, but both metrics must exist.
	if len(snap) != 1 {
		t.Fatalf("snapshot entries = %d, want 1 (shared name)", len(snap))
	}
}

func TestRegistry_Snapshot(t *testing.T) {
	r := NewRegistry()
	r.Counter("c").Add(3)
	r.Gauge("g").Set(-7)
	r.Histogram("h").Observe(2.5)

	snap := r.Snapshot()
	if snap["c"] != int64(3) {
		t.Fatalf("counter snapshot = %v, want 3", snap["c"])
	}
	if snap["g"] != int64(-7) {
		t.Fatalf("gauge snapshot = %v, want -7", snap["g"])
	}
	hs, ok := snap["h"].(map[string]interface{})
	if !ok {
		t.Fatalf("histogram snapshot has wrong type: %T", snap["h"])
	}
	if hs["count"] != int64(1) || hs["sum"] != 2.5 {
		t.Fatalf("histogram snapshot = %v", hs)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				r.Counter("contended").Inc()
			}
		}()
	}
	wg.Wait()
	if v := r.Counter("contended").Value(); v != 4000 {
		t.Fatalf("value = %d, want 4000", v)
	}
}
