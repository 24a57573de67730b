package run

import (
	"sync"
	"testing"
	"time"

	"github.com/justinpbarnett/scopesync/internal/instrument"
)

func capture(vs ...float64) []instrument.Sample {
	out := make([]instrument.Sample, len(vs))
	for i, v := range vs {
		out[i] = instrument.Sample{Time: float64(i), Voltage: v}
	}
	return out
}

func TestStorePutGet(t *testing.T) {
	s := NewStore()
	s.Put(Run{ID: 1, Capture: capture(1, 2), Label: "SIN | 1Hz | 1mV | 0mV"})

	r, ok := s.Get(1)
	if !ok {
		t.Fatal("expected run to be found")
	}
	if r.Label != "SIN | 1Hz | 1mV | 0mV" {
		t.Errorf("unexpected label %q", r.Label)
	}
	if len(r.Capture) != 2 || r.Capture[1].Voltage != 2 {
		t.Errorf("unexpected capture %+v", r.Capture)
	}
}

func TestStoreGetMissing(t *testing.T) {
	s := NewStore()
	if _, ok := s.Get(7); ok {
		t.Error("expected missing run")
	}
	if _, ok := s.Label(7); ok {
		t.Error("expected missing label")
	}
}

func TestStorePutOverwrites(t *testing.T) {
	s := NewStore()
	s.Put(Run{ID: 1, Capture: capture(1), Label: "first"})
	s.Put(Run{ID: 1, Capture: capture(5, 6), Label: "second"})

	r, _ := s.Get(1)
	if r.Label != "second" || len(r.Capture) != 2 {
		t.Errorf("expected overwrite, got %+v", r)
	}
	if s.Count() != 1 {
		t.Errorf("expected count 1, got %d", s.Count())
	}
}

func TestStoreCopiesCapture(t *testing.T) {
	s := NewStore()
	c := capture(1, 2, 3)
	s.Put(Run{ID: 1, Capture: c, Label: "x"})

	c[0].Voltage = 99
	r, _ := s.Get(1)
	if r.Capture[0].Voltage != 1 {
		t.Error("Put did not copy the capture slice")
	}

	r.Capture[1].Voltage = 99
	r2, _ := s.Get(1)
	if r2.Capture[1].Voltage != 2 {
		t.Error("Get did not return a copy")
	}
}

func TestStoreListOrderedByID(t *testing.T) {
	s := NewStore()
	s.Put(Run{ID: 3, Label: "c"})
	s.Put(Run{ID: 1, Label: "a"})
	s.Put(Run{ID: 2, Label: "b"})

	list := s.List()
	if len(list) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(list))
	}
	for i, want := range []ID{1, 2, 3} {
		if list[i].ID != want {
			t.Errorf("list[%d].ID = %d, want %d", i, list[i].ID, want)
		}
	}
}

func TestStoreUnlimitedByDefault(t *testing.T) {
	s := NewStore()
	for i := 1; i <= 100; i++ {
		s.Put(Run{ID: ID(i)})
	}
	if s.Count() != 100 {
		t.Errorf("expected 100 runs, got %d", s.Count())
	}
}

func TestStoreEvictsLeastRecentlyViewed(t *testing.T) {
	s := NewStore()
	s.SetLimit(2)

	s.Put(Run{ID: 1, Label: "a"})
	s.Put(Run{ID: 2, Label: "b"})
	s.Touch(1)
	s.Put(Run{ID: 3, Label: "c"})

	if _, ok := s.Get(2); ok {
		t.Error("expected run 2 (least recently viewed) to be evicted")
	}
	if _, ok := s.Get(1); !ok {
		t.Error("expected run 1 to survive after being touched")
	}
	if _, ok := s.Get(3); !ok {
		t.Error("expected the run just written to survive")
	}
}

func TestStoreSetLimitShrinks(t *testing.T) {
	s := NewStore()
	for i := 1; i <= 5; i++ {
		s.Put(Run{ID: ID(i)})
	}
	s.SetLimit(2)

	if s.Count() != 2 {
		t.Fatalf("expected 2 runs after SetLimit, got %d", s.Count())
	}
	if _, ok := s.Get(5); !ok {
		t.Error("expected most recent run to survive")
	}
}

func TestStoreViewBookkeepingStaysBounded(t *testing.T) {
	s := NewStore()
	s.SetLimit(2)

	for i := 1; i <= 50; i++ {
		s.Put(Run{ID: ID(i)})
		// viewing tabs that were never captured records nothing
		s.Touch(ID(1000 + i))
	}

	s.mu.RLock()
	viewed := len(s.viewed)
	s.mu.RUnlock()
	if viewed != 2 {
		t.Errorf("expected view entries for the 2 cached runs only, got %d", viewed)
	}
}

func TestStoreTouchMissingDoesNotAffectEviction(t *testing.T) {
	s := NewStore()
	s.SetLimit(2)
	s.Put(Run{ID: 1})
	s.Put(Run{ID: 2})
	s.Touch(3)
	s.Touch(1)
	s.Put(Run{ID: 3})

	if _, ok := s.Get(2); ok {
		t.Error("expected run 2 to be evicted")
	}
	if _, ok := s.Get(1); !ok {
		t.Error("expected run 1 to survive")
	}
}

func TestStoreChangesChannelCoalesces(t *testing.T) {
	s := NewStore()

	s.Put(Run{ID: 1})
	s.Put(Run{ID: 2})
	s.Put(Run{ID: 3})

	select {
	case <-s.Changes():
	case <-time.After(100 * time.Millisecond):
		t.Error("expected at least one change notification")
	}
	select {
	case <-s.Changes():
		t.Error("expected notifications to coalesce into one")
	default:
	}
}

// Readers racing a writer must always see a label that matches its capture.
func TestStoreAtomicPairs(t *testing.T) {
	s := NewStore()
	s.Put(Run{ID: 1, Capture: capture(0), Label: "0"})

	var wg sync.WaitGroup
	done := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= 500; i++ {
			s.Put(Run{ID: 1, Capture: capture(float64(i)), Label: ID(i).String()})
		}
		close(done)
	}()

	for {
		select {
		case <-done:
			wg.Wait()
			return
		default:
		}
		r, ok := s.Get(1)
		if !ok {
			t.Fatal("run disappeared")
		}
		if got := ID(int(r.Capture[0].Voltage)).String(); got != r.Label {
			t.Fatalf("torn read: capture %s with label %s", got, r.Label)
		}
	}
}
