package run

import (
	"fmt"
	"sync"
)

// Tab describes one selectable run slot.
type Tab struct {
	Label string
	ID    ID
}

func tabFor(id ID) Tab {
	return Tab{Label: fmt.Sprintf("Run #%d", id), ID: id}
}

// Tabs is the append-only list of run slots. It always contains Run #1 and
// IDs increase by one per tab.
type Tabs struct {
	mu   sync.RWMutex
	tabs []Tab
}

func NewTabs() *Tabs {
	return &Tabs{tabs: []Tab{tabFor(1)}}
}

// Add appends the next tab when clicks is positive and returns the
// resulting list. clicks is the add button's cumulative press count; zero
// means it has never fired and the list is returned unchanged.
func (t *Tabs) Add(clicks int) []Tab {
	t.mu.Lock()
	defer t.mu.Unlock()
	if clicks > 0 {
		last := t.tabs[len(t.tabs)-1]
		t.tabs = append(t.tabs, tabFor(last.ID+1))
	}
	return t.listLocked()
}

func (t *Tabs) List() []Tab {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.listLocked()
}

func (t *Tabs) Contains(id ID) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	// IDs are contiguous from 1
	return id >= 1 && int(id) <= len(t.tabs)
}

func (t *Tabs) First() Tab {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.tabs[0]
}

func (t *Tabs) listLocked() []Tab {
	out := make([]Tab, len(t.tabs))
	copy(out, t.tabs)
	return out
}
