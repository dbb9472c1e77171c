package controller

import (
	"fmt"
	"net/url"
	"sync"
)

// History is the location of the quote page together with its navigation
// history, used for deep links.
type History struct {
	mu      sync.RWMutex
	entries []*url.URL
}

func NewHistory(raw string) (*History, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing location: %w", err)
	}
	return &History{entries: []*url.URL{u}}, nil
}

func (h *History) current() *url.URL {
	return h.entries[len(h.entries)-1]
}

func (h *History) String() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current().String()
}

// Param returns a query parameter of the current location.
func (h *History) Param(name string) string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current().Query().Get(name)
}

// Len is the number of history entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// ReplaceParam sets a query parameter on the current entry in place.
func (h *History) ReplaceParam(name, value string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[len(h.entries)-1] = withParam(h.current(), name, value)
}

// PushParam adds a new entry equal to the current location with the
// parameter set.
func (h *History) PushParam(name, value string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, withParam(h.current(), name, value))
}

func withParam(u *url.URL, name, value string) *url.URL {
	next := *u
	q := next.Query()
	q.Set(name, value)
	next.RawQuery = q.Encode()
	return &next
}
