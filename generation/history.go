package generation

import "sync"

// Entry is one remembered generation.
type Entry struct {
	Output   string
	Provider string
}

// History is a bounded FIFO of successful generations. When full, adding
// an entry evicts the oldest one. It is safe for concurrent use.
type History struct {
	mu      sync.RWMutex
	entries []Entry
	start   int
	size    int
}

// NewHistory creates a history holding at most capacity entries.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = defaultHistorySize
	}
	return &History{entries: make([]Entry, capacity)}
}

// Add appends e, evicting the oldest entry when the history is full.
func (h *History) Add(e Entry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	capacity := len(h.entries)
	if h.size < capacity {
		h.entries[(h.start+h.size)%capacity] = e
		h.size++
		return
	}
	h.entries[h.start] = e
	h.start = (h.start + 1) % capacity
}

// Find returns the provider of the newest entry whose output equals text.
func (h *History) Find(text string) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for i := h.size - 1; i >= 0; i-- {
		e := h.entries[(h.start+i)%len(h.entries)]
		if e.Output == text {
			return e.Provider, true
		}
	}
	return "", false
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.size
}

// Cap returns the capacity.
func (h *History) Cap() int {
	return len(h.entries)
}

// Entries returns a copy of the entries, oldest first.
func (h *History) Entries() []Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Entry, h.size)
	for i := range out {
		out[i] = h.entries[(h.start+i)%len(h.entries)]
	}
	return out
}
