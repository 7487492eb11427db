package ffi

// #include "linkprune.h"
import "C"
import (
	"sync"

	"github.com/linkprune/linkprune/pkg/linkprune"
)

// sessions manages analysis session handles with thread safety. Handles
// start at 1 so that 0 can signal failure.
var sessions = &sessionHandles{
	byID: make(map[C.int]*linkprune.Session),
}

type sessionHandles struct {
	mu     sync.RWMutex
	byID   map[C.int]*linkprune.Session
	nextID C.int
}

func (h *sessionHandles) add(s *linkprune.Session) C.int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	h.byID[h.nextID] = s
	return h.nextID
}

func (h *sessionHandles) get(id C.int) (*linkprune.Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.byID[id]
	return s, ok
}

func (h *sessionHandles) remove(id C.int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.byID, id)
}
