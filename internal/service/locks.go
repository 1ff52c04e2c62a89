package service

import (
	"sync"

	"github.com/google/uuid"
)

// DocumentLocks serializes overwrite and retrieval per document id so a query
// never observes a half-replaced collection. Mutexes are created lazily and
// kept for the process lifetime; cardinality tracks documents, not requests.
type DocumentLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewDocumentLocks() *DocumentLocks {
	return &DocumentLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// Lock acquires the mutex for id and returns its unlock function.
func (l *DocumentLocks) Lock(id uuid.UUID) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
