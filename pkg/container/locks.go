package container

import "sync"

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// pathLocks serializes writers per state path.
// It uses reference counting to garbage collect unused locks.
type pathLocks struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

func newPathLocks() *pathLocks {
	return &pathLocks{locks: make(map[string]*lockEntry)}
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller must lock entry.mu, then call release(path) after unlocking.
func (l *pathLocks) acquire(path string) *lockEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, exists := l.locks[path]
	if !exists {
		entry = &lockEntry{}
		l.locks[path] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (l *pathLocks) release(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, exists := l.locks[path]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(l.locks, path)
	}
}

// with executes fn while holding the lock for path.
func (l *pathLocks) with(path string, fn func() error) error {
	entry := l.acquire(path)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		l.release(path)
	}()
	return fn()
}

func (l *pathLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
