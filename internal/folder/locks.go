package folder

import (
	"slices"
	"sync"
)

// locker hands out advisory per-name locks. The returned func releases them.
type locker interface {
	lock(names ...string) func()
}

type nopLocker struct{}

func (nopLocker) lock(...string) func() { return func() {} }

type nameLocker struct {
	mu    sync.Mutex
	locks map[string]*nameLock
}

type nameLock struct {
	mu   sync.Mutex
	refs int
}

func newNameLocker() *nameLocker {
	return &nameLocker{locks: make(map[string]*nameLock)}
}

func (l *nameLocker) lock(names ...string) func() {
	// Fixed order so two renames over the same pair cannot deadlock.
	names = slices.Clone(names)
	slices.Sort(names)
	names = slices.Compact(names)

	held := make([]*nameLock, 0, len(names))
	for _, name := range names {
		held = append(held, l.acquire(name))
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			l.release(names[i], held[i])
		}
	}
}

func (l *nameLocker) acquire(name string) *nameLock {
	l.mu.Lock()
	nl, ok := l.locks[name]
	if !ok {
		nl = &nameLock{}
		l.locks[name] = nl
	}
	nl.refs++
	l.mu.Unlock()

	nl.mu.Lock()
	return nl
}

func (l *nameLocker) release(name string, nl *nameLock) {
	nl.mu.Unlock()

	l.mu.Lock()
	nl.refs--
	if nl.refs == 0 {
		delete(l.locks, name)
	}
	l.mu.Unlock()
}
