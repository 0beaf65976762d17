package usecase

import (
	"sync"

	"github.com/google/uuid"
)

// roomLocks serializes check-then-write sequences per room within this
// process. The store's overlap constraint covers other processes.
type roomLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*roomLock
}

type roomLock struct {
	sync.Mutex
	refs int
}

func newRoomLocks() *roomLocks {
	return &roomLocks{locks: make(map[uuid.UUID]*roomLock)}
}

// Lock blocks until the room's lock is held and returns its release func.
func (l *roomLocks) Lock(roomID uuid.UUID) func() {
	l.mu.Lock()
	lk, ok := l.locks[roomID]
	if !ok {
		lk = &roomLock{}
		l.locks[roomID] = lk
	}
	lk.refs++
	l.mu.Unlock()

	lk.Lock()
	return func() {
		lk.Unlock()

		l.mu.Lock()
		lk.refs--
		if lk.refs == 0 {
			delete(l.locks, roomID)
		}
		l.mu.Unlock()
	}
}
