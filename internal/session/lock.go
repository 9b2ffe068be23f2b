package session

import (
	"fmt"

	"github.com/gofrs/flock"

	"notesift/internal/services"
)

// Lock guards the session database against concurrent mutating commands from
// other notesift processes.
type Lock struct {
	fl *flock.Flock
}

// AcquireLock takes the cross-process session lock without blocking. A held
// lock surfaces as a busy error so the caller can tell the user another
// command is running.
func AcquireLock(path string) (*Lock, error) {
	fl := flock.New(path)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire session lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: another notesift command holds %s", services.ErrBusy, path)
	}
	return &Lock{fl: fl}, nil
}

// Release drops the lock. Safe to call on a nil lock.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	return l.fl.Unlock()
}
