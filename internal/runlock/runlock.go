// Package runlock serializes repair runs so two invocations never rewrite
// the same library at once.
package runlock

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

const lockFileName = ".seasonfix.lock"

// ErrHeld reports that another run owns the library lock.
var ErrHeld = errors.New("another seasonfix run is active for this library")

// Acquire takes an exclusive lock under dir. The returned release function
// must be called on every exit path; it is safe to call once the run ends in
// error.
func Acquire(dir string) (func(), error) {
	lock := flock.New(filepath.Join(dir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return nil, ErrHeld
	}
	return func() {
		_ = lock.Unlock()
	}, nil
}
