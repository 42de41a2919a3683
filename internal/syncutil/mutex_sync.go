//go:build !deadlock

// Package syncutil provides mutex types that can optionally use deadlock detection.
// By default the standard sync.Mutex is used. Build with -tags=deadlock to
// catch lock-order bugs in the simulated tag via github.com/sasha-s/go-deadlock.
package syncutil

import "sync"

// Mutex wraps sync.Mutex. Build with -tags=deadlock for deadlock detection.
type Mutex struct {
	sync.Mutex
}
