// SPDX-License-Identifier: MIT

//go:build !noaccel

package divergence

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"
)

// device is the process-wide worker pool behind the accelerated backend.
// Calls share it but each acquires its own slots; no data lives on it.
type device struct {
	slots     int64
	sem       *semaphore.Weighted
	closeOnce sync.Once
}

var (
	deviceMu sync.Mutex
	current  *device
)

// acquireDevice returns the live device, initializing it on first use or
// after Shutdown.
func acquireDevice() *device {
	deviceMu.Lock()
	defer deviceMu.Unlock()

	if current == nil {
		slots := int64(runtime.GOMAXPROCS(0))
		current = &device{slots: slots, sem: semaphore.NewWeighted(slots)}
	}

	return current
}

// reserve blocks until k slots (clamped to [1, capacity]) are free and
// returns the granted count.
func (d *device) reserve(ctx context.Context, k int) (int, error) {
	w := int64(k)
	if w <= 0 || w > d.slots {
		w = d.slots
	}
	if err := d.sem.Acquire(ctx, w); err != nil {
		return 0, err
	}

	return int(w), nil
}

func (d *device) release(k int) { d.sem.Release(int64(k)) }

// Shutdown waits for in-flight accelerated calls to drain and releases the
// device. It is idempotent; a later call re-initializes the device.
func Shutdown() {
	deviceMu.Lock()
	d := current
	current = nil
	deviceMu.Unlock()

	if d == nil {
		return
	}
	d.closeOnce.Do(func() {
		// Holding every slot means no call is still using d.
		if err := d.sem.Acquire(context.Background(), d.slots); err == nil {
			d.sem.Release(d.slots)
		}
	})
}
