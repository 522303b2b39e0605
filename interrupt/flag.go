// Package interrupt carries an external stop request into the frame loop.
//
// A Flag is the only state shared between the loop and asynchronous signal
// delivery; setting it is a single atomic store.
package interrupt

import (
	"os"
	"os/signal"
	"sync/atomic"
)

// Flag is a one-way cancellation latch, safe for concurrent use
type Flag struct {
	set atomic.Bool
}

// Signal requests cancellation
func (f *Flag) Signal() {
	f.set.Store(true)
}

// Cancelled reports whether Signal has been called
func (f *Flag) Cancelled() bool {
	return f.set.Load()
}

// Notify routes delivery of sigs to f.Signal until stop is called.
// With no sigs, all incoming signals are relayed as signal.Notify does.
func Notify(f *Flag, sigs ...os.Signal) (stop func()) {
	ch := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(ch, sigs...)

	go func() {
		for {
			select {
			case <-ch:
				f.Signal()
			case <-done:
				return
			}
		}
	}()

	stopped := false
	return func() {
		if stopped {
			return
		}
		stopped = true
		signal.Stop(ch)
		close(done)
	}
}
