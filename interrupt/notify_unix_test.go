//go:build unix

package interrupt

import (
	"syscall"
	"testing"
	"time"
)

func TestNotifyRelaysSignal(t *testing.T) {
	var f Flag
	stop := Notify(&f, syscall.SIGUSR1)
	defer stop()

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGUSR1); err != nil {
		t.Fatalf("Kill failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for !f.Cancelled() {
		if time.Now().After(deadline) {
			t.Fatal("Signal was not relayed to flag")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNotifyStopIdempotent(t *testing.T) {
	var f Flag
	stop := Notify(&f, syscall.SIGUSR2)
	stop()
	stop()

	if f.Cancelled() {
		t.Error("Flag set without any signal")
	}
}
