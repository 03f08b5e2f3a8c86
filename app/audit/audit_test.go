package audit

import (
	"testing"
	"time"
)

func TestRecordNeverBlocks(t *testing.T) {
	l := NewLogger(1)
	defer l.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			l.Record("cart.add", "cart-1", "part=filter/p1")
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Record blocked on a full buffer")
	}
}

func TestCloseStopsDrain(t *testing.T) {
	l := NewLogger(16)
	l.Record("order.place", "cart-1", "order=o1")

	done := make(chan struct{})
	go func() {
		l.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return")
	}
}
