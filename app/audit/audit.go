// Package audit is a best-effort trail of cart and order mutations. Events
// are handed to a background goroutine over a buffered channel; a full
// buffer drops the event rather than slowing the request down, and no
// mutation's outcome ever depends on the write.
package audit

import (
	"log"
	"time"
)

type Event struct {
	Action string
	CartID string
	Detail string
	At     time.Time
}

type Logger struct {
	events chan Event
	done   chan struct{}
}

func NewLogger(buffer int) *Logger {
	l := &Logger{
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
	}
	go l.drain()
	return l
}

func (l *Logger) drain() {
	defer close(l.done)
	for ev := range l.events {
		log.Printf("audit: %s cart=%s %s", ev.Action, ev.CartID, ev.Detail)
	}
}

// Record never blocks. Events that do not fit the buffer are dropped.
func (l *Logger) Record(action, cartID, detail string) {
	ev := Event{Action: action, CartID: cartID, Detail: detail, At: time.Now()}
	select {
	case l.events <- ev:
	default:
	}
}

// Close flushes buffered events and stops the drain goroutine.
func (l *Logger) Close() {
	close(l.events)
	<-l.done
}
