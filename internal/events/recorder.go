package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/styleai/internal/logger"
	"github.com/mark3labs/styleai/internal/stylist"
)

// Recorder turns wizard transitions into events. Record never blocks the
// caller: events are queued and published by one background goroutine.
type Recorder struct {
	bus   *Bus
	queue chan Event

	closeOnce sync.Once
	done      chan struct{}
	stopped   chan struct{}
}

// NewRecorder starts the publishing goroutine.
func NewRecorder(bus *Bus) *Recorder {
	r := &Recorder{
		bus:     bus,
		queue:   make(chan Event, 256),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go r.loop()
	return r
}

// Transitioned implements stylist.Observer.
func (r *Recorder) Transitioned(t stylist.Transition) {
	eventType := EventTypePhase
	if t.From == t.To {
		eventType = EventTypeOverlay
	}
	r.Record(Event{
		Session: t.Session,
		Type:    eventType,
		Action:  t.Action,
		From:    t.From.String(),
		To:      t.To.String(),
	})
}

// Record queues event. It is dropped if the queue is full or the recorder
// is closed.
func (r *Recorder) Record(event Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case <-r.done:
		return
	default:
	}
	select {
	case r.queue <- event:
	default:
		logger.Warn("event queue full, dropping %s/%s", event.Type, event.Action)
	}
}

func (r *Recorder) loop() {
	defer close(r.stopped)
	for {
		select {
		case event := <-r.queue:
			r.publish(event)
		case <-r.done:
			// Flush what is already queued.
			for {
				select {
				case event := <-r.queue:
					r.publish(event)
				default:
					return
				}
			}
		}
	}
}

func (r *Recorder) publish(event Event) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := r.bus.Publish(ctx, event); err != nil {
		logger.Warn("recording %s/%s: %v", event.Type, event.Action, err)
	}
}

// Close stops accepting events and waits for the queue to flush. Call it
// before closing the bus.
func (r *Recorder) Close() {
	r.closeOnce.Do(func() { close(r.done) })
	<-r.stopped
}
