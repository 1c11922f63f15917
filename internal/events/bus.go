package events

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mark3labs/styleai/internal/logger"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	streamName = "styleai_events"

	// Event types
	EventTypePhase    = "phase"
	EventTypeOverlay  = "overlay"
	EventTypeProgress = "progress"
	EventTypeCapture  = "capture"
	EventTypeQuiz     = "quiz"
	EventTypeRoute    = "route"
)

// SubjectForSession returns the wildcard subject for all events of a
// session, e.g. "styleai.<session>.>".
func SubjectForSession(session string) string {
	return fmt.Sprintf("styleai.%s.>", session)
}

// SubjectForEvent returns the subject for one event type of a session.
func SubjectForEvent(session, eventType string) string {
	return fmt.Sprintf("styleai.%s.%s", session, eventType)
}

// Event is one entry of the activity log.
type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Session   string    `json:"session"`
	Type      string    `json:"type"`
	Action    string    `json:"action"`
	From      string    `json:"from,omitempty"`
	To        string    `json:"to,omitempty"`
	Data      string    `json:"data,omitempty"`
}

// Bus owns the embedded server, its connection and the memory stream.
type Bus struct {
	ns     *server.Server
	nc     *nats.Conn
	js     jetstream.JetStream
	stream jetstream.Stream
	dir    string
}

// Open starts an embedded server and sets up the event stream.
func Open(ctx context.Context) (*Bus, error) {
	ns, dir, err := StartEmbeddedNATS()
	if err != nil {
		return nil, err
	}

	nc, err := ConnectInProcess(ns)
	if err != nil {
		_ = Shutdown(nil, ns)
		_ = os.RemoveAll(dir)
		return nil, err
	}

	js, err := CreateJetStream(nc)
	if err != nil {
		_ = Shutdown(nc, ns)
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("creating jetstream: %w", err)
	}

	stream, err := SetupStream(ctx, js)
	if err != nil {
		_ = Shutdown(nc, ns)
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("setting up stream: %w", err)
	}

	return &Bus{ns: ns, nc: nc, js: js, stream: stream, dir: dir}, nil
}

// SetupStream creates or updates the in-memory event stream.
func SetupStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{"styleai.>"},
		Storage:  jetstream.MemoryStorage,
		MaxMsgs:  10_000,
	})
}

// Conn exposes the connection for live subscriptions.
func (b *Bus) Conn() *nats.Conn {
	return b.nc
}

// Publish appends an event to the stream.
func (b *Bus) Publish(ctx context.Context, event Event) (*jetstream.PubAck, error) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := SubjectForEvent(event.Session, event.Type)
	ack, err := b.js.Publish(ctx, subject, data)
	if err != nil {
		logger.Error("Failed to publish event to subject %s: %v", subject, err)
		return nil, fmt.Errorf("failed to publish event: %w", err)
	}

	logger.Debug("Event published: session=%s type=%s action=%s seq=%d", event.Session, event.Type, event.Action, ack.Sequence)
	return ack, nil
}

// History reads every stored event of a session in order.
func (b *Bus) History(ctx context.Context, session string) ([]Event, error) {
	consumer, err := b.stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		FilterSubject: SubjectForSession(session),
		DeliverPolicy: jetstream.DeliverAllPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}

	var events []Event
	const batchSize = 500
	for {
		msgs, err := consumer.FetchNoWait(batchSize)
		if err != nil {
			break
		}

		count := 0
		for msg := range msgs.Messages() {
			count++
			var event Event
			if err := json.Unmarshal(msg.Data(), &event); err != nil {
				logger.Warn("Skipping malformed event: %v", err)
				_ = msg.Ack()
				continue
			}
			if event.ID == "" {
				if meta, err := msg.Metadata(); err == nil {
					event.ID = strconv.FormatUint(meta.Sequence.Stream, 10)
				}
			}
			events = append(events, event)
			_ = msg.Ack()
		}

		if count < batchSize {
			break
		}
	}
	return events, nil
}

// Subscribe forwards live events of a session to ch until ctx is done.
// Events are dropped rather than blocking when ch is full.
func (b *Bus) Subscribe(ctx context.Context, session string, ch chan<- Event) error {
	sub, err := b.nc.Subscribe(SubjectForSession(session), func(msg *nats.Msg) {
		var event Event
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			return
		}
		select {
		case ch <- event:
		default:
		}
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to events: %w", err)
	}

	go func() {
		<-ctx.Done()
		_ = sub.Unsubscribe()
	}()
	return nil
}

// Close shuts the server down and removes its scratch directory.
func (b *Bus) Close() error {
	err := Shutdown(b.nc, b.ns)
	if rmErr := os.RemoveAll(b.dir); rmErr != nil && err == nil {
		err = rmErr
	}
	return err
}
