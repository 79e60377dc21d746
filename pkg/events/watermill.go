// Package events is the PostgreSQL-backed event bus the menu service uses to
// tell the worker that items moved between categories. It is built on
// Watermill's SQL transport.
//
// The API publishes inside the repository transaction through PublishTx, so
// an event exists only if the write it describes committed. With the
// forwarder enabled those messages land in an outbox topic and a background
// forwarder moves them to their real topic.
//
// Subscribers share one consumer group per service, so each message is
// handled by one worker instance. Handlers must be idempotent: a failure is
// retried with exponential backoff and then Nacked for redelivery.
//
// Trace context travels in message metadata, so a worker span joins the
// trace of the HTTP request that caused it.
package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/ghuser/backoffice/pkg/config"
	"github.com/ghuser/backoffice/pkg/logger"
)

const (
	shutdownTimeout = 30 * time.Second
	errBuffer       = 100

	// outboxTopic holds enveloped messages until the forwarder delivers them.
	outboxTopic           = "menu_outbox"
	forwarderConsumerName = "menu-outbox-forwarder"

	metadataEventID      = "event_id"
	metadataEventVersion = "event_version"
)

// Handler processes one message. A nil return Acks it.
type Handler func(ctx context.Context, msg *message.Message) error

// retryPolicy bounds how often a failing Handler is called for one delivery.
type retryPolicy struct {
	attempts  int
	baseDelay time.Duration
}

func (p retryPolicy) normalized() retryPolicy {
	if p.attempts < 1 {
		p.attempts = 1
	}
	if p.baseDelay <= 0 {
		p.baseDelay = time.Second
	}
	return p
}

// EventBus publishes and consumes menu events over PostgreSQL.
type EventBus struct {
	publisher  message.Publisher
	subscriber *watermillsql.Subscriber
	fwd        *forwarder.Forwarder
	db         *sql.DB
	log        logger.Logger
	wlog       watermill.LoggerAdapter
	retry      retryPolicy
	outbox     bool
	wg         sync.WaitGroup
}

// NewEventBus opens the bus used by the worker. Messages are published
// directly to their topic.
func NewEventBus(cfg *config.Config, log logger.Logger) (*EventBus, error) {
	return newEventBus(cfg, log, false)
}

// NewEventBusWithForwarder opens the bus used by the API. Publish writes to
// the outbox topic; call StartForwarder to deliver from it.
func NewEventBusWithForwarder(cfg *config.Config, log logger.Logger) (*EventBus, error) {
	return newEventBus(cfg, log, true)
}

func newEventBus(cfg *config.Config, log logger.Logger, outbox bool) (*EventBus, error) {
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("events: open db: %w", err)
	}
	bus := &EventBus{
		db:     db,
		log:    log,
		wlog:   &slogAdapter{log: log.With("component", "events")},
		retry:  retryPolicy{attempts: cfg.EventMaxRetries, baseDelay: cfg.EventRetryBaseDelay}.normalized(),
		outbox: outbox,
	}

	pub, err := bus.newPublisher(db, true)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("events: new publisher: %w", err)
	}
	bus.publisher = bus.wrapOutbox(pub)

	bus.subscriber, err = bus.newSubscriber(cfg.ServiceName + "-consumer")
	if err != nil {
		_ = pub.Close()
		_ = db.Close()
		return nil, fmt.Errorf("events: new subscriber: %w", err)
	}
	return bus, nil
}

func (q *EventBus) newPublisher(db watermillsql.ContextExecutor, initSchema bool) (*watermillsql.Publisher, error) {
	return watermillsql.NewPublisher(db, watermillsql.PublisherConfig{
		SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
		AutoInitializeSchema: initSchema,
	}, q.wlog)
}

func (q *EventBus) newSubscriber(consumerGroup string) (*watermillsql.Subscriber, error) {
	return watermillsql.NewSubscriber(q.db, watermillsql.SubscriberConfig{
		SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
		OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
		InitializeSchema: true,
		ConsumerGroup:    consumerGroup,
	}, q.wlog)
}

// wrapOutbox envelopes pub's messages for the outbox topic when the bus runs
// with a forwarder.
func (q *EventBus) wrapOutbox(pub message.Publisher) message.Publisher {
	if !q.outbox {
		return pub
	}
	return forwarder.NewPublisher(pub, forwarder.PublisherConfig{ForwarderTopic: outboxTopic})
}

// StartForwarder runs the outbox forwarder until ctx is done. It returns
// once the forwarder is consuming.
func (q *EventBus) StartForwarder(ctx context.Context) error {
	if !q.outbox {
		return errors.New("events: StartForwarder called on a bus without an outbox")
	}
	if q.fwd != nil {
		return errors.New("events: forwarder already started")
	}

	sub, err := q.newSubscriber(forwarderConsumerName)
	if err != nil {
		return fmt.Errorf("events: new forwarder subscriber: %w", err)
	}
	target, err := q.newPublisher(q.db, true)
	if err != nil {
		_ = sub.Close()
		return fmt.Errorf("events: new forwarder publisher: %w", err)
	}
	fwd, err := forwarder.NewForwarder(sub, target, q.wlog, forwarder.Config{ForwarderTopic: outboxTopic})
	if err != nil {
		_ = target.Close()
		_ = sub.Close()
		return fmt.Errorf("events: create forwarder: %w", err)
	}
	q.fwd = fwd

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		q.log.InfoContext(ctx, "events: forwarder started", "outbox_topic", outboxTopic)
		if err := fwd.Run(ctx); err != nil {
			q.log.ErrorContext(ctx, "events: forwarder stopped", "error", err)
			return
		}
		q.log.InfoContext(ctx, "events: forwarder stopped")
	}()

	select {
	case <-fwd.Running():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("events: waiting for forwarder: %w", ctx.Err())
	}
}

// Publish sends msgs to topic outside any transaction.
func (q *EventBus) Publish(ctx context.Context, topic string, msgs ...*message.Message) error {
	injectTraceContext(ctx, msgs)
	if err := q.publisher.Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	return nil
}

// PublishTx publishes msgs on topic inside tx, so they become visible only
// when tx commits. The schema already exists by the time a repository holds
// a transaction, so the tx publisher skips initialization.
func (q *EventBus) PublishTx(ctx context.Context, tx *sql.Tx, topic string, msgs ...*message.Message) error {
	pub, err := q.newPublisher(tx, false)
	if err != nil {
		return fmt.Errorf("events: new tx publisher: %w", err)
	}
	injectTraceContext(ctx, msgs)
	if err := q.wrapOutbox(pub).Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s in tx: %w", topic, err)
	}
	return nil
}

// NewJSONMessage encodes payload as a message. The event_id and
// event_version metadata let subscribers deduplicate and pick a decoder
// without parsing the payload.
func NewJSONMessage(eventID uuid.UUID, version int, payload any) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("events: marshal payload: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set(metadataEventID, eventID.String())
	msg.Metadata.Set(metadataEventVersion, strconv.Itoa(version))
	return msg, nil
}

// Version returns the event_version metadata of msg.
func Version(msg *message.Message) (int, error) {
	v, err := strconv.Atoi(msg.Metadata.Get(metadataEventVersion))
	if err != nil {
		return 0, fmt.Errorf("events: message %s has no valid %s", msg.UUID, metadataEventVersion)
	}
	return v, nil
}

// Decode unmarshals a JSON message payload into T.
func Decode[T any](msg *message.Message) (T, error) {
	var v T
	if err := json.Unmarshal(msg.Payload, &v); err != nil {
		return v, fmt.Errorf("events: decode %s: %w", msg.UUID, err)
	}
	return v, nil
}

func injectTraceContext(ctx context.Context, msgs []*message.Message) {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for _, msg := range msgs {
		for k, v := range carrier {
			msg.Metadata.Set(k, v)
		}
	}
}

func extractTraceContext(ctx context.Context, msg *message.Message) context.Context {
	return otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(msg.Metadata))
}

// Subscribe handles messages from topic in the background until ctx is done
// or the bus is closed. A message whose handler still fails after the retry
// policy is Nacked and its error sent on the returned channel, which the
// caller must drain. Errors are dropped and logged when the channel is full.
func (q *EventBus) Subscribe(ctx context.Context, topic string, handler Handler) (<-chan error, error) {
	ch, err := q.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe to %s: %w", topic, err)
	}

	errCh := make(chan error, errBuffer)
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		defer close(errCh)

		for msg := range ch {
			msgCtx := extractTraceContext(ctx, msg)
			if err := retryWithBackoff(msgCtx, msg, handler, q.retry, q.log); err != nil {
				msg.Nack()
				select {
				case errCh <- err:
				default:
					q.log.ErrorContext(msgCtx, "events: error channel full, dropping error",
						"topic", topic, metadataEventID, msg.Metadata.Get(metadataEventID), "error", err)
				}
				continue
			}
			msg.Ack()
		}
	}()
	return errCh, nil
}

// retryWithBackoff calls handler until it succeeds or p.attempts calls have
// failed, doubling the delay after each failure.
func retryWithBackoff(ctx context.Context, msg *message.Message, handler Handler, p retryPolicy, log logger.Logger) error {
	p = p.normalized()

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.baseDelay
	exp.Multiplier = 2
	exp.RandomizationFactor = 0

	attempt := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		return struct{}{}, handler(ctx, msg)
	},
		backoff.WithBackOff(exp),
		backoff.WithMaxTries(uint(p.attempts)),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.WarnContext(ctx, "events: handler failed, retrying",
				metadataEventID, msg.Metadata.Get(metadataEventID),
				"attempt", attempt,
				"next_delay", next,
				"error", err,
			)
		}),
	)
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("events: handler failed after %d attempts: %w", attempt, err)
}

// Ping checks the bus database connection.
func (q *EventBus) Ping(ctx context.Context) error {
	if err := q.db.PingContext(ctx); err != nil {
		return fmt.Errorf("events: ping db: %w", err)
	}
	return nil
}

// Close stops the subscriber and the forwarder, waits up to 30s for
// in-flight handlers, then closes the publisher and the database.
func (q *EventBus) Close() error {
	if err := q.subscriber.Close(); err != nil {
		return fmt.Errorf("events: close subscriber: %w", err)
	}
	if q.fwd != nil {
		if err := q.fwd.Close(); err != nil {
			return fmt.Errorf("events: close forwarder: %w", err)
		}
	}

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		q.log.Error("events: timed out waiting for in-flight handlers")
	}

	if err := q.publisher.Close(); err != nil {
		return fmt.Errorf("events: close publisher: %w", err)
	}
	return q.db.Close()
}

// slogAdapter bridges logger.Logger to watermill.LoggerAdapter. Watermill's
// trace level maps to debug.
type slogAdapter struct{ log logger.Logger }

func (a *slogAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.log.Error(msg, append(fieldsToArgs(fields), "error", err)...)
}

func (a *slogAdapter) Info(msg string, fields watermill.LogFields) {
	a.log.Info(msg, fieldsToArgs(fields)...)
}

func (a *slogAdapter) Debug(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToArgs(fields)...)
}

func (a *slogAdapter) Trace(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToArgs(fields)...)
}

func (a *slogAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &slogAdapter{log: a.log.With(fieldsToArgs(fields)...)}
}

func fieldsToArgs(fields watermill.LogFields) []any {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return args
}
