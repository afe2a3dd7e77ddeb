package delivery

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/wheelibin/lumen/internal/models"
)

var ErrDeliveryExhausted = errors.New("delivery attempts exhausted")

// Transport delivers a single message to the wearable, a nil error means the
// wearable accepted it
type Transport interface {
	Deliver(ctx context.Context, msg models.Message) error
}

type queuedMessage struct {
	seq uint64
	msg models.Message
}

// Queue delivers messages to the wearable in order, one at a time.
//
// The head of the queue is only removed once it has been accepted or rejected
// maxAttempts times in a row; a message that exhausts its attempts is dropped
// and delivery carries on with the next one.
type Queue struct {
	logger      *log.Logger
	transport   Transport
	maxAttempts int

	mu       sync.Mutex
	items    []queuedMessage
	nextSeq  uint64
	inFlight bool
	attempts int

	wake chan struct{}
}

func NewQueue(logger *log.Logger, transport Transport, maxAttempts int) *Queue {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Queue{
		logger:      logger,
		transport:   transport,
		maxAttempts: maxAttempts,
		wake:        make(chan struct{}, 1),
	}
}

// Enqueue appends messages to the tail of the queue, Drain starts sending them
func (q *Queue) Enqueue(msgs ...models.Message) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, msg := range msgs {
		q.nextSeq++
		q.items = append(q.items, queuedMessage{seq: q.nextSeq, msg: msg})
	}
}

// Clear drops every queued message. A message already in flight is not
// retried or removed twice once its result comes back.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) > 0 {
		q.logger.Debug("Clearing delivery queue", "dropped", len(q.items))
	}
	q.items = nil
}

// Drain asks the queue to start sending, safe to call any number of times
func (q *Queue) Drain() {
	select {
	case q.wake <- struct{}{}:
	default:
		// a drain is already pending
	}
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *Queue) InFlight() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.inFlight
}

// Run sends queued messages until the context is cancelled
func (q *Queue) Run(ctx context.Context) {
	q.logger.Debug("Queue.Run")

	for {
		select {
		case <-ctx.Done():
			q.logger.Debug("Queue.Run: stop signal received")
			return
		case <-q.wake:
			q.drain(ctx)
		}
	}
}

func (q *Queue) drain(ctx context.Context) {
	for ctx.Err() == nil {
		head, ok := q.takeHead()
		if !ok {
			return
		}

		q.logger.Debug("Sending message", "type", head.msg.Type, "method", head.msg.Method, "index", head.msg.Index)
		err := q.transport.Deliver(ctx, head.msg)
		q.complete(head, err)
	}
}

func (q *Queue) takeHead() (queuedMessage, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.inFlight || len(q.items) == 0 {
		return queuedMessage{}, false
	}
	q.inFlight = true
	return q.items[0], true
}

func (q *Queue) complete(sent queuedMessage, err error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.inFlight = false

	if len(q.items) == 0 || q.items[0].seq != sent.seq {
		// cleared while in flight
		q.attempts = 0
		return
	}

	if err == nil {
		q.items = q.items[1:]
		q.attempts = 0
		return
	}

	q.attempts++
	if q.attempts >= q.maxAttempts {
		q.logger.Warn("Dropping message", "err", ErrDeliveryExhausted, "attempts", q.attempts, "message", sent.msg, "cause", err)
		q.items = q.items[1:]
		q.attempts = 0
		return
	}

	q.logger.Debug("Message rejected, retrying", "attempt", q.attempts, "err", err)
}
