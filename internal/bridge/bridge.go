package bridge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	sse "github.com/r3labs/sse/v2"
	"github.com/wheelibin/lumen/internal/concurrency"
	"github.com/wheelibin/lumen/internal/models"
)

var (
	ErrBusy           = errors.New("bridge busy")
	ErrInvalidCommand = errors.New("invalid command")
)

const commandBufferSize = 16

type Synchronizer interface {
	RefreshAll(ctx context.Context) error
	Toggle(ctx context.Context, target models.Target) error
	On(ctx context.Context, target models.Target) error
	Off(ctx context.Context, target models.Target) error
	SetColor(ctx context.Context, target models.Target, compact models.CompactColor) error
	ResetSession()
	DeferredRefresh() <-chan struct{}
}

type ChangeFeed interface {
	Subscribe(eventChannel chan *sse.Event) error
	Unsubscribe()
}

type LightSource interface {
	Lights() []models.Light
}

// Bridge owns the synchronizer and runs every operation on it one at a time:
// commands from the wearable, deferred colour refreshes and changes reported
// by the lighting service
type Bridge struct {
	logger   *log.Logger
	sync     Synchronizer
	store    LightSource
	feed     ChangeFeed
	debounce time.Duration

	commands chan models.Message
	updates  chan<- []models.Light
}

// NewBridge creates a bridge, feed may be nil when the change feed is disabled
func NewBridge(
	logger *log.Logger,
	sync Synchronizer,
	store LightSource,
	feed ChangeFeed,
	debounce time.Duration,
) *Bridge {
	return &Bridge{
		logger:   logger,
		sync:     sync,
		store:    store,
		feed:     feed,
		debounce: debounce,
		commands: make(chan models.Message, commandBufferSize),
	}
}

// PublishTo sends a snapshot of the lights to ch after every operation, must be
// called before Run
func (b *Bridge) PublishTo(ch chan<- []models.Light) {
	b.updates = ch
}

// Submit queues a command from the wearable for the run loop
func (b *Bridge) Submit(msg models.Message) error {
	if err := validate(msg); err != nil {
		return err
	}

	select {
	case b.commands <- msg:
		return nil
	default:
		return ErrBusy
	}
}

// Refresh queues a full refresh
func (b *Bridge) Refresh() error {
	return b.Submit(models.Message{Method: models.MethodRefresh})
}

func validate(msg models.Message) error {
	switch msg.Method {
	case models.MethodRefresh, models.MethodReady:
		return nil
	case models.MethodToggle, models.MethodOn, models.MethodOff:
		return validateType(msg)
	case models.MethodColor:
		if msg.CompactColor == nil {
			return fmt.Errorf("%w: color without colour values", ErrInvalidCommand)
		}
		return validateType(msg)
	}
	return fmt.Errorf("%w: method %q", ErrInvalidCommand, msg.Method)
}

func validateType(msg models.Message) error {
	switch msg.Type {
	case models.MessageTypeLight, models.MessageTypeTag, models.MessageTypeAll:
		return nil
	}
	return fmt.Errorf("%w: %s on type %q", ErrInvalidCommand, msg.Method, msg.Type)
}

func (b *Bridge) Run(ctx context.Context) {
	b.logger.Debug("Bridge.Run")

	// start listening to lighting service changes
	eventChannel := make(chan *sse.Event)
	if b.feed != nil {
		if err := b.feed.Subscribe(eventChannel); err != nil {
			b.logger.Warn("Change feed unavailable", "err", err)
		} else {
			defer b.feed.Unsubscribe()
		}
	}

	changes := make(chan struct{}, 1)
	debouncer := concurrency.NewDebouncer(b.debounce, func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	defer debouncer.Stop()

	deferred := b.sync.DeferredRefresh()

	// start the main application loop
	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Bridge.Run: stop signal received")
			return

		case msg := <-b.commands:
			b.logger.Debug("Bridge.Run: command received", "method", msg.Method, "type", msg.Type, "index", msg.Index)
			b.handle(ctx, msg)

		case <-deferred:
			b.logger.Debug("Bridge.Run: refreshing after colour change")
			b.refresh(ctx)

		case <-eventChannel:
			b.logger.Debug("Bridge.Run: received change event")
			debouncer.Trigger()

		case <-changes:
			b.logger.Debug("Bridge.Run: refreshing after external changes")
			b.refresh(ctx)
		}
	}
}

func (b *Bridge) handle(ctx context.Context, msg models.Message) {
	var err error

	switch msg.Method {
	case models.MethodReady:
		b.sync.ResetSession()
		err = b.sync.RefreshAll(ctx)
	case models.MethodRefresh:
		err = b.sync.RefreshAll(ctx)
	case models.MethodToggle:
		err = b.sync.Toggle(ctx, msg.Target())
	case models.MethodOn:
		err = b.sync.On(ctx, msg.Target())
	case models.MethodOff:
		err = b.sync.Off(ctx, msg.Target())
	case models.MethodColor:
		err = b.sync.SetColor(ctx, msg.Target(), *msg.CompactColor)
	}

	// failures have already been reported to the wearable
	if err != nil {
		b.logger.Debug("Command failed", "method", msg.Method, "err", err)
	}
	b.publish()
}

func (b *Bridge) refresh(ctx context.Context) {
	if err := b.sync.RefreshAll(ctx); err != nil {
		b.logger.Debug("Refresh failed", "err", err)
	}
	b.publish()
}

func (b *Bridge) publish() {
	if b.updates == nil {
		return
	}
	select {
	case b.updates <- b.store.Lights():
	default:
		// nobody listening, drop the snapshot
	}
}
