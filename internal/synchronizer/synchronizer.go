package synchronizer

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/wheelibin/lumen/internal/color"
	"github.com/wheelibin/lumen/internal/constants"
	"github.com/wheelibin/lumen/internal/lifx"
	"github.com/wheelibin/lumen/internal/models"
	"github.com/wheelibin/lumen/internal/selector"
	"github.com/wheelibin/lumen/internal/state"
)

type remoteClient interface {
	Lights(ctx context.Context, selector string) (lifx.LightsResponse, error)
	SetPower(ctx context.Context, selector string, action lifx.Action) (lifx.LightsResponse, error)
	SetColor(ctx context.Context, selector string, color models.Color) (lifx.LightsResponse, error)
}

type outbox interface {
	Enqueue(msgs ...models.Message)
	Clear()
	Drain()
}

type scheduler interface {
	After(d time.Duration, f func())
}

type Phase string

const (
	PhaseIdle             Phase = "idle"
	PhaseAwaitingResponse Phase = "awaiting response"
	PhaseReconciling      Phase = "reconciling"
	PhaseFailed           Phase = "failed"
)

type Options struct {
	LabelLength       int
	ColorRefreshDelay time.Duration
}

// Synchronizer issues commands against the lighting service, reconciles the
// responses into the store and queues the resulting messages for the wearable.
//
// It is not safe for concurrent use, callers serialize operations.
type Synchronizer struct {
	logger    *log.Logger
	client    remoteClient
	store     *state.Store
	outbox    outbox
	scheduler scheduler
	opts      Options

	target   models.Target
	phase    Phase
	deferred chan struct{}
}

func NewSynchronizer(
	logger *log.Logger,
	client remoteClient,
	store *state.Store,
	outbox outbox,
	scheduler scheduler,
	opts Options,
) *Synchronizer {
	if opts.LabelLength <= 0 {
		opts.LabelLength = constants.MaxLabelLength
	}
	if opts.ColorRefreshDelay <= 0 {
		opts.ColorRefreshDelay = constants.ColorRefreshDelay
	}

	return &Synchronizer{
		logger:    logger,
		client:    client,
		store:     store,
		outbox:    outbox,
		scheduler: scheduler,
		opts:      opts,
		phase:     PhaseIdle,
		deferred:  make(chan struct{}, 1),
	}
}

func (s *Synchronizer) Phase() Phase {
	return s.phase
}

// Target returns the addressing context of the last operation
func (s *Synchronizer) Target() models.Target {
	return s.target
}

// DeferredRefresh signals when a refresh scheduled after a colour change is due
func (s *Synchronizer) DeferredRefresh() <-chan struct{} {
	return s.deferred
}

// ResetSession forgets the cached tag groups, the next refresh derives and sends them again
func (s *Synchronizer) ResetSession() {
	s.logger.Debug("Synchronizer.ResetSession")
	s.store.InvalidateTags()
}

// RefreshAll fetches every light, replaces the cache and sends the light
// batch, followed by the tag batch when tags were derived
func (s *Synchronizer) RefreshAll(ctx context.Context) error {
	s.target = models.Target{Type: models.TargetAll}

	s.setPhase(PhaseAwaitingResponse)
	resp, err := s.client.Lights(ctx, constants.SelectorAll)
	if err != nil {
		return s.fail(err)
	}

	s.setPhase(PhaseReconciling)
	derived := s.store.ReplaceAll(resp.All())

	lights := s.store.Lights()
	msgs := s.lightBatch(lights)
	if derived {
		msgs = append(msgs, s.tagBatch(s.store.Tags())...)
	}
	s.logger.Info("Refreshed lights", "lights", len(lights), "tagsDerived", derived)

	// a full batch supersedes anything still waiting
	s.outbox.Clear()
	s.send(msgs...)

	s.setPhase(PhaseIdle)
	return nil
}

func (s *Synchronizer) Toggle(ctx context.Context, target models.Target) error {
	return s.setPower(ctx, target, lifx.ActionToggle)
}

func (s *Synchronizer) On(ctx context.Context, target models.Target) error {
	return s.setPower(ctx, target, lifx.ActionOn)
}

func (s *Synchronizer) Off(ctx context.Context, target models.Target) error {
	return s.setPower(ctx, target, lifx.ActionOff)
}

// SetColor changes the colour of the target and schedules a refresh once the
// service has finished its transition
func (s *Synchronizer) SetColor(ctx context.Context, target models.Target, compact models.CompactColor) error {
	native := color.ToNative(compact)

	err := s.command(ctx, target, func(sel string) (lifx.LightsResponse, error) {
		return s.client.SetColor(ctx, sel, native)
	})
	if err != nil {
		return err
	}

	s.scheduler.After(s.opts.ColorRefreshDelay, s.signalDeferred)
	return nil
}

func (s *Synchronizer) setPower(ctx context.Context, target models.Target, action lifx.Action) error {
	return s.command(ctx, target, func(sel string) (lifx.LightsResponse, error) {
		return s.client.SetPower(ctx, sel, action)
	})
}

func (s *Synchronizer) command(ctx context.Context, target models.Target, call func(sel string) (lifx.LightsResponse, error)) error {
	s.target = target

	sel, err := selector.Resolve(target, s.store.Lights(), s.store.Tags())
	if err != nil {
		return s.fail(err)
	}

	s.setPhase(PhaseAwaitingResponse)
	resp, err := call(sel)
	if err != nil {
		return s.fail(err)
	}

	s.setPhase(PhaseReconciling)
	var indexes []int
	if resp.IsList() {
		indexes, err = s.store.MergeTagGroup(resp.List)
	} else {
		var i int
		i, err = s.store.MergeOne(*resp.Single)
		if err == nil {
			indexes = []int{i}
		}
	}
	if err != nil {
		// stale context, the lights will be corrected by the next refresh
		s.logger.Warn("Response contained unknown lights", "selector", sel, "err", err)
	}

	lights := s.store.Lights()
	msgs := lo.Map(indexes, func(i int, _ int) models.Message {
		return s.lightData(i, lights[i])
	})
	msgs = append(msgs, models.Message{Type: models.MessageTypeLight, Method: models.MethodEnd, Index: len(lights)})
	s.send(msgs...)

	s.setPhase(PhaseIdle)
	return nil
}

func (s *Synchronizer) fail(err error) error {
	s.setPhase(PhaseFailed)

	label := errorLabel(err)
	s.logger.Error("Synchronisation failed", "target", s.target, "label", label, "err", err)

	// queued data may now be stale, the error goes out next
	s.outbox.Clear()
	s.send(models.Message{Type: models.MessageTypeError, Label: s.truncate(label)})

	s.setPhase(PhaseIdle)
	return err
}

func (s *Synchronizer) send(msgs ...models.Message) {
	s.outbox.Enqueue(msgs...)
	s.outbox.Drain()
}

func (s *Synchronizer) setPhase(p Phase) {
	s.logger.Debug("Synchronizer phase", "from", s.phase, "to", p)
	s.phase = p
}

func (s *Synchronizer) signalDeferred() {
	select {
	case s.deferred <- struct{}{}:
	default:
		// already pending
	}
}

func (s *Synchronizer) lightBatch(lights []models.Light) []models.Message {
	msgs := []models.Message{{Type: models.MessageTypeLight, Method: models.MethodBegin, Index: len(lights)}}
	for i, l := range lights {
		msgs = append(msgs, s.lightData(i, l))
	}
	return append(msgs, models.Message{Type: models.MessageTypeLight, Method: models.MethodEnd, Index: len(lights)})
}

func (s *Synchronizer) tagBatch(tags []models.TagGroup) []models.Message {
	msgs := []models.Message{{Type: models.MessageTypeTag, Method: models.MethodBegin, Index: len(tags)}}
	for i, t := range tags {
		c := t.RepresentativeColor
		msgs = append(msgs, models.Message{
			Type:         models.MessageTypeTag,
			Method:       models.MethodData,
			Index:        i,
			Label:        s.truncate(t.Label),
			CompactColor: &c,
		})
	}
	return append(msgs, models.Message{Type: models.MessageTypeTag, Method: models.MethodEnd, Index: len(tags)})
}

func (s *Synchronizer) lightData(i int, l models.Light) models.Message {
	c := color.ForLight(l)
	st := models.LightStateOff
	if l.On {
		st = models.LightStateOn
	}
	return models.Message{
		Type:         models.MessageTypeLight,
		Method:       models.MethodData,
		Index:        i,
		Label:        s.truncate(l.DisplayLabel()),
		State:        st,
		CompactColor: &c,
	}
}

func (s *Synchronizer) truncate(label string) string {
	runes := []rune(label)
	if len(runes) <= s.opts.LabelLength {
		return label
	}
	return string(runes[:s.opts.LabelLength])
}

func errorLabel(err error) string {
	switch {
	case errors.Is(err, lifx.ErrNoServerConfigured):
		return constants.ErrorLabelNoServer
	case errors.Is(err, lifx.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return constants.ErrorLabelTimeout
	case errors.Is(err, lifx.ErrTransport):
		return constants.ErrorLabelTransport
	case errors.Is(err, selector.ErrOutOfRange):
		return constants.ErrorLabelOutOfRange
	default:
		return constants.ErrorLabelServer
	}
}
