package bridge_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	sse "github.com/r3labs/sse/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wheelibin/lumen/internal/bridge"
	"github.com/wheelibin/lumen/internal/models"
	"github.com/wheelibin/lumen/internal/state"
	"github.com/wheelibin/lumen/mocks"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel})

type running struct {
	bridge  *bridge.Bridge
	updates chan []models.Light
}

// starts the bridge and stops it when the test finishes
func start(t *testing.T, sync *mocks.MockBridgeSynchronizer, feed bridge.ChangeFeed, deferred chan struct{}) running {
	store := state.NewStore()
	store.ReplaceAll([]models.Light{{ID: "a", Label: "Lamp"}})

	sync.Mock.On("DeferredRefresh").Return((<-chan struct{})(deferred))

	b := bridge.NewBridge(logger, sync, store, feed, 20*time.Millisecond)
	updates := make(chan []models.Light, 8)
	b.PublishTo(updates)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	return running{bridge: b, updates: updates}
}

func waitForUpdate(t *testing.T, r running) []models.Light {
	select {
	case lights := <-r.updates:
		return lights
	case <-time.After(time.Second):
		require.Fail(t, "no update published")
		return nil
	}
}

func Test_Submit(t *testing.T) {

	tests := []struct {
		name  string
		msg   models.Message
		valid bool
	}{
		{name: "refresh", msg: models.Message{Method: models.MethodRefresh}, valid: true},
		{name: "ready", msg: models.Message{Method: models.MethodReady}, valid: true},
		{name: "toggle light", msg: models.Message{Method: models.MethodToggle, Type: models.MessageTypeLight, Index: 1}, valid: true},
		{name: "on tag", msg: models.Message{Method: models.MethodOn, Type: models.MessageTypeTag}, valid: true},
		{name: "off all", msg: models.Message{Method: models.MethodOff, Type: models.MessageTypeAll}, valid: true},
		{name: "colour", msg: models.Message{Method: models.MethodColor, Type: models.MessageTypeAll, CompactColor: &models.CompactColor{H: 1}}, valid: true},
		{name: "colour without values", msg: models.Message{Method: models.MethodColor, Type: models.MessageTypeAll}},
		{name: "toggle without type", msg: models.Message{Method: models.MethodToggle}},
		{name: "toggle error type", msg: models.Message{Method: models.MethodToggle, Type: models.MessageTypeError}},
		{name: "outbound method", msg: models.Message{Method: models.MethodData, Type: models.MessageTypeLight}},
		{name: "no method", msg: models.Message{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b := bridge.NewBridge(logger, mocks.NewMockBridgeSynchronizer(t), state.NewStore(), nil, time.Second)

			err := b.Submit(test.msg)

			if test.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, bridge.ErrInvalidCommand)
			}
		})
	}

	t.Run("should report busy when the queue is full", func(t *testing.T) {
		b := bridge.NewBridge(logger, mocks.NewMockBridgeSynchronizer(t), state.NewStore(), nil, time.Second)

		var err error
		for i := 0; i < 100 && err == nil; i++ {
			err = b.Refresh()
		}

		assert.ErrorIs(t, err, bridge.ErrBusy)
	})
}

func Test_Run(t *testing.T) {

	t.Run("ready should reset the session before refreshing", func(t *testing.T) {
		// arrange
		sync := mocks.NewMockBridgeSynchronizer(t)
		var calls []string
		sync.Mock.On("ResetSession").Run(func(args mock.Arguments) { calls = append(calls, "reset") }).Once()
		sync.Mock.On("RefreshAll", mock.Anything).Run(func(args mock.Arguments) { calls = append(calls, "refresh") }).Return(nil).Once()
		r := start(t, sync, nil, make(chan struct{}))

		// act
		require.NoError(t, r.bridge.Submit(models.Message{Method: models.MethodReady}))
		lights := waitForUpdate(t, r)

		// assert
		assert.Equal(t, []string{"reset", "refresh"}, calls)
		assert.Equal(t, "Lamp", lights[0].Label)
	})

	t.Run("commands should be dispatched with their target", func(t *testing.T) {
		// arrange
		sync := mocks.NewMockBridgeSynchronizer(t)
		sync.Mock.On("Toggle", mock.Anything, models.Target{Type: models.TargetLight, Index: 2}).Return(nil).Once()
		sync.Mock.On("On", mock.Anything, models.Target{Type: models.TargetTag, Index: 1}).Return(nil).Once()
		sync.Mock.On("Off", mock.Anything, models.Target{Type: models.TargetAll}).Return(errors.New("timeout")).Once()
		sync.Mock.On("SetColor", mock.Anything, models.Target{Type: models.TargetLight, Index: 0}, models.CompactColor{H: 25, S: 50, B: 100, K: 3500}).Return(nil).Once()
		r := start(t, sync, nil, make(chan struct{}))

		// act
		require.NoError(t, r.bridge.Submit(models.Message{Method: models.MethodToggle, Type: models.MessageTypeLight, Index: 2}))
		require.NoError(t, r.bridge.Submit(models.Message{Method: models.MethodOn, Type: models.MessageTypeTag, Index: 1}))
		require.NoError(t, r.bridge.Submit(models.Message{Method: models.MethodOff, Type: models.MessageTypeAll}))
		require.NoError(t, r.bridge.Submit(models.Message{
			Method:       models.MethodColor,
			Type:         models.MessageTypeLight,
			CompactColor: &models.CompactColor{H: 25, S: 50, B: 100, K: 3500},
		}))

		// assert
		for i := 0; i < 4; i++ {
			waitForUpdate(t, r)
		}
	})

	t.Run("deferred refresh should refresh every light", func(t *testing.T) {
		// arrange
		sync := mocks.NewMockBridgeSynchronizer(t)
		sync.Mock.On("RefreshAll", mock.Anything).Return(nil).Once()
		deferred := make(chan struct{}, 1)
		r := start(t, sync, nil, deferred)

		// act
		deferred <- struct{}{}

		// assert
		waitForUpdate(t, r)
	})

	t.Run("burst of change events should refresh once", func(t *testing.T) {
		// arrange
		sync := mocks.NewMockBridgeSynchronizer(t)
		sync.Mock.On("RefreshAll", mock.Anything).Return(nil).Once()
		feed := mocks.NewMockBridgeChangeFeed(t)
		events := make(chan chan *sse.Event, 1)
		feed.On("Subscribe", mock.Anything).Run(func(args mock.Arguments) {
			events <- args.Get(0).(chan *sse.Event)
		}).Return(nil).Once()
		feed.On("Unsubscribe").Return().Once()
		r := start(t, sync, feed, make(chan struct{}))

		// act
		eventChannel := <-events
		for i := 0; i < 5; i++ {
			eventChannel <- &sse.Event{Data: []byte(`{}`)}
		}

		// assert
		waitForUpdate(t, r)
		select {
		case <-r.updates:
			assert.Fail(t, "expected a single refresh")
		case <-time.After(60 * time.Millisecond):
		}
	})

	t.Run("unavailable change feed should not stop commands", func(t *testing.T) {
		// arrange
		sync := mocks.NewMockBridgeSynchronizer(t)
		sync.Mock.On("RefreshAll", mock.Anything).Return(nil).Once()
		feed := mocks.NewMockBridgeChangeFeed(t)
		feed.On("Subscribe", mock.Anything).Return(errors.New("no server configured")).Once()
		r := start(t, sync, feed, make(chan struct{}))

		// act
		require.NoError(t, r.bridge.Refresh())

		// assert
		waitForUpdate(t, r)
		feed.AssertNotCalled(t, "Unsubscribe")
	})
}
