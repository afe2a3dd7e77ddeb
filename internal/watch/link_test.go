package watch_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wheelibin/lumen/internal/models"
	"github.com/wheelibin/lumen/internal/watch"
)

func newLink(t *testing.T, ackTimeout time.Duration) (*watch.Link, *httptest.Server) {
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel})
	link := watch.NewLink(logger, ackTimeout)
	srv := httptest.NewServer(link)
	t.Cleanup(srv.Close)
	return link, srv
}

func dial(t *testing.T, link *watch.Link, srv *httptest.Server) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.Eventually(t, link.Connected, time.Second, 5*time.Millisecond)
	return conn
}

func deliverAsync(link *watch.Link, msg models.Message) chan error {
	result := make(chan error, 1)
	go func() {
		result <- link.Deliver(context.Background(), msg)
	}()
	return result
}

func Test_Deliver(t *testing.T) {

	t.Run("should fail when no wearable connects", func(t *testing.T) {
		// arrange
		link, _ := newLink(t, 20*time.Millisecond)

		// act
		err := link.Deliver(context.Background(), models.Message{Type: models.MessageTypeLight})

		// assert
		assert.ErrorIs(t, err, watch.ErrNotConnected)
	})

	t.Run("acked message should be delivered", func(t *testing.T) {
		// arrange
		link, srv := newLink(t, time.Second)
		conn := dial(t, link, srv)
		msg := models.Message{
			Type:         models.MessageTypeLight,
			Method:       models.MethodData,
			Index:        2,
			Label:        "Lamp",
			State:        models.LightStateOn,
			CompactColor: &models.CompactColor{H: 50, S: 100, B: 100, K: 3000},
		}

		// act
		result := deliverAsync(link, msg)
		frame := watch.Frame{}
		require.NoError(t, conn.ReadJSON(&frame))
		require.NoError(t, conn.WriteJSON(watch.Frame{Kind: watch.KindAck, Seq: frame.Seq}))

		// assert
		assert.NoError(t, <-result)
		assert.Equal(t, watch.KindMessage, frame.Kind)
		assert.Equal(t, &msg, frame.Message)
	})

	t.Run("message frames should use the wire keys", func(t *testing.T) {
		// arrange
		link, srv := newLink(t, 50*time.Millisecond)
		conn := dial(t, link, srv)

		// act
		result := deliverAsync(link, models.Message{Type: models.MessageTypeTag, Method: models.MethodEnd, Index: 4})
		_, data, err := conn.ReadMessage()

		// assert
		require.NoError(t, err)
		assert.JSONEq(t, `{"kind":"message","seq":1,"message":{"type":"tag","method":"end","index":4}}`, string(data))
		<-result
	})

	t.Run("nack should reject the message", func(t *testing.T) {
		// arrange
		link, srv := newLink(t, time.Second)
		conn := dial(t, link, srv)

		// act
		result := deliverAsync(link, models.Message{Type: models.MessageTypeLight})
		frame := watch.Frame{}
		require.NoError(t, conn.ReadJSON(&frame))
		require.NoError(t, conn.WriteJSON(watch.Frame{Kind: watch.KindNack, Seq: frame.Seq}))

		// assert
		assert.ErrorIs(t, <-result, watch.ErrRejected)
	})

	t.Run("missing reply should reject the message", func(t *testing.T) {
		// arrange
		link, srv := newLink(t, 30*time.Millisecond)
		conn := dial(t, link, srv)

		// act
		result := deliverAsync(link, models.Message{Type: models.MessageTypeLight})
		frame := watch.Frame{}
		require.NoError(t, conn.ReadJSON(&frame))

		// assert
		assert.ErrorIs(t, <-result, watch.ErrRejected)
	})

	t.Run("disconnect should fail the pending delivery", func(t *testing.T) {
		// arrange
		link, srv := newLink(t, time.Second)
		conn := dial(t, link, srv)

		// act
		result := deliverAsync(link, models.Message{Type: models.MessageTypeLight})
		frame := watch.Frame{}
		require.NoError(t, conn.ReadJSON(&frame))
		conn.Close()

		// assert
		assert.ErrorIs(t, <-result, watch.ErrNotConnected)
		assert.Eventually(t, func() bool { return !link.Connected() }, time.Second, 5*time.Millisecond)
	})
}

func Test_Commands(t *testing.T) {

	t.Run("accepted command should be acked", func(t *testing.T) {
		// arrange
		link, srv := newLink(t, time.Second)
		received := make(chan models.Message, 1)
		link.OnCommand(func(msg models.Message) error {
			received <- msg
			return nil
		})
		conn := dial(t, link, srv)

		// act
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"kind":"command","seq":7,"message":{"method":"toggle","type":"light","index":2}}`)))
		reply := watch.Frame{}
		require.NoError(t, conn.ReadJSON(&reply))

		// assert
		assert.Equal(t, watch.Frame{Kind: watch.KindAck, Seq: 7}, reply)
		assert.Equal(t, models.Message{Method: models.MethodToggle, Type: models.MessageTypeLight, Index: 2}, <-received)
	})

	t.Run("refused command should be nacked", func(t *testing.T) {
		// arrange
		link, srv := newLink(t, time.Second)
		link.OnCommand(func(msg models.Message) error {
			return errors.New("busy")
		})
		conn := dial(t, link, srv)

		// act
		require.NoError(t, conn.WriteJSON(watch.Frame{Kind: watch.KindCommand, Seq: 3, Message: &models.Message{Method: models.MethodRefresh}}))
		reply := watch.Frame{}
		require.NoError(t, conn.ReadJSON(&reply))

		// assert
		assert.Equal(t, watch.Frame{Kind: watch.KindNack, Seq: 3}, reply)
	})

	t.Run("command without a message should be nacked", func(t *testing.T) {
		// arrange
		link, srv := newLink(t, time.Second)
		link.OnCommand(func(msg models.Message) error { return nil })
		conn := dial(t, link, srv)

		// act
		require.NoError(t, conn.WriteJSON(watch.Frame{Kind: watch.KindCommand, Seq: 4}))
		reply := watch.Frame{}
		require.NoError(t, conn.ReadJSON(&reply))

		// assert
		assert.Equal(t, watch.KindNack, reply.Kind)
	})
}

func Test_Sessions(t *testing.T) {

	t.Run("new connection should replace the previous one", func(t *testing.T) {
		// arrange
		link, srv := newLink(t, time.Second)
		var connects atomic.Int32
		link.OnConnect(func() { connects.Add(1) })
		first := dial(t, link, srv)

		// act
		second := dial(t, link, srv)

		// assert
		_, _, err := first.ReadMessage()
		assert.Error(t, err)
		assert.True(t, link.Connected())
		assert.Eventually(t, func() bool { return connects.Load() == 2 }, time.Second, 5*time.Millisecond)

		result := deliverAsync(link, models.Message{Type: models.MessageTypeAll})
		frame := watch.Frame{}
		require.NoError(t, second.ReadJSON(&frame))
		require.NoError(t, second.WriteJSON(watch.Frame{Kind: watch.KindAck, Seq: frame.Seq}))
		assert.NoError(t, <-result)
	})

	t.Run("delivery should wait for a wearable to connect", func(t *testing.T) {
		// arrange
		link, srv := newLink(t, time.Second)

		// act
		result := deliverAsync(link, models.Message{Type: models.MessageTypeLight, Method: models.MethodBegin, Index: 1})
		conn := dial(t, link, srv)
		frame := watch.Frame{}
		require.NoError(t, conn.ReadJSON(&frame))
		require.NoError(t, conn.WriteJSON(watch.Frame{Kind: watch.KindAck, Seq: frame.Seq}))

		// assert
		assert.NoError(t, <-result)
	})
}
