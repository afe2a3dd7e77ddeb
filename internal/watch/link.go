package watch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/wheelibin/lumen/internal/constants"
	"github.com/wheelibin/lumen/internal/models"
)

var (
	ErrNotConnected = errors.New("wearable not connected")
	ErrRejected     = errors.New("message rejected by wearable")
)

type FrameKind string

const (
	KindMessage FrameKind = "message"
	KindCommand FrameKind = "command"
	KindAck     FrameKind = "ack"
	KindNack    FrameKind = "nack"
)

// a single websocket text frame exchanged with the wearable
type Frame struct {
	Kind    FrameKind       `json:"kind"`
	Seq     uint64          `json:"seq"`
	Message *models.Message `json:"message,omitempty"`
}

// CommandHandler receives the messages the wearable sends, a non-nil error is
// answered with a nack
type CommandHandler func(msg models.Message) error

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// Link is the connection to the wearable. Only one wearable is connected at a
// time, a new connection replaces the previous one.
type Link struct {
	logger     *log.Logger
	ackTimeout time.Duration

	mu        sync.Mutex
	session   *session
	changed   chan struct{}
	nextSeq   uint64
	onCommand CommandHandler
	onConnect func()
}

type session struct {
	id   string
	conn *websocket.Conn
	done chan struct{}

	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[uint64]chan bool
	closed  bool
}

func NewLink(logger *log.Logger, ackTimeout time.Duration) *Link {
	if ackTimeout <= 0 {
		ackTimeout = constants.DefaultAckTimeout
	}
	return &Link{
		logger:     logger,
		ackTimeout: ackTimeout,
		changed:    make(chan struct{}),
	}
}

// OnCommand sets the handler for commands sent by the wearable
func (l *Link) OnCommand(handler CommandHandler) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onCommand = handler
}

// OnConnect sets a callback run whenever a wearable connects
func (l *Link) OnConnect(f func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onConnect = f
}

func (l *Link) Connected() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.session != nil
}

// Deliver sends a message and waits for the wearable to acknowledge it. When no
// wearable is connected it waits up to the ack timeout for one to appear.
func (l *Link) Deliver(ctx context.Context, msg models.Message) error {
	s, err := l.waitForSession(ctx)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.nextSeq++
	seq := l.nextSeq
	l.mu.Unlock()

	reply, ok := s.expect(seq)
	if !ok {
		return ErrNotConnected
	}
	defer s.forget(seq)

	if err := s.write(Frame{Kind: KindMessage, Seq: seq, Message: &msg}); err != nil {
		return fmt.Errorf("%w: %v", ErrNotConnected, err)
	}

	timer := time.NewTimer(l.ackTimeout)
	defer timer.Stop()

	select {
	case accepted := <-reply:
		if !accepted {
			return fmt.Errorf("seq %d: %w", seq, ErrRejected)
		}
		return nil
	case <-timer.C:
		return fmt.Errorf("seq %d: no reply within %s: %w", seq, l.ackTimeout, ErrRejected)
	case <-s.done:
		return ErrNotConnected
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Link) waitForSession(ctx context.Context) (*session, error) {
	timer := time.NewTimer(l.ackTimeout)
	defer timer.Stop()

	for {
		l.mu.Lock()
		s, changed := l.session, l.changed
		l.mu.Unlock()

		if s != nil {
			return s, nil
		}

		select {
		case <-changed:
		case <-timer.C:
			return nil, ErrNotConnected
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// ServeHTTP upgrades the request and serves the wearable until it disconnects
func (l *Link) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		l.logger.Error("Websocket upgrade failed", "err", err)
		return
	}

	s := &session{
		id:      uuid.NewString(),
		conn:    conn,
		done:    make(chan struct{}),
		pending: map[uint64]chan bool{},
	}

	previous, onConnect := l.swap(nil, s)
	if previous != nil {
		l.logger.Info("Wearable replaced", "previous", previous.id, "session", s.id)
		previous.close()
	}
	l.logger.Info("Wearable connected", "session", s.id, "remote", r.RemoteAddr)

	if onConnect != nil {
		onConnect()
	}

	l.readLoop(s)
}

// swap replaces the current session with next when it is still old
func (l *Link) swap(old *session, next *session) (*session, func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	current := l.session
	if old != nil && current != old {
		return nil, nil
	}
	l.session = next
	close(l.changed)
	l.changed = make(chan struct{})
	return current, l.onConnect
}

func (l *Link) readLoop(s *session) {
	defer func() {
		s.close()
		l.swap(s, nil)
		l.logger.Info("Wearable disconnected", "session", s.id)
	}()

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				l.logger.Warn("Websocket read error", "session", s.id, "err", err)
			}
			return
		}

		frame := Frame{}
		if err := json.Unmarshal(data, &frame); err != nil {
			l.logger.Warn("Ignoring invalid frame", "session", s.id, "err", err)
			continue
		}
		l.handleFrame(s, frame)
	}
}

func (l *Link) handleFrame(s *session, frame Frame) {
	switch frame.Kind {
	case KindAck, KindNack:
		s.resolve(frame.Seq, frame.Kind == KindAck)

	case KindCommand:
		reply := KindAck
		if err := l.dispatch(frame); err != nil {
			l.logger.Warn("Command not accepted", "seq", frame.Seq, "err", err)
			reply = KindNack
		}
		if err := s.write(Frame{Kind: reply, Seq: frame.Seq}); err != nil {
			l.logger.Warn("Unable to reply to command", "seq", frame.Seq, "err", err)
		}

	default:
		l.logger.Warn("Ignoring frame", "kind", frame.Kind)
	}
}

func (l *Link) dispatch(frame Frame) error {
	if frame.Message == nil {
		return errors.New("command without message")
	}

	l.mu.Lock()
	handler := l.onCommand
	l.mu.Unlock()

	if handler == nil {
		return errors.New("no command handler")
	}
	return handler(*frame.Message)
}

func (s *session) write(frame Frame) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(frame)
}

func (s *session) expect(seq uint64) (chan bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, false
	}
	reply := make(chan bool, 1)
	s.pending[seq] = reply
	return reply, true
}

func (s *session) forget(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, seq)
}

func (s *session) resolve(seq uint64, accepted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reply, ok := s.pending[seq]
	if !ok {
		// late reply after a timeout
		return
	}
	delete(s.pending, seq)
	reply <- accepted
}

func (s *session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	close(s.done)
	_ = s.conn.Close()
}
