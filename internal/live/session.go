package live

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/cardswap"
	"github.com/Zachkp/portfolio/internal/highlight"
)

var (
	ErrClosed       = errors.New("session closed")
	ErrBackpressure = errors.New("session send buffer full")
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
	sendBuffer     = 256
)

// Session is one browser connected to the showcase. It owns an engine and a
// scroll tracker and turns their output into messages.
type Session struct {
	ID string

	conn    *websocket.Conn
	send    chan Message
	done    chan struct{}
	logger  *zap.Logger
	engine  *cardswap.Engine
	tracker *highlight.Tracker

	mu     sync.Mutex
	closed bool
	enter  func()
	leave  func()
}

func newSession(conn *websocket.Conn, logger *zap.Logger) *Session {
	id := uuid.NewString()
	return &Session{
		ID:     id,
		conn:   conn,
		send:   make(chan Message, sendBuffer),
		done:   make(chan struct{}),
		logger: logger.With(zap.String("session", id)),
	}
}

// push queues m without blocking.
func (s *Session) push(m Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	select {
	case s.send <- m:
		return nil
	default:
		return ErrBackpressure
	}
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.done)
}

// PauseAll implements cardswap.Surface.
func (s *Session) PauseAll() { _ = s.push(Message{Type: TypePause}) }

// ResumeAll implements cardswap.Surface.
func (s *Session) ResumeAll() { _ = s.push(Message{Type: TypeResume}) }

// OnPointer implements cardswap.Container; hover messages drive the callbacks.
func (s *Session) OnPointer(enter, leave func()) func() {
	s.mu.Lock()
	s.enter, s.leave = enter, leave
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		s.enter, s.leave = nil, nil
		s.mu.Unlock()
	}
}

func (s *Session) hover(over bool) {
	s.mu.Lock()
	f := s.leave
	if over {
		f = s.enter
	}
	s.mu.Unlock()
	if f != nil {
		f()
	}
}

// handle is the remote visual handle of one card.
type handle struct {
	s  *Session
	id int
}

func (h handle) Place(t cardswap.Transform) error {
	return h.s.push(Message{Type: TypeSet, Card: intPtr(h.id), Transform: &t})
}

func (h handle) Stack(z int) error {
	return h.s.push(Message{Type: TypeStack, Card: intPtr(h.id), ZIndex: z})
}

func (h handle) Animate(to cardswap.Offset, m cardswap.Motion) (cardswap.Tween, error) {
	tw := tween{s: h.s, id: uuid.NewString()}
	err := h.s.push(Message{
		Type:       TypeAnimate,
		Card:       intPtr(h.id),
		Tween:      tw.id,
		To:         &to,
		DurationMS: m.Duration.Milliseconds(),
		Ease:       m.Ease,
	})
	if err != nil {
		return nil, err
	}
	return tw, nil
}

type tween struct {
	s  *Session
	id string
}

func (t tween) Cancel() { _ = t.s.push(Message{Type: TypeCancel, Tween: t.id}) }

func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case m := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(m); err != nil {
				s.logger.Debug("write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.done:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			s.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// readPump dispatches browser events until the connection fails.
func (s *Session) readPump() {
	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var m Message
		if err := s.conn.ReadJSON(&m); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("showcase connection dropped", zap.Error(err))
			}
			return
		}
		s.dispatch(m)
	}
}

func (s *Session) dispatch(m Message) {
	switch m.Type {
	case TypeHover:
		s.hover(m.Over)
	case TypeClick:
		if m.Card != nil {
			s.engine.Click(*m.Card)
		}
	case TypeUnmount:
		if m.Card != nil {
			s.engine.Detach(*m.Card)
		}
	case TypeScroll:
		s.scroll(m.Regions, m.Viewport)
	default:
		s.logger.Debug("unknown message", zap.String("type", m.Type))
	}
}

func (s *Session) scroll(regions []highlight.Rect, viewport float64) {
	changed := false
	for i, r := range regions {
		if i >= s.tracker.Len() {
			break
		}
		ok, err := s.tracker.Observe(i, r, viewport)
		if err != nil {
			s.logger.Debug("observe failed", zap.Int("region", i), zap.Error(err))
			continue
		}
		changed = changed || ok
	}
	if changed {
		_ = s.push(Message{Type: TypeActive, Region: intPtr(s.tracker.Active())})
	}
}
