// Package live streams the project card showcase to browsers over WebSocket.
// Every connection runs its own card swap engine; the browser only applies
// the placements and tweens it is sent, and reports pointer, click and scroll
// events back.
package live

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/cardswap"
	"github.com/Zachkp/portfolio/internal/highlight"
	"github.com/Zachkp/portfolio/internal/store"
)

// ClickRecorder persists card clicks.
type ClickRecorder interface {
	RecordCardClick(ctx context.Context, c store.CardClick) error
}

// Server accepts showcase connections.
type Server struct {
	cfg      cardswap.Config
	projects []string
	regions  int
	band     highlight.Band
	clicks   ClickRecorder
	clock    cardswap.Clock
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]*Session
}

// Option customises a Server.
type Option func(*Server)

// WithClock sets the clock handed to every engine.
func WithClock(c cardswap.Clock) Option {
	return func(s *Server) { s.clock = c }
}

// WithBand changes the scroll activation band.
func WithBand(b highlight.Band) Option {
	return func(s *Server) { s.band = b }
}

// NewServer serves one card per project and tracks regions scroll regions.
func NewServer(cfg cardswap.Config, projects []string, regions int, clicks ClickRecorder, logger *zap.Logger, opts ...Option) *Server {
	s := &Server{
		cfg:      cfg,
		projects: projects,
		regions:  regions,
		band:     highlight.DefaultBand,
		clicks:   clicks,
		clock:    cardswap.SystemClock,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Count returns the number of connected sessions.
func (s *Server) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// ServeHTTP upgrades the request and runs the session until it disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	sess := newSession(conn, s.logger)
	sess.tracker = highlight.NewTracker(s.regions, s.band)

	engine, err := cardswap.New(s.engineConfig(sess), s.cards(sess),
		cardswap.WithClock(s.clock),
		cardswap.WithLogger(sess.logger),
		cardswap.WithSurface(sess),
		cardswap.WithContainer(sess),
	)
	if err != nil {
		s.logger.Error("failed to build card swap engine", zap.Error(err))
		conn.Close()
		return
	}
	sess.engine = engine

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	go sess.writePump()

	_ = sess.push(Message{Type: TypeHello, Session: sess.ID, Cards: len(s.projects)})
	if err := engine.Start(); err != nil {
		sess.logger.Error("failed to start card swap", zap.Error(err))
	}
	_ = sess.push(Message{Type: TypeActive, Region: intPtr(sess.tracker.Active())})

	sess.logger.Info("showcase session opened", zap.Int("cards", len(s.projects)))
	start := time.Now()

	sess.readPump()

	engine.Destroy()
	sess.close()

	s.mu.Lock()
	delete(s.sessions, sess.ID)
	s.mu.Unlock()

	sess.logger.Info("showcase session closed",
		zap.Duration("duration", time.Since(start)),
		zap.Int("cycles", engine.Snapshot().Cycles),
	)
}

// CloseAll disconnects every session.
func (s *Server) CloseAll() {
	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.engine.Destroy()
		sess.close()
	}
}

func (s *Server) cards(sess *Session) []cardswap.Card {
	cards := make([]cardswap.Card, len(s.projects))
	for i, name := range s.projects {
		cards[i] = cardswap.Card{ID: i, Handle: handle{s: sess, id: i}, Payload: name}
	}
	return cards
}

func (s *Server) engineConfig(sess *Session) cardswap.Config {
	cfg := s.cfg
	cfg.OnCardClick = func(id, position int) {
		if s.clicks == nil || id >= len(s.projects) {
			return
		}
		click := store.CardClick{Project: s.projects[id], Position: position, SessionID: sess.ID}
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.clicks.RecordCardClick(ctx, click); err != nil {
				sess.logger.Warn("failed to record card click", zap.Error(err))
			}
		}()
	}
	return cfg
}
