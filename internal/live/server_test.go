package live

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/cardswap"
	"github.com/Zachkp/portfolio/internal/cardswap/cardswaptest"
	"github.com/Zachkp/portfolio/internal/highlight"
	"github.com/Zachkp/portfolio/internal/store"
)

type clickLog struct {
	mu     sync.Mutex
	clicks []store.CardClick
}

func (c *clickLog) RecordCardClick(_ context.Context, click store.CardClick) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clicks = append(c.clicks, click)
	return nil
}

func (c *clickLog) all() []store.CardClick {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]store.CardClick(nil), c.clicks...)
}

type harness struct {
	srv    *Server
	clock  *cardswaptest.Clock
	clicks *clickLog
	conn   *websocket.Conn
}

func dial(t *testing.T) *harness {
	t.Helper()
	cfg := cardswap.DefaultConfig()
	cfg.PauseOnHover = true

	h := &harness{clock: cardswaptest.NewClock(), clicks: &clickLog{}}
	h.srv = NewServer(cfg, []string{"mailtui", "ytmusic", "gamerec"}, 3, h.clicks, zap.NewNop(),
		WithClock(h.clock))

	ts := httptest.NewServer(h.srv)
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	h.conn = conn
	return h
}

func (h *harness) read(t *testing.T) Message {
	t.Helper()
	require.NoError(t, h.conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var m Message
	require.NoError(t, h.conn.ReadJSON(&m))
	return m
}

func (h *harness) write(t *testing.T, m Message) {
	t.Helper()
	require.NoError(t, h.conn.WriteJSON(m))
}

// handshake reads everything the server sends on connect.
func (h *harness) handshake(t *testing.T) []Message {
	t.Helper()
	msgs := make([]Message, 6)
	for i := range msgs {
		msgs[i] = h.read(t)
	}
	return msgs
}

func TestConnectStreamsInitialCycle(t *testing.T) {
	h := dial(t)
	msgs := h.handshake(t)

	assert.Equal(t, TypeHello, msgs[0].Type)
	assert.Equal(t, 3, msgs[0].Cards)
	assert.NotEmpty(t, msgs[0].Session)

	for i := 0; i < 3; i++ {
		m := msgs[1+i]
		require.Equal(t, TypeSet, m.Type)
		require.NotNil(t, m.Card)
		assert.Equal(t, i, *m.Card)
		assert.Equal(t, 3-i, m.Transform.ZIndex)
	}

	drop := msgs[4]
	assert.Equal(t, TypeAnimate, drop.Type)
	assert.Equal(t, 0, *drop.Card)
	assert.Equal(t, cardswap.DropDistance, drop.To.Y)
	assert.EqualValues(t, 2000, drop.DurationMS)
	assert.NotEmpty(t, drop.Tween)

	assert.Equal(t, TypeActive, msgs[5].Type)
	assert.Equal(t, 0, *msgs[5].Region)

	assert.Eventually(t, func() bool { return h.srv.Count() == 1 }, time.Second, 10*time.Millisecond)
}

func TestHoverPausesRemoteTweens(t *testing.T) {
	h := dial(t)
	h.handshake(t)

	h.write(t, Message{Type: TypeHover, Over: true})
	assert.Equal(t, TypePause, h.read(t).Type)

	h.write(t, Message{Type: TypeHover, Over: false})
	assert.Equal(t, TypeResume, h.read(t).Type)
}

func TestClickIsRecordedWithDisplayPosition(t *testing.T) {
	h := dial(t)
	h.handshake(t)

	// After the opening rotation the order is [1, 2, 0].
	h.write(t, Message{Type: TypeClick, Card: intPtr(0)})

	require.Eventually(t, func() bool { return len(h.clicks.all()) == 1 }, time.Second, 10*time.Millisecond)
	click := h.clicks.all()[0]
	assert.Equal(t, "mailtui", click.Project)
	assert.Equal(t, 2, click.Position)
	assert.NotEmpty(t, click.SessionID)
}

func TestScrollMovesHighlight(t *testing.T) {
	h := dial(t)
	h.handshake(t)

	h.write(t, Message{Type: TypeScroll, Viewport: 1000, Regions: []highlight.Rect{
		{Top: -900, Bottom: -100},
		{Top: -100, Bottom: 300},
		{Top: 450, Bottom: 1300},
	}})
	m := h.read(t)
	assert.Equal(t, TypeActive, m.Type)
	assert.Equal(t, 2, *m.Region)

	h.write(t, Message{Type: TypeScroll, Viewport: 1000, Regions: []highlight.Rect{
		{Top: 300, Bottom: 700},
		{Top: 700, Bottom: 1100},
		{Top: 1100, Bottom: 1900},
	}})
	m = h.read(t)
	assert.Equal(t, TypeActive, m.Type)
	assert.Equal(t, 0, *m.Region)
}

func TestDisconnectDestroysSession(t *testing.T) {
	h := dial(t)
	h.handshake(t)
	require.Eventually(t, func() bool { return h.srv.Count() == 1 }, time.Second, 10*time.Millisecond)

	h.conn.Close()

	assert.Eventually(t, func() bool { return h.srv.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return h.clock.Pending() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestCloseAll(t *testing.T) {
	h := dial(t)
	h.handshake(t)
	require.Eventually(t, func() bool { return h.srv.Count() == 1 }, time.Second, 10*time.Millisecond)

	h.srv.CloseAll()

	assert.Eventually(t, func() bool { return h.srv.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}
