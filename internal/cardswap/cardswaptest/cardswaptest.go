// Package cardswaptest provides a manual clock and recording handles for
// exercising card swap engines without real timers or a browser.
package cardswaptest

import (
	"sort"
	"sync"
	"time"

	"github.com/Zachkp/portfolio/internal/cardswap"
)

// Clock is a cardswap.Clock that only moves when Advance is called.
type Clock struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*timer
}

type timer struct {
	clock   *Clock
	at      time.Time
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func (t *timer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func NewClock() *Clock {
	return &Clock{now: time.Unix(1700000000, 0)}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) AfterFunc(d time.Duration, f func()) cardswap.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &timer{clock: c, at: c.now.Add(d), seq: c.seq, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward by d, running due callbacks in time order on the
// calling goroutine.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	end := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.nextDue(end)
		if next == nil {
			c.now = end
			c.mu.Unlock()
			return
		}
		if next.at.After(c.now) {
			c.now = next.at
		}
		next.fired = true
		c.mu.Unlock()

		next.f()
	}
}

// Pending returns how many callbacks are waiting to fire.
func (c *Clock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (c *Clock) nextDue(end time.Time) *timer {
	live := c.timers[:0]
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	c.timers = live
	sort.SliceStable(live, func(i, j int) bool {
		if live[i].at.Equal(live[j].at) {
			return live[i].seq < live[j].seq
		}
		return live[i].at.Before(live[j].at)
	})
	if len(live) == 0 || live[0].at.After(end) {
		return nil
	}
	return live[0]
}

// Call is one recorded handle invocation.
type Call struct {
	Kind      string
	Transform cardswap.Transform
	Offset    cardswap.Offset
	ZIndex    int
	Motion    cardswap.Motion
}

// Handle records every call made to it.
type Handle struct {
	mu     sync.Mutex
	calls  []Call
	tweens []*Tween

	// Err is returned from every call when set.
	Err error
	// Panic makes every call panic when set.
	Panic bool
}

func (h *Handle) record(c Call) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.Panic {
		panic("handle detached")
	}
	if h.Err != nil {
		return h.Err
	}
	h.calls = append(h.calls, c)
	return nil
}

func (h *Handle) Place(t cardswap.Transform) error {
	return h.record(Call{Kind: "place", Transform: t, ZIndex: t.ZIndex})
}

func (h *Handle) Stack(z int) error {
	return h.record(Call{Kind: "stack", ZIndex: z})
}

func (h *Handle) Animate(to cardswap.Offset, m cardswap.Motion) (cardswap.Tween, error) {
	if err := h.record(Call{Kind: "animate", Offset: to, Motion: m}); err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	tw := &Tween{}
	h.tweens = append(h.tweens, tw)
	return tw, nil
}

// Calls returns a copy of the recorded calls.
func (h *Handle) Calls() []Call {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Call, len(h.calls))
	copy(out, h.calls)
	return out
}

// Kinds returns the kinds of the recorded calls in order.
func (h *Handle) Kinds() []string {
	calls := h.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Kind
	}
	return out
}

// Tweens returns the tweens handed out so far.
func (h *Handle) Tweens() []*Tween {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*Tween, len(h.tweens))
	copy(out, h.tweens)
	return out
}

// Tween records cancellation.
type Tween struct {
	mu       sync.Mutex
	canceled bool
}

func (t *Tween) Cancel() {
	t.mu.Lock()
	t.canceled = true
	t.mu.Unlock()
}

func (t *Tween) Canceled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.canceled
}

// Surface counts PauseAll and ResumeAll calls.
type Surface struct {
	mu      sync.Mutex
	Pauses  int
	Resumes int
}

func (s *Surface) PauseAll() {
	s.mu.Lock()
	s.Pauses++
	s.mu.Unlock()
}

func (s *Surface) ResumeAll() {
	s.mu.Lock()
	s.Resumes++
	s.mu.Unlock()
}

// Container lets tests fire pointer events by hand.
type Container struct {
	mu    sync.Mutex
	enter func()
	leave func()
}

func (c *Container) OnPointer(enter, leave func()) func() {
	c.mu.Lock()
	c.enter, c.leave = enter, leave
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		c.enter, c.leave = nil, nil
		c.mu.Unlock()
	}
}

// Subscribed reports whether an engine is listening.
func (c *Container) Subscribed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enter != nil
}

func (c *Container) Enter() {
	c.mu.Lock()
	f := c.enter
	c.mu.Unlock()
	if f != nil {
		f()
	}
}

func (c *Container) Leave() {
	c.mu.Lock()
	f := c.leave
	c.mu.Unlock()
	if f != nil {
		f()
	}
}

// Cards builds n recording handles registered under IDs 0..n-1.
func Cards(n int) ([]cardswap.Card, []*Handle) {
	cards := make([]cardswap.Card, n)
	handles := make([]*Handle, n)
	for i := range cards {
		handles[i] = &Handle{}
		cards[i] = cardswap.Card{ID: i, Handle: handles[i]}
	}
	return cards, handles
}
