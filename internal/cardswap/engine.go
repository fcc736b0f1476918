// Package cardswap drives a rotating stack of cards: every interval the front
// card drops away, the rest move one slot forward, and the dropped card returns
// to the back. The engine only decides what moves where and when; drawing is
// left to the Handles registered with it.
package cardswap

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Engine owns the order of one card stack and its timers.
type Engine struct {
	mu sync.Mutex

	cfg     Config
	profile Profile
	clock   Clock
	logger  *zap.Logger

	surface   Surface
	container Container

	ring    *Ring
	handles map[int]Handle
	tweens  map[int][]Tween

	timeline *timeline
	interval Timer
	tick     int

	unsubscribe func()

	started   bool
	paused    bool
	destroyed bool
	cycles    int
	skipped   int
}

// Option customises an Engine.
type Option func(*Engine)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithSurface lets the engine pause and resume running tweens.
func WithSurface(s Surface) Option {
	return func(e *Engine) { e.surface = s }
}

// WithContainer supplies pointer events for pause on hover.
func WithContainer(c Container) Option {
	return func(e *Engine) { e.container = c }
}

// New registers cards with an engine. Card IDs must be exactly 0..len(cards)-1.
func New(cfg Config, cards []Card, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:     cfg,
		profile: ProfileFor(cfg.Easing),
		clock:   SystemClock,
		logger:  zap.NewNop(),
		ring:    NewRing(len(cards)),
		handles: make(map[int]Handle, len(cards)),
		tweens:  make(map[int][]Tween),
	}
	for _, c := range cards {
		if c.ID < 0 || c.ID >= len(cards) {
			return nil, fmt.Errorf("%w: %d", ErrCardOutOfRange, c.ID)
		}
		if _, dup := e.handles[c.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateCard, c.ID)
		}
		e.handles[c.ID] = c.Handle
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Start places every card in its slot, rotates once, and arms the interval.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.destroyed {
		return ErrDestroyed
	}
	if e.started {
		return ErrStarted
	}
	e.started = true

	e.placeAll()
	if e.cfg.PauseOnHover && e.container != nil {
		e.subscribe()
	}
	e.rotate()
	e.armInterval()

	e.logger.Debug("card swap started",
		zap.Int("cards", e.ring.Len()),
		zap.Duration("interval", e.cfg.Interval),
		zap.String("ease", e.profile.Ease),
	)
	return nil
}

// RotateOnce runs one rotation cycle now. A cycle still in flight is cut
// short and every card snaps to its committed slot first.
func (e *Engine) RotateOnce() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return
	}
	if e.timeline.active() {
		e.timeline.kill()
		e.cancelTweens()
		e.placeAll()
	}
	e.rotate()
}

// Order returns the current front-to-back card IDs.
func (e *Engine) Order() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ring.Order()
}

// View is a point-in-time summary for the render layer.
type View struct {
	Order   []int       `json:"order"`
	States  []CardState `json:"states"`
	Cycles  int         `json:"cycles"`
	Skipped int         `json:"skipped"`
	Paused  bool        `json:"paused"`
}

// Snapshot returns the order with each card's state, indexed by position.
func (e *Engine) Snapshot() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	order := e.ring.Order()
	states := make([]CardState, len(order))
	for i := range order {
		states[i] = StateAt(i, len(order))
	}
	return View{
		Order:   order,
		States:  states,
		Cycles:  e.cycles,
		Skipped: e.skipped,
		Paused:  e.paused,
	}
}

// Click reports a click on card id to the configured callback.
func (e *Engine) Click(id int) {
	e.mu.Lock()
	pos := e.ring.Position(id)
	cb := e.cfg.OnCardClick
	e.mu.Unlock()

	if pos < 0 || cb == nil {
		return
	}
	cb(id, pos)
}

// Detach forgets the handle of card id. Later phases for that card are skipped.
func (e *Engine) Detach(id int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.handles, id)
	for _, tw := range e.tweens[id] {
		cancelQuietly(tw)
	}
	delete(e.tweens, id)
}

// Destroy cancels the interval, stops the running cycle, and unsubscribes
// from pointer events. It is safe to call more than once.
func (e *Engine) Destroy() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return
	}
	e.destroyed = true
	e.teardownHover()
	e.stopInterval()
	if e.timeline != nil {
		e.timeline.kill()
	}
	e.cancelTweens()
	e.logger.Debug("card swap destroyed", zap.Int("cycles", e.cycles))
}

func (e *Engine) slot(i int) Slot {
	return MakeSlot(i, e.ring.Len(), e.cfg.CardDistance, e.cfg.VerticalDistance)
}

func (e *Engine) transform(s Slot) Transform {
	return Transform{
		X:      s.X,
		Y:      s.Y,
		Z:      s.Z,
		SkewY:  e.cfg.Skew,
		Width:  e.cfg.Width,
		Height: e.cfg.Height,
		ZIndex: s.ZIndex,
	}
}

func (e *Engine) placeAll() {
	for i, id := range e.ring.Order() {
		t := e.transform(e.slot(i))
		e.apply(id, "place", func(h Handle) error { return h.Place(t) })
	}
}

// rotate schedules drop, promote and return, then commits the new order.
func (e *Engine) rotate() {
	total := e.ring.Len()
	if total < 2 {
		return
	}
	// Tweens of the previous cycle have finished or were cancelled.
	clear(e.tweens)

	order := e.ring.Order()
	front, rest := order[0], order[1:]
	p := e.profile

	tl := newTimeline(e.clock, &e.mu)

	frontSlot := e.slot(0)
	tl.add(0, p.Drop, func() {
		to := Offset{X: frontSlot.X, Y: frontSlot.Y + DropDistance, Z: frontSlot.Z}
		e.animate(front, "drop", to, Motion{Duration: p.Drop, Ease: p.Ease})
	})

	for i, id := range rest {
		id, target := id, e.slot(i)
		tl.add(p.PromoteStart()+time.Duration(i)*Stagger, p.Move, func() {
			e.apply(id, "promote", func(h Handle) error { return h.Stack(target.ZIndex) })
			to := Offset{X: target.X, Y: target.Y, Z: target.Z}
			e.animate(id, "promote", to, Motion{Duration: p.Move, Ease: p.Ease})
		})
	}

	back := e.slot(total - 1)
	tl.add(p.ReturnStart(), p.Return, func() {
		e.apply(front, "return", func(h Handle) error { return h.Stack(back.ZIndex) })
		to := Offset{X: back.X, Y: back.Y, Z: back.Z}
		e.animate(front, "return", to, Motion{Duration: p.Return, Ease: p.Ease})
	})

	e.timeline = tl
	if !e.paused {
		tl.play()
	}

	e.ring.Rotate()
	e.cycles++
}

func (e *Engine) animate(id int, phase string, to Offset, m Motion) {
	e.apply(id, phase, func(h Handle) error {
		tw, err := h.Animate(to, m)
		if err != nil {
			return err
		}
		if tw != nil {
			e.tweens[id] = append(e.tweens[id], tw)
		}
		return nil
	})
}

// apply runs fn against the handle of id. Missing handles, errors and panics
// skip the phase for that card.
func (e *Engine) apply(id int, phase string, fn func(Handle) error) {
	h := e.handles[id]
	if h == nil {
		e.logger.Debug("card handle missing, phase skipped",
			zap.Int("card", id), zap.String("phase", phase))
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Debug("card handle panicked, phase skipped",
				zap.Int("card", id), zap.String("phase", phase), zap.Any("panic", r))
		}
	}()
	if err := fn(h); err != nil {
		e.logger.Debug("card handle failed, phase skipped",
			zap.Int("card", id), zap.String("phase", phase), zap.Error(err))
	}
}

func (e *Engine) cancelTweens() {
	for id, tws := range e.tweens {
		for _, tw := range tws {
			cancelQuietly(tw)
		}
		delete(e.tweens, id)
	}
}

func cancelQuietly(tw Tween) {
	defer func() { _ = recover() }()
	tw.Cancel()
}

func (e *Engine) armInterval() {
	if e.destroyed || e.paused {
		return
	}
	e.stopInterval()
	e.tick++
	token := e.tick
	e.interval = e.clock.AfterFunc(e.cfg.Interval, func() { e.onInterval(token) })
}

func (e *Engine) stopInterval() {
	if e.interval != nil {
		e.interval.Stop()
		e.interval = nil
	}
	e.tick++
}

func (e *Engine) onInterval(token int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed || e.paused || token != e.tick {
		return
	}
	e.interval = nil
	if e.timeline.active() {
		e.skipped++
		e.logger.Debug("previous cycle still running, rotation skipped",
			zap.Duration("interval", e.cfg.Interval),
			zap.Duration("cycle", e.profile.CycleLength(e.ring.Len())),
		)
	} else {
		e.rotate()
	}
	e.armInterval()
}
