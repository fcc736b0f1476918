package cardswap

import (
	"sync"
	"time"
)

type step struct {
	at    time.Duration
	run   func()
	fired bool
	timer Timer
	armed int
}

// timeline plays the phases of one rotation cycle against a Clock.
// Every method must be called with lock held; timer callbacks take it themselves.
type timeline struct {
	clock   Clock
	lock    sync.Locker
	steps   []*step
	length  time.Duration
	elapsed time.Duration
	started time.Time
	playing bool
	killed  bool
}

func newTimeline(clock Clock, lock sync.Locker) *timeline {
	return &timeline{clock: clock, lock: lock}
}

// add schedules run at offset at; the timeline lasts at least until at+span.
func (tl *timeline) add(at, span time.Duration, run func()) {
	tl.steps = append(tl.steps, &step{at: at, run: run})
	if end := at + span; end > tl.length {
		tl.length = end
	}
}

func (tl *timeline) position() time.Duration {
	if tl.playing {
		return tl.elapsed + tl.clock.Now().Sub(tl.started)
	}
	return tl.elapsed
}

// active reports whether the cycle is still animating.
func (tl *timeline) active() bool {
	return tl != nil && !tl.killed && tl.position() < tl.length
}

func (tl *timeline) play() {
	if tl.killed || tl.playing {
		return
	}
	tl.playing = true
	tl.started = tl.clock.Now()
	pos := tl.elapsed
	for _, s := range tl.steps {
		if s.fired {
			continue
		}
		if s.at <= pos {
			s.fired = true
			s.run()
			continue
		}
		tl.arm(s, s.at-pos)
	}
}

func (tl *timeline) arm(s *step, d time.Duration) {
	s.armed++
	token := s.armed
	s.timer = tl.clock.AfterFunc(d, func() {
		tl.lock.Lock()
		defer tl.lock.Unlock()
		if tl.killed || !tl.playing || s.fired || s.armed != token {
			return
		}
		s.fired = true
		s.run()
	})
}

func (tl *timeline) pause() {
	if tl.killed || !tl.playing {
		return
	}
	tl.elapsed = tl.position()
	tl.playing = false
	tl.stopTimers()
}

func (tl *timeline) resume() {
	tl.play()
}

func (tl *timeline) kill() {
	if tl.killed {
		return
	}
	tl.elapsed = tl.position()
	tl.killed = true
	tl.playing = false
	tl.stopTimers()
}

func (tl *timeline) stopTimers() {
	for _, s := range tl.steps {
		if s.timer != nil {
			s.timer.Stop()
			s.timer = nil
		}
		// A callback that already fired but is blocked on the lock sees a stale token.
		s.armed++
	}
}
