package cardswap

import "go.uber.org/zap"

// PointerEnter freezes the running cycle where it is and cancels the pending
// rotation. It does nothing unless PauseOnHover is set.
func (e *Engine) PointerEnter() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.cfg.PauseOnHover || e.destroyed || e.paused {
		return
	}
	e.paused = true
	e.stopInterval()
	if e.timeline != nil {
		e.timeline.pause()
	}
	if e.surface != nil {
		e.surface.PauseAll()
	}
	e.logger.Debug("card swap paused")
}

// PointerLeave resumes the frozen cycle and re-arms a full interval.
func (e *Engine) PointerLeave() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.cfg.PauseOnHover || e.destroyed || !e.paused {
		return
	}
	e.paused = false
	if e.timeline != nil {
		e.timeline.resume()
	}
	if e.surface != nil {
		e.surface.ResumeAll()
	}
	if e.started {
		e.armInterval()
	}
	e.logger.Debug("card swap resumed", zap.Duration("interval", e.cfg.Interval))
}

// subscribe wires the container's pointer events to the engine.
// Callbacks run outside the engine lock.
func (e *Engine) subscribe() {
	e.unsubscribe = e.container.OnPointer(e.PointerEnter, e.PointerLeave)
}

func (e *Engine) teardownHover() {
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
	e.stopInterval()
}
