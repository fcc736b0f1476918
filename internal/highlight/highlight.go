// Package highlight tracks which content block is active while the page scrolls.
//
// A region becomes active when it moves into the activation band, a strip of
// the viewport left after cutting Top and Bottom fractions off each edge. The
// region that entered the band most recently wins.
package highlight

import (
	"errors"
	"fmt"
	"sync"
)

var ErrRegionOutOfRange = errors.New("region index out of range")

// Band is the activation band as fractions of the viewport height.
type Band struct {
	Top    float64
	Bottom float64
}

// DefaultBand keeps the middle 20% of the viewport.
var DefaultBand = Band{Top: 0.4, Bottom: 0.4}

// Rect is a region's vertical extent relative to the top of the viewport.
type Rect struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Contains reports whether r overlaps the band of a viewport of height h.
func (b Band) Contains(r Rect, h float64) bool {
	lo := h * b.Top
	hi := h * (1 - b.Bottom)
	return r.Bottom > lo && r.Top < hi
}

// Tracker holds the active index of n regions.
type Tracker struct {
	mu     sync.Mutex
	band   Band
	inside []bool
	active int
}

// NewTracker starts with region 0 active.
func NewTracker(n int, band Band) *Tracker {
	return &Tracker{band: band, inside: make([]bool, n)}
}

func (t *Tracker) Len() int { return len(t.inside) }

// Active returns the active region index.
func (t *Tracker) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Enter records region i moving into the band and makes it active.
func (t *Tracker) Enter(i int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.check(i); err != nil {
		return err
	}
	t.inside[i] = true
	t.active = i
	return nil
}

// Leave records region i moving out of the band. The active index is kept.
func (t *Tracker) Leave(i int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.check(i); err != nil {
		return err
	}
	t.inside[i] = false
	return nil
}

// Observe feeds the current rect of region i. It reports whether the active
// region changed.
func (t *Tracker) Observe(i int, r Rect, viewport float64) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.check(i); err != nil {
		return false, err
	}
	in := t.band.Contains(r, viewport)
	entered := in && !t.inside[i]
	t.inside[i] = in
	if !entered || t.active == i {
		return false, nil
	}
	t.active = i
	return true, nil
}

func (t *Tracker) check(i int) error {
	if i < 0 || i >= len(t.inside) {
		return fmt.Errorf("%w: %d of %d", ErrRegionOutOfRange, i, len(t.inside))
	}
	return nil
}
