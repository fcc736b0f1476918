package cardswap

import (
	"fmt"
	"strings"
	"time"
)

// Easing preset names.
const (
	EasingElastic    = "elastic"
	EasingLinearFast = "linear-fast"
)

const (
	// Stagger is the delay between consecutive cards in the promote phase.
	Stagger = 150 * time.Millisecond

	// DropDistance is the vertical displacement of the card leaving the front.
	DropDistance = 500.0
)

// Profile holds the timing of one easing preset.
type Profile struct {
	Ease           string
	Drop           time.Duration
	Move           time.Duration
	Return         time.Duration
	PromoteOverlap float64
	ReturnDelay    float64
}

var profiles = map[string]Profile{
	EasingElastic: {
		Ease:           "elastic.out(0.6,0.9)",
		Drop:           2 * time.Second,
		Move:           2 * time.Second,
		Return:         2 * time.Second,
		PromoteOverlap: 0.9,
		ReturnDelay:    0.05,
	},
	EasingLinearFast: {
		Ease:           "power1.inOut",
		Drop:           800 * time.Millisecond,
		Move:           800 * time.Millisecond,
		Return:         800 * time.Millisecond,
		PromoteOverlap: 0.45,
		ReturnDelay:    0.2,
	},
}

// ProfileFor returns the preset for name. Unknown names get the elastic preset.
func ProfileFor(name string) Profile {
	if p, ok := profiles[strings.ToLower(name)]; ok {
		return p
	}
	return profiles[EasingElastic]
}

// PromoteStart is the offset of the promote phase within a cycle.
func (p Profile) PromoteStart() time.Duration {
	return scale(p.Drop, 1-p.PromoteOverlap)
}

// ReturnStart is the offset of the return phase within a cycle.
func (p Profile) ReturnStart() time.Duration {
	return p.PromoteStart() + scale(p.Move, p.ReturnDelay)
}

// CycleLength is how long a full rotation of total cards animates.
func (p Profile) CycleLength(total int) time.Duration {
	if total < 2 {
		return 0
	}
	end := p.Drop
	if promoteEnd := p.PromoteStart() + time.Duration(total-2)*Stagger + p.Move; promoteEnd > end {
		end = promoteEnd
	}
	if returnEnd := p.ReturnStart() + p.Return; returnEnd > end {
		end = returnEnd
	}
	return end
}

func scale(d time.Duration, f float64) time.Duration {
	return time.Duration(float64(d) * f)
}

// Config configures an Engine.
type Config struct {
	Width            float64
	Height           float64
	CardDistance     float64
	VerticalDistance float64
	Interval         time.Duration
	PauseOnHover     bool
	Skew             float64
	Easing           string

	// OnCardClick receives the clicked card's ID and its display position.
	OnCardClick func(id, position int)
}

// DefaultConfig returns the stock card swap settings.
func DefaultConfig() Config {
	return Config{
		Width:            500,
		Height:           400,
		CardDistance:     60,
		VerticalDistance: 70,
		Interval:         5 * time.Second,
		Skew:             6,
		Easing:           EasingElastic,
	}
}

// Validate reports settings the engine cannot run with.
func (c Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("%w: interval must be positive, got %s", ErrInvalidConfig, c.Interval)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: card size must be positive, got %vx%v", ErrInvalidConfig, c.Width, c.Height)
	}
	return nil
}
