package cardswap

import (
	"errors"
	"time"
)

var (
	ErrInvalidConfig  = errors.New("invalid card swap config")
	ErrDuplicateCard  = errors.New("duplicate card id")
	ErrCardOutOfRange = errors.New("card id out of range")
	ErrStarted        = errors.New("engine already started")
	ErrDestroyed      = errors.New("engine destroyed")
)

// Transform is an immediate placement of a card.
type Transform struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	SkewY  float64 `json:"skewY"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	ZIndex int     `json:"zIndex"`
}

// Offset is the target of an animated move.
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Motion describes how a move is animated.
type Motion struct {
	Duration time.Duration
	Ease     string
}

// Tween is an in-flight animation that can be stopped.
type Tween interface {
	Cancel()
}

// Handle is the visual side of one card.
type Handle interface {
	Place(t Transform) error
	Stack(zIndex int) error
	Animate(to Offset, m Motion) (Tween, error)
}

// Surface pauses and resumes every running tween at once.
type Surface interface {
	PauseAll()
	ResumeAll()
}

// Container delivers pointer enter and leave for the card stack.
// The returned func unsubscribes.
type Container interface {
	OnPointer(enter, leave func()) (unsubscribe func())
}

// Card registers a visual handle under a stable ID.
type Card struct {
	ID      int
	Handle  Handle
	Payload any
}

// Timer is a pending callback.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}
