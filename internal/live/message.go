package live

import (
	"github.com/Zachkp/portfolio/internal/cardswap"
	"github.com/Zachkp/portfolio/internal/highlight"
)

// Message types sent to the browser.
const (
	TypeHello   = "hello"
	TypeSet     = "set"
	TypeStack   = "stack"
	TypeAnimate = "animate"
	TypeCancel  = "cancel"
	TypePause   = "pause"
	TypeResume  = "resume"
	TypeActive  = "active"
)

// Message types received from the browser.
const (
	TypeHover   = "hover"
	TypeClick   = "click"
	TypeScroll  = "scroll"
	TypeUnmount = "unmount"
)

// Message is the single envelope used in both directions.
type Message struct {
	Type    string `json:"type"`
	Session string `json:"session,omitempty"`
	Cards   int    `json:"cards,omitempty"`

	Card       *int                `json:"card,omitempty"`
	Tween      string              `json:"tween,omitempty"`
	Transform  *cardswap.Transform `json:"transform,omitempty"`
	To         *cardswap.Offset    `json:"to,omitempty"`
	ZIndex     int                 `json:"zIndex,omitempty"`
	DurationMS int64               `json:"durationMs,omitempty"`
	Ease       string              `json:"ease,omitempty"`

	Region   *int             `json:"region,omitempty"`
	Over     bool             `json:"over,omitempty"`
	Regions  []highlight.Rect `json:"regions,omitempty"`
	Viewport float64          `json:"viewport,omitempty"`
}

func intPtr(v int) *int { return &v }
