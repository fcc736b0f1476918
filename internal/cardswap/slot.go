package cardswap

// Slot is the placement of a stack position. It is derived from the position
// and the configured distances, never stored.
type Slot struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	ZIndex int     `json:"zIndex"`
}

// MakeSlot computes the slot for position i (0 is front) in a stack of total cards.
func MakeSlot(i, total int, distX, distY float64) Slot {
	return Slot{
		X:      float64(i) * distX,
		Y:      -float64(i) * distY,
		Z:      -float64(i) * distX * 1.5,
		ZIndex: total - i,
	}
}

// CardState is the coarse visual state handed to the render layer.
type CardState int

const (
	StateFront CardState = iota
	StateMiddle
	StateBack
)

func (s CardState) String() string {
	switch s {
	case StateFront:
		return "front"
	case StateMiddle:
		return "middle"
	case StateBack:
		return "back"
	default:
		return "unknown"
	}
}

// StateAt maps a display position to its CardState. A single card is front.
func StateAt(i, total int) CardState {
	switch {
	case i == 0:
		return StateFront
	case i == total-1:
		return StateBack
	default:
		return StateMiddle
	}
}
