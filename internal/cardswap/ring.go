package cardswap

// Ring holds the front-to-back order of card IDs.
// Position 0 is the front card. The order is always a permutation of [0, n).
type Ring struct {
	order []int
}

// NewRing returns a ring in identity order [0, 1, ..., n-1].
func NewRing(n int) *Ring {
	if n < 0 {
		n = 0
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return &Ring{order: order}
}

func (r *Ring) Len() int { return len(r.order) }

// Order returns a copy of the current order.
func (r *Ring) Order() []int {
	out := make([]int, len(r.order))
	copy(out, r.order)
	return out
}

// Front returns the ID at position 0, or -1 for an empty ring.
func (r *Ring) Front() int {
	if len(r.order) == 0 {
		return -1
	}
	return r.order[0]
}

// Position returns the display position of id, or -1 if id is not in the ring.
func (r *Ring) Position(id int) int {
	for i, v := range r.order {
		if v == id {
			return i
		}
	}
	return -1
}

// Rotate moves the front card to the back: [front, rest...] -> [rest..., front].
// Rings shorter than two are left alone.
func (r *Ring) Rotate() {
	if len(r.order) < 2 {
		return
	}
	front := r.order[0]
	copy(r.order, r.order[1:])
	r.order[len(r.order)-1] = front
}
