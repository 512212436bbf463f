package site

// Ring moves focus around the header links.
type Ring struct {
	n   int
	idx int
}

// NewRing returns a ring over n links focused on index.
func NewRing(n, index int) *Ring {
	r := &Ring{n: n}
	if n > 0 && index > 0 && index < n {
		r.idx = index
	}
	return r
}

// Index returns the focused link.
func (r *Ring) Index() int {
	return r.idx
}

// HandleKey applies key and reports whether it moved focus. Keys pressed
// while focusedTag is INPUT or TEXTAREA are ignored.
func (r *Ring) HandleKey(key, focusedTag string) bool {
	if r.n == 0 {
		return false
	}
	switch focusedTag {
	case "INPUT", "TEXTAREA":
		return false
	}
	switch key {
	case "ArrowRight", "ArrowDown":
		r.idx = (r.idx + 1) % r.n
	case "ArrowLeft", "ArrowUp":
		r.idx = (r.idx - 1 + r.n) % r.n
	case "Home":
		r.idx = 0
	case "End":
		r.idx = r.n - 1
	default:
		return false
	}
	return true
}
