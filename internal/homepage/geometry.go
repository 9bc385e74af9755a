package homepage

// Rect is a screen region in cell coordinates. All four edges are inclusive.
type Rect struct {
	Left, Top, Right, Bottom int
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.Right < r.Left || r.Bottom < r.Top
}

// ContainsX reports whether x falls within r's horizontal span.
func (r Rect) ContainsX(x int) bool {
	return !r.Empty() && x >= r.Left && x <= r.Right
}

// Contains reports whether (x, y) falls within r.
func (r Rect) Contains(x, y int) bool {
	return r.ContainsX(x) && y >= r.Top && y <= r.Bottom
}

func (r Rect) overlapsX(o Rect) bool {
	return r.Left <= o.Right && o.Left <= r.Right
}

// ResolveColumn returns the column whose horizontal span contains x, testing
// left first. It returns None when neither does, when either rect is empty,
// or when the columns share horizontal space because they are stacked.
func ResolveColumn(x int, left, right Rect) Column {
	if left.Empty() || right.Empty() || left.overlapsX(right) {
		return None
	}
	if left.ContainsX(x) {
		return Left
	}
	if right.ContainsX(x) {
		return Right
	}
	return None
}
