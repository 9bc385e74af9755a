// Package homepage owns the two-column arrangement of homepage sections:
// restoring it from storage, migrating the legacy single-list format, and
// turning drag gestures into a new arrangement.
package homepage

import "slices"

// SectionID names a homepage section.
type SectionID string

// Known sections, in catalogue order.
const (
	LatestLogs   SectionID = "latest-logs"
	SystemStatus SectionID = "system-status"
	QuickAccess  SectionID = "quick-access"
	APIWidget    SectionID = "api-widget"
	XKCD         SectionID = "xkcd"
)

// Catalogue lists every known section in default display order.
var Catalogue = []SectionID{LatestLogs, SystemStatus, QuickAccess, APIWidget, XKCD}

var (
	defaultLeft  = []SectionID{LatestLogs, SystemStatus, QuickAccess}
	defaultRight = []SectionID{APIWidget, XKCD}
)

// Column identifies one of the two columns.
type Column int

const (
	None Column = iota
	Left
	Right
)

func (c Column) String() string {
	switch c {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// Other returns the opposite column. None stays None.
func (c Column) Other() Column {
	switch c {
	case Left:
		return Right
	case Right:
		return Left
	default:
		return None
	}
}

// Layout is the persisted two-column arrangement.
//
// Every available section appears exactly once across Left and Right.
type Layout struct {
	Left  []SectionID `json:"left"`
	Right []SectionID `json:"right"`
}

// Column returns the sequence for c, or nil for None.
func (l Layout) Column(c Column) []SectionID {
	switch c {
	case Left:
		return l.Left
	case Right:
		return l.Right
	default:
		return nil
	}
}

// ColumnOf reports which column holds id.
func (l Layout) ColumnOf(id SectionID) Column {
	if slices.Contains(l.Left, id) {
		return Left
	}
	if slices.Contains(l.Right, id) {
		return Right
	}
	return None
}

// IDs returns all sections, left column first.
func (l Layout) IDs() []SectionID {
	return slices.Concat(l.Left, l.Right)
}

// Empty reports whether neither column holds a section.
func (l Layout) Empty() bool {
	return len(l.Left) == 0 && len(l.Right) == 0
}

// Equal reports whether both columns match element for element.
func (l Layout) Equal(o Layout) bool {
	return slices.Equal(l.Left, o.Left) && slices.Equal(l.Right, o.Right)
}

// Clone returns a deep copy with non-nil sequences, so the JSON encoding is
// always two arrays.
func (l Layout) Clone() Layout {
	return Layout{
		Left:  append([]SectionID{}, l.Left...),
		Right: append([]SectionID{}, l.Right...),
	}
}

func (l Layout) with(c Column, seq []SectionID) Layout {
	switch c {
	case Left:
		l.Left = seq
	case Right:
		l.Right = seq
	}
	return l
}

// DragSession is the state of one drag gesture. The zero value means no
// drag is in progress.
type DragSession struct {
	DraggingID     SectionID
	DragOverID     SectionID
	DragOverColumn Column
}

// Active reports whether a section is being dragged.
func (s DragSession) Active() bool {
	return s.DraggingID != ""
}
