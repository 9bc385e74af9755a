package homepage

import (
	"log/slog"
	"slices"

	"github.com/nikbrunner/termhome/internal/kv"
	"github.com/nikbrunner/termhome/internal/logging"
	"github.com/nikbrunner/termhome/internal/prefs"
)

// Storage keys.
const (
	LayoutKey = "homepage-section-layout"
	LegacyKey = "homepage-section-order"
)

var unmeasured = Rect{Right: -1, Bottom: -1}

// Engine holds the live layout and the drag gesture in progress.
//
// It is not safe for concurrent use; the host calls it from its event loop.
type Engine struct {
	layoutVal prefs.Value[Layout]
	legacyVal prefs.Value[[]SectionID]
	log       *slog.Logger

	available []SectionID
	layout    Layout
	session   DragSession

	leftBounds  Rect
	rightBounds Rect
	stacked     bool
}

// New creates an Engine persisting to store. A nil log uses the
// "homepage" component logger.
func New(store kv.Store, log *slog.Logger) *Engine {
	if log == nil {
		log = logging.New("homepage")
	}
	return &Engine{
		layoutVal: prefs.NewValue[Layout](store, LayoutKey, log),
		legacyVal: prefs.NewValue[[]SectionID](store, LegacyKey, log),
		log:       log,

		leftBounds:  unmeasured,
		rightBounds: unmeasured,
	}
}

// Layout returns a copy of the current layout.
func (e *Engine) Layout() Layout {
	return e.layout.Clone()
}

// Session returns the drag gesture in progress.
func (e *Engine) Session() DragSession {
	return e.session
}

// Initialize resolves the layout for the given available sections, trying
// the saved layout, then the legacy order, then the default split. Unusable
// stored values fall through to the next step. The result is persisted when
// it holds any section.
func (e *Engine) Initialize(available []SectionID) Layout {
	e.available = dedupe(available)
	e.session = DragSession{}

	var migrated bool
	e.layout, migrated = e.resolve(e.available)

	if e.layout.Empty() {
		return e.Layout()
	}
	// The legacy record goes only once its replacement is stored.
	if err := e.layoutVal.Save(e.layout); err == nil && migrated {
		_ = e.legacyVal.Delete()
		e.log.Info("migrated legacy section order", "left", len(e.layout.Left), "right", len(e.layout.Right))
	}
	return e.Layout()
}

// Peek resolves the layout Initialize would produce for available without
// storing it, migrating the legacy record or changing the engine's state.
func (e *Engine) Peek(available []SectionID) Layout {
	l, _ := e.resolve(dedupe(available))
	return l
}

func (e *Engine) resolve(available []SectionID) (l Layout, migrated bool) {
	if saved, ok := e.layoutVal.Load(); ok {
		return restore(saved, available), false
	}
	if order, ok := e.legacyVal.Load(); ok {
		return migrate(order, available), true
	}
	return defaultLayout(available), false
}

// Reset forgets the saved arrangement and returns to the default split.
func (e *Engine) Reset() Layout {
	_ = e.layoutVal.Delete()
	_ = e.legacyVal.Delete()
	return e.Initialize(e.available)
}

// SetColumnBounds records where the two column containers are on screen.
func (e *Engine) SetColumnBounds(left, right Rect) {
	e.leftBounds, e.rightBounds = left, right
}

// SetStacked records whether the columns are stacked vertically. While
// stacked, sections cannot move between columns.
func (e *Engine) SetStacked(stacked bool) {
	e.stacked = stacked
}

// Stacked reports the last value passed to SetStacked.
func (e *Engine) Stacked() bool {
	return e.stacked
}

// OnDragStart begins dragging id.
func (e *Engine) OnDragStart(id SectionID) DragSession {
	e.session = DragSession{DraggingID: id}
	return e.session
}

// OnDragOverSection records that the pointer is over section id in column.
func (e *Engine) OnDragOverSection(id SectionID, column Column) DragSession {
	if !e.session.Active() || id == e.session.DraggingID {
		return e.session
	}
	if e.stacked && column != e.layout.ColumnOf(e.session.DraggingID) {
		return e.session
	}
	e.session.DragOverID = id
	e.session.DragOverColumn = column
	return e.session
}

// OnDragOverColumn records that the pointer is over column, provided the
// pointer's x position agrees with the measured column bounds.
func (e *Engine) OnDragOverColumn(column Column, x int) DragSession {
	if !e.session.Active() {
		return e.session
	}
	if ResolveColumn(x, e.leftBounds, e.rightBounds) == column {
		e.session.DragOverColumn = column
	}
	return e.session
}

// OnDragLeave clears the hovered section once the pointer is outside the
// bounds of the section it was over.
func (e *Engine) OnDragLeave(bounds Rect, x, y int) DragSession {
	if !bounds.Contains(x, y) {
		e.session.DragOverID = ""
	}
	return e.session
}

// OnColumnDragLeave clears the hovered section and column once the pointer
// is outside the column's bounds.
func (e *Engine) OnColumnDragLeave(bounds Rect, x, y int) DragSession {
	if !bounds.Contains(x, y) {
		e.session.DragOverID = ""
		e.session.DragOverColumn = None
	}
	return e.session
}

// OnDragEnd applies the gesture, persists a changed layout and ends the
// session. A failed write is logged; the new layout stays in effect.
func (e *Engine) OnDragEnd() Layout {
	session := e.session
	e.session = DragSession{}

	next, changed := Reduce(e.layout, session)
	if !changed {
		if session.Active() {
			e.log.Debug("drag cancelled", "section", session.DraggingID)
		}
		return e.Layout()
	}

	e.layout = next.Clone()
	e.log.Debug("section moved",
		"section", session.DraggingID,
		"column", e.layout.ColumnOf(session.DraggingID).String(),
	)
	_ = e.layoutVal.Save(e.layout)
	return e.Layout()
}

// Flags reports the visual drag state of id.
func (e *Engine) Flags(id SectionID) (isDragging, isDragOver bool) {
	isDragging = e.session.Active() && e.session.DraggingID == id
	isDragOver = !isDragging && e.session.DragOverID != "" && e.session.DragOverID == id
	return isDragging, isDragOver
}

// restore filters a saved layout to the available sections and appends
// newly available ones to the left column.
func restore(saved Layout, available []SectionID) Layout {
	seen := make(map[SectionID]bool, len(available))
	keep := func(seq []SectionID) []SectionID {
		out := []SectionID{}
		for _, id := range seq {
			if seen[id] || !slices.Contains(available, id) {
				continue
			}
			seen[id] = true
			out = append(out, id)
		}
		return out
	}

	l := Layout{Left: keep(saved.Left), Right: keep(saved.Right)}
	for _, id := range available {
		if !seen[id] {
			l.Left = append(l.Left, id)
		}
	}
	return l
}

// migrate converts a legacy flat order into two columns, the left column
// taking the larger half.
func migrate(order []SectionID, available []SectionID) Layout {
	all := restore(Layout{Left: order}, available).Left
	mid := (len(all) + 1) / 2
	return Layout{
		Left:  append([]SectionID{}, all[:mid]...),
		Right: append([]SectionID{}, all[mid:]...),
	}
}

func defaultLayout(available []SectionID) Layout {
	return restore(Layout{Left: defaultLeft, Right: defaultRight}, available)
}

func dedupe(ids []SectionID) []SectionID {
	out := make([]SectionID, 0, len(ids))
	for _, id := range ids {
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
