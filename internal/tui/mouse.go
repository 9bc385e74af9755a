package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/termhome/internal/homepage"
)

const wheelStep = 3

// handleMouse maps mouse press, motion and release onto the engine's drag
// gesture. Press on a grip starts a drag; press on a toggle collapses.
func (a App) handleMouse(msg tea.MouseMsg) (App, tea.Cmd) {
	if a.showHelp {
		return a, nil
	}

	x, y := a.bodyPoint(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.scrollBy(-wheelStep)
		case tea.MouseButtonWheelDown:
			a.scrollBy(wheelStep)
		case tea.MouseButtonLeft:
			if a.inViewport(msg.Y) {
				a.press(x, y)
			}
		}

	case tea.MouseActionMotion:
		if a.engine.Session().Active() {
			a.dragOver(x, y)
		}

	case tea.MouseActionRelease:
		if a.engine.Session().Active() {
			a.drop()
		}
	}

	return a, nil
}

// bodyPoint converts terminal coordinates to body coordinates.
func (a App) bodyPoint(x, y int) (int, int) {
	return x, y - a.bodyTop() + a.scroll
}

// inViewport reports whether terminal row y shows part of the body.
func (a App) inViewport(y int) bool {
	row := y - a.bodyTop()
	return row >= 0 && row < a.viewportHeight()
}

func (a *App) press(x, y int) {
	p, ok := a.arr.at(x, y)
	if !ok {
		return
	}
	a.focus = p.ID

	switch {
	case p.Toggle.Contains(x, y):
		a.toggleCollapse(p.ID)
	case p.Grip.Contains(x, y):
		a.engine.OnDragStart(p.ID)
		a.setStatus("")
	}
}

// dragOver replays what a pointer crossing the page reports: leave events
// for the previous target, then over events for whatever is under the
// pointer now.
func (a *App) dragOver(x, y int) {
	s := a.engine.Session()
	if s.DragOverID != "" {
		if p, ok := a.arr.find(s.DragOverID); ok {
			a.engine.OnDragLeave(p.Bounds, x, y)
		}
	}
	if s.DragOverColumn != homepage.None {
		a.engine.OnColumnDragLeave(a.arr.columnRect(s.DragOverColumn), x, y)
	}

	if p, ok := a.arr.at(x, y); ok {
		a.engine.OnDragOverSection(p.ID, p.Column)
	}
	if col := a.arr.columnAt(x, y); col != homepage.None {
		a.engine.OnDragOverColumn(col, x)
	}
}

func (a *App) drop() {
	dragged := a.engine.Session().DraggingID
	before := a.engine.Layout()
	after := a.engine.OnDragEnd()

	if after.Equal(before) {
		a.setStatus("Move cancelled")
		return
	}
	a.focus = dragged
	a.setStatus("Layout saved")
}
