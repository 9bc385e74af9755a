package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/termhome/internal/homepage"
	"github.com/nikbrunner/termhome/internal/section"
	"github.com/nikbrunner/termhome/internal/tui/layout"
)

const grip = "⋮⋮"

// placement records where a section box landed in the body. X is the
// terminal column; Y is the row from the top of the unscrolled body.
type placement struct {
	ID     homepage.SectionID
	Column homepage.Column
	Bounds homepage.Rect
	Grip   homepage.Rect // top border and header row, minus the toggle
	Toggle homepage.Rect // the [-]/[+] control
}

func newPlacement(id homepage.SectionID, col homepage.Column, x, y, width, height int) placement {
	// Toggle is the last three content cells, inside padding and border.
	toggleRight := x + width - 3
	toggleLeft := toggleRight - 2
	return placement{
		ID:     id,
		Column: col,
		Bounds: homepage.Rect{Left: x, Top: y, Right: x + width - 1, Bottom: y + height - 1},
		Grip:   homepage.Rect{Left: x, Top: y, Right: toggleLeft - 1, Bottom: y + 1},
		Toggle: homepage.Rect{Left: toggleLeft, Top: y + 1, Right: toggleRight, Bottom: y + 1},
	}
}

// arrangement is the measured body: both columns rendered, with the
// geometry needed for hit testing and for the engine's column bounds.
type arrangement struct {
	columns layout.ColumnLayout
	left    homepage.Rect
	right   homepage.Rect
	boxes   []placement
	lines   []string
}

// find returns the placement of id.
func (r arrangement) find(id homepage.SectionID) (placement, bool) {
	for _, p := range r.boxes {
		if p.ID == id {
			return p, true
		}
	}
	return placement{}, false
}

// at returns the section box containing the point.
func (r arrangement) at(x, y int) (placement, bool) {
	for _, p := range r.boxes {
		if p.Bounds.Contains(x, y) {
			return p, true
		}
	}
	return placement{}, false
}

// columnAt returns the column whose area contains the point.
func (r arrangement) columnAt(x, y int) homepage.Column {
	switch {
	case r.left.Contains(x, y):
		return homepage.Left
	case r.right.Contains(x, y):
		return homepage.Right
	default:
		return homepage.None
	}
}

// columnRect returns the area of column c.
func (r arrangement) columnRect(c homepage.Column) homepage.Rect {
	if c == homepage.Right {
		return r.right
	}
	return r.left
}

// height returns the number of body rows.
func (r arrangement) height() int {
	return len(r.lines)
}

// arrange renders both columns at the current width and measures them.
func (a App) arrange() arrangement {
	cfg := a.layoutConfig.Columns
	cols := layout.CalculateColumns(a.width, cfg)
	lay := a.engine.Layout()
	d := a.dispatcher()

	left, leftBoxes := a.renderColumn(d, lay.Left, homepage.Left, cols.LeftX, 0, cols.Width)
	leftHeight := lipgloss.Height(left)

	rightTop := 0
	if cols.Stacked {
		rightTop = leftHeight + cfg.StackGap
	}
	right, rightBoxes := a.renderColumn(d, lay.Right, homepage.Right, cols.RightX, rightTop, cols.Width)
	rightHeight := lipgloss.Height(right)

	r := arrangement{
		columns: cols,
		boxes:   append(leftBoxes, rightBoxes...),
	}

	var body string
	if cols.Stacked {
		blocks := []string{left}
		for range cfg.StackGap {
			blocks = append(blocks, "")
		}
		blocks = append(blocks, right)
		body = lipgloss.JoinVertical(lipgloss.Left, blocks...)

		r.left = homepage.Rect{Left: cols.LeftX, Top: 0, Right: cols.LeftX + cols.Width - 1, Bottom: leftHeight - 1}
		r.right = homepage.Rect{Left: cols.RightX, Top: rightTop, Right: cols.RightX + cols.Width - 1, Bottom: rightTop + rightHeight - 1}
	} else {
		gap := strings.Repeat(" ", cfg.Gap)
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, gap, right)

		// Both columns reach the bottom of the taller one so the space
		// below a short column still accepts drops.
		bottom := max(leftHeight, rightHeight) - 1
		r.left = homepage.Rect{Left: cols.LeftX, Top: 0, Right: cols.LeftX + cols.Width - 1, Bottom: bottom}
		r.right = homepage.Rect{Left: cols.RightX, Top: 0, Right: cols.RightX + cols.Width - 1, Bottom: bottom}
	}

	r.lines = strings.Split(body, "\n")
	return r
}

// renderColumn renders the sections of one column from top downward.
func (a App) renderColumn(d section.Dispatcher, ids []homepage.SectionID, col homepage.Column, x, top, width int) (string, []placement) {
	var blocks []string
	var boxes []placement

	y := top
	for _, id := range ids {
		sec := d.Resolve(id)
		if sec == nil {
			continue
		}
		box := a.renderSection(*sec, width)
		height := lipgloss.Height(box)
		boxes = append(boxes, newPlacement(id, col, x, y, width, height))
		blocks = append(blocks, box)
		y += height
	}

	if len(blocks) == 0 {
		blocks = append(blocks, a.renderPlaceholder(col, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...), boxes
}

// renderSection renders one bordered section box: the grip header with the
// section icon and the collapse toggle, then the body unless collapsed.
func (a App) renderSection(sec section.Section, width int) string {
	inner := layout.CalculateContentWidth(width, a.layoutConfig.Columns)
	collapsed := a.collapsed[sec.ID]

	toggle := "[-]"
	if collapsed {
		toggle = "[+]"
	}

	lead := a.styles.Grip.Render(grip) + " "
	if sec.Icon != "" {
		lead += a.styles.SectionIcon.Render(sec.Icon) + " "
	}

	titleWidth := inner - len(toggle) - 1 - layout.VisibleLength(lead)
	title, _ := layout.TruncateText(sec.Title, titleWidth, a.layoutConfig.Text)

	head := lead + a.styles.SectionTitle.Render(title)
	head = layout.PadRight(head, inner-len(toggle)) + a.styles.Toggle.Render(toggle)

	content := head
	if !collapsed {
		content += "\n" + a.styles.Body.Render(sec.Body)
	}

	return a.sectionStyle(sec.ID).Width(width - 2).Render(content)
}

func (a App) sectionStyle(id homepage.SectionID) lipgloss.Style {
	dragging, over := a.engine.Flags(id)
	switch {
	case dragging:
		return a.styles.SectionDragging
	case over:
		return a.styles.SectionDragOver
	case id == a.focus:
		return a.styles.SectionFocused
	default:
		return a.styles.Section
	}
}

// renderPlaceholder renders the drop area shown in an empty column.
func (a App) renderPlaceholder(col homepage.Column, width int) string {
	style := a.styles.Placeholder
	s := a.engine.Session()
	if s.Active() && s.DragOverColumn == col && s.DragOverID == "" {
		style = a.styles.SectionDragOver
	}
	return style.Width(width - 2).Render(a.styles.Empty.Render("drop sections here"))
}
