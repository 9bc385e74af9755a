package layout

// ColumnLayout holds calculated column dimensions. X offsets are absolute
// terminal cells.
type ColumnLayout struct {
	Stacked bool
	Width   int // width of each column, borders included
	LeftX   int
	RightX  int
}

// CalculateColumns splits the terminal into the two section columns.
// Below the stack breakpoint both columns take the full inner width and
// share the same horizontal span.
func CalculateColumns(terminalWidth int, cfg ColumnConfig) ColumnLayout {
	inner := terminalWidth - 2*cfg.PaddingX

	if terminalWidth < cfg.StackBreakpoint {
		width := inner
		if width < cfg.MinWidth {
			width = cfg.MinWidth
		}
		return ColumnLayout{
			Stacked: true,
			Width:   width,
			LeftX:   cfg.PaddingX,
			RightX:  cfg.PaddingX,
		}
	}

	width := (inner - cfg.Gap) / 2
	if width < cfg.MinWidth {
		width = cfg.MinWidth
	}

	return ColumnLayout{
		Width:  width,
		LeftX:  cfg.PaddingX,
		RightX: cfg.PaddingX + width + cfg.Gap,
	}
}

// CalculateViewportHeight computes the rows available to the columns.
// Returns at least MinHeight.
func CalculateViewportHeight(terminalHeight, headerLines int, cfg ColumnConfig) int {
	height := terminalHeight - cfg.HeightReduction - headerLines
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculateContentWidth computes the width available inside a section box.
func CalculateContentWidth(columnWidth int, cfg ColumnConfig) int {
	width := columnWidth - cfg.BoxChrome
	if width < 1 {
		return 1
	}
	return width
}

// ClampScroll keeps a scroll offset within the scrollable range.
func ClampScroll(offset, total, viewportHeight int) int {
	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		return 0
	}
	return offset
}

// ScrollToReveal returns the offset that brings rows top..bottom into view
// with the least movement. A block taller than the viewport is aligned to
// its top row.
func ScrollToReveal(offset, top, bottom, viewportHeight int) int {
	if top < offset || bottom-top+1 > viewportHeight {
		return top
	}
	if bottom >= offset+viewportHeight {
		return bottom - viewportHeight + 1
	}
	return offset
}
