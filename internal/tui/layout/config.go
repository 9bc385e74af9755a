package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Columns ColumnConfig
	Modal   ModalConfig
	Input   InputConfig
	Text    TextConfig
	Ticker  TickerConfig
}

// ColumnConfig holds section column dimension configuration.
type ColumnConfig struct {
	// StackBreakpoint is the terminal width below which the two columns
	// are rendered one above the other.
	StackBreakpoint int

	// PaddingX is the app padding on each side of the columns.
	PaddingX int

	// Gap is the number of cells between the left and right column.
	Gap int

	// StackGap is the number of blank rows between stacked columns.
	StackGap int

	// MinWidth is the minimum width of a column.
	MinWidth int

	// HeightReduction is subtracted from terminal height for the column viewport.
	// Accounts for: app padding (1) + help bar (2) + status line (1) = 4
	HeightReduction int

	// MinHeight is the minimum column viewport height.
	MinHeight int

	// BoxChrome is subtracted from the column width for section content.
	// Accounts for box border (2) + box padding (2).
	BoxChrome int
}

// ModalConfig holds overlay configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the overlay width as percentage of terminal width.
	DefaultWidthPercent int

	// MinWidth is the minimum overlay width in characters.
	MinWidth int

	// MaxWidth is the maximum overlay width in characters.
	MaxWidth int

	// HelpKeyColumnWidth: width for the key column of the help overlay.
	HelpKeyColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	CardCharLimit int
	CardWidth     int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// TickerConfig holds header ticker configuration.
type TickerConfig struct {
	// Separator is placed between marquee entries.
	Separator string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Columns: ColumnConfig{
			StackBreakpoint: 90,
			PaddingX:        2,
			Gap:             2,
			StackGap:        1,
			MinWidth:        20,
			HeightReduction: 4, // app padding (1) + help bar (2) + status line (1)
			MinHeight:       5,
			BoxChrome:       4,
		},
		Modal: ModalConfig{
			DefaultWidthPercent: 50,
			MinWidth:            40,
			MaxWidth:            70,
			HelpKeyColumnWidth:  14,
		},
		Input: InputConfig{
			CardCharLimit: 100,
			CardWidth:     30,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
		Ticker: TickerConfig{
			Separator: "  ///  ",
		},
	}
}
