package layout

import "testing"

func TestCalculateColumns(t *testing.T) {
	cfg := DefaultConfig().Columns

	tests := []struct {
		name          string
		terminalWidth int
		want          ColumnLayout
	}{
		{"wide terminal", 120, ColumnLayout{Width: 57, LeftX: 2, RightX: 61}}, // (120-4-2)/2 = 57
		{"at breakpoint", 90, ColumnLayout{Width: 42, LeftX: 2, RightX: 46}},  // (90-4-2)/2 = 42
		{"below breakpoint stacks", 89, ColumnLayout{Stacked: true, Width: 85, LeftX: 2, RightX: 2}},
		{"tiny terminal enforces min", 10, ColumnLayout{Stacked: true, Width: 20, LeftX: 2, RightX: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateColumns(tt.terminalWidth, cfg)
			if got != tt.want {
				t.Errorf("CalculateColumns(%d) = %+v, want %+v", tt.terminalWidth, got, tt.want)
			}
		})
	}
}

func TestCalculateColumns_CustomBreakpoint(t *testing.T) {
	cfg := DefaultConfig().Columns
	cfg.StackBreakpoint = 0

	got := CalculateColumns(60, cfg)
	if got.Stacked {
		t.Fatalf("breakpoint 0 should never stack, got %+v", got)
	}
	if got.Width != 27 { // (60-4-2)/2
		t.Errorf("Width = %d, want 27", got.Width)
	}
}

func TestCalculateViewportHeight(t *testing.T) {
	cfg := DefaultConfig().Columns

	tests := []struct {
		name           string
		terminalHeight int
		headerLines    int
		want           int
	}{
		{"normal terminal", 24, 4, 16},            // 24 - 4 - 4
		{"no tickers", 24, 2, 18},                 // 24 - 4 - 2
		{"small terminal enforces min", 10, 4, 5}, // 10 - 4 - 4 = 2, min 5
		{"header larger than terminal", 3, 10, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateViewportHeight(tt.terminalHeight, tt.headerLines, cfg)
			if got != tt.want {
				t.Errorf("CalculateViewportHeight(%d, %d) = %d, want %d",
					tt.terminalHeight, tt.headerLines, got, tt.want)
			}
		})
	}
}

func TestCalculateContentWidth(t *testing.T) {
	cfg := DefaultConfig().Columns

	tests := []struct {
		columnWidth int
		want        int
	}{
		{57, 53},
		{20, 16},
		{4, 1},
		{0, 1},
	}

	for _, tt := range tests {
		got := CalculateContentWidth(tt.columnWidth, cfg)
		if got != tt.want {
			t.Errorf("CalculateContentWidth(%d) = %d, want %d", tt.columnWidth, got, tt.want)
		}
	}
}

func TestClampScroll(t *testing.T) {
	tests := []struct {
		name                   string
		offset, total, visible int
		want                   int
	}{
		{"fits entirely", 3, 10, 20, 0},
		{"within range", 3, 30, 10, 3},
		{"past end", 25, 30, 10, 20},
		{"negative", -2, 30, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampScroll(tt.offset, tt.total, tt.visible)
			if got != tt.want {
				t.Errorf("ClampScroll(%d, %d, %d) = %d, want %d",
					tt.offset, tt.total, tt.visible, got, tt.want)
			}
		})
	}
}

func TestScrollToReveal(t *testing.T) {
	tests := []struct {
		name                string
		offset, top, bottom int
		visible             int
		want                int
	}{
		{"already visible", 0, 2, 5, 10, 0},
		{"above viewport", 10, 4, 6, 10, 4},
		{"below viewport", 0, 12, 14, 10, 5}, // 14 - 10 + 1
		{"taller than viewport", 0, 12, 30, 10, 12},
		{"touching bottom edge", 0, 5, 9, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScrollToReveal(tt.offset, tt.top, tt.bottom, tt.visible)
			if got != tt.want {
				t.Errorf("ScrollToReveal(%d, %d, %d, %d) = %d, want %d",
					tt.offset, tt.top, tt.bottom, tt.visible, got, tt.want)
			}
		})
	}
}
