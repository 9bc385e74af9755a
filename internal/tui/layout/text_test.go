package layout

import "testing"

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no ANSI", "hello", "hello"},
		{"bold", "\x1b[1mhello\x1b[0m", "hello"},
		{"color", "\x1b[31mred\x1b[0m", "red"},
		{"mixed", "normal \x1b[1;4mbold underline\x1b[0m normal", "normal bold underline normal"},
		{"empty", "", ""},
		{"only ANSI", "\x1b[1m\x1b[0m", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripANSI(tt.input)
			if got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestVisibleLength(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"plain text", "hello", 5},
		{"with ANSI bold", "\x1b[1mhello\x1b[0m", 5},
		{"grip glyphs", "⋮⋮ XKCD", 7},
		{"wide runes", "こんにちは", 10},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleLength(tt.input)
			if got != tt.want {
				t.Errorf("VisibleLength(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateText(t *testing.T) {
	cfg := DefaultConfig().Text

	tests := []struct {
		name      string
		text      string
		maxWidth  int
		want      string
		truncated bool
	}{
		{"no truncation needed", "hello", 10, "hello", false},
		{"exact length", "hello", 5, "hello", false},
		{"needs truncation", "hello world", 8, "hello...", true},
		{"very short max", "hello", 3, "...", true},
		{"max is 2", "hello", 2, "..", true},
		{"max is 0", "hello", 0, "", true},
		{"empty string", "", 10, "", false},
		{"wide runes", "こんにちは", 7, "こん...", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := TruncateText(tt.text, tt.maxWidth, cfg)
			if got != tt.want || truncated != tt.truncated {
				t.Errorf("TruncateText(%q, %d) = (%q, %v), want (%q, %v)",
					tt.text, tt.maxWidth, got, truncated, tt.want, tt.truncated)
			}
		})
	}
}

func TestTruncateText_KeepsStyling(t *testing.T) {
	cfg := DefaultConfig().Text

	got, truncated := TruncateText("\x1b[1mhello world\x1b[0m", 8, cfg)
	if !truncated {
		t.Fatal("expected truncation")
	}
	if StripANSI(got) != "hello..." {
		t.Errorf("visible text = %q, want %q", StripANSI(got), "hello...")
	}
	if VisibleLength(got) != 8 {
		t.Errorf("visible length = %d, want 8", VisibleLength(got))
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"ab", 4, "ab  "},
		{"abcd", 4, "abcd"},
		{"abcdef", 4, "abcdef"},
		{"", 2, "  "},
	}

	for _, tt := range tests {
		if got := PadRight(tt.input, tt.width); got != tt.want {
			t.Errorf("PadRight(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
		}
	}
}

func TestMarquee(t *testing.T) {
	cfg := TickerConfig{Separator: " | "}

	tests := []struct {
		name   string
		text   string
		width  int
		offset int
		want   string
	}{
		{"start", "abc", 5, 0, "abc |"},
		{"scrolled", "abc", 5, 4, "| abc"},
		{"wraps around", "abc", 5, 6, "abc |"},
		{"wider than loop repeats", "ab", 8, 0, "ab | ab "},
		{"negative offset", "abc", 3, -1, " ab"},
		{"empty text is blank", "", 3, 7, "   "},
		{"zero width", "abc", 0, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Marquee(tt.text, tt.width, tt.offset, cfg)
			if got != tt.want {
				t.Errorf("Marquee(%q, %d, %d) = %q, want %q", tt.text, tt.width, tt.offset, got, tt.want)
			}
		})
	}
}
