package ui

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		limit int
		want  string
	}{
		{"no limit trims only", "  hello  ", 0, "hello"},
		{"fits", "hello", 10, "hello"},
		{"cut with ellipsis", "hello world", 8, "hello..."},
		{"tight limit", "hello", 2, "he"},
		{"unicode runes", "héllo wörld", 8, "héllo..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.value, tt.limit); got != tt.want {
				t.Fatalf("truncate(%q, %d) = %q, want %q", tt.value, tt.limit, got, tt.want)
			}
		})
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"groceries", "Groceries"},
		{"dining_out", "Dining Out"},
		{"RENT", "Rent"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := titleCase(tt.value); got != tt.want {
			t.Fatalf("titleCase(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		name  string
		value string
		width int
		want  string
	}{
		{"pads", "ab", 5, "ab   "},
		{"already wide", "abcdef", 3, "abcdef"},
		{"zero width", "ab", 0, "ab"},
		{"unicode runes", "é", 3, "é  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := padRight(tt.value, tt.width); got != tt.want {
				t.Fatalf("padRight(%q, %d) = %q, want %q", tt.value, tt.width, got, tt.want)
			}
		})
	}
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"one\ntwo", "one"},
		{"with\r\ncarriage", "with"},
		{"  spaced  ", "spaced"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := firstLine(tt.value); got != tt.want {
			t.Fatalf("firstLine(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestListWindow(t *testing.T) {
	tests := []struct {
		name      string
		length    int
		cursor    int
		rows      int
		wantStart int
		wantEnd   int
	}{
		{"everything fits", 5, 0, 10, 0, 5},
		{"cursor at top", 10, 0, 4, 0, 4},
		{"cursor mid-list", 10, 5, 4, 2, 6},
		{"cursor at bottom", 10, 9, 4, 6, 10},
		{"empty list", 0, 0, 4, 0, 0},
		{"zero rows shows all", 7, 3, 0, 0, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := listWindow(tt.length, tt.cursor, tt.rows)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Fatalf("listWindow(%d, %d, %d) = %d, %d, want %d, %d",
					tt.length, tt.cursor, tt.rows, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}
