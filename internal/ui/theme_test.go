package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestGetTheme(t *testing.T) {
	for _, name := range ThemeNames() {
		if got := GetTheme(name).Name; got != name {
			t.Fatalf("GetTheme(%q).Name = %q, want %q", name, got, name)
		}
	}
	if got := GetTheme("Unknown").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(unknown).Name = %q, want the Nightfox fallback", got)
	}
}

func TestNextTheme(t *testing.T) {
	tests := []struct {
		current string
		want    string
	}{
		{"Nightfox", "Kanagawa"},
		{"Kanagawa", "Slate"},
		{"Slate", "Nightfox"},
		{"Unknown", "Nightfox"},
	}
	for _, tt := range tests {
		if got := NextTheme(tt.current); got != tt.want {
			t.Fatalf("NextTheme(%q) = %q, want %q", tt.current, got, tt.want)
		}
	}
}

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	want := []string{"Nightfox", "Kanagawa", "Slate"}
	if len(names) != len(want) {
		t.Fatalf("ThemeNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("ThemeNames()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestAccountStyleColors(t *testing.T) {
	th := GetTheme("Nightfox")
	styles := th.Styles()

	chip := styles.AccountStyle("checking")
	if got := chip.GetBackground(); got != lipgloss.Color(th.AccountColors["checking"]) {
		t.Fatalf("checking chip background = %v, want %v", got, th.AccountColors["checking"])
	}
	if got := chip.GetForeground(); got != lipgloss.Color(th.Background) {
		t.Fatalf("checking chip foreground = %v, want the theme background", got)
	}

	unknown := styles.AccountStyle("margin")
	if got := unknown.GetBackground(); got != lipgloss.Color(th.Muted) {
		t.Fatalf("unknown chip background = %v, want the muted fallback", got)
	}
}
