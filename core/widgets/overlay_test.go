package widgets

import (
	"fmt"
	"strings"
	"testing"
)

func TestOverlayKeepsUncoveredRows(t *testing.T) {
	rows := make([]string, 9)
	for i := range rows {
		rows[i] = fmt.Sprintf("row-%d...............", i)
	}
	out := Overlay(strings.Join(rows, "\n"), Popup{Body: "Keys"}, 20, 9)
	lines := strings.Split(out, "\n")
	if len(lines) != 9 {
		t.Fatalf("line count = %d, want 9", len(lines))
	}
	if !strings.Contains(out, "Keys") {
		t.Fatalf("expected popup body in output")
	}
	if !strings.Contains(lines[0], "row-0") || !strings.Contains(lines[8], "row-8") {
		t.Fatalf("expected first and last base rows preserved:\n%s", out)
	}
}

func TestOverlayPadsShortBase(t *testing.T) {
	out := Overlay("x", Popup{Title: "Help", Body: "a"}, 30, 8)
	lines := strings.Split(out, "\n")
	if len(lines) != 8 {
		t.Fatalf("line count = %d, want 8", len(lines))
	}
	if !strings.Contains(out, "Help") {
		t.Fatalf("expected title in output")
	}
}

func TestOverlayZeroSize(t *testing.T) {
	if got := Overlay("base", Popup{Body: "x"}, 0, 5); got != "" {
		t.Fatalf("Overlay = %q, want empty", got)
	}
}
