package stats

import (
	"strings"
	"testing"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Date", "Time", "Club"}
	rows := [][]string{
		{"15/01/2023", "1:09.50", "CN Lugo"},
		{"--", "58.12", "Náutico Ñ"},
	}
	rightAlign := map[int]bool{1: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Date          Time Club" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "15/01/2023 1:09.50 CN Lugo" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "--           58.12 Náutico Ñ" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableClipsLongCells(t *testing.T) {
	long := strings.Repeat("x", maxCellWidth+10)
	lines := formatTable([]string{"Venue"}, [][]string{{long}}, nil)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if w := displayWidth(lines[1]); w != maxCellWidth {
		t.Fatalf("expected clipped width %d, got %d", maxCellWidth, w)
	}
	if !strings.HasSuffix(lines[1], "…") {
		t.Fatalf("expected ellipsis, got %q", lines[1])
	}
}
