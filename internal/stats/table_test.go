package stats

import "testing"

func TestTextTableAlignsColumns(t *testing.T) {
	table := newTextTable("Char", "Accuracy", "Correct").alignRight(1, 2)
	table.add("a", "97.50%", "12")
	table.add("z", "8.00%", "3")

	lines := table.lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Char Accuracy Correct" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "a      97.50%      12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "z       8.00%       3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestTextTableLeftAlignedLastColumnHasNoTrailingBlanks(t *testing.T) {
	table := newTextTable("Test", "Curve")
	table.add("1", ".:-=")
	table.add("2", ".")

	lines := table.lines()
	if lines[2] != "2    ." {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}
