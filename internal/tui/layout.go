package tui

import (
	"github.com/mattn/go-runewidth"
)

// rowUnits is the height of one terminal line in layout units. It is larger
// than session.RowTolerance so adjacent lines never cluster together.
const rowUnits = 10

// wordLayout places the visible words on wrapped terminal lines.
type wordLayout struct {
	offset int
	lines  []int
}

// layoutWords wraps words greedily into lines of at most width cells. Each
// word takes its own width plus one gap cell, which also holds the caret
// once the word is fully typed.
func layoutWords(offset int, words []string, width int) wordLayout {
	if width < 1 {
		width = 1
	}
	lines := make([]int, len(words))
	line, used := 0, 0
	for i, word := range words {
		cells := runewidth.StringWidth(word) + 1
		if used > 0 && used+cells > width {
			line++
			used = 0
		}
		lines[i] = line
		used += cells
	}
	return wordLayout{offset: offset, lines: lines}
}

// WordTop implements session.Layout.
func (l wordLayout) WordTop(index int) (int, bool) {
	i := index - l.offset
	if i < 0 || i >= len(l.lines) {
		return 0, false
	}
	return l.lines[i] * rowUnits, true
}

// line returns the wrapped line of the word at index.
func (l wordLayout) line(index int) (int, bool) {
	i := index - l.offset
	if i < 0 || i >= len(l.lines) {
		return 0, false
	}
	return l.lines[i], true
}
