package session

import "github.com/verte-zerg/raceme/internal/model"

// RowTolerance is the largest vertical distance, in layout units, between
// words placed on the same row.
const RowTolerance = 5

const (
	scrollRow      = 2
	scrollLookhead = 10
)

// Layout reports where rendered words sit on screen.
type Layout interface {
	// WordTop returns the vertical position of the word at index in layout
	// units, or false when that word is not rendered.
	WordTop(index int) (int, bool)
}

// Scroll slides the visible window forward when the cursor's word has
// wrapped onto the third displayed row, so that one full row leaves the top
// and the cursor's row becomes the second. It only runs once a character of
// the current word has been typed and reports whether the offset moved.
func (s *Session) Scroll(layout Layout) bool {
	if s.phase == model.PhaseFinished || s.cursor.Char == 0 {
		return false
	}
	rows := assignRows(layout, s.offset, s.cursor.Word+scrollLookhead)
	current, ok := rows[s.cursor.Word]
	if !ok || current < scrollRow {
		return false
	}
	for i := s.offset; i < s.cursor.Word; i++ {
		if row, ok := rows[i]; ok && row >= 1 {
			if i <= s.offset {
				return false
			}
			s.offset = i
			return true
		}
	}
	return false
}

// assignRows clusters the rendered words in [from, to] into rows by their
// vertical position. Rows are numbered in order of first appearance.
func assignRows(layout Layout, from, to int) map[int]int {
	var tops []int
	rows := make(map[int]int, to-from+1)
	for i := from; i <= to; i++ {
		top, ok := layout.WordTop(i)
		if !ok {
			continue
		}
		row := -1
		for r, y := range tops {
			if abs(y-top) < RowTolerance {
				row = r
				break
			}
		}
		if row == -1 {
			row = len(tops)
			tops = append(tops, top)
		}
		rows[i] = row
	}
	return rows
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
