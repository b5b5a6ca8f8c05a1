// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/raceme/internal/model"
)

const sparkChars = " .:-=+*#%@"

// charsPerWord is the standard word length used for WPM.
const charsPerWord = 5.0

// WPM computes words per minute from correct characters typed over seconds.
func WPM(correct, seconds int) float64 {
	if seconds <= 0 {
		return 0
	}
	return float64(correct) / charsPerWord * 60 / float64(seconds)
}

// Accuracy returns the rounded percentage of correct keystrokes, or 0 when
// nothing was typed.
func Accuracy(correct, incorrect int) int {
	den := correct + incorrect
	if den == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(den) * 100))
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Curve smooths per-second samples into a sparkline.
func Curve(samples []float64) string {
	return Sparkline(MovingAverage(samples, 3))
}

// RenderSummary prints a summary block and a per-test table.
func RenderSummary(w io.Writer, results []model.Result) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "No finished tests.")
		return err
	}
	var totalWPM, totalAcc float64
	bestWPM := 0
	for _, r := range results {
		totalWPM += float64(r.WPM)
		totalAcc += float64(r.Accuracy)
		if r.WPM > bestWPM {
			bestWPM = r.WPM
		}
	}
	count := float64(len(results))
	_, err := fmt.Fprintf(w, "Summary\nTests: %d\nAvg WPM: %.2f\nBest WPM: %d\nAvg Accuracy: %.2f%%\n\n",
		len(results), totalWPM/count, bestWPM, totalAcc/count)
	if err != nil {
		return err
	}

	table := newTextTable("Test", "WPM", "Accuracy", "Correct", "Incorrect", "Words", "Curve").
		alignRight(0, 1, 2, 3, 4, 5)
	for i, r := range results {
		table.add(
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.WPM),
			fmt.Sprintf("%d%%", r.Accuracy),
			fmt.Sprintf("%d", r.Stats.CorrectChars),
			fmt.Sprintf("%d", r.Stats.IncorrectChars),
			fmt.Sprintf("%d", r.Stats.WordsCompleted),
			Curve(r.Samples),
		)
	}
	if err := table.write(w); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w)
	return err
}

// RenderCharTable prints per-character tallies, lowest accuracy first.
func RenderCharTable(w io.Writer, chars []model.CharStats) error {
	if len(chars) == 0 {
		_, err := fmt.Fprintln(w, "No character stats found.")
		return err
	}
	type row struct {
		char      string
		acc       float64
		correct   int
		incorrect int
	}
	rows := make([]row, 0, len(chars))
	for _, cs := range chars {
		total := cs.Correct + cs.Incorrect
		acc := 0.0
		if total > 0 {
			acc = float64(cs.Correct) / float64(total)
		}
		rows = append(rows, row{
			char:      cs.Char,
			acc:       acc,
			correct:   cs.Correct,
			incorrect: cs.Incorrect,
		})
	}
	// Sort by lowest accuracy.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].acc == rows[j].acc {
			return rows[i].char < rows[j].char
		}
		return rows[i].acc < rows[j].acc
	})

	if _, err := fmt.Fprintln(w, "Per-Character (Last Test)"); err != nil {
		return err
	}

	table := newTextTable("Char", "Accuracy", "Correct", "Incorrect").alignRight(1, 2, 3)
	for _, r := range rows {
		table.add(
			r.char,
			fmt.Sprintf("%.2f%%", r.acc*100),
			fmt.Sprintf("%d", r.correct),
			fmt.Sprintf("%d", r.incorrect),
		)
	}
	return table.write(w)
}
