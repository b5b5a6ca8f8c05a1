// Package model defines shared data structures.
package model

import "time"

// Config defines typing test settings.
type Config struct {
	Duration int     `validate:"min=5,max=300"`
	Corpus   string  `validate:"omitempty,file"`
	WidthPct float64 `validate:"gt=0,lte=1"`
	Seed     int64
}

// Phase is the top-level state of a typing test.
type Phase int

// Test phases.
const (
	PhaseReady Phase = iota
	PhaseRunning
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseRunning:
		return "running"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Judgment is the verdict recorded for one typed character.
type Judgment int

// Judgments. Untyped is never stored.
const (
	Untyped Judgment = iota
	Correct
	Incorrect
)

// CharKey addresses one character of the word stream.
type CharKey struct {
	Word int
	Char int
}

// Cursor is the position awaiting input.
type Cursor struct {
	Word int
	Char int
}

// Stats holds the counters of a single test.
type Stats struct {
	CorrectChars   int `json:"correct_chars"`
	IncorrectChars int `json:"incorrect_chars"`
	WordsCompleted int `json:"words_completed"`
}

// CharStats stores per-character keystroke tallies for a test.
type CharStats struct {
	Char      string `json:"char"`
	Correct   int    `json:"correct"`
	Incorrect int    `json:"incorrect"`
}

// Result captures a finished typing test.
type Result struct {
	FinishedAt time.Time   `json:"finished_at"`
	Duration   int         `json:"duration_s"`
	WPM        int         `json:"wpm"`
	Accuracy   int         `json:"accuracy"`
	Stats      Stats       `json:"stats"`
	Samples    []float64   `json:"samples"`
	Chars      []CharStats `json:"chars"`
}
