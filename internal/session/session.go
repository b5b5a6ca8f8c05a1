// Package session implements the typing test state machine.
package session

import (
	"math"
	"sort"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/raceme/internal/model"
	"github.com/verte-zerg/raceme/internal/stats"
)

// Key identifiers with special handling.
const (
	KeyBackspace = "Backspace"
	KeySpace     = " "
)

const (
	// DefaultDuration is the test length in seconds.
	DefaultDuration = 30
	// InitialWords is the size of the word buffer after a reset.
	InitialWords = 100
	// RefillWords is how many words are appended when the buffer runs low.
	RefillWords = 50
	// RefillThreshold is how close the cursor may get to the end of the
	// buffer before it is refilled.
	RefillThreshold = 30
	// WindowSize is the number of words rendered from the window offset.
	WindowSize = 60
)

// WordSource supplies practice words, avoiding repeats of recent.
type WordSource interface {
	Generate(count int, recent []string) []string
}

type charStat struct {
	correct   int
	incorrect int
}

// Session holds the state of one typing test.
type Session struct {
	source WordSource
	now    func() time.Time

	words     []string
	cursor    model.Cursor
	judgments map[model.CharKey]model.Judgment
	stats     model.Stats
	phase     model.Phase
	offset    int
	countdown Countdown

	charStats   map[rune]*charStat
	samples     []float64
	lastCorrect int
	finishedAt  time.Time
}

// New returns a ready session drawing words from source. A non-positive
// duration selects DefaultDuration.
func New(source WordSource, duration int) *Session {
	if duration <= 0 {
		duration = DefaultDuration
	}
	s := &Session{
		source:    source,
		now:       time.Now,
		countdown: NewCountdown(duration),
	}
	s.Reset()
	return s
}

// Reset discards the current test and prepares a fresh one.
func (s *Session) Reset() {
	s.words = s.source.Generate(InitialWords, nil)
	s.cursor = model.Cursor{}
	s.judgments = map[model.CharKey]model.Judgment{}
	s.stats = model.Stats{}
	s.phase = model.PhaseReady
	s.offset = 0
	s.countdown.Reset()
	s.charStats = map[rune]*charStat{}
	s.samples = nil
	s.lastCorrect = 0
	s.finishedAt = time.Time{}
}

// Press applies one key identifier and reports whether any state changed.
func (s *Session) Press(key string) bool {
	if s.phase == model.PhaseFinished {
		return false
	}
	word, ok := s.currentWord()
	if !ok {
		return false
	}

	started := false
	if s.phase == model.PhaseReady && key != KeySpace && isPrintable(key) {
		s.phase = model.PhaseRunning
		started = true
	}

	switch key {
	case KeyBackspace:
		return s.backspace() || started
	case KeySpace:
		return s.space() || started
	}

	if !isPrintable(key) {
		return started
	}
	typed, _ := utf8.DecodeRuneInString(key)
	expected := []rune(word)
	if s.cursor.Char >= len(expected) {
		return started
	}
	s.judge(expected[s.cursor.Char], typed)
	return true
}

// Tick advances the countdown by one second while running and reports
// whether the test finished on this tick.
func (s *Session) Tick() bool {
	if s.phase != model.PhaseRunning {
		return false
	}
	done := s.countdown.Tick()
	s.samples = append(s.samples, stats.WPM(s.stats.CorrectChars-s.lastCorrect, 1))
	s.lastCorrect = s.stats.CorrectChars
	if done {
		s.phase = model.PhaseFinished
		s.finishedAt = s.now()
	}
	return done
}

func (s *Session) backspace() bool {
	if s.cursor.Char > 0 {
		delete(s.judgments, model.CharKey{Word: s.cursor.Word, Char: s.cursor.Char - 1})
		s.cursor.Char--
		return true
	}
	if s.cursor.Word > 0 && s.cursor.Word > s.offset {
		s.cursor.Word--
		s.cursor.Char = utf8.RuneCountInString(s.words[s.cursor.Word])
		if s.stats.WordsCompleted > 0 {
			s.stats.WordsCompleted--
		}
		return true
	}
	return false
}

func (s *Session) space() bool {
	if s.cursor.Char == 0 {
		return false
	}
	s.stats.WordsCompleted++
	s.cursor.Word++
	s.cursor.Char = 0
	s.refill()
	return true
}

func (s *Session) judge(expected, typed rune) {
	verdict := model.Incorrect
	if typed == expected {
		verdict = model.Correct
	}
	s.judgments[model.CharKey{Word: s.cursor.Word, Char: s.cursor.Char}] = verdict

	entry, ok := s.charStats[expected]
	if !ok {
		entry = &charStat{}
		s.charStats[expected] = entry
	}
	if verdict == model.Correct {
		s.stats.CorrectChars++
		entry.correct++
	} else {
		s.stats.IncorrectChars++
		entry.incorrect++
	}
	s.cursor.Char++
}

func (s *Session) refill() {
	if s.cursor.Word <= len(s.words)-RefillThreshold {
		return
	}
	s.words = append(s.words, s.source.Generate(RefillWords, s.words)...)
}

func (s *Session) currentWord() (string, bool) {
	return s.Word(s.cursor.Word)
}

// Word returns the word at index in the stream.
func (s *Session) Word(index int) (string, bool) {
	if index < 0 || index >= len(s.words) {
		return "", false
	}
	return s.words[index], true
}

// Len returns the length of the word stream.
func (s *Session) Len() int {
	return len(s.words)
}

// Visible returns the window offset and the words rendered from it.
func (s *Session) Visible() (int, []string) {
	end := s.offset + WindowSize
	if end > len(s.words) {
		end = len(s.words)
	}
	if s.offset >= end {
		return s.offset, nil
	}
	return s.offset, s.words[s.offset:end]
}

// Offset returns the index of the first visible word.
func (s *Session) Offset() int {
	return s.offset
}

// Cursor returns the position awaiting input.
func (s *Session) Cursor() model.Cursor {
	return s.cursor
}

// Judgment returns the verdict recorded for a character, or model.Untyped.
func (s *Session) Judgment(word, char int) model.Judgment {
	if j, ok := s.judgments[model.CharKey{Word: word, Char: char}]; ok {
		return j
	}
	return model.Untyped
}

// JudgmentCount returns the number of recorded judgments.
func (s *Session) JudgmentCount() int {
	return len(s.judgments)
}

// Phase returns the current phase.
func (s *Session) Phase() model.Phase {
	return s.phase
}

// Stats returns the test counters.
func (s *Session) Stats() model.Stats {
	return s.stats
}

// Remaining returns the seconds left on the countdown.
func (s *Session) Remaining() int {
	return s.countdown.Remaining()
}

// Duration returns the test length in seconds.
func (s *Session) Duration() int {
	return s.countdown.Total()
}

// WPM returns the words-per-minute figure for the full test duration.
func (s *Session) WPM() int {
	return int(math.Round(stats.WPM(s.stats.CorrectChars, s.countdown.Total())))
}

// Accuracy returns the rounded percentage of correct keystrokes.
func (s *Session) Accuracy() int {
	return stats.Accuracy(s.stats.CorrectChars, s.stats.IncorrectChars)
}

// Result snapshots the current test.
func (s *Session) Result() model.Result {
	chars := make([]model.CharStats, 0, len(s.charStats))
	for ch, entry := range s.charStats {
		chars = append(chars, model.CharStats{
			Char:      string(ch),
			Correct:   entry.correct,
			Incorrect: entry.incorrect,
		})
	}
	sort.Slice(chars, func(i, j int) bool {
		return chars[i].Char < chars[j].Char
	})
	return model.Result{
		FinishedAt: s.finishedAt,
		Duration:   s.countdown.Total(),
		WPM:        s.WPM(),
		Accuracy:   s.Accuracy(),
		Stats:      s.stats,
		Samples:    append([]float64(nil), s.samples...),
		Chars:      chars,
	}
}

func isPrintable(key string) bool {
	if utf8.RuneCountInString(key) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(key)
	return unicode.IsPrint(r)
}
