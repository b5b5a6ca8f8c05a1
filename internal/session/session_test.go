package session

import (
	"testing"

	"github.com/verte-zerg/raceme/internal/model"
)

// cycleSource hands out words from a fixed list in order.
type cycleSource struct {
	words []string
	next  int
	calls int
}

func (c *cycleSource) Generate(count int, recent []string) []string {
	c.calls++
	out := make([]string, count)
	for i := range out {
		out[i] = c.words[c.next%len(c.words)]
		c.next++
	}
	return out
}

func newTestSession(words ...string) (*Session, *cycleSource) {
	if len(words) == 0 {
		words = []string{"the", "quick", "brown", "fox"}
	}
	src := &cycleSource{words: words}
	return New(src, DefaultDuration), src
}

func typeString(s *Session, text string) {
	for _, r := range text {
		s.Press(string(r))
	}
}

func TestNewSessionIsReady(t *testing.T) {
	s, _ := newTestSession()
	if s.Phase() != model.PhaseReady {
		t.Fatalf("expected ready phase, got %s", s.Phase())
	}
	if s.Len() != InitialWords {
		t.Fatalf("expected %d words, got %d", InitialWords, s.Len())
	}
	if s.Remaining() != DefaultDuration {
		t.Fatalf("expected %d seconds remaining, got %d", DefaultDuration, s.Remaining())
	}
	if s.Cursor() != (model.Cursor{}) || s.Offset() != 0 {
		t.Fatalf("expected cursor and offset at origin")
	}
}

func TestNonPositiveDurationUsesDefault(t *testing.T) {
	s := New(&cycleSource{words: []string{"abc"}}, 0)
	if s.Duration() != DefaultDuration {
		t.Fatalf("expected default duration, got %d", s.Duration())
	}
}

func TestTypingMatchingWord(t *testing.T) {
	s, _ := newTestSession()
	typeString(s, "the")

	if s.Phase() != model.PhaseRunning {
		t.Fatalf("expected running phase, got %s", s.Phase())
	}
	if got := s.Stats().CorrectChars; got != 3 {
		t.Fatalf("expected 3 correct chars, got %d", got)
	}
	if s.Cursor() != (model.Cursor{Word: 0, Char: 3}) {
		t.Fatalf("unexpected cursor %+v", s.Cursor())
	}
	for c := 0; c < 3; c++ {
		if s.Judgment(0, c) != model.Correct {
			t.Fatalf("expected char %d to be correct", c)
		}
	}
	if s.JudgmentCount() != 3 {
		t.Fatalf("expected 3 judgments, got %d", s.JudgmentCount())
	}
}

func TestSpaceCompletesWord(t *testing.T) {
	s, _ := newTestSession()
	typeString(s, "the")
	if !s.Press(KeySpace) {
		t.Fatalf("expected space to change state")
	}
	if s.Stats().WordsCompleted != 1 {
		t.Fatalf("expected 1 completed word, got %d", s.Stats().WordsCompleted)
	}
	if s.Cursor() != (model.Cursor{Word: 1, Char: 0}) {
		t.Fatalf("unexpected cursor %+v", s.Cursor())
	}
}

func TestSpaceAtWordStartIsNoop(t *testing.T) {
	s, _ := newTestSession()
	typeString(s, "the ")
	for i := 0; i < 3; i++ {
		if s.Press(KeySpace) {
			t.Fatalf("expected space at word start to be a no-op")
		}
	}
	if s.Stats().WordsCompleted != 1 || s.Cursor().Word != 1 {
		t.Fatalf("expected state unchanged by repeated spaces")
	}
}

func TestSpaceDoesNotStartTest(t *testing.T) {
	s, _ := newTestSession()
	s.Press(KeySpace)
	if s.Phase() != model.PhaseReady {
		t.Fatalf("expected ready phase after space, got %s", s.Phase())
	}
}

func TestIncorrectCharacter(t *testing.T) {
	s, _ := newTestSession()
	s.Press("x")
	if s.Stats().IncorrectChars != 1 || s.Stats().CorrectChars != 0 {
		t.Fatalf("unexpected stats %+v", s.Stats())
	}
	if s.Judgment(0, 0) != model.Incorrect {
		t.Fatalf("expected incorrect judgment")
	}
	if s.Cursor().Char != 1 {
		t.Fatalf("expected cursor to advance, got %+v", s.Cursor())
	}
}

func TestExtraCharactersIgnored(t *testing.T) {
	s, _ := newTestSession()
	typeString(s, "the")
	if s.Press("e") {
		t.Fatalf("expected overflow key to be ignored")
	}
	if s.Cursor().Char != 3 || s.Stats().IncorrectChars != 0 {
		t.Fatalf("expected state unchanged, got cursor %+v stats %+v", s.Cursor(), s.Stats())
	}
}

func TestMultiCharacterKeysIgnored(t *testing.T) {
	s, _ := newTestSession()
	for _, k := range []string{"left", "f1", "the", "Shift", ""} {
		if s.Press(k) {
			t.Fatalf("expected %q to be ignored", k)
		}
	}
	if s.Phase() != model.PhaseReady {
		t.Fatalf("expected ready phase, got %s", s.Phase())
	}
}

func TestBackspaceRemovesJudgment(t *testing.T) {
	s, _ := newTestSession()
	typeString(s, "th")
	before := s.Stats()
	if !s.Press(KeyBackspace) {
		t.Fatalf("expected backspace to change state")
	}
	if s.Judgment(0, 1) != model.Untyped {
		t.Fatalf("expected judgment removed")
	}
	if s.Cursor().Char != 1 {
		t.Fatalf("expected cursor at 1, got %+v", s.Cursor())
	}
	if s.Stats() != before {
		t.Fatalf("expected counters to keep erased keystrokes")
	}
}

func TestBackspaceReturnsToPreviousWord(t *testing.T) {
	s, _ := newTestSession()
	typeString(s, "the ")
	if !s.Press(KeyBackspace) {
		t.Fatalf("expected backspace to change state")
	}
	if s.Cursor() != (model.Cursor{Word: 0, Char: 3}) {
		t.Fatalf("unexpected cursor %+v", s.Cursor())
	}
	if s.Stats().WordsCompleted != 0 {
		t.Fatalf("expected completed words to drop to 0, got %d", s.Stats().WordsCompleted)
	}
}

func TestBackspaceAtWindowStartIsNoop(t *testing.T) {
	s, _ := newTestSession()
	if s.Press(KeyBackspace) {
		t.Fatalf("expected backspace at origin to be a no-op")
	}

	s.offset = 2
	s.cursor = model.Cursor{Word: 2}
	if s.Press(KeyBackspace) {
		t.Fatalf("expected backspace at window start to be a no-op")
	}
	if s.Cursor() != (model.Cursor{Word: 2}) {
		t.Fatalf("unexpected cursor %+v", s.Cursor())
	}
}

func TestTypeThenEraseRoundTrip(t *testing.T) {
	s, _ := newTestSession()
	typeString(s, "the")
	before := s.Cursor()
	judgments := s.JudgmentCount()

	typeString(s, " qu")
	for i := 0; i < 3; i++ {
		s.Press(KeyBackspace)
	}
	if s.Cursor() != before {
		t.Fatalf("expected cursor %+v, got %+v", before, s.Cursor())
	}
	if s.JudgmentCount() != judgments {
		t.Fatalf("expected %d judgments, got %d", judgments, s.JudgmentCount())
	}
	if s.Stats().WordsCompleted != 0 {
		t.Fatalf("expected completed words restored, got %d", s.Stats().WordsCompleted)
	}
}

func TestCountdownFinishesTest(t *testing.T) {
	s, _ := newTestSession()
	if s.Tick() {
		t.Fatalf("expected tick to be ignored while ready")
	}
	if s.Remaining() != DefaultDuration {
		t.Fatalf("expected frozen countdown while ready")
	}

	s.Press("t")
	for i := 0; i < DefaultDuration-1; i++ {
		if s.Tick() {
			t.Fatalf("finished early at tick %d", i+1)
		}
	}
	if !s.Tick() {
		t.Fatalf("expected final tick to finish the test")
	}
	if s.Phase() != model.PhaseFinished || s.Remaining() != 0 {
		t.Fatalf("expected finished with 0 remaining, got %s %d", s.Phase(), s.Remaining())
	}
	if s.Tick() {
		t.Fatalf("expected ticks after finish to be ignored")
	}

	snapshot := s.Stats()
	cursor := s.Cursor()
	for _, k := range []string{"h", KeySpace, KeyBackspace} {
		if s.Press(k) {
			t.Fatalf("expected %q to be ignored after finish", k)
		}
	}
	if s.Stats() != snapshot || s.Cursor() != cursor {
		t.Fatalf("expected no state change after finish")
	}
	if len(s.Result().Samples) != DefaultDuration {
		t.Fatalf("expected %d samples, got %d", DefaultDuration, len(s.Result().Samples))
	}
}

func TestResultFigures(t *testing.T) {
	s, _ := newTestSession()
	s.Press("t")
	s.stats = model.Stats{CorrectChars: 50}
	for !s.Tick() {
	}
	res := s.Result()
	if res.WPM != 20 || res.Accuracy != 100 {
		t.Fatalf("expected 20 WPM at 100%%, got %d at %d%%", res.WPM, res.Accuracy)
	}
	if res.Duration != DefaultDuration {
		t.Fatalf("expected duration %d, got %d", DefaultDuration, res.Duration)
	}
	if res.FinishedAt.IsZero() {
		t.Fatalf("expected finish time")
	}
}

func TestAccuracyWithoutKeystrokes(t *testing.T) {
	s, _ := newTestSession()
	if s.Accuracy() != 0 || s.WPM() != 0 {
		t.Fatalf("expected zero figures, got %d WPM %d%%", s.WPM(), s.Accuracy())
	}
}

func TestResultCharStats(t *testing.T) {
	s, _ := newTestSession()
	typeString(s, "tx")
	res := s.Result()
	if len(res.Chars) != 2 {
		t.Fatalf("expected 2 char rows, got %d", len(res.Chars))
	}
	if res.Chars[0] != (model.CharStats{Char: "h", Incorrect: 1}) {
		t.Fatalf("unexpected first row %+v", res.Chars[0])
	}
	if res.Chars[1] != (model.CharStats{Char: "t", Correct: 1}) {
		t.Fatalf("unexpected second row %+v", res.Chars[1])
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	s, src := newTestSession()
	typeString(s, "the qx")
	s.Tick()
	s.offset = 1

	s.Reset()
	if s.Phase() != model.PhaseReady {
		t.Fatalf("expected ready phase, got %s", s.Phase())
	}
	if s.Stats() != (model.Stats{}) || s.JudgmentCount() != 0 {
		t.Fatalf("expected cleared stats and judgments")
	}
	if s.Cursor() != (model.Cursor{}) || s.Offset() != 0 {
		t.Fatalf("expected cursor and offset at origin")
	}
	if s.Remaining() != DefaultDuration {
		t.Fatalf("expected full countdown, got %d", s.Remaining())
	}
	if s.Len() != InitialWords {
		t.Fatalf("expected %d fresh words, got %d", InitialWords, s.Len())
	}
	if len(s.Result().Samples) != 0 || len(s.Result().Chars) != 0 {
		t.Fatalf("expected cleared samples and char stats")
	}
	if src.calls != 2 {
		t.Fatalf("expected a new word stream, got %d generate calls", src.calls)
	}
}

func TestRefillKeepsStreamAhead(t *testing.T) {
	s, src := newTestSession("ab")
	for i := 0; i < InitialWords-RefillThreshold; i++ {
		typeString(s, "ab ")
	}
	if s.Len() != InitialWords {
		t.Fatalf("expected no refill yet, got %d words", s.Len())
	}
	typeString(s, "ab ")
	if s.Len() != InitialWords+RefillWords {
		t.Fatalf("expected refill to %d words, got %d", InitialWords+RefillWords, s.Len())
	}
	if src.calls != 2 {
		t.Fatalf("expected one refill, got %d generate calls", src.calls)
	}
	if s.Offset() != 0 {
		t.Fatalf("expected refill to leave the window alone")
	}

	prev := s.Len()
	for i := 0; i < 200; i++ {
		typeString(s, "ab ")
		if s.Len() < prev {
			t.Fatalf("stream shrank from %d to %d", prev, s.Len())
		}
		prev = s.Len()
		if s.Cursor().Word >= s.Len() {
			t.Fatalf("cursor %d ran past stream of %d", s.Cursor().Word, s.Len())
		}
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	s, _ := newTestSession()
	keys := []string{"t", "q", KeyBackspace, KeySpace, "z", "z", "z", "z", "z", "z", KeySpace, KeyBackspace, KeyBackspace, "left", "x"}
	for i := 0; i < 40; i++ {
		for _, k := range keys {
			s.Press(k)
			c := s.Cursor()
			word, ok := s.Word(c.Word)
			if !ok {
				t.Fatalf("cursor word %d out of range", c.Word)
			}
			if c.Char < 0 || c.Char > len(word) {
				t.Fatalf("cursor char %d out of range for %q", c.Char, word)
			}
		}
	}
}

func TestVisibleWindow(t *testing.T) {
	s, _ := newTestSession()
	offset, words := s.Visible()
	if offset != 0 || len(words) != WindowSize {
		t.Fatalf("expected %d words from 0, got %d from %d", WindowSize, len(words), offset)
	}
	s.offset = s.Len() - 5
	_, words = s.Visible()
	if len(words) != 5 {
		t.Fatalf("expected window clipped to 5 words, got %d", len(words))
	}
}
