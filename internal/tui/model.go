// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/raceme/internal/model"
	"github.com/verte-zerg/raceme/internal/session"
	"github.com/verte-zerg/raceme/internal/stats"
)

const (
	tickInterval    = time.Second
	idleDelay       = 2 * time.Second
	visibleRows     = 3
	defaultWidth    = 80
	defaultWidthPct = 0.70
	maxScrollSteps  = visibleRows
)

// tickMsg advances the countdown of the test it was scheduled for.
type tickMsg struct {
	generation int
}

// idleMsg resumes caret blinking when no key arrived after keystroke.
type idleMsg struct {
	generation int
	keystroke  int
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	config  model.Config
	session *session.Session
	logger  *slog.Logger

	keys  keyMap
	help  help.Model
	caret cursor.Model

	width  int
	height int

	// generation is bumped on every restart; scheduled messages carrying an
	// older value are dropped.
	generation int
	keystrokes int

	results []model.Result
}

var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	caretStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	timerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	valueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a typing TUI model around a ready session.
func NewModel(cfg model.Config, sess *session.Session, logger *slog.Logger) *Model {
	if cfg.WidthPct <= 0 {
		cfg.WidthPct = defaultWidthPct
	}
	if logger == nil {
		logger = slog.Default()
	}
	m := &Model{
		config:  cfg,
		session: sess,
		logger:  logger,
		keys:    defaultKeyMap(),
		help:    help.New(),
		caret:   cursor.New(),
	}
	m.caret.Style = caretStyle
	m.caret.Focus()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return cursor.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.scroll()
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Restart):
			return m, m.restart()
		}
		return m, m.press(keyIdentifier(msg))
	case tickMsg:
		return m, m.tick(msg)
	case idleMsg:
		return m, m.idle(msg)
	}
	var cmd tea.Cmd
	m.caret, cmd = m.caret.Update(msg)
	return m, cmd
}

// Results returns the tests finished so far.
func (m *Model) Results() []model.Result {
	return m.results
}

func (m *Model) press(k string) tea.Cmd {
	before := m.session.Phase()
	words := m.session.Len()
	changed := m.session.Press(k)

	var cmds []tea.Cmd
	if before == model.PhaseReady && m.session.Phase() == model.PhaseRunning {
		m.logger.Debug("test started", "generation", m.generation, "duration", m.session.Duration())
		cmds = append(cmds, m.scheduleTick())
	}
	if changed {
		if n := m.session.Len(); n > words {
			m.logger.Debug("word buffer refilled", "words", n, "cursor", m.session.Cursor().Word)
		}
		m.scroll()
	}
	if m.session.Phase() == model.PhaseRunning {
		cmds = append(cmds, m.holdCaret())
	}
	return tea.Batch(cmds...)
}

func (m *Model) scheduleTick() tea.Cmd {
	gen := m.generation
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{generation: gen}
	})
}

func (m *Model) tick(msg tickMsg) tea.Cmd {
	if msg.generation != m.generation || m.session.Phase() != model.PhaseRunning {
		return nil
	}
	if m.session.Tick() {
		m.finish()
		return nil
	}
	return m.scheduleTick()
}

// holdCaret keeps the caret solid and schedules the return to blinking.
func (m *Model) holdCaret() tea.Cmd {
	m.keystrokes++
	m.caret.SetMode(cursor.CursorStatic)
	gen, stroke := m.generation, m.keystrokes
	return tea.Tick(idleDelay, func(time.Time) tea.Msg {
		return idleMsg{generation: gen, keystroke: stroke}
	})
}

func (m *Model) idle(msg idleMsg) tea.Cmd {
	if msg.generation != m.generation || msg.keystroke != m.keystrokes {
		return nil
	}
	if m.session.Phase() == model.PhaseFinished {
		return nil
	}
	return m.caret.SetMode(cursor.CursorBlink)
}

func (m *Model) finish() {
	result := m.session.Result()
	m.results = append(m.results, result)
	m.caret.SetMode(cursor.CursorHide)
	m.logger.Info("test finished",
		"wpm", result.WPM,
		"accuracy", result.Accuracy,
		"correct", result.Stats.CorrectChars,
		"incorrect", result.Stats.IncorrectChars,
		"words", result.Stats.WordsCompleted,
	)
}

func (m *Model) restart() tea.Cmd {
	m.generation++
	m.keystrokes = 0
	m.session.Reset()
	m.logger.Debug("test reset", "generation", m.generation)
	return m.caret.SetMode(cursor.CursorBlink)
}

// scroll lets the session slide its window over the current terminal
// layout until the cursor sits on one of the first two rows.
func (m *Model) scroll() {
	for i := 0; i < maxScrollSteps; i++ {
		offset, words := m.session.Visible()
		if !m.session.Scroll(layoutWords(offset, words, m.contentWidth())) {
			return
		}
		m.logger.Debug("window advanced", "offset", m.session.Offset(), "cursor", m.session.Cursor().Word)
	}
}

func (m *Model) contentWidth() int {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	cw := int(float64(width) * m.config.WidthPct)
	if cw < 1 {
		cw = 1
	}
	return cw
}

// View implements tea.Model.
func (m *Model) View() string {
	cw := m.contentWidth()
	var body string
	if m.session.Phase() == model.PhaseFinished {
		body = m.renderResult(cw)
	} else {
		body = m.renderTimer(cw) + "\n" + m.renderWords(cw)
	}
	content := lipgloss.NewStyle().Width(cw).Render(body)
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n\n" + footer
	}
	if m.height < visibleRows+3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	main := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return main + "\n" + footerLine
}

func (m *Model) renderTimer(width int) string {
	timer := timerStyle.Render(fmt.Sprintf("%ds", m.session.Remaining()))
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, timer)
}

func (m *Model) renderWords(width int) string {
	offset, words := m.session.Visible()
	layout := layoutWords(offset, words, width)
	cur := m.session.Cursor()

	lines := make([]strings.Builder, visibleRows)
	for i, word := range words {
		index := offset + i
		line, ok := layout.line(index)
		if !ok || line >= visibleRows {
			break
		}
		lines[line].WriteString(m.renderWord(index, word, cur))
	}
	out := make([]string, visibleRows)
	for i := range lines {
		out[i] = lines[i].String()
	}
	return strings.Join(out, "\n")
}

func (m *Model) renderWord(index int, word string, cur model.Cursor) string {
	var b strings.Builder
	runes := []rune(word)
	for ci, r := range runes {
		style := pendingStyle
		switch m.session.Judgment(index, ci) {
		case model.Correct:
			style = correctStyle
		case model.Incorrect:
			style = incorrectStyle
		}
		if index == cur.Word && ci == cur.Char {
			b.WriteString(m.caretView(string(r), style))
			continue
		}
		b.WriteString(style.Render(string(r)))
	}
	// The gap cell doubles as the "press space" caret.
	if index == cur.Word && cur.Char >= len(runes) {
		b.WriteString(m.caretView(" ", pendingStyle))
	} else {
		b.WriteByte(' ')
	}
	return b.String()
}

func (m *Model) caretView(char string, text lipgloss.Style) string {
	c := m.caret
	c.TextStyle = text
	c.SetChar(char)
	return c.View()
}

func (m *Model) renderResult(width int) string {
	metric := func(label, value string) string {
		return lipgloss.JoinVertical(lipgloss.Center, labelStyle.Render(label), valueStyle.Render(value))
	}
	result := m.session.Result()
	figures := lipgloss.JoinHorizontal(lipgloss.Top,
		metric("WPM", fmt.Sprintf("%d", result.WPM)),
		"      ",
		metric("Accuracy", fmt.Sprintf("%d%%", result.Accuracy)),
	)
	block := figures
	if curve := stats.Curve(result.Samples); curve != "" {
		block = lipgloss.JoinVertical(lipgloss.Center, figures, footerStyle.Render(curve))
	}
	return lipgloss.Place(width, visibleRows+1, lipgloss.Center, lipgloss.Center, block)
}

func (m *Model) renderFooter() string {
	segments := []string{}
	if n := len(m.results); n > 0 {
		last := m.results[n-1]
		best := 0
		for _, r := range m.results {
			if r.WPM > best {
				best = r.WPM
			}
		}
		segments = append(segments,
			footerStyle.Render(fmt.Sprintf("Last %d WPM · %d%%", last.WPM, last.Accuracy)),
			footerStyle.Render(fmt.Sprintf("Best %d WPM", best)),
		)
	}
	segments = append(segments, m.help.ShortHelpView(m.keys.ShortHelp()))
	return strings.Join(segments, "  ")
}
