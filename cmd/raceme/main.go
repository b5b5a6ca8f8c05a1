// Package main provides the CLI entrypoint for raceme.
package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/raceme/internal/config"
	"github.com/verte-zerg/raceme/internal/generator"
	"github.com/verte-zerg/raceme/internal/model"
	"github.com/verte-zerg/raceme/internal/session"
	"github.com/verte-zerg/raceme/internal/stats"
	"github.com/verte-zerg/raceme/internal/tui"
	"github.com/verte-zerg/raceme/internal/wordlist"
)

const (
	defaultDuration = session.DefaultDuration
	defaultWidth    = 0.70
	defaultLogLevel = "info"
)

var (
	testDuration int
	testCorpus   string
	testWidth    float64
	testSeed     int64
	testJSON     bool

	logFile  string
	logLevel string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "raceme",
		Short:         "Terminal typing-speed test",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTestCmd,
	}

	rootCmd.Flags().IntVar(&testDuration, "duration", defaultDuration, "test length in seconds")
	rootCmd.PersistentFlags().StringVar(&testCorpus, "corpus", "", "word list file, one word per line (default: built-in corpus)")
	rootCmd.Flags().Float64Var(&testWidth, "width", defaultWidth, "text width as a fraction of the terminal (0-1]")
	rootCmd.Flags().Int64Var(&testSeed, "seed", 0, "random seed for the word stream (0: time based)")
	rootCmd.Flags().BoolVar(&testJSON, "json", false, "print results as JSON")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCorpusCmd())

	return rootCmd
}

func loadFileConfig(cmd *cobra.Command) (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "corpus", &testCorpus, fileCfg.Test.Corpus)
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	return fileCfg, nil
}

func runTestCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig(cmd)
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "duration", &testDuration, fileCfg.Test.Duration)
	applyFloatConfig(cmd, "width", &testWidth, fileCfg.Test.Width)
	applyInt64Config(cmd, "seed", &testSeed, fileCfg.Test.Seed)

	cfg := model.Config{
		Duration: testDuration,
		Corpus:   testCorpus,
		WidthPct: testWidth,
		Seed:     testSeed,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(logFile, logLevel)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeLog(); cerr != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", cerr)
		}
	}()

	words, err := wordlist.Load(cfg.Corpus)
	if err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("raceme needs an interactive terminal on stdout")
	}

	sess := session.New(newWordSource(words, cfg.Seed), cfg.Duration)
	m := tui.NewModel(cfg, sess, logger)
	logger.Info("starting typing test",
		"duration", cfg.Duration,
		"corpus_words", len(words),
		"seed", cfg.Seed,
	)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return writeResults(cmd.OutOrStdout(), m.Results(), testJSON)
}

func newWordSource(words []string, seed int64) *generator.Generator {
	if seed == 0 {
		return generator.New(words)
	}
	return generator.NewWithSeed(words, seed)
}

func writeResults(w io.Writer, results []model.Result, asJSON bool) error {
	if asJSON {
		if err := stats.WriteJSON(w, results); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
		return nil
	}
	if len(results) == 0 {
		return nil
	}
	if err := stats.RenderSummary(w, results); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	last := results[len(results)-1]
	if err := stats.RenderCharTable(w, last.Chars); err != nil {
		return fmt.Errorf("failed to write character table: %w", err)
	}
	if err := stats.RenderCurve(w, "WPM (Last Test)", last.Samples, 0, 0); err != nil {
		return fmt.Errorf("failed to write curve: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeConfigTemplate(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeConfigTemplate creates the config file unless it already exists.
func writeConfigTemplate(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func newCorpusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "corpus",
		Short: "Print the practice words in use",
		Args:  cobra.NoArgs,
		RunE:  runCorpusCmd,
	}
}

func runCorpusCmd(cmd *cobra.Command, _ []string) error {
	if _, err := loadFileConfig(cmd); err != nil {
		return err
	}
	words, err := wordlist.Load(testCorpus)
	if err != nil {
		return err
	}
	return writeCorpus(cmd.OutOrStdout(), words)
}

func writeCorpus(w io.Writer, words []string) error {
	for _, word := range words {
		if _, err := fmt.Fprintln(w, word); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# raceme configuration
# Uncomment a value to enable it. CLI flags override config values.

[test]
# duration = %d           # Test length in seconds (5-300)
# corpus = ""             # Word list file, one word per line
# width = %.2f            # Text width as a fraction of the terminal (0-1]
# seed = 0                # Random seed for the word stream (0: time based)

[log]
# file = %q
# level = %q
`,
		defaultDuration,
		defaultWidth,
		config.DefaultLogPath(),
		defaultLogLevel,
	)
}
