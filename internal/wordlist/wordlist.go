// Package wordlist provides the practice corpus.
package wordlist

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed corpus/*.txt
var corpusFS embed.FS

// ErrEmpty is returned when a corpus holds no usable words.
var ErrEmpty = errors.New("word list is empty")

// Default returns the embedded practice corpus.
func Default() []string {
	f, err := corpusFS.Open("corpus/en.txt")
	if err != nil {
		panic(fmt.Sprintf("embedded corpus missing: %v", err))
	}
	defer func() {
		_ = f.Close()
	}()
	words, err := readWords(f)
	if err != nil {
		panic(fmt.Sprintf("embedded corpus unreadable: %v", err))
	}
	return words
}

// Load returns the embedded corpus when path is empty, otherwise the
// practice words found in the file at path.
func Load(path string) ([]string, error) {
	if path == "" {
		return Default(), nil
	}
	words, err := LoadWords(path)
	if err != nil {
		return nil, err
	}
	words = Filter(words, PracticeWord)
	if len(words) == 0 {
		return nil, fmt.Errorf("%s: no words of %d-%d lowercase letters: %w", path, MinWordLen, MaxWordLen, ErrEmpty)
	}
	return words, nil
}

// LoadWords reads one word per line from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	return readWords(file)
}

func readWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, ErrEmpty
	}
	return words, nil
}
