// Package generator builds the practice word stream.
package generator

import (
	"math/rand"
	"time"
)

const (
	// RecentWindow is how many trailing words a new word must not repeat.
	RecentWindow = 20
	// MaxAttempts bounds the redraws for one word before a repeat is accepted.
	MaxAttempts = 50
)

// Generator produces randomized practice words from a fixed corpus.
type Generator struct {
	rnd   *rand.Rand
	words []string
}

// New returns a Generator over words seeded with the current time.
func New(words []string) *Generator {
	return NewWithSeed(words, time.Now().UnixNano())
}

// NewWithSeed returns a Generator with a deterministic seed.
func NewWithSeed(words []string, seed int64) *Generator {
	return &Generator{
		rnd:   rand.New(rand.NewSource(seed)),
		words: append([]string(nil), words...),
	}
}

// Generate selects count words uniformly, redrawing any word that occurs in
// the last RecentWindow words of recent plus the words generated so far.
// After MaxAttempts draws the last candidate is kept even if it repeats.
func (g *Generator) Generate(count int, recent []string) []string {
	if count <= 0 || len(g.words) == 0 {
		return nil
	}
	window := newRecentSet(RecentWindow)
	if len(recent) > RecentWindow {
		recent = recent[len(recent)-RecentWindow:]
	}
	for _, word := range recent {
		window.push(word)
	}

	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		var word string
		for attempt := 0; attempt < MaxAttempts; attempt++ {
			word = g.words[g.rnd.Intn(len(g.words))]
			if !window.contains(word) {
				break
			}
		}
		result = append(result, word)
		window.push(word)
	}
	return result
}

// recentSet is a fixed-size sliding window of words with membership lookup.
type recentSet struct {
	ring   []string
	next   int
	full   bool
	counts map[string]int
}

func newRecentSet(size int) *recentSet {
	return &recentSet{
		ring:   make([]string, size),
		counts: make(map[string]int, size),
	}
}

func (s *recentSet) push(word string) {
	if len(s.ring) == 0 {
		return
	}
	if s.full {
		old := s.ring[s.next]
		if s.counts[old] <= 1 {
			delete(s.counts, old)
		} else {
			s.counts[old]--
		}
	}
	s.ring[s.next] = word
	s.counts[word]++
	s.next++
	if s.next == len(s.ring) {
		s.next = 0
		s.full = true
	}
}

func (s *recentSet) contains(word string) bool {
	return s.counts[word] > 0
}
