package wordlist

import "testing"

func TestPracticeWord(t *testing.T) {
	for _, word := range []string{"the", "people", "something"} {
		if !PracticeWord(word) {
			t.Fatalf("expected %q to pass practice filter", word)
		}
	}
	for _, word := range []string{"a", "be", "extraordinary", "résumé", "naïve", "don’t", "co-op", "The"} {
		if PracticeWord(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}

func TestFilterDropsDuplicates(t *testing.T) {
	got := Filter([]string{"the", "and", "x", "the", "for"}, PracticeWord)
	want := []string{"the", "and", "for"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
