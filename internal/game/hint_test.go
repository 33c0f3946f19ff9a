package game

import (
	"regexp"
	"testing"
)

var clueRe = regexp.MustCompile(`^starts with '(.)' and ends with '(.)'$`)

func TestHintClueShape(t *testing.T) {
	unfound := []string{"CATS", "ACTS", "RETINA"}
	byEdges := map[[2]string]bool{
		{"C", "S"}: true,
		{"A", "S"}: true,
		{"R", "A"}: true,
	}

	// The pick is random; every draw must describe some unfound word and
	// never reveal the word itself.
	for i := 0; i < 50; i++ {
		clue := Hint(unfound)
		m := clueRe.FindStringSubmatch(clue)
		if m == nil {
			t.Fatalf("clue %q does not match expected shape", clue)
		}
		if !byEdges[[2]string{m[1], m[2]}] {
			t.Fatalf("clue %q does not describe any unfound word", clue)
		}
		for _, w := range unfound {
			if len(w) > 2 && regexp.MustCompile(w).MatchString(clue) {
				t.Fatalf("clue %q reveals word %q", clue, w)
			}
		}
	}
}

func TestHintEmptySet(t *testing.T) {
	if got := Hint(nil); got != AllFoundClue {
		t.Fatalf("Hint(nil) = %q, want %q", got, AllFoundClue)
	}
}

func TestHintSingleWord(t *testing.T) {
	if got := Hint([]string{"LEAP"}); got != "starts with 'L' and ends with 'P'" {
		t.Fatalf("Hint single = %q", got)
	}
}
