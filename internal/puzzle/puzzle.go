// internal/puzzle/puzzle.go
//
// Core type definitions for the puzzle pool.
// Defines:
//   - Puzzle: one jumble plus its solution word list, immutable once built.
//   - Parse: reads the one-puzzle-per-file text format.
//
// File format (one file per puzzle):
//   line 1: the jumbled letter string shown to the player
//   line 2: the number of solution words
//   line 3+: one solution word per line

package puzzle

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Puzzle is one round's worth of game data. Words keep the order they appear
// in the source file; matching elsewhere is case-insensitive and
// order-independent. A Session replaces its Puzzle wholesale on a new round
// and never mutates one in place.
type Puzzle struct {
	Jumble string   // scrambled display string, never empty
	Words  []string // solution words, uppercase, never empty
}

// Validate checks the invariants every served puzzle must satisfy.
func (p *Puzzle) Validate() error {
	if strings.TrimSpace(p.Jumble) == "" {
		return errors.New("puzzle: empty jumble")
	}
	if len(p.Words) == 0 {
		return errors.New("puzzle: empty word list")
	}
	for _, w := range p.Words {
		if w == "" {
			return errors.New("puzzle: blank solution word")
		}
	}
	return nil
}

// Parse reads one puzzle from r in the line-oriented file format.
// Words are normalized to uppercase; the declared word count must match the
// number of words actually present.
func Parse(r io.Reader) (*Puzzle, error) {
	sc := bufio.NewScanner(r)

	if !sc.Scan() {
		return nil, errors.New("puzzle: missing jumble line")
	}
	jumble := strings.TrimSpace(sc.Text())

	if !sc.Scan() {
		return nil, errors.New("puzzle: missing word count line")
	}
	count, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		return nil, fmt.Errorf("puzzle: bad word count: %w", err)
	}

	var words []string
	for sc.Scan() {
		w := strings.ToUpper(strings.TrimSpace(sc.Text()))
		if w == "" {
			continue
		}
		words = append(words, w)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if count != len(words) {
		return nil, fmt.Errorf("puzzle: declared %d words, found %d", count, len(words))
	}

	p := &Puzzle{Jumble: jumble, Words: words}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
