// internal/game/evaluate.go
//
// Guess evaluation for a single round.
// Responsibilities:
//   - Normalize raw guess text (trim, case-fold).
//   - Recognize control tokens so they never score as wrong guesses.
//   - Match against the puzzle's solution list (full-word, case-insensitive).
//
// Notes:
//   - Evaluate never mutates the found set; recording a Found word is the
//     caller's job so the add happens exactly once inside the session step.
//   - Malformed input (empty, non-alphabetic) scores as Wrong rather than
//     erroring. Clients filter it before transmit; the server stays up if
//     one doesn't.

package game

import (
	"strings"

	"github.com/OwenDdev/WNP-A02/internal/protocol"
	"github.com/OwenDdev/WNP-A02/internal/puzzle"
)

// Evaluate scores one guess against p given the set of already-found words
// (keyed by canonical uppercase word).
func Evaluate(p *puzzle.Puzzle, guess string, found map[string]bool) Outcome {
	norm := strings.TrimSpace(guess)

	// Control text is handled before any puzzle lookup, so the same channel
	// can carry commands and guesses without an opcode byte.
	if strings.EqualFold(norm, protocol.Handshake) ||
		strings.EqualFold(norm, protocol.TokNewGame) {
		return Outcome{Kind: OutcomeSystem}
	}

	if norm == "" || !isAlpha(norm) {
		return Outcome{Kind: OutcomeWrong}
	}

	upper := strings.ToUpper(norm)
	for _, w := range p.Words {
		if upper != w {
			continue
		}
		if found[w] {
			return Outcome{Kind: OutcomeDuplicate, Word: w}
		}
		return Outcome{Kind: OutcomeFound, Word: w}
	}
	return Outcome{Kind: OutcomeWrong}
}

// isAlpha reports whether s is ASCII letters only.
func isAlpha(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}
