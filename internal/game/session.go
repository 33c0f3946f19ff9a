// internal/game/session.go
//
// Per-connection session state machine.
// Responsibilities:
//   - Own one player's round state (puzzle, found set, counters) across
//     potentially many rounds on the same connection.
//   - Drive the AwaitingStart → Active → GameOver lifecycle from decoded
//     inbound messages, one reply per message.
//   - Enforce the round limits: no double-counted finds, no hints past the
//     cap, no guesses after game over.
//
// Notes:
//   - A Session is exclusively owned by its connection's goroutine. Nothing
//     here locks and nothing here may be shared.
//   - Step is the only mutator. Illegal transitions (hint before a round,
//     guess after game over) are explicit branches that yield a well-formed
//     reply, never a dropped connection.

package game

import (
	"time"

	"github.com/OwenDdev/WNP-A02/internal/protocol"
	"github.com/OwenDdev/WNP-A02/internal/puzzle"
)

// PuzzleProvider supplies a fresh puzzle per round. *puzzle.Pool implements
// it; tests substitute stubs.
type PuzzleProvider interface {
	Next() (*puzzle.Puzzle, error)
}

// StepResult is the session's reaction to one inbound message.
type StepResult struct {
	Reply    string       // rendered reply line; empty means send nothing
	Close    bool         // connection should be closed after Reply (if any)
	Finished *RoundResult // set when this step ended a round
}

// Session holds one connection's game state.
type Session struct {
	provider PuzzleProvider

	state        State
	puzzle       *puzzle.Puzzle
	found        map[string]bool // canonical uppercase words already guessed
	wrongGuesses int
	hintsUsed    int
	startedAt    time.Time
}

// NewSession creates a session in AwaitingStart with no puzzle loaded.
func NewSession(provider PuzzleProvider) *Session {
	return &Session{provider: provider, state: AwaitingStart}
}

// Step processes one decoded inbound line and returns the reply plus any
// lifecycle effects. Messages are handled strictly in arrival order by the
// owning goroutine; one message in, at most one reply out.
func (s *Session) Step(raw string) StepResult {
	req := protocol.ParseRequest(raw)

	switch req.Kind {
	case protocol.KindDisconnect:
		// Graceful close: no further replies.
		return StepResult{Close: true}

	case protocol.KindHandshake:
		// The handshake bootstraps a round from any state; a client that
		// re-sends it mid-round gets a fresh round, same as NEW_GAME.
		return s.startRound()

	case protocol.KindNewGame:
		if s.state == AwaitingStart {
			// Replay before any round exists; nothing to replay.
			return StepResult{Reply: protocol.Inactive()}
		}
		return s.startRound()

	case protocol.KindHint:
		return s.stepHint()

	case protocol.KindTimeUp:
		return s.stepTimeUp()

	default:
		return s.stepGuess(req.Word)
	}
}

// startRound loads a fresh puzzle and resets every per-round counter.
// A provider failure is fatal to this session only: the client gets a
// user-facing error reply and the connection closes.
func (s *Session) startRound() StepResult {
	p, err := s.provider.Next()
	if err != nil {
		return StepResult{Reply: protocol.Error(protocol.PuzzleUnavailable), Close: true}
	}
	s.puzzle = p
	s.found = make(map[string]bool, len(p.Words))
	s.wrongGuesses = 0
	s.hintsUsed = 0
	s.startedAt = time.Now()
	s.state = Active
	return StepResult{Reply: protocol.RoundStart(p.Jumble, p.Words)}
}

// stepGuess evaluates one guess while Active; outside Active it yields the
// inactive sentinel without evaluating anything.
func (s *Session) stepGuess(word string) StepResult {
	if s.state != Active {
		return StepResult{Reply: protocol.Inactive()}
	}

	switch out := Evaluate(s.puzzle, word, s.found); out.Kind {
	case OutcomeSystem:
		// Control text the parser somehow let through; restart rather than
		// scoring it as a guess. Defensive: ParseRequest classifies these.
		return s.startRound()

	case OutcomeFound:
		s.found[out.Word] = true
		res := StepResult{Reply: protocol.Found(out.Word)}
		if len(s.found) == len(s.puzzle.Words) {
			s.state = GameOver
			res.Finished = s.result("won")
		}
		return res

	case OutcomeDuplicate:
		return StepResult{Reply: protocol.Duplicate()}

	default:
		s.wrongGuesses++
		if s.wrongGuesses >= MaxWrongGuesses {
			s.state = GameOver
			return StepResult{
				Reply:    protocol.GameOver(protocol.ReasonMaxWrong, s.unfound()),
				Finished: s.result("lost"),
			}
		}
		return StepResult{Reply: protocol.Wrong()}
	}
}

// stepHint serves REQUEST_HINT. The 4th request in a round gets the
// exhausted reply and mutates nothing.
func (s *Session) stepHint() StepResult {
	if s.state != Active {
		return StepResult{Reply: protocol.Inactive()}
	}
	if s.hintsUsed >= MaxHints {
		return StepResult{Reply: protocol.HintExhausted()}
	}
	s.hintsUsed++
	return StepResult{Reply: protocol.Hint(Hint(s.unfound()))}
}

// stepTimeUp handles the client-declared timeout. The server decides game
// over once; a TIME_UP arriving after the round already ended is a no-op
// reply, never a re-trigger.
func (s *Session) stepTimeUp() StepResult {
	if s.state != Active {
		return StepResult{Reply: protocol.Inactive()}
	}
	s.state = GameOver
	return StepResult{
		Reply:    protocol.GameOver(protocol.ReasonTimeUp, s.unfound()),
		Finished: s.result("timeout"),
	}
}

// unfound lists the solution words not yet guessed, in source order.
func (s *Session) unfound() []string {
	out := make([]string, 0, len(s.puzzle.Words)-len(s.found))
	for _, w := range s.puzzle.Words {
		if !s.found[w] {
			out = append(out, w)
		}
	}
	return out
}

// result snapshots the finished round for the history store.
func (s *Session) result(outcome string) *RoundResult {
	return &RoundResult{
		Outcome:      outcome,
		Jumble:       s.puzzle.Jumble,
		WordCount:    len(s.puzzle.Words),
		WordsFound:   len(s.found),
		WrongGuesses: s.wrongGuesses,
		HintsUsed:    s.hintsUsed,
		Duration:     time.Since(s.startedAt),
	}
}

// State reports the current protocol phase (for logging and tests).
func (s *Session) State() State { return s.state }

// HintsUsed reports hints consumed this round.
func (s *Session) HintsUsed() int { return s.hintsUsed }

// WrongGuesses reports wrong guesses this round.
func (s *Session) WrongGuesses() int { return s.wrongGuesses }
