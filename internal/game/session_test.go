package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/OwenDdev/WNP-A02/internal/puzzle"
)

// stubProvider returns a fixed puzzle (or error) for deterministic sessions.
type stubProvider struct {
	p   *puzzle.Puzzle
	err error
}

func (s stubProvider) Next() (*puzzle.Puzzle, error) { return s.p, s.err }

func newTestSession(t *testing.T) *Session {
	t.Helper()
	p := &puzzle.Puzzle{Jumble: "TACS", Words: []string{"CATS", "ACTS"}}
	return NewSession(stubProvider{p: p})
}

const handshake = "hello from client - start game"

func mustStart(t *testing.T, s *Session) {
	t.Helper()
	res := s.Step(handshake)
	if res.Reply != "TACS|2|Jumble|CATS|ACTS" {
		t.Fatalf("round start reply = %q", res.Reply)
	}
	if s.State() != Active {
		t.Fatalf("state after handshake = %v, want Active", s.State())
	}
}

func TestWinScenario(t *testing.T) {
	s := newTestSession(t)
	mustStart(t, s)

	if res := s.Step("cats"); res.Reply != "CATS|Found" {
		t.Fatalf("first correct guess reply = %q", res.Reply)
	}
	if res := s.Step("cats"); res.Reply != "Duplicate|AlreadyFound" {
		t.Fatalf("repeat guess reply = %q", res.Reply)
	}
	if s.WrongGuesses() != 0 {
		t.Fatalf("duplicate incremented wrong guesses: %d", s.WrongGuesses())
	}

	res := s.Step("acts")
	if res.Reply != "ACTS|Found" {
		t.Fatalf("final guess reply = %q", res.Reply)
	}
	if s.State() != GameOver {
		t.Fatalf("state after last word = %v, want GameOver", s.State())
	}
	if res.Finished == nil || res.Finished.Outcome != "won" {
		t.Fatalf("finished = %+v, want won", res.Finished)
	}
	if res.Finished.WordsFound != 2 || res.Finished.WordCount != 2 {
		t.Fatalf("finished counts = %+v", res.Finished)
	}
}

func TestThreeWrongGuessesLoseOnThird(t *testing.T) {
	s := newTestSession(t)
	mustStart(t, s)

	for i, g := range []string{"xx", "yy"} {
		if res := s.Step(g); res.Reply != "Wrong|TryAgain" {
			t.Fatalf("wrong guess %d reply = %q", i+1, res.Reply)
		}
		if s.State() != Active {
			t.Fatalf("game over fired one guess early")
		}
	}

	res := s.Step("zz")
	if res.Reply != "GameOver|MaxWrongGuessesExceeded|CATS, ACTS" {
		t.Fatalf("third wrong reply = %q", res.Reply)
	}
	if s.State() != GameOver {
		t.Fatalf("state = %v, want GameOver", s.State())
	}
	if res.Finished == nil || res.Finished.Outcome != "lost" {
		t.Fatalf("finished = %+v, want lost", res.Finished)
	}
}

func TestHintCap(t *testing.T) {
	s := newTestSession(t)
	mustStart(t, s)

	for i := 0; i < MaxHints; i++ {
		res := s.Step("REQUEST_HINT")
		if !strings.HasPrefix(res.Reply, "HINT|starts with '") {
			t.Fatalf("hint %d reply = %q", i+1, res.Reply)
		}
	}
	if s.HintsUsed() != MaxHints {
		t.Fatalf("hints used = %d, want %d", s.HintsUsed(), MaxHints)
	}

	res := s.Step("REQUEST_HINT")
	if res.Reply != "HINT|No hints left!" {
		t.Fatalf("4th hint reply = %q", res.Reply)
	}
	if s.HintsUsed() != MaxHints || s.State() != Active || s.WrongGuesses() != 0 {
		t.Fatalf("exhausted hint mutated state")
	}
}

func TestNewGameResetsEverything(t *testing.T) {
	s := newTestSession(t)
	mustStart(t, s)

	s.Step("cats")
	s.Step("REQUEST_HINT")
	s.Step("xx")
	s.Step("TIME_UP")
	if s.State() != GameOver {
		t.Fatalf("expected GameOver after TIME_UP")
	}

	res := s.Step("NEW_GAME")
	if res.Reply != "TACS|2|Jumble|CATS|ACTS" {
		t.Fatalf("NEW_GAME reply = %q", res.Reply)
	}
	if s.State() != Active || s.WrongGuesses() != 0 || s.HintsUsed() != 0 {
		t.Fatalf("NEW_GAME did not reset counters")
	}
	// The old found set must be gone too.
	if r := s.Step("cats"); r.Reply != "CATS|Found" {
		t.Fatalf("guess after reset = %q", r.Reply)
	}
}

func TestTimeUpEndsRoundAndIsIdempotent(t *testing.T) {
	s := newTestSession(t)
	mustStart(t, s)
	s.Step("cats")

	res := s.Step("TIME_UP")
	if res.Reply != "GameOver|TimeIsUp|ACTS" {
		t.Fatalf("TIME_UP reply = %q", res.Reply)
	}
	if res.Finished == nil || res.Finished.Outcome != "timeout" {
		t.Fatalf("finished = %+v, want timeout", res.Finished)
	}

	// A second TIME_UP must not re-trigger game-over effects.
	res = s.Step("TIME_UP")
	if res.Reply != "Inactive|NoGameInProgress" {
		t.Fatalf("repeated TIME_UP reply = %q", res.Reply)
	}
	if res.Finished != nil {
		t.Fatalf("repeated TIME_UP produced a second round result")
	}
}

func TestGuessOutsideActiveRound(t *testing.T) {
	s := newTestSession(t)

	// Before any round.
	if res := s.Step("cats"); res.Reply != "Inactive|NoGameInProgress" {
		t.Fatalf("guess before handshake reply = %q", res.Reply)
	}
	if res := s.Step("NEW_GAME"); res.Reply != "Inactive|NoGameInProgress" {
		t.Fatalf("NEW_GAME before handshake reply = %q", res.Reply)
	}

	// After game over.
	mustStart(t, s)
	s.Step("TIME_UP")
	if res := s.Step("acts"); res.Reply != "Inactive|NoGameInProgress" {
		t.Fatalf("guess after game over reply = %q", res.Reply)
	}
	if s.State() != GameOver {
		t.Fatalf("rejected guess changed state to %v", s.State())
	}
}

func TestDisconnectSendsNothing(t *testing.T) {
	s := newTestSession(t)
	mustStart(t, s)

	res := s.Step("DISCONNECT")
	if !res.Close || res.Reply != "" {
		t.Fatalf("DISCONNECT result = %+v", res)
	}
}

func TestProviderFailureClosesSession(t *testing.T) {
	s := NewSession(stubProvider{err: errors.New("no puzzles")})

	res := s.Step(handshake)
	if res.Reply != "Error|PuzzleUnavailable" {
		t.Fatalf("reply = %q", res.Reply)
	}
	if !res.Close {
		t.Fatalf("provider failure did not close the session")
	}
}

func TestHandshakeRestartsMidRound(t *testing.T) {
	s := newTestSession(t)
	mustStart(t, s)
	s.Step("cats")

	res := s.Step(handshake)
	if res.Reply != "TACS|2|Jumble|CATS|ACTS" {
		t.Fatalf("mid-round handshake reply = %q", res.Reply)
	}
	if r := s.Step("cats"); r.Reply != "CATS|Found" {
		t.Fatalf("found set survived restart: %q", r.Reply)
	}
}
