// internal/game/types.go
//
// Core type definitions for the jumble game engine.
// Defines:
//   - State: tagged session state (awaiting start / active / game over).
//   - Outcome: result of evaluating one guess.
//   - RoundResult: summary of a finished round, consumed by the history store.

package game

import "time"

// State is the session's protocol phase. Transitions are driven exclusively
// by Step; there is no other way to move between states.
type State int

const (
	// AwaitingStart is the initial state: connected, no round loaded yet.
	AwaitingStart State = iota
	// Active means a round is in progress and guesses are evaluated.
	Active
	// GameOver means the round ended (win, loss, or timeout). Only NEW_GAME,
	// the handshake, and DISCONNECT do anything here.
	GameOver
)

// String reports a coarse name for logging.
func (s State) String() string {
	switch s {
	case AwaitingStart:
		return "awaiting_start"
	case Active:
		return "active"
	case GameOver:
		return "game_over"
	}
	return "unknown"
}

// OutcomeKind classifies one evaluated guess.
type OutcomeKind int

const (
	// OutcomeWrong: no solution word matched (includes malformed input).
	OutcomeWrong OutcomeKind = iota
	// OutcomeFound: a solution word matched for the first time.
	OutcomeFound
	// OutcomeDuplicate: a solution word matched but was already found.
	OutcomeDuplicate
	// OutcomeSystem: the text is a control token, not a guess.
	OutcomeSystem
)

// Outcome is the result of evaluating one guess. Word carries the canonical
// (uppercase, as authored) solution word for Found and Duplicate.
type Outcome struct {
	Kind OutcomeKind
	Word string
}

// Game limits, fixed per round and reset on every NEW_GAME.
const (
	MaxWrongGuesses = 3
	MaxHints        = 3
)

// RoundResult summarizes one finished round.
type RoundResult struct {
	Outcome      string // "won" | "lost" | "timeout"
	Jumble       string
	WordCount    int
	WordsFound   int
	WrongGuesses int
	HintsUsed    int
	Duration     time.Duration
}
