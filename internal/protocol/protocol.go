// internal/protocol/protocol.go
//
// Wire protocol shared by the TCP server and its clients.
//
// Requests are bare text tokens, one per line. Replies are `|`-joined text
// fields, one per line. Every request gets exactly one reply, except
// DISCONNECT which gets none.

package protocol

// Handshake is the literal a client sends to bootstrap its first round on a
// fresh connection.
const Handshake = "hello from client - start game"

// Control tokens. Anything on the wire that is not one of these (or the
// handshake) is treated as a guess.
const (
	TokNewGame     = "NEW_GAME"
	TokRequestHint = "REQUEST_HINT"
	TokTimeUp      = "TIME_UP"
	TokDisconnect  = "DISCONNECT"
)

// Reply field literals.
const (
	FieldJumble    = "Jumble"
	FieldFound     = "Found"
	FieldDuplicate = "Duplicate"
	FieldAlready   = "AlreadyFound"
	FieldWrong     = "Wrong"
	FieldTryAgain  = "TryAgain"
	FieldHint      = "HINT"
	FieldGameOver  = "GameOver"
	FieldInactive  = "Inactive"
	FieldError     = "Error"

	ReasonMaxWrong = "MaxWrongGuessesExceeded"
	ReasonTimeUp   = "TimeIsUp"

	NoHintsLeft       = "No hints left!"
	NoGame            = "NoGameInProgress"
	PuzzleUnavailable = "PuzzleUnavailable"
)

// RequestKind classifies one decoded inbound line.
type RequestKind int

const (
	KindGuess RequestKind = iota
	KindHandshake
	KindNewGame
	KindHint
	KindTimeUp
	KindDisconnect
)

// Request is one decoded inbound message. Word carries the raw guess text
// for KindGuess and is empty otherwise.
type Request struct {
	Kind RequestKind
	Word string
}
