// internal/protocol/codec.go
//
// Encoding and framing for the line-oriented wire protocol.
//
// Framing is newline-delimited UTF-8 (LF, with a trailing CR tolerated),
// capped at MaxLineBytes per message. The `|`-joined field grammar of the
// replies is fixed; clients split on '|'.

package protocol

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// MaxLineBytes bounds a single framed message. Requests are short tokens and
// replies list at most one modest word set, so this is generous.
const MaxLineBytes = 4096

// ParseRequest classifies one trimmed inbound line. Matching is
// case-insensitive throughout: guesses case-fold anyway, so a client sending
// "new_game" gets the command, never a wrong-guess penalty.
func ParseRequest(line string) Request {
	line = strings.TrimSpace(line)
	if strings.EqualFold(line, Handshake) {
		return Request{Kind: KindHandshake}
	}
	switch {
	case strings.EqualFold(line, TokNewGame):
		return Request{Kind: KindNewGame}
	case strings.EqualFold(line, TokRequestHint):
		return Request{Kind: KindHint}
	case strings.EqualFold(line, TokTimeUp):
		return Request{Kind: KindTimeUp}
	case strings.EqualFold(line, TokDisconnect):
		return Request{Kind: KindDisconnect}
	}
	return Request{Kind: KindGuess, Word: line}
}

// NewScanner wraps r in a line scanner honoring MaxLineBytes. A line longer
// than the cap surfaces as bufio.ErrTooLong instead of silently truncating.
func NewScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1024), MaxLineBytes)
	return sc
}

// WriteLine frames one reply onto w.
func WriteLine(w io.Writer, reply string) error {
	_, err := io.WriteString(w, reply+"\n")
	return err
}

// ----------------------------- reply rendering -----------------------------

// join builds a `|`-separated reply from fields.
func join(fields ...string) string { return strings.Join(fields, "|") }

// RoundStart renders the new-round reply:
// <jumble>|<wordCount>|Jumble|<word1>|<word2>|...
func RoundStart(jumble string, words []string) string {
	fields := make([]string, 0, len(words)+3)
	fields = append(fields, jumble, strconv.Itoa(len(words)), FieldJumble)
	fields = append(fields, words...)
	return join(fields...)
}

// Found renders a correct-guess reply: <WORD>|Found.
func Found(word string) string { return join(word, FieldFound) }

// Duplicate renders the already-found reply.
func Duplicate() string { return join(FieldDuplicate, FieldAlready) }

// Wrong renders the wrong-guess reply.
func Wrong() string { return join(FieldWrong, FieldTryAgain) }

// Hint renders a hint reply with the given clue text.
func Hint(clue string) string { return join(FieldHint, clue) }

// HintExhausted renders the out-of-hints reply.
func HintExhausted() string { return join(FieldHint, NoHintsLeft) }

// GameOver renders a game-over reply for the given reason, listing the words
// the player never found.
func GameOver(reason string, unfound []string) string {
	return join(FieldGameOver, reason, strings.Join(unfound, ", "))
}

// Inactive is the sentinel sent for gameplay messages received while no
// round is active.
func Inactive() string { return join(FieldInactive, NoGame) }

// Error renders a user-facing failure reply.
func Error(what string) string { return join(FieldError, what) }

// Clue renders the human-readable hint body for a word.
func Clue(word string) string {
	r := []rune(word)
	return fmt.Sprintf("starts with '%c' and ends with '%c'", r[0], r[len(r)-1])
}
