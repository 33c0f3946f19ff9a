// internal/game/hint.go
//
// Hint generation: pick one unfound word at random and describe its first
// and last letter without revealing the word itself.

package game

import (
	"crypto/rand"
	"math/big"

	"github.com/OwenDdev/WNP-A02/internal/protocol"
)

// AllFoundClue is returned when there is nothing left to hint. A win flips
// the session to GameOver before the unfound set empties out, so this is a
// defensive branch rather than a reachable reply.
const AllFoundClue = "All words found!"

// Hint selects one element of unfound uniformly at random and renders the
// first/last-letter clue. Each call draws independently from crypto/rand, so
// concurrent sessions never share generator state and the same word may be
// hinted twice across calls.
func Hint(unfound []string) string {
	if len(unfound) == 0 {
		return AllFoundClue
	}
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(unfound))))
	if err != nil {
		// rand.Reader failing is effectively unreachable; fall back to the
		// first unfound word rather than dropping the reply.
		return protocol.Clue(unfound[0])
	}
	return protocol.Clue(unfound[nBig.Int64()])
}
