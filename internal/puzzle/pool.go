// internal/puzzle/pool.go
//
// Puzzle pool management for the game server.
//
// Responsibilities:
//   - Load puzzles from a configurable directory or fall back to embedded
//     defaults.
//   - Validate every loaded puzzle; skip malformed files with a warning.
//   - Supply Next() for a uniform random draw, safe for concurrent sessions.
//
// Initialization behavior (NewPool):
//   1. If PUZZLES_DIR is set, load every *.txt file in it as one puzzle.
//   2. Otherwise fall back to the embedded defaults under defaults/.
//
// Environment variables:
//   PUZZLES_DIR=/path/to/puzzles
//
// Constraints:
//   • Every pool entry satisfies Puzzle.Validate (non-empty jumble + words).
//   • An empty pool after loading is an initialization error.

package puzzle

import (
	"crypto/rand"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// --- embedded tiny defaults (ensures server runs even if no dir configured) ---

//go:embed defaults/*.txt
var embeddedDefaults embed.FS

// Pool is a fixed set of pre-authored puzzles. It is built once at startup
// and read-only afterwards, so concurrent Next calls need no locking.
type Pool struct {
	puzzles []*Puzzle
	source  string // "dir:<path>" or "embedded", for diagnostics
}

// NewPool loads puzzles from dir, or from the embedded defaults when dir is
// empty. Returns an error if no valid puzzle survives loading.
func NewPool(dir string) (*Pool, error) {
	if dir != "" {
		ps, err := loadDir(os.DirFS(dir))
		if err != nil {
			return nil, fmt.Errorf("load puzzles from %s: %w", dir, err)
		}
		if len(ps) == 0 {
			return nil, fmt.Errorf("no valid puzzles in %s", dir)
		}
		return &Pool{puzzles: ps, source: "dir:" + dir}, nil
	}

	sub, err := fs.Sub(embeddedDefaults, "defaults")
	if err != nil {
		return nil, err
	}
	ps, err := loadDir(sub)
	if err != nil {
		return nil, fmt.Errorf("load embedded puzzles: %w", err)
	}
	if len(ps) == 0 {
		return nil, errors.New("embedded puzzle set is empty")
	}
	return &Pool{puzzles: ps, source: "embedded"}, nil
}

// NewPoolFromPuzzles builds a pool from already-constructed puzzles.
// Used by tests and by callers that author puzzles in code.
func NewPoolFromPuzzles(ps ...*Puzzle) (*Pool, error) {
	for _, p := range ps {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	if len(ps) == 0 {
		return nil, errors.New("empty puzzle set")
	}
	return &Pool{puzzles: ps, source: "literal"}, nil
}

// loadDir parses every *.txt entry in fsys. Malformed files are logged and
// skipped rather than failing the whole pool.
func loadDir(fsys fs.FS) ([]*Puzzle, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".txt") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var out []*Puzzle
	for _, name := range names {
		f, err := fsys.Open(name)
		if err != nil {
			log.Warn().Err(err).Str("file", name).Msg("skipping unreadable puzzle file")
			continue
		}
		p, perr := Parse(f)
		_ = f.Close()
		if perr != nil {
			log.Warn().Err(perr).Str("file", name).Msg("skipping malformed puzzle file")
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Next draws one puzzle uniformly at random. The draw uses an independent
// crypto/rand read per call, so concurrent sessions never share generator
// state.
func (p *Pool) Next() (*Puzzle, error) {
	if len(p.puzzles) == 0 {
		return nil, errors.New("puzzle pool is empty")
	}
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(p.puzzles))))
	if err != nil {
		return nil, err
	}
	return p.puzzles[nBig.Int64()], nil
}

// Size reports how many puzzles are loaded.
func (p *Pool) Size() int { return len(p.puzzles) }

// Source reports where the pool was loaded from (for /debug/puzzles).
func (p *Pool) Source() string { return p.source }

// LoadFile parses a single puzzle file from disk. Exposed for tooling.
func LoadFile(path string) (*Puzzle, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}
