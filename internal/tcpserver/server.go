// internal/tcpserver/server.go
//
// TCP front end for the jumble game.
// Responsibilities:
//   - Accept connections and run one session goroutine per connection.
//   - Keep every spawned goroutine supervised: the server retains the set of
//     live connections plus a WaitGroup so Shutdown can close and join them
//     instead of abandoning detached work.
//   - Contain per-connection failures: a read/write error or malformed
//     stream terminates that session only, never the listener.
//
// Ownership model: each Session's fields are touched only by its own
// connection goroutine. The server itself shares nothing mutable between
// sessions beyond the thread-safe history store and the read-only pool.

package tcpserver

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/OwenDdev/WNP-A02/internal/game"
	"github.com/OwenDdev/WNP-A02/internal/history"
	"github.com/OwenDdev/WNP-A02/internal/protocol"
)

// Server accepts player connections and dispatches sessions.
type Server struct {
	provider game.PuzzleProvider
	hist     history.Store

	ln     net.Listener
	wg     sync.WaitGroup
	mu     sync.Mutex // guards conns + closed
	conns  map[net.Conn]struct{}
	closed bool
}

// New constructs a Server. hist may be a memory store when no database is
// configured.
func New(provider game.PuzzleProvider, hist history.Store) *Server {
	return &Server{
		provider: provider,
		hist:     hist,
		conns:    make(map[net.Conn]struct{}),
	}
}

// Start listens on addr and serves until Shutdown closes the listener.
// It blocks; run it in its own goroutine.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = ln.Close()
		return errors.New("tcpserver: already shut down")
	}
	s.ln = ln
	s.mu.Unlock()

	log.Info().Str("addr", ln.Addr().String()).Msg("tcp server listening")
	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.isClosed() {
				return nil
			}
			log.Warn().Err(err).Msg("accept failed")
			continue
		}
		s.track(conn)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.untrack(conn)
			s.handleConn(conn)
		}()
	}
}

// Addr reports the bound listener address (useful for tests with ":0").
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Shutdown stops accepting, closes live connections, and joins all session
// goroutines or gives up when ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	if s.ln != nil {
		_ = s.ln.Close()
	}
	for c := range s.conns {
		_ = c.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Server) track(c net.Conn) {
	s.mu.Lock()
	s.conns[c] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) untrack(c net.Conn) {
	s.mu.Lock()
	delete(s.conns, c)
	s.mu.Unlock()
}

// ----------------------------- session loop --------------------------------

// handleConn runs one player's session until disconnect. Messages are
// processed strictly in arrival order, one reply per message; the only
// suspension points are the network read and write.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	logger := log.With().Str("remote", conn.RemoteAddr().String()).Logger()
	logger.Info().Msg("client connected")

	sess := game.NewSession(s.provider)
	sc := protocol.NewScanner(conn)

	for sc.Scan() {
		res := sess.Step(sc.Text())

		if res.Finished != nil {
			s.recordRound(conn, res.Finished, logger)
		}
		if res.Reply != "" {
			if err := protocol.WriteLine(conn, res.Reply); err != nil {
				logger.Warn().Err(err).Msg("write failed")
				return
			}
		}
		if res.Close {
			logger.Info().Str("state", sess.State().String()).Msg("session closed")
			return
		}
	}

	// Zero-byte read / half-close is an implicit DISCONNECT; a scanner error
	// (including an over-long line) tears down this session only.
	if err := sc.Err(); err != nil {
		logger.Warn().Err(err).Msg("read failed")
		return
	}
	logger.Info().Msg("client disconnected")
}

// recordRound persists a finished round, best effort.
func (s *Server) recordRound(conn net.Conn, r *game.RoundResult, logger zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	rec := history.Record{
		ID:           genID(),
		RemoteAddr:   conn.RemoteAddr().String(),
		Outcome:      r.Outcome,
		Jumble:       r.Jumble,
		WordCount:    r.WordCount,
		WordsFound:   r.WordsFound,
		WrongGuesses: r.WrongGuesses,
		HintsUsed:    r.HintsUsed,
		ElapsedMs:    int(r.Duration.Milliseconds()),
		FinishedAt:   time.Now().UTC(),
	}
	if err := s.hist.Save(ctx, rec); err != nil {
		logger.Warn().Err(err).Str("outcome", r.Outcome).Msg("record round")
		return
	}
	logger.Info().
		Str("outcome", r.Outcome).
		Int("wordsFound", r.WordsFound).
		Int("wrongGuesses", r.WrongGuesses).
		Int("hintsUsed", r.HintsUsed).
		Msg("round finished")
}

// genID creates a 22-char URL-safe, crypto-random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	s := base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(b[:])
	if len(s) > 22 {
		return s[:22]
	}
	return s
}
