package tcpserver

import (
	"bufio"
	"context"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/OwenDdev/WNP-A02/internal/history"
	"github.com/OwenDdev/WNP-A02/internal/protocol"
	"github.com/OwenDdev/WNP-A02/internal/puzzle"
)

func newTestServer(t *testing.T) (*Server, history.Store) {
	t.Helper()
	pool, err := puzzle.NewPoolFromPuzzles(&puzzle.Puzzle{Jumble: "TACS", Words: []string{"CATS", "ACTS"}})
	if err != nil {
		t.Fatal(err)
	}
	hist := history.NewMemoryStore()
	return New(pool, hist), hist
}

// pipeClient drives one session over an in-process pipe, write-then-read in
// lockstep the way a real client blocks on each round trip.
type pipeClient struct {
	t    *testing.T
	conn net.Conn
	br   *bufio.Reader
}

func (c *pipeClient) roundTrip(line string) string {
	c.t.Helper()
	if err := protocol.WriteLine(c.conn, line); err != nil {
		c.t.Fatalf("write %q: %v", line, err)
	}
	reply, err := c.br.ReadString('\n')
	if err != nil {
		c.t.Fatalf("read reply to %q: %v", line, err)
	}
	return strings.TrimSuffix(reply, "\n")
}

func TestSessionLoopFullRound(t *testing.T) {
	srv, hist := newTestServer(t)

	client, server := net.Pipe()
	defer client.Close()
	done := make(chan struct{})
	go func() {
		srv.handleConn(server)
		close(done)
	}()

	c := &pipeClient{t: t, conn: client, br: bufio.NewReader(client)}

	if got := c.roundTrip(protocol.Handshake); got != "TACS|2|Jumble|CATS|ACTS" {
		t.Fatalf("handshake reply = %q", got)
	}
	if got := c.roundTrip("cats"); got != "CATS|Found" {
		t.Fatalf("guess reply = %q", got)
	}
	if got := c.roundTrip("acts"); got != "ACTS|Found" {
		t.Fatalf("winning guess reply = %q", got)
	}

	// The connection survives game over: replay without reconnecting.
	if got := c.roundTrip("NEW_GAME"); got != "TACS|2|Jumble|CATS|ACTS" {
		t.Fatalf("replay reply = %q", got)
	}

	// DISCONNECT gets no reply; the server closes the connection.
	if err := protocol.WriteLine(client, "DISCONNECT"); err != nil {
		t.Fatalf("write DISCONNECT: %v", err)
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("session loop did not exit after DISCONNECT")
	}
	if _, err := c.br.ReadString('\n'); err != io.EOF {
		t.Fatalf("expected EOF after DISCONNECT, got %v", err)
	}

	// The finished round was recorded.
	recs, err := hist.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recs) != 1 || recs[0].Outcome != "won" || recs[0].WordsFound != 2 {
		t.Fatalf("history = %+v, want one won round", recs)
	}
}

func TestSessionLoopAbruptClose(t *testing.T) {
	srv, _ := newTestServer(t)

	client, server := net.Pipe()
	done := make(chan struct{})
	go func() {
		srv.handleConn(server)
		close(done)
	}()

	c := &pipeClient{t: t, conn: client, br: bufio.NewReader(client)}
	_ = c.roundTrip(protocol.Handshake)

	// Mid-game disconnect terminates this session without fuss.
	_ = client.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("session loop did not exit after client close")
	}
}

func TestStartServesAndShutdownJoins(t *testing.T) {
	srv, _ := newTestServer(t)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start("127.0.0.1:0") }()

	var addr net.Addr
	for i := 0; i < 100 && addr == nil; i++ {
		addr = srv.Addr()
		time.Sleep(10 * time.Millisecond)
	}
	if addr == nil {
		t.Fatalf("listener never came up")
	}

	conn, err := net.Dial("tcp", addr.String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	c := &pipeClient{t: t, conn: conn, br: bufio.NewReader(conn)}
	if got := c.roundTrip(protocol.Handshake); !strings.HasPrefix(got, "TACS|") {
		t.Fatalf("handshake reply = %q", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Start returned %v after shutdown", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Start did not return after shutdown")
	}

	// The live connection was closed as part of shutdown.
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	if _, err := c.br.ReadString('\n'); err == nil {
		t.Fatalf("expected closed connection after shutdown")
	}
}
