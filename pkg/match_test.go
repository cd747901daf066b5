package pkg

import (
	"bufio"
	"net"
	"sync"
	"testing"

	"github.com/earther/chesscore/pkg/core"
)

// readMessage pulls the next envelope off a test connection.
func readMessage(t *testing.T, scanner *bufio.Scanner) MessageTransport {
	t.Helper()
	if !scanner.Scan() {
		t.Fatal("connection closed early")
	}
	var mt MessageTransport
	if err := Decode(scanner.Bytes(), &mt); err != nil {
		t.Fatal(err)
	}
	return mt
}

func sendMove(t *testing.T, conn net.Conn, move string) {
	t.Helper()
	mt := MessageTransport{MsgType: TypeMessageMove, Data: Encode(MessageMove{Move: move})}
	if _, err := conn.Write(append(Encode(mt), '\n')); err != nil {
		t.Fatal(err)
	}
}

func waitForGame(t *testing.T, scanner *bufio.Scanner) MessageGame {
	t.Helper()
	for {
		mt := readMessage(t, scanner)
		if mt.MsgType != TypeMessageGame {
			continue
		}
		var mg MessageGame
		if err := Decode(mt.Data, &mg); err != nil {
			t.Fatal(err)
		}
		return mg
	}
}

func TestMatchSeatsAndMoves(t *testing.T) {
	m := NewMatch("test-match")
	defer m.Close()

	whiteSrv, whiteCl := net.Pipe()
	blackSrv, blackCl := net.Pipe()
	m.AddConn(whiteSrv, "alice")
	m.AddConn(blackSrv, "bob")

	whiteIn := bufio.NewScanner(whiteCl)
	blackIn := bufio.NewScanner(blackCl)

	// Both players get their seat assignment first.
	mt := readMessage(t, whiteIn)
	if mt.MsgType != TypeMessageConnect {
		t.Fatalf("want connect, got %s", mt.MsgType)
	}
	var connect MessageConnect
	Decode(mt.Data, &connect)
	if connect.Color != White || !connect.IsTurn {
		t.Fatalf("first seat: %+v", connect)
	}
	mt = readMessage(t, blackIn)
	Decode(mt.Data, &connect)
	if connect.Color != Black || connect.IsTurn {
		t.Fatalf("second seat: %+v", connect)
	}

	// White opens; both sides hear about it in SAN.
	sendMove(t, whiteCl, "e2e4")
	mg := waitForGame(t, whiteIn)
	if mg.LastMove != "e4" || mg.IsTurn {
		t.Fatalf("white's echo: %+v", mg)
	}
	mg = waitForGame(t, blackIn)
	if mg.LastMove != "e4" || !mg.IsTurn {
		t.Fatalf("black's echo: %+v", mg)
	}
	if mg.Outcome != "*" {
		t.Fatalf("game should be running, got %s", mg.Outcome)
	}
}

func TestMatchRejectsIllegalAndOutOfTurn(t *testing.T) {
	m := NewMatch("test-match")
	defer m.Close()

	whiteSrv, whiteCl := net.Pipe()
	blackSrv, blackCl := net.Pipe()
	m.AddConn(whiteSrv, "alice")
	m.AddConn(blackSrv, "bob")

	whiteIn := bufio.NewScanner(whiteCl)
	blackIn := bufio.NewScanner(blackCl)
	readMessage(t, whiteIn) // connect
	readMessage(t, blackIn)

	// Black may not move first.
	sendMove(t, blackCl, "e7e5")
	if mg := waitForGame(t, blackIn); mg.Msg != "not your turn" {
		t.Fatalf("want turn rejection, got %+v", mg)
	}

	// An illegal move bounces with a reason and leaves the game alone.
	sendMove(t, whiteCl, "e2e5")
	mg := waitForGame(t, whiteIn)
	if mg.Msg == "" || !mg.IsTurn {
		t.Fatalf("want rejection with reason, got %+v", mg)
	}
	if m.Game.FEN() != "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1" {
		t.Fatal("rejected move changed the position")
	}
}

func TestMatchResignation(t *testing.T) {
	m := NewMatch("test-match")
	defer m.Close()

	whiteSrv, whiteCl := net.Pipe()
	blackSrv, blackCl := net.Pipe()
	m.AddConn(whiteSrv, "alice")
	m.AddConn(blackSrv, "bob")

	whiteIn := bufio.NewScanner(whiteCl)
	blackIn := bufio.NewScanner(blackCl)
	readMessage(t, whiteIn)
	readMessage(t, blackIn)

	mt := MessageTransport{MsgType: TypeMessageAction, Data: Encode(MessageAction{Action: ActionResign})}
	if _, err := whiteCl.Write(append(Encode(mt), '\n')); err != nil {
		t.Fatal(err)
	}
	mg := waitForGame(t, blackIn)
	if mg.Outcome != "0-1" || mg.Method != "Resignation" {
		t.Fatalf("want black win by resignation, got %+v", mg)
	}
	waitForGame(t, whiteIn) // white's copy of the broadcast

	// No more moves once the game is decided.
	sendMove(t, whiteCl, "e2e4")
	if mg := waitForGame(t, whiteIn); mg.Msg != "the game is over" {
		t.Fatalf("want game-over rejection, got %+v", mg)
	}
}

func TestMatchCloseWithPendingTraffic(t *testing.T) {
	m := NewMatch("test-match")

	srv, cl := net.Pipe()
	m.AddConn(srv, "alice")
	sc := bufio.NewScanner(cl)
	readMessage(t, sc) // connect

	// Close while a move may still be in flight. The loop must stop
	// cleanly instead of broadcasting to disconnected players.
	sendMove(t, cl, "e2e4")
	m.Close()

	// Late traffic is dropped, not delivered to a dead loop.
	m.In <- MessageTransport{MsgType: TypeMessageMove, Data: Encode(MessageMove{Move: "d2d4"})}
	m.AddConn(newClosedConn(t), "latecomer")

	m.Close() // idempotent
}

func newClosedConn(t *testing.T) net.Conn {
	t.Helper()
	srv, cl := net.Pipe()
	cl.Close()
	return srv
}

func TestMatchViewersJoinDuringPlay(t *testing.T) {
	m := NewMatch("test-match")
	defer m.Close()

	whiteSrv, whiteCl := net.Pipe()
	blackSrv, blackCl := net.Pipe()
	m.AddConn(whiteSrv, "alice")
	m.AddConn(blackSrv, "bob")

	whiteIn := bufio.NewScanner(whiteCl)
	blackIn := bufio.NewScanner(blackCl)
	readMessage(t, whiteIn)
	readMessage(t, blackIn)

	// Viewers join while moves are being played. Every one of them must
	// see a parseable snapshot of the game.
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			srv, view := net.Pipe()
			m.AddConn(srv, "viewer")
			sc := bufio.NewScanner(view)
			if !sc.Scan() {
				t.Error("viewer connection closed early")
				return
			}
			var mt MessageTransport
			if err := Decode(sc.Bytes(), &mt); err != nil {
				t.Error(err)
				return
			}
			var connect MessageConnect
			if err := Decode(mt.Data, &connect); err != nil {
				t.Error(err)
				return
			}
			if connect.Color != Viewer {
				t.Errorf("late join seated as %s", connect.Color)
			}
			if _, err := core.ParseFEN(connect.Fen); err != nil {
				t.Errorf("viewer got a torn position %q: %v", connect.Fen, err)
			}
		}()
	}

	conns := [2]net.Conn{whiteCl, blackCl}
	scanners := [2]*bufio.Scanner{whiteIn, blackIn}
	for i, mv := range []string{"e2e4", "e7e5", "g1f3", "b8c6"} {
		sendMove(t, conns[i%2], mv)
		waitForGame(t, scanners[0])
		waitForGame(t, scanners[1])
	}
	wg.Wait()
}

func TestMatchTimeForfeit(t *testing.T) {
	// No time at all: White's flag falls on the first clock sweep.
	m := NewTimedMatch("test-match", 0, 0)
	defer m.Close()

	whiteSrv, whiteCl := net.Pipe()
	blackSrv, blackCl := net.Pipe()
	m.AddConn(whiteSrv, "alice")
	m.AddConn(blackSrv, "bob")

	whiteIn := bufio.NewScanner(whiteCl)
	blackIn := bufio.NewScanner(blackCl)
	readMessage(t, whiteIn)
	readMessage(t, blackIn)

	mg := waitForGame(t, blackIn)
	if mg.Outcome != "0-1" || mg.Method != "Time forfeit" {
		t.Fatalf("want black win on time, got %+v", mg)
	}
	if mg.Msg != "White ran out of time" {
		t.Errorf("note = %q", mg.Msg)
	}
}
