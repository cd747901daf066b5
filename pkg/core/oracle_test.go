package core

import (
	"testing"

	"github.com/notnil/chess"
)

// These tests cross-check the local rules against notnil/chess, the
// library this engine replaced.

var oracleFENs = []string{
	StartFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
	"r3k2r/8/8/8/8/5r2/8/R3K2R w KQkq - 0 1",
	"8/4P2k/8/8/8/8/8/4K3 w - - 0 1",
	"R6k/6pp/8/8/8/8/8/K7 b - - 0 1",
	"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
}

func oracleGame(t *testing.T, fen string) *chess.Game {
	t.Helper()
	opt, err := chess.FEN(fen)
	if err != nil {
		t.Fatalf("oracle rejects %q: %v", fen, err)
	}
	return chess.NewGame(opt)
}

func TestLegalMoveCountMatchesOracle(t *testing.T) {
	for _, fen := range oracleFENs {
		g := mustGame(t, fen)
		oracle := oracleGame(t, fen)
		if got, want := len(g.LegalMoves()), len(oracle.ValidMoves()); got != want {
			t.Errorf("%s: %d legal moves, oracle says %d", fen, got, want)
		}
	}
}

func TestFENMatchesOracle(t *testing.T) {
	for _, fen := range oracleFENs {
		g := mustGame(t, fen)
		oracle := oracleGame(t, fen)
		if got, want := g.FEN(), oracle.Position().String(); got != want {
			t.Errorf("FEN disagreement:\n ours   %s\n oracle %s", got, want)
		}
	}
}

func TestApplyAgreesWithOracle(t *testing.T) {
	g := NewGame()
	oracle := chess.NewGame(chess.UseNotation(chess.UCINotation{}))
	for _, uci := range []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1b5", "a7a6", "b5c6", "d7c6", "e1g1"} {
		m, err := g.ParseMove(uci)
		if err != nil {
			t.Fatalf("%s: %v", uci, err)
		}
		if err := g.Apply(m); err != nil {
			t.Fatalf("%s: %v", uci, err)
		}
		if err := oracle.MoveStr(uci); err != nil {
			t.Fatalf("oracle %s: %v", uci, err)
		}
		if got, want := g.FEN(), oracle.Position().String(); got != want {
			t.Fatalf("after %s:\n ours   %s\n oracle %s", uci, got, want)
		}
	}
}
