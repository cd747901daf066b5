package engine

import (
	"context"
	"testing"
	"time"

	"github.com/earther/chesscore/pkg/core"
)

func TestSearchFindsMateInOne(t *testing.T) {
	cases := []struct {
		fen  string
		want string
	}{
		// Back rank mate.
		{"6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", "a1a8"},
		// Scholar's mate delivery.
		{"r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5Q2/PPPP1PPP/RNB1K1NR w KQkq - 4 4", "f3f7"},
	}
	for _, c := range cases {
		g := mustGame(t, c.fen)
		res, err := Search(context.Background(), g, 3)
		if err != nil {
			t.Fatalf("%s: %v", c.fen, err)
		}
		if res.Move.String() != c.want {
			t.Errorf("%s: best = %s (score %d), want %s", c.fen, res.Move, res.Score, c.want)
		}
		if res.Score < mateScore-10 {
			t.Errorf("%s: mate should score near %d, got %d", c.fen, mateScore, res.Score)
		}
	}
}

func TestSearchPrefersShorterMate(t *testing.T) {
	// Queen and rook vs bare king: mate in one exists, and its score
	// must beat any slower mate the deeper search also sees.
	g := mustGame(t, "k7/2R5/1Q6/8/8/8/8/4K3 w - - 0 1")
	res, err := Search(context.Background(), g, 4)
	if err != nil {
		t.Fatal(err)
	}
	child := g.Clone()
	if err := child.Apply(res.Move); err != nil {
		t.Fatal(err)
	}
	if !child.Checkmate() {
		t.Errorf("best move %s does not mate immediately", res.Move)
	}
}

func TestSearchTakesHangingQueen(t *testing.T) {
	// Black queen is loose on d5.
	g := mustGame(t, "4k3/8/8/3q4/8/8/3R4/4K3 w - - 0 1")
	res, err := Search(context.Background(), g, 2)
	if err != nil {
		t.Fatal(err)
	}
	if res.Move.String() != "d2d5" {
		t.Errorf("best = %s, want d2d5", res.Move)
	}
}

func TestSearchTerminalPosition(t *testing.T) {
	g := mustGame(t, "R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if _, err := Search(context.Background(), g, 3); err != ErrNoMove {
		t.Errorf("want ErrNoMove, got %v", err)
	}
}

func TestSearchCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Search(ctx, core.NewGame(), 6)
	if err == nil {
		t.Error("cancelled search should report its context error")
	}
}

func TestSearchDeterministic(t *testing.T) {
	g := mustGame(t, "r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4")
	a, err := Search(context.Background(), g, 3)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Search(context.Background(), g, 3)
	if err != nil {
		t.Fatal(err)
	}
	if a.Move != b.Move || a.Score != b.Score {
		t.Errorf("same input, different answers: %v/%d vs %v/%d", a.Move, a.Score, b.Move, b.Score)
	}
}

func TestSearchRespectsTimeBudget(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	Search(ctx, core.NewGame(), 50)
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("search ignored its deadline, ran %v", elapsed)
	}
}
