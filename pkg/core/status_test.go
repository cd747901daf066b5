package core

import "testing"

func TestCheckmate(t *testing.T) {
	cases := []struct {
		name string
		fen  string
		mate bool
	}{
		{"back rank mate", "R6k/6pp/8/8/8/8/8/K7 b - - 0 1", true},
		{"fool's mate", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", true},
		{"king can capture the rook", "6Rk/8/8/8/8/8/8/K7 b - - 0 1", false},
		{"plain check", "4k3/8/8/8/8/8/4r3/4K3 w - - 0 1", false},
	}
	for _, c := range cases {
		g := mustGame(t, c.fen)
		if got := g.Checkmate(); got != c.mate {
			t.Errorf("%s: Checkmate() = %v, want %v", c.name, got, c.mate)
		}
		if c.mate {
			if !g.InCheck() {
				t.Errorf("%s: mated side must be in check", c.name)
			}
			if n := len(g.LegalMoves()); n != 0 {
				t.Errorf("%s: %d legal moves in a mate", c.name, n)
			}
			if g.Stalemate() {
				t.Errorf("%s: mate misreported as stalemate", c.name)
			}
		}
	}
}

func TestStalemate(t *testing.T) {
	g := mustGame(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if !g.Stalemate() {
		t.Error("want stalemate")
	}
	if g.Checkmate() {
		t.Error("stalemate misreported as checkmate")
	}
	if g.InCheck() {
		t.Error("stalemated king is not in check")
	}
	if g.Outcome() != "1/2-1/2" || g.Method() != "Stalemate" {
		t.Errorf("Outcome=%s Method=%s", g.Outcome(), g.Method())
	}
}

func TestFiftyMoveDraw(t *testing.T) {
	g := mustGame(t, "4k3/8/8/8/8/8/8/R3K3 w - - 99 80")
	if g.FiftyMoveDraw() {
		t.Error("99 halfmoves is not yet a draw")
	}
	m, err := g.ParseMove("Ra2")
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Apply(m); err != nil {
		t.Fatal(err)
	}
	if !g.FiftyMoveDraw() {
		t.Error("100 halfmoves should draw")
	}
	if g.Outcome() != "1/2-1/2" {
		t.Errorf("Outcome = %s", g.Outcome())
	}
}

func TestThreefoldRepetition(t *testing.T) {
	g := NewGame()
	shuffle := []string{"Nf3", "Nf6", "Ng1", "Ng8"}
	// Two knight shuffles bring the start position up to its third
	// occurrence; anything less is not yet a draw.
	for round := 0; round < 2; round++ {
		if g.ThreefoldRepetition() {
			t.Fatalf("repetition reported too early (round %d)", round)
		}
		for _, san := range shuffle {
			m, err := g.ParseMove(san)
			if err != nil {
				t.Fatal(err)
			}
			if err := g.Apply(m); err != nil {
				t.Fatal(err)
			}
		}
	}
	if !g.ThreefoldRepetition() {
		t.Error("third occurrence of the start position should draw")
	}
	if g.Method() != "ThreefoldRepetition" {
		t.Errorf("Method = %s", g.Method())
	}
}

func TestInsufficientMaterial(t *testing.T) {
	cases := []struct {
		name string
		fen  string
		want bool
	}{
		{"bare kings", "k7/8/8/8/8/8/8/7K w - - 0 1", true},
		{"lone bishop", "k7/8/8/8/8/8/8/6BK w - - 0 1", true},
		{"lone knight", "k7/8/8/8/8/8/8/6NK w - - 0 1", true},
		{"same colored bishops", "k4b2/8/8/8/8/8/8/2B4K w - - 0 1", true},
		{"opposite colored bishops", "k3b3/8/8/8/8/8/8/2B4K w - - 0 1", false},
		{"two knights same side", "k7/8/8/8/8/8/8/5NNK w - - 0 1", false},
		{"single pawn", "k7/8/8/8/8/8/6P1/7K w - - 0 1", false},
		{"lone rook", "k7/8/8/8/8/8/8/6RK w - - 0 1", false},
	}
	for _, c := range cases {
		g := mustGame(t, c.fen)
		if got := g.InsufficientMaterial(); got != c.want {
			t.Errorf("%s: InsufficientMaterial() = %v, want %v", c.name, got, c.want)
		}
	}
}
