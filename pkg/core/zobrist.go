package core

// Zobrist keys for position hashing, used by the repetition rule. The
// tables are filled from a fixed-seed xorshift64* generator so hashes are
// reproducible across runs.

var (
	zobristPiece    [2][7][64]uint64
	zobristCastling [16]uint64
	zobristEPFile   [8]uint64
	zobristBlack    uint64
)

type xorshift struct {
	state uint64
}

func (x *xorshift) next() uint64 {
	x.state ^= x.state >> 12
	x.state ^= x.state << 25
	x.state ^= x.state >> 27
	return x.state * 0x2545F4914F6CDD1D
}

func init() {
	rng := xorshift{state: 0x6C657373746572} // fixed seed
	for c := White; c <= Black; c++ {
		for k := Pawn; k <= King; k++ {
			for sq := A1; sq <= H8; sq++ {
				zobristPiece[c][k][sq] = rng.next()
			}
		}
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}
	for i := range zobristEPFile {
		zobristEPFile[i] = rng.next()
	}
	zobristBlack = rng.next()
}

// Hash returns the zobrist hash of the current position: piece placement,
// side to move, castling rights, and the en passant file when a capture
// onto it is actually possible. Two positions are "the same" for the
// repetition rule exactly when their hashes agree.
func (g *Game) Hash() uint64 {
	var h uint64
	for sq := A1; sq <= H8; sq++ {
		if p := g.board[sq]; p != NoPiece {
			h ^= zobristPiece[p.Color][p.Kind][sq]
		}
	}
	h ^= zobristCastling[g.castling]
	if g.epSquare != NoSquare && g.epCapturable() {
		h ^= zobristEPFile[g.epSquare.File()]
	}
	if g.turn == Black {
		h ^= zobristBlack
	}
	return h
}

// epCapturable reports whether a pawn of the side to move stands next to
// the en passant target. An unusable target does not distinguish positions.
func (g *Game) epCapturable() bool {
	dr := int8(-1) // white captures onto rank 6 from rank 5
	if g.turn == Black {
		dr = 1
	}
	for _, df := range [2]int8{-1, 1} {
		if from := g.epSquare.offset(df, dr); from != NoSquare && g.board.At(from) == (Piece{Pawn, g.turn}) {
			return true
		}
	}
	return false
}
