package core

import (
	"math/rand"
	"strings"
)

// RandomVariantFEN returns a Chess960 starting position derived from seed.
// The back rank satisfies the variant invariants: bishops on opposite
// colored squares and the king somewhere between the rooks. The same seed
// always yields the same position, so setups are reproducible.
func RandomVariantFEN(seed int64) string {
	rng := rand.New(rand.NewSource(seed))

	var rank [8]PieceKind
	free := func() []int {
		var idx []int
		for i, k := range rank {
			if k == NoKind {
				idx = append(idx, i)
			}
		}
		return idx
	}

	// Bishops first, one on a light square and one on a dark square.
	rank[2*rng.Intn(4)] = Bishop
	rank[2*rng.Intn(4)+1] = Bishop

	// Queen and knights land on any free square.
	for _, k := range [3]PieceKind{Queen, Knight, Knight} {
		f := free()
		rank[f[rng.Intn(len(f))]] = k
	}

	// Rook, king, rook fill the remaining three squares left to right,
	// which puts the king between the rooks.
	f := free()
	rank[f[0]], rank[f[1]], rank[f[2]] = Rook, King, Rook

	var sb strings.Builder
	for _, k := range rank {
		sb.WriteByte(Piece{k, Black}.FENChar())
	}
	back := sb.String()
	return back + "/pppppppp/8/8/8/8/PPPPPPPP/" + strings.ToUpper(back) + " w KQkq - 0 1"
}
