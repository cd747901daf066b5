// Package engine is the local stand-in for an external chess engine
// process: a material evaluator and a fixed-depth alpha-beta search
// behind an asynchronous request/response service.
package engine

import "github.com/earther/chesscore/pkg/core"

// Piece values in centipawns. The bishop is worth a shade over the knight.
var pieceValues = map[core.PieceKind]int{
	core.Pawn:   100,
	core.Knight: 300,
	core.Bishop: 325,
	core.Rook:   500,
	core.Queen:  900,
	core.King:   0,
}

// Evaluate returns the static material balance of the position in
// centipawns. Positive favors White regardless of whose turn it is.
func Evaluate(g *core.Game) int {
	score := 0
	b := g.Board()
	for sq := core.A1; sq <= core.H8; sq++ {
		p := b.At(sq)
		if p == core.NoPiece {
			continue
		}
		v := pieceValues[p.Kind]
		if p.Color == core.White {
			score += v
		} else {
			score -= v
		}
	}
	return score
}

// evaluateFor returns the material balance from the side to move's view,
// the sign convention negamax wants.
func evaluateFor(g *core.Game) int {
	score := Evaluate(g)
	if g.Turn() == core.Black {
		return -score
	}
	return score
}
