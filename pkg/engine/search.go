package engine

import (
	"context"
	"errors"
	"sort"

	"github.com/earther/chesscore/pkg/core"
)

// mateScore is the value of delivering checkmate at the root. Deeper
// mates score slightly less, so the search prefers the short one.
const mateScore = 1_000_000

// ErrNoMove means the position is terminal: there is nothing to play.
var ErrNoMove = errors.New("engine: no legal moves")

// Result is the outcome of a search.
type Result struct {
	Move  core.Move
	Score int // centipawns from the side to move's view
	Nodes int
}

// Search runs a fixed-depth negamax with alpha-beta pruning and returns
// the best move for the side to move. The context cancels an in-flight
// search; a superseded request returns ctx.Err.
func Search(ctx context.Context, g *core.Game, depth int) (Result, error) {
	if depth < 1 {
		depth = 1
	}
	moves := g.LegalMoves()
	if len(moves) == 0 {
		return Result{}, ErrNoMove
	}
	board := g.Board()
	orderMoves(&board, moves)

	s := &searcher{ctx: ctx}
	best := Result{Score: -mateScore - 1}
	alpha, beta := -mateScore-1, mateScore+1
	for _, m := range moves {
		child := g.Clone()
		child.Apply(m)
		score := -s.negamax(child, depth-1, -beta, -alpha, 1)
		if s.err != nil {
			return Result{}, s.err
		}
		if score > best.Score {
			best.Move, best.Score = m, score
		}
		if score > alpha {
			alpha = score
		}
	}
	best.Nodes = s.nodes
	return best, nil
}

type searcher struct {
	ctx   context.Context
	nodes int
	err   error
}

func (s *searcher) negamax(g *core.Game, depth, alpha, beta, ply int) int {
	s.nodes++
	if s.nodes%1024 == 0 {
		if err := s.ctx.Err(); err != nil {
			s.err = err
			return 0
		}
	}

	moves := g.LegalMoves()
	if len(moves) == 0 {
		if g.InCheck() {
			return -(mateScore - ply) // mated; farther is better for the loser
		}
		return 0 // stalemate
	}
	if g.FiftyMoveDraw() || g.ThreefoldRepetition() || g.InsufficientMaterial() {
		return 0
	}
	if depth == 0 {
		return evaluateFor(g)
	}

	board := g.Board()
	orderMoves(&board, moves)
	for _, m := range moves {
		child := g.Clone()
		child.Apply(m)
		score := -s.negamax(child, depth-1, -beta, -alpha, ply+1)
		if s.err != nil {
			return 0
		}
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

// orderMoves puts captures first, biggest victims up front. Pure
// heuristic: it only tightens pruning.
func orderMoves(b *core.Board, moves []core.Move) {
	sort.SliceStable(moves, func(i, j int) bool {
		return captureWeight(b, moves[i]) > captureWeight(b, moves[j])
	})
}

func captureWeight(b *core.Board, m core.Move) int {
	w := 0
	if m.IsCapture() {
		if victim := b.At(m.To); victim != core.NoPiece {
			w = pieceValues[victim.Kind]
		} else {
			w = pieceValues[core.Pawn] // en passant victim is off-square
		}
	}
	if m.Promo != core.NoKind {
		w += pieceValues[m.Promo]
	}
	return w
}
