package core

var (
	knightSteps = [8][2]int8{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps   = [8][2]int8{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	bishopDirs  = [4][2]int8{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	rookDirs    = [4][2]int8{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
)

// IsSquareAttacked reports whether any piece of color by reaches sq on b.
// It is shared by the legality filter, the castling rules and the check
// queries.
func IsSquareAttacked(b *Board, sq Square, by Color) bool {
	for _, d := range knightSteps {
		if from := sq.offset(d[0], d[1]); from != NoSquare && b.At(from) == (Piece{Knight, by}) {
			return true
		}
	}
	for _, d := range kingSteps {
		if from := sq.offset(d[0], d[1]); from != NoSquare && b.At(from) == (Piece{King, by}) {
			return true
		}
	}
	// Sliders: walk each ray until the first occupied square.
	for _, d := range rookDirs {
		for from := sq.offset(d[0], d[1]); from != NoSquare; from = from.offset(d[0], d[1]) {
			p := b.At(from)
			if p == NoPiece {
				continue
			}
			if p.Color == by && (p.Kind == Rook || p.Kind == Queen) {
				return true
			}
			break
		}
	}
	for _, d := range bishopDirs {
		for from := sq.offset(d[0], d[1]); from != NoSquare; from = from.offset(d[0], d[1]) {
			p := b.At(from)
			if p == NoPiece {
				continue
			}
			if p.Color == by && (p.Kind == Bishop || p.Kind == Queen) {
				return true
			}
			break
		}
	}
	// Pawns attack diagonally toward the enemy, so look one rank back
	// toward the attacker's side.
	dr := int8(-1)
	if by == Black {
		dr = 1
	}
	for _, df := range [2]int8{-1, 1} {
		if from := sq.offset(df, dr); from != NoSquare && b.At(from) == (Piece{Pawn, by}) {
			return true
		}
	}
	return false
}

// LegalMoves returns every legal move for the side to move. Ordering is
// stable for a given position: squares are scanned A1..H8.
func (g *Game) LegalMoves() []Move {
	var moves []Move
	for sq := A1; sq <= H8; sq++ {
		if g.board.IsOccupiedBy(sq, g.turn) {
			moves = append(moves, g.legalMovesFrom(sq)...)
		}
	}
	return moves
}

// LegalMovesFrom returns the legal moves of the piece on sq, or nothing
// when sq is empty or holds an enemy piece. This is the query the UI uses
// to highlight targets.
func (g *Game) LegalMovesFrom(sq Square) []Move {
	if !sq.Valid() {
		panic(ErrOutOfBounds)
	}
	if !g.board.IsOccupiedBy(sq, g.turn) {
		return nil
	}
	return g.legalMovesFrom(sq)
}

// legalMovesFrom filters the pseudo-legal moves of the piece on sq by
// applying each to a scratch board and rejecting those that leave the
// mover's king attacked. Pins and discovered checks fall out of this
// without a dedicated pass.
func (g *Game) legalMovesFrom(sq Square) []Move {
	pseudo := g.pseudoMovesFrom(sq)
	legal := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		scratch := g.board
		applyToBoard(&scratch, m)
		king, ok := scratch.KingSquare(g.turn)
		if !ok || !IsSquareAttacked(&scratch, king, g.turn.Other()) {
			legal = append(legal, m)
		}
	}
	return legal
}

func (g *Game) pseudoMovesFrom(sq Square) []Move {
	p := g.board.At(sq)
	var moves []Move
	switch p.Kind {
	case Pawn:
		moves = g.pawnMoves(sq, p.Color)
	case Knight:
		moves = g.stepMoves(sq, p.Color, knightSteps[:])
	case Bishop:
		moves = g.slideMoves(sq, p.Color, bishopDirs[:])
	case Rook:
		moves = g.slideMoves(sq, p.Color, rookDirs[:])
	case Queen:
		moves = g.slideMoves(sq, p.Color, rookDirs[:])
		moves = append(moves, g.slideMoves(sq, p.Color, bishopDirs[:])...)
	case King:
		moves = g.stepMoves(sq, p.Color, kingSteps[:])
		moves = append(moves, g.castleMoves(p.Color)...)
	}
	return moves
}

func (g *Game) stepMoves(sq Square, c Color, steps [][2]int8) []Move {
	var moves []Move
	for _, d := range steps {
		to := sq.offset(d[0], d[1])
		if to == NoSquare {
			continue
		}
		switch occ := g.board.At(to); {
		case occ == NoPiece:
			moves = append(moves, Move{From: sq, To: to})
		case occ.Color != c:
			moves = append(moves, Move{From: sq, To: to, Flags: FlagCapture})
		}
	}
	return moves
}

func (g *Game) slideMoves(sq Square, c Color, dirs [][2]int8) []Move {
	var moves []Move
	for _, d := range dirs {
		for to := sq.offset(d[0], d[1]); to != NoSquare; to = to.offset(d[0], d[1]) {
			occ := g.board.At(to)
			if occ == NoPiece {
				moves = append(moves, Move{From: sq, To: to})
				continue
			}
			if occ.Color != c {
				moves = append(moves, Move{From: sq, To: to, Flags: FlagCapture})
			}
			break
		}
	}
	return moves
}

func (g *Game) pawnMoves(sq Square, c Color) []Move {
	dir, start, promo := int8(1), Rank(1), Rank(7)
	if c == Black {
		dir, start, promo = -1, 6, 0
	}
	var moves []Move

	// Advances.
	if one := sq.offset(0, dir); one != NoSquare && g.board.At(one) == NoPiece {
		moves = appendPawnMove(moves, Move{From: sq, To: one}, promo)
		if sq.Rank() == start {
			if two := sq.offset(0, 2*dir); g.board.At(two) == NoPiece {
				moves = append(moves, Move{From: sq, To: two, Flags: FlagDoublePush})
			}
		}
	}

	// Diagonal captures, including onto the en passant target.
	for _, df := range [2]int8{-1, 1} {
		to := sq.offset(df, dir)
		if to == NoSquare {
			continue
		}
		if g.board.IsOccupiedBy(to, c.Other()) {
			moves = appendPawnMove(moves, Move{From: sq, To: to, Flags: FlagCapture}, promo)
		} else if to == g.epSquare {
			moves = append(moves, Move{From: sq, To: to, Flags: FlagCapture | FlagEnPassant})
		}
	}
	return moves
}

// appendPawnMove expands a pawn move reaching the last rank into the four
// promotion choices.
func appendPawnMove(moves []Move, m Move, promo Rank) []Move {
	if m.To.Rank() != promo {
		return append(moves, m)
	}
	for _, k := range [4]PieceKind{Queen, Rook, Bishop, Knight} {
		m.Promo = k
		moves = append(moves, m)
	}
	return moves
}

// castleMoves generates castling for c when the right is intact, the
// squares between king and rook are empty, the pieces are on their home
// squares, and the king neither stands on, passes through nor lands on an
// attacked square.
func (g *Game) castleMoves(c Color) []Move {
	rank := Rank(0)
	kingRight, queenRight := CastleWhiteKing, CastleWhiteQueen
	if c == Black {
		rank = 7
		kingRight, queenRight = CastleBlackKing, CastleBlackQueen
	}
	kingSq := NewSquare(4, rank)
	if g.board.At(kingSq) != (Piece{King, c}) {
		return nil
	}
	enemy := c.Other()
	if IsSquareAttacked(&g.board, kingSq, enemy) {
		return nil
	}

	var moves []Move
	if g.castling&kingRight != 0 && g.board.At(NewSquare(7, rank)) == (Piece{Rook, c}) {
		f1, g1 := NewSquare(5, rank), NewSquare(6, rank)
		if g.board.At(f1) == NoPiece && g.board.At(g1) == NoPiece &&
			!IsSquareAttacked(&g.board, f1, enemy) && !IsSquareAttacked(&g.board, g1, enemy) {
			moves = append(moves, Move{From: kingSq, To: g1, Flags: FlagCastle})
		}
	}
	if g.castling&queenRight != 0 && g.board.At(NewSquare(0, rank)) == (Piece{Rook, c}) {
		b1, c1, d1 := NewSquare(1, rank), NewSquare(2, rank), NewSquare(3, rank)
		if g.board.At(b1) == NoPiece && g.board.At(c1) == NoPiece && g.board.At(d1) == NoPiece &&
			!IsSquareAttacked(&g.board, c1, enemy) && !IsSquareAttacked(&g.board, d1, enemy) {
			moves = append(moves, Move{From: kingSq, To: c1, Flags: FlagCastle})
		}
	}
	return moves
}
