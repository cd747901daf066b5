package core

// Board is a plain 64-square mailbox. It carries no game metadata and does
// no validation beyond bounds checking; Game owns the higher invariants.
type Board [64]Piece

// At returns the piece on sq. Panics with ErrOutOfBounds on an invalid
// square; that is a caller bug.
func (b *Board) At(sq Square) Piece {
	if !sq.Valid() {
		panic(ErrOutOfBounds)
	}
	return b[sq]
}

// Set places p on sq, or clears the square when p is NoPiece.
func (b *Board) Set(sq Square, p Piece) {
	if !sq.Valid() {
		panic(ErrOutOfBounds)
	}
	b[sq] = p
}

// IsOccupiedBy reports whether sq holds a piece of the given color.
func (b *Board) IsOccupiedBy(sq Square, c Color) bool {
	p := b.At(sq)
	return p != NoPiece && p.Color == c
}

// KingSquare locates the king of the given color.
func (b *Board) KingSquare(c Color) (Square, bool) {
	for sq := A1; sq <= H8; sq++ {
		if b[sq] == (Piece{King, c}) {
			return sq, true
		}
	}
	return NoSquare, false
}

// SquareColor returns the color of the square itself (for board drawing
// and the same-colored-bishops draw rule).
func SquareColor(sq Square) Color {
	if (int8(sq.File())+int8(sq.Rank()))%2 == 0 {
		return Black
	}
	return White
}
