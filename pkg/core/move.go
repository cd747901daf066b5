package core

// MoveFlag marks the special effects of a move.
type MoveFlag uint8

const (
	FlagCapture MoveFlag = 1 << iota
	FlagEnPassant
	FlagCastle
	FlagDoublePush
)

// Move is one move relative to the position it was generated from. It is
// meaningless against any other position.
type Move struct {
	From  Square
	To    Square
	Promo PieceKind
	Flags MoveFlag
}

func (m Move) IsCapture() bool {
	return m.Flags&FlagCapture != 0
}

func (m Move) IsEnPassant() bool {
	return m.Flags&FlagEnPassant != 0
}

func (m Move) IsCastle() bool {
	return m.Flags&FlagCastle != 0
}

// String renders the move in coordinate (UCI) form, e.g. "e2e4", "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promo != NoKind {
		s += string(rune(m.Promo.String()[0] + ('a' - 'A')))
	}
	return s
}

// applyToBoard performs the board mechanics of m: moving the piece,
// removing a pawn taken en passant, relocating the rook on castles and
// swapping in the promotion piece. Metadata is Game's job.
func applyToBoard(b *Board, m Move) {
	p := b.At(m.From)
	b.Set(m.From, NoPiece)

	if m.IsEnPassant() {
		// The captured pawn sits beside the destination, on the mover's rank.
		b.Set(NewSquare(m.To.File(), m.From.Rank()), NoPiece)
	}

	if m.Promo != NoKind {
		p = Piece{m.Promo, p.Color}
	}
	b.Set(m.To, p)

	if m.IsCastle() {
		r := m.From.Rank()
		if m.To.File() == 6 { // kingside: rook h -> f
			b.Set(NewSquare(5, r), b.At(NewSquare(7, r)))
			b.Set(NewSquare(7, r), NoPiece)
		} else { // queenside: rook a -> d
			b.Set(NewSquare(3, r), b.At(NewSquare(0, r)))
			b.Set(NewSquare(0, r), NoPiece)
		}
	}
}
