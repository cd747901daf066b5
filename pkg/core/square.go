package core

// A File is a board column, 0 ("a") through 7 ("h").
type File int8

func (f File) String() string {
	return string(rune('a' + f))
}

// A Rank is a board row, 0 ("1") through 7 ("8").
type Rank int8

func (r Rank) String() string {
	return string(rune('1' + r))
}

// A Square is one of the 64 board squares. A1 is 0, B1 is 1, H8 is 63.
type Square int8

// NoSquare marks an absent square (e.g. no en passant target).
const NoSquare Square = -1

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// NewSquare builds a square from file and rank. It panics with
// ErrOutOfBounds when either coordinate falls outside [0,7].
func NewSquare(f File, r Rank) Square {
	if f < 0 || f > 7 || r < 0 || r > 7 {
		panic(ErrOutOfBounds)
	}
	return Square(int8(r)*8 + int8(f))
}

func (sq Square) File() File {
	return File(sq % 8)
}

func (sq Square) Rank() Rank {
	return Rank(sq / 8)
}

// Valid reports whether sq addresses a real board square.
func (sq Square) Valid() bool {
	return sq >= A1 && sq <= H8
}

func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return sq.File().String() + sq.Rank().String()
}

// ParseSquare reads an algebraic label such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoSquare, &ParseError{Field: "square", Value: s, Reason: "want a file a-h followed by a rank 1-8"}
	}
	return NewSquare(File(s[0]-'a'), Rank(s[1]-'1')), nil
}

// offset returns the square df files and dr ranks away, or NoSquare when
// the step leaves the board.
func (sq Square) offset(df, dr int8) Square {
	f := int8(sq.File()) + df
	r := int8(sq.Rank()) + dr
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return NoSquare
	}
	return Square(r*8 + f)
}
