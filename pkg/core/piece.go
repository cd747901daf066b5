package core

// Color of a piece or player.
type Color int8

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Other returns the opposing color.
func (c Color) Other() Color {
	return 1 - c
}

// PieceKind is one of the six chess piece kinds. The zero value NoKind
// marks an empty square.
type PieceKind int8

const (
	NoKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindLetters = [...]string{"", "P", "N", "B", "R", "Q", "K"}

func (k PieceKind) String() string {
	if k < NoKind || k > King {
		return "?"
	}
	return kindLetters[k]
}

// Piece is an immutable (kind, color) value. The zero Piece is empty.
type Piece struct {
	Kind  PieceKind
	Color Color
}

// NoPiece is an empty square occupant.
var NoPiece = Piece{}

var fenLetters = map[byte]Piece{
	'P': {Pawn, White}, 'N': {Knight, White}, 'B': {Bishop, White},
	'R': {Rook, White}, 'Q': {Queen, White}, 'K': {King, White},
	'p': {Pawn, Black}, 'n': {Knight, Black}, 'b': {Bishop, Black},
	'r': {Rook, Black}, 'q': {Queen, Black}, 'k': {King, Black},
}

var glyphs = map[Piece]rune{
	{King, White}: '♔', {Queen, White}: '♕', {Rook, White}: '♖',
	{Bishop, White}: '♗', {Knight, White}: '♘', {Pawn, White}: '♙',
	{King, Black}: '♚', {Queen, Black}: '♛', {Rook, Black}: '♜',
	{Bishop, Black}: '♝', {Knight, Black}: '♞', {Pawn, Black}: '♟',
}

// FENChar returns the single FEN letter for the piece, uppercase for White.
func (p Piece) FENChar() byte {
	letter := kindLetters[p.Kind][0]
	if p.Color == Black {
		letter += 'a' - 'A'
	}
	return letter
}

// Glyph returns the unicode figurine for the piece, or a space when empty.
func (p Piece) Glyph() rune {
	if g, ok := glyphs[p]; ok {
		return g
	}
	return ' '
}

func (p Piece) String() string {
	if p == NoPiece {
		return " "
	}
	return string(p.Glyph())
}

func pieceFromFEN(c byte) (Piece, bool) {
	p, ok := fenLetters[c]
	return p, ok
}
