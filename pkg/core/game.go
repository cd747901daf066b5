package core

// CastlingRights is a set of the four castling permissions. Rights are
// only ever removed, never restored.
type CastlingRights uint8

const (
	CastleWhiteKing CastlingRights = 1 << iota
	CastleWhiteQueen
	CastleBlackKing
	CastleBlackQueen
)

func (cr CastlingRights) String() string {
	s := ""
	if cr&CastleWhiteKing != 0 {
		s += "K"
	}
	if cr&CastleWhiteQueen != 0 {
		s += "Q"
	}
	if cr&CastleBlackKing != 0 {
		s += "k"
	}
	if cr&CastleBlackQueen != 0 {
		s += "q"
	}
	if s == "" {
		return "-"
	}
	return s
}

// Game is one chess position plus the metadata needed to play on from it.
// It is mutated only through Apply and Undo, and never concurrently:
// callers keep one Game per logical game and serialize access themselves.
type Game struct {
	board    Board
	turn     Color
	castling CastlingRights
	epSquare Square
	halfmove int
	fullmove int
	history  []uint64 // hash of every position seen, current included
	prev     *snapshot
}

// snapshot holds everything Undo needs to step back one move.
type snapshot struct {
	board    Board
	turn     Color
	castling CastlingRights
	epSquare Square
	halfmove int
	fullmove int
	histLen  int
}

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewGame starts from the standard initial position.
func NewGame() *Game {
	g, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err) // unreachable: the start position is well-formed
	}
	return g
}

// Board returns a copy of the current position.
func (g *Game) Board() Board {
	return g.board
}

// Turn returns the side to move.
func (g *Game) Turn() Color {
	return g.turn
}

// Castling returns the remaining castling rights.
func (g *Game) Castling() CastlingRights {
	return g.castling
}

// EnPassant returns the en passant target square, or NoSquare.
func (g *Game) EnPassant() Square {
	return g.epSquare
}

// HalfmoveClock returns the number of halfmoves since the last capture or
// pawn move.
func (g *Game) HalfmoveClock() int {
	return g.halfmove
}

// FullmoveNumber returns the current move number, starting at 1.
func (g *Game) FullmoveNumber() int {
	return g.fullmove
}

// Clone returns an independent copy of the game. Search workers clone
// before mutating so the original is never touched.
func (g *Game) Clone() *Game {
	c := *g
	c.history = append([]uint64(nil), g.history...)
	c.prev = nil
	return &c
}

// Apply plays m if it is legal in the current position. The caller may
// pass a bare from/to(/promotion) pair: the move is matched against the
// generated legal moves and the generator's flags are used. A pawn
// reaching the last rank with no promotion piece set promotes to a queen.
// Illegal moves are rejected with an IllegalMoveError explaining why.
func (g *Game) Apply(m Move) error {
	if !m.From.Valid() || !m.To.Valid() {
		panic(ErrOutOfBounds)
	}
	p := g.board.At(m.From)
	switch {
	case p == NoPiece:
		return &IllegalMoveError{Move: m.String(), Reason: "no piece on " + m.From.String()}
	case p.Color != g.turn:
		return &IllegalMoveError{Move: m.String(), Reason: "it is " + g.turn.String() + "'s move"}
	}

	if p.Kind == Pawn && m.Promo == NoKind && (m.To.Rank() == 7 || m.To.Rank() == 0) {
		m.Promo = Queen
	}

	var matched *Move
	for _, legal := range g.legalMovesFrom(m.From) {
		if legal.To == m.To && legal.Promo == m.Promo {
			legal := legal
			matched = &legal
			break
		}
	}
	if matched == nil {
		reason := "the piece cannot reach " + m.To.String()
		if g.InCheck() {
			reason += " while the king is in check"
		}
		return &IllegalMoveError{Move: m.String(), Reason: reason}
	}
	g.applyLegal(*matched)
	return nil
}

// applyLegal plays a move already known to be legal.
func (g *Game) applyLegal(m Move) {
	g.prev = &snapshot{
		board:    g.board,
		turn:     g.turn,
		castling: g.castling,
		epSquare: g.epSquare,
		halfmove: g.halfmove,
		fullmove: g.fullmove,
		histLen:  len(g.history),
	}

	moved := g.board.At(m.From)
	applyToBoard(&g.board, m)

	g.updateCastlingRights(m, moved)

	g.epSquare = NoSquare
	if m.Flags&FlagDoublePush != 0 {
		dr := int8(-1)
		if moved.Color == White {
			dr = 1
		}
		g.epSquare = m.From.offset(0, dr)
	}

	if moved.Kind == Pawn || m.IsCapture() {
		g.halfmove = 0
	} else {
		g.halfmove++
	}
	if g.turn == Black {
		g.fullmove++
	}
	g.turn = g.turn.Other()
	g.history = append(g.history, g.Hash())
}

// updateCastlingRights revokes rights when the king or a rook leaves its
// home square, or when a rook is captured on one.
func (g *Game) updateCastlingRights(m Move, moved Piece) {
	if moved.Kind == King {
		if moved.Color == White {
			g.castling &^= CastleWhiteKing | CastleWhiteQueen
		} else {
			g.castling &^= CastleBlackKing | CastleBlackQueen
		}
	}
	for _, sq := range [2]Square{m.From, m.To} {
		switch sq {
		case A1:
			g.castling &^= CastleWhiteQueen
		case H1:
			g.castling &^= CastleWhiteKing
		case A8:
			g.castling &^= CastleBlackQueen
		case H8:
			g.castling &^= CastleBlackKing
		}
	}
}

// Undo steps back the most recent move. Only a single step is kept; deeper
// history is the caller's concern.
func (g *Game) Undo() error {
	if g.prev == nil {
		return &IllegalMoveError{Move: "undo", Reason: "no move to undo"}
	}
	s := g.prev
	g.board = s.board
	g.turn = s.turn
	g.castling = s.castling
	g.epSquare = s.epSquare
	g.halfmove = s.halfmove
	g.fullmove = s.fullmove
	g.history = g.history[:s.histLen]
	g.prev = nil
	return nil
}
