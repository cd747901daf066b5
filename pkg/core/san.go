package core

import "strings"

// SAN renders m in standard algebraic notation relative to g, including
// disambiguation, the capture marker, promotion and check/checkmate
// suffixes. The move must be legal.
func (g *Game) SAN(m Move) (string, error) {
	matched, err := g.matchLegal(m)
	if err != nil {
		return "", err
	}
	san := g.bareSAN(matched)

	// Suffix comes from the position after the move.
	child := g.Clone()
	child.applyLegal(matched)
	if child.Checkmate() {
		san += "#"
	} else if child.InCheck() {
		san += "+"
	}
	return san, nil
}

// bareSAN renders the move without the check/checkmate suffix.
func (g *Game) bareSAN(m Move) string {
	if m.IsCastle() {
		if m.To.File() == 6 {
			return "O-O"
		}
		return "O-O-O"
	}

	p := g.board.At(m.From)
	var sb strings.Builder
	if p.Kind == Pawn {
		if m.IsCapture() {
			sb.WriteString(m.From.File().String())
		}
	} else {
		sb.WriteString(p.Kind.String())
		sb.WriteString(g.disambiguation(m, p.Kind))
	}
	if m.IsCapture() {
		sb.WriteByte('x')
	}
	sb.WriteString(m.To.String())
	if m.Promo != NoKind {
		sb.WriteByte('=')
		sb.WriteString(m.Promo.String())
	}
	return sb.String()
}

// disambiguation returns the file and/or rank of the origin square when
// another piece of the same kind can also reach the target.
func (g *Game) disambiguation(m Move, kind PieceKind) string {
	sameFile, sameRank, any := false, false, false
	for _, other := range g.LegalMoves() {
		if other.From == m.From || other.To != m.To {
			continue
		}
		if g.board.At(other.From).Kind != kind {
			continue
		}
		any = true
		if other.From.File() == m.From.File() {
			sameFile = true
		}
		if other.From.Rank() == m.From.Rank() {
			sameRank = true
		}
	}
	switch {
	case !any:
		return ""
	case !sameFile:
		return m.From.File().String()
	case !sameRank:
		return m.From.Rank().String()
	}
	return m.From.File().String() + m.From.Rank().String()
}

// matchLegal finds the generated legal move equal to m by origin, target
// and promotion, filling in the generator's flags.
func (g *Game) matchLegal(m Move) (Move, error) {
	for _, legal := range g.LegalMovesFrom(m.From) {
		if legal.To == m.To && legal.Promo == m.Promo {
			return legal, nil
		}
	}
	return Move{}, &IllegalMoveError{Move: m.String(), Reason: "not a legal move in this position"}
}

// ParseMove reads a move for the current position, in either coordinate
// form ("e2e4", "e7e8q") or SAN ("Nf3", "exd5", "O-O", "e8=Q+"). A pawn
// move to the last rank with no promotion letter promotes to a queen.
// Well-formed but illegal input is rejected with an IllegalMoveError;
// unreadable input with a ParseError.
func (g *Game) ParseMove(s string) (Move, error) {
	raw := s
	s = strings.TrimRight(strings.TrimSpace(s), "+#!?")
	if s == "" {
		return Move{}, &ParseError{Field: "move", Value: raw, Reason: "empty move text"}
	}

	if m, ok := g.parseCoordinate(s); ok {
		matched, err := g.matchLegal(m)
		if err != nil {
			return Move{}, err
		}
		return matched, nil
	}

	// Accept both O-O and 0-0 spellings.
	castle := strings.ToUpper(strings.ReplaceAll(s, "0", "O"))
	if castle == "O-O" || castle == "O-O-O" {
		for _, legal := range g.LegalMoves() {
			if legal.IsCastle() && (legal.To.File() == 6) == (castle == "O-O") {
				return legal, nil
			}
		}
		return Move{}, &IllegalMoveError{Move: raw, Reason: "castling is not legal here"}
	}

	// SAN: compare against the rendering of every legal move.
	for _, legal := range g.LegalMoves() {
		if g.bareSAN(legal) == s {
			return legal, nil
		}
	}
	if looksLikeSAN(s) {
		return Move{}, &IllegalMoveError{Move: raw, Reason: "no legal move matches"}
	}
	return Move{}, &ParseError{Field: "move", Value: raw, Reason: "want coordinate or algebraic notation"}
}

// parseCoordinate reads "e2e4" style moves with an optional trailing
// promotion letter.
func (g *Game) parseCoordinate(s string) (Move, bool) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, false
	}
	from, err := ParseSquare(s[:2])
	if err != nil {
		return Move{}, false
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return Move{}, false
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			m.Promo = Queen
		case 'r':
			m.Promo = Rook
		case 'b':
			m.Promo = Bishop
		case 'n':
			m.Promo = Knight
		default:
			return Move{}, false
		}
	} else if g.board.At(from).Kind == Pawn && (to.Rank() == 7 || to.Rank() == 0) {
		m.Promo = Queen
	}
	return m, true
}

func looksLikeSAN(s string) bool {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= 'a' && c <= 'h', c >= '1' && c <= '8':
		case c == 'N' || c == 'B' || c == 'R' || c == 'Q' || c == 'K':
		case c == 'x' || c == '=':
		default:
			return false
		}
	}
	return true
}
