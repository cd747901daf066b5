package core

// Terminal-state queries. These are computed on demand; a Game is small
// and the UI only asks after a successful move.

// InCheck reports whether the side to move is in check.
func (g *Game) InCheck() bool {
	king, ok := g.board.KingSquare(g.turn)
	if !ok {
		return false
	}
	return IsSquareAttacked(&g.board, king, g.turn.Other())
}

// Checkmate reports whether the side to move is checkmated.
func (g *Game) Checkmate() bool {
	return g.InCheck() && len(g.LegalMoves()) == 0
}

// Stalemate reports whether the side to move has no legal move while not
// in check.
func (g *Game) Stalemate() bool {
	return !g.InCheck() && len(g.LegalMoves()) == 0
}

// FiftyMoveDraw reports whether 100 halfmoves have passed without a pawn
// move or capture.
func (g *Game) FiftyMoveDraw() bool {
	return g.halfmove >= 100
}

// ThreefoldRepetition reports whether the current position has occurred
// at least three times.
func (g *Game) ThreefoldRepetition() bool {
	cur := g.Hash()
	n := 0
	for _, h := range g.history {
		if h == cur {
			n++
		}
	}
	return n >= 3
}

// InsufficientMaterial reports whether neither side can possibly force
// mate: bare kings, a lone minor piece, or same-colored bishops only.
func (g *Game) InsufficientMaterial() bool {
	var minors []Square
	for sq := A1; sq <= H8; sq++ {
		switch g.board[sq].Kind {
		case NoKind, King:
		case Bishop, Knight:
			minors = append(minors, sq)
		default:
			return false // a pawn, rook or queen can mate
		}
	}
	switch len(minors) {
	case 0, 1:
		return true
	case 2:
		a, b := g.board[minors[0]], g.board[minors[1]]
		return a.Kind == Bishop && b.Kind == Bishop &&
			a.Color != b.Color &&
			SquareColor(minors[0]) == SquareColor(minors[1])
	}
	return false
}

// Draw reports whether any automatic draw condition holds.
func (g *Game) Draw() bool {
	return g.Stalemate() || g.FiftyMoveDraw() || g.ThreefoldRepetition() || g.InsufficientMaterial()
}

// Outcome returns the game result in PGN form: "1-0", "0-1", "1/2-1/2"
// or "*" while the game is still in progress.
func (g *Game) Outcome() string {
	switch {
	case g.Checkmate():
		if g.turn == White {
			return "0-1"
		}
		return "1-0"
	case g.Draw():
		return "1/2-1/2"
	}
	return "*"
}

// Method names the rule that ended the game, or "InProgress".
func (g *Game) Method() string {
	switch {
	case g.Checkmate():
		return "Checkmate"
	case g.Stalemate():
		return "Stalemate"
	case g.InsufficientMaterial():
		return "InsufficientMaterial"
	case g.ThreefoldRepetition():
		return "ThreefoldRepetition"
	case g.FiftyMoveDraw():
		return "FiftyMoveRule"
	}
	return "InProgress"
}
