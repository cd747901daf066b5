package core

import (
	"strconv"
	"strings"
)

// ParseFEN builds a Game from a Forsyth-Edwards Notation string. Each of
// the six fields is validated separately so a bad input names the field
// that broke.
func ParseFEN(fen string) (*Game, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, &ParseError{Field: "fen", Value: fen, Reason: "want 6 space-separated fields"}
	}

	g := &Game{epSquare: NoSquare}

	if err := parsePlacement(&g.board, fields[0]); err != nil {
		return nil, err
	}

	switch fields[1] {
	case "w":
		g.turn = White
	case "b":
		g.turn = Black
	default:
		return nil, &ParseError{Field: "side to move", Value: fields[1], Reason: `want "w" or "b"`}
	}

	cr, err := parseCastling(fields[2])
	if err != nil {
		return nil, err
	}
	g.castling = cr

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, &ParseError{Field: "en passant", Value: fields[3], Reason: "want a square or -"}
		}
		if sq.Rank() != 2 && sq.Rank() != 5 {
			return nil, &ParseError{Field: "en passant", Value: fields[3], Reason: "target must be on rank 3 or 6"}
		}
		g.epSquare = sq
	}

	g.halfmove, err = strconv.Atoi(fields[4])
	if err != nil || g.halfmove < 0 {
		return nil, &ParseError{Field: "halfmove clock", Value: fields[4], Reason: "want a non-negative integer"}
	}
	g.fullmove, err = strconv.Atoi(fields[5])
	if err != nil || g.fullmove < 1 {
		return nil, &ParseError{Field: "fullmove number", Value: fields[5], Reason: "want a positive integer"}
	}

	g.history = []uint64{g.Hash()}
	return g, nil
}

func parsePlacement(b *Board, placement string) error {
	bad := func(reason string) error {
		return &ParseError{Field: "piece placement", Value: placement, Reason: reason}
	}
	rows := strings.Split(placement, "/")
	if len(rows) != 8 {
		return bad("want 8 ranks separated by /")
	}
	var kings [2]int
	for i, row := range rows {
		r := Rank(7 - i) // FEN lists rank 8 first
		f := File(0)
		for j := 0; j < len(row); j++ {
			c := row[j]
			if c >= '1' && c <= '8' {
				f += File(c - '0')
				continue
			}
			p, ok := pieceFromFEN(c)
			if !ok {
				return bad("unknown piece letter " + string(rune(c)))
			}
			if f > 7 {
				return bad("rank " + r.String() + " overflows 8 squares")
			}
			if p.Kind == King {
				kings[p.Color]++
			}
			b.Set(NewSquare(f, r), p)
			f++
		}
		if f != 8 {
			return bad("rank " + r.String() + " does not fill 8 squares")
		}
	}
	if kings[White] != 1 || kings[Black] != 1 {
		return bad("want exactly one king per side")
	}
	return nil
}

func parseCastling(s string) (CastlingRights, error) {
	if s == "-" {
		return 0, nil
	}
	var cr CastlingRights
	for i := 0; i < len(s); i++ {
		var bit CastlingRights
		switch s[i] {
		case 'K':
			bit = CastleWhiteKing
		case 'Q':
			bit = CastleWhiteQueen
		case 'k':
			bit = CastleBlackKing
		case 'q':
			bit = CastleBlackQueen
		default:
			return 0, &ParseError{Field: "castling rights", Value: s, Reason: `want a subset of "KQkq" or -`}
		}
		if cr&bit != 0 {
			return 0, &ParseError{Field: "castling rights", Value: s, Reason: "duplicate right " + string(rune(s[i]))}
		}
		cr |= bit
	}
	return cr, nil
}

// FEN renders the position. ParseFEN(g.FEN()) round-trips exactly.
func (g *Game) FEN() string {
	var sb strings.Builder
	for r := Rank(7); r >= 0; r-- {
		empty := 0
		for f := File(0); f <= 7; f++ {
			p := g.board.At(NewSquare(f, r))
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.FENChar())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if g.turn == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	sb.WriteString(g.castling.String())
	sb.WriteByte(' ')
	sb.WriteString(g.epSquare.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(g.halfmove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(g.fullmove))
	return sb.String()
}
