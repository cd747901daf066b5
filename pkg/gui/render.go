package gui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/earther/chesscore/pkg/core"
)

const boardRows = 8

// BoardView draws a core.Board into a tview table and translates between
// table cells and board squares. The board flips for the black seat.
type BoardView struct {
	Table *tview.Table
	Theme Theme
	Flip  bool // true when Black sits at the bottom
}

func NewBoardView(theme Theme) *BoardView {
	return &BoardView{
		Table: tview.NewTable(),
		Theme: theme,
	}
}

// Square maps a table position to its board square. The left column and
// bottom row carry the rank/file labels, not squares.
func (v *BoardView) Square(row, col int) (core.Square, bool) {
	col = col - 1
	if col < 0 || col > 7 || row < 0 || row >= boardRows {
		return core.NoSquare, false
	}
	r := core.Rank(boardRows - row - 1)
	f := core.File(col)
	if v.Flip {
		r = core.Rank(row)
		f = core.File(7 - col)
	}
	return core.NewSquare(f, r), true
}

// Render redraws the full board. Highlighted squares mark the current
// selection and its legal targets; checkSq marks a king in check.
func (v *BoardView) Render(board core.Board, highlights map[core.Square]bool, checkSq core.Square) {
	for row := 0; row <= boardRows; row++ {
		for col := 0; col <= boardRows; col++ {
			if col == 0 && row < boardRows { // rank labels
				sq, _ := v.Square(row, 1)
				cell := tview.NewTableCell(sq.Rank().String()).
					SetAlign(tview.AlignCenter).
					SetTextColor(v.Theme.Rank).
					SetSelectable(false)
				v.Table.SetCell(row, col, cell)
				continue
			}
			if row == boardRows { // file labels
				label := " "
				if col > 0 {
					sq, _ := v.Square(boardRows-1, col)
					label = fmt.Sprintf(" %s", sq.File())
				}
				cell := tview.NewTableCell(label).
					SetAlign(tview.AlignCenter).
					SetTextColor(v.Theme.File).
					SetSelectable(false)
				v.Table.SetCell(row, col, cell)
				continue
			}

			sq, _ := v.Square(row, col)
			p := board.At(sq)
			cell := tview.NewTableCell(fmt.Sprintf(" %s", p)).
				SetAlign(tview.AlignCenter).
				SetTextColor(v.pieceColor(p)).
				SetBackgroundColor(v.squareBg(sq, highlights, checkSq))
			v.Table.SetCell(row, col, cell)
		}
	}
}

func (v *BoardView) pieceColor(p core.Piece) tcell.Color {
	if p.Color == core.White {
		return v.Theme.White
	}
	return v.Theme.Black
}

func (v *BoardView) squareBg(sq core.Square, highlights map[core.Square]bool, checkSq core.Square) tcell.Color {
	switch {
	case highlights[sq]:
		return v.Theme.SquareHigh
	case sq == checkSq:
		return v.Theme.SquareCheck
	case core.SquareColor(sq) == core.Black:
		return v.Theme.SquareDark
	}
	return v.Theme.SquareLight
}
