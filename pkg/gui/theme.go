package gui

import (
	"errors"

	"github.com/gdamore/tcell/v2"
)

// Theme colors the board. Stick to the terminal safe palette:
// https://upload.wikimedia.org/wikipedia/commons/1/15/Xterm_256color_chart.svg
type Theme struct {
	Name        string      `json:"name"`
	SquareDark  tcell.Color `json:"squareDark"`
	SquareLight tcell.Color `json:"squareLight"`
	SquareHigh  tcell.Color `json:"squareHigh"`
	SquareHint  tcell.Color `json:"squareHint"`
	SquareCheck tcell.Color `json:"squareCheck"`
	White       tcell.Color `json:"white"`
	Black       tcell.Color `json:"black"`
	Rank        tcell.Color `json:"rank"`
	File        tcell.Color `json:"file"`
	Msg         tcell.Color `json:"msg"`
}

// ThemeBasic is the default theme.
var ThemeBasic = Theme{
	Name:        "basic",
	SquareDark:  tcell.Color65,
	SquareLight: tcell.Color230,
	SquareHigh:  tcell.Color226,
	SquareHint:  tcell.Color223,
	SquareCheck: tcell.Color218,
	White:       tcell.Color232,
	Black:       tcell.Color232,
	Rank:        tcell.Color247,
	File:        tcell.Color247,
	Msg:         tcell.Color160,
}

// ThemeBlue is an alternative blue/green look.
var ThemeBlue = Theme{
	Name:        "blue",
	SquareDark:  tcell.ColorBlue,
	SquareLight: tcell.ColorGreen,
	SquareHigh:  tcell.ColorRed,
	SquareHint:  tcell.Color223,
	SquareCheck: tcell.Color218,
	White:       tcell.ColorWhite,
	Black:       tcell.ColorBlack,
	Rank:        tcell.Color247,
	File:        tcell.Color247,
	Msg:         tcell.Color160,
}

var themes = []Theme{ThemeBasic, ThemeBlue}

// FindTheme looks a theme up by name.
func FindTheme(want string) (Theme, error) {
	for _, t := range themes {
		if t.Name == want {
			return t, nil
		}
	}
	return Theme{}, errors.New("gui: no theme found")
}
