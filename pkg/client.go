package pkg

import (
	"bufio"
	"fmt"
	"log"
	"net"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/earther/chesscore/pkg/core"
	"github.com/earther/chesscore/pkg/engine"
	"github.com/earther/chesscore/pkg/gui"
)

// Client is the terminal player. It keeps its own core.Game mirror of the
// match, asks it for legal targets to highlight, and submits moves either
// to the server or, in offline mode, straight to the local engine.
type Client struct {
	Game    *core.Game
	App     *tview.Application
	View    *gui.BoardView
	Layout  *tview.Grid
	Status  *tview.TextView
	MsgText *tview.TextView

	Conn net.Conn
	Out  chan MessageInterface

	Color   PlayerColor
	MatchId string
	isTurn  bool

	selecting     bool
	lastSelection core.Square
	highlights    map[core.Square]bool

	// Offline mode: no Conn, the local engine answers instead.
	Engine *engine.Service
	Skill  int
}

func NewClient(theme gui.Theme) *Client {
	cl := &Client{
		App:        tview.NewApplication(),
		Game:       core.NewGame(),
		View:       gui.NewBoardView(theme),
		Out:        make(chan MessageInterface, ConnQueueSize),
		highlights: make(map[core.Square]bool),
		Color:      White,
	}

	cl.Status = tview.NewTextView().SetText("Waiting for opponent")
	cl.MsgText = tview.NewTextView()
	cl.MsgText.SetTextColor(theme.Msg)

	drawBtn := tview.NewButton(string(ActionDrawOffer)).SetSelectedFunc(func() {
		cl.sendAction(ActionDrawOffer)
	})
	resignBtn := tview.NewButton(string(ActionResign)).SetSelectedFunc(func() {
		cl.sendAction(ActionResign)
	})

	sidebar := tview.NewGrid().
		SetColumns(10, 10).
		SetRows(3, 3, -1).
		AddItem(drawBtn, 0, 0, 1, 1, 0, 0, false).
		AddItem(resignBtn, 0, 1, 1, 1, 0, 0, false).
		AddItem(cl.Status, 1, 0, 1, 2, 0, 0, false).
		AddItem(cl.MsgText, 2, 0, 1, 2, 0, 0, false)

	cl.Layout = tview.NewGrid().
		SetRows(-1, 12, -1).
		SetColumns(-1, 22, 24, -1).
		AddItem(cl.View.Table, 1, 1, 1, 1, 0, 0, true).
		AddItem(sidebar, 1, 2, 1, 1, 0, 0, false)

	cl.initBoard()
	return cl
}

func (cl *Client) initBoard() {
	cl.Render()
	cl.View.Table.SetSelectable(true, true)
	cl.View.Table.Select(0, 1).SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEscape {
			cl.Quit()
		}
		if key == tcell.KeyEnter {
			cl.View.Table.SetSelectable(true, true)
		}
	}).SetSelectedFunc(cl.onSquareSelected)
}

// onSquareSelected drives the two-tap move input: first tap picks a piece
// and lights up its legal targets, second tap submits the move.
func (cl *Client) onSquareSelected(row, col int) {
	sq, ok := cl.View.Square(row, col)
	if !ok {
		return
	}

	if !cl.selecting {
		board := cl.Game.Board()
		if !cl.isTurn || !board.IsOccupiedBy(sq, cl.Color.CoreColor()) {
			return
		}
		targets := cl.Game.LegalMovesFrom(sq)
		if len(targets) == 0 {
			return
		}
		cl.selecting = true
		cl.lastSelection = sq
		cl.highlights[sq] = true
		for _, m := range targets {
			cl.highlights[m.To] = true
		}
		cl.Render()
		return
	}

	if sq == cl.lastSelection { // tap again to cancel
		cl.clearSelection()
		cl.Render()
		return
	}

	move := fmt.Sprintf("%s%s", cl.lastSelection, sq)
	cl.clearSelection()
	cl.SubmitMove(move)
	cl.Render()
}

func (cl *Client) clearSelection() {
	cl.selecting = false
	cl.lastSelection = core.NoSquare
	cl.highlights = make(map[core.Square]bool)
}

// SubmitMove sends a move upstream, or applies it locally in offline
// mode. The core fills in the queen on an omitted promotion piece.
func (cl *Client) SubmitMove(text string) {
	if cl.Conn != nil {
		log.Printf("Submitting move %s", text)
		cl.Out <- MessageMove{Move: text}
		return
	}

	m, err := cl.Game.ParseMove(text)
	if err != nil {
		cl.MsgText.SetText(err.Error())
		return
	}
	san, _ := cl.Game.SAN(m)
	if err := cl.Game.Apply(m); err != nil {
		cl.MsgText.SetText(err.Error())
		return
	}
	cl.MsgText.SetText(san)
	cl.isTurn = false
	cl.updateStatus()
	if cl.Game.Outcome() == "*" && cl.Engine != nil {
		cl.requestEngineReply()
	}
}

// requestEngineReply asks the local engine for an answer, offline play's
// stand-in for the remote opponent.
func (cl *Client) requestEngineReply() {
	req := engine.Request{FEN: cl.Game.FEN(), Depth: EngineDepth, Skill: cl.Skill}
	cl.Engine.Go("local", req, func(resp engine.Response, err error) {
		cl.App.QueueUpdateDraw(func() {
			if resp.NoMove {
				return
			}
			note := resp.SAN
			if err != nil {
				note += " (static fallback)"
			}
			m, perr := cl.Game.ParseMove(resp.Move)
			if perr != nil {
				log.Printf("Engine answered unplayable move %q: %v", resp.Move, perr)
				return
			}
			if aerr := cl.Game.Apply(m); aerr != nil {
				log.Printf("Engine move rejected: %v", aerr)
				return
			}
			cl.MsgText.SetText(note)
			cl.isTurn = cl.Game.Outcome() == "*"
			cl.updateStatus()
			cl.Render()
		})
	})
}

// PlayEngine switches the client into offline mode against the built-in
// engine, no server involved.
func (cl *Client) PlayEngine(skill int) {
	cl.Engine = engine.NewService(EngineTimeout)
	cl.Skill = skill
	cl.Color = White
	cl.isTurn = true
	cl.Status.SetText("Playing the engine")
}

// Connect dials the server and introduces this player.
func (cl *Client) Connect(addr string, join MessageJoin) error {
	log.Printf("Connecting to %s", addr)
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return err
	}
	cl.Conn = conn
	cl.Out <- join
	go cl.HandleWrite()
	go cl.HandleRead()
	return nil
}

func (cl *Client) HandleWrite() {
	for command := range cl.Out {
		mt := MessageTransport{MsgType: command.Type(), Data: Encode(command)}
		b := append(Encode(mt), '\n')
		if _, err := cl.Conn.Write(b); err != nil {
			log.Printf("Failed to write: %v", err)
			return
		}
		log.Printf("Sent a msg type %s", command.Type())
	}
}

func (cl *Client) HandleRead() {
	scanner := bufio.NewScanner(cl.Conn)
	for scanner.Scan() {
		var mt MessageTransport
		if err := Decode(scanner.Bytes(), &mt); err != nil {
			continue
		}
		switch mt.MsgType {
		// All client state changes run on the UI goroutine via
		// QueueUpdateDraw; the event handlers read the same state.
		case TypeMessageConnect:
			var message MessageConnect
			if err := Decode(mt.Data, &message); err != nil {
				continue
			}
			cl.App.QueueUpdateDraw(func() {
				cl.applyFEN(message.Fen)
				cl.Color = message.Color
				cl.MatchId = message.MatchId
				cl.isTurn = message.IsTurn
				cl.View.Flip = message.Color == Black
				cl.Status.SetText(fmt.Sprintf("Match %s, you are %s", cl.MatchId, cl.Color))
				cl.Render()
			})

		case TypeMessageGame:
			var message MessageGame
			if err := Decode(mt.Data, &message); err != nil {
				continue
			}
			cl.App.QueueUpdateDraw(func() {
				cl.applyFEN(message.Fen)
				cl.isTurn = message.IsTurn
				cl.updateStatus()
				if message.Outcome != "*" {
					cl.Status.SetText(fmt.Sprintf("%s (%s)", message.Outcome, message.Method))
				}
				note := message.Msg
				if note == "" {
					note = message.LastMove
				}
				cl.MsgText.SetText(note)
				cl.Render()
			})

		default:
			log.Printf("Received unknown message %s", mt.MsgType)
		}
	}
}

// applyFEN replaces the local mirror with the server's authoritative
// position. A server this client trusts never sends a bad FEN.
func (cl *Client) applyFEN(fen string) {
	g, err := core.ParseFEN(fen)
	if err != nil {
		log.Printf("Server sent unparsable FEN %q: %v", fen, err)
		return
	}
	cl.Game = g
	cl.clearSelection()
}

func (cl *Client) updateStatus() {
	turn := "Waiting for opponent"
	if cl.isTurn {
		turn = "Your move"
		if cl.Game.InCheck() {
			turn = "Your move, check!"
		}
	}
	cl.Status.SetText(turn)
}

// Render redraws the board, marking a checked king.
func (cl *Client) Render() {
	checkSq := core.NoSquare
	if cl.Game.InCheck() {
		board := cl.Game.Board()
		if king, ok := board.KingSquare(cl.Game.Turn()); ok {
			checkSq = king
		}
	}
	cl.View.Render(cl.Game.Board(), cl.highlights, checkSq)
}

func (cl *Client) sendAction(a Action) {
	if cl.Conn != nil {
		cl.Out <- MessageAction{Action: a}
	}
}

// Run starts the terminal application.
func (cl *Client) Run() error {
	return cl.App.SetRoot(cl.Layout, true).EnableMouse(true).Run()
}

// Quit tears the client down.
func (cl *Client) Quit() {
	cl.App.Stop()
	if cl.Conn != nil {
		cl.Conn.Close()
	}
}
