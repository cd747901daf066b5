package pkg

import (
	"bufio"
	"log"
	"net"

	"github.com/earther/chesscore/pkg/core"
)

type PlayerColor int

const (
	White PlayerColor = iota
	Black
	Viewer
	Unknown
)

func (pc PlayerColor) String() string {
	switch pc {
	case White:
		return "White"
	case Black:
		return "Black"
	case Viewer:
		return "Viewer"
	default:
		return "Unknown"
	}
}

// CoreColor maps a seat to the rules engine's color. Only valid for the
// two playing seats.
func (pc PlayerColor) CoreColor() core.Color {
	if pc == Black {
		return core.Black
	}
	return core.White
}

type Player struct {
	Conn  net.Conn
	Color PlayerColor
	Out   chan MessageInterface
	Id    int
	Name  string
}

func NewPlayer(conn net.Conn) *Player {
	return &Player{
		Conn: conn,
		Out:  make(chan MessageInterface, ConnQueueSize),
	}
}

// Send queues a message without blocking. A slow consumer loses updates
// rather than stalling the match loop.
func (p *Player) Send(m MessageInterface) {
	select {
	case p.Out <- m:
	default:
		log.Printf("Player %d queue full, dropping %s", p.Id, m.Type())
	}
}

// HandleRead forwards messages from the connection to the match loop,
// stamped with the player's id. done unblocks it when the match closes.
func (p *Player) HandleRead(in chan<- MessageTransport, done <-chan struct{}) {
	scanner := bufio.NewScanner(p.Conn)
	for scanner.Scan() {
		var mt MessageTransport
		if err := Decode(scanner.Bytes(), &mt); err != nil {
			continue
		}
		mt.PlayerId = p.Id
		select {
		case in <- mt:
		case <-done:
			return
		}
	}
}

func (p *Player) HandleWrite() {
	for message := range p.Out {
		mt := MessageTransport{MsgType: message.Type(), Data: Encode(message)}
		b := append(Encode(mt), '\n')
		if _, err := p.Conn.Write(b); err != nil {
			log.Printf("Failed to write to player %d: %v", p.Id, err)
			return
		}
	}
}

func (p *Player) Disconnect() {
	close(p.Out)
	p.Conn.Close()
}
