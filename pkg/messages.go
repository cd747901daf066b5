package pkg

import (
	"encoding/json"
	"log"
)

type MessageType int

const (
	TypeMessageTransport MessageType = iota
	TypeMessageJoin
	TypeMessageConnect
	TypeMessageGame
	TypeMessageMove
	TypeMessageAction
)

func (m MessageType) String() string {
	switch m {
	case TypeMessageTransport:
		return "TypeMessageTransport"
	case TypeMessageJoin:
		return "TypeMessageJoin"
	case TypeMessageConnect:
		return "TypeMessageConnect"
	case TypeMessageGame:
		return "TypeMessageGame"
	case TypeMessageMove:
		return "TypeMessageMove"
	case TypeMessageAction:
		return "TypeMessageAction"
	default:
		return "Unknown MessageType"
	}
}

type MessageInterface interface {
	Type() MessageType
}

// MessageTransport is the newline-delimited JSON envelope every message
// travels in. PlayerId is stamped by the server-side reader.
type MessageTransport struct {
	MsgType  MessageType
	Data     json.RawMessage
	PlayerId int
}

func (m MessageTransport) Type() MessageType {
	return TypeMessageTransport
}

// MessageJoin is the client's first message: which match to join, under
// what name, and whether the opponent should be the built-in engine.
type MessageJoin struct {
	Name     string
	MatchId  string
	VsEngine bool
	Skill    int
}

func (m MessageJoin) Type() MessageType {
	return TypeMessageJoin
}

// MessageConnect tells a player which seat they got and where the game
// stands.
type MessageConnect struct {
	Color   PlayerColor
	Fen     string
	IsTurn  bool
	MatchId string
}

func (m MessageConnect) Type() MessageType {
	return TypeMessageConnect
}

// MessageGame broadcasts the position after every accepted move together
// with the terminal-state verdict the UI polls for.
type MessageGame struct {
	Fen      string
	IsTurn   bool
	LastMove string // SAN of the move that produced Fen
	Outcome  string // "*" while the game runs
	Method   string
	Msg      string // server note: rejection reason, engine fallback, chat
}

func (m MessageGame) Type() MessageType {
	return TypeMessageGame
}

// MessageMove carries a move submission in coordinate or algebraic form.
type MessageMove struct {
	Move string
}

func (m MessageMove) Type() MessageType {
	return TypeMessageMove
}

// MessageAction carries out-of-band actions such as draw offers and
// resignations.
type MessageAction struct {
	Action Action
}

func (m MessageAction) Type() MessageType {
	return TypeMessageAction
}

// Encode marshals a message, panicking on programmer error: every message
// type here is marshalable.
func Encode(m interface{}) json.RawMessage {
	data, err := json.Marshal(m)
	if err != nil {
		log.Panic(err)
	}
	return data
}

// Decode unmarshals into out, logging malformed input instead of killing
// the connection handler.
func Decode(data []byte, out interface{}) error {
	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("Failed to decode message: %v", err)
		return err
	}
	return nil
}
