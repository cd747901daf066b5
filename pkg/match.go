package pkg

import (
	"log"
	"net"
	"sync"
	"time"

	"github.com/earther/chesscore/pkg/core"
	"github.com/earther/chesscore/pkg/engine"
)

const (
	DefaultClockTime      = 10 * time.Minute
	DefaultClockIncrement = 5 * time.Second
	EngineDepth           = 4
	EngineTimeout         = 5 * time.Second
)

// Match is one logical game: a rules engine instance, up to two seated
// players plus viewers, and optionally the built-in engine on one seat.
// All game mutation happens on the Run goroutine, which keeps the
// one-writer-per-Game contract.
type Match struct {
	Id      string
	Game    *core.Game
	Players []*Player
	In      chan MessageTransport

	Engine      *engine.Service
	EngineColor PlayerColor
	EngineSkill int

	Clocks [2]*Clock

	joins     chan *Player
	done      chan struct{} // closed by Close to stop Run
	stopped   chan struct{} // closed by Run on exit
	closeOnce sync.Once

	mu         sync.Mutex
	lastActive time.Time
	drawOffer  PlayerColor // seat with a pending offer, Unknown when none
	finished   string      // outcome once decided out-of-band (resign, flag)
	method     string
}

func NewMatch(id string) *Match {
	return NewTimedMatch(id, DefaultClockTime, DefaultClockIncrement)
}

// NewTimedMatch starts a match with a custom time control.
func NewTimedMatch(id string, base, increment time.Duration) *Match {
	m := &Match{
		Id:          id,
		Game:        core.NewGame(),
		In:          make(chan MessageTransport, MessageQueueSize),
		joins:       make(chan *Player),
		done:        make(chan struct{}),
		stopped:     make(chan struct{}),
		EngineColor: Unknown,
		drawOffer:   Unknown,
		lastActive:  time.Now(),
	}
	m.Clocks[White] = NewClock(base, increment)
	m.Clocks[Black] = NewClock(base, increment)
	go m.Run()
	return m
}

// WithEngine seats the engine on the given side.
func (m *Match) WithEngine(svc *engine.Service, color PlayerColor, skill int) *Match {
	m.Engine = svc
	m.EngineColor = color
	m.EngineSkill = skill
	return m
}

// AddConn hands a new connection to the match loop, which owns all
// seating. A closed match just drops the connection.
func (m *Match) AddConn(conn net.Conn, name string) {
	p := NewPlayer(conn)
	p.Name = name
	select {
	case m.joins <- p:
	case <-m.done:
		p.Disconnect()
	}
}

// seat assigns the next free color: White first, then Black, then
// viewers. Runs on the match loop, so reading the game is safe here.
func (m *Match) seat(p *Player) {
	color := Viewer
	taken := map[PlayerColor]bool{m.EngineColor: true}
	m.mu.Lock()
	for _, q := range m.Players {
		taken[q.Color] = true
	}
	switch {
	case !taken[White]:
		color = White
	case !taken[Black]:
		color = Black
	}
	p.Color = color
	p.Id = len(m.Players)
	m.Players = append(m.Players, p)
	m.lastActive = time.Now()
	m.mu.Unlock()

	go p.HandleWrite()
	go p.HandleRead(m.In, m.done)

	p.Send(MessageConnect{
		Color:   color,
		Fen:     m.Game.FEN(),
		IsTurn:  m.isTurn(color),
		MatchId: m.Id,
	})
	log.Printf("Match %s: added player %s as %s", m.Id, p.Name, color)

	// The engine opens when it holds White.
	if m.Engine != nil && m.EngineColor == White && m.Game.Turn() == core.White {
		m.requestEngineMove()
	}
}

// Run is the match loop: every mutation of the game funnels through
// here, including seating, and Close is the only way to stop it.
func (m *Match) Run() {
	defer close(m.stopped)
	flagTick := time.NewTicker(time.Second)
	defer flagTick.Stop()
	for {
		select {
		case <-m.done:
			return

		case p := <-m.joins:
			m.seat(p)

		case mt := <-m.In:
			m.mu.Lock()
			m.lastActive = time.Now()
			m.mu.Unlock()

			switch mt.MsgType {
			case TypeMessageMove:
				var msg MessageMove
				if err := Decode(mt.Data, &msg); err != nil {
					continue
				}
				m.handleMove(mt.PlayerId, msg.Move)
			case TypeMessageAction:
				var msg MessageAction
				if err := Decode(mt.Data, &msg); err != nil {
					continue
				}
				m.handleAction(mt.PlayerId, msg.Action)
			default:
				log.Printf("Match %s: unexpected message %s", m.Id, mt.MsgType)
			}

		case <-flagTick.C:
			m.checkFlag()
		}
	}
}

// checkFlag ends the game when the side to move runs out of time. Time
// only matters once both seats are filled.
func (m *Match) checkFlag() {
	if m.outcome() != "*" || !m.bothSeated() {
		return
	}
	mover := White
	if m.Game.Turn() == core.Black {
		mover = Black
	}
	if m.Clocks[mover].Flagged() {
		m.finish(loserOutcome(mover), "Time forfeit")
		m.broadcast("", mover.String()+" ran out of time")
	}
}

func (m *Match) bothSeated() bool {
	taken := map[PlayerColor]bool{m.EngineColor: true}
	m.mu.Lock()
	for _, p := range m.Players {
		taken[p.Color] = true
	}
	m.mu.Unlock()
	return taken[White] && taken[Black]
}

// handleMove validates and applies one submission. PlayerId -1 marks the
// engine's own replies.
func (m *Match) handleMove(playerId int, text string) {
	mover := m.seatOf(playerId)
	if mover == Viewer || mover == Unknown {
		m.tell(playerId, "viewers cannot move")
		return
	}
	if m.outcome() != "*" {
		m.tell(playerId, "the game is over")
		return
	}
	if !m.isTurn(mover) {
		m.tell(playerId, "not your turn")
		return
	}

	move, err := m.Game.ParseMove(text)
	if err != nil {
		log.Printf("Match %s: rejected %q from %s: %v", m.Id, text, mover, err)
		m.tell(playerId, err.Error())
		return
	}
	san, _ := m.Game.SAN(move)
	if err := m.Game.Apply(move); err != nil {
		m.tell(playerId, err.Error())
		return
	}

	m.punchClocks(mover)
	m.clearDrawOffer()
	m.broadcast(san, "")

	if m.outcome() == "*" && m.Engine != nil && m.isTurn(m.EngineColor) {
		m.requestEngineMove()
	}
}

func (m *Match) handleAction(playerId int, action Action) {
	seat := m.seatOf(playerId)
	if seat != White && seat != Black {
		return
	}
	switch action {
	case ActionResign:
		m.finish(loserOutcome(seat), "Resignation")
		m.broadcast("", seat.String()+" resigned")
	case ActionDrawOffer:
		m.mu.Lock()
		m.drawOffer = seat
		m.mu.Unlock()
		m.broadcast("", seat.String()+" offers a draw")
	case ActionDrawAccept:
		m.mu.Lock()
		pending := m.drawOffer
		m.mu.Unlock()
		if pending != Unknown && pending != seat {
			m.finish("1/2-1/2", "Agreement")
			m.broadcast("", "draw agreed")
		}
	case ActionDrawReject:
		m.clearDrawOffer()
		m.broadcast("", seat.String()+" declines the draw")
	default:
		log.Printf("Match %s: unhandled action %q", m.Id, action)
	}
}

// requestEngineMove asks the engine service for the current position.
// The reply re-enters the loop through In like any other player's move.
func (m *Match) requestEngineMove() {
	req := engine.Request{FEN: m.Game.FEN(), Depth: EngineDepth, Skill: m.EngineSkill}
	m.Engine.Go(m.Id, req, func(resp engine.Response, err error) {
		if resp.NoMove {
			return
		}
		if err != nil {
			// Timed out onto the static fallback; the move still stands.
			log.Printf("Match %s: engine degraded: %v", m.Id, err)
		}
		mt := MessageTransport{
			MsgType:  TypeMessageMove,
			Data:     Encode(MessageMove{Move: resp.Move}),
			PlayerId: engineSeatId,
		}
		select {
		case m.In <- mt:
		case <-m.done:
		}
	})
}

// engineSeatId marks engine submissions in the match loop.
const engineSeatId = -1

func (m *Match) seatOf(playerId int) PlayerColor {
	if playerId == engineSeatId {
		return m.EngineColor
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.Players {
		if p.Id == playerId {
			return p.Color
		}
	}
	return Unknown
}

func (m *Match) isTurn(color PlayerColor) bool {
	if color != White && color != Black {
		return false
	}
	return m.Game.Turn() == color.CoreColor()
}

func (m *Match) punchClocks(mover PlayerColor) {
	if mover != White && mover != Black {
		return
	}
	m.Clocks[mover].Tick() // bank the increment
	m.Clocks[mover].Pause()
	if other := 1 - mover; m.outcome() == "*" {
		m.Clocks[other].Resume()
	}
}

// outcome folds the out-of-band results (resignation, agreement) over the
// rules engine's own verdict.
func (m *Match) outcome() string {
	m.mu.Lock()
	if m.finished != "" {
		defer m.mu.Unlock()
		return m.finished
	}
	m.mu.Unlock()
	return m.Game.Outcome()
}

func (m *Match) endMethod() string {
	m.mu.Lock()
	if m.finished != "" {
		defer m.mu.Unlock()
		return m.method
	}
	m.mu.Unlock()
	return m.Game.Method()
}

func (m *Match) finish(outcome, method string) {
	m.mu.Lock()
	m.finished = outcome
	m.method = method
	m.mu.Unlock()
	m.Clocks[White].Pause()
	m.Clocks[Black].Pause()
}

func (m *Match) clearDrawOffer() {
	m.mu.Lock()
	m.drawOffer = Unknown
	m.mu.Unlock()
}

// broadcast sends the fresh game state to every seat and viewer.
func (m *Match) broadcast(lastSAN, note string) {
	fen := m.Game.FEN()
	outcome, method := m.outcome(), m.endMethod()
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.Players {
		p.Send(MessageGame{
			Fen:      fen,
			IsTurn:   outcome == "*" && m.Game.Turn() == p.Color.CoreColor() && p.Color != Viewer,
			LastMove: lastSAN,
			Outcome:  outcome,
			Method:   method,
			Msg:      note,
		})
	}
}

// tell sends a note to a single player without changing the game.
func (m *Match) tell(playerId int, note string) {
	if playerId == engineSeatId {
		log.Printf("Match %s: engine: %s", m.Id, note)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.Players {
		if p.Id == playerId {
			p.Send(MessageGame{
				Fen:     m.Game.FEN(),
				IsTurn:  true, // still their move, they get to retry
				Outcome: "*",
				Msg:     note,
			})
			return
		}
	}
}

// IdleSince reports how long the match has been quiet.
func (m *Match) IdleSince() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return time.Since(m.lastActive)
}

// Close stops the match loop, then releases clocks and connections.
// Safe to call more than once; late traffic on In is simply dropped.
func (m *Match) Close() {
	m.closeOnce.Do(func() {
		close(m.done)
		<-m.stopped
		m.Clocks[White].Stop()
		m.Clocks[Black].Stop()
		m.mu.Lock()
		defer m.mu.Unlock()
		for _, p := range m.Players {
			p.Disconnect()
		}
	})
}

func loserOutcome(loser PlayerColor) string {
	if loser == White {
		return "0-1"
	}
	return "1-0"
}
