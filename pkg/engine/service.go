package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/earther/chesscore/pkg/core"
)

// ErrUnavailable means the search did not finish inside its budget. The
// response still carries a playable move from the static fallback.
var ErrUnavailable = errors.New("engine: search unavailable, fell back to static evaluation")

const (
	DefaultTimeout = 10 * time.Second
	MaxSkill       = 20
)

// Request asks for the best move in a position. Skill (0-20) scales the
// search depth down from Depth, so a low-skill opponent looks shallower.
type Request struct {
	FEN   string
	Depth int
	Skill int
}

// Response carries the chosen move in coordinate form. NoMove is set for
// terminal positions; Fallback is set when the timeout forced the static
// evaluator to choose, so the caller knows the move source changed.
type Response struct {
	Move     string
	SAN      string
	Score    int
	NoMove   bool
	Fallback bool
}

// Service runs searches off the caller's goroutine, one request in flight
// per game id. A new request for the same id supersedes the old one:
// the in-flight search is cancelled before the new position is taken on,
// so stale results never surface.
type Service struct {
	mu       sync.Mutex
	inflight map[string]flight
	lastID   uint64
	timeout  time.Duration
}

type flight struct {
	id     uint64
	cancel context.CancelFunc
}

func NewService(timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		inflight: make(map[string]flight),
		timeout:  timeout,
	}
}

// BestMove answers req synchronously. Malformed FEN fails with the parse
// error; a terminal position answers NoMove; a timeout degrades to the
// one-ply static fallback and reports ErrUnavailable alongside the
// response, never instead of it.
func (s *Service) BestMove(gameID string, req Request) (Response, error) {
	g, err := core.ParseFEN(req.FEN)
	if err != nil {
		return Response{}, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	token := s.takeFlight(gameID, cancel)
	defer s.landFlight(gameID, token, cancel)

	res, err := Search(ctx, g, depthForSkill(req.Depth, req.Skill))
	switch {
	case err == nil:
		san, _ := g.SAN(res.Move)
		return Response{Move: res.Move.String(), SAN: san, Score: res.Score}, nil
	case errors.Is(err, ErrNoMove):
		return Response{NoMove: true}, nil
	default:
		// Cancelled or timed out: answer from the shallow fallback.
		move, score, ok := fallbackMove(g)
		if !ok {
			return Response{NoMove: true}, nil
		}
		san, _ := g.SAN(move)
		return Response{Move: move.String(), SAN: san, Score: score, Fallback: true}, ErrUnavailable
	}
}

// Go runs BestMove on its own goroutine and delivers the answer through
// done. The single-flight rule still applies per game id.
func (s *Service) Go(gameID string, req Request, done func(Response, error)) {
	go func() {
		done(s.BestMove(gameID, req))
	}()
}

// takeFlight cancels any in-flight search for the game before recording
// the new one (stop before position).
func (s *Service) takeFlight(gameID string, cancel context.CancelFunc) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.inflight[gameID]; ok {
		prev.cancel()
	}
	s.lastID++
	s.inflight[gameID] = flight{id: s.lastID, cancel: cancel}
	return s.lastID
}

// landFlight releases the context and unregisters the flight, unless a
// later request already took its slot.
func (s *Service) landFlight(gameID string, token uint64, cancel context.CancelFunc) {
	cancel()
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.inflight[gameID]; ok && current.id == token {
		delete(s.inflight, gameID)
	}
}

// depthForSkill maps the 0-20 skill dial onto search depth: skill 20
// searches the full requested depth, lower settings see less.
func depthForSkill(depth, skill int) int {
	if depth < 1 {
		depth = 1
	}
	if skill < 0 {
		skill = 0
	}
	if skill >= MaxSkill {
		return depth
	}
	d := 1 + skill*(depth-1)/MaxSkill
	return d
}

// fallbackMove picks the move with the best one-ply static evaluation,
// captures resolved and nothing else.
func fallbackMove(g *core.Game) (core.Move, int, bool) {
	moves := g.LegalMoves()
	if len(moves) == 0 {
		return core.Move{}, 0, false
	}
	board := g.Board()
	orderMoves(&board, moves)

	best, bestScore := moves[0], -mateScore-1
	for _, m := range moves {
		child := g.Clone()
		child.Apply(m)
		var score int
		switch {
		case child.Checkmate():
			score = mateScore
		case child.Draw():
			score = 0
		default:
			score = -evaluateFor(child)
		}
		if score > bestScore {
			best, bestScore = m, score
		}
	}
	return best, bestScore, true
}
