package pkg

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"os/exec"
	"path"
	"sync"
	"time"

	"github.com/creack/pty"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/fatih/color"
	"github.com/gliderlabs/ssh"

	"github.com/earther/chesscore/pkg/engine"
)

const (
	ServerIdleTimeout = 5 * time.Minute
	SshPort           = ":2222"
	ServerPort        = ":1998"
	MessageQueueSize  = 20
	ConnQueueSize     = 10
)

// Server pairs a TCP game endpoint with an SSH front that respawns the
// TUI client in a pty, the way a kiosk would.
type Server struct {
	Ssh        *ssh.Server
	ClientPath string // binary the SSH front executes

	mu      sync.Mutex
	Matches map[string]*Match
	Engine  *engine.Service
}

func NewServer(clientPath string) *Server {
	s := &Server{
		ClientPath: clientPath,
		Matches:    make(map[string]*Match),
		Engine:     engine.NewService(EngineTimeout),
	}
	return s
}

// ListenAndServe accepts game connections until the listener dies.
func (s *Server) ListenAndServe(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer listener.Close()
	color.New(color.FgGreen).Printf("chesscore server listening on %s\n", addr)
	log.Printf("Listening at %s", addr)

	go s.CleanIdleMatches()

	for {
		conn, err := listener.Accept()
		if err != nil {
			log.Printf("Failed to accept: %v", err)
			continue
		}
		go s.HandleConn(conn)
	}
}

// HandleConn reads the join message and seats the connection.
func (s *Server) HandleConn(conn net.Conn) {
	scanner := bufio.NewScanner(conn)
	if !scanner.Scan() {
		conn.Close()
		return
	}
	var mt MessageTransport
	if err := Decode(scanner.Bytes(), &mt); err != nil || mt.MsgType != TypeMessageJoin {
		log.Printf("Connection did not introduce itself, dropping")
		conn.Close()
		return
	}
	var join MessageJoin
	if err := Decode(mt.Data, &join); err != nil {
		conn.Close()
		return
	}
	if join.Name == "" {
		join.Name = petname.Generate(2, "-")
	}
	s.AddConn(conn, join)
}

// AddConn routes the connection into its match, creating the match on
// first contact. An empty match id gets a fresh petname.
func (s *Server) AddConn(conn net.Conn, join MessageJoin) {
	s.mu.Lock()
	id := join.MatchId
	if id == "" {
		id = petname.Generate(2, "-")
	}
	m, ok := s.Matches[id]
	if !ok {
		m = NewMatch(id)
		if join.VsEngine {
			// The human takes White; the engine answers as Black.
			m.WithEngine(s.Engine, Black, join.Skill)
		}
		s.Matches[id] = m
		color.New(color.FgCyan).Printf("new match %s (vs engine: %v)\n", id, join.VsEngine)
		log.Printf("Created match %s", id)
	}
	s.mu.Unlock()
	m.AddConn(conn, join.Name)
}

// CleanIdleMatches drops matches nobody has touched for a while.
func (s *Server) CleanIdleMatches() {
	tick := time.NewTicker(time.Minute)
	defer tick.Stop()
	for range tick.C {
		s.mu.Lock()
		for id, m := range s.Matches {
			if m.IdleSince() > ServerIdleTimeout {
				log.Printf("Cleaning idle match %s", id)
				m.Close()
				delete(s.Matches, id)
			}
		}
		s.mu.Unlock()
	}
}

// ServeSsh runs the SSH front. Every session gets its own client process
// wired to a pty.
func (s *Server) ServeSsh(addr string) error {
	s.Ssh = &ssh.Server{
		Addr:        addr,
		IdleTimeout: ServerIdleTimeout,
		Handler:     s.sshHandle,
	}
	homeDir, err := os.UserHomeDir()
	if err == nil {
		if err := s.Ssh.SetOption(ssh.HostKeyFile(path.Join(homeDir, ".ssh", "id_rsa"))); err != nil {
			log.Printf("No usable host key, using a generated one: %v", err)
		}
	}
	color.New(color.FgGreen).Printf("ssh front listening on %s\n", addr)
	return s.Ssh.ListenAndServe()
}

func (s *Server) sshHandle(sess ssh.Session) {
	ptyReq, winCh, isPty := sess.Pty()
	if !isPty {
		io.WriteString(sess, "non-interactive terminals are not supported\n")
		sess.Exit(1)
		return
	}

	cmd := exec.Command(s.ClientPath)
	cmd.Env = append(sess.Environ(), fmt.Sprintf("TERM=%s", ptyReq.Term))

	f, err := pty.Start(cmd)
	if err != nil {
		io.WriteString(sess, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))
		sess.Exit(1)
		return
	}
	defer f.Close()

	go func() {
		for win := range winCh {
			pty.Setsize(f, &pty.Winsize{Rows: uint16(win.Height), Cols: uint16(win.Width)})
		}
	}()
	go func() {
		io.Copy(f, sess)
	}()
	io.Copy(sess, f)

	cmd.Wait()
}
