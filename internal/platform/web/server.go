package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/engine"
)

// WebSocketPath is where browsers connect.
const WebSocketPath = "/ws"

// Board used when the configuration asks to fit the screen, which a
// browser session does not report.
const (
	fitRows = 50
	fitCols = 100
)

//go:embed static/index.html
var indexHTML []byte

// Options configures a Server.
type Options struct {
	Addr   string
	Config config.SnakeConfig
	Seed   int64 // 0 seeds every session from the clock
	Logger *log.Logger
}

// Server runs one independent game per websocket connection.
type Server struct {
	opts     Options
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]*Conn
	closing  bool // set once shutdown starts; no session registers after it
	wg       sync.WaitGroup
}

// NewServer validates the configuration and builds a server.
func NewServer(opts Options) (*Server, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "snake-web",
		})
	}
	return &Server{
		opts:   opts,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(*http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		sessions: make(map[string]*Conn),
	}, nil
}

// Handler returns the HTTP handler serving the browser client, the
// websocket endpoint and a health check.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc(WebSocketPath, s.handleWS)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// ListenAndServe serves until ctx is done, then closes every session.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.opts.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web: listen: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)

	// Hijacked websocket connections are not closed by Shutdown.
	s.mu.Lock()
	s.closing = true
	for _, c := range s.sessions {
		c.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
	return err
}

// Sessions returns the number of connected sessions.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]int{"sessions": s.Sessions()})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := NewConn(ws)
	if !s.register(c) {
		c.Close()
		s.logger.Info("rejected session during shutdown", "remote", r.RemoteAddr)
		return
	}

	s.logger.Info("session started", "session", c.ID, "remote", r.RemoteAddr)
	start := time.Now()
	defer func() {
		s.mu.Lock()
		delete(s.sessions, c.ID)
		s.mu.Unlock()
		c.Close()
		s.wg.Done()
		s.logger.Info("session ended", "session", c.ID, "duration", time.Since(start).Round(time.Millisecond))
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.ReadLoop(s.logger)
	}()

	if err := s.play(c, done); err != nil {
		s.logger.Warn("session aborted", "session", c.ID, "error", err)
	}
}

// register tracks c unless shutdown has started. The WaitGroup is only
// incremented under mu, before ListenAndServe sets closing and waits.
func (s *Server) register(c *Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.sessions[c.ID] = c
	s.wg.Add(1)
	return true
}

// play drives rounds for one connection until the client goes away. Only
// this goroutine touches the engine.
func (s *Server) play(c *Conn, done <-chan struct{}) error {
	seed := s.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	ticker := time.NewTicker(time.Second / time.Duration(s.opts.Config.Speed.StepsPerSecond))
	defer ticker.Stop()

	for {
		eng, err := s.startRound(c, rng)
		if err != nil {
			return err
		}

		for !eng.Status().Terminal() {
			select {
			case <-done:
				return nil
			case <-ticker.C:
			}

			c.takeRestart() // only honored once the round is over
			changes, err := eng.Step(c.takeDirection())
			if err != nil {
				return err
			}
			if err := c.Send(diffMsg(changes, eng.Status(), eng.Tick())); err != nil {
				return err
			}
		}

		s.logger.Info("round over", "session", c.ID, "status", eng.Status(), "length", eng.Len(), "ticks", eng.Tick())
		if err := c.Send(EndMsg{Type: MsgEnd, Status: eng.Status().String()}); err != nil {
			return err
		}

		if !s.awaitRestart(c, ticker.C, done) {
			return nil
		}
	}
}

// startRound builds an engine and sends the welcome and initial placement.
func (s *Server) startRound(c *Conn, rng *rand.Rand) (*engine.Engine, error) {
	cfg := s.opts.Config
	ecfg, err := cfg.EngineConfig(rng)
	if err != nil {
		return nil, err
	}

	rows, cols := cfg.Board.Rows, cfg.Board.Cols
	if cfg.Board.Fit() {
		rows, cols = fitRows, fitCols
	}

	eng, changes, err := engine.New(rows, cols, ecfg)
	if err != nil {
		return nil, fmt.Errorf("web: %w", err)
	}

	// Drop requests made during the previous round.
	c.takeDirection()
	c.takeRestart()

	welcome := WelcomeMsg{
		Type:     MsgWelcome,
		ID:       c.ID,
		Rows:     rows,
		Cols:     cols,
		Topology: ecfg.Topology.String(),
	}
	if err := c.Send(welcome); err != nil {
		return nil, err
	}
	if err := c.Send(diffMsg(changes, eng.Status(), eng.Tick())); err != nil {
		return nil, err
	}
	return eng, nil
}

// awaitRestart polls for a restart request on each tick. It returns false
// when the client disconnects first.
func (s *Server) awaitRestart(c *Conn, tick <-chan time.Time, done <-chan struct{}) bool {
	for {
		select {
		case <-done:
			return false
		case <-tick:
			if c.takeRestart() {
				return true
			}
		}
	}
}
