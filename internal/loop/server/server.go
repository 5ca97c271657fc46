// Package server is the hub every terminal client registers with. Each
// client owns an independent game session; the hub scopes the sessions'
// lifetimes and keeps the shared leaderboard.
package server

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/mousehunt/internal/game"
	"github.com/tomz197/mousehunt/internal/loop/config"
)

// GameServer is the interface clients use to communicate with the hub.
// Decouples the Client from the concrete Server implementation, enabling
// testing and alternative hubs.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	RecordScore(clientID int, score, level int)
	TopScores() []TopScoreEntry
	Players() int
}

// Server manages connected clients and their sessions.
type Server struct {
	ctx    context.Context
	params game.Params
	logger *log.Logger

	clients      map[int]*ClientHandle
	nextClientID int
	board        *Leaderboard
	mu           sync.RWMutex
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string           // Display name for this client
	Session  *game.Session    // This client's game, running until unregistered
	EventsCh chan ClientEvent // Hub events sent to the client (shutdown)

	cancel context.CancelFunc
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)

// Options configures the server. All fields are optional.
type Options struct {
	Params game.Params // Zero value means game.DefaultParams()
	Logger *log.Logger
}

// NewServer creates a hub whose sessions live until ctx is cancelled or
// their client unregisters.
func NewServer(ctx context.Context, opts Options) *Server {
	params := opts.Params
	if params.MotionTick == 0 {
		params = game.DefaultParams()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		ctx:          ctx,
		params:       params,
		logger:       logger,
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		board:        NewLeaderboard(config.TopScoresCount),
	}
}

// RegisterClient registers a new client with the given username, starts its
// session and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextClientID
	s.nextClientID++

	ctx, cancel := context.WithCancel(s.ctx)
	handle := &ClientHandle{
		ID:       id,
		Username: username,
		Session: game.NewSession(s.params, game.SessionOptions{
			Logger: s.logger.With("client", id, "user", username),
		}),
		EventsCh: make(chan ClientEvent, 16),
		cancel:   cancel,
	}
	s.clients[id] = handle
	go handle.Session.Run(ctx)

	s.logger.Info("client registered", "client", id, "user", username, "players", len(s.clients))
	return handle
}

// UnregisterClient stops the client's session and removes it from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return
	}
	handle.cancel()
	close(handle.EventsCh)
	delete(s.clients, clientID)
	s.logger.Info("client unregistered", "client", clientID, "players", len(s.clients))
}

// RecordScore submits a finished game to the leaderboard.
func (s *Server) RecordScore(clientID int, score, level int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	username := "anonymous"
	if handle, ok := s.clients[clientID]; ok && handle.Username != "" {
		username = handle.Username
	}
	if s.board.Add(username, score, level) {
		s.logger.Debug("leaderboard updated", "user", username, "score", score, "level", level)
	}
}

// TopScores returns the leaderboard, best first.
func (s *Server) TopScores() []TopScoreEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board.Top()
}

// Players returns the number of connected clients.
func (s *Server) Players() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	// Notify all connected clients about the shutdown
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			if s.Players() == 0 {
				return
			}
		}
	}
}
