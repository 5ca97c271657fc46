package client

import (
	"time"

	"github.com/tomz197/mousehunt/internal/game"
	"github.com/tomz197/mousehunt/internal/input"
)

// GameState represents the current game phase for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Active game
	GameStateShutdown                  // Server is shutting down
)

// ClientState holds per-player state (input, pointer, banners, etc.).
// Each client has their own instance, managed by the Client.
type ClientState struct {
	Input     input.Input
	GameState GameState  // This client's game phase
	Arena     game.Arena // Last arena size pushed to the session
	Pointer   game.Point // Last pointer position in arena coordinates
	Running   bool       // Client loop running

	LastScore int // Result of the previous game, shown on the start screen
	LastLevel int
	HasPlayed bool

	levelBanner   float64       // Seconds the level banner stays up
	delta         time.Duration // Frame delta time (client-side)
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState: GameStateStart,
		Running:   true,
	}
}
