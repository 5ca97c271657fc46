// Package config centralizes the terminal frontend's tunables. Game tuning
// lives in game.Params.
package config

import "time"

// Terminal cells are mapped to arena units with a fixed cell size, so the
// arena a terminal player sees is about as large as a desktop window of the
// same character grid.
const (
	CellWidth  = 8  // Arena units per terminal column
	CellHeight = 16 // Arena units per terminal row
)

// HUD layout
const (
	HUDRows       = 2  // Rows reserved above the arena
	ProgressWidth = 20 // Cells in the progress bar
)

// Player
const (
	MaxUsernameLength = 16   // Maximum display length for player usernames
	PointerStep       = 24.0 // Arena units moved per arrow key press
)

// Banners
const (
	LevelBannerSeconds = 1.0
	BurstParticles     = 12
	BurstSpeed         = 120.0 // Arena units per second
	BurstLifetime      = 0.4   // Seconds
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Leaderboard
const (
	TopScoresCount = 5
)
