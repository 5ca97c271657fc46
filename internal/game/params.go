// Package game implements the cat-and-mice simulation: mouse motion,
// catch detection, scoring and level progression.
//
// Everything that mutates game state lives behind two entry points. The
// Engine exposes the transition functions (Advance, Catch, CheckCollisions,
// SpawnLevelBatch) that operate on an explicit *State. The Session owns one
// State and drives those functions from its own goroutine on two fixed
// cadences.
package game

import (
	"errors"
	"fmt"
	"time"
)

// Cadences
const (
	MotionTickRate        = 60                           // Hz
	MotionTickTime        = time.Second / MotionTickRate // ~16.7ms
	CollisionPassInterval = 50 * time.Millisecond        // ~20 checks per second
)

// Catching
const (
	CatchRadius    = 50.0
	CatOffsetX     = 30.0 // Pointer hot-spot approximating the cat sprite center
	CatOffsetY     = 30.0
	MarkerLifetime = 500 * time.Millisecond
)

// Spawning
const (
	InitialBatch      = 3
	BatchBase         = 3
	BatchLevelDivisor = 2
	BatchMax          = 8
	SpeedPerLevel     = 1.0 // Max velocity component per level, in units per tick
	MouseSize         = 40.0
)

// Arena fallback used until the presentation layer reports real bounds.
const (
	DefaultArenaWidth  = 800.0
	DefaultArenaHeight = 600.0
)

// Progress display
const (
	CatchesPerProgress = 5
)

// MouseSymbols are the display glyphs a mouse is drawn with.
var MouseSymbols = []string{"🐭", "🐁", "🐀"}

// ErrInvalidParams is wrapped by Params.Validate failures.
var ErrInvalidParams = errors.New("invalid game params")

// Params holds every tunable of the simulation.
// The zero value is not usable; start from DefaultParams.
type Params struct {
	MotionTick        time.Duration
	CollisionInterval time.Duration

	CatchRadius    float64
	CatOffsetX     float64
	CatOffsetY     float64
	MarkerLifetime time.Duration

	InitialBatch      int
	BatchBase         int
	BatchLevelDivisor int
	BatchMax          int
	SpeedPerLevel     float64
	MouseSize         float64

	DefaultWidth  float64
	DefaultHeight float64

	CatchesPerProgress int
	Symbols            []string
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		MotionTick:         MotionTickTime,
		CollisionInterval:  CollisionPassInterval,
		CatchRadius:        CatchRadius,
		CatOffsetX:         CatOffsetX,
		CatOffsetY:         CatOffsetY,
		MarkerLifetime:     MarkerLifetime,
		InitialBatch:       InitialBatch,
		BatchBase:          BatchBase,
		BatchLevelDivisor:  BatchLevelDivisor,
		BatchMax:           BatchMax,
		SpeedPerLevel:      SpeedPerLevel,
		MouseSize:          MouseSize,
		DefaultWidth:       DefaultArenaWidth,
		DefaultHeight:      DefaultArenaHeight,
		CatchesPerProgress: CatchesPerProgress,
		Symbols:            MouseSymbols,
	}
}

// Validate reports the first field that would stall or break the simulation.
func (p Params) Validate() error {
	switch {
	case p.MotionTick <= 0:
		return fmt.Errorf("%w: motion tick %v must be positive", ErrInvalidParams, p.MotionTick)
	case p.CollisionInterval <= 0:
		return fmt.Errorf("%w: collision interval %v must be positive", ErrInvalidParams, p.CollisionInterval)
	case p.CatchRadius <= 0:
		return fmt.Errorf("%w: catch radius %v must be positive", ErrInvalidParams, p.CatchRadius)
	case p.MarkerLifetime < 0:
		return fmt.Errorf("%w: marker lifetime %v is negative", ErrInvalidParams, p.MarkerLifetime)
	case p.InitialBatch < 1:
		return fmt.Errorf("%w: initial batch %d must be at least 1", ErrInvalidParams, p.InitialBatch)
	case p.BatchLevelDivisor < 1:
		return fmt.Errorf("%w: batch level divisor %d must be at least 1", ErrInvalidParams, p.BatchLevelDivisor)
	case p.BatchMax < p.InitialBatch:
		return fmt.Errorf("%w: batch max %d below initial batch %d", ErrInvalidParams, p.BatchMax, p.InitialBatch)
	case p.SpeedPerLevel < 0:
		return fmt.Errorf("%w: speed per level %v is negative", ErrInvalidParams, p.SpeedPerLevel)
	case p.MouseSize < 0:
		return fmt.Errorf("%w: mouse size %v is negative", ErrInvalidParams, p.MouseSize)
	case p.DefaultWidth <= 0 || p.DefaultHeight <= 0:
		return fmt.Errorf("%w: default arena %vx%v must be positive", ErrInvalidParams, p.DefaultWidth, p.DefaultHeight)
	case len(p.Symbols) == 0:
		return fmt.Errorf("%w: no mouse symbols", ErrInvalidParams)
	}
	return nil
}

// BatchSize returns how many mice are spawned when the given level starts.
// Never below InitialBatch, so a batch can't come back empty and stall
// the level trigger.
func (p Params) BatchSize(level int) int {
	div := p.BatchLevelDivisor
	if div < 1 {
		div = 1
	}
	n := p.BatchBase + level/div
	if n > p.BatchMax {
		n = p.BatchMax
	}
	if n < p.InitialBatch {
		n = p.InitialBatch
	}
	return n
}
