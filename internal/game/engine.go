package game

import (
	"math/rand"
	"time"

	"github.com/tomz197/mousehunt/internal/physics"
)

// Engine spawns, moves and catches mice. It owns the random source and the
// id counter, so ids stay unique for as long as one Engine is used.
// Not safe for concurrent use; a Session confines it to one goroutine.
type Engine struct {
	params Params
	rng    *rand.Rand
	nextID int
}

// NewEngine creates an engine. A nil src seeds from the clock.
func NewEngine(p Params, src rand.Source) *Engine {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Engine{
		params: p,
		rng:    rand.New(src),
		nextID: 1,
	}
}

// Params returns the tuning the engine was built with.
func (e *Engine) Params() Params {
	return e.params
}

// NewMouse creates one mouse at a random position in the arena with a
// velocity scaled by level.
func (e *Engine) NewMouse(level int, arena Arena) Mouse {
	if level < 1 {
		level = 1
	}
	arena = arena.Resolve(e.params)
	maxX, maxY := arena.Limits(e.params.MouseSize)
	speed := float64(level) * e.params.SpeedPerLevel

	m := Mouse{
		ID:     e.nextID,
		X:      e.rng.Float64() * maxX,
		Y:      e.rng.Float64() * maxY,
		VX:     (e.rng.Float64()*2 - 1) * speed,
		VY:     (e.rng.Float64()*2 - 1) * speed,
		Symbol: e.params.Symbols[e.rng.Intn(len(e.params.Symbols))],
	}
	e.nextID++
	return m
}

// Initialize returns the opening batch for level 1.
func (e *Engine) Initialize(arena Arena) []Mouse {
	return e.spawn(e.params.InitialBatch, 1, arena)
}

// SpawnLevelBatch returns the batch that repopulates the arena when level
// starts.
func (e *Engine) SpawnLevelBatch(level int, arena Arena) []Mouse {
	return e.spawn(e.params.BatchSize(level), level, arena)
}

func (e *Engine) spawn(n, level int, arena Arena) []Mouse {
	if n < 1 {
		n = 1
	}
	mice := make([]Mouse, n)
	for i := range mice {
		mice[i] = e.NewMouse(level, arena)
	}
	return mice
}

// Advance moves every mouse by dt motion ticks, reflecting off the arena
// walls. mice is updated in place.
func Advance(p Params, mice []Mouse, arena Arena, dt float64) {
	arena = arena.Resolve(p)
	maxX, maxY := arena.Limits(p.MouseSize)
	for i := range mice {
		m := &mice[i]
		m.X, m.VX = physics.ReflectAxis(m.X, m.VX, maxX, dt)
		m.Y, m.VY = physics.ReflectAxis(m.Y, m.VY, maxY, dt)
	}
}

// ClampMice pulls every mouse back inside arena after it shrank. Only a
// velocity component still pointing out of the arena is flipped.
func ClampMice(p Params, mice []Mouse, arena Arena) {
	arena = arena.Resolve(p)
	maxX, maxY := arena.Limits(p.MouseSize)
	for i := range mice {
		m := &mice[i]
		m.X, m.VX = clampAxis(m.X, m.VX, maxX)
		m.Y, m.VY = clampAxis(m.Y, m.VY, maxY)
	}
}

func clampAxis(pos, vel, limit float64) (float64, float64) {
	switch {
	case pos > limit:
		pos = limit
		if vel > 0 {
			vel = -vel
		}
	case pos < 0:
		pos = 0
		if vel < 0 {
			vel = -vel
		}
	}
	return pos, vel
}

// Advance moves the mice of s by dt motion ticks. No-op when s is not running.
func (e *Engine) Advance(s *State, dt float64) {
	if !s.Running {
		return
	}
	Advance(e.params, s.Mice, s.Arena, dt)
}
