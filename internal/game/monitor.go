package game

import (
	"time"

	"github.com/tomz197/mousehunt/internal/physics"
)

// CatchResult describes one processed catch.
type CatchResult struct {
	Mouse   Mouse
	Score   int  // Score after the catch
	Level   int  // Level after the catch
	LevelUp bool // The catch emptied the arena and a new batch was spawned
	Marker  Marker
}

// Catch removes the mouse with the given id, scores it, drops a marker and,
// when the arena is left empty, advances the level and spawns the next
// batch. An id that is no longer live is a no-op.
func (e *Engine) Catch(s *State, id int, now time.Time) (CatchResult, bool) {
	if !s.Running {
		return CatchResult{}, false
	}
	idx := s.FindMouse(id)
	if idx < 0 {
		return CatchResult{}, false
	}

	caught := s.Mice[idx]
	s.Mice = append(s.Mice[:idx], s.Mice[idx+1:]...)
	s.Score++

	s.markerSeq++
	s.Marker = &Marker{
		Pos:       caught.Position(),
		ExpiresAt: now.Add(e.params.MarkerLifetime),
		Seq:       s.markerSeq,
	}

	res := CatchResult{Mouse: caught, Marker: *s.Marker}
	if len(s.Mice) == 0 {
		s.Level++
		s.Mice = e.SpawnLevelBatch(s.Level, s.Arena)
		res.LevelUp = true
	}
	res.Score = s.Score
	res.Level = s.Level
	return res, true
}

// Caught returns the ids of every mouse strictly within the catch radius
// of the cat.
func Caught(p Params, cat Cat, mice []Mouse) []int {
	var ids []int
	for _, m := range mice {
		if physics.WithinRadius(cat.X, cat.Y, m.X, m.Y, p.CatchRadius) {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

// CheckCollisions runs one collision pass: every mouse in range of the cat
// is caught. The candidates are fixed before any removal, so a batch
// spawned by the last catch is not checked until the next pass.
func (e *Engine) CheckCollisions(s *State, now time.Time) []CatchResult {
	if !s.Running {
		return nil
	}
	ids := Caught(e.params, s.Cat, s.Mice)
	if len(ids) == 0 {
		return nil
	}
	results := make([]CatchResult, 0, len(ids))
	for _, id := range ids {
		if res, ok := e.Catch(s, id, now); ok {
			results = append(results, res)
		}
	}
	return results
}
