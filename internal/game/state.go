package game

import "time"

// Marker is the transient "+1" effect left where a mouse was caught.
// Purely observational; no game decision reads it.
type Marker struct {
	Pos       Point
	ExpiresAt time.Time
	Seq       uint64 // Increments per catch, identifies the marker an expiry belongs to
}

// State is one game session's mutable record.
type State struct {
	Score   int
	Level   int
	Mice    []Mouse
	Running bool
	Cat     Cat
	Marker  *Marker
	Arena   Arena

	markerSeq uint64
}

// NewState returns an idle state.
func NewState() *State {
	return &State{Level: 1}
}

// Start resets the session to score 0, level 1 and the opening batch. The
// cat is recentred on the arena.
func (e *Engine) Start(s *State) {
	arena := s.Arena.Resolve(e.params)
	s.Cat = CatAt(e.params, arena.Width/2, arena.Height/2)
	s.Score = 0
	s.Level = 1
	s.Marker = nil
	s.Mice = e.Initialize(s.Arena)
	s.Running = true
}

// Stop discards the session. Arena survives so the next Start spawns inside
// the last measured bounds.
func (s *State) Stop() {
	s.Running = false
	s.Mice = nil
	s.Marker = nil
	s.Score = 0
	s.Level = 1
}

// ClearMarker removes the marker if seq still identifies it. Expiries for
// superseded markers are ignored.
func (s *State) ClearMarker(seq uint64) bool {
	if s.Marker == nil || s.Marker.Seq != seq {
		return false
	}
	s.Marker = nil
	return true
}

// FindMouse returns the index of the mouse with the given id, or -1.
func (s *State) FindMouse(id int) int {
	for i := range s.Mice {
		if s.Mice[i].ID == id {
			return i
		}
	}
	return -1
}

// Progress returns the fraction of the way to the next progress step,
// in [0, 1).
func Progress(p Params, score int) float64 {
	if p.CatchesPerProgress <= 0 {
		return 0
	}
	return float64(score%p.CatchesPerProgress) / float64(p.CatchesPerProgress)
}

// Snapshot is an immutable copy of the state handed to renderers.
type Snapshot struct {
	Running  bool
	Score    int
	Level    int
	Progress float64
	Mice     []Mouse
	Cat      Cat
	Marker   *Marker
	Arena    Arena // Resolved bounds the mice move in
	Version  uint64
}

// Snapshot copies s so it can be read from other goroutines.
func (s *State) Snapshot(p Params, version uint64) *Snapshot {
	snap := &Snapshot{
		Running:  s.Running,
		Score:    s.Score,
		Level:    s.Level,
		Progress: Progress(p, s.Score),
		Mice:     append([]Mouse(nil), s.Mice...),
		Cat:      s.Cat,
		Arena:    s.Arena.Resolve(p),
		Version:  version,
	}
	if s.Marker != nil {
		m := *s.Marker
		snap.Marker = &m
	}
	return snap
}
