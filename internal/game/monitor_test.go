package game

import (
	"testing"
	"time"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// runningState starts a game and replaces the opening batch with fixed mice.
func runningState(e *Engine, mice ...Mouse) *State {
	s := NewState()
	s.Arena = Arena{Width: 800, Height: 600}
	e.Start(s)
	if len(mice) > 0 {
		s.Mice = mice
	}
	return s
}

func TestStartResetsSession(t *testing.T) {
	e := newTestEngine()
	s := NewState()
	s.Score = 12
	s.Level = 4
	s.Cat = Cat{X: 5, Y: 5}
	e.Start(s)
	if !s.Running || s.Score != 0 || s.Level != 1 || len(s.Mice) != 3 {
		t.Fatalf("after Start: running=%v score=%d level=%d mice=%d, want true/0/1/3",
			s.Running, s.Score, s.Level, len(s.Mice))
	}
	// Unmeasured arena falls back to 800x600, cat offset is 30
	if s.Cat != (Cat{X: 370, Y: 270}) {
		t.Fatalf("after Start: cat = %+v, want it recentred at {370 270}", s.Cat)
	}
}

func TestCatchIsIdempotent(t *testing.T) {
	e := newTestEngine()
	s := runningState(e,
		Mouse{ID: 101, X: 10, Y: 10},
		Mouse{ID: 102, X: 500, Y: 500},
	)

	if _, ok := e.Catch(s, 101, testNow); !ok {
		t.Fatalf("first catch of 101 rejected")
	}
	if _, ok := e.Catch(s, 101, testNow); ok {
		t.Fatalf("second catch of 101 accepted")
	}
	if s.Score != 1 || len(s.Mice) != 1 {
		t.Fatalf("score=%d mice=%d, want 1/1", s.Score, len(s.Mice))
	}
	if _, ok := e.Catch(s, 999, testNow); ok {
		t.Fatalf("catch of unknown id accepted")
	}
}

func TestCatchSetsMarker(t *testing.T) {
	e := newTestEngine()
	s := runningState(e, Mouse{ID: 7, X: 120, Y: 80}, Mouse{ID: 8, X: 600, Y: 400})

	res, ok := e.Catch(s, 7, testNow)
	if !ok {
		t.Fatalf("catch rejected")
	}
	if s.Marker == nil {
		t.Fatalf("no marker after catch")
	}
	if s.Marker.Pos != (Point{X: 120, Y: 80}) {
		t.Fatalf("marker at %+v, want (120, 80)", s.Marker.Pos)
	}
	if want := testNow.Add(MarkerLifetime); !s.Marker.ExpiresAt.Equal(want) {
		t.Fatalf("marker expires %v, want %v", s.Marker.ExpiresAt, want)
	}
	if res.Marker.Seq != s.Marker.Seq {
		t.Fatalf("result marker seq %d, state marker seq %d", res.Marker.Seq, s.Marker.Seq)
	}
}

func TestStaleMarkerExpiryIsIgnored(t *testing.T) {
	e := newTestEngine()
	s := runningState(e, Mouse{ID: 1}, Mouse{ID: 2}, Mouse{ID: 3, X: 700, Y: 500})

	first, _ := e.Catch(s, 1, testNow)
	second, _ := e.Catch(s, 2, testNow.Add(100*time.Millisecond))

	if s.ClearMarker(first.Marker.Seq) {
		t.Fatalf("expiry of superseded marker cleared the current one")
	}
	if s.Marker == nil {
		t.Fatalf("current marker lost")
	}
	if !s.ClearMarker(second.Marker.Seq) {
		t.Fatalf("expiry of current marker ignored")
	}
	if s.ClearMarker(second.Marker.Seq) {
		t.Fatalf("second expiry of the same marker reported a change")
	}
}

func TestCheckCollisionsScoresSimultaneousCatches(t *testing.T) {
	e := newTestEngine()
	s := runningState(e,
		Mouse{ID: 1, X: 100, Y: 100},
		Mouse{ID: 2, X: 130, Y: 100},
		Mouse{ID: 3, X: 600, Y: 400},
	)
	s.Cat = Cat{X: 110, Y: 110}

	results := e.CheckCollisions(s, testNow)
	if len(results) != 2 {
		t.Fatalf("caught %d mice, want 2", len(results))
	}
	if s.Score != 2 {
		t.Fatalf("score = %d, want 2", s.Score)
	}
	if s.Level != 1 || len(s.Mice) != 1 || s.Mice[0].ID != 3 {
		t.Fatalf("level=%d mice=%+v, want level 1 with mouse 3 left", s.Level, s.Mice)
	}
}

func TestCatchRadiusIsStrict(t *testing.T) {
	e := newTestEngine()
	s := runningState(e, Mouse{ID: 1, X: 150, Y: 100}, Mouse{ID: 2, X: 600, Y: 400})
	s.Cat = Cat{X: 100, Y: 100}

	if got := e.CheckCollisions(s, testNow); len(got) != 0 {
		t.Fatalf("mouse exactly at the catch radius was caught")
	}
	s.Cat.X = 100.5
	if got := e.CheckCollisions(s, testNow); len(got) != 1 {
		t.Fatalf("mouse inside the catch radius was not caught")
	}
}

func TestClearingAllMiceAdvancesLevelOnce(t *testing.T) {
	e := newTestEngine()
	s := runningState(e,
		Mouse{ID: 1, X: 100, Y: 100},
		Mouse{ID: 2, X: 110, Y: 100},
		Mouse{ID: 3, X: 100, Y: 110},
	)
	s.Cat = Cat{X: 105, Y: 105}

	results := e.CheckCollisions(s, testNow)
	if len(results) != 3 {
		t.Fatalf("caught %d mice, want 3", len(results))
	}
	levelUps := 0
	for _, r := range results {
		if r.LevelUp {
			levelUps++
		}
	}
	if levelUps != 1 || !results[2].LevelUp {
		t.Fatalf("level-ups = %d (last flagged %v), want exactly one on the last catch", levelUps, results[2].LevelUp)
	}
	if s.Level != 2 || s.Score != 3 {
		t.Fatalf("level=%d score=%d, want 2/3", s.Level, s.Score)
	}
	if len(s.Mice) != 4 {
		t.Fatalf("level 2 batch has %d mice, want 4", len(s.Mice))
	}
}

func TestCatchingOneAtATime(t *testing.T) {
	e := newTestEngine()
	s := NewState()
	e.Start(s)

	if s.Score != 0 || s.Level != 1 || len(s.Mice) != 3 {
		t.Fatalf("start: score=%d level=%d mice=%d, want 0/1/3", s.Score, s.Level, len(s.Mice))
	}

	ids := []int{s.Mice[0].ID, s.Mice[1].ID, s.Mice[2].ID}
	for i, id := range ids {
		res, ok := e.Catch(s, id, testNow)
		if !ok {
			t.Fatalf("catch %d rejected", i+1)
		}
		if i < 2 && (res.LevelUp || s.Level != 1) {
			t.Fatalf("level advanced after catch %d", i+1)
		}
	}

	if s.Level != 2 || s.Score != 3 || len(s.Mice) != 4 {
		t.Fatalf("after 3 catches: level=%d score=%d mice=%d, want 2/3/4", s.Level, s.Score, len(s.Mice))
	}
	for _, m := range s.Mice {
		for _, old := range ids {
			if m.ID == old {
				t.Fatalf("new batch reused id %d", old)
			}
		}
	}
}

func TestScoreAndLevelNeverDecrease(t *testing.T) {
	e := newTestEngine()
	s := NewState()
	e.Start(s)
	score, level := s.Score, s.Level
	for tick := 0; tick < 3000; tick++ {
		e.Advance(s, 1)
		if tick%3 == 0 && len(s.Mice) > 0 {
			m := s.Mice[tick%len(s.Mice)]
			s.Cat = Cat{X: m.X + 10, Y: m.Y}
			e.CheckCollisions(s, testNow)
		}
		if s.Score < score || s.Level < level {
			t.Fatalf("tick %d: score %d->%d level %d->%d", tick, score, s.Score, level, s.Level)
		}
		if len(s.Mice) == 0 {
			t.Fatalf("tick %d: running state left without mice", tick)
		}
		score, level = s.Score, s.Level
	}
	if level < 3 {
		t.Fatalf("expected several level-ups, reached level %d", level)
	}
}

func TestCheckCollisionsWhenIdle(t *testing.T) {
	e := newTestEngine()
	s := NewState()
	s.Mice = []Mouse{{ID: 1, X: 0, Y: 0}}
	if got := e.CheckCollisions(s, testNow); got != nil {
		t.Fatalf("idle collision pass caught %d mice", len(got))
	}
	if _, ok := e.Catch(s, 1, testNow); ok {
		t.Fatalf("idle catch accepted")
	}
}

func TestProgress(t *testing.T) {
	p := DefaultParams()
	tests := []struct {
		score int
		want  float64
	}{
		{0, 0},
		{1, 0.2},
		{4, 0.8},
		{5, 0},
		{12, 0.4},
	}
	for _, tt := range tests {
		if got := Progress(p, tt.score); got != tt.want {
			t.Errorf("Progress(%d) = %v, want %v", tt.score, got, tt.want)
		}
	}
}
