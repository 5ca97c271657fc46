package game

import (
	"math/rand"
	"testing"
)

func newTestEngine() *Engine {
	return NewEngine(DefaultParams(), rand.NewSource(1))
}

func TestBatchSize(t *testing.T) {
	p := DefaultParams()
	tests := []struct {
		level int
		want  int
	}{
		{1, 3},
		{2, 4},
		{3, 4},
		{4, 5},
		{6, 6},
		{10, 8},
		{40, 8},
	}
	for _, tt := range tests {
		if got := p.BatchSize(tt.level); got != tt.want {
			t.Errorf("BatchSize(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestBatchSizeNeverBelowInitial(t *testing.T) {
	p := DefaultParams()
	p.BatchBase = -10
	for _, level := range []int{-5, 0, 1, 7} {
		if got := p.BatchSize(level); got < p.InitialBatch {
			t.Fatalf("BatchSize(%d) = %d, want at least %d", level, got, p.InitialBatch)
		}
	}
	p.BatchLevelDivisor = 0
	if got := p.BatchSize(4); got < p.InitialBatch {
		t.Fatalf("BatchSize with zero divisor = %d, want at least %d", got, p.InitialBatch)
	}
}

func TestInitializeSpawnsOpeningBatch(t *testing.T) {
	e := newTestEngine()
	arena := Arena{Width: 1000, Height: 700}
	mice := e.Initialize(arena)
	if len(mice) != InitialBatch {
		t.Fatalf("Initialize spawned %d mice, want %d", len(mice), InitialBatch)
	}
	seen := make(map[int]bool)
	for _, m := range mice {
		if seen[m.ID] {
			t.Fatalf("duplicate id %d", m.ID)
		}
		seen[m.ID] = true
		if !arena.Contains(m.Position(), MouseSize) {
			t.Fatalf("mouse %d at (%v, %v) outside arena", m.ID, m.X, m.Y)
		}
		if m.VX < -1 || m.VX > 1 || m.VY < -1 || m.VY > 1 {
			t.Fatalf("level 1 velocity (%v, %v) outside [-1, 1]", m.VX, m.VY)
		}
		if m.Symbol == "" {
			t.Fatalf("mouse %d has no symbol", m.ID)
		}
	}
}

func TestUnmeasuredArenaFallsBackToDefault(t *testing.T) {
	e := newTestEngine()
	for _, arena := range []Arena{{}, {Width: 0, Height: 300}, {Width: -5, Height: -5}} {
		for i := 0; i < 200; i++ {
			m := e.NewMouse(3, arena)
			if m.X < 0 || m.X > 760 || m.Y < 0 || m.Y > 560 {
				t.Fatalf("mouse at (%v, %v) outside the 800x600 fallback", m.X, m.Y)
			}
		}
	}
}

func TestVelocityScalesWithLevel(t *testing.T) {
	e := newTestEngine()
	maxSeen := 0.0
	for i := 0; i < 500; i++ {
		m := e.NewMouse(5, Arena{Width: 800, Height: 600})
		for _, v := range []float64{m.VX, m.VY} {
			if v < -5 || v > 5 {
				t.Fatalf("level 5 velocity component %v outside [-5, 5]", v)
			}
			if v > maxSeen {
				maxSeen = v
			}
		}
	}
	if maxSeen <= 1 {
		t.Fatalf("level 5 never exceeded level 1 speed, max component %v", maxSeen)
	}
}

func TestSpawnLevelBatchIDsStayUnique(t *testing.T) {
	e := newTestEngine()
	seen := make(map[int]bool)
	for level := 1; level <= 12; level++ {
		batch := e.SpawnLevelBatch(level, Arena{})
		if len(batch) != e.Params().BatchSize(level) {
			t.Fatalf("level %d batch has %d mice, want %d", level, len(batch), e.Params().BatchSize(level))
		}
		for _, m := range batch {
			if seen[m.ID] {
				t.Fatalf("id %d reused at level %d", m.ID, level)
			}
			seen[m.ID] = true
		}
	}
}

func TestAdvanceKeepsMiceInside(t *testing.T) {
	e := newTestEngine()
	p := e.Params()
	arenas := []Arena{{}, {Width: 320, Height: 200}, {Width: 45, Height: 41}, {Width: 1920, Height: 1080}}
	for _, arena := range arenas {
		mice := e.SpawnLevelBatch(12, arena)
		resolved := arena.Resolve(p)
		for tick := 0; tick < 5000; tick++ {
			Advance(p, mice, arena, 1)
			for _, m := range mice {
				if !resolved.Contains(m.Position(), p.MouseSize) {
					t.Fatalf("arena %+v tick %d: mouse %d escaped to (%v, %v)", arena, tick, m.ID, m.X, m.Y)
				}
			}
		}
	}
}

func TestAdvanceReflectsOffWalls(t *testing.T) {
	p := DefaultParams()
	arena := Arena{Width: 800, Height: 600}
	mice := []Mouse{
		{ID: 1, X: 759, Y: 100, VX: 3, VY: 0.5},
		{ID: 2, X: 1, Y: 2, VX: -2, VY: -4},
		{ID: 3, X: 400, Y: 300, VX: 1, VY: 1},
	}
	Advance(p, mice, arena, 1)

	want := []Mouse{
		{ID: 1, X: 760, Y: 100.5, VX: -3, VY: 0.5},
		{ID: 2, X: 0, Y: 0, VX: 2, VY: 4},
		{ID: 3, X: 401, Y: 301, VX: 1, VY: 1},
	}
	for i := range want {
		got := mice[i]
		if got.X != want[i].X || got.Y != want[i].Y || got.VX != want[i].VX || got.VY != want[i].VY {
			t.Errorf("mouse %d = %+v, want %+v", got.ID, got, want[i])
		}
	}
}

func TestClampMiceAfterShrink(t *testing.T) {
	p := DefaultParams()
	arena := Arena{Width: 200, Height: 150}
	mice := []Mouse{
		{ID: 1, X: 900, Y: 700, VX: 2, VY: -3},
		{ID: 2, X: 500, Y: 20, VX: -2, VY: 1},
		{ID: 3, X: -4, Y: 50, VX: -1, VY: 1},
		{ID: 4, X: 10, Y: 10, VX: 1, VY: 1},
	}
	ClampMice(p, mice, arena)

	want := []Mouse{
		{ID: 1, X: 160, Y: 110, VX: -2, VY: -3},
		{ID: 2, X: 160, Y: 20, VX: -2, VY: 1},
		{ID: 3, X: 0, Y: 50, VX: 1, VY: 1},
		{ID: 4, X: 10, Y: 10, VX: 1, VY: 1},
	}
	for i := range want {
		got := mice[i]
		if got.X != want[i].X || got.Y != want[i].Y || got.VX != want[i].VX || got.VY != want[i].VY {
			t.Errorf("mouse %d = %+v, want %+v", got.ID, got, want[i])
		}
	}
}

func TestAdvanceIgnoresIdleState(t *testing.T) {
	e := newTestEngine()
	s := NewState()
	s.Mice = []Mouse{{ID: 1, X: 10, Y: 10, VX: 1, VY: 1}}
	e.Advance(s, 1)
	if s.Mice[0].X != 10 {
		t.Fatalf("idle state advanced to x=%v", s.Mice[0].X)
	}
}

func TestParamsValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("default params invalid: %v", err)
	}
	p := DefaultParams()
	p.CatchRadius = 0
	if err := p.Validate(); err == nil {
		t.Fatalf("zero catch radius accepted")
	}
	p = DefaultParams()
	p.BatchMax = 2
	if err := p.Validate(); err == nil {
		t.Fatalf("batch max below initial batch accepted")
	}
}
