package object

import (
	"testing"
	"time"
)

func TestEffectsRemovesExpiredParticles(t *testing.T) {
	var fx Effects
	SpawnBurst(100, 100, 10, 50, 0.2, &fx)
	if fx.Len() != 0 {
		t.Fatalf("spawned objects visible before update: %d", fx.Len())
	}

	fx.Update(time.Millisecond)
	if fx.Len() != 10 {
		t.Fatalf("got %d particles, want 10", fx.Len())
	}

	fx.Update(time.Second)
	if fx.Len() != 0 {
		t.Fatalf("got %d particles after lifetime, want 0", fx.Len())
	}
}

func TestParticleMoves(t *testing.T) {
	p := NewParticle(0, 0, 60, 0, 1)
	defer p.Release()
	p.Drag = 1

	if p.Update(500 * time.Millisecond) {
		t.Fatal("particle removed before its lifetime")
	}
	if p.X != 30 || p.Y != 0 {
		t.Fatalf("got (%v, %v), want (30, 0)", p.X, p.Y)
	}
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"+1", 2},
		{"🐭", 2},
		{"🐭🐀", 4},
		{"+1 ✨", 5},
	}
	for _, tt := range tests {
		if got := DisplayWidth(tt.in); got != tt.want {
			t.Errorf("DisplayWidth(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
