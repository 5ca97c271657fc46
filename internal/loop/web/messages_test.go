package web

import (
	"encoding/json"
	"testing"

	"github.com/tomz197/mousehunt/internal/game"
	"github.com/tomz197/mousehunt/internal/loop/server"
)

func TestNewStateMessage(t *testing.T) {
	p := game.DefaultParams()
	snap := &game.Snapshot{
		Running:  true,
		Score:    7,
		Level:    2,
		Progress: 0.4,
		Mice:     []game.Mouse{{ID: 3, X: 10, Y: 20, Symbol: "🐭"}},
		Cat:      game.Cat{X: 100, Y: 50},
		Marker:   &game.Marker{Pos: game.Point{X: 5, Y: 6}},
		Arena:    game.Arena{Width: 640, Height: 480},
		Version:  9,
	}

	msg := NewStateMessage(snap, p)
	if msg.Type != MsgState || msg.Version != 9 || msg.Score != 7 || msg.Level != 2 {
		t.Fatalf("header fields wrong: %+v", msg)
	}
	// The browser draws the cat at the pointer, not at its top-left corner
	if msg.Cat.X != 100+p.CatOffsetX || msg.Cat.Y != 50+p.CatOffsetY {
		t.Fatalf("got cat %+v, want pointer position", msg.Cat)
	}
	if msg.Marker == nil || msg.Marker.X != 5 {
		t.Fatalf("got marker %+v, want (5, 6)", msg.Marker)
	}
	if len(msg.Mice) != 1 || msg.Mice[0].Symbol != "🐭" {
		t.Fatalf("got mice %+v", msg.Mice)
	}
}

func TestStateMessageOmitsMissingMarker(t *testing.T) {
	msg := NewStateMessage(&game.Snapshot{Level: 1}, game.DefaultParams())
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := raw["marker"]; ok {
		t.Fatal("marker present without a catch")
	}
	if mice, ok := raw["mice"].([]any); !ok || len(mice) != 0 {
		t.Fatalf("got mice %v, want empty array", raw["mice"])
	}
}

func TestNewEventMessage(t *testing.T) {
	msg := NewEventMessage(game.Event{Type: game.EventLevelUp, Score: 3, Level: 2})
	if msg.Type != MsgEvent || msg.Event != "level_up" || msg.Level != 2 {
		t.Fatalf("got %+v", msg)
	}
}

func TestNewLeaderboardMessage(t *testing.T) {
	b := server.NewLeaderboard(5)
	b.Add("a", 4, 1)
	b.Add("b", 9, 3)

	msg := NewLeaderboardMessage(b.Top())
	if len(msg.Entries) != 2 || msg.Entries[0].Username != "b" || msg.Entries[0].Score != 9 {
		t.Fatalf("got %+v", msg.Entries)
	}
}
