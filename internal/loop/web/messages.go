package web

import (
	"github.com/tomz197/mousehunt/internal/game"
	"github.com/tomz197/mousehunt/internal/loop/server"
)

// Inbound message types.
const (
	MsgPointer = "pointer"
	MsgStart   = "start"
	MsgStop    = "stop"
	MsgResize  = "resize"
)

// Outbound message types.
const (
	MsgState       = "state"
	MsgEvent       = "event"
	MsgLeaderboard = "leaderboard"
	MsgShutdown    = "shutdown"
)

// ClientMessage is anything the browser sends.
type ClientMessage struct {
	Type   string  `json:"type"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// MouseView is one mouse as the browser draws it.
type MouseView struct {
	ID     int     `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Symbol string  `json:"symbol"`
}

// PointView is a plain coordinate pair.
type PointView struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// StateMessage carries one published snapshot.
type StateMessage struct {
	Type      string      `json:"type"`
	Version   uint64      `json:"version"`
	Running   bool        `json:"running"`
	Score     int         `json:"score"`
	Level     int         `json:"level"`
	Progress  float64     `json:"progress"`
	Mice      []MouseView `json:"mice"`
	Cat       PointView   `json:"cat"`
	Marker    *PointView  `json:"marker,omitempty"`
	Width     float64     `json:"width"`
	Height    float64     `json:"height"`
	MouseSize float64     `json:"mouseSize"`
}

// EventMessage carries one session event.
type EventMessage struct {
	Type  string  `json:"type"`
	Event string  `json:"event"`
	Score int     `json:"score"`
	Level int     `json:"level"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
}

// LeaderboardEntry is one row of the shared leaderboard.
type LeaderboardEntry struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
	Level    int    `json:"level"`
}

// LeaderboardMessage carries the top scores.
type LeaderboardMessage struct {
	Type    string             `json:"type"`
	Entries []LeaderboardEntry `json:"entries"`
}

// ShutdownMessage tells the browser the server is going away.
type ShutdownMessage struct {
	Type string `json:"type"`
}

// NewStateMessage converts a snapshot for the wire.
func NewStateMessage(snap *game.Snapshot, p game.Params) StateMessage {
	msg := StateMessage{
		Type:      MsgState,
		Version:   snap.Version,
		Running:   snap.Running,
		Score:     snap.Score,
		Level:     snap.Level,
		Progress:  snap.Progress,
		Mice:      make([]MouseView, 0, len(snap.Mice)),
		Cat:       PointView{X: snap.Cat.X + p.CatOffsetX, Y: snap.Cat.Y + p.CatOffsetY},
		Width:     snap.Arena.Width,
		Height:    snap.Arena.Height,
		MouseSize: p.MouseSize,
	}
	for _, m := range snap.Mice {
		msg.Mice = append(msg.Mice, MouseView{ID: m.ID, X: m.X, Y: m.Y, Symbol: m.Symbol})
	}
	if snap.Marker != nil {
		msg.Marker = &PointView{X: snap.Marker.Pos.X, Y: snap.Marker.Pos.Y}
	}
	return msg
}

// NewEventMessage converts a session event for the wire.
func NewEventMessage(ev game.Event) EventMessage {
	return EventMessage{
		Type:  MsgEvent,
		Event: ev.Type.String(),
		Score: ev.Score,
		Level: ev.Level,
		X:     ev.Pos.X,
		Y:     ev.Pos.Y,
	}
}

// NewLeaderboardMessage converts the hub leaderboard for the wire.
func NewLeaderboardMessage(top []server.TopScoreEntry) LeaderboardMessage {
	msg := LeaderboardMessage{Type: MsgLeaderboard, Entries: make([]LeaderboardEntry, 0, len(top))}
	for _, e := range top {
		msg.Entries = append(msg.Entries, LeaderboardEntry{Username: e.Username, Score: e.Score, Level: e.Level})
	}
	return msg
}
