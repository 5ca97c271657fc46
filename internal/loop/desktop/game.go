// Package desktop runs the game in a native window with a real cursor.
package desktop

import (
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/mousehunt/internal/game"
	"github.com/tomz197/mousehunt/internal/loop/config"
	"github.com/tomz197/mousehunt/internal/loop/server"
)

const (
	hudHeight     = 24
	progressWidth = 120
	catRadius     = 22
)

var (
	backgroundColor = color.RGBA{24, 24, 28, 255}
	hudColor        = color.RGBA{40, 40, 48, 255}
	progressColor   = color.RGBA{233, 162, 59, 255}
	catColor        = color.RGBA{240, 160, 60, 255}
	markerColor     = color.RGBA{250, 220, 90, 255}
	borderColor     = color.White

	// One body color per mouse symbol, in symbol order
	mouseColors = []color.RGBA{
		{200, 200, 210, 255},
		{150, 150, 160, 255},
		{120, 90, 70, 255},
	}
)

// Game implements ebiten.Game on top of a hub session.
type Game struct {
	hub     server.GameServer
	handle  *server.ClientHandle
	session *game.Session
	params  game.Params
	logger  *log.Logger

	width, height int
	bannerUntil   time.Time
	lastScore     int
	lastLevel     int
	hasPlayed     bool
}

// NewGame registers a player with hub and returns the window game.
func NewGame(hub server.GameServer, username string, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.Default()
	}
	handle := hub.RegisterClient(username)
	return &Game{
		hub:     hub,
		handle:  handle,
		session: handle.Session,
		params:  handle.Session.Params(),
		logger:  logger,
	}
}

// Close unregisters the player. Call after ebiten.RunGame returns.
func (g *Game) Close() {
	if snap := g.session.Snapshot(); snap.Running {
		g.hub.RecordScore(g.handle.ID, snap.Score, snap.Level)
	}
	g.hub.UnregisterClient(g.handle.ID)
}

// Update handles input and drains session events.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	snap := g.session.Snapshot()
	switch {
	case !snap.Running && (inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter)):
		if err := g.session.Start(); err != nil {
			return err
		}
	case snap.Running && inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.finish(snap)
	case snap.Running:
		x, y := ebiten.CursorPosition()
		g.session.MovePointer(float64(x), float64(y-hudHeight))
	}

	for {
		select {
		case ev, ok := <-g.session.Events():
			if !ok {
				return ebiten.Termination
			}
			if ev.Type == game.EventLevelUp {
				g.bannerUntil = time.Now().Add(time.Duration(config.LevelBannerSeconds * float64(time.Second)))
			}
		default:
			return nil
		}
	}
}

func (g *Game) finish(snap *game.Snapshot) {
	g.lastScore, g.lastLevel, g.hasPlayed = snap.Score, snap.Level, true
	g.hub.RecordScore(g.handle.ID, snap.Score, snap.Level)
	if err := g.session.Stop(); err != nil {
		g.logger.Debug("stop after session closed", "err", err)
	}
}

// Layout follows the window size; the arena is everything below the HUD.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		if err := g.session.Resize(float64(outsideWidth), float64(outsideHeight-hudHeight)); err != nil {
			g.logger.Debug("resize after session closed", "err", err)
		}
	}
	return outsideWidth, outsideHeight
}

// Draw renders the latest snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	snap := g.session.Snapshot()

	if !snap.Running {
		g.drawMenu(screen)
		return
	}

	top := float32(hudHeight)
	vector.StrokeRect(screen, 0, top, float32(snap.Arena.Width), float32(snap.Arena.Height), 1, borderColor, false)

	size := float32(g.params.MouseSize)
	for _, m := range snap.Mice {
		drawMouse(screen, float32(m.X), float32(m.Y)+top, size, mouseColor(g.params, m.Symbol))
	}
	if snap.Marker != nil {
		ebitenutil.DebugPrintAt(screen, "+1", int(snap.Marker.Pos.X+g.params.MouseSize/2), int(snap.Marker.Pos.Y)+hudHeight-12)
		vector.StrokeCircle(screen, float32(snap.Marker.Pos.X)+size/2, float32(snap.Marker.Pos.Y)+top+size/2, size/2, 2, markerColor, true)
	}
	drawCat(screen, float32(snap.Cat.X+g.params.CatOffsetX), float32(snap.Cat.Y+g.params.CatOffsetY)+top)

	g.drawHUD(screen, snap)
}

func (g *Game) drawHUD(screen *ebiten.Image, snap *game.Snapshot) {
	vector.DrawFilledRect(screen, 0, 0, float32(g.width), hudHeight, hudColor, false)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d   Level: %d", snap.Score, snap.Level), 8, 4)

	x := float32(200)
	vector.StrokeRect(screen, x, 6, progressWidth, 12, 1, borderColor, false)
	if fill := float32(snap.Progress) * (progressWidth - 2); fill > 0 {
		vector.DrawFilledRect(screen, x+1, 7, fill, 10, progressColor, false)
	}
	ebitenutil.DebugPrintAt(screen, "ESC: end game  Q: quit", int(x)+progressWidth+16, 4)

	if time.Now().Before(g.bannerUntil) {
		msg := fmt.Sprintf("NEW LEVEL %d!", snap.Level)
		ebitenutil.DebugPrintAt(screen, msg, g.width/2-len(msg)*3, g.height/2)
	}
}

func (g *Game) drawMenu(screen *ebiten.Image) {
	cx, y := g.width/2, g.height/3
	lines := []string{"MOUSE HUNT", "", "Move the cat with your mouse, catch every mouse.", ""}
	if g.hasPlayed {
		lines = append(lines, fmt.Sprintf("Last game: %d caught, reached level %d", g.lastScore, g.lastLevel), "")
	}
	if top := g.hub.TopScores(); len(top) > 0 {
		lines = append(lines, "Top Cats")
		for i, e := range top {
			lines = append(lines, fmt.Sprintf("%d. %s  %d (level %d)", i+1, e.Username, e.Score, e.Level))
		}
		lines = append(lines, "")
	}
	lines = append(lines, "Press SPACE to start")

	// The debug font is 6x16
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, cx-len(line)*3, y+i*16)
	}
}

// mouseColor picks the body color for a symbol.
func mouseColor(p game.Params, symbol string) color.RGBA {
	for i, s := range p.Symbols {
		if s == symbol {
			return mouseColors[i%len(mouseColors)]
		}
	}
	return mouseColors[0]
}

// drawMouse draws a mouse inside its size-by-size sprite box at (x, y).
func drawMouse(screen *ebiten.Image, x, y, size float32, body color.RGBA) {
	cx, cy := x+size/2, y+size/2
	vector.DrawFilledCircle(screen, cx, cy+size/8, size/3, body, true)
	vector.DrawFilledCircle(screen, cx-size/4, cy-size/5, size/7, body, true)
	vector.DrawFilledCircle(screen, cx+size/4, cy-size/5, size/7, body, true)
	vector.StrokeLine(screen, cx+size/3, cy+size/4, x+size, y+size, 2, body, true)
}

// drawCat draws the cat head centered on the pointer.
func drawCat(screen *ebiten.Image, cx, cy float32) {
	vector.DrawFilledCircle(screen, cx, cy, catRadius, catColor, true)
	for _, side := range []float32{-1, 1} {
		vector.StrokeLine(screen, cx+side*catRadius*0.9, cy-catRadius*0.2, cx+side*catRadius*0.8, cy-catRadius*1.4, 3, catColor, true)
		vector.StrokeLine(screen, cx+side*catRadius*0.8, cy-catRadius*1.4, cx+side*catRadius*0.2, cy-catRadius*0.8, 3, catColor, true)
	}
	vector.DrawFilledCircle(screen, cx-catRadius*0.4, cy-catRadius*0.15, 3, backgroundColor, true)
	vector.DrawFilledCircle(screen, cx+catRadius*0.4, cy-catRadius*0.15, 3, backgroundColor, true)
}
