package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/mousehunt/internal/game"
	"github.com/tomz197/mousehunt/internal/loop/config"
	"github.com/tomz197/mousehunt/internal/object"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// The canvas only emits set cells, so every frame starts from a blank
	// screen. The clear travels in the same flush as the frame.
	c.chunkWriter.WriteString("\033[H\033[2J")
	c.canvas.Clear()

	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight() + config.HUDRows
	centerX := termWidth / 2
	centerY := termHeight / 2

	switch {
	case c.state.GameState == GameStateShutdown:
		c.drawShutdownScreen(centerX, centerY)
	case c.state.isInactive:
		c.drawInactivityScreen(centerX, centerY)
	case c.state.GameState == GameStatePlaying:
		if err := c.drawArena(c.session.Snapshot()); err != nil {
			return err
		}
	default:
		c.drawStartScreen(centerX, centerY)
	}

	return c.chunkWriter.Flush()
}

// drawArena draws the playing field and the HUD above it.
func (c *Client) drawArena(snap *game.Snapshot) error {
	ctx := object.DrawContext{Canvas: c.canvas, Writer: c.chunkWriter}

	c.canvas.DrawFrame()
	if err := c.effects.Draw(ctx); err != nil {
		return err
	}
	if snap.Running {
		if err := (object.CatSprite{Cat: snap.Cat, Params: c.params}).Draw(ctx); err != nil {
			return err
		}
	}
	c.canvas.Render(c.chunkWriter)

	// Glyphs go on top of the canvas
	for _, m := range snap.Mice {
		if err := (object.MouseSprite{Mouse: m, Size: c.params.MouseSize}).Draw(ctx); err != nil {
			return err
		}
	}
	if snap.Marker != nil {
		if err := (object.MarkerSprite{Marker: *snap.Marker, Size: c.params.MouseSize}).Draw(ctx); err != nil {
			return err
		}
	}

	c.drawPlayingHUD(c.canvas.TerminalWidth(), snap)
	return nil
}

// drawPlayingHUD draws the score line and the level banner row.
func (c *Client) drawPlayingHUD(termWidth int, snap *game.Snapshot) {
	cw := c.chunkWriter

	status := fmt.Sprintf("Score: %-6d Level: %-3d %s", snap.Score, snap.Level,
		ProgressBar(snap.Progress, config.ProgressWidth))
	cw.WriteAt(2, 1, status)

	players := fmt.Sprintf("Players: %d", c.server.Players())
	cw.WriteAt(termWidth-len(players)-1, 1, players)

	if c.state.levelBanner > 0 {
		object.Centered(termWidth/2, 2, fmt.Sprintf("NEW LEVEL %d!", snap.Level)).Draw(object.DrawContext{Writer: cw})
	} else {
		cw.WriteAt(2, 2, "X/Esc: end game   Q: quit")
	}
}

// ProgressBar renders fraction (0..1) as a fixed-width bar.
func ProgressBar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(fraction * float64(width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	cw := c.chunkWriter
	title := "INACTIVITY WARNING"
	cw.WriteAt(centerX-len(title)/2, centerY-2, title)

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	cw.WriteAt(centerX-len(msg)/2, centerY, msg)

	hint := "Press any key to continue"
	cw.WriteAt(centerX-len(hint)/2, centerY+2, hint)
}

// drawStartScreen draws the title screen with the last result and the leaderboard.
func (c *Client) drawStartScreen(centerX, centerY int) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		`  __  __  ___  _   _ ___ ___   _  _ _   _ _  _ _____ `,
		` |  \/  |/ _ \| | | / __| __| | || | | | | \| |_   _|`,
		` | |\/| | (_) | |_| \__ \ _|  | __ | |_| | .' | | |  `,
		` |_|  |_|\___/ \___/|___/___| |_||_|\___/|_|\_| |_|  `,
	}

	titleWidth := 0
	for _, line := range titleArt {
		if len(line) > titleWidth {
			titleWidth = len(line)
		}
	}

	cw := c.chunkWriter
	y := centerY - 9
	for i, line := range titleArt {
		cw.WriteAt(centerX-titleWidth/2, y+i, line)
	}
	y += len(titleArt) + 1

	subtitle := "~ Move the cat with your mouse, catch every mouse ~"
	cw.WriteAt(centerX-len(subtitle)/2, y, subtitle)
	y += 2

	if c.state.HasPlayed {
		result := fmt.Sprintf("Last game: %d caught, reached level %d", c.state.LastScore, c.state.LastLevel)
		cw.WriteAt(centerX-len(result)/2, y, result)
		y += 2
	}

	if top := c.server.TopScores(); len(top) > 0 {
		header := "Top Cats"
		cw.WriteAt(centerX-len(header)/2, y, header)
		y++
		for i, e := range top {
			line := fmt.Sprintf("%d. %-16s %5d  (level %d)", i+1, e.Username, e.Score, e.Level)
			cw.WriteAt(centerX-len(line)/2, y, line)
			y++
		}
		y++
	}

	controlLines := []string{
		"Mouse  . . . .  Move cat",
		"Arrows / WASD   Nudge cat",
		"X / Esc  . . .  End game",
		"Q  . . . . . . . .  Quit",
	}
	for i, line := range controlLines {
		cw.WriteAt(centerX-len(line)/2, y+i, line)
	}
	y += len(controlLines) + 1

	// Blinking start prompt
	if time.Now().UnixMilli()/600%2 == 0 {
		prompt := ">>  Press SPACE to Start  <<"
		cw.WriteAt(centerX-len(prompt)/2, y, prompt)
	}
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	cw := c.chunkWriter
	title := "SERVER SHUTTING DOWN"
	cw.WriteAt(centerX-len(title)/2, centerY-3, title)

	msg1 := "The server is restarting for maintenance."
	cw.WriteAt(centerX-len(msg1)/2, centerY-1, msg1)

	msg2 := "Please reconnect in a moment."
	cw.WriteAt(centerX-len(msg2)/2, centerY, msg2)

	remaining := int(c.state.shutdownTimer) + 1
	countdown := fmt.Sprintf("Disconnecting in %d seconds...", remaining)
	cw.WriteAt(centerX-len(countdown)/2, centerY+2, countdown)

	hint := "Press Q to disconnect now"
	cw.WriteAt(centerX-len(hint)/2, centerY+4, hint)
}
