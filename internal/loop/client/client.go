// Package client renders one player's game on a terminal and feeds it
// keyboard and mouse input.
package client

import (
	"bufio"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/mousehunt/internal/draw"
	"github.com/tomz197/mousehunt/internal/game"
	"github.com/tomz197/mousehunt/internal/input"
	"github.com/tomz197/mousehunt/internal/loop/config"
	"github.com/tomz197/mousehunt/internal/loop/server"
	"github.com/tomz197/mousehunt/internal/object"
	"github.com/tomz197/mousehunt/internal/physics"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	session      *game.Session
	params       game.Params
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates a whole frame for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	effects      object.Effects
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Logger       *log.Logger
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	username := opts.Username
	if len(username) > config.MaxUsernameLength {
		username = username[:config.MaxUsernameLength]
	}
	handle := gs.RegisterClient(username)
	params := handle.Session.Params()

	canvas := draw.NewScaledCanvas(1, 1, params.DefaultWidth, params.DefaultHeight)
	canvas.SetOffsetRow(config.HUDRows)

	return &Client{
		server:       gs,
		handle:       handle,
		session:      handle.Session,
		params:       params,
		state:        NewClientState(),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w),
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		logger:       logger,
	}
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	draw.EnableMouse(c.writer)
	defer func() {
		draw.DisableMouse(c.writer)
		draw.ShowCursor(c.writer)
	}()
	draw.ClearScreen(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		// Handle screen resize before input so pointer conversion uses the current scale
		c.updateScreen()

		c.processInput()
		c.processServerEvents()
		c.processGameEvents()

		switch c.state.GameState {
		case GameStatePlaying:
			c.updatePlayingState()
		case GameStateShutdown:
			c.updateShutdownState()
		}

		if err := c.drawFrame(); err != nil {
			c.server.UnregisterClient(c.handle.ID)
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	if c.state.GameState == GameStatePlaying {
		c.finishGame()
	}
	c.server.UnregisterClient(c.handle.ID)

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads input and forwards it to the session.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)
	in := c.state.Input

	if in.Active() {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if in.Quit {
		c.state.Running = false
		return
	}

	switch c.state.GameState {
	case GameStateStart:
		if in.Start {
			c.startGame()
		}
	case GameStatePlaying:
		if in.Stop || in.Escape {
			c.finishGame()
			return
		}
		c.movePointer(in)
	}
}

// movePointer applies mouse reports and arrow nudges to the cat.
func (c *Client) movePointer(in input.Input) {
	moved := false
	if in.Pointer != nil {
		c.state.Pointer = PointerToArena(c.canvas, *in.Pointer, c.state.Arena.Resolve(c.params))
		moved = true
	}
	if in.DX != 0 || in.DY != 0 {
		c.state.Pointer = NudgePointer(c.state.Pointer, in.DX, in.DY, c.state.Arena.Resolve(c.params))
		moved = true
	}
	if moved {
		c.session.MovePointer(c.state.Pointer.X, c.state.Pointer.Y)
	}
}

// processServerEvents handles events from the hub.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			if event.Type == server.EventServerShutdown && c.state.GameState != GameStateShutdown {
				if c.state.GameState == GameStatePlaying {
					c.finishGame()
				}
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// processGameEvents turns session events into client-side effects.
func (c *Client) processGameEvents() {
	for {
		select {
		case ev, ok := <-c.session.Events():
			if !ok {
				c.state.Running = false
				return
			}
			switch ev.Type {
			case game.EventCatch:
				size := c.params.MouseSize
				object.SpawnBurst(ev.Pos.X+size/2, ev.Pos.Y+size/2,
					config.BurstParticles, config.BurstSpeed, config.BurstLifetime, &c.effects)
			case game.EventLevelUp:
				c.state.levelBanner = config.LevelBannerSeconds
			}
		default:
			return
		}
	}
}

// updateScreen measures the terminal and pushes arena changes to the session.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(c.termSizeFunc)
	if err != nil {
		return
	}
	rows := termHeight - config.HUDRows
	if rows < 1 {
		rows = 1
	}
	c.canvas.Resize(termWidth, rows)

	arena := MeasureArena(termWidth, rows)
	if arena == c.state.Arena {
		return
	}
	c.state.Arena = arena
	c.canvas.SetLogicalSize(arena.Width, arena.Height)
	if err := c.session.Resize(arena.Width, arena.Height); err != nil {
		c.logger.Debug("resize after session closed", "err", err)
	}
}

// updatePlayingState advances client-side timers and effects.
func (c *Client) updatePlayingState() {
	c.effects.Update(c.state.delta)
	if c.state.levelBanner > 0 {
		c.state.levelBanner -= c.state.delta.Seconds()
	}
}

// startGame starts or restarts the game.
func (c *Client) startGame() {
	input.ResetKeyInput(c.inputStream)
	c.effects.Reset()
	c.state.levelBanner = 0

	arena := c.state.Arena.Resolve(c.params)
	c.state.Pointer = game.Point{X: arena.Width / 2, Y: arena.Height / 2}

	if err := c.session.Start(); err != nil {
		c.logger.Debug("start after session closed", "err", err)
		c.state.Running = false
		return
	}
	c.session.MovePointer(c.state.Pointer.X, c.state.Pointer.Y)
	c.state.GameState = GameStatePlaying
}

// finishGame stops the session and submits the result to the leaderboard.
func (c *Client) finishGame() {
	snap := c.session.Snapshot()
	c.state.LastScore = snap.Score
	c.state.LastLevel = snap.Level
	c.state.HasPlayed = true
	c.server.RecordScore(c.handle.ID, snap.Score, snap.Level)

	if err := c.session.Stop(); err != nil {
		c.logger.Debug("stop after session closed", "err", err)
	}
	c.effects.Reset()
	c.state.GameState = GameStateStart
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}

// MeasureArena converts the terminal cells available to the arena into
// arena units.
func MeasureArena(cols, rows int) game.Arena {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return game.Arena{
		Width:  float64(cols * config.CellWidth),
		Height: float64(rows * config.CellHeight),
	}
}

// PointerToArena converts a terminal mouse report into arena coordinates
// clamped to the arena.
func PointerToArena(canvas *draw.Canvas, p input.Pointer, arena game.Arena) game.Point {
	x, y := canvas.TerminalToLogical(p.Col, p.Row)
	return game.Point{
		X: physics.Clamp(x, 0, arena.Width),
		Y: physics.Clamp(y, 0, arena.Height),
	}
}

// NudgePointer moves the pointer by whole arrow-key steps, clamped to the arena.
func NudgePointer(p game.Point, dx, dy int, arena game.Arena) game.Point {
	return game.Point{
		X: physics.Clamp(p.X+float64(dx)*config.PointerStep, 0, arena.Width),
		Y: physics.Clamp(p.Y+float64(dy)*config.PointerStep, 0, arena.Height),
	}
}
