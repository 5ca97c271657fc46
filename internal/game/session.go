package game

import (
	"context"
	"errors"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// ErrSessionClosed is returned for commands sent after Run has returned.
var ErrSessionClosed = errors.New("session closed")

// Session owns one game State and drives it from a single goroutine:
// a motion ticker, a slower collision ticker and the marker expiry timer
// are all selected in Run, so the state needs no locking. Tickers only
// exist while a game is running.
type Session struct {
	engine *Engine
	params Params
	logger *log.Logger
	now    func() time.Time

	inbox    chan command
	pointer  atomic.Pointer[Point]
	snapshot atomic.Pointer[Snapshot]
	updates  chan *Snapshot
	events   chan Event
	done     chan struct{}
	started  atomic.Bool
}

// SessionOptions configures a session. All fields are optional.
type SessionOptions struct {
	Logger *log.Logger
	Source rand.Source      // Random source for spawns; seeded from the clock if nil
	Clock  func() time.Time // Used for marker expiry stamps
}

type commandKind int

const (
	cmdStart commandKind = iota
	cmdStop
	cmdResize
)

type command struct {
	kind  commandKind
	arena Arena
}

// NewSession creates an idle session. Call Run to bring it to life.
func NewSession(p Params, opts SessionOptions) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	s := &Session{
		engine:  NewEngine(p, opts.Source),
		params:  p,
		logger:  logger,
		now:     clock,
		inbox:   make(chan command, 16),
		updates: make(chan *Snapshot, 1),
		events:  make(chan Event, 32),
		done:    make(chan struct{}),
	}
	s.snapshot.Store(NewState().Snapshot(p, 0))
	return s
}

// Params returns the session tuning.
func (s *Session) Params() Params {
	return s.params
}

// Start begins a new game, discarding any game in progress.
func (s *Session) Start() error {
	// Cleared here, not in the loop, so a MovePointer right after Start wins.
	s.pointer.Store(nil)
	return s.send(command{kind: cmdStart})
}

// Stop ends the current game. Stopping an idle session is a no-op.
func (s *Session) Stop() error {
	return s.send(command{kind: cmdStop})
}

// Resize reports the measured arena size. Non-positive sizes fall back to
// the default bounds.
func (s *Session) Resize(width, height float64) error {
	return s.send(command{kind: cmdResize, arena: Arena{Width: width, Height: height}})
}

// MovePointer records the latest pointer position in arena coordinates.
// Only the most recent position is kept; it is applied on the next tick.
func (s *Session) MovePointer(x, y float64) {
	s.pointer.Store(&Point{X: x, Y: y})
}

// Snapshot returns the most recently published state.
func (s *Session) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// Updates delivers published snapshots. The channel holds only the latest
// one; slow readers skip intermediate states. Closed when Run returns.
func (s *Session) Updates() <-chan *Snapshot {
	return s.updates
}

// Events delivers catch, level and lifecycle events. Events are dropped
// if the reader falls behind. Closed when Run returns.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Done is closed when Run returns.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) send(c command) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}
	select {
	case s.inbox <- c:
		return nil
	case <-s.done:
		return ErrSessionClosed
	}
}

// loop holds the goroutine-confined part of a running session.
type loop struct {
	state   *State
	version uint64

	motion      *time.Ticker
	collision   *time.Ticker
	markerTimer *time.Timer
	markerSeq   uint64
}

func (l *loop) motionC() <-chan time.Time {
	if l.motion == nil {
		return nil
	}
	return l.motion.C
}

func (l *loop) collisionC() <-chan time.Time {
	if l.collision == nil {
		return nil
	}
	return l.collision.C
}

func (l *loop) markerC() <-chan time.Time {
	if l.markerTimer == nil {
		return nil
	}
	return l.markerTimer.C
}

func (l *loop) stopTimers() {
	if l.motion != nil {
		l.motion.Stop()
		l.motion = nil
	}
	if l.collision != nil {
		l.collision.Stop()
		l.collision = nil
	}
	if l.markerTimer != nil {
		l.markerTimer.Stop()
		l.markerTimer = nil
	}
}

// Run drives the session until ctx is cancelled. It must be called once.
func (s *Session) Run(ctx context.Context) {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	l := &loop{state: NewState()}
	defer func() {
		l.stopTimers()
		close(s.done)
		close(s.updates)
		close(s.events)
	}()

	for {
		select {
		case <-ctx.Done():
			if l.state.Running {
				s.logger.Debug("session cancelled mid-game", "score", l.state.Score, "level", l.state.Level)
			}
			return

		case c := <-s.inbox:
			s.handle(l, c)

		case <-l.motionC():
			s.applyPointer(l.state)
			s.engine.Advance(l.state, 1)
			s.publish(l)

		case <-l.collisionC():
			s.applyPointer(l.state)
			s.collide(l)

		case <-l.markerC():
			l.markerTimer = nil
			if l.state.ClearMarker(l.markerSeq) {
				s.publish(l)
			}
		}
	}
}

func (s *Session) handle(l *loop, c command) {
	switch c.kind {
	case cmdStart:
		l.stopTimers()
		s.engine.Start(l.state)
		l.motion = time.NewTicker(s.params.MotionTick)
		l.collision = time.NewTicker(s.params.CollisionInterval)
		s.logger.Info("game started", "mice", len(l.state.Mice), "arena", l.state.Arena.Resolve(s.params))
		s.emit(Event{Type: EventStarted, Score: l.state.Score, Level: l.state.Level})

	case cmdStop:
		if !l.state.Running {
			return
		}
		l.stopTimers()
		score, level := l.state.Score, l.state.Level
		l.state.Stop()
		s.logger.Info("game stopped", "score", score, "level", level)
		s.emit(Event{Type: EventStopped, Score: score, Level: level})

	case cmdResize:
		if l.state.Arena == c.arena {
			return
		}
		l.state.Arena = c.arena
		if l.state.Running {
			ClampMice(s.params, l.state.Mice, l.state.Arena)
		}
		s.logger.Debug("arena resized", "width", c.arena.Width, "height", c.arena.Height)
	}
	s.publish(l)
}

// collide runs one collision pass and rearms the marker timer on catches.
func (s *Session) collide(l *loop) {
	results := s.engine.CheckCollisions(l.state, s.now())
	if len(results) == 0 {
		return
	}
	for _, res := range results {
		s.emit(Event{
			Type:  EventCatch,
			Score: res.Score,
			Level: res.Level,
			Mouse: res.Mouse,
			Pos:   res.Marker.Pos,
		})
		if res.LevelUp {
			s.logger.Debug("level up", "level", res.Level, "mice", len(l.state.Mice))
			s.emit(Event{Type: EventLevelUp, Score: res.Score, Level: res.Level})
		}
	}

	// The newest marker replaces any pending one; its expiry supersedes the old timer.
	if l.markerTimer != nil {
		l.markerTimer.Stop()
	}
	l.markerSeq = results[len(results)-1].Marker.Seq
	l.markerTimer = time.NewTimer(s.params.MarkerLifetime)
	s.publish(l)
}

func (s *Session) applyPointer(st *State) {
	if p := s.pointer.Swap(nil); p != nil && st.Running {
		st.Cat = CatAt(s.params, p.X, p.Y)
	}
}

func (s *Session) publish(l *loop) {
	l.version++
	snap := l.state.Snapshot(s.params, l.version)
	s.snapshot.Store(snap)

	// Single writer: drain the stale value, then the send cannot block.
	select {
	case s.updates <- snap:
	default:
		select {
		case <-s.updates:
		default:
		}
		select {
		case s.updates <- snap:
		default:
		}
	}
}

func (s *Session) emit(ev Event) {
	select {
	case s.events <- ev:
	default:
		// Reader fell behind, drop event
	}
}
