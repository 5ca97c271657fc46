// Package web serves the game to browsers: an HTML5 canvas page and a
// websocket that streams snapshots out and pointer moves in.
package web

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/tomz197/mousehunt/internal/game"
	"github.com/tomz197/mousehunt/internal/loop/config"
	"github.com/tomz197/mousehunt/internal/loop/server"
)

//go:embed static/index.html
var indexPage string

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	maxMessage = 1024
)

// Handler serves the page at "/" and the game socket at "/ws".
type Handler struct {
	hub      *server.Server
	logger   *log.Logger
	upgrader websocket.Upgrader
	mux      *http.ServeMux
	sshHost  string
}

// Options configures the handler.
type Options struct {
	Logger  *log.Logger
	SSHHost string // Shown on the page as the terminal alternative; empty hides it
}

// NewHandler creates a handler whose players register with hub.
func NewHandler(hub *server.Server, opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	h := &Handler{
		hub:      hub,
		logger:   logger,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		mux:      http.NewServeMux(),
		sshHost:  opts.SSHHost,
	}
	h.mux.HandleFunc("/", h.servePage)
	h.mux.HandleFunc("/ws", h.serveWS)
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) servePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := strings.ReplaceAll(indexPage, "{{.SSHHost}}", h.sshHost)
	_, _ = w.Write([]byte(page))
}

func (h *Handler) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade error", "err", err)
		return
	}

	name := r.URL.Query().Get("name")
	if len(name) > config.MaxUsernameLength {
		name = name[:config.MaxUsernameLength]
	}
	handle := h.hub.RegisterClient(name)
	logger := h.logger.With("client", handle.ID, "remote", r.RemoteAddr)
	logger.Info("browser connected")

	p := &player{
		conn:    conn,
		hub:     h.hub,
		handle:  handle,
		session: handle.Session,
		params:  handle.Session.Params(),
		logger:  logger,
	}
	p.run()
	logger.Info("browser disconnected")
}

// player is one websocket connection. Only run's goroutine writes to conn.
type player struct {
	conn    *websocket.Conn
	hub     *server.Server
	handle  *server.ClientHandle
	session *game.Session
	params  game.Params
	logger  *log.Logger
}

func (p *player) run() {
	readDone := make(chan struct{})
	go p.readLoop(readDone)

	defer func() {
		if snap := p.session.Snapshot(); snap.Running {
			p.hub.RecordScore(p.handle.ID, snap.Score, snap.Level)
		}
		p.hub.UnregisterClient(p.handle.ID)
		p.conn.Close()
	}()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	if err := p.write(NewStateMessage(p.session.Snapshot(), p.params)); err != nil {
		return
	}
	if err := p.write(NewLeaderboardMessage(p.hub.TopScores())); err != nil {
		return
	}

	updates := p.session.Updates()
	events := p.session.Events()
	for {
		select {
		case <-readDone:
			return

		case snap, ok := <-updates:
			if !ok {
				return
			}
			if err := p.write(NewStateMessage(snap, p.params)); err != nil {
				return
			}

		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := p.write(NewEventMessage(ev)); err != nil {
				return
			}
			if ev.Type == game.EventStopped {
				p.hub.RecordScore(p.handle.ID, ev.Score, ev.Level)
				if err := p.write(NewLeaderboardMessage(p.hub.TopScores())); err != nil {
					return
				}
			}

		case ev, ok := <-p.handle.EventsCh:
			if !ok {
				return
			}
			if ev.Type == server.EventServerShutdown {
				_ = p.write(ShutdownMessage{Type: MsgShutdown})
				_ = p.conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
					time.Now().Add(writeWait))
				return
			}

		case <-ping.C:
			if err := p.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func (p *player) write(v any) error {
	_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := p.conn.WriteJSON(v); err != nil {
		p.logger.Debug("write failed", "err", err)
		return err
	}
	return nil
}

// readLoop decodes browser messages into session commands until the
// connection fails.
func (p *player) readLoop(done chan<- struct{}) {
	defer close(done)

	p.conn.SetReadLimit(maxMessage)
	_ = p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		return p.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			return
		}
		_ = p.conn.SetReadDeadline(time.Now().Add(pongWait))

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			p.logger.Debug("bad message", "err", err)
			continue
		}
		if err := p.dispatch(msg); err != nil {
			return
		}
	}
}

func (p *player) dispatch(msg ClientMessage) error {
	switch msg.Type {
	case MsgPointer:
		p.session.MovePointer(msg.X, msg.Y)
	case MsgStart:
		return p.session.Start()
	case MsgStop:
		return p.session.Stop()
	case MsgResize:
		return p.session.Resize(msg.Width, msg.Height)
	default:
		p.logger.Debug("unknown message", "type", msg.Type)
	}
	return nil
}
