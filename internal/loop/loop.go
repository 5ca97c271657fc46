// Package loop runs a single-player game on a local terminal.
package loop

import (
	"bufio"
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/tomz197/mousehunt/internal/game"
	"github.com/tomz197/mousehunt/internal/loop/client"
	"github.com/tomz197/mousehunt/internal/loop/server"
)

// Options configures a local game.
type Options struct {
	Params   game.Params
	Logger   *log.Logger
	Username string
}

// Run plays on the terminal behind r and w until the player quits. It wires
// the same hub and client the SSH server uses, with a single connection.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := server.NewServer(ctx, server.Options{Params: opts.Params, Logger: opts.Logger})
	c := client.NewClient(hub, r, w, client.ClientOptions{
		Username: opts.Username,
		Logger:   opts.Logger,
	})
	return c.Run()
}
