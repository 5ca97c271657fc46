package main

import (
	"context"
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/mousehunt/internal/config"
	"github.com/tomz197/mousehunt/internal/loop/desktop"
	"github.com/tomz197/mousehunt/internal/loop/server"
)

func main() {
	logger := config.NewLogger("desktop")

	params, err := config.GameParams()
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := server.NewServer(ctx, server.Options{Params: params, Logger: logger})

	g := desktop.NewGame(hub, config.GetEnv("USER", ""), logger)
	defer g.Close()

	ebiten.SetWindowSize(int(params.DefaultWidth), int(params.DefaultHeight)+24)
	ebiten.SetWindowTitle("Mouse Hunt")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetCursorShape(ebiten.CursorShapeCrosshair)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("game error", "err", err)
	}
}
