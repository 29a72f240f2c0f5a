package main

import (
	"context"
	"errors"
	"guidedawg/app/config"
	"guidedawg/app/service/api"
	"guidedawg/app/service/conversation"
	"guidedawg/app/service/events"
	"guidedawg/app/service/grounding"
	"guidedawg/app/service/mcpsrv"
	"guidedawg/app/util/mylog"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

func main() {
	di := do.New()
	defer di.Shutdown()

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, events.New)
	do.Provide(di, grounding.New)
	do.Provide(di, conversation.NewGenerator)
	do.Provide(di, conversation.New)
	do.Provide(di, api.New)
	do.Provide(di, mcpsrv.New)

	slog.Info("Service started")

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	g, runCtx := errgroup.WithContext(appCtx)

	g.Go(func() error {
		return do.MustInvoke[*api.Service](di).Run(runCtx)
	})

	if cfg.MCP.Enabled {
		g.Go(func() error {
			return do.MustInvoke[*mcpsrv.Service](di).Run(runCtx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Service stopped", "error", err)
	}
}
