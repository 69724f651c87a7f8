package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/olahol/melody"
	"golang.org/x/sync/errgroup"

	"github.com/KillerxG/RPG-YGO-Delta/internal/adapters/catalog"
	httpadapter "github.com/KillerxG/RPG-YGO-Delta/internal/adapters/http"
	"github.com/KillerxG/RPG-YGO-Delta/internal/adapters/players"
	"github.com/KillerxG/RPG-YGO-Delta/internal/adapters/render"
	"github.com/KillerxG/RPG-YGO-Delta/internal/adapters/ws"
	"github.com/KillerxG/RPG-YGO-Delta/internal/app"
	"github.com/KillerxG/RPG-YGO-Delta/internal/config"
	"github.com/KillerxG/RPG-YGO-Delta/internal/share"
)

// stdRNG delegates to math/rand/v2 (auto-seeded).
type stdRNG struct{}

func (stdRNG) Intn(n int) int { return rand.IntN(n) }
func (stdRNG) Float64() float64 { return rand.Float64() }

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	store, err := catalog.NewOSStore(cfg.Layout.Root, cfg.Layout.Extensions, logger)
	if err != nil {
		return err
	}

	repo, db, err := players.Open(cfg.DatabasePath, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	policies, err := cfg.Policies.PolicySet()
	if err != nil {
		return err
	}

	boosters := app.NewBoosterService(store, stdRNG{}, cfg.AppLayout(), policies, logger)
	gallery := app.NewGalleryService(store, repo, cfg.Layout.PlayersDir, cfg.Layout.PlayerRarities, logger)
	sheet := render.NewSheet(store, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))

	httpadapter.NewHandler(boosters, gallery, store, sheet, logger).Register(e)

	m := melody.New()
	ws.New(logger, m, boosters).Register(e)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sh *share.Share
	if cfg.Share.Enabled {
		sh, err = share.Open(share.Options{
			Target:       shareTarget(cfg.HTTPAddr),
			UseReserved:  cfg.Share.UseReserved,
			ReservedName: cfg.Share.ReservedName,
		}, logger)
		if err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", "addr", cfg.HTTPAddr)
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if sh != nil {
		g.Go(func() error { return sh.Serve(e) })
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := m.Close(); err != nil {
			logger.Error("websocket close error", "error", err)
		}
		if sh != nil {
			if err := sh.Close(); err != nil {
				logger.Error("share close error", "error", err)
			}
		}
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func shareTarget(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
