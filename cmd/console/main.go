package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/jhoicas/admin-console/internal/application/admin"
	"github.com/jhoicas/admin-console/internal/infrastructure/api"
	infrapdf "github.com/jhoicas/admin-console/internal/infrastructure/pdf"
	"github.com/jhoicas/admin-console/internal/interfaces/console"
	"github.com/jhoicas/admin-console/internal/sandbox"
	"github.com/jhoicas/admin-console/pkg/config"
	"github.com/jhoicas/admin-console/pkg/logger"
	"github.com/jhoicas/admin-console/pkg/numfmt"
)

func main() {
	useSandbox := flag.Bool("sandbox", false, "levanta una API en memoria con datos de ejemplo y se conecta a ella")
	sandboxAddr := flag.String("sandbox-addr", "127.0.0.1:0", "dirección de escucha del sandbox")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	if *useSandbox {
		cfg.Sandbox.Enabled = true
	}

	// Los logs van a stderr para no mezclarse con la consola.
	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		Out:   os.Stderr,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando consola")

	baseURL := cfg.API.BaseURL
	if cfg.Sandbox.Enabled {
		srv, err := sandbox.Start(sandbox.Config{
			Addr:      *sandboxAddr,
			JWTSecret: cfg.Sandbox.JWTSecret,
			JWTIssuer: cfg.Sandbox.JWTIssuer,
			Seed:      true,
			Logger:    log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("arranque del sandbox")
		}
		defer func() {
			if err := srv.Close(); err != nil {
				log.Error().Err(err).Msg("apagado del sandbox")
			}
		}()
		baseURL = srv.URL()
		log.Info().Str("url", baseURL).Msg("modo sandbox: usuario admin / admin123")
	}

	app := admin.New(cfg, admin.Options{
		API:    api.NewClient(baseURL, cfg.API.Timeout(), log),
		Report: infrapdf.NewDashboardReport(numfmt.Default()),
		Logger: log,
	})

	cons := console.New(app, console.Config{
		In:          os.Stdin,
		Out:         os.Stdout,
		Interactive: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
		Format:      numfmt.Default(),
		Logger:      log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() { done <- cons.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			log.Error().Err(err).Msg("lectura de comandos")
		}
	case <-ctx.Done():
		log.Info().Msg("señal de apagado recibida, cerrando consola...")
	}

	log.Info().Msg("consola detenida")
}
