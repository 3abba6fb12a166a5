// Package admin compone los servicios de la consola a partir de la configuración.
package admin

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhoicas/admin-console/internal/application/activity"
	"github.com/jhoicas/admin-console/internal/application/alert"
	"github.com/jhoicas/admin-console/internal/application/auth"
	"github.com/jhoicas/admin-console/internal/application/crud"
	"github.com/jhoicas/admin-console/internal/application/dashboard"
	"github.com/jhoicas/admin-console/internal/application/ports"
	"github.com/jhoicas/admin-console/internal/application/view"
	"github.com/jhoicas/admin-console/internal/domain/entity"
	"github.com/jhoicas/admin-console/pkg/clock"
	"github.com/jhoicas/admin-console/pkg/config"
	"github.com/jhoicas/admin-console/pkg/logger"
)

// ErrNoReport no hay generador de reportes configurado.
var ErrNoReport = errors.New("reporte PDF no disponible")

// Options adaptadores que la consola recibe desde fuera.
type Options struct {
	API       ports.ResourceAPI
	Report    ports.ReportRenderer // opcional
	Scheduler clock.Scheduler      // por defecto clock.Real
	Logger    *logger.Logger
}

// App estado completo de la consola.
type App struct {
	cfg *config.Config
	log *logger.Logger

	Router    *view.Router
	Alerts    *alert.Notifier
	Activity  *activity.Tracker
	Dashboard *dashboard.Aggregator
	Auth      *auth.Flow
	Users     *crud.Panel[entity.User]
	Products  *crud.Panel[entity.Product]
	Report    ports.ReportRenderer
}

// New construye la consola.
func New(cfg *config.Config, opts Options) *App {
	if opts.Scheduler == nil {
		opts.Scheduler = clock.Real{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	a := &App{
		cfg:       cfg,
		log:       opts.Logger,
		Router:    view.NewRouter(),
		Alerts:    alert.NewNotifier(opts.Scheduler, cfg.UI.AlertTTL()),
		Activity:  activity.NewTracker(),
		Dashboard: dashboard.NewAggregator(opts.API, opts.Logger),
		Report:    opts.Report,
	}
	a.Auth = auth.NewFlow(auth.Deps{
		API:           opts.API,
		Router:        a.Router,
		Alerts:        a.Alerts,
		Activity:      a.Activity,
		Dashboard:     a.Dashboard,
		Scheduler:     opts.Scheduler,
		LoginDelay:    cfg.UI.LoginDelay(),
		RegisterDelay: cfg.UI.RegisterDelay(),
		Logger:        opts.Logger,
	})

	deps := crud.Deps{
		Source:   a.Dashboard,
		Alerts:   a.Alerts,
		Activity: a.Activity,
		PageSize: cfg.UI.PageSize,
		Logger:   opts.Logger,
	}
	a.Users = crud.NewPanel[entity.User](crud.Users{API: opts.API}, deps)
	a.Products = crud.NewPanel[entity.Product](crud.Products{API: opts.API}, deps)
	return a
}

// ExportReport escribe el PDF del dashboard actual. Las rutas relativas se
// resuelven contra UI.ReportDir. Devuelve la ruta final.
func (a *App) ExportReport(ctx context.Context, name string) (string, error) {
	if a.Report == nil {
		return "", ErrNoReport
	}
	done := a.Activity.Begin("report")
	defer done()

	out, err := a.Report.RenderDashboard(ctx, a.Dashboard.Data())
	if err != nil {
		return "", fmt.Errorf("admin: reporte: %w", err)
	}
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(a.cfg.UI.ReportDir, name)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return "", fmt.Errorf("admin: escribir %s: %w", path, err)
	}
	a.log.Info().Str("path", path).Int("bytes", len(out)).Msg("reporte generado")
	return path, nil
}
