// Package dashboard carga ambas colecciones y deriva los datos del panel principal.
package dashboard

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/admin-console/internal/application/dto"
	"github.com/jhoicas/admin-console/internal/application/ports"
	"github.com/jhoicas/admin-console/internal/domain/entity"
	"github.com/jhoicas/admin-console/pkg/logger"
)

// Aggregator mantiene el último DashboardData cargado.
//
// Refresh pide usuarios y productos en paralelo. Cada listado que falla se
// sustituye por una lista vacía; si fallan los dos se instala el conjunto de
// ejemplo (Fallback) para que el panel siga mostrando datos.
type Aggregator struct {
	api ports.ResourceAPI
	log *logger.Logger

	mu          sync.RWMutex
	data        dto.DashboardData
	generation  uint64
	subscribers []func(dto.DashboardData)
}

// NewAggregator construye el agregador con datos vacíos.
func NewAggregator(api ports.ResourceAPI, log *logger.Logger) *Aggregator {
	if log == nil {
		log = logger.Nop()
	}
	return &Aggregator{
		api:  api,
		log:  log.Component("dashboard"),
		data: build([]entity.User{}, []entity.Product{}),
	}
}

// OnRefresh registra una función que recibe cada resultado instalado.
func (a *Aggregator) OnRefresh(fn func(dto.DashboardData)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.subscribers = append(a.subscribers, fn)
}

// Refresh recarga ambas colecciones. Devuelve los datos resultantes; si otro
// Refresh más reciente terminó antes, este resultado se descarta y se devuelve
// el instalado por aquel. Solo devuelve error si ctx se canceló, en cuyo caso
// no se instala nada.
func (a *Aggregator) Refresh(ctx context.Context) (dto.DashboardData, error) {
	a.mu.Lock()
	a.generation++
	gen := a.generation
	a.mu.Unlock()

	var (
		usuarios           []entity.User
		productos          []entity.Product
		errUsers, errProds error
		g                  errgroup.Group
	)
	g.Go(func() error {
		usuarios, errUsers = a.api.ListUsers(ctx)
		return nil
	})
	g.Go(func() error {
		productos, errProds = a.api.ListProducts(ctx)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return a.Data(), err
	}

	var data dto.DashboardData
	switch {
	case errUsers != nil && errProds != nil:
		a.log.Warn().
			AnErr("usuarios", errUsers).
			AnErr("productos", errProds).
			Msg("backend inaccesible, se muestran datos de ejemplo")
		data = Fallback()
	default:
		if errUsers != nil {
			a.log.Warn().Err(errUsers).Msg("no se pudieron cargar usuarios")
			usuarios = []entity.User{}
		}
		if errProds != nil {
			a.log.Warn().Err(errProds).Msg("no se pudieron cargar productos")
			productos = []entity.Product{}
		}
		data = build(usuarios, productos)
	}

	a.mu.Lock()
	if gen != a.generation {
		current := a.data
		a.mu.Unlock()
		a.log.Debug().Uint64("generation", gen).Msg("refresco obsoleto descartado")
		return current, nil
	}
	a.data = data
	subs := append([]func(dto.DashboardData){}, a.subscribers...)
	a.mu.Unlock()

	for _, fn := range subs {
		// Un refresco más reciente ya instaló y notificó sus datos.
		if !a.isCurrent(gen) {
			break
		}
		fn(data)
	}
	return data, nil
}

func (a *Aggregator) isCurrent(gen uint64) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return gen == a.generation
}

// Data último resultado instalado.
func (a *Aggregator) Data() dto.DashboardData {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.data
}

// Users listado de usuarios del último resultado.
func (a *Aggregator) Users() []entity.User {
	return a.Data().Usuarios
}

// Products listado de productos del último resultado.
func (a *Aggregator) Products() []entity.Product {
	return a.Data().Productos
}

func build(usuarios []entity.User, productos []entity.Product) dto.DashboardData {
	stats := dto.Stats{TotalUsuarios: len(usuarios), TotalProductos: len(productos)}
	return dto.DashboardData{
		Usuarios:  usuarios,
		Productos: productos,
		Stats:     stats,
		Charts:    Charts(stats),
	}
}
