package crud

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/admin-console/internal/application/activity"
	"github.com/jhoicas/admin-console/internal/application/alert"
	"github.com/jhoicas/admin-console/internal/application/dto"
	"github.com/jhoicas/admin-console/internal/application/form"
	"github.com/jhoicas/admin-console/internal/application/pagination"
	"github.com/jhoicas/admin-console/internal/domain"
	"github.com/jhoicas/admin-console/pkg/logger"
)

// Confirmer pide confirmación al usuario antes de una operación destructiva.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapta una función a Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Source origen de los listados: el agregador del dashboard.
type Source interface {
	Refresh(ctx context.Context) (dto.DashboardData, error)
	Data() dto.DashboardData
	OnRefresh(fn func(dto.DashboardData))
}

// Deps dependencias compartidas por los paneles.
type Deps struct {
	Source   Source
	Alerts   *alert.Notifier
	Activity *activity.Tracker
	PageSize int
	Logger   *logger.Logger
}

// Panel modal de alta/edición más listado paginado de un recurso.
type Panel[T any] struct {
	res    Resource[T]
	d      Deps
	modal  *form.Modal[T]
	pager  *pagination.Pager
	submit singleflight.Group
	log    *logger.Logger
}

// NewPanel construye el panel y se suscribe a los refrescos del dashboard para
// mantener la página actual dentro de rango.
func NewPanel[T any](res Resource[T], d Deps) *Panel[T] {
	if d.Logger == nil {
		d.Logger = logger.Nop()
	}
	p := &Panel[T]{
		res:   res,
		d:     d,
		modal: form.NewModal(res.Fields(), res.FormValues, res.ID),
		pager: pagination.NewPager(d.PageSize),
		log:   d.Logger.Component("crud").With("recurso", res.Name()),
	}
	p.modal.RequireOn(form.ModeCreate, res.Required(form.ModeCreate)...)
	p.modal.RequireOn(form.ModeEdit, res.Required(form.ModeEdit)...)
	d.Source.OnRefresh(func(data dto.DashboardData) {
		p.pager.Clamp(len(res.Items(data)))
	})
	return p
}

func (p *Panel[T]) Name() string { return p.res.Name() }

func (p *Panel[T]) Modal() *form.Modal[T] { return p.modal }

func (p *Panel[T]) Pager() *pagination.Pager { return p.pager }

// Items colección completa del último refresco.
func (p *Panel[T]) Items() []T {
	return p.res.Items(p.d.Source.Data())
}

// Page elementos de la página actual.
func (p *Panel[T]) Page() []T {
	return pagination.Paginate(p.Items(), p.pager.Page(), p.pager.Size())
}

// TotalPages número de páginas de la colección actual.
func (p *Panel[T]) TotalPages() int {
	return pagination.TotalPages(len(p.Items()), p.pager.Size())
}

func (p *Panel[T]) GoTo(n int) int { return p.pager.Go(n, len(p.Items())) }

func (p *Panel[T]) Next() int { return p.pager.Next(len(p.Items())) }

func (p *Panel[T]) Prev() int { return p.pager.Prev(len(p.Items())) }

// Find busca un registro por id en la colección actual.
func (p *Panel[T]) Find(id int64) (T, bool) {
	for _, rec := range p.Items() {
		if p.res.ID(rec) == id {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

// OpenCreate abre el modal vacío.
func (p *Panel[T]) OpenCreate() {
	p.modal.OpenCreate()
}

// OpenEdit abre el modal con los datos del registro id.
func (p *Panel[T]) OpenEdit(id int64) error {
	rec, ok := p.Find(id)
	if !ok {
		return fmt.Errorf("%s %d: %w", p.res.Name(), id, domain.ErrNotFound)
	}
	p.modal.OpenEdit(rec)
	return nil
}

// Set actualiza un campo del modal abierto.
func (p *Panel[T]) Set(field, value string) error {
	return p.modal.Set(field, value)
}

// Cancel cierra el modal y descarta los valores.
func (p *Panel[T]) Cancel() {
	p.modal.Close()
}

// Submit crea o actualiza según el modo del modal.
//
// Si tiene éxito: alerta de éxito, cierra el modal (solo si sigue siendo la
// misma apertura) y recarga el dashboard. Si falla: alerta de error y el modal
// queda abierto con sus valores. Dos envíos idénticos simultáneos comparten
// una única petición.
func (p *Panel[T]) Submit(ctx context.Context) error {
	snap, err := p.modal.Snapshot()
	if err != nil {
		return err
	}
	if missing := p.modal.Form().Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: faltan %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}
	_, err, shared := p.submit.Do(submitKey(snap), func() (any, error) {
		return nil, p.doSubmit(ctx, snap)
	})
	if shared {
		p.log.Debug().Uint64("generation", snap.Generation).Msg("envío duplicado agrupado")
	}
	return err
}

func (p *Panel[T]) doSubmit(ctx context.Context, snap form.Snapshot) error {
	done := p.d.Activity.Begin(p.res.Name() + ":" + string(snap.Mode))
	defer done()

	var (
		err error
		msg string
	)
	msgs := p.res.Messages()
	switch snap.Mode {
	case form.ModeEdit:
		err = p.res.Update(ctx, snap.SelectedID, snap.Values)
		msg = msgs.Updated
	default:
		err = p.res.Create(ctx, snap.Values)
		msg = msgs.Created
	}
	if err != nil {
		p.log.Warn().Err(err).Str("modo", string(snap.Mode)).Int64("id", snap.SelectedID).Msg("envío rechazado")
		p.d.Alerts.Error(domain.UserMessage(err))
		return err
	}

	p.log.Info().Str("modo", string(snap.Mode)).Int64("id", snap.SelectedID).Msg("envío correcto")
	p.d.Alerts.Success(msg)
	p.modal.CloseIf(snap.Generation)
	p.refresh(ctx)
	return nil
}

// Delete elimina el registro id tras la confirmación. Si c es nil o el usuario
// no confirma devuelve domain.ErrNotConfirmed sin enviar nada.
func (p *Panel[T]) Delete(ctx context.Context, id int64, c Confirmer) error {
	msgs := p.res.Messages()
	if c == nil || !c.Confirm(msgs.ConfirmDelete) {
		return domain.ErrNotConfirmed
	}

	done := p.d.Activity.Begin(p.res.Name() + ":delete")
	defer done()

	if err := p.res.Delete(ctx, id); err != nil {
		p.log.Warn().Err(err).Int64("id", id).Msg("borrado rechazado")
		p.d.Alerts.Error(domain.UserMessage(err))
		return err
	}
	p.log.Info().Int64("id", id).Msg("registro eliminado")
	p.d.Alerts.Success(msgs.Deleted)
	p.refresh(ctx)
	return nil
}

func (p *Panel[T]) refresh(ctx context.Context) {
	if _, err := p.d.Source.Refresh(ctx); err != nil {
		p.log.Warn().Err(err).Msg("no se pudo recargar el dashboard")
	}
}

// submitKey identifica un envío por apertura del modal y valores.
func submitKey(s form.Snapshot) string {
	values, _ := json.Marshal(s.Values)
	return fmt.Sprintf("%s/%d/%d/%s", s.Mode, s.SelectedID, s.Generation, values)
}
