// Package auth implementa el formulario de acceso: login, registro, cambio de modo y logout.
package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/admin-console/internal/application/activity"
	"github.com/jhoicas/admin-console/internal/application/alert"
	"github.com/jhoicas/admin-console/internal/application/dto"
	"github.com/jhoicas/admin-console/internal/application/form"
	"github.com/jhoicas/admin-console/internal/application/ports"
	"github.com/jhoicas/admin-console/internal/application/view"
	"github.com/jhoicas/admin-console/internal/domain"
	"github.com/jhoicas/admin-console/pkg/clock"
	"github.com/jhoicas/admin-console/pkg/logger"
)

// Mensajes de éxito mostrados en la alerta.
const (
	MsgLoginOK    = "¡Inicio de sesión exitoso!"
	MsgRegisterOK = "¡Registro exitoso! Ahora puedes iniciar sesión."
)

// Retardos por defecto antes de la transición de pantalla.
const (
	DefaultLoginDelay    = 1000 * time.Millisecond
	DefaultRegisterDelay = 2000 * time.Millisecond
)

var (
	loginRequired    = []string{dto.FieldUsername, dto.FieldPassword}
	registerRequired = dto.AuthFields
)

// Refresher recarga los datos del dashboard tras el login.
type Refresher interface {
	Refresh(ctx context.Context) (dto.DashboardData, error)
}

// Deps dependencias del flujo de acceso.
type Deps struct {
	API           ports.ResourceAPI
	Router        *view.Router
	Alerts        *alert.Notifier
	Activity      *activity.Tracker
	Dashboard     Refresher
	Scheduler     clock.Scheduler
	LoginDelay    time.Duration
	RegisterDelay time.Duration
	Logger        *logger.Logger
}

// Flow estado del formulario de acceso.
//
// Las transiciones diferidas (entrar al panel tras el login, volver a login tras
// el registro) llevan la época del momento en que se programaron; Toggle y
// Logout incrementan la época y las transiciones pendientes se descartan.
type Flow struct {
	d    Deps
	form *form.Form
	log  *logger.Logger

	mu    sync.Mutex
	epoch uint64
}

// NewFlow construye el flujo. Retardos <= 0 usan los valores por defecto.
func NewFlow(d Deps) *Flow {
	if d.LoginDelay <= 0 {
		d.LoginDelay = DefaultLoginDelay
	}
	if d.RegisterDelay <= 0 {
		d.RegisterDelay = DefaultRegisterDelay
	}
	if d.Scheduler == nil {
		d.Scheduler = clock.Real{}
	}
	if d.Logger == nil {
		d.Logger = logger.Nop()
	}
	f := &Flow{d: d, form: form.New(dto.AuthFields), log: d.Logger.Component("auth")}
	f.form.Require(loginRequired...)
	return f
}

// Form formulario compartido por login y registro.
func (f *Flow) Form() *form.Form { return f.form }

// Set actualiza un campo del formulario.
func (f *Flow) Set(name, value string) error {
	return f.form.Set(name, value)
}

// Submit envía el formulario según el modo actual.
func (f *Flow) Submit(ctx context.Context) error {
	if f.d.Router.LoginMode() {
		return f.Login(ctx)
	}
	return f.Register(ctx)
}

// Login envía usuario y contraseña. Si el backend acepta, muestra la alerta de
// éxito y, pasado LoginDelay, entra al panel, recarga el dashboard y limpia la alerta.
func (f *Flow) Login(ctx context.Context) error {
	if err := f.checkRequired(); err != nil {
		return err
	}
	f.d.Alerts.Clear()
	done := f.d.Activity.Begin("login")
	defer done()

	in := dto.LoginRequest{
		Username: f.form.Get(dto.FieldUsername),
		Password: f.form.Get(dto.FieldPassword),
	}
	if _, err := f.d.API.Login(ctx, in); err != nil {
		f.log.Info().Str("username", in.Username).Err(err).Msg("login rechazado")
		f.d.Alerts.Error(domain.UserMessage(err))
		return err
	}
	f.log.Info().Str("username", in.Username).Msg("login correcto")
	f.d.Alerts.Success(MsgLoginOK)

	epoch := f.currentEpoch()
	bg := context.WithoutCancel(ctx)
	f.d.Scheduler.AfterFunc(f.d.LoginDelay, func() {
		if !f.sameEpoch(epoch) {
			return
		}
		f.d.Router.SetAuthenticated(true)
		f.refreshDashboard(bg)
		f.d.Alerts.Clear()
	})
	return nil
}

// Register envía el perfil completo. Si el backend acepta, muestra la alerta de
// éxito y, pasado RegisterDelay, vuelve a modo login con los campos vacíos.
func (f *Flow) Register(ctx context.Context) error {
	if err := f.checkRequired(); err != nil {
		return err
	}
	f.d.Alerts.Clear()
	done := f.d.Activity.Begin("register")
	defer done()

	in := dto.RegisterRequestFromForm(f.form.Values())
	if err := f.d.API.Register(ctx, in); err != nil {
		f.log.Info().Str("username", in.Username).Err(err).Msg("registro rechazado")
		f.d.Alerts.Error(domain.UserMessage(err))
		return err
	}
	f.log.Info().Str("username", in.Username).Msg("usuario registrado")
	f.d.Alerts.Success(MsgRegisterOK)

	epoch := f.currentEpoch()
	f.d.Scheduler.AfterFunc(f.d.RegisterDelay, func() {
		if !f.sameEpoch(epoch) {
			return
		}
		f.setMode(true)
	})
	return nil
}

// Toggle alterna login/registro, limpia la alerta y los campos.
func (f *Flow) Toggle() {
	f.setMode(!f.d.Router.LoginMode())
}

// Logout vuelve a la pantalla de acceso con el dashboard como sección.
func (f *Flow) Logout() {
	f.bump()
	f.d.Router.SetAuthenticated(false)
	f.form.Reset()
	f.d.Alerts.Clear()
}

func (f *Flow) setMode(login bool) {
	f.bump()
	f.d.Router.SetLoginMode(login)
	if login {
		f.form.Require(loginRequired...)
	} else {
		f.form.Require(registerRequired...)
	}
	f.form.Reset()
	f.d.Alerts.Clear()
}

func (f *Flow) checkRequired() error {
	if missing := f.form.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: faltan %s", domain.ErrInvalidInput, strings.Join(missing, ", "))
	}
	return nil
}

func (f *Flow) refreshDashboard(ctx context.Context) {
	if f.d.Dashboard == nil {
		return
	}
	if _, err := f.d.Dashboard.Refresh(ctx); err != nil {
		f.log.Warn().Err(err).Msg("no se pudo recargar el dashboard")
	}
}

func (f *Flow) bump() {
	f.mu.Lock()
	f.epoch++
	f.mu.Unlock()
}

func (f *Flow) currentEpoch() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.epoch
}

func (f *Flow) sameEpoch(e uint64) bool {
	return f.currentEpoch() == e
}
