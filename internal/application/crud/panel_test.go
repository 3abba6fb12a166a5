package crud_test

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/admin-console/internal/application/activity"
	"github.com/jhoicas/admin-console/internal/application/alert"
	"github.com/jhoicas/admin-console/internal/application/crud"
	"github.com/jhoicas/admin-console/internal/application/dashboard"
	"github.com/jhoicas/admin-console/internal/application/dto"
	"github.com/jhoicas/admin-console/internal/application/form"
	"github.com/jhoicas/admin-console/internal/domain"
	"github.com/jhoicas/admin-console/internal/domain/entity"
	"github.com/jhoicas/admin-console/internal/infrastructure/api"
	"github.com/jhoicas/admin-console/internal/sandbox"
	"github.com/jhoicas/admin-console/pkg/clock"
)

type env struct {
	srv      *sandbox.Server
	alerts   *alert.Notifier
	activity *activity.Tracker
	dash     *dashboard.Aggregator
	users    *crud.Panel[entity.User]
	products *crud.Panel[entity.Product]
}

func newEnv(t *testing.T, pageSize int) *env {
	t.Helper()
	srv, err := sandbox.Start(sandbox.Config{Seed: true, JWTSecret: "test-secret-key-for-unit-tests"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })

	client := api.NewClient(srv.URL(), 5*time.Second, nil)
	e := &env{
		srv:      srv,
		alerts:   alert.NewNotifier(clock.NewManual(), alert.DefaultTTL),
		activity: activity.NewTracker(),
		dash:     dashboard.NewAggregator(client, nil),
	}
	deps := crud.Deps{Source: e.dash, Alerts: e.alerts, Activity: e.activity, PageSize: pageSize}
	e.users = crud.NewPanel[entity.User](crud.Users{API: client}, deps)
	e.products = crud.NewPanel[entity.Product](crud.Products{API: client}, deps)

	_, err = e.dash.Refresh(context.Background())
	require.NoError(t, err)
	return e
}

func (e *env) alert(t *testing.T) entity.Alert {
	t.Helper()
	a, ok := e.alerts.Current()
	require.True(t, ok, "se esperaba una alerta")
	return a
}

var (
	yes = crud.ConfirmFunc(func(string) bool { return true })
	no  = crud.ConfirmFunc(func(string) bool { return false })
)

func TestProductos_CrearConviertePrecioYStock(t *testing.T) {
	e := newEnv(t, 10)
	e.products.OpenCreate()
	require.NoError(t, e.products.Set(dto.FieldNombre, "Hub USB"))
	require.NoError(t, e.products.Set(dto.FieldCategoria, "Accesorios"))
	require.NoError(t, e.products.Set(dto.FieldPrecio, "25.50"))
	require.NoError(t, e.products.Set(dto.FieldStock, "10"))

	require.NoError(t, e.products.Submit(context.Background()))

	reqs := e.srv.RequestsTo(http.MethodPost, "/api/productos")
	require.Len(t, reqs, 1)
	var sent map[string]any
	require.NoError(t, json.Unmarshal(reqs[0].Body, &sent))
	assert.Equal(t, 25.5, sent["precio"])
	assert.Equal(t, float64(10), sent["stock"])

	assert.Equal(t, "Producto creado exitosamente", e.alert(t).Message)
	assert.False(t, e.products.Modal().IsOpen())
	assert.Equal(t, "", e.products.Modal().Form().Get(dto.FieldNombre))
	assert.Len(t, e.products.Items(), 5)
	assert.False(t, e.activity.Loading())
}

func TestProductos_NumeroInvalidoNoEnviaPeticion(t *testing.T) {
	e := newEnv(t, 10)
	e.products.OpenCreate()
	require.NoError(t, e.products.Set(dto.FieldNombre, "Hub"))
	require.NoError(t, e.products.Set(dto.FieldCategoria, "Accesorios"))
	require.NoError(t, e.products.Set(dto.FieldPrecio, "veinte"))
	require.NoError(t, e.products.Set(dto.FieldStock, "10"))

	err := e.products.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidNumber)
	assert.Empty(t, e.srv.RequestsTo(http.MethodPost, "/api/productos"))
	assert.Equal(t, entity.SeverityError, e.alert(t).Severity)
	assert.True(t, e.products.Modal().IsOpen())
	assert.Equal(t, "veinte", e.products.Modal().Form().Get(dto.FieldPrecio))
}

func TestProductos_EditarCargaValoresComoTexto(t *testing.T) {
	e := newEnv(t, 10)
	require.NoError(t, e.products.OpenEdit(2))

	f := e.products.Modal().Form()
	assert.Equal(t, "Mouse Inalámbrico", f.Get(dto.FieldNombre))
	assert.Equal(t, "25.5", f.Get(dto.FieldPrecio))
	assert.Equal(t, "50", f.Get(dto.FieldStock))
	assert.Equal(t, "", f.Get(dto.FieldDescripcion))

	require.NoError(t, e.products.Set(dto.FieldStock, "45"))
	require.NoError(t, e.products.Submit(context.Background()))

	require.Len(t, e.srv.RequestsTo(http.MethodPut, "/api/productos/2"), 1)
	assert.Equal(t, "Producto actualizado exitosamente", e.alert(t).Message)
	p, ok := e.products.Find(2)
	require.True(t, ok)
	assert.Equal(t, 45, p.Stock)
}

func TestUsuarios_FalloDejaElModalAbierto(t *testing.T) {
	e := newEnv(t, 10)
	e.srv.Fail(http.MethodPost, "/api/usuarios", http.StatusBadRequest, "")

	e.users.OpenCreate()
	for k, v := range map[string]string{
		dto.FieldUsername: "nuevo", dto.FieldPassword: "x",
		dto.FieldFirstname: "N", dto.FieldLastname: "U", dto.FieldCountry: "Perú",
	} {
		require.NoError(t, e.users.Set(k, v))
	}

	err := e.users.Submit(context.Background())
	var rf *domain.RequestFailedError
	require.ErrorAs(t, err, &rf)
	assert.Equal(t, "Error al crear usuario", e.alert(t).Message)
	assert.True(t, e.users.Modal().IsOpen())
	assert.Equal(t, "nuevo", e.users.Modal().Form().Get(dto.FieldUsername))
	assert.False(t, e.activity.Loading())

	// Corrige y reenvía desde el mismo modal.
	e.srv.Recover()
	require.NoError(t, e.users.Submit(context.Background()))
	assert.False(t, e.users.Modal().IsOpen())
	assert.Len(t, e.users.Items(), 4)
}

func TestUsuarios_EdicionSinPasswordEsValida(t *testing.T) {
	e := newEnv(t, 10)
	require.NoError(t, e.users.OpenEdit(2))
	assert.Equal(t, form.ModeEdit, e.users.Modal().Mode())
	assert.Empty(t, e.users.Modal().Form().Missing())

	require.NoError(t, e.users.Set(dto.FieldCountry, "Argentina"))
	require.NoError(t, e.users.Submit(context.Background()))

	reqs := e.srv.RequestsTo(http.MethodPut, "/api/usuarios/2")
	require.Len(t, reqs, 1)
	assert.NotContains(t, string(reqs[0].Body), "password")
}

func TestUsuarios_AltaRequierePassword(t *testing.T) {
	e := newEnv(t, 10)
	e.users.OpenCreate()
	require.NoError(t, e.users.Set(dto.FieldUsername, "sinclave"))

	err := e.users.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, e.srv.RequestsTo(http.MethodPost, "/api/usuarios"))
}

func TestOpenEdit_Inexistente(t *testing.T) {
	e := newEnv(t, 10)
	assert.ErrorIs(t, e.users.OpenEdit(999), domain.ErrNotFound)
	assert.False(t, e.users.Modal().IsOpen())
}

func TestSubmit_ModalCerrado(t *testing.T) {
	e := newEnv(t, 10)
	assert.ErrorIs(t, e.users.Submit(context.Background()), domain.ErrModalClosed)
}

func TestDelete_RechazadoNoEnviaPeticion(t *testing.T) {
	e := newEnv(t, 10)
	var prompt string
	ask := crud.ConfirmFunc(func(p string) bool { prompt = p; return false })

	err := e.users.Delete(context.Background(), 2, ask)
	assert.ErrorIs(t, err, domain.ErrNotConfirmed)
	assert.Equal(t, "¿Estás seguro de que quieres eliminar este usuario?", prompt)
	assert.Empty(t, e.srv.RequestsTo(http.MethodDelete, "/api/usuarios/2"))

	assert.ErrorIs(t, e.products.Delete(context.Background(), 1, nil), domain.ErrNotConfirmed)
	assert.ErrorIs(t, e.products.Delete(context.Background(), 1, no), domain.ErrNotConfirmed)
}

func TestDelete_ConfirmadoRecargaListado(t *testing.T) {
	e := newEnv(t, 10)

	require.NoError(t, e.products.Delete(context.Background(), 1, yes))

	assert.Equal(t, "Producto eliminado exitosamente", e.alert(t).Message)
	assert.Len(t, e.products.Items(), 3)
	_, ok := e.products.Find(1)
	assert.False(t, ok)
}

func TestDelete_FalloUsaMensajeFijo(t *testing.T) {
	e := newEnv(t, 10)
	e.srv.Fail(http.MethodDelete, "/api/productos/1", http.StatusInternalServerError, "detalle interno")

	require.Error(t, e.products.Delete(context.Background(), 1, yes))
	assert.Equal(t, "Error al eliminar producto", e.alert(t).Message)
	assert.Len(t, e.products.Items(), 4)
}

func TestPaginacion_PaginasYAjusteTrasBorrar(t *testing.T) {
	e := newEnv(t, 2)
	require.Len(t, e.products.Page(), 2)
	assert.Equal(t, 2, e.products.TotalPages())

	assert.Equal(t, 2, e.products.Next())
	assert.Equal(t, 2, e.products.Next())
	page := e.products.Page()
	require.Len(t, page, 2)
	assert.Equal(t, int64(3), page[0].ID)

	// Al quedar 2 productos, la página 2 deja de existir y se ajusta a la 1.
	require.NoError(t, e.products.Delete(context.Background(), 4, yes))
	require.NoError(t, e.products.Delete(context.Background(), 3, yes))
	assert.Equal(t, 1, e.products.Pager().Page())
	assert.Len(t, e.products.Page(), 2)

	assert.Equal(t, 1, e.products.Prev())
}

// blockingProducts retiene Create hasta que se cierre release.
type blockingProducts struct {
	crud.Products
	started chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func (b *blockingProducts) Create(context.Context, map[string]string) error {
	if b.calls.Add(1) == 1 {
		close(b.started)
	}
	<-b.release
	return nil
}

type staticSource struct{ data dto.DashboardData }

func (s *staticSource) Refresh(context.Context) (dto.DashboardData, error) { return s.data, nil }
func (s *staticSource) Data() dto.DashboardData                         { return s.data }
func (s *staticSource) OnRefresh(func(dto.DashboardData))               {}

func TestSubmit_EnviosDuplicadosComparten(t *testing.T) {
	res := &blockingProducts{started: make(chan struct{}), release: make(chan struct{})}
	panel := crud.NewPanel[entity.Product](res, crud.Deps{
		Source:   &staticSource{},
		Alerts:   alert.NewNotifier(clock.NewManual(), 0),
		Activity: activity.NewTracker(),
	})
	panel.OpenCreate()
	for k, v := range map[string]string{
		dto.FieldNombre: "Hub", dto.FieldCategoria: "Accesorios", dto.FieldPrecio: "1", dto.FieldStock: "1",
	} {
		require.NoError(t, panel.Set(k, v))
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		errs[0] = panel.Submit(context.Background())
	}()
	<-res.started

	wg.Add(1)
	go func() {
		defer wg.Done()
		errs[1] = panel.Submit(context.Background())
	}()
	time.Sleep(20 * time.Millisecond)
	close(res.release)
	wg.Wait()

	assert.NoError(t, errs[0])
	// El segundo envío o se agrupó con el primero o encontró el modal ya cerrado.
	if errs[1] != nil {
		assert.ErrorIs(t, errs[1], domain.ErrModalClosed)
	}
	assert.Equal(t, int32(1), res.calls.Load())
	assert.False(t, panel.Modal().IsOpen())
}
