package dashboard_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/admin-console/internal/application/dashboard"
	"github.com/jhoicas/admin-console/internal/application/dto"
	"github.com/jhoicas/admin-console/internal/domain"
	"github.com/jhoicas/admin-console/internal/domain/entity"
	"github.com/jhoicas/admin-console/internal/infrastructure/api"
	"github.com/jhoicas/admin-console/internal/sandbox"
)

type APIMock struct{ mock.Mock }

func (m *APIMock) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, in)
	resp, _ := args.Get(0).(*dto.LoginResponse)
	return resp, args.Error(1)
}

func (m *APIMock) Register(ctx context.Context, in dto.RegisterRequest) error {
	return m.Called(ctx, in).Error(0)
}

func (m *APIMock) ListUsers(ctx context.Context) ([]entity.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]entity.User)
	return users, args.Error(1)
}

func (m *APIMock) CreateUser(ctx context.Context, in dto.UserPayload) error {
	return m.Called(ctx, in).Error(0)
}

func (m *APIMock) UpdateUser(ctx context.Context, id int64, in dto.UserPayload) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *APIMock) DeleteUser(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *APIMock) ListProducts(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]entity.Product)
	return products, args.Error(1)
}

func (m *APIMock) CreateProduct(ctx context.Context, in dto.ProductPayload) error {
	return m.Called(ctx, in).Error(0)
}

func (m *APIMock) UpdateProduct(ctx context.Context, id int64, in dto.ProductPayload) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *APIMock) DeleteProduct(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

var errRed = fmt.Errorf("api: GET: %w", domain.ErrTransport)

func users(n int) []entity.User {
	out := make([]entity.User, n)
	for i := range out {
		out[i] = entity.User{ID: int64(i + 1), Username: fmt.Sprintf("u%d", i+1)}
	}
	return out
}

func products(n int) []entity.Product {
	out := make([]entity.Product, n)
	for i := range out {
		out[i] = entity.Product{ID: int64(i + 1), Nombre: fmt.Sprintf("p%d", i+1)}
	}
	return out
}

func TestRefresh_ConteosSonLongitudes(t *testing.T) {
	m := new(APIMock)
	m.On("ListUsers", mock.Anything).Return(users(4), nil).Once()
	m.On("ListProducts", mock.Anything).Return(products(7), nil).Once()
	agg := dashboard.NewAggregator(m, nil)

	data, err := agg.Refresh(context.Background())
	require.NoError(t, err)
	assert.False(t, data.Fallback)
	assert.Equal(t, dto.Stats{TotalUsuarios: 4, TotalProductos: 7}, data.Stats)
	assert.Len(t, agg.Users(), 4)
	assert.Len(t, agg.Products(), 7)
	m.AssertExpectations(t)
}

func TestRefresh_UnFalloDejaEsaListaVacia(t *testing.T) {
	m := new(APIMock)
	m.On("ListUsers", mock.Anything).Return(nil, errRed).Once()
	m.On("ListProducts", mock.Anything).Return(products(2), nil).Once()
	agg := dashboard.NewAggregator(m, nil)

	data, err := agg.Refresh(context.Background())
	require.NoError(t, err)
	assert.False(t, data.Fallback)
	assert.Empty(t, data.Usuarios)
	assert.NotNil(t, data.Usuarios)
	assert.Equal(t, 0, data.Stats.TotalUsuarios)
	assert.Equal(t, 2, data.Stats.TotalProductos)
	m.AssertExpectations(t)
}

func TestRefresh_AmbosFallanInstalaEjemplo(t *testing.T) {
	m := new(APIMock)
	m.On("ListUsers", mock.Anything).Return(nil, errRed).Once()
	m.On("ListProducts", mock.Anything).Return(nil, errRed).Once()
	agg := dashboard.NewAggregator(m, nil)

	data, err := agg.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, data.Fallback)
	assert.Equal(t, dto.Stats{TotalUsuarios: 25, TotalProductos: 150}, data.Stats)
	require.Len(t, data.Usuarios, 3)
	assert.Equal(t, "admin", data.Usuarios[0].Username)
	assert.Equal(t, "Colombia", data.Usuarios[2].Country)
	require.Len(t, data.Productos, 3)
	assert.Equal(t, "Laptop HP", data.Productos[0].Nombre)
	assert.True(t, decimal.RequireFromString("899.99").Equal(data.Productos[0].Precio))
	assert.Equal(t, 15, data.Productos[0].Stock)
	m.AssertExpectations(t)
}

func TestCharts_DerivadosDeLosTotales(t *testing.T) {
	charts := dashboard.Charts(dto.Stats{TotalUsuarios: 25, TotalProductos: 150})
	require.Len(t, charts, 2)

	usuarios := charts[0]
	assert.Equal(t, "Estado de Usuarios", usuarios.Title)
	require.Len(t, usuarios.Slices, 2)
	assert.Equal(t, "Usuarios Activos", usuarios.Slices[0].Label)
	assert.True(t, decimal.NewFromInt(20).Equal(usuarios.Slices[0].Value))
	assert.True(t, decimal.NewFromInt(5).Equal(usuarios.Slices[1].Value))

	productos := charts[1]
	assert.Equal(t, "Estado de Productos", productos.Title)
	require.Len(t, productos.Slices, 3)
	assert.True(t, decimal.NewFromInt(105).Equal(productos.Slices[0].Value))
	assert.True(t, decimal.NewFromInt(30).Equal(productos.Slices[1].Value))
	assert.True(t, decimal.NewFromInt(15).Equal(productos.Slices[2].Value))
}

func TestRefresh_ResultadoObsoletoSeDescarta(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	m := new(APIMock)
	m.On("ListUsers", mock.Anything).Return(users(1), nil).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Once()
	m.On("ListUsers", mock.Anything).Return(users(9), nil).Once()
	m.On("ListProducts", mock.Anything).Return(products(0), nil).Twice()
	agg := dashboard.NewAggregator(m, nil)

	firstDone := make(chan dto.DashboardData)
	go func() {
		data, _ := agg.Refresh(context.Background())
		firstDone <- data
	}()
	// La primera llamada queda bloqueada antes de lanzar la segunda.
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("la primera llamada a ListUsers no llegó")
	}

	second, err := agg.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, second.Usuarios, 9)

	close(release)
	first := <-firstDone
	assert.Len(t, first.Usuarios, 9)
	assert.Len(t, agg.Users(), 9)
	m.AssertExpectations(t)
}

func TestRefresh_NotificaSuscriptores(t *testing.T) {
	m := new(APIMock)
	m.On("ListUsers", mock.Anything).Return(users(2), nil).Twice()
	m.On("ListProducts", mock.Anything).Return(products(3), nil).Twice()
	agg := dashboard.NewAggregator(m, nil)
	var got []dto.Stats
	agg.OnRefresh(func(d dto.DashboardData) { got = append(got, d.Stats) })

	_, err := agg.Refresh(context.Background())
	require.NoError(t, err)
	_, err = agg.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []dto.Stats{
		{TotalUsuarios: 2, TotalProductos: 3},
		{TotalUsuarios: 2, TotalProductos: 3},
	}, got)
	m.AssertExpectations(t)
}

func TestRefresh_SuscriptorDeRefrescoObsoletoNoSeLlama(t *testing.T) {
	installed := make(chan struct{})
	release := make(chan struct{})
	m := new(APIMock)
	m.On("ListUsers", mock.Anything).Return(users(1), nil).Once()
	m.On("ListUsers", mock.Anything).Return(users(9), nil).Once()
	m.On("ListProducts", mock.Anything).Return(products(0), nil).Twice()
	agg := dashboard.NewAggregator(m, nil)

	var calls atomic.Int32
	agg.OnRefresh(func(dto.DashboardData) {
		if calls.Add(1) == 1 {
			// Primer refresco: instalado, avisa y espera a que otro lo supere.
			close(installed)
			<-release
		}
	})
	var (
		mu  sync.Mutex
		got []int
	)
	agg.OnRefresh(func(d dto.DashboardData) {
		mu.Lock()
		got = append(got, d.Stats.TotalUsuarios)
		mu.Unlock()
	})

	firstDone := make(chan struct{})
	go func() {
		_, _ = agg.Refresh(context.Background())
		close(firstDone)
	}()
	<-installed

	second, err := agg.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, second.Usuarios, 9)
	close(release)
	<-firstDone

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{9}, got, "el refresco superado no vuelve a notificar")
	assert.Len(t, agg.Users(), 9)
	m.AssertExpectations(t)
}

func TestRefresh_ContextoCanceladoNoInstala(t *testing.T) {
	m := new(APIMock)
	m.On("ListUsers", mock.Anything).Return(users(2), nil).Maybe()
	m.On("ListProducts", mock.Anything).Return(products(3), nil).Maybe()
	agg := dashboard.NewAggregator(m, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := agg.Refresh(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, agg.Users())
	assert.Equal(t, dto.Stats{}, agg.Data().Stats)
}

func TestRefresh_ContraSandbox(t *testing.T) {
	srv, err := sandbox.Start(sandbox.Config{Seed: true, JWTSecret: "test-secret-key-for-unit-tests"})
	require.NoError(t, err)
	client := api.NewClient(srv.URL(), 2*time.Second, nil)
	agg := dashboard.NewAggregator(client, nil)

	data, err := agg.Refresh(context.Background())
	require.NoError(t, err)
	assert.False(t, data.Fallback)
	assert.Equal(t, 3, data.Stats.TotalUsuarios)
	assert.Equal(t, 4, data.Stats.TotalProductos)

	require.NoError(t, srv.Close())
	data, err = agg.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, data.Fallback)
}
