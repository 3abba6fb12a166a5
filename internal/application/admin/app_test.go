package admin_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/admin-console/internal/application/admin"
	"github.com/jhoicas/admin-console/internal/application/dto"
	"github.com/jhoicas/admin-console/internal/application/view"
	"github.com/jhoicas/admin-console/internal/infrastructure/api"
	"github.com/jhoicas/admin-console/internal/sandbox"
	"github.com/jhoicas/admin-console/pkg/clock"
	"github.com/jhoicas/admin-console/pkg/config"
)

type ReportMock struct{ mock.Mock }

func (m *ReportMock) RenderDashboard(ctx context.Context, data dto.DashboardData) ([]byte, error) {
	args := m.Called(ctx, data)
	raw, _ := args.Get(0).([]byte)
	return raw, args.Error(1)
}

func testConfig(dir string) *config.Config {
	return &config.Config{
		UI: config.UIConfig{PageSize: 2, AlertTTLMs: 5000, LoginDelayMs: 1000, RegisterDelayMs: 2000, ReportDir: dir},
	}
}

func newApp(t *testing.T, report *ReportMock) (*admin.App, *clock.Manual) {
	t.Helper()
	srv, err := sandbox.Start(sandbox.Config{Seed: true, JWTSecret: "test-secret-key-for-unit-tests"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })

	clk := clock.NewManual()
	opts := admin.Options{API: api.NewClient(srv.URL(), 5*time.Second, nil), Scheduler: clk}
	if report != nil {
		opts.Report = report
	}
	return admin.New(testConfig(t.TempDir()), opts), clk
}

func TestApp_LoginCargaDashboardYPaneles(t *testing.T) {
	app, clk := newApp(t, nil)
	require.NoError(t, app.Auth.Set(dto.FieldUsername, "admin"))
	require.NoError(t, app.Auth.Set(dto.FieldPassword, "admin123"))

	require.NoError(t, app.Auth.Submit(context.Background()))
	clk.Advance(time.Second)

	assert.Equal(t, view.ScreenDashboard, app.Router.Screen())
	assert.Equal(t, 3, app.Dashboard.Data().Stats.TotalUsuarios)
	assert.Len(t, app.Users.Page(), 2)
	assert.Equal(t, 2, app.Products.TotalPages())

	// El TTL configurado se aplica a las alertas.
	app.Alerts.Success("hola")
	clk.Advance(5 * time.Second)
	_, ok := app.Alerts.Current()
	assert.False(t, ok)
}

func TestApp_ExportReport(t *testing.T) {
	report := new(ReportMock)
	app, _ := newApp(t, report)
	_, err := app.Dashboard.Refresh(context.Background())
	require.NoError(t, err)
	report.On("RenderDashboard", mock.Anything, mock.MatchedBy(func(d dto.DashboardData) bool {
		return d.Stats.TotalProductos == 4
	})).Return([]byte("%PDF-1.3 prueba"), nil).Once()

	path, err := app.ExportReport(context.Background(), "dashboard.pdf")
	require.NoError(t, err)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3 prueba", string(raw))
	assert.Equal(t, "dashboard.pdf", filepath.Base(path))
	report.AssertExpectations(t)
}

func TestApp_ExportReportErrores(t *testing.T) {
	app, _ := newApp(t, nil)
	_, err := app.ExportReport(context.Background(), "x.pdf")
	assert.ErrorIs(t, err, admin.ErrNoReport)

	boom := errors.New("boom")
	report := new(ReportMock)
	report.On("RenderDashboard", mock.Anything, mock.Anything).Return(nil, boom).Once()
	app, _ = newApp(t, report)
	_, err = app.ExportReport(context.Background(), "x.pdf")
	assert.ErrorIs(t, err, boom)
	assert.False(t, app.Activity.Loading())
	report.AssertExpectations(t)
}
