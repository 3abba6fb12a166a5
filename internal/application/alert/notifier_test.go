package alert_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/admin-console/internal/application/alert"
	"github.com/jhoicas/admin-console/internal/domain/entity"
	"github.com/jhoicas/admin-console/pkg/clock"
)

func TestNotify_SeRetiraTrasElTTL(t *testing.T) {
	sched := clock.NewManual()
	n := alert.NewNotifier(sched, 5*time.Second)

	n.Success("Usuario creado exitosamente")

	sched.Advance(4999 * time.Millisecond)
	got, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, "Usuario creado exitosamente", got.Message)
	assert.Equal(t, entity.SeveritySuccess, got.Severity)

	sched.Advance(time.Millisecond)
	_, ok = n.Current()
	assert.False(t, ok, "a los 5000 ms la alerta desaparece")
}

func TestNotify_DosSeguidasDejaSoloLaSegunda(t *testing.T) {
	sched := clock.NewManual()
	n := alert.NewNotifier(sched, 5*time.Second)

	first := n.Error("primera")
	sched.Advance(3 * time.Second)
	second := n.Success("segunda")

	assert.NotEqual(t, first.ID, second.ID)
	got, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, second.ID, got.ID)

	// El temporizador de la primera ya venció su ventana original; no debe tocar la segunda.
	sched.Advance(3 * time.Second)
	got, ok = n.Current()
	require.True(t, ok)
	assert.Equal(t, "segunda", got.Message)

	sched.Advance(2 * time.Second)
	_, ok = n.Current()
	assert.False(t, ok)
	assert.Equal(t, 0, sched.Pending())
}

func TestClear_RetiraInmediatamente(t *testing.T) {
	sched := clock.NewManual()
	n := alert.NewNotifier(sched, 0)

	n.Error("fallo")
	n.Clear()

	_, ok := n.Current()
	assert.False(t, ok)
	assert.Equal(t, 0, sched.Pending(), "Clear cancela el temporizador pendiente")
}

func TestNotify_IDsOrdenadosEnElTiempo(t *testing.T) {
	n := alert.NewNotifier(clock.NewManual(), time.Second)

	a := n.Success("a")
	b := n.Success("b")
	assert.Equal(t, 7, int(a.ID.Version()))
	assert.Less(t, a.ID.String(), b.ID.String())
}
