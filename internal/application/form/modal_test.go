package form_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/admin-console/internal/application/form"
	"github.com/jhoicas/admin-console/internal/domain"
)

type item struct {
	ID     int64
	Nombre string
	Stock  int
	Nota   *string
}

func newItemModal() *form.Modal[item] {
	return form.NewModal([]string{"nombre", "stock", "nota"},
		func(it item) map[string]string {
			nota := ""
			if it.Nota != nil {
				nota = *it.Nota
			}
			return map[string]string{"nombre": it.Nombre, "stock": strconv.Itoa(it.Stock), "nota": nota}
		},
		func(it item) int64 { return it.ID },
	).RequireOn(form.ModeCreate, "nombre", "stock")
}

func TestModal_EstadosYTransiciones(t *testing.T) {
	m := newItemModal()
	assert.False(t, m.IsOpen())
	_, err := m.Snapshot()
	assert.ErrorIs(t, err, domain.ErrModalClosed)
	assert.ErrorIs(t, m.Set("nombre", "x"), domain.ErrModalClosed)

	m.OpenCreate()
	assert.True(t, m.IsOpen())
	assert.Equal(t, form.ModeCreate, m.Mode())
	assert.Equal(t, []string{"nombre", "stock"}, m.Form().Missing())

	m.Close()
	m.OpenEdit(item{ID: 9, Nombre: "Tornillo", Stock: 40})
	snap, err := m.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, form.ModeEdit, snap.Mode)
	assert.Equal(t, int64(9), snap.SelectedID)
	assert.Equal(t, map[string]string{"nombre": "Tornillo", "stock": "40", "nota": ""}, snap.Values)

	m.Close()
	assert.False(t, m.IsOpen())
	assert.Equal(t, int64(0), m.SelectedID())
	assert.Equal(t, "", m.Form().Get("nombre"))
}

func TestModal_OpenCreateVaciaLosCampos(t *testing.T) {
	m := newItemModal()
	m.OpenEdit(item{ID: 1, Nombre: "A", Stock: 1})
	m.OpenCreate()

	assert.Equal(t, map[string]string{"nombre": "", "stock": "", "nota": ""}, m.Form().Values())
	assert.Equal(t, int64(0), m.SelectedID())
}

func TestModal_CloseIfIgnoraAperturasPosteriores(t *testing.T) {
	m := newItemModal()
	m.OpenCreate()
	snap, err := m.Snapshot()
	require.NoError(t, err)

	// El usuario cierra y abre otro modal mientras la petición sigue en vuelo.
	m.Close()
	m.OpenEdit(item{ID: 2, Nombre: "B"})

	assert.False(t, m.CloseIf(snap.Generation), "una respuesta tardía no cierra el modal nuevo")
	assert.True(t, m.IsOpen())

	current, _ := m.Snapshot()
	assert.True(t, m.CloseIf(current.Generation))
	assert.False(t, m.IsOpen())
}
