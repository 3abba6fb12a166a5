package form_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/admin-console/internal/application/form"
	"github.com/jhoicas/admin-console/internal/domain"
)

func TestForm_SetActualizaSoloUnCampo(t *testing.T) {
	f := form.New([]string{"username", "password", "country"})

	require.NoError(t, f.Set("username", "ana"))
	require.NoError(t, f.Set("country", "Perú"))
	require.NoError(t, f.Set("username", "ana2"))

	assert.Equal(t, map[string]string{"username": "ana2", "password": "", "country": "Perú"}, f.Values())
	assert.True(t, f.Dirty())
}

func TestForm_CampoDesconocido(t *testing.T) {
	f := form.New([]string{"username"})
	assert.ErrorIs(t, f.Set("email", "x"), domain.ErrUnknownField)
}

func TestForm_Reset(t *testing.T) {
	f := form.New([]string{"a", "b"})
	_ = f.Set("a", "1")

	f.Reset()

	assert.Equal(t, map[string]string{"a": "", "b": ""}, f.Values())
	assert.False(t, f.Dirty())
}

func TestForm_Missing(t *testing.T) {
	f := form.New([]string{"username", "password", "country"}).Require("username", "password")
	_ = f.Set("password", "x")

	assert.Equal(t, []string{"username"}, f.Missing())
}

func TestForm_ValuesEsUnaCopia(t *testing.T) {
	f := form.New([]string{"a"})
	v := f.Values()
	v["a"] = "mutado"
	assert.Equal(t, "", f.Get("a"))
}
