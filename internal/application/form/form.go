// Package form contiene el estado de los formularios (acceso, modal de usuario,
// modal de producto) y la máquina de estados de los modales de alta/edición.
package form

import (
	"fmt"
	"sync"

	"github.com/jhoicas/admin-console/internal/domain"
)

// Form valores de texto de un conjunto fijo de campos.
type Form struct {
	mu       sync.RWMutex
	fields   []string
	required map[string]bool
	values   map[string]string
	dirty    bool
}

// New construye un formulario vacío con los campos indicados.
func New(fields []string) *Form {
	f := &Form{
		fields:   append([]string(nil), fields...),
		required: make(map[string]bool),
		values:   make(map[string]string, len(fields)),
	}
	for _, name := range fields {
		f.values[name] = ""
	}
	return f
}

// Require marca campos como obligatorios para Missing. Devuelve el propio formulario.
func (f *Form) Require(names ...string) *Form {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.required = make(map[string]bool, len(names))
	for _, name := range names {
		f.required[name] = true
	}
	return f
}

// Fields nombres de los campos en orden de declaración.
func (f *Form) Fields() []string {
	return append([]string(nil), f.fields...)
}

// Set actualiza un único campo; el resto no cambia.
func (f *Form) Set(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.values[name]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownField, name)
	}
	f.values[name] = value
	f.dirty = true
	return nil
}

// Get valor actual de un campo ("" si no existe).
func (f *Form) Get(name string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.values[name]
}

// Values copia de todos los valores.
func (f *Form) Values() map[string]string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Load reemplaza los valores de los campos conocidos; los ausentes quedan vacíos.
func (f *Form) Load(values map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, name := range f.fields {
		f.values[name] = values[name]
	}
	f.dirty = false
}

// Reset vuelve a la configuración inicial (todos los campos vacíos).
func (f *Form) Reset() {
	f.Load(nil)
}

// Dirty indica si hubo cambios desde el último Reset/Load.
func (f *Form) Dirty() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.dirty
}

// Missing campos obligatorios vacíos, en orden de declaración.
func (f *Form) Missing() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []string
	for _, name := range f.fields {
		if f.required[name] && f.values[name] == "" {
			out = append(out, name)
		}
	}
	return out
}
