package form

import (
	"sync"

	"github.com/jhoicas/admin-console/internal/domain"
)

// Mode modo de un modal abierto.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Snapshot foto del modal al enviar. Generation identifica la apertura concreta.
type Snapshot struct {
	Mode       Mode
	SelectedID int64
	Values     map[string]string
	Generation uint64
}

// Modal máquina de estados Cerrado → Abierto(create) | Abierto(edit, id) → Cerrado.
// T es el registro del servidor que se edita.
type Modal[T any] struct {
	form  *Form
	load  func(T) map[string]string
	id    func(T) int64
	reqOn map[Mode][]string

	mu       sync.Mutex
	open     bool
	mode     Mode
	selected int64
	gen      uint64
}

// NewModal construye el modal. load convierte un registro en valores de formulario
// (números como texto, opcionales ausentes como ""); id extrae su identificador.
func NewModal[T any](fields []string, load func(T) map[string]string, id func(T) int64) *Modal[T] {
	return &Modal[T]{
		form:  New(fields),
		load:  load,
		id:    id,
		reqOn: make(map[Mode][]string),
	}
}

// RequireOn fija los campos obligatorios para un modo.
func (m *Modal[T]) RequireOn(mode Mode, fields ...string) *Modal[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reqOn[mode] = fields
	return m
}

// OpenCreate abre el modal en modo alta con los campos vacíos.
func (m *Modal[T]) OpenCreate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.form.Reset()
	m.form.Require(m.reqOn[ModeCreate]...)
	m.open, m.mode, m.selected = true, ModeCreate, 0
	m.gen++
}

// OpenEdit abre el modal en modo edición copiando los campos del registro.
func (m *Modal[T]) OpenEdit(rec T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.form.Load(m.load(rec))
	m.form.Require(m.reqOn[ModeEdit]...)
	m.open, m.mode, m.selected = true, ModeEdit, m.id(rec)
	m.gen++
}

// Close cierra el modal y vacía los campos.
func (m *Modal[T]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeLocked()
}

// CloseIf cierra solo si el modal sigue en la apertura gen. Devuelve si cerró.
func (m *Modal[T]) CloseIf(gen uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open || m.gen != gen {
		return false
	}
	m.closeLocked()
	return true
}

func (m *Modal[T]) closeLocked() {
	m.open, m.mode, m.selected = false, "", 0
	m.form.Reset()
	m.gen++
}

// Set actualiza un campo del modal abierto.
func (m *Modal[T]) Set(name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open {
		return domain.ErrModalClosed
	}
	return m.form.Set(name, value)
}

// Snapshot devuelve el estado a enviar; ErrModalClosed si está cerrado.
func (m *Modal[T]) Snapshot() (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open {
		return Snapshot{}, domain.ErrModalClosed
	}
	return Snapshot{
		Mode:       m.mode,
		SelectedID: m.selected,
		Values:     m.form.Values(),
		Generation: m.gen,
	}, nil
}

// IsOpen indica si el modal está abierto.
func (m *Modal[T]) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// Mode modo actual ("" si está cerrado).
func (m *Modal[T]) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// SelectedID id del registro en edición (0 en alta o cerrado).
func (m *Modal[T]) SelectedID() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selected
}

// Form formulario subyacente (lectura de campos y obligatorios).
func (m *Modal[T]) Form() *Form {
	return m.form
}
