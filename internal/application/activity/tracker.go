// Package activity registra las operaciones remotas en curso. Cada operación
// tiene su propia entrada, así dos operaciones solapadas no se pisan el indicador.
package activity

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Tracker conjunto de operaciones en vuelo.
type Tracker struct {
	mu       sync.Mutex
	inflight map[uuid.UUID]string
}

// NewTracker construye un Tracker vacío.
func NewTracker() *Tracker {
	return &Tracker{inflight: make(map[uuid.UUID]string)}
}

// Begin registra una operación y devuelve la función que la da por terminada.
// Llamar a done más de una vez no tiene efecto.
func (t *Tracker) Begin(op string) (done func()) {
	id := uuid.New()
	t.mu.Lock()
	t.inflight[id] = op
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.inflight, id)
			t.mu.Unlock()
		})
	}
}

// Loading indica si hay alguna operación en curso.
func (t *Tracker) Loading() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.inflight) > 0
}

// Active nombres de las operaciones en curso, ordenados.
func (t *Tracker) Active() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, 0, len(t.inflight))
	for _, op := range t.inflight {
		out = append(out, op)
	}
	sort.Strings(out)
	return out
}
