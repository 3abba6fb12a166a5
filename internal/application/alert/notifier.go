// Package alert mantiene la única alerta visible de la consola.
package alert

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/admin-console/internal/domain/entity"
	"github.com/jhoicas/admin-console/pkg/clock"
)

// DefaultTTL tiempo que una alerta permanece visible.
const DefaultTTL = 5 * time.Second

// Notifier muestra como máximo una alerta a la vez y la retira tras el TTL.
type Notifier struct {
	sched clock.Scheduler
	ttl   time.Duration
	now   func() time.Time

	mu      sync.Mutex
	current *entity.Alert
	stop    func() bool
}

// NewNotifier construye el notificador. ttl <= 0 usa DefaultTTL.
func NewNotifier(sched clock.Scheduler, ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Notifier{sched: sched, ttl: ttl, now: time.Now}
}

// Notify reemplaza la alerta actual y programa su retirada.
func (n *Notifier) Notify(message string, severity entity.Severity) entity.Alert {
	a := entity.Alert{
		ID:        newID(),
		Message:   message,
		Severity:  severity,
		CreatedAt: n.now(),
	}

	n.mu.Lock()
	if n.stop != nil {
		n.stop()
	}
	n.current = &a
	id := a.ID
	n.stop = n.sched.AfterFunc(n.ttl, func() { n.expire(id) })
	n.mu.Unlock()

	return a
}

// Success atajo para alertas de éxito.
func (n *Notifier) Success(message string) entity.Alert {
	return n.Notify(message, entity.SeveritySuccess)
}

// Error atajo para alertas de error.
func (n *Notifier) Error(message string) entity.Alert {
	return n.Notify(message, entity.SeverityError)
}

// Clear retira la alerta actual inmediatamente.
func (n *Notifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.stop != nil {
		n.stop()
		n.stop = nil
	}
	n.current = nil
}

// Current devuelve la alerta visible, si hay una.
func (n *Notifier) Current() (entity.Alert, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return entity.Alert{}, false
	}
	return *n.current, true
}

// expire solo retira la alerta si sigue siendo la misma que programó el temporizador.
func (n *Notifier) expire(id uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current != nil && n.current.ID == id {
		n.current = nil
		n.stop = nil
	}
}

func newID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
