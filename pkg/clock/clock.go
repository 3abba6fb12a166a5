// Package clock abstrae los temporizadores diferidos (auto-cierre de alertas,
// transiciones tras login/registro) para poder controlarlos en los tests.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Scheduler programa la ejecución diferida de una función.
// La función stop devuelta cancela la ejecución si aún no ocurrió.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (stop func() bool)
}

// Real usa time.AfterFunc; las funciones corren en su propia goroutine.
type Real struct{}

// AfterFunc implementa Scheduler.
func (Real) AfterFunc(d time.Duration, f func()) func() bool {
	t := time.AfterFunc(d, f)
	return t.Stop
}

// Manual es un Scheduler de tiempo virtual: nada se ejecuta hasta Advance.
// Las funciones vencidas corren de forma síncrona en la goroutine que llama a Advance.
type Manual struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers map[int]*manualTimer
}

type manualTimer struct {
	id  int
	at  time.Duration
	run func()
}

// NewManual construye un Scheduler manual en el instante cero.
func NewManual() *Manual {
	return &Manual{timers: make(map[int]*manualTimer)}
}

// AfterFunc implementa Scheduler.
func (m *Manual) AfterFunc(d time.Duration, f func()) func() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	id := m.seq
	m.timers[id] = &manualTimer{id: id, at: m.now + d, run: f}
	return func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.timers[id]; !ok {
			return false
		}
		delete(m.timers, id)
		return true
	}
}

// Advance avanza el tiempo virtual y ejecuta, en orden, los temporizadores vencidos.
// Un temporizador programado por otro durante el avance también se ejecuta si vence dentro de la ventana.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDue(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		delete(m.timers, next.id)
		m.now = next.at
		m.mu.Unlock()

		next.run()
	}
}

// Pending devuelve cuántos temporizadores siguen programados.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

func (m *Manual) nextDue(target time.Duration) *manualTimer {
	due := make([]*manualTimer, 0, len(m.timers))
	for _, t := range m.timers {
		if t.at <= target {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at == due[j].at {
			return due[i].id < due[j].id
		}
		return due[i].at < due[j].at
	})
	return due[0]
}
