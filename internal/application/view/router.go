// Package view decide qué pantalla se muestra.
package view

import (
	"fmt"
	"sync"

	"github.com/jhoicas/admin-console/internal/domain"
)

// Section sección activa dentro del área autenticada.
type Section string

const (
	SectionDashboard Section = "dashboard"
	SectionProductos Section = "productos"
	SectionUsuarios  Section = "usuarios"
)

// Sections orden en el que se listan en la navegación.
var Sections = []Section{SectionDashboard, SectionProductos, SectionUsuarios}

// ParseSection valida el nombre de una sección.
func ParseSection(s string) (Section, error) {
	for _, sec := range Sections {
		if string(sec) == s {
			return sec, nil
		}
	}
	return "", fmt.Errorf("sección %q: %w", s, domain.ErrInvalidInput)
}

// Screen pantalla que debe renderizarse.
type Screen string

const (
	ScreenAuth      Screen = "auth"
	ScreenDashboard Screen = "dashboard"
	ScreenProductos Screen = "productos"
	ScreenUsuarios  Screen = "usuarios"
)

// Router booleano de sesión más sección activa, y el modo del formulario de acceso.
type Router struct {
	mu            sync.RWMutex
	authenticated bool
	section       Section
	loginMode     bool
}

// NewRouter arranca sin sesión, en modo login y con el dashboard como sección.
func NewRouter() *Router {
	return &Router{section: SectionDashboard, loginMode: true}
}

func (r *Router) Authenticated() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.authenticated
}

// SetAuthenticated al cerrar sesión la sección vuelve al dashboard.
func (r *Router) SetAuthenticated(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.authenticated = v
	if !v {
		r.section = SectionDashboard
	}
}

func (r *Router) Section() Section {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.section
}

func (r *Router) SetSection(s Section) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.section = s
}

// LoginMode true en login, false en registro.
func (r *Router) LoginMode() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loginMode
}

func (r *Router) SetLoginMode(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loginMode = v
}

// ToggleMode alterna login/registro y devuelve el nuevo modo.
func (r *Router) ToggleMode() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loginMode = !r.loginMode
	return r.loginMode
}

func (r *Router) Screen() Screen {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.authenticated {
		return ScreenAuth
	}
	switch r.section {
	case SectionProductos:
		return ScreenProductos
	case SectionUsuarios:
		return ScreenUsuarios
	default:
		return ScreenDashboard
	}
}
