// Package pagination divide listas en memoria en páginas de tamaño fijo.
package pagination

import "sync"

// DefaultPageSize elementos por página de la consola.
const DefaultPageSize = 10

// Paginate devuelve el tramo [(page-1)*size, page*size) acotado a la lista.
// Si el inicio queda fuera de rango, o page/size no son positivos, devuelve un slice vacío.
func Paginate[T any](list []T, page, size int) []T {
	if page < 1 || size < 1 || page > TotalPages(len(list), size) {
		return []T{}
	}
	start := (page - 1) * size
	end := len(list)
	if end-start > size {
		end = start + size
	}
	return list[start:end:end]
}

// TotalPages devuelve ceil(count/size); 0 si no hay elementos.
func TotalPages(count, size int) int {
	if count <= 0 || size <= 0 {
		return 0
	}
	return (count-1)/size + 1
}

// Pager página actual de una lista. Seguro para uso concurrente.
type Pager struct {
	mu   sync.Mutex
	page int
	size int
}

// NewPager construye un Pager en la página 1. size <= 0 usa DefaultPageSize.
func NewPager(size int) *Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Pager{page: 1, size: size}
}

// Page página actual (>= 1).
func (p *Pager) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

// Size elementos por página.
func (p *Pager) Size() int {
	return p.size
}

// Go salta a la página n acotada a [1, totalPages(total)].
func (p *Pager) Go(n, total int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.page = clamp(n, TotalPages(total, p.size))
	return p.page
}

// Next avanza una página sin pasar de la última.
func (p *Pager) Next(total int) int {
	return p.Go(p.Page()+1, total)
}

// Prev retrocede una página sin bajar de 1.
func (p *Pager) Prev(total int) int {
	return p.Go(p.Page()-1, total)
}

// Clamp recalcula min(page, totalPages) tras un refresco de datos.
func (p *Pager) Clamp(total int) int {
	return p.Go(p.Page(), total)
}

func clamp(n, pages int) int {
	if n > pages {
		n = pages
	}
	if n < 1 {
		n = 1
	}
	return n
}
