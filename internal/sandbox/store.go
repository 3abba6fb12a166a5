package sandbox

import (
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/admin-console/internal/application/dto"
	"github.com/jhoicas/admin-console/internal/domain"
	"github.com/jhoicas/admin-console/internal/domain/entity"
)

// storedUser usuario con su hash bcrypt; el hash nunca sale del store.
type storedUser struct {
	user entity.User
	hash []byte
}

// store repositorio en memoria de usuarios y productos.
type store struct {
	mu       sync.RWMutex
	users    map[int64]*storedUser
	products map[int64]entity.Product
	nextUser int64
	nextProd int64
	hashCost int
}

func newStore(hashCost int) *store {
	return &store{
		users:    make(map[int64]*storedUser),
		products: make(map[int64]entity.Product),
		hashCost: hashCost,
	}
}

func (s *store) listUsers() []entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *store) findByUsername(username string) (*storedUser, bool) {
	for _, u := range s.users {
		if strings.EqualFold(u.user.Username, username) {
			return u, true
		}
	}
	return nil, false
}

// createUser devuelve domain.ErrInvalidInput si el username ya existe.
func (s *store) createUser(in dto.UserPayload) (entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return entity.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.findByUsername(in.Username); exists {
		return entity.User{}, domain.ErrInvalidInput
	}
	s.nextUser++
	u := entity.User{
		ID:        s.nextUser,
		Username:  in.Username,
		Firstname: in.Firstname,
		Lastname:  in.Lastname,
		Country:   in.Country,
	}
	s.users[u.ID] = &storedUser{user: u, hash: hash}
	return u, nil
}

// updateUser conserva la contraseña si in.Password está vacío.
func (s *store) updateUser(id int64, in dto.UserPayload) (entity.User, error) {
	var hash []byte
	if in.Password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
		if err != nil {
			return entity.User{}, err
		}
		hash = h
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.users[id]
	if !ok {
		return entity.User{}, domain.ErrNotFound
	}
	if other, exists := s.findByUsername(in.Username); exists && other.user.ID != id {
		return entity.User{}, domain.ErrInvalidInput
	}
	cur.user.Username = in.Username
	cur.user.Firstname = in.Firstname
	cur.user.Lastname = in.Lastname
	cur.user.Country = in.Country
	if hash != nil {
		cur.hash = hash
	}
	return cur.user, nil
}

func (s *store) deleteUser(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

// authenticate compara la contraseña con el hash bcrypt.
func (s *store) authenticate(username, password string) (entity.User, bool) {
	s.mu.RLock()
	u, ok := s.findByUsername(username)
	var (
		user entity.User
		hash []byte
	)
	if ok {
		user, hash = u.user, u.hash
	}
	s.mu.RUnlock()
	if !ok {
		return entity.User{}, false
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return entity.User{}, false
	}
	return user, true
}

func (s *store) listProducts() []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *store) createProduct(in dto.ProductPayload) entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextProd++
	p := productFromPayload(s.nextProd, in)
	s.products[p.ID] = p
	return p
}

func (s *store) updateProduct(id int64, in dto.ProductPayload) (entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return entity.Product{}, domain.ErrNotFound
	}
	p := productFromPayload(id, in)
	s.products[id] = p
	return p, nil
}

func (s *store) deleteProduct(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func productFromPayload(id int64, in dto.ProductPayload) entity.Product {
	return entity.Product{
		ID:          id,
		Nombre:      in.Nombre,
		Categoria:   in.Categoria,
		Precio:      decimal.NewFromFloat(in.Precio),
		Stock:       in.Stock,
		Descripcion: in.Descripcion,
	}
}
