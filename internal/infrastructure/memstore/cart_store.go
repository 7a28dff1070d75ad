// Package memstore guarda carritos en memoria del proceso. Sirve para una sola instancia de la API;
// con varias instancias usar redisstore.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-pos/internal/application/sale"
	"github.com/jhoicas/tienda-pos/internal/domain"
	"github.com/jhoicas/tienda-pos/internal/domain/cart"
)

var _ sale.CartStore = (*CartStore)(nil)

type entry struct {
	snap    cart.Snapshot
	expires time.Time
}

// CartStore carritos por dueño protegidos por un mutex. Los carritos sin uso vencen tras ttl.
type CartStore struct {
	ttl time.Duration
	now func() time.Time

	mu         sync.Mutex
	carts      map[string]entry
	submitting map[string]string // dueño -> token del envío en curso
}

// NewCartStore construye el store. ttl <= 0 = sin vencimiento.
func NewCartStore(ttl time.Duration) *CartStore {
	return &CartStore{
		ttl:        ttl,
		now:        time.Now,
		carts:      map[string]entry{},
		submitting: map[string]string{},
	}
}

func (s *CartStore) loadLocked(owner string) *cart.Cart {
	e, ok := s.carts[owner]
	if !ok {
		return cart.New()
	}
	if s.ttl > 0 && s.now().After(e.expires) {
		delete(s.carts, owner)
		return cart.New()
	}
	return cart.Restore(e.snap)
}

// Load devuelve una copia del carrito del dueño.
func (s *CartStore) Load(_ context.Context, owner string) (*cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(owner), nil
}

// Update aplica fn bajo el candado y guarda solo si fn tuvo éxito.
// Con un envío en curso devuelve domain.ErrSubmitInProgress sin tocar el carrito.
func (s *CartStore) Update(_ context.Context, owner string, fn func(c *cart.Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.submitting[owner]; busy {
		return domain.ErrSubmitInProgress
	}
	c := s.loadLocked(owner)
	if err := fn(c); err != nil {
		return err
	}
	s.carts[owner] = entry{snap: c.Snapshot(), expires: s.now().Add(s.ttl)}
	return nil
}

// Delete borra el carrito del dueño.
func (s *CartStore) Delete(_ context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, owner)
	return nil
}

// AcquireSubmit marca un envío en curso y devuelve su token; false si ya había uno.
func (s *CartStore) AcquireSubmit(_ context.Context, owner string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.submitting[owner]; busy {
		return "", false, nil
	}
	token := uuid.NewString()
	s.submitting[owner] = token
	return token, true, nil
}

// ReleaseSubmit libera el envío en curso si token sigue siendo su dueño.
func (s *CartStore) ReleaseSubmit(_ context.Context, owner, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting[owner] == token {
		delete(s.submitting, owner)
	}
	return nil
}

// Submitting indica si hay un envío en curso.
func (s *CartStore) Submitting(_ context.Context, owner string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, busy := s.submitting[owner]
	return busy, nil
}
