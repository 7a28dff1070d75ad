// Package redisstore guarda carritos en Redis para que varias instancias de la API compartan la sesión de venta.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/tienda-pos/internal/application/sale"
	"github.com/jhoicas/tienda-pos/internal/domain"
	"github.com/jhoicas/tienda-pos/internal/domain/cart"
)

var _ sale.CartStore = (*CartStore)(nil)

const (
	keyPrefix     = "pos:cart:"
	lockPrefix    = "pos:cart-submit:"
	maxTxAttempts = 5
	// submitLockTTL libera el candado si el proceso muere a mitad de un envío.
	submitLockTTL = 2 * time.Minute
)

// releaseScript borra el candado solo si todavía guarda el token de quien lo tomó.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ErrConcurrentUpdate el carrito cambió en cada intento de Update. Envuelve domain.ErrConflict.
var ErrConcurrentUpdate = fmt.Errorf("redisstore: el carrito cambió durante la actualización: %w", domain.ErrConflict)

// CartStore carritos serializados como JSON, uno por dueño, con vencimiento ttl.
type CartStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCartStore construye el store. ttl <= 0 = sin vencimiento.
func NewCartStore(rdb *redis.Client, ttl time.Duration) *CartStore {
	return &CartStore{rdb: rdb, ttl: ttl}
}

// getter lo común entre *redis.Client y *redis.Tx para leer el carrito.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func cartKey(owner string) string { return keyPrefix + owner }
func lockKey(owner string) string { return lockPrefix + owner }

func decode(data []byte) (*cart.Cart, error) {
	var snap cart.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decodificar carrito: %w", err)
	}
	return cart.Restore(snap), nil
}

func (s *CartStore) load(ctx context.Context, c getter, owner string) (*cart.Cart, error) {
	data, err := c.Get(ctx, cartKey(owner)).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer carrito: %w", err)
	}
	return decode(data)
}

// Load devuelve el carrito del dueño o uno vacío.
func (s *CartStore) Load(ctx context.Context, owner string) (*cart.Cart, error) {
	return s.load(ctx, s.rdb, owner)
}

// Update lee, aplica fn y escribe con WATCH/MULTI. Si otra escritura se cruza, reintenta.
// El candado de envío también se vigila: con un envío en curso devuelve domain.ErrSubmitInProgress.
func (s *CartStore) Update(ctx context.Context, owner string, fn func(c *cart.Cart) error) error {
	key, lock := cartKey(owner), lockKey(owner)
	txf := func(tx *redis.Tx) error {
		busy, err := tx.Exists(ctx, lock).Result()
		if err != nil {
			return fmt.Errorf("consultar candado de envío: %w", err)
		}
		if busy > 0 {
			return domain.ErrSubmitInProgress
		}
		c, err := s.load(ctx, tx, owner)
		if err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
		data, err := json.Marshal(c.Snapshot())
		if err != nil {
			return fmt.Errorf("codificar carrito: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < maxTxAttempts; i++ {
		err := s.rdb.Watch(ctx, txf, key, lock)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return ErrConcurrentUpdate
}

// Delete borra el carrito del dueño.
func (s *CartStore) Delete(ctx context.Context, owner string) error {
	if err := s.rdb.Del(ctx, cartKey(owner)).Err(); err != nil {
		return fmt.Errorf("borrar carrito: %w", err)
	}
	return nil
}

// AcquireSubmit toma el candado de envío con SET NX y guarda un token propio.
func (s *CartStore) AcquireSubmit(ctx context.Context, owner string) (string, bool, error) {
	token := uuid.NewString()
	ok, err := s.rdb.SetNX(ctx, lockKey(owner), token, submitLockTTL).Result()
	if err != nil {
		return "", false, fmt.Errorf("tomar candado de envío: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// ReleaseSubmit libera el candado si sigue guardando token. Un candado vencido y tomado
// por otro envío queda intacto.
func (s *CartStore) ReleaseSubmit(ctx context.Context, owner, token string) error {
	if err := releaseScript.Run(ctx, s.rdb, []string{lockKey(owner)}, token).Err(); err != nil {
		return fmt.Errorf("liberar candado de envío: %w", err)
	}
	return nil
}

// Submitting indica si el candado de envío está tomado.
func (s *CartStore) Submitting(ctx context.Context, owner string) (bool, error) {
	n, err := s.rdb.Exists(ctx, lockKey(owner)).Result()
	if err != nil {
		return false, fmt.Errorf("consultar candado de envío: %w", err)
	}
	return n > 0, nil
}
