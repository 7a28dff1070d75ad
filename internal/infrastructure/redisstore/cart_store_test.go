package redisstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-pos/internal/domain"
	"github.com/jhoicas/tienda-pos/internal/domain/cart"
	"github.com/jhoicas/tienda-pos/internal/domain/entity"
	"github.com/jhoicas/tienda-pos/internal/infrastructure/redisstore"
	"github.com/jhoicas/tienda-pos/pkg/numeric"
)

func newStore(t *testing.T, ttl time.Duration) (*redisstore.CartStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return redisstore.NewCartStore(rdb, ttl), mr
}

var camisa = &entity.Product{ID: "p1", Name: "Camisa", Stock: 2, Price: decimal.RequireFromString("50.00"), Active: true}

func addCamisa(c *cart.Cart) error {
	_, err := c.Add(camisa)
	return err
}

func TestUpdate_PersisteCarritoYDescuento(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t, time.Hour)

	require.NoError(t, s.Update(ctx, "u1", addCamisa))
	require.NoError(t, s.Update(ctx, "u1", func(c *cart.Cart) error {
		return c.SetDeduction(numeric.Of(decimal.NewFromInt(5)))
	}))

	c, err := s.Load(ctx, "u1")
	require.NoError(t, err)
	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "Camisa", lines[0].Name)
	assert.True(t, lines[0].UnitPrice.Equal(decimal.RequireFromString("50")))
	assert.True(t, c.Totals().Total.Equal(decimal.NewFromInt(45)))
}

func TestUpdate_ErrorNoGuarda(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t, time.Hour)
	require.NoError(t, s.Update(ctx, "u1", addCamisa))
	require.NoError(t, s.Update(ctx, "u1", addCamisa))

	err := s.Update(ctx, "u1", addCamisa)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	c, _ := s.Load(ctx, "u1")
	line, _ := c.Line("p1")
	assert.Equal(t, 2, line.Quantity)
}

func TestCarritoVence(t *testing.T) {
	ctx := context.Background()
	s, mr := newStore(t, time.Minute)
	require.NoError(t, s.Update(ctx, "u1", addCamisa))

	mr.FastForward(2 * time.Minute)
	c, err := s.Load(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestCandadoDeEnvio(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t, time.Hour)

	token, ok, err := s.AcquireSubmit(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, token)

	_, ok, err = s.AcquireSubmit(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	busy, err := s.Submitting(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, busy)

	require.NoError(t, s.ReleaseSubmit(ctx, "u1", token))
	busy, _ = s.Submitting(ctx, "u1")
	assert.False(t, busy)
}

// ─── Candado vencido: el token viejo no libera el candado nuevo ──────────────

func TestCandadoVencido_TokenViejoNoLiberaElNuevo(t *testing.T) {
	ctx := context.Background()
	s, mr := newStore(t, time.Hour)

	viejo, ok, err := s.AcquireSubmit(ctx, "u1")
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(3 * time.Minute)
	nuevo, ok, err := s.AcquireSubmit(ctx, "u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEqual(t, viejo, nuevo)

	require.NoError(t, s.ReleaseSubmit(ctx, "u1", viejo))
	busy, err := s.Submitting(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, busy, "el envío vigente conserva su candado")

	require.NoError(t, s.ReleaseSubmit(ctx, "u1", nuevo))
	busy, _ = s.Submitting(ctx, "u1")
	assert.False(t, busy)
}

// ─── Update con envío en curso ───────────────────────────────────────────────

func TestUpdate_RechazadoConEnvioEnCurso(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t, time.Hour)
	require.NoError(t, s.Update(ctx, "u1", addCamisa))

	token, ok, err := s.AcquireSubmit(ctx, "u1")
	require.NoError(t, err)
	require.True(t, ok)

	called := false
	err = s.Update(ctx, "u1", func(c *cart.Cart) error {
		called = true
		return addCamisa(c)
	})
	assert.ErrorIs(t, err, domain.ErrSubmitInProgress)
	assert.False(t, called)

	c, _ := s.Load(ctx, "u1")
	line, _ := c.Line("p1")
	assert.Equal(t, 1, line.Quantity)

	require.NoError(t, s.ReleaseSubmit(ctx, "u1", token))
	require.NoError(t, s.Update(ctx, "u1", addCamisa))
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t, time.Hour)
	require.NoError(t, s.Update(ctx, "u1", addCamisa))
	require.NoError(t, s.Delete(ctx, "u1"))
	c, _ := s.Load(ctx, "u1")
	assert.True(t, c.IsEmpty())
}
