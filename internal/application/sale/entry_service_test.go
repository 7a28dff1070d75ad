package sale_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-pos/internal/application/dto"
	"github.com/jhoicas/tienda-pos/internal/application/sale"
	"github.com/jhoicas/tienda-pos/internal/domain"
	"github.com/jhoicas/tienda-pos/internal/infrastructure/memstore"
	"github.com/jhoicas/tienda-pos/pkg/numeric"
)

const owner = "user-1"

func newService(creator *fakeCreator) (*sale.EntryService, *memstore.CartStore) {
	store := memstore.NewCartStore(time.Hour)
	return sale.NewEntryService(catalogWith(), creator, store, zerolog.Nop()), store
}

func TestEntryService_FlujoCompleto(t *testing.T) {
	ctx := context.Background()
	creator := &fakeCreator{id: "sale-9"}
	svc, _ := newService(creator)

	_, err := svc.AddItem(ctx, owner, "1")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, owner, "1")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, owner, "2")
	require.NoError(t, err)
	c, err := svc.SetDeduction(ctx, owner, numeric.Of(dec("5")))
	require.NoError(t, err)

	assert.True(t, c.Subtotal.Equal(dec("155")))
	assert.True(t, c.Total.Equal(dec("150")))

	c, err = svc.UpdateQuantity(ctx, owner, "2", 99)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Lines[1].Quantity, "ajustado al stock")

	c, err = svc.RemoveItem(ctx, owner, "2")
	require.NoError(t, err)
	assert.Len(t, c.Lines, 1)

	out, err := svc.Submit(ctx, owner, dto.SubmitSaleRequest{CustomerName: "Luis"})
	require.NoError(t, err)
	assert.Equal(t, "sale-9", out.SaleID)

	c, err = svc.Cart(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, c.Lines)
}

func TestEntryService_ProductoInexistente(t *testing.T) {
	svc, _ := newService(&fakeCreator{})
	_, err := svc.AddItem(context.Background(), owner, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEntryService_SubmitFallidoConservaCarritoYLiberaCandado(t *testing.T) {
	ctx := context.Background()
	creator := &fakeCreator{err: &domain.RemoteError{Message: "stock insuficiente"}}
	svc, store := newService(creator)
	_, _ = svc.AddItem(ctx, owner, "3")

	_, err := svc.Submit(ctx, owner, dto.SubmitSaleRequest{CustomerName: "Ana"})
	assert.ErrorIs(t, err, domain.ErrRemote)

	c, _ := svc.Cart(ctx, owner)
	assert.Len(t, c.Lines, 1)
	busy, _ := store.Submitting(ctx, owner)
	assert.False(t, busy)
}

func TestEntryService_EnvioEnCursoBloqueaCambios(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(&fakeCreator{})
	_, _ = svc.AddItem(ctx, owner, "3")

	_, ok, err := store.AcquireSubmit(ctx, owner)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = svc.Submit(ctx, owner, dto.SubmitSaleRequest{CustomerName: "Ana"})
	assert.ErrorIs(t, err, domain.ErrSubmitInProgress)
	_, err = svc.AddItem(ctx, owner, "3")
	assert.ErrorIs(t, err, domain.ErrSubmitInProgress)
	err = svc.Discard(ctx, owner)
	assert.ErrorIs(t, err, domain.ErrSubmitInProgress)

	c, _ := svc.Cart(ctx, owner)
	assert.Len(t, c.Lines, 1, "el carrito no cambia mientras se envía")
}

// ─── Cambios durante un envío real ───────────────────────────────────────────

func TestEntryService_CambioDuranteEnvioSeRechazaYNoSePierde(t *testing.T) {
	ctx := context.Background()
	creator := &fakeCreator{id: "sale-1", gate: make(chan struct{}), entered: make(chan struct{}, 1)}
	svc, _ := newService(creator)
	_, err := svc.AddItem(ctx, owner, "1")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(ctx, owner, dto.SubmitSaleRequest{CustomerName: "Ana"})
		done <- err
	}()
	<-creator.entered

	_, err = svc.AddItem(ctx, owner, "3")
	assert.ErrorIs(t, err, domain.ErrSubmitInProgress)
	_, err = svc.SetDeduction(ctx, owner, numeric.Of(dec("5")))
	assert.ErrorIs(t, err, domain.ErrSubmitInProgress)

	close(creator.gate)
	require.NoError(t, <-done)

	reqs := creator.Requests()
	require.Len(t, reqs, 1)
	assert.Len(t, reqs[0].Items, 1, "la venta lleva solo lo que había al enviar")

	c, err := svc.Cart(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, c.Lines)

	_, err = svc.AddItem(ctx, owner, "3")
	assert.NoError(t, err, "terminado el envío se puede volver a editar")
}

func TestEntryService_Discard(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(&fakeCreator{})
	_, _ = svc.AddItem(ctx, owner, "3")
	require.NoError(t, svc.Discard(ctx, owner))
	c, _ := svc.Cart(ctx, owner)
	assert.Empty(t, c.Lines)
}

func TestEntryService_Products(t *testing.T) {
	svc, _ := newService(&fakeCreator{})
	items, err := svc.Products(context.Background(), "  camisa ")
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
