package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-pos/internal/application/dto"
	"github.com/jhoicas/tienda-pos/internal/application/usecase"
	"github.com/jhoicas/tienda-pos/internal/domain"
	"github.com/jhoicas/tienda-pos/internal/domain/entity"
	"github.com/jhoicas/tienda-pos/pkg/numeric"
)

type fakeProductRepo struct {
	byID    map[string]*entity.Product
	deleted []string
}

func newRepo() *fakeProductRepo { return &fakeProductRepo{byID: map[string]*entity.Product{}} }

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return f.byID[id], nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProductRepo) SoftDelete(_ context.Context, id string) error {
	f.byID[id].Active = false
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeProductRepo) ListActive(context.Context, string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.byID {
		if p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) SearchActive(ctx context.Context, q string) ([]*entity.Product, error) {
	return f.ListActive(ctx, q)
}

func num(s string) numeric.Optional {
	o, _ := numeric.Parse(s)
	return o
}

func TestCreate_CamposVaciosValenCero(t *testing.T) {
	uc := usecase.NewProductUseCase(newRepo(), zerolog.Nop())
	p, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: "  Gorra ", SKU: "  ", Price: num("35")})
	require.NoError(t, err)
	assert.Equal(t, "Gorra", p.Name)
	assert.Nil(t, p.SKU)
	assert.Equal(t, 0, p.Stock)
	assert.True(t, p.Cost.IsZero())
	assert.True(t, p.Price.Equal(decimal.NewFromInt(35)))
	assert.True(t, p.Active)
}

func TestCreate_Validaciones(t *testing.T) {
	uc := usecase.NewProductUseCase(newRepo(), zerolog.Nop())
	_, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: " "})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = uc.Create(context.Background(), dto.CreateProductRequest{Name: "X", Stock: num("1.5")})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = uc.Create(context.Background(), dto.CreateProductRequest{Name: "X", Price: num("-1")})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdate_Parcial(t *testing.T) {
	repo := newRepo()
	uc := usecase.NewProductUseCase(repo, zerolog.Nop())
	p, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: "Gorra", SKU: "G-1", Stock: num("3"), Price: num("35")})
	require.NoError(t, err)

	out, err := uc.Update(context.Background(), p.ID, dto.UpdateProductRequest{Stock: num("10")})
	require.NoError(t, err)
	assert.Equal(t, 10, out.Stock)
	assert.Equal(t, "G-1", *out.SKU)
	assert.True(t, out.Price.Equal(decimal.NewFromInt(35)))

	missing, err := uc.Update(context.Background(), "nope", dto.UpdateProductRequest{})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDelete_EsBajaLogica(t *testing.T) {
	repo := newRepo()
	uc := usecase.NewProductUseCase(repo, zerolog.Nop())
	p, _ := uc.Create(context.Background(), dto.CreateProductRequest{Name: "Gorra"})

	require.NoError(t, uc.Delete(context.Background(), p.ID))
	assert.False(t, repo.byID[p.ID].Active)
	assert.ErrorIs(t, uc.Delete(context.Background(), p.ID), domain.ErrNotFound)

	list, err := uc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}
