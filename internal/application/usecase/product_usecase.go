package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-pos/internal/application/dto"
	"github.com/jhoicas/tienda-pos/internal/domain"
	"github.com/jhoicas/tienda-pos/internal/domain/entity"
	"github.com/jhoicas/tienda-pos/internal/domain/repository"
	"github.com/jhoicas/tienda-pos/pkg/numeric"
)

// ProductUseCase casos de uso del inventario. El stock se descuenta al vender; aquí solo se corrige a mano.
type ProductUseCase struct {
	repo repository.ProductRepository
	log  zerolog.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, log zerolog.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, log: log.With().Str("component", "inventory").Logger()}
}

// Create crea un producto activo. Stock, costo y precio vacíos valen 0.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "el nombre es obligatorio")
	}
	stock, err := stockOf(in.Stock, 0)
	if err != nil {
		return nil, err
	}
	cost, err := moneyOf("cost", in.Cost, decimal.Zero)
	if err != nil {
		return nil, err
	}
	price, err := moneyOf("price", in.Price, decimal.Zero)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      name,
		SKU:       skuOf(in.SKU),
		Stock:     stock,
		Cost:      cost,
		Price:     price,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update aplica los campos presentes. Devuelve nil, nil si el producto no existe.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("name", "el nombre es obligatorio")
		}
		product.Name = name
	}
	if in.SKU != nil {
		product.SKU = skuOf(*in.SKU)
	}
	if product.Stock, err = stockOf(in.Stock, product.Stock); err != nil {
		return nil, err
	}
	if product.Cost, err = moneyOf("cost", in.Cost, product.Cost); err != nil {
		return nil, err
	}
	if product.Price, err = moneyOf("price", in.Price, product.Price); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List productos activos, más recientes primero; q filtra por nombre o SKU.
func (uc *ProductUseCase) List(ctx context.Context, q string) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListActive(ctx, strings.TrimSpace(q))
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// Delete desactiva el producto. Las ventas que lo incluyen se conservan.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil || !product.Active {
		return domain.ErrNotFound
	}
	if err := uc.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("product_id", id).Str("name", product.Name).Msg("producto desactivado")
	return nil
}

func skuOf(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func stockOf(o numeric.Optional, def int) (int, error) {
	n, err := o.IntOr(def)
	if err != nil {
		return 0, domain.NewValidationError("stock", err.Error())
	}
	if n < 0 {
		return 0, domain.NewValidationError("stock", "el stock no puede ser negativo")
	}
	return n, nil
}

func moneyOf(field string, o numeric.Optional, def decimal.Decimal) (decimal.Decimal, error) {
	if o.IsNegative() {
		return decimal.Zero, domain.NewValidationError(field, fmt.Sprintf("%s no puede ser negativo", field))
	}
	return o.Or(def), nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		SKU:       p.SKU,
		Stock:     p.Stock,
		Cost:      p.Cost,
		Price:     p.Price,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
