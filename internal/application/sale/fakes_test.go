package sale_test

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-pos/internal/domain"
	"github.com/jhoicas/tienda-pos/internal/domain/entity"
	"github.com/jhoicas/tienda-pos/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de puertos
// ──────────────────────────────────────────────────────────────────────────────

type fakeCatalog struct {
	mu       sync.Mutex
	products []*entity.Product
	calls    []string
	// block, si no es nil, hace que SearchActive espere hasta cerrarse o hasta que se cancele ctx.
	block chan struct{}
}

func (f *fakeCatalog) SearchActive(ctx context.Context, q string) ([]*entity.Product, error) {
	f.mu.Lock()
	f.calls = append(f.calls, q)
	block := f.block
	f.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	var out []*entity.Product
	for _, p := range f.products {
		if p.Active && (q == "" || strings.Contains(strings.ToLower(p.Name), strings.ToLower(q))) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) GetByID(_ context.Context, id string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalog) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakeCreator struct {
	mu       sync.Mutex
	requests []entity.SaleRequest
	id       string
	err      error
	// gate, si no es nil, retiene la llamada hasta cerrarse.
	gate    chan struct{}
	entered chan struct{}
}

func (f *fakeCreator) CreateMulti(_ context.Context, req entity.SaleRequest) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	gate, entered := f.gate, f.entered
	f.mu.Unlock()
	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	if f.err != nil {
		return "", f.err
	}
	return f.id, nil
}

func (f *fakeCreator) Requests() []entity.SaleRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.SaleRequest(nil), f.requests...)
}

type fakeSaleRepo struct {
	sales   []*entity.Sale
	updated map[string]string
}

var _ repository.SaleRepository = (*fakeSaleRepo)(nil)

func (f *fakeSaleRepo) CreateMulti(context.Context, entity.SaleRequest) (string, error) {
	return "", &domain.RemoteError{Message: "no soportado"}
}

func (f *fakeSaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	for _, s := range f.sales {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeSaleRepo) List(_ context.Context, filter repository.SaleFilter) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range f.sales {
		if !filter.From.IsZero() && s.CreatedAt.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && !s.CreatedAt.Before(filter.To) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSaleRepo) UpdateStatus(_ context.Context, id, status string) error {
	if f.updated == nil {
		f.updated = map[string]string{}
	}
	f.updated[id] = status
	return nil
}

func prod(id, name string, stock int, price string) *entity.Product {
	return &entity.Product{ID: id, Name: name, Stock: stock, Price: decimal.RequireFromString(price), Active: true}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
