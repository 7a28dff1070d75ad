package sale

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/tienda-pos/internal/domain/entity"
)

// DefaultSearchWindow tiempo sin teclear antes de consultar el catálogo.
const DefaultSearchWindow = 300 * time.Millisecond

// SearchResult resultado de una búsqueda. Seq crece con cada búsqueda programada;
// el receptor debe ignorar resultados con Seq menor al último aplicado.
type SearchResult struct {
	Seq      uint64
	Query    string
	Products []*entity.Product
	Err      error
}

// SearchTask búsqueda diferida y cancelable del selector de productos.
// Cada Schedule reinicia la ventana de espera y cancela la consulta en curso;
// solo se entrega el resultado de la búsqueda más reciente.
type SearchTask struct {
	catalog CatalogReader
	window  time.Duration
	deliver func(SearchResult)
	log     zerolog.Logger

	mu      sync.Mutex
	seq     uint64
	applied uint64
	timer   *time.Timer
	cancel  context.CancelFunc
	closed  bool
}

// NewSearchTask construye la tarea. deliver se llama desde otra goroutine, sin candados tomados.
func NewSearchTask(catalog CatalogReader, window time.Duration, deliver func(SearchResult), log zerolog.Logger) *SearchTask {
	if window < 0 {
		window = 0
	}
	return &SearchTask{
		catalog: catalog,
		window:  window,
		deliver: deliver,
		log:     log.With().Str("component", "product_search").Logger(),
	}
}

// Schedule programa una búsqueda tras la ventana de espera. Devuelve su número de secuencia (0 si la tarea está cerrada).
func (s *SearchTask) Schedule(query string) uint64 {
	return s.schedule(query, s.window)
}

// Now busca de inmediato, sin ventana (carga inicial del selector).
func (s *SearchTask) Now(query string) uint64 {
	return s.schedule(query, 0)
}

func (s *SearchTask) schedule(query string, delay time.Duration) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0
	}
	s.seq++
	seq := s.seq
	s.stopLocked()
	s.timer = time.AfterFunc(delay, func() { s.run(seq, query) })
	return seq
}

func (s *SearchTask) stopLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *SearchTask) run(seq uint64, query string) {
	s.mu.Lock()
	if s.closed || seq != s.seq {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mu.Unlock()

	products, err := s.catalog.SearchActive(ctx, query)
	cancelled := ctx.Err() != nil
	cancel()

	s.mu.Lock()
	if s.closed || cancelled || seq != s.seq || seq <= s.applied {
		s.mu.Unlock()
		s.log.Debug().Uint64("seq", seq).Str("query", query).Msg("resultado de búsqueda descartado")
		return
	}
	s.applied = seq
	s.cancel = nil
	s.mu.Unlock()

	if err != nil {
		s.log.Warn().Err(err).Str("query", query).Msg("búsqueda de productos fallida")
	}
	s.deliver(SearchResult{Seq: seq, Query: query, Products: products, Err: err})
}

// Close detiene el temporizador y cancela la consulta en curso. Después de Close no se entregan resultados.
func (s *SearchTask) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.stopLocked()
}
