package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jhoicas/tienda-pos/internal/application/sale"
)

// Notifier reenvía los resultados de búsqueda al programa. La sesión se crea antes que el
// programa, así que el destino se fija después con Attach.
type Notifier struct {
	mu   sync.RWMutex
	prog *tea.Program
}

// Attach fija el programa destino.
func (n *Notifier) Attach(p *tea.Program) {
	n.mu.Lock()
	n.prog = p
	n.mu.Unlock()
}

// Deliver se pasa como notify a sale.NewEntrySession. Sin programa el resultado se descarta.
func (n *Notifier) Deliver(res sale.SearchResult) {
	n.mu.RLock()
	p := n.prog
	n.mu.RUnlock()
	if p != nil {
		p.Send(SearchResultMsg(res))
	}
}
