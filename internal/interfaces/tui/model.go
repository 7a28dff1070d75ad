// Package tui pantalla de terminal "Nueva venta": búsqueda de productos con selector,
// carrito, costo DTF y datos del cliente.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jhoicas/tienda-pos/internal/application/sale"
	"github.com/jhoicas/tienda-pos/internal/domain"
	"github.com/jhoicas/tienda-pos/pkg/money"
)

// Zonas con foco, en el orden en que las recorre tab.
type focus int

const (
	focusSearch focus = iota
	focusCart
	focusDeduction
	focusName
	focusPhone
	focusCount
)

// SubmitTimeout tiempo máximo de espera del registro de la venta.
const SubmitTimeout = 30 * time.Second

// SearchResultMsg resultado de búsqueda entregado por el programa (ver Notifier).
type SearchResultMsg sale.SearchResult

type submitDoneMsg struct {
	id  string
	err error
}

type startMsg struct{}

// Model estado de la pantalla. Toda la lógica de carrito vive en sale.EntrySession.
type Model struct {
	session  *sale.EntrySession
	currency string

	focus      focus
	search     textinput.Model
	deduction  textinput.Model
	name       textinput.Model
	phone      textinput.Model
	pickCursor int
	cartCursor int

	saving    bool
	status    string
	statusErr bool
	width     int
}

// NewModel construye la pantalla sobre la sesión.
func NewModel(session *sale.EntrySession, currency string) Model {
	newInput := func(placeholder string, limit int) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = limit
		ti.Prompt = ""
		return ti
	}
	m := Model{
		session:   session,
		currency:  currency,
		search:    newInput("Buscar producto o SKU…", 80),
		deduction: newInput("0.00", 12),
		name:      newInput("Nombre del cliente", 120),
		phone:     newInput("Teléfono (opcional)", 30),
	}
	m.search.Focus()
	return m
}

// Init dispara la carga inicial del catálogo.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, func() tea.Msg {
		m.session.Start()
		return startMsg{}
	})
}

// Update procesa teclas, resultados de búsqueda y el fin del envío.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case SearchResultMsg:
		res := sale.SearchResult(msg)
		if m.session.ApplySearch(res) {
			m.pickCursor = clamp(m.pickCursor, len(m.session.Products()))
		} else if res.Err != nil && !errors.Is(res.Err, context.Canceled) {
			m.setError("no se pudo cargar el catálogo: " + res.Err.Error())
		}
		return m, nil

	case submitDoneMsg:
		m.saving = false
		if msg.err != nil {
			m.setError(errorText(msg.err))
			return m, nil
		}
		m.name.SetValue("")
		m.phone.SetValue("")
		m.deduction.SetValue("")
		m.cartCursor = 0
		m.setOK("Venta guardada (" + shortID(msg.id) + ")")
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "ctrl+c":
		m.session.Close()
		return m, tea.Quit
	case "tab":
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil
	case "shift+tab":
		m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, nil
	case "ctrl+s":
		return m.submit()
	}

	switch m.focus {
	case focusSearch:
		return m.keySearch(k)
	case focusCart:
		return m.keyCart(k)
	case focusDeduction:
		var cmd tea.Cmd
		m.deduction, cmd = m.deduction.Update(k)
		if err := m.session.SetDeduction(m.deduction.Value()); err != nil {
			m.setError(errorText(err))
		} else {
			m.status = ""
		}
		return m, cmd
	case focusName:
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(k)
		return m, cmd
	case focusPhone:
		var cmd tea.Cmd
		m.phone, cmd = m.phone.Update(k)
		return m, cmd
	}
	return m, nil
}

func (m Model) keySearch(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	products := m.session.Products()
	switch k.String() {
	case "esc":
		m.session.ClosePicker()
		return m, nil
	case "down":
		m.session.OpenPicker()
		if m.pickCursor < len(products)-1 {
			m.pickCursor++
		}
		return m, nil
	case "up":
		if m.pickCursor > 0 {
			m.pickCursor--
		}
		return m, nil
	case "enter":
		if !m.session.PickerOpen() {
			m.session.OpenPicker()
			return m, nil
		}
		if len(products) == 0 {
			return m, nil
		}
		p := products[clamp(m.pickCursor, len(products))]
		if _, err := m.session.AddToCart(p.ID); err != nil {
			m.setError(errorText(err))
			return m, nil
		}
		m.search.SetValue("")
		m.pickCursor = 0
		m.setOK("Agregado: " + p.Name)
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(k)
	if m.search.Value() != before {
		m.session.SetQuery(m.search.Value())
		m.pickCursor = 0
	}
	return m, cmd
}

func (m Model) keyCart(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	lines := m.session.Lines()
	if len(lines) == 0 {
		return m, nil
	}
	m.cartCursor = clamp(m.cartCursor, len(lines))
	cur := lines[m.cartCursor]
	var err error
	switch k.String() {
	case "up", "k":
		if m.cartCursor > 0 {
			m.cartCursor--
		}
	case "down", "j":
		if m.cartCursor < len(lines)-1 {
			m.cartCursor++
		}
	case "+", "=", "right":
		_, err = m.session.UpdateQuantity(cur.ProductID, cur.Quantity+1)
	case "-", "left":
		_, err = m.session.UpdateQuantity(cur.ProductID, cur.Quantity-1)
	case "delete", "backspace", "x":
		err = m.session.RemoveLine(cur.ProductID)
		m.cartCursor = clamp(m.cartCursor, len(lines)-1)
	}
	if err != nil {
		m.setError(errorText(err))
	}
	return m, nil
}

// submit lanza el registro en un comando; el botón queda deshabilitado mientras corre.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.saving || m.session.Submitting() {
		return m, nil
	}
	m.saving = true
	name, phone := m.name.Value(), m.phone.Value()
	session := m.session
	m.setOK("Guardando…")
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), SubmitTimeout)
		defer cancel()
		id, err := session.Submit(ctx, name, phone)
		return submitDoneMsg{id: id, err: err}
	}
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	inputs := map[focus]*textinput.Model{
		focusSearch:    &m.search,
		focusDeduction: &m.deduction,
		focusName:      &m.name,
		focusPhone:     &m.phone,
	}
	for k, in := range inputs {
		if k == f {
			in.Focus()
		} else {
			in.Blur()
		}
	}
	if f != focusSearch {
		m.session.ClosePicker()
	}
}

func (m *Model) setError(s string) { m.status, m.statusErr = s, true }
func (m *Model) setOK(s string)    { m.status, m.statusErr = s, false }

// View dibuja la pantalla.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Nueva venta") + "\n\n")
	b.WriteString(m.pane(focusSearch, "Producto", m.viewSearch()) + "\n")
	b.WriteString(m.pane(focusCart, "Carrito", m.viewCart()) + "\n")

	t := m.session.Totals()
	totals := fmt.Sprintf("Subtotal: %s\nDTF: %s\n%s",
		money.Format(t.Subtotal, m.currency),
		m.deduction.View(),
		totalStyle.Render("Total: "+money.Format(t.Total, m.currency)))
	b.WriteString(m.pane(focusDeduction, "Totales", totals) + "\n")

	customer := lipgloss.JoinHorizontal(lipgloss.Top,
		m.pane(focusName, "Cliente", m.name.View()),
		" ",
		m.pane(focusPhone, "Teléfono", m.phone.View()),
	)
	b.WriteString(customer + "\n")

	save := "[ Guardar venta: ctrl+s ]"
	if m.saving {
		save = mutedStyle.Render("[ Guardando… ]")
	}
	b.WriteString(save + "\n")

	if m.status != "" {
		if m.statusErr {
			b.WriteString(errStyle.Render(m.status) + "\n")
		} else {
			b.WriteString(okStyle.Render(m.status) + "\n")
		}
	}
	b.WriteString(mutedStyle.Render("tab: cambiar zona · enter: elegir · +/-: cantidad · x: quitar · ctrl+c: salir"))
	return b.String()
}

func (m Model) pane(f focus, title, body string) string {
	st := paneStyle
	if m.focus == f {
		st = focusStyle
	}
	return st.Render(titleStyle.Render(title) + "\n" + body)
}

func (m Model) viewSearch() string {
	out := m.search.View()
	if !m.session.PickerOpen() {
		return out
	}
	products := m.session.Products()
	if len(products) == 0 {
		return out + "\n" + mutedStyle.Render("Sin resultados")
	}
	var b strings.Builder
	b.WriteString(out)
	for i, p := range products {
		row := fmt.Sprintf("%-30s %-10s %4d  %s", truncate(p.Name, 30), p.Code(), p.Stock, money.Format(p.Price, m.currency))
		if p.Stock == 0 {
			row = mutedStyle.Render(row + "  (agotado)")
		}
		if i == m.pickCursor {
			row = cursorRow.Render(row)
		}
		b.WriteString("\n" + row)
	}
	return b.String()
}

func (m Model) viewCart() string {
	lines := m.session.Lines()
	if len(lines) == 0 {
		return mutedStyle.Render("Carrito vacío")
	}
	var b strings.Builder
	for i, l := range lines {
		row := fmt.Sprintf("%-30s %3d/%-3d × %10s = %10s",
			truncate(l.Name, 30), l.Quantity, l.Stock,
			money.Format(l.UnitPrice, m.currency), money.Format(l.Subtotal(), m.currency))
		if m.focus == focusCart && i == m.cartCursor {
			row = cursorRow.Render(row)
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(row)
	}
	return b.String()
}

// errorText mensaje para el vendedor. El error remoto se muestra tal cual.
func errorText(err error) string {
	var (
		remote *domain.RemoteError
		verr   *domain.ValidationError
	)
	switch {
	case errors.As(err, &remote):
		return remote.Message
	case errors.As(err, &verr):
		switch verr.Field {
		case "customer_name":
			return "Ingrese el nombre del cliente"
		case "items":
			return "Agregue al menos un producto"
		}
		return verr.Error()
	case errors.Is(err, domain.ErrSubmitInProgress):
		return "La venta ya se está guardando"
	}
	return err.Error()
}

func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
