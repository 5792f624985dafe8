package listview

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc renders one item. The selected parameter indicates whether the
// item holds the cursor.
type RenderFunc[T any] func(item T, selected bool) string

// KeyMap holds the navigation bindings.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
}

// DefaultKeyMap returns arrow, vim and paging bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Home:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home", "first")),
		End:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end", "last")),
	}
}

// VirtualListModel renders a window of items around the cursor.
// The viewport size is counted in items, not terminal lines.
type VirtualListModel[T any] struct {
	items  []T
	render RenderFunc[T]
	keys   KeyMap

	cursor int
	offset int // index of the first visible item
	size   int // number of visible items
	empty  string
}

// NewVirtualListModel creates a list showing size items at a time.
func NewVirtualListModel[T any](items []T, size int, render RenderFunc[T]) *VirtualListModel[T] {
	if size < 1 {
		size = 1
	}
	return &VirtualListModel[T]{
		items:  items,
		render: render,
		keys:   DefaultKeyMap(),
		size:   size,
	}
}

// SetEmptyText sets the text rendered when the list has no items.
func (m *VirtualListModel[T]) SetEmptyText(s string) {
	m.empty = s
}

// SetItems replaces the items and keeps the cursor within bounds.
func (m *VirtualListModel[T]) SetItems(items []T) {
	m.items = items
	m.SetSelected(m.cursor)
}

// SetSize changes the viewport size in items.
func (m *VirtualListModel[T]) SetSize(size int) {
	if size < 1 {
		size = 1
	}
	m.size = size
	m.scrollToCursor()
}

// Update handles navigation keys. It reports whether the key was consumed.
func (m *VirtualListModel[T]) Update(msg tea.KeyMsg) bool {
	if len(m.items) == 0 {
		return false
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.SetSelected(m.cursor - 1)
	case key.Matches(msg, m.keys.Down):
		m.SetSelected(m.cursor + 1)
	case key.Matches(msg, m.keys.PageUp):
		m.SetSelected(m.cursor - m.size)
	case key.Matches(msg, m.keys.PageDown):
		m.SetSelected(m.cursor + m.size)
	case key.Matches(msg, m.keys.Home):
		m.SetSelected(0)
	case key.Matches(msg, m.keys.End):
		m.SetSelected(len(m.items) - 1)
	default:
		return false
	}
	return true
}

// SetSelected moves the cursor, clamped to the item range.
func (m *VirtualListModel[T]) SetSelected(index int) {
	switch {
	case len(m.items) == 0:
		index = 0
	case index < 0:
		index = 0
	case index >= len(m.items):
		index = len(m.items) - 1
	}
	m.cursor = index
	m.scrollToCursor()
}

// scrollToCursor moves the window the minimum distance needed to show the cursor.
func (m *VirtualListModel[T]) scrollToCursor() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.size {
		m.offset = m.cursor - m.size + 1
	}
	if maxOffset := max(len(m.items)-m.size, 0); m.offset > maxOffset {
		m.offset = maxOffset
	}
}

// View renders the visible items separated by newlines.
func (m *VirtualListModel[T]) View() string {
	if len(m.items) == 0 {
		return m.empty
	}

	from, to := m.VisibleRange()
	lines := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		lines = append(lines, m.render(m.items[i], i == m.cursor))
	}
	return strings.Join(lines, "\n")
}

// VisibleRange returns the visible item indexes as [from, to).
func (m *VirtualListModel[T]) VisibleRange() (int, int) {
	return m.offset, min(m.offset+m.size, len(m.items))
}

// ItemCount returns the number of items.
func (m *VirtualListModel[T]) ItemCount() int {
	return len(m.items)
}

// Selected returns the cursor index.
func (m *VirtualListModel[T]) Selected() int {
	return m.cursor
}

// GetSelectedItem returns the item under the cursor, or false when the list is empty.
func (m *VirtualListModel[T]) GetSelectedItem() (T, bool) {
	var zero T
	if len(m.items) == 0 {
		return zero, false
	}
	return m.items[m.cursor], true
}
