package cli

import (
	"fmt"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	listPaneWidth  = 36
	minPaneHeight  = 5
	defaultHeight  = 15
	detailPadWidth = 2
)

// vertexItem is one row of the explore list, precomputed from the graph
// so the model stays free of graph types.
type vertexItem struct {
	ID       int64
	Label    string
	Children []string
	Parents  []string
}

// display returns the list line for the vertex.
func (v vertexItem) display() string {
	return vertexDisplay(v.ID, v.Label)
}

// exploreModel is the bubbletea model for interactive graph browsing.
// The list pane shows vertices filtered as you type; the detail pane
// follows the cursor with the children and parents of the selection.
type exploreModel struct {
	Title    string
	Vertices []vertexItem

	filter   string
	filtered []int // indexes into Vertices matching filter
	cursor   int   // index into filtered
	offset   int
	height   int
}

// newExploreModel creates an explore model over the given vertices.
func newExploreModel(title string, vertices []vertexItem) exploreModel {
	m := exploreModel{
		Title:    title,
		Vertices: vertices,
		height:   defaultHeight,
	}
	m.applyFilter()
	return m
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.filter == "" {
				return m, tea.Quit
			}
			m.filter = ""
			m.applyFilter()
		case "q":
			if m.filter == "" {
				return m, tea.Quit
			}
			m.typeRune('q')
		case "up":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "backspace":
			if m.filter != "" {
				m.filter = m.filter[:len(m.filter)-1]
				m.applyFilter()
			}
		default:
			if len(msg.Runes) == 1 && unicode.IsPrint(msg.Runes[0]) {
				m.typeRune(msg.Runes[0])
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 7
		if m.height < minPaneHeight {
			m.height = minPaneHeight
		}
	}
	return m, nil
}

// typeRune appends to the filter and reapplies it.
func (m *exploreModel) typeRune(r rune) {
	m.filter += string(r)
	m.applyFilter()
}

// applyFilter recomputes the visible rows and clamps the cursor.
func (m *exploreModel) applyFilter() {
	m.filtered = m.filtered[:0]
	needle := strings.ToLower(m.filter)
	for i, v := range m.Vertices {
		if needle == "" || strings.Contains(strings.ToLower(v.display()), needle) {
			m.filtered = append(m.filtered, i)
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
}

// selected returns the vertex under the cursor, if any.
func (m exploreModel) selected() (vertexItem, bool) {
	if len(m.filtered) == 0 {
		return vertexItem{}, false
	}
	return m.Vertices[m.filtered[m.cursor]], true
}

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("type to filter  ↑/↓ navigate  esc clear  q quit"))
	b.WriteString("\n")

	filterLine := "filter: " + m.filter
	if m.filter == "" {
		filterLine = "filter: (none)"
	}
	b.WriteString(listDimStyle.Render(filterLine))
	b.WriteString("\n\n")

	list := m.renderList()
	detail := m.renderDetail()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, detail))

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.filtered))))

	return b.String()
}

// renderList draws the scrolling vertex list pane.
func (m exploreModel) renderList() string {
	var b strings.Builder

	end := m.offset + m.height
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	for row := m.offset; row < end; row++ {
		v := m.Vertices[m.filtered[row]]
		line := truncate(v.display(), listPaneWidth-4)
		if row == m.cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	if len(m.filtered) == 0 {
		b.WriteString(listDimStyle.Render("  no matches"))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Width(listPaneWidth).
		Height(m.height).
		Render(b.String())
}

// renderDetail draws the selection pane: id, label, children, parents.
func (m exploreModel) renderDetail() string {
	var b strings.Builder

	v, ok := m.selected()
	if !ok {
		return lipgloss.NewStyle().PaddingLeft(detailPadWidth).Render(listDimStyle.Render("nothing selected"))
	}

	b.WriteString(StyleHighlight.Render(v.display()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("id %d", v.ID)))
	b.WriteString("\n\n")

	b.WriteString(listDimStyle.Render(fmt.Sprintf("children (%d)", len(v.Children))))
	b.WriteString("\n")
	for _, child := range v.Children {
		b.WriteString(listNormalStyle.Render("  " + iconArrow + " " + child))
		b.WriteString("\n")
	}
	if len(v.Children) == 0 {
		b.WriteString(listDimStyle.Render("  (leaf)"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(listDimStyle.Render(fmt.Sprintf("parents (%d)", len(v.Parents))))
	b.WriteString("\n")
	for _, parent := range v.Parents {
		b.WriteString(listNormalStyle.Render("  " + iconArrow + " " + parent))
		b.WriteString("\n")
	}
	if len(v.Parents) == 0 {
		b.WriteString(listDimStyle.Render("  (root)"))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().PaddingLeft(detailPadWidth).Render(b.String())
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
