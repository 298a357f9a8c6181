package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/matzehuels/mekko/pkg/core/render/mekko/layout"
)

var (
	tuiHeaderStyle   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	tuiSelectedStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	tuiCellStyle     = lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)
	tuiDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// headerRow is the row index lipgloss tables pass to StyleFunc for headers.
const headerRow = -1

// inspectModel browses a layout one category at a time: a column table on
// top and the stacked segments of the selected column below.
type inspectModel struct {
	title  string
	layout layout.Layout
	cursor int
	height int
	offset int
	p      *message.Printer
}

func newInspectModel(title string, l layout.Layout, tag language.Tag) inspectModel {
	return inspectModel{
		title:  title,
		layout: l,
		height: 12,
		p:      message.NewPrinter(tag),
	}
}

func (m inspectModel) Init() tea.Cmd { return nil }

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.layout.Categories)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = max(len(m.layout.Categories)-1, 0)
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height/2-4, 3)
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	return m, nil
}

func (m inspectModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(tuiDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	if m.layout.Empty() {
		b.WriteString(tuiDimStyle.Render("nothing to draw"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.categoryTable())
	b.WriteString("\n")
	b.WriteString(m.segmentTable(m.cursor))
	b.WriteString("\n")
	b.WriteString(tuiDimStyle.Render(m.flags()))
	return b.String()
}

func (m inspectModel) categoryTable() string {
	end := min(m.offset+m.height, len(m.layout.Categories))
	var rows [][]string
	for c := m.offset; c < end; c++ {
		cat := m.layout.Categories[c]
		t := m.layout.Totals[c]
		rows = append(rows, []string{
			fmt.Sprint(cat.Value),
			m.p.Sprintf("%.1f%%", m.layout.CategoryWidths[c]*100),
			m.p.Sprintf("%.2f", t.Positive),
			m.p.Sprintf("%.2f", t.Negative),
		})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tuiDimStyle).
		Headers("Category", "Width", "Positive", "Negative").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return tuiHeaderStyle.Padding(0, 1)
			}
			if m.offset+row == m.cursor {
				return tuiSelectedStyle.Padding(0, 1)
			}
			return tuiCellStyle
		}).
		Render()
}

// segmentTable lists the points of category c in stacking order.
func (m inspectModel) segmentTable(c int) string {
	var rows [][]string
	for _, s := range m.layout.Series {
		for _, p := range s.Points {
			if p.CategoryIndex != c || p.Absent {
				continue
			}
			kind := ""
			switch {
			case p.IsHighlight:
				kind = "highlight"
			case p.IsDrawnThinner:
				kind = "thinner"
			}
			rows = append(rows, []string{
				s.DisplayName,
				m.p.Sprintf("%.4g", p.ValueOriginal),
				m.p.Sprintf("%.4g", p.Position),
				kind,
				p.Color,
			})
		}
	}
	if len(rows) == 0 {
		return tuiDimStyle.Render("  no values in this column")
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tuiDimStyle).
		Headers("Series", "Value", "Position", "", "Color").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return tuiHeaderStyle.Padding(0, 1)
			}
			if col == 4 && rows[row][4] != "" {
				return tuiCellStyle.Foreground(lipgloss.Color(rows[row][4]))
			}
			return tuiCellStyle
		}).
		Render()
}

func (m inspectModel) flags() string {
	var parts []string
	if m.layout.Options.Is100PercentStacked {
		parts = append(parts, "100% stacked")
	}
	if m.layout.HasHighlights {
		parts = append(parts, "highlights")
	}
	if m.layout.HighlightsReplacedValues {
		parts = append(parts, "highlights replaced values")
	}
	if len(m.layout.Gradients) > 0 {
		parts = append(parts, "gradient")
	}
	parts = append(parts, fmt.Sprintf("[%d/%d]", m.cursor+1, len(m.layout.Categories)))
	return "  " + strings.Join(parts, " · ")
}
