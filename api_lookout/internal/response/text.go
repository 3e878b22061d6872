package response

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TextRenderer renders documents for a terminal.
type TextRenderer struct {
	heading    lipgloss.Style
	subheading lipgloss.Style
	data       lipgloss.Style
	notice     lipgloss.Style
	errStyle   lipgloss.Style
	border     lipgloss.Style
}

// NewTextRenderer styles output for r; pass lipgloss.DefaultRenderer() for
// stdout.
func NewTextRenderer(r *lipgloss.Renderer) *TextRenderer {
	return &TextRenderer{
		heading:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")).Underline(true),
		subheading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		data:       r.NewStyle().Foreground(lipgloss.Color("11")).Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("11")).Padding(0, 1),
		notice:     r.NewStyle().Foreground(lipgloss.Color("8")),
		errStyle:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		border:     r.NewStyle().Foreground(lipgloss.Color("2")),
	}
}

func (t *TextRenderer) Render(doc *Document) string {
	var blocks []string
	for _, f := range doc.Fragments() {
		switch f.Kind {
		case KindHeading:
			if f.Level <= 2 {
				blocks = append(blocks, t.heading.Render(f.Text))
			} else {
				blocks = append(blocks, t.subheading.Render(f.Text))
			}
		case KindTable:
			blocks = append(blocks, t.table(f))
		case KindPreformatted:
			if f.Tone == ToneData {
				blocks = append(blocks, t.data.Render(f.Text))
			} else {
				// Model output is printed as is; styles would expand tabs and
				// pad lines.
				blocks = append(blocks, f.Text)
			}
		case KindNotice:
			blocks = append(blocks, t.notice.Render(f.Text))
		case KindError:
			blocks = append(blocks, t.errStyle.Render(f.Text))
		}
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

func (t *TextRenderer) table(f Fragment) string {
	rows := make([][]string, 0, len(f.Rows))
	for _, row := range f.Rows {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cell.Text)
		}
		rows = append(rows, cells)
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(t.border).
		Headers(f.Headers...).
		Rows(rows...).
		String()
}
