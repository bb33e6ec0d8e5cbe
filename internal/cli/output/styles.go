package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles used for table output. A nil *Styles
// renders plain text.
type Styles struct {
	Header lipgloss.Style
	Price  lipgloss.Style
	Notice lipgloss.Style
}

// NewStyles creates styles bound to w. The color profile is detected from
// w, so output to a pipe or file stays plain.
func NewStyles(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w)
	return &Styles{
		Header: r.NewStyle().Bold(true),
		Price:  r.NewStyle().Foreground(lipgloss.Color("2")),
		Notice: r.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

func (s *Styles) header(v string) string {
	if s == nil {
		return v
	}
	return s.Header.Render(v)
}

func (s *Styles) price(v string) string {
	if s == nil {
		return v
	}
	return s.Price.Render(v)
}

func (s *Styles) notice(v string) string {
	if s == nil {
		return v
	}
	return s.Notice.Render(v)
}
