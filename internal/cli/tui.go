package cli

import (
	"fmt"
	"image"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"

	"github.com/pixelseam/carve"
)

// Preview size, in terminal cells. Every cell shows two pixel rows.
const (
	previewWidth  = 64
	previewHeight = 24
)

// editorModel is the bubbletea model of the interactive editor.
type editorModel struct {
	proc    *carve.Processor
	output  string
	message string
	failed  bool
	preview string
	done    bool
	err     error
}

func newEditorModel(p *carve.Processor, output string) editorModel {
	return editorModel{
		proc:    p,
		output:  output,
		message: "Welcome to the seam carving editor!",
		preview: renderPreview(p.Grid()),
	}
}

func (m editorModel) Init() tea.Cmd {
	return nil
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "esc":
		m.message = "Aborted, the image was not saved."
		m.done = true
		return m, tea.Quit
	}

	msgText, quit, err := apply(m.proc, strings.ToLower(key.String()))
	m.message, m.failed = msgText, err != nil
	if quit {
		m.done = true
		if err := m.proc.SaveFile(m.output); err != nil {
			m.err = err
			m.message, m.failed = err.Error(), true
		} else {
			m.message = fmt.Sprintf("%s saved successfully", m.output)
		}
		return m, tea.Quit
	}
	m.preview = renderPreview(m.proc.Grid())
	return m, nil
}

func (m editorModel) View() string {
	var b strings.Builder

	st := m.proc.State()
	b.WriteString(styleTitle.Render("carve"))
	b.WriteString("  ")
	b.WriteString(styleValue.Render(fmt.Sprintf("%d×%d", st.Width, st.Height)))
	b.WriteString(styleDim.Render(fmt.Sprintf("  edits: %d", st.Edits)))
	if st.Highlighted {
		b.WriteString(styleDim.Render("  (highlight pending)"))
	}
	b.WriteString("\n")

	if m.preview != "" {
		b.WriteString(styleFrame.Render(m.preview))
		b.WriteString("\n")
	}

	if m.message != "" {
		if m.failed {
			b.WriteString(styleError.Render(m.message))
		} else {
			b.WriteString(styleSuccess.Render(m.message))
		}
		b.WriteString("\n")
	}
	if m.done {
		return b.String()
	}

	b.WriteString("\n")
	for _, item := range menu(st) {
		k, label, _ := strings.Cut(item, " - ")
		b.WriteString(styleKey.Render(k))
		b.WriteString(styleDim.Render(" " + label))
		b.WriteString("\n")
	}
	return b.String()
}

// renderPreview draws the grid with half blocks, scaled down to fit the
// preview area.
func renderPreview(g *carve.Grid) string {
	if g == nil {
		return ""
	}
	src, err := g.Image()
	if err != nil {
		return ""
	}
	img := imaging.Fit(src, previewWidth, previewHeight*2, imaging.NearestNeighbor)
	bounds := img.Bounds()

	var b strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(hexColor(img, x, y))
			if y+1 < bounds.Max.Y {
				style = style.Background(hexColor(img, x, y+1))
			}
			b.WriteString(style.Render("▀"))
		}
		if y+2 < bounds.Max.Y {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func hexColor(img *image.NRGBA, x, y int) lipgloss.Color {
	c := img.NRGBAAt(x, y)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
