package cli

import (
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelseam/carve"
)

func newTestProcessor(t *testing.T) *carve.Processor {
	t.Helper()
	g, err := carve.NewGrid(3, 2, func(x, y int) color.Color {
		if x == 1 {
			return color.NRGBA{B: 255, A: 255}
		}
		return color.NRGBA{R: 200, A: 255}
	})
	require.NoError(t, err)
	p := &carve.Processor{}
	require.NoError(t, p.Reset(g))
	return p
}

func press(t *testing.T, m tea.Model, key string) (editorModel, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(editorModel), cmd
}

func TestEditorModel_HighlightDeleteUndo(t *testing.T) {
	m := newEditorModel(newTestProcessor(t), filepath.Join(t.TempDir(), "out.png"))
	assert.Nil(t, m.Init())
	assert.Contains(t, m.View(), "3×2")

	m, cmd := press(t, m, "b")
	assert.Nil(t, cmd)
	assert.Contains(t, m.message, "bluest seam")
	assert.True(t, m.proc.State().Highlighted)
	assert.Contains(t, m.View(), "d")

	m, _ = press(t, m, "d")
	assert.Equal(t, "Seam removed.", m.message)
	assert.Equal(t, 2, m.proc.State().Width)
	assert.Contains(t, m.View(), "2×2")

	m, _ = press(t, m, "u")
	assert.Equal(t, "Last edit restored.", m.message)
	assert.Equal(t, 3, m.proc.State().Width)
	assert.False(t, m.failed)
}

func TestEditorModel_InvalidKeys(t *testing.T) {
	m := newEditorModel(newTestProcessor(t), filepath.Join(t.TempDir(), "out.png"))

	m, _ = press(t, m, "d")
	assert.True(t, m.failed)
	assert.Contains(t, m.message, "no highlighted seam")

	m, _ = press(t, m, "x")
	assert.True(t, m.failed)
	assert.Contains(t, m.message, "not a valid option")

	m, _ = press(t, m, "u")
	assert.True(t, m.failed)
	assert.Contains(t, m.message, "no edits to undo")
}

func TestEditorModel_UndoCancelsHighlight(t *testing.T) {
	m := newEditorModel(newTestProcessor(t), filepath.Join(t.TempDir(), "out.png"))

	m, _ = press(t, m, "e")
	m, _ = press(t, m, "u")
	assert.Equal(t, "Highlight removed. There are no edits to undo. Please try a different command.", m.message)
	assert.False(t, m.failed)
	assert.Equal(t, carve.State{Width: 3, Height: 2}, m.proc.State())
}

func TestEditorModel_UndoCancelsHighlightAndRestoresPreviousEdit(t *testing.T) {
	m := newEditorModel(newTestProcessor(t), filepath.Join(t.TempDir(), "out.png"))

	m, _ = press(t, m, "b")
	m, _ = press(t, m, "d")
	m, _ = press(t, m, "b")
	m, _ = press(t, m, "u")
	assert.Equal(t, "Highlight removed. Last edit restored.", m.message)
	assert.Equal(t, carve.State{Width: 3, Height: 2}, m.proc.State())
	assert.Equal(t, 3, strings.Count(m.preview, "▀"))
}

func TestEditorModel_InvalidKeyCancelsHighlight(t *testing.T) {
	m := newEditorModel(newTestProcessor(t), filepath.Join(t.TempDir(), "out.png"))

	m, _ = press(t, m, "b")
	m, _ = press(t, m, "x")
	assert.True(t, m.failed)
	assert.Contains(t, m.message, "Highlight removed.")
	assert.Contains(t, m.message, "not a valid option")
	assert.Equal(t, carve.State{Width: 3, Height: 2}, m.proc.State())

	m, _ = press(t, m, "d")
	assert.Contains(t, m.message, "no highlighted seam")
}

func TestEditorModel_QuitSaves(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.png")
	m := newEditorModel(newTestProcessor(t), out)

	m, _ = press(t, m, "b")
	m, _ = press(t, m, "d")
	m, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	assert.True(t, m.done)
	assert.NoError(t, m.err)
	assert.Contains(t, m.message, "saved successfully")
	assert.FileExists(t, out)
	assert.NotContains(t, m.View(), "q - Quit")
}

func TestEditorModel_AbortDoesNotSave(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.png")
	m := newEditorModel(newTestProcessor(t), out)

	m, cmd := press(t, m, "ctrl+c")
	require.NotNil(t, cmd)
	assert.True(t, m.done)
	assert.NoFileExists(t, out)
}

func TestEditorModel_IgnoresOtherMessages(t *testing.T) {
	m := newEditorModel(newTestProcessor(t), "out.png")
	next, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Nil(t, cmd)
	assert.Equal(t, m.message, next.(editorModel).message)
}

func TestRenderPreview(t *testing.T) {
	p := newTestProcessor(t)
	preview := renderPreview(p.Grid())
	assert.Equal(t, 3, strings.Count(preview, "▀"))
	assert.Empty(t, renderPreview(nil))
}

func TestMenu(t *testing.T) {
	assert.Equal(t, []string{
		"b - Highlight the bluest seam",
		"e - Highlight the lowest energy seam",
		"q - Quit",
	}, menu(carve.State{Width: 3, Height: 2}))

	items := menu(carve.State{Width: 3, Height: 2, Highlighted: true, Edits: 1})
	assert.Contains(t, items, "d - Remove the seam from the image")
	assert.Contains(t, items, "u - Undo previous edit")

	items = menu(carve.State{Width: 1, Height: 2, Highlighted: true, Edits: 1})
	assert.NotContains(t, items, "d - Remove the seam from the image")
}
