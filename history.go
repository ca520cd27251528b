package carve

import "image/color"

// Default highlight colors.
var (
	BlueHighlight   = color.NRGBA{R: 0x00, G: 0x00, B: 0xff, A: 0xff}
	EnergyHighlight = color.NRGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}
)

type editKind uint8

const (
	highlightEdit editKind = iota
	deleteEdit
)

// edit holds what is needed to revert one change of the grid. Undoing any
// edit is the same call: reinsert seam, growing the width if affectedWidth.
type edit struct {
	kind          editKind
	seam          *SeamNode // pixels that were in the grid before the edit
	highlighted   *SeamNode // pixels put in by a highlight, while it is pending
	affectedWidth bool
}

// History sequences highlight, delete and undo operations on a Grid.
//
// A highlight stays pending until it is either deleted or cancelled. Deleting
// it replaces the highlight record by a delete record that remembers the
// pixels from before the highlight, so a single undo brings back the original
// column with its original colors.
type History struct {
	grid        *Grid
	edits       []edit
	highlighted bool

	// Colors used by HighlightBluest and HighlightLowestEnergy.
	BlueColor   color.NRGBA
	EnergyColor color.NRGBA
}

// NewHistory returns an empty history editing g.
func NewHistory(g *Grid) *History {
	return &History{
		grid:        g,
		BlueColor:   BlueHighlight,
		EnergyColor: EnergyHighlight,
	}
}

// Grid returns the edited grid.
func (h *History) Grid() *Grid { return h.grid }

// Highlighted reports whether the last edit is a pending highlight.
func (h *History) Highlighted() bool { return h.highlighted }

// Len returns the number of edits that can be undone.
func (h *History) Len() int { return len(h.edits) }

// CanUndo reports whether Undo has anything to revert.
func (h *History) CanUndo() bool { return len(h.edits) > 0 }

// HighlightBluest highlights the bluest seam of the image.
func (h *History) HighlightBluest() (*SeamNode, error) {
	return h.Highlight(BlueEnergy{}, h.BlueColor)
}

// HighlightLowestEnergy highlights the seam with the lowest gradient energy.
func (h *History) HighlightLowestEnergy() (*SeamNode, error) {
	return h.Highlight(GradientEnergy{}, h.EnergyColor)
}

// Highlight finds the cheapest seam under e and paints it with c. A
// highlight that is still pending is cancelled first, so the search runs on
// the unmarked image. It returns the highlighted seam.
func (h *History) Highlight(e Energy, c color.NRGBA) (*SeamNode, error) {
	if h.highlighted {
		if err := h.Cancel(); err != nil {
			return nil, err
		}
	}
	seam, err := h.grid.FindSeam(e)
	if err != nil {
		return nil, err
	}
	marked, err := h.grid.HighlightSeam(seam, c)
	if err != nil {
		return nil, err
	}
	h.edits = append(h.edits, edit{
		kind:        highlightEdit,
		seam:        seam,
		highlighted: marked,
	})
	h.highlighted = true
	return marked, nil
}

// DeleteHighlighted removes the pending highlighted seam from the image.
func (h *History) DeleteHighlighted() error {
	if !h.highlighted {
		return ErrNoHighlight
	}
	last := h.edits[len(h.edits)-1]
	if _, err := h.grid.RemoveSeam(last.highlighted); err != nil {
		return err
	}
	h.edits[len(h.edits)-1] = edit{
		kind:          deleteEdit,
		seam:          last.seam,
		affectedWidth: true,
	}
	h.highlighted = false
	return nil
}

// Cancel reverts a pending highlight. It is a no-op without one.
func (h *History) Cancel() error {
	if !h.highlighted {
		return nil
	}
	return h.Undo()
}

// Undo reverts the most recent edit.
func (h *History) Undo() error {
	if len(h.edits) == 0 {
		return ErrNothingToUndo
	}
	last := h.edits[len(h.edits)-1]
	if _, err := h.grid.InsertSeam(last.seam, last.affectedWidth); err != nil {
		return err
	}
	h.edits[len(h.edits)-1] = edit{}
	h.edits = h.edits[:len(h.edits)-1]
	h.highlighted = false
	return nil
}
