package carve

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/pixelseam/carve/utils"
)

// Op is a single-letter editing operation.
type Op byte

// Supported operations.
const (
	OpHighlightBlue   Op = 'b'
	OpHighlightEnergy Op = 'e'
	OpDelete          Op = 'd'
	OpUndo            Op = 'u'
	OpQuit            Op = 'q'
)

func (op Op) String() string {
	switch op {
	case OpHighlightBlue:
		return "highlight bluest seam"
	case OpHighlightEnergy:
		return "highlight lowest energy seam"
	case OpDelete:
		return "delete highlighted seam"
	case OpUndo:
		return "undo"
	case OpQuit:
		return "quit"
	}
	return fmt.Sprintf("Op(%q)", rune(op))
}

// ParseOp converts a menu letter into an Op.
func ParseOp(r rune) (Op, error) {
	if r <= unicode.MaxASCII {
		switch op := Op(unicode.ToLower(r)); op {
		case OpHighlightBlue, OpHighlightEnergy, OpDelete, OpUndo, OpQuit:
			return op, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownOp, r)
}

// SeamEditor is implemented by the editing session.
type SeamEditor interface {
	Apply(op Op) error
	State() State
}

var _ SeamEditor = (*Processor)(nil)

// State describes the session as shown to the user.
type State struct {
	Width       int
	Height      int
	Highlighted bool
	Edits       int
}

// CanDelete reports whether OpDelete would be accepted.
func (s State) CanDelete() bool { return s.Highlighted && s.Width > 1 }

// CanUndo reports whether OpUndo would be accepted.
func (s State) CanUndo() bool { return s.Edits > 0 }

// Processor is an editing session over one image.
type Processor struct {
	// BlueColor and EnergyColor are the highlight colors, in hex notation.
	// Empty values select the defaults.
	BlueColor   string
	EnergyColor string

	// SnapshotDir, when set, receives an image after every edit, in a
	// sub-directory named after the session ID. SnapshotFormat is the
	// extension of these images, png when empty.
	SnapshotDir    string
	SnapshotFormat string

	// Validate checks the grid invariants after every edit.
	Validate bool

	Logger *log.Logger

	id        string
	history   *History
	snapshots int
}

// ID returns the session ID, assigned when the image is loaded.
func (p *Processor) ID() string { return p.id }

// Grid returns the edited grid, or nil before Load.
func (p *Processor) Grid() *Grid {
	if p.history == nil {
		return nil
	}
	return p.history.Grid()
}

// History returns the edit history, or nil before Load.
func (p *Processor) History() *History { return p.history }

// Load decodes the image read from r and starts a new session.
func (p *Processor) Load(r io.Reader) error {
	img, err := decodeImage(r)
	if err != nil {
		return err
	}
	g, err := NewGridFromImage(img)
	if err != nil {
		return err
	}
	return p.Reset(g)
}

// LoadFile loads the image found at path, which may also be an http(s) URL.
func (p *Processor) LoadFile(ctx context.Context, path string) error {
	var (
		f   *os.File
		err error
	)
	if utils.IsValidUrl(path) {
		f, err = utils.DownloadImage(ctx, path)
		if err != nil {
			return err
		}
		defer os.Remove(f.Name())
	} else {
		f, err = os.Open(path)
		if err != nil {
			return fmt.Errorf("unable to open the source file: %w", err)
		}
	}
	defer f.Close()

	return p.Load(f)
}

// Reset starts a new session editing g.
func (p *Processor) Reset(g *Grid) error {
	if p.SnapshotFormat != "" {
		if _, err := ParseFormat(p.SnapshotFormat); err != nil {
			return err
		}
	}
	h := NewHistory(g)
	if p.BlueColor != "" {
		c, err := utils.HexToRGBA(p.BlueColor)
		if err != nil {
			return err
		}
		h.BlueColor = c
	}
	if p.EnergyColor != "" {
		c, err := utils.HexToRGBA(p.EnergyColor)
		if err != nil {
			return err
		}
		h.EnergyColor = c
	}
	p.history = h
	p.id = uuid.NewString()
	p.snapshots = 0
	p.logger().Debug("session started", "id", p.id, "width", g.Width(), "height", g.Height())
	return nil
}

// State reports the current session state.
func (p *Processor) State() State {
	if p.history == nil {
		return State{}
	}
	g := p.history.Grid()
	return State{
		Width:       g.Width(),
		Height:      g.Height(),
		Highlighted: p.history.Highlighted(),
		Edits:       p.history.Len(),
	}
}

// Apply runs one operation. Any operation other than OpDelete issued while
// a highlight is pending cancels the highlight first; OpUndo then also
// restores the previous edit, if there is one. OpQuit only cancels.
//
// A failed snapshot is reported as an ErrSnapshot error: the edit itself
// has been applied.
func (p *Processor) Apply(op Op) error {
	if p.history == nil {
		return fmt.Errorf("%w: no image loaded", ErrInvalidState)
	}
	h := p.history

	switch op {
	case OpHighlightBlue, OpHighlightEnergy, OpDelete, OpUndo, OpQuit:
	default:
		return fmt.Errorf("%w %q", ErrUnknownOp, rune(op))
	}

	var err error
	switch op {
	case OpHighlightBlue:
		_, err = h.HighlightBluest()
	case OpHighlightEnergy:
		_, err = h.HighlightLowestEnergy()
	case OpDelete:
		err = h.DeleteHighlighted()
	case OpUndo:
		if h.Highlighted() {
			err = h.Cancel()
			if err == nil && h.CanUndo() {
				err = h.Undo()
			}
		} else {
			err = h.Undo()
		}
	case OpQuit:
		err = h.Cancel()
	}
	if err != nil {
		return err
	}
	p.logger().Debug("applied", "op", op, "width", h.Grid().Width(), "edits", h.Len())

	if p.Validate {
		if err := h.Grid().Validate(); err != nil {
			return fmt.Errorf("grid corrupted after %v: %w", op, err)
		}
	}
	if op != OpQuit {
		if err := p.snapshot(); err != nil {
			return fmt.Errorf("%w after %v: %w", ErrSnapshot, op, err)
		}
	}
	return nil
}

// Save writes the current image to w in the given format.
func (p *Processor) Save(w io.Writer, format imaging.Format) error {
	if p.history == nil {
		return fmt.Errorf("%w: no image loaded", ErrInvalidState)
	}
	return encodeImage(w, p.history.Grid(), format)
}

// SaveFile writes the current image to path, choosing the format from its extension.
func (p *Processor) SaveFile(path string) error {
	format, err := formatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create the destination file: %w", err)
	}
	if err := p.Save(f, format); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// snapshot writes the numbered intermediate image when SnapshotDir is set.
func (p *Processor) snapshot() error {
	if p.SnapshotDir == "" {
		return nil
	}
	dir := filepath.Join(p.SnapshotDir, p.id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("unable to create the snapshot directory: %w", err)
	}
	p.snapshots++
	ext := strings.ToLower(strings.TrimPrefix(p.SnapshotFormat, "."))
	if ext == "" {
		ext = "png"
	}
	name := filepath.Join(dir, fmt.Sprintf("step_%03d.%s", p.snapshots, ext))
	if err := p.SaveFile(name); err != nil {
		return err
	}
	p.logger().Debug("snapshot saved", "path", name)
	return nil
}

func (p *Processor) logger() *log.Logger {
	if p.Logger == nil {
		return log.New(io.Discard)
	}
	return p.Logger
}
