package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pixelseam/carve"
)

// editOpts holds the command-line flags for the edit command.
type editOpts struct {
	output    string // final image, written on quit
	snapshots string // directory receiving an image after every edit
}

// newEditCmd creates the edit command. With a terminal on stdin it runs the
// interactive editor; otherwise it reads one operation per line from stdin.
func newEditCmd(g *globalOpts) *cobra.Command {
	var opts editOpts

	cmd := &cobra.Command{
		Use:   "edit <image|url>",
		Short: "Edit an image interactively, one seam at a time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			if args[0] == pipeName {
				return errors.New("edit reads its commands from stdin, the image must be a file or an URL")
			}
			p, err := g.newProcessor(logger)
			if err != nil {
				return err
			}
			if opts.snapshots != "" {
				p.SnapshotDir = opts.snapshots
			}
			if err := p.LoadFile(ctx, args[0]); err != nil {
				return err
			}
			logger.Debug("image loaded", "path", args[0], "session", p.ID())

			if isTerminal(cmd.InOrStdin()) {
				m := newEditorModel(p, opts.output)
				prog := tea.NewProgram(m, tea.WithContext(ctx), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
				final, err := prog.Run()
				if err != nil {
					return err
				}
				return final.(editorModel).err
			}
			return runMenu(cmd.InOrStdin(), cmd.OutOrStdout(), p, opts.output)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "carved.png", "file the image is saved to on quit")
	cmd.Flags().StringVar(&opts.snapshots, "snapshots", "", "write an image after every edit into this directory")

	return cmd
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// apply runs the operation selected by key and returns the message shown to
// the user. quit is set once the session is over.
func apply(p *carve.Processor, key string) (msg string, quit bool, err error) {
	r, size := utf8.DecodeRuneInString(key)
	op := carve.Op(0)
	if size > 0 && size == len(key) {
		op, err = carve.ParseOp(r)
	} else {
		err = carve.ErrUnknownOp
	}

	before := p.State()
	var prefix string
	if before.Highlighted && op != carve.OpDelete {
		prefix = "Highlight removed. "
	}
	if err != nil {
		if prefix != "" {
			if cerr := p.Apply(carve.OpQuit); cerr != nil {
				return cerr.Error(), false, cerr
			}
		}
		return prefix + "That is not a valid option. Selections must be one of the letters listed.", false, err
	}

	if err := p.Apply(op); err != nil {
		switch {
		case errors.Is(err, carve.ErrLastColumn):
			return "We cannot remove the last seam in the image. Please either undo or quit.", false, err
		case errors.Is(err, carve.ErrNoHighlight):
			return "There is no highlighted seam to remove. Please highlight a seam first.", false, err
		case errors.Is(err, carve.ErrNothingToUndo):
			return "There are no edits to undo. Please try a different command.", false, err
		}
		return err.Error(), false, err
	}

	switch op {
	case carve.OpHighlightBlue:
		msg = "Ready to remove the bluest seam, as highlighted. Press d to confirm, any other letter to cancel."
	case carve.OpHighlightEnergy:
		msg = "Ready to remove the lowest energy seam, as highlighted. Press d to confirm, any other letter to cancel."
	case carve.OpDelete:
		msg = "Seam removed."
	case carve.OpUndo:
		if prefix != "" && before.Edits <= 1 {
			msg = "There are no edits to undo. Please try a different command."
			break
		}
		msg = "Last edit restored."
	case carve.OpQuit:
		msg = "Quitting..."
		quit = true
	}
	return prefix + msg, quit, nil
}

// menu lists the operations valid in the state st.
func menu(st carve.State) []string {
	items := []string{
		"b - Highlight the bluest seam",
		"e - Highlight the lowest energy seam",
	}
	if st.CanDelete() {
		items = append(items, "d - Remove the seam from the image")
	}
	if st.CanUndo() {
		items = append(items, "u - Undo previous edit")
	}
	return append(items, "q - Quit")
}

// runMenu drives a session from a line-oriented command stream. The image
// is saved when a q is read or the stream ends.
func runMenu(in io.Reader, out io.Writer, p *carve.Processor, output string) error {
	fmt.Fprintln(out, "Welcome to the seam carving editor!")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintln(out, "Please choose an option")
		for _, item := range menu(p.State()) {
			fmt.Fprintln(out, item)
		}
		if !scanner.Scan() {
			break
		}
		msg, quit, _ := apply(p, strings.ToLower(strings.TrimSpace(scanner.Text())))
		fmt.Fprintln(out, msg)
		fmt.Fprintln(out)
		if quit {
			return save(out, p, output)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if p.State().Highlighted {
		if _, _, err := apply(p, string(carve.OpQuit)); err != nil {
			return err
		}
	}
	return save(out, p, output)
}

func save(out io.Writer, p *carve.Processor, output string) error {
	if err := p.SaveFile(output); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s saved successfully\n", output)
	return nil
}
