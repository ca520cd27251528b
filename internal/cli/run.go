package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pixelseam/carve"
)

// runOpts holds the command-line flags for the run command.
type runOpts struct {
	output    string // destination file, directory or "-"
	script    string // operation letters, e.g. "ed" to carve one seam
	workers   int    // images edited concurrently in directory mode
	snapshots string // directory receiving an image after every edit
}

// newRunCmd creates the run command, which applies an operation script
// without user interaction.
func newRunCmd(g *globalOpts) *cobra.Command {
	var opts runOpts

	cmd := &cobra.Command{
		Use:   "run <image|dir|url|->",
		Short: "Apply an operation script to an image or a directory of images",
		Long: `Apply an operation script to an image, a directory of images, an URL or stdin ("-").

The script is a sequence of operation letters:
  b  highlight the bluest seam
  e  highlight the lowest energy seam
  d  delete the highlighted seam
  u  undo the last edit
  q  stop here

For example "edededed" removes four seams of lowest energy.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			p, err := g.newProcessor(logger)
			if err != nil {
				return err
			}
			if opts.snapshots != "" {
				p.SnapshotDir = opts.snapshots
			}
			workers := g.cfg.Batch.Workers
			if cmd.Flags().Changed("workers") {
				workers = opts.workers
			}

			op := &carve.Ops{
				Src:      args[0],
				Dst:      opts.output,
				PipeName: pipeName,
				Script:   opts.script,
				Workers:  workers,
				Status:   cmd.ErrOrStderr(),
			}
			prog := newProgress(logger)
			results, err := op.Run(ctx, p)
			if err != nil {
				return fmt.Errorf("carving failed: %w", err)
			}
			prog.done(fmt.Sprintf("Carved %d image(s)", len(results)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", pipeName, "output file or directory (- for stdout)")
	cmd.Flags().StringVarP(&opts.script, "script", "s", "", "operation script, e.g. \"ed\" (required)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "number of images processed concurrently (default from config)")
	cmd.Flags().StringVar(&opts.snapshots, "snapshots", "", "write an image after every edit into this directory")
	cmd.MarkFlagRequired("script")

	return cmd
}
