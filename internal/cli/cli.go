// Package cli implements the carve command-line interface.
//
// The commands are:
//   - edit: interactive session over one image (highlight, delete, undo)
//   - run: apply an operation script to an image or a directory of images
//   - energy: export the energy map of an image
//
// All commands support --verbose (-v) for debug-level logging and --config
// to read settings from a TOML file. Loggers are passed through
// context.Context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pixelseam/carve"
	"github.com/pixelseam/carve/internal/config"
)

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	if v != "" {
		version = v
	}
	commit = c
	date = d
}

// globalOpts holds the flags shared by every command and the settings
// resolved from them.
type globalOpts struct {
	verbose    bool
	configPath string
	cfg        config.Config
}

// Execute runs the carve CLI with the process arguments.
func Execute(ctx context.Context) error {
	return newRootCmd(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx)
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &globalOpts{cfg: config.Default()}

	root := &cobra.Command{
		Use:           "carve",
		Short:         "Interactive seam carving editor",
		Long:          `carve narrows images by removing connected vertical seams of minimum energy, one column at a time, with every edit reversible.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if opts.verbose {
				level = log.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			cmd.SetContext(withLogger(cmd.Context(), logger))

			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			logger.Debug("configuration loaded", "path", opts.configPath)
			return nil
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate(fmt.Sprintf("carve %s\ncommit: %s\nbuilt: %s\n", version, commit, date))

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "configuration file (default: <user config dir>/carve/config.toml)")

	root.AddCommand(newEditCmd(opts))
	root.AddCommand(newRunCmd(opts))
	root.AddCommand(newEnergyCmd())

	return root
}

// loadConfig reads the configuration file. Without an explicit path the
// default location is tried and may be missing.
func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path, false)
	}
	path, err := config.DefaultPath()
	if err != nil {
		return config.Default(), nil
	}
	return config.Load(path, true)
}

// newProcessor builds a session template from the configuration.
func (o *globalOpts) newProcessor(logger *log.Logger) (*carve.Processor, error) {
	if _, err := carve.ParseFormat(o.cfg.Output.Format); err != nil {
		return nil, err
	}
	p := &carve.Processor{
		BlueColor:   o.cfg.Highlight.Blue,
		EnergyColor: o.cfg.Highlight.Energy,
		Validate:    o.verbose,
		Logger:      logger,
	}
	if o.cfg.Output.Snapshots {
		p.SnapshotDir = o.cfg.Output.Dir
		p.SnapshotFormat = o.cfg.Output.Format
	}
	return p, nil
}
