package cli

import (
	"fmt"
	"os"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pixelseam/carve"
)

const (
	kindBlue     = "blue"
	kindGradient = "gradient"
)

// energyFor returns the energy function named kind.
func energyFor(kind string) (carve.Energy, error) {
	switch kind {
	case kindBlue:
		return carve.BlueEnergy{}, nil
	case kindGradient:
		return carve.GradientEnergy{}, nil
	}
	return nil, fmt.Errorf("unknown energy %q, expected %q or %q", kind, kindBlue, kindGradient)
}

// newEnergyCmd creates the energy command, which renders the energy of
// every pixel as a grayscale image.
func newEnergyCmd() *cobra.Command {
	var (
		output string
		kind   string
	)

	cmd := &cobra.Command{
		Use:   "energy <image|url|->",
		Short: "Export the energy map of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			e, err := energyFor(kind)
			if err != nil {
				return err
			}

			p := &carve.Processor{Logger: logger}
			if args[0] == pipeName {
				if isTerminal(cmd.InOrStdin()) {
					return fmt.Errorf("`-` should be used with a pipe for stdin")
				}
				err = p.Load(cmd.InOrStdin())
			} else {
				err = p.LoadFile(ctx, args[0])
			}
			if err != nil {
				return err
			}

			img, err := carve.EnergyMap(p.Grid(), e)
			if err != nil {
				return err
			}

			if output == pipeName {
				if f, ok := cmd.OutOrStdout().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
					return fmt.Errorf("`-` should be used with a pipe for stdout")
				}
				return imaging.Encode(cmd.OutOrStdout(), img, imaging.PNG)
			}
			if err := imaging.Save(img, output); err != nil {
				return fmt.Errorf("could not save the energy map: %w", err)
			}
			logger.Info("energy map saved", "path", output, "energy", kind)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", pipeName, "output file (- for stdout)")
	cmd.Flags().StringVarP(&kind, "kind", "k", kindGradient, "energy function: blue or gradient")

	return cmd
}
