package carve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/pixelseam/carve/utils"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// SupportedExtensions lists the image extensions picked up in directory mode.
var SupportedExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif", ".tif", ".tiff", ".webp"}

// Ops describes a scripted run: Script is applied to Src and the result is
// written to Dst. When Src is a directory every supported image below it is
// edited concurrently and written into the Dst directory.
type Ops struct {
	Src, Dst, PipeName string
	Script             string
	Workers            int

	// Status receives progress and result messages. Nil discards them.
	Status io.Writer
}

// Result holds the outcome of editing one image.
type Result struct {
	Src, Dst string
	Err      error
}

// ParseScript converts a script such as "bdbd" into operations.
// Whitespace and commas are ignored; an OpQuit ends the script.
func ParseScript(script string) ([]Op, error) {
	var ops []Op
	for i, r := range script {
		if r == ',' || strings.ContainsRune(" \t\r\n", r) {
			continue
		}
		op, err := ParseOp(r)
		if err != nil {
			return nil, fmt.Errorf("script position %d: %w", i, err)
		}
		ops = append(ops, op)
		if op == OpQuit {
			break
		}
	}
	return ops, nil
}

// Run applies the script to the source image or directory. The settings of p
// (colors, snapshots, logger) are copied into a new session for every image.
// In directory mode a failing image does not stop the others: every outcome
// is reported in the returned results and the first failure is returned.
func (op *Ops) Run(ctx context.Context, p *Processor) ([]Result, error) {
	ops, err := ParseScript(op.Script)
	if err != nil {
		return nil, err
	}
	status := op.Status
	if status == nil {
		status = io.Discard
	}

	spinner := utils.NewSpinner(status, fmt.Sprintf("%s %s",
		utils.DecorateText("✂ CARVE", utils.StatusMessage),
		utils.DecorateText("⇢ carving seams...", utils.DefaultMessage),
	), 80*time.Millisecond, true)

	now := time.Now()

	var isDir bool
	if op.Src != op.PipeName && !utils.IsValidUrl(op.Src) {
		fs, err := os.Stat(op.Src)
		if err != nil {
			return nil, fmt.Errorf("failed to load the source image: %w", err)
		}
		isDir = fs.IsDir()
	}
	if isDir && op.Dst == op.PipeName {
		return nil, fmt.Errorf("a directory source needs a destination directory, not %q", op.PipeName)
	}

	spinner.Start()
	var results []Result
	if isDir {
		results, err = op.runDir(ctx, p, ops)
	} else {
		if op.Dst != op.PipeName {
			if _, ferr := formatFromPath(op.Dst); ferr != nil {
				spinner.Stop()
				return nil, ferr
			}
		}
		res := Result{Src: op.Src, Dst: op.Dst}
		res.Err = op.process(ctx, p.clone(), ops, op.Src, op.Dst)
		results, err = []Result{res}, res.Err
	}
	if err != nil {
		spinner.StopMsg = fmt.Sprintf("%s %s\n",
			utils.DecorateText("carving failed", utils.DefaultMessage),
			utils.DecorateText("✘", utils.ErrorMessage),
		)
	} else {
		spinner.StopMsg = fmt.Sprintf("%s %s\n",
			utils.DecorateText("the seams have been carved successfully", utils.SuccessMessage),
			utils.DecorateText("✔", utils.SuccessMessage),
		)
	}
	spinner.Stop()

	for _, res := range results {
		op.printOpStatus(status, res)
	}
	if err == nil {
		fmt.Fprintf(status, "\nExecution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	}
	return results, err
}

// runDir edits every supported image found below op.Src.
func (op *Ops) runDir(ctx context.Context, p *Processor, ops []Op) ([]Result, error) {
	if err := os.MkdirAll(op.Dst, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create the destination directory: %w", err)
	}

	workers := op.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = utils.Min(workers, maxWorkers)

	// A failing image does not stop the others.
	var g errgroup.Group
	g.SetLimit(workers)

	paths, errc := walkDir(ctx, op.Src, SupportedExtensions)
	ch := make(chan Result)

	go func() {
		defer close(ch)
		for src := range paths {
			g.Go(func() error {
				return op.consumer(ctx, p.clone(), ops, src, ch)
			})
		}
		g.Wait()
	}()

	var results []Result
	for res := range ch {
		results = append(results, res)
	}
	err := g.Wait()
	if werr := <-errc; werr != nil && !errors.Is(werr, context.Canceled) {
		err = errors.Join(err, werr)
	}
	return results, err
}

// consumer edits the image at src and sends the result to ch.
func (op *Ops) consumer(ctx context.Context, p *Processor, ops []Op, src string, ch chan<- Result) error {
	dst := destPath(op.Src, op.Dst, src)
	err := op.process(ctx, p, ops, src, dst)
	ch <- Result{Src: src, Dst: dst, Err: err}
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	return nil
}

// destPath maps an image found below srcDir to its output path below dstDir.
// Images in formats without an encoder are written as PNG.
func destPath(srcDir, dstDir, src string) string {
	rel, err := filepath.Rel(srcDir, src)
	if err != nil {
		rel = filepath.Base(src)
	}
	rel = strings.ReplaceAll(rel, string(filepath.Separator), "_")
	if _, err := formatFromPath(rel); err != nil {
		rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ".png"
	}
	return filepath.Join(dstDir, rel)
}

// process loads in, applies ops and saves the result to out. A failed
// snapshot does not stop the script; the first one is returned once the
// result is saved.
func (op *Ops) process(ctx context.Context, p *Processor, ops []Op, in, out string) error {
	if err := op.load(ctx, p, in); err != nil {
		return err
	}
	var snapErr error
	for i, o := range ops {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.Apply(o); err != nil {
			err = fmt.Errorf("operation %d (%v): %w", i+1, o, err)
			if !errors.Is(err, ErrSnapshot) {
				return err
			}
			if snapErr == nil {
				snapErr = err
			}
		}
	}

	if out == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("`-` should be used with a pipe for stdout")
		}
		if err := p.Save(os.Stdout, PipeFormat); err != nil {
			return err
		}
		return snapErr
	}
	if err := p.SaveFile(out); err != nil {
		return err
	}
	return snapErr
}

// PipeFormat is the format written to stdout.
var PipeFormat = imaging.PNG

// load reads the source image, be it a file, an URL or stdin.
func (op *Ops) load(ctx context.Context, p *Processor, in string) error {
	if in != op.PipeName {
		return p.LoadFile(ctx, in)
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("`-` should be used with a pipe for stdin")
	}
	return p.Load(os.Stdin)
}

// printOpStatus displays the relevant information about the processed image.
func (op *Ops) printOpStatus(w io.Writer, res Result) {
	if res.Err != nil {
		fmt.Fprintf(w, "%s %s\n",
			utils.DecorateText(fmt.Sprintf("Error carving %s:", filepath.Base(res.Src)), utils.ErrorMessage),
			utils.DecorateText(res.Err.Error(), utils.DefaultMessage),
		)
		return
	}
	if res.Dst != op.PipeName {
		fmt.Fprintf(w, "The image has been saved as: %s\n", utils.DecorateText(res.Dst, utils.SuccessMessage))
	}
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each supported file to a new channel.
// It finishes when the context is cancelled.
func walkDir(ctx context.Context, src string, srcExts []string) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if !utils.Contains(srcExts, strings.ToLower(filepath.Ext(d.Name()))) {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case pathChan <- path:
			}
			return nil
		})
	}()
	return pathChan, errChan
}

// clone returns a fresh session carrying the settings of p.
func (p *Processor) clone() *Processor {
	return &Processor{
		BlueColor:      p.BlueColor,
		EnergyColor:    p.EnergyColor,
		SnapshotDir:    p.SnapshotDir,
		SnapshotFormat: p.SnapshotFormat,
		Validate:       p.Validate,
		Logger:         p.Logger,
	}
}
