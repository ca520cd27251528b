package carve

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// NewGridFromImage builds a grid holding the pixels of img.
// Alpha is dropped: every pixel of the grid is opaque.
func NewGridFromImage(img image.Image) (*Grid, error) {
	src := imgToNRGBA(img)
	width, height := src.Bounds().Dx(), src.Bounds().Dy()

	return buildGrid(width, height, func(x, y int) color.NRGBA {
		i := src.PixOffset(x, y)
		return color.NRGBA{
			R: src.Pix[i+0],
			G: src.Pix[i+1],
			B: src.Pix[i+2],
			A: 0xff,
		}
	})
}

// decodeImage decodes an image of any registered format, applying the EXIF
// orientation when present.
func decodeImage(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("could not decode the image: %w", err)
	}
	return img, nil
}

// formatFromPath returns the output format matching the file extension.
// An empty extension (stdout, for example) defaults to PNG.
func formatFromPath(path string) (imaging.Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return imaging.PNG, nil
	}
	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return format, nil
}

// ParseFormat parses a format name such as "png" or "jpg".
func ParseFormat(name string) (imaging.Format, error) {
	format, err := imaging.FormatFromExtension(strings.TrimPrefix(name, "."))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
	return format, nil
}

// encodeImage writes the grid into w using the given format.
func encodeImage(w io.Writer, g *Grid, format imaging.Format) error {
	img, err := g.Image()
	if err != nil {
		return err
	}
	if err := imaging.Encode(w, img, format, imaging.JPEGQuality(100)); err != nil {
		if errors.Is(err, imaging.ErrUnsupportedFormat) {
			return fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
		}
		return fmt.Errorf("could not encode the image: %w", err)
	}
	return nil
}

// imgToNRGBA converts any image type to *image.NRGBA with min-point at (0, 0).
func imgToNRGBA(img image.Image) *image.NRGBA {
	srcBounds := img.Bounds()
	if srcBounds.Min.X == 0 && srcBounds.Min.Y == 0 {
		if src0, ok := img.(*image.NRGBA); ok {
			return src0
		}
	}
	srcMinX := srcBounds.Min.X
	srcMinY := srcBounds.Min.Y

	dstBounds := srcBounds.Sub(srcBounds.Min)
	dstW := dstBounds.Dx()
	dstH := dstBounds.Dy()
	dst := image.NewNRGBA(dstBounds)

	switch src := img.(type) {
	case *image.NRGBA:
		rowSize := srcBounds.Dx() * 4
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			copy(dst.Pix[di:di+rowSize], src.Pix[si:si+rowSize])
		}
	case *image.YCbCr:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				srcX := srcMinX + dstX
				srcY := srcMinY + dstY
				siy := src.YOffset(srcX, srcY)
				sic := src.COffset(srcX, srcY)
				r, g, b := color.YCbCrToRGB(src.Y[siy], src.Cb[sic], src.Cr[sic])
				dst.Pix[di+0] = r
				dst.Pix[di+1] = g
				dst.Pix[di+2] = b
				dst.Pix[di+3] = 0xff
				di += 4
			}
		}
	default:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				c := color.NRGBAModel.Convert(img.At(srcMinX+dstX, srcMinY+dstY)).(color.NRGBA)
				dst.Pix[di+0] = c.R
				dst.Pix[di+1] = c.G
				dst.Pix[di+2] = c.B
				dst.Pix[di+3] = c.A
				di += 4
			}
		}
	}

	return dst
}
