package carve

import (
	"bytes"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/google/go-cmp/cmp"
	"github.com/pixelseam/carve/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImage_ImgToNRGBA(t *testing.T) {
	rect := image.Rect(-1, -1, 15, 15)
	colors := palette.Plan9
	testCases := []struct {
		name string
		img  image.Image
	}{
		{
			name: "NRGBA",
			img:  makeNRGBAImage(rect, colors),
		},
		{
			name: "RGBA",
			img:  makeRGBAImage(rect, colors),
		},
		{
			name: "YCbCr-444",
			img:  makeYCbCrImage(rect, colors, image.YCbCrSubsampleRatio444),
		},
		{
			name: "YCbCr-422",
			img:  makeYCbCrImage(rect, colors, image.YCbCrSubsampleRatio422),
		},
		{
			name: "YCbCr-420",
			img:  makeYCbCrImage(rect, colors, image.YCbCrSubsampleRatio420),
		},
		{
			name: "YCbCr-440",
			img:  makeYCbCrImage(rect, colors, image.YCbCrSubsampleRatio440),
		},
		{
			name: "YCbCr-410",
			img:  makeYCbCrImage(rect, colors, image.YCbCrSubsampleRatio410),
		},
		{
			name: "YCbCr-411",
			img:  makeYCbCrImage(rect, colors, image.YCbCrSubsampleRatio411),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dst := imgToNRGBA(tc.img)
			r := tc.img.Bounds()
			require.Equal(t, image.Rect(0, 0, r.Dx(), r.Dy()), dst.Bounds())

			for y := r.Min.Y; y < r.Max.Y; y++ {
				i := dst.PixOffset(0, y-r.Min.Y)
				got := dst.Pix[i : i+r.Dx()*4]
				if want := readRow(tc.img, y); !compareBytes(got, want, 1) {
					t.Errorf("horizontal line (y=%d): got %v want %v", y, got, want)
				}
			}
		})
	}
}

func TestImage_ShouldKeepZeroBasedNRGBA(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	assert.Same(t, img, imgToNRGBA(img))
}

func TestImage_FormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    imaging.Format
		wantErr bool
	}{
		{path: "out.png", want: imaging.PNG},
		{path: "out.JPEG", want: imaging.JPEG},
		{path: "dir/out.jpg", want: imaging.JPEG},
		{path: "out.bmp", want: imaging.BMP},
		{path: "out.tif", want: imaging.TIFF},
		{path: "out.gif", want: imaging.GIF},
		{path: "-", want: imaging.PNG},
		{path: "out.webp", wantErr: true},
		{path: "out.txt", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := formatFromPath(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	f, err := ParseFormat("jpg")
	require.NoError(t, err)
	assert.Equal(t, imaging.JPEG, f)
	_, err = ParseFormat("webp")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestImage_EncodeDecodeLossless(t *testing.T) {
	for _, format := range []imaging.Format{imaging.PNG, imaging.BMP, imaging.TIFF} {
		t.Run(format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, encodeImage(&buf, sampleGrid(t), format))

			img, err := decodeImage(&buf)
			require.NoError(t, err)
			g, err := NewGridFromImage(img)
			require.NoError(t, err)
			if diff := cmp.Diff(sampleColors, colorRows(g)); diff != "" {
				t.Errorf("colors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestImage_DecodeShouldFailOnGarbage(t *testing.T) {
	_, err := decodeImage(bytes.NewReader([]byte("garbage")))
	assert.Error(t, err)
}

func makeRGBAImage(rect image.Rectangle, colors []color.Color) *image.RGBA {
	img := image.NewRGBA(rect)
	fillDrawImage(img, colors)
	return img
}

func makeYCbCrImage(rect image.Rectangle, colors []color.Color, sr image.YCbCrSubsampleRatio) *image.YCbCr {
	img := image.NewYCbCr(rect, sr)
	j := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			iy := img.YOffset(x, y)
			ic := img.COffset(x, y)
			c := color.NRGBAModel.Convert(colors[j]).(color.NRGBA)
			img.Y[iy], img.Cb[ic], img.Cr[ic] = color.RGBToYCbCr(c.R, c.G, c.B)
			j++
		}
	}
	return img
}

func makeNRGBAImage(rect image.Rectangle, colors []color.Color) *image.NRGBA {
	img := image.NewNRGBA(rect)
	fillDrawImage(img, colors)
	return img
}

func fillDrawImage(img draw.Image, colors []color.Color) {
	colorsNRGBA := make([]color.NRGBA, len(colors))
	for i, c := range colors {
		nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
		nrgba.A = uint8(i % 256)
		colorsNRGBA[i] = nrgba
	}
	rect := img.Bounds()
	i := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.Set(x, y, colorsNRGBA[i])
			i++
		}
	}
}

func readRow(img image.Image, y int) []uint8 {
	row := make([]byte, img.Bounds().Dx()*4)
	i := 0
	for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
		c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
		row[i+0] = c.R
		row[i+1] = c.G
		row[i+2] = c.B
		row[i+3] = c.A
		i += 4
	}
	return row
}

func compareBytes(a, b []uint8, delta int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if utils.Abs(int(a[i])-int(b[i])) > delta {
			return false
		}
	}
	return true
}
