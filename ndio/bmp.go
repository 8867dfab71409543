// SPDX-License-Identifier: MIT

package ndio

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"math"

	"golang.org/x/image/bmp"

	"github.com/katalvlaran/lvmarray/marray"
)

// rgbChannels is the extent of the channel axis of a colour image.
const rgbChannels = 3

// SaveBMP encodes a (width, height) view as an 8-bit grayscale BMP or a
// (width, height, 3) view as a 24-bit RGB BMP. Samples are clamped to [0,255].
// Errors: marray.ErrNilView, marray.ErrEmptyView, marray.ErrDimensionMismatch,
// ErrShapeRange, I/O errors.
func SaveBMP[T marray.Number](w io.Writer, v *marray.View[T]) error {
	const fn = "SaveBMP"
	if err := marray.ValidateNotNil(v); err != nil {
		return ioErrorf(fn, err)
	}
	dim := v.Dimension()
	if dim != 2 && dim != 3 {
		return ioErrorf(fn, fmt.Errorf("%d axes, want 2 or 3: %w", dim, marray.ErrDimensionMismatch))
	}
	if err := validateImage(v, dim); err != nil {
		return ioErrorf(fn, err)
	}
	width, height := v.ShapeAt(0), v.ShapeAt(1)
	samples := clampSamples(v.FlattenOrder(marray.LastMajorOrder), math.MaxUint8)
	rect := image.Rect(0, 0, width, height)

	var img image.Image
	if dim == 2 {
		g := image.NewGray(rect)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				g.Pix[y*g.Stride+x] = uint8(samples[x+y*width])
			}
		}
		img = g
	} else {
		if c := v.ShapeAt(2); c != rgbChannels {
			return ioErrorf(fn, fmt.Errorf("%d channels, want %d: %w", c, rgbChannels, ErrShapeRange))
		}
		plane := width * height
		rgba := image.NewRGBA(rect)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				p := rgba.Pix[y*rgba.Stride+4*x:]
				for c := 0; c < rgbChannels; c++ {
					p[c] = uint8(samples[x+y*width+c*plane])
				}
				p[3] = math.MaxUint8
			}
		}
		img = rgba
	}
	if err := bmp.Encode(w, img); err != nil {
		return ioErrorf(fn, err)
	}

	return nil
}

// LoadBMP decodes a BMP. Grayscale images (including paletted images whose
// palette is all gray) load as (width, height); everything else loads as
// (width, height, 3) with one plane per channel. Both use LastMajorOrder.
// Errors: ErrFormat, marray.ErrTooLarge.
func LoadBMP[T marray.Number](r io.Reader, opts ...Option) (*marray.Array[T], error) {
	const fn = "LoadBMP"
	o := gatherOptions(opts...)
	img, err := bmp.Decode(r)
	if err != nil {
		return nil, ioErrorf(fn, fmt.Errorf("%w: %w", ErrFormat, err))
	}
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	gray := isGray(img)
	shape := []int{width, height, rgbChannels}
	if gray {
		shape = shape[:2]
	}
	a, err := marray.NewArray[T](shape,
		marray.WithOrder(marray.LastMajorOrder), marray.WithMaxElements(o.maxElements), marray.WithSkipInit())
	if err != nil {
		return nil, ioErrorf(fn, err)
	}
	data, plane := a.Data(), width*height
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.RGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
			i := x + y*width
			data[i] = T(c.R)
			if !gray {
				data[i+plane] = T(c.G)
				data[i+2*plane] = T(c.B)
			}
		}
	}
	slog.Debug("ndio: loaded bmp", "width", width, "height", height, "gray", gray)

	return a, nil
}

// ReadBMPShape returns the shape LoadBMP would produce, reading only the
// header.
// Errors: ErrFormat.
func ReadBMPShape(r io.Reader) ([]int, error) {
	cfg, err := bmp.DecodeConfig(r)
	if err != nil {
		return nil, ioErrorf("ReadBMPShape", fmt.Errorf("%w: %w", ErrFormat, err))
	}
	if p, ok := cfg.ColorModel.(color.Palette); ok && grayPalette(p) {
		return []int{cfg.Width, cfg.Height}, nil
	}

	return []int{cfg.Width, cfg.Height, rgbChannels}, nil
}

func isGray(img image.Image) bool {
	switch m := img.(type) {
	case *image.Gray:
		return true
	case *image.Paletted:
		return grayPalette(m.Palette)
	}

	return false
}

func grayPalette(p color.Palette) bool {
	for _, c := range p {
		r, g, b, _ := c.RGBA()
		if r != g || g != b {
			return false
		}
	}

	return true
}
