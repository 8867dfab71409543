// SPDX-License-Identifier: MIT

package ndio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/katalvlaran/lvmarray/marray"
)

const (
	pgmMagic    = "P5"
	pgmMaxValue = 65535
)

// LoadPGM reads a binary (P5) grayscale image into a (width, height) array
// in LastMajorOrder. Samples wider than T's integer range are rejected.
// Errors: ErrFormat, ErrUnsupportedType, ErrShapeRange, marray.ErrTooLarge.
func LoadPGM[T marray.Number](r io.Reader, opts ...Option) (*marray.Array[T], error) {
	a, err := loadPGM[T](r, gatherOptions(opts...))
	if err != nil {
		return nil, ioErrorf("LoadPGM", err)
	}

	return a, nil
}

// PGMHeader is the parsed header of a binary PGM image.
type PGMHeader struct {
	Width, Height int
	MaxValue      int // samples use two big-endian bytes when above 255
}

// ReadPGMHeader reads the header of a binary PGM, leaving r positioned at the
// first sample when r is a *bufio.Reader.
// Errors: ErrFormat, ErrShapeRange.
func ReadPGMHeader(r io.Reader) (*PGMHeader, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	h, err := readPGMHeader(br)
	if err != nil {
		return nil, ioErrorf("ReadPGMHeader", err)
	}

	return h, nil
}

func readPGMHeader(br *bufio.Reader) (*PGMHeader, error) {
	magic := make([]byte, 2)
	if _, err := io.ReadFull(br, magic); err != nil || string(magic) != pgmMagic {
		return nil, fmt.Errorf("magic %q: %w", magic, ErrFormat)
	}
	var dims [3]int
	for i := range dims {
		n, err := pgmNumber(br)
		if err != nil {
			return nil, err
		}
		dims[i] = n
	}
	h := &PGMHeader{Width: dims[0], Height: dims[1], MaxValue: dims[2]}
	if h.Width == 0 || h.Height == 0 {
		return nil, fmt.Errorf("%dx%d image: %w", h.Width, h.Height, ErrShapeRange)
	}
	if h.MaxValue == 0 || h.MaxValue > pgmMaxValue {
		return nil, fmt.Errorf("maxval %d: %w", h.MaxValue, ErrFormat)
	}
	// exactly one whitespace byte separates the header from the samples
	if c, err := br.ReadByte(); err != nil || !isSpace(c) {
		return nil, fmt.Errorf("header terminator: %w", ErrFormat)
	}

	return h, nil
}

func loadPGM[T marray.Number](r io.Reader, o Options) (*marray.Array[T], error) {
	br := bufio.NewReader(r)
	h, err := readPGMHeader(br)
	if err != nil {
		return nil, err
	}
	if !fitsSample[T](h.MaxValue) {
		return nil, fmt.Errorf("maxval %d into %s: %w", h.MaxValue, marray.KindOf[T](), ErrUnsupportedType)
	}
	shape := []int{h.Width, h.Height}
	n, err := checkBudget(shape, marray.KindOf[T]().Size(), o)
	if err != nil {
		return nil, err
	}
	d := dtype{kind: marray.KindUint8}
	if h.MaxValue > math.MaxUint8 {
		d = dtype{kind: marray.KindUint16, order: binary.BigEndian}
	}
	if avail, known := remaining(r); known {
		if err = checkAvailable(avail+int64(br.Buffered()), true, int64(n)*int64(d.size())); err != nil {
			return nil, err
		}
	}
	a, err := marray.NewArray[T](shape, marray.WithOrder(marray.LastMajorOrder), marray.WithSkipInit())
	if err != nil {
		return nil, err
	}
	if err = readElements(br, a.Data(), d); err != nil {
		return nil, err
	}
	slog.Debug("ndio: loaded pgm", "width", h.Width, "height", h.Height, "maxval", h.MaxValue)

	return a, nil
}

// SavePGM writes a 2-D (width, height) view as a binary PGM. Samples are
// clamped to [0, 2^depth-1]; the depth comes from WithBitDepth or the element
// type.
// Errors: marray.ErrNilView, marray.ErrEmptyView, marray.ErrDimensionMismatch,
// ErrShapeRange, I/O errors.
func SavePGM[T marray.Number](w io.Writer, v *marray.View[T], opts ...Option) error {
	const fn = "SavePGM"
	if err := validateImage(v, 2); err != nil {
		return ioErrorf(fn, err)
	}
	o := gatherOptions(opts...)
	depth := o.bitDepth
	if depth == DefaultBitDepth {
		depth = 16
		if k := marray.KindOf[T](); k.IsInteger() && k.Size() == 1 {
			depth = 8
		}
	}
	maxval, d := math.MaxUint8, dtype{kind: marray.KindUint8}
	if depth == 16 {
		maxval, d = math.MaxUint16, dtype{kind: marray.KindUint16, order: binary.BigEndian}
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n%d\n", pgmMagic, v.ShapeAt(0), v.ShapeAt(1), maxval); err != nil {
		return ioErrorf(fn, err)
	}
	samples := clampSamples(v.FlattenOrder(marray.LastMajorOrder), maxval)
	if err := writeElements(bw, samples, d); err != nil {
		return ioErrorf(fn, err)
	}
	if err := bw.Flush(); err != nil {
		return ioErrorf(fn, err)
	}

	return nil
}

// pgmNumber reads a decimal header field, skipping whitespace and comments.
// The byte after the digits is left unread.
func pgmNumber(br *bufio.Reader) (int, error) {
	c, err := br.ReadByte()
	for err == nil && (isSpace(c) || c == '#') {
		if c == '#' {
			_, err = br.ReadString('\n')
			if err != nil {
				break
			}
		}
		c, err = br.ReadByte()
	}
	if err != nil || c < '0' || c > '9' {
		return 0, fmt.Errorf("header field: %w", ErrFormat)
	}
	n := 0
	for err == nil && c >= '0' && c <= '9' {
		n = n*10 + int(c-'0')
		if n > math.MaxInt32 {
			return 0, fmt.Errorf("header field: %w", ErrShapeRange)
		}
		c, err = br.ReadByte()
	}
	if err == nil {
		err = br.UnreadByte()
	} else if err == io.EOF {
		err = nil
	}
	if err != nil {
		return 0, fmt.Errorf("header field: %w", err)
	}

	return n, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// fitsSample reports whether every sample up to maxval converts to T exactly.
func fitsSample[T marray.Number](maxval int) bool {
	k := marray.KindOf[T]()
	if !k.IsInteger() || k.Size() >= 4 {
		return true
	}
	bits := 8*k.Size() - 1
	if k.IsUnsigned() {
		bits++
	}

	return maxval < 1<<bits
}

// clampSamples converts values to image samples in [0, maxval].
func clampSamples[T marray.Number](values []T, maxval int) []uint16 {
	out := make([]uint16, len(values))
	for i, x := range values {
		f := float64(x)
		switch {
		case f <= 0 || math.IsNaN(f):
			out[i] = 0
		case f >= float64(maxval):
			out[i] = uint16(maxval)
		default:
			out[i] = uint16(f)
		}
	}

	return out
}

// validateImage checks a view bound for an image encoder of dim axes.
func validateImage[T any](v *marray.View[T], dim int) error {
	if err := marray.ValidateNotNil(v); err != nil {
		return err
	}
	if v.Dimension() != dim {
		return fmt.Errorf("%d axes, want %d: %w", v.Dimension(), dim, marray.ErrDimensionMismatch)
	}
	for axis := 0; axis < 2; axis++ {
		if e := v.ShapeAt(axis); e == 0 || e > math.MaxInt32 {
			return fmt.Errorf("extent %d on axis %d: %w", e, axis, ErrShapeRange)
		}
	}

	return nil
}
