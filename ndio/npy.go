// SPDX-License-Identifier: MIT

// Package ndio - NPY codec.
//
// Layout of a file:
//   - magic "\x93NUMPY", major and minor version bytes;
//   - header length (uint16 LE for v1, uint32 LE for v2/v3);
//   - header: a Python dict literal with 'descr', 'fortran_order' and
//     'shape', space padded and newline terminated so that the data starts
//     on a 64 byte boundary;
//   - raw element data in the order given by 'fortran_order'.
//
// Complexity quicksheet:
//   - LoadNPY/SaveNPY: O(n) with a bounded scratch buffer.
//   - Hyperslabs: O(k) for k slab elements, one ReadAt/WriteAt per run along
//     the fastest axis.

package ndio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvmarray/geometry"
	"github.com/katalvlaran/lvmarray/marray"
)

const (
	npyMagic      = "\x93NUMPY"
	npyAlign      = 64
	npyMaxHeader  = 1 << 20
	npyChunkBytes = 1 << 16
)

// NPYHeader describes the contents of an NPY file.
type NPYHeader struct {
	Major, Minor byte
	Descr        string
	Kind         marray.Kind // decoded element kind; KindFloat32 for f2
	Half         bool        // stored as IEEE half precision
	Order        marray.Order
	Shape        []int
	DataOffset   int64 // byte offset of the first element

	dtype dtype
}

// Size returns the number of stored elements.
func (h *NPYHeader) Size() int { return geometry.Size(h.Shape) }

// ElementSize returns the stored width of one element in bytes.
func (h *NPYHeader) ElementSize() int { return h.dtype.size() }

// FortranOrder reports the stored reversed-axis flag.
func (h *NPYHeader) FortranOrder() bool { return h.Order == marray.LastMajorOrder }

// ReadWriterAt is the random access file a hyperslab write needs.
type ReadWriterAt interface {
	io.ReaderAt
	io.WriterAt
}

// ReadNPYHeader reads and validates the header at the start of r, leaving r
// positioned at the first data byte.
// Errors: ErrFormat, ErrUnsupportedType, ErrShapeRange.
func ReadNPYHeader(r io.Reader) (*NPYHeader, error) {
	h, err := readHeader(r)
	if err != nil {
		return nil, ioErrorf("ReadNPYHeader", err)
	}

	return h, nil
}

// LoadNPY reads a whole NPY stream into a new array with the file's shape and
// order. Stored elements are converted to T.
// Loads are capped by WithMaxElements and WithMaxBytes (DefaultMaxBytes unless
// set). When r can seek, a file holding fewer data bytes than its header
// announces fails with ErrFormat before anything is allocated.
// Errors: ErrFormat, ErrUnsupportedType, ErrShapeRange, marray.ErrTooLarge.
func LoadNPY[T marray.Number](r io.Reader, opts ...Option) (*marray.Array[T], error) {
	a, err := loadNPY[T](r, gatherOptions(opts...))
	if err != nil {
		return nil, ioErrorf("LoadNPY", err)
	}

	return a, nil
}

// LoadNPYInto loads r into a fresh buffer and swaps it into dst on success.
// On failure dst is unchanged.
func LoadNPYInto[T marray.Number](dst *marray.Array[T], r io.Reader, opts ...Option) error {
	if dst == nil {
		return ioErrorf("LoadNPYInto", marray.ErrNilView)
	}
	a, err := loadNPY[T](r, gatherOptions(opts...))
	if err != nil {
		return ioErrorf("LoadNPYInto", err)
	}
	dst.Swap(a)

	return nil
}

// SaveNPY writes v as an NPY stream. The file order follows v.Order(): a
// LastMajorOrder view is stored with fortran_order True.
// Errors: marray.ErrNilView, marray.ErrEmptyView, ErrUnsupportedType, I/O errors.
func SaveNPY[T marray.Number](w io.Writer, v *marray.View[T], opts ...Option) error {
	if err := marray.ValidateNotNil(v); err != nil {
		return ioErrorf("SaveNPY", err)
	}
	d, err := dtypeFor[T](gatherOptions(opts...))
	if err != nil {
		return ioErrorf("SaveNPY", err)
	}
	order := v.Order()
	if err = writeHeader(w, d, order, v.Shape()); err != nil {
		return ioErrorf("SaveNPY", err)
	}
	if err = writeElements(w, v.FlattenOrder(order), d); err != nil {
		return ioErrorf("SaveNPY", err)
	}

	return nil
}

// LoadNPYHyperslab reads the window [base, base+shape) of the NPY file behind
// ra without reading anything else. The result has the window's shape and the
// file's order.
// Errors: as LoadNPY, plus marray.ErrDimensionMismatch and marray.ErrOutOfRange
// for windows that do not fit the file.
func LoadNPYHyperslab[T marray.Number](ra io.ReaderAt, base, shape []int, opts ...Option) (*marray.Array[T], error) {
	const fn = "LoadNPYHyperslab"
	o := gatherOptions(opts...)
	h, err := readHeader(io.NewSectionReader(ra, 0, math.MaxInt64))
	if err != nil {
		return nil, ioErrorf(fn, err)
	}
	if err = checkLoadable[T](h.dtype); err != nil {
		return nil, ioErrorf(fn, err)
	}
	if err = geometry.ValidateRegion(base, shape, h.Shape); err != nil {
		return nil, ioErrorf(fn, err)
	}
	if _, err = checkBudget(shape, marray.KindOf[T]().Size(), o); err != nil {
		return nil, ioErrorf(fn, err)
	}
	size, known := sizeOf(ra)
	if err = checkAvailable(size-h.DataOffset, known, int64(h.Size())*int64(h.dtype.size())); err != nil {
		return nil, ioErrorf(fn, err)
	}
	a, err := marray.NewArray[T](shape, marray.WithOrder(h.Order), marray.WithSkipInit())
	if err != nil {
		return nil, ioErrorf(fn, err)
	}
	data, esz := a.Data(), h.dtype.size()
	var raw []byte
	err = forEachRun(h.Shape, base, shape, h.Order, func(index, offset, n int) error {
		if cap(raw) < n*esz {
			raw = make([]byte, n*esz)
		}
		raw = raw[:n*esz]
		if err := readAtFull(ra, raw, h.DataOffset+int64(offset)*int64(esz)); err != nil {
			return err
		}
		decode(data[index:index+n], raw, h.dtype)

		return nil
	})
	if err != nil {
		return nil, ioErrorf(fn, err)
	}
	slog.Debug("ndio: loaded npy hyperslab", "descr", h.Descr, "base", base, "shape", shape)

	return a, nil
}

// SaveNPYHyperslab overwrites the window of an existing NPY file that starts
// at base and has v's shape. Elements are converted to the stored type.
func SaveNPYHyperslab[T marray.Number](rw ReadWriterAt, base []int, v *marray.View[T]) error {
	const fn = "SaveNPYHyperslab"
	if err := marray.ValidateNotNil(v); err != nil {
		return ioErrorf(fn, err)
	}
	h, err := readHeader(io.NewSectionReader(rw, 0, math.MaxInt64))
	if err != nil {
		return ioErrorf(fn, err)
	}
	shape := v.Shape()
	if err = geometry.ValidateRegion(base, shape, h.Shape); err != nil {
		return ioErrorf(fn, err)
	}
	values, esz := v.FlattenOrder(h.Order), h.dtype.size()
	var raw []byte
	err = forEachRun(h.Shape, base, shape, h.Order, func(index, offset, n int) error {
		if cap(raw) < n*esz {
			raw = make([]byte, n*esz)
		}
		raw = raw[:n*esz]
		encode(raw, values[index:index+n], h.dtype)
		if _, err := rw.WriteAt(raw, h.DataOffset+int64(offset)*int64(esz)); err != nil {
			return fmt.Errorf("write at element %d: %w", offset, err)
		}

		return nil
	})
	if err != nil {
		return ioErrorf(fn, err)
	}

	return nil
}

func loadNPY[T marray.Number](r io.Reader, o Options) (*marray.Array[T], error) {
	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	if err = checkLoadable[T](h.dtype); err != nil {
		return nil, err
	}
	n, err := checkBudget(h.Shape, marray.KindOf[T]().Size(), o)
	if err != nil {
		return nil, err
	}
	avail, known := remaining(r)
	if err = checkAvailable(avail, known, int64(n)*int64(h.dtype.size())); err != nil {
		return nil, err
	}
	a, err := marray.NewArray[T](h.Shape, marray.WithOrder(h.Order), marray.WithSkipInit())
	if err != nil {
		return nil, err
	}
	if err = readElements(r, a.Data(), h.dtype); err != nil {
		return nil, err
	}
	slog.Debug("ndio: loaded npy", "descr", h.Descr, "shape", h.Shape, "order", h.Order)

	return a, nil
}

// forEachRun visits the hyperslab [base, base+shape) of a file with fileShape
// stored in order, one contiguous run along the fastest axis at a time. fn
// gets the run's first scalar index in the slab, its element offset in the
// file and its length.
func forEachRun(fileShape, base, shape []int, order marray.Order, fn func(index, offset, n int) error) error {
	size := geometry.Size(shape)
	if size == 0 {
		return nil
	}
	runLen, runs := 1, slices.Clone(shape)
	if d := len(shape); d > 0 {
		fast := d - 1
		if order == marray.LastMajorOrder {
			fast = 0
		}
		runLen, runs[fast] = shape[fast], 1
	}
	strides := geometry.StridesFromShape(fileShape, order)
	origin := geometry.CoordinatesToOffset(base, strides)
	for r := 0; r < size/runLen; r++ {
		off := origin + geometry.IndexToOffset(r, runs, strides, order)
		if err := fn(r*runLen, off, runLen); err != nil {
			return err
		}
	}

	return nil
}

func readAtFull(ra io.ReaderAt, p []byte, off int64) error {
	n, err := ra.ReadAt(p, off)
	if n == len(p) {
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return fmt.Errorf("data at byte %d: %w: %w", off, ErrFormat, io.ErrUnexpectedEOF)
	}

	return fmt.Errorf("data at byte %d: %w", off, err)
}

func readElements[T marray.Number](r io.Reader, dst []T, d dtype) error {
	esz := d.size()
	chunk := max(1, npyChunkBytes/esz)
	raw := make([]byte, min(len(dst), chunk)*esz)
	for i := 0; i < len(dst); i += chunk {
		n := min(chunk, len(dst)-i)
		if _, err := io.ReadFull(r, raw[:n*esz]); err != nil {
			return fmt.Errorf("data at element %d: %w: %w", i, ErrFormat, err)
		}
		decode(dst[i:i+n], raw, d)
	}

	return nil
}

func writeElements[T marray.Number](w io.Writer, src []T, d dtype) error {
	esz := d.size()
	chunk := max(1, npyChunkBytes/esz)
	raw := make([]byte, min(len(src), chunk)*esz)
	for i := 0; i < len(src); i += chunk {
		n := min(chunk, len(src)-i)
		encode(raw, src[i:i+n], d)
		if _, err := w.Write(raw[:n*esz]); err != nil {
			return err
		}
	}

	return nil
}

func readHeader(r io.Reader) (*NPYHeader, error) {
	var pre [10]byte
	if _, err := io.ReadFull(r, pre[:8]); err != nil {
		return nil, fmt.Errorf("preamble: %w: %w", ErrFormat, err)
	}
	if string(pre[:6]) != npyMagic {
		return nil, fmt.Errorf("magic %q: %w", pre[:6], ErrFormat)
	}
	h := &NPYHeader{Major: pre[6], Minor: pre[7]}
	var hlen int
	switch h.Major {
	case 1:
		if _, err := io.ReadFull(r, pre[8:10]); err != nil {
			return nil, fmt.Errorf("header length: %w: %w", ErrFormat, err)
		}
		hlen, h.DataOffset = int(binary.LittleEndian.Uint16(pre[8:10])), 10
	case 2, 3:
		var b [4]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return nil, fmt.Errorf("header length: %w: %w", ErrFormat, err)
		}
		hlen, h.DataOffset = int(binary.LittleEndian.Uint32(b[:])), 12
	default:
		return nil, fmt.Errorf("version %d.%d: %w", h.Major, h.Minor, ErrFormat)
	}
	if hlen > npyMaxHeader {
		return nil, fmt.Errorf("header of %d bytes: %w", hlen, ErrFormat)
	}
	buf := make([]byte, hlen)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("header: %w: %w", ErrFormat, err)
	}
	h.DataOffset += int64(hlen)

	descr, fortran, shape, err := parseHeaderDict(string(buf))
	if err != nil {
		return nil, err
	}
	d, err := parseDescr(descr)
	if err != nil {
		return nil, err
	}
	n, err := geometry.CheckedSize(shape, 0)
	if err != nil || n > math.MaxInt/d.size() {
		return nil, fmt.Errorf("shape %v: %w", shape, ErrShapeRange)
	}
	h.Descr, h.Kind, h.Half, h.dtype, h.Shape = descr, d.kind, d.half, d, shape
	h.Order = marray.FirstMajorOrder
	if fortran {
		h.Order = marray.LastMajorOrder
	}

	return h, nil
}

// writeHeader emits a v1 header, or v2 when the dict does not fit 64 KiB.
func writeHeader(w io.Writer, d dtype, order marray.Order, shape []int) error {
	fortran := "False"
	if order == marray.LastMajorOrder {
		fortran = "True"
	}
	dict := fmt.Sprintf("{'descr': '%s', 'fortran_order': %s, 'shape': %s, }", d.descr(), fortran, shapeTuple(shape))

	major, lenField := byte(1), 2
	pre := len(npyMagic) + 2 + lenField
	hlen := alignedHeaderLen(pre, len(dict))
	if hlen > math.MaxUint16 {
		major, lenField = 2, 4
		pre = len(npyMagic) + 2 + lenField
		hlen = alignedHeaderLen(pre, len(dict))
	}

	buf := make([]byte, 0, pre+hlen)
	buf = append(buf, npyMagic...)
	buf = append(buf, major, 0)
	if lenField == 2 {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(hlen))
	} else {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(hlen))
	}
	buf = append(buf, dict...)
	buf = append(buf, bytes.Repeat([]byte{' '}, hlen-len(dict)-1)...)
	buf = append(buf, '\n')
	_, err := w.Write(buf)

	return err
}

// alignedHeaderLen is the padded header length (newline included) that puts
// the data on an npyAlign boundary.
func alignedHeaderLen(pre, dictLen int) int {
	total := pre + dictLen + 1

	return dictLen + 1 + (npyAlign-total%npyAlign)%npyAlign
}

func shapeTuple(shape []int) string {
	switch len(shape) {
	case 0:
		return "()"
	case 1:
		return "(" + strconv.Itoa(shape[0]) + ",)"
	}
	parts := make([]string, len(shape))
	for i, e := range shape {
		parts[i] = strconv.Itoa(e)
	}

	return "(" + strings.Join(parts, ", ") + ")"
}
