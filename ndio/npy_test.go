// SPDX-License-Identifier: MIT

package ndio_test

import (
	"bytes"
	"encoding/binary"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmarray/marray"
	"github.com/katalvlaran/lvmarray/ndio"
)

func TestNPYRoundTrip(t *testing.T) {
	t.Run("float64 first-major", func(t *testing.T) {
		a := mustArray(t, []float64{0.5, -1, 2.25, 3, 1e300, -0.125}, []int{2, 3})
		var buf bytes.Buffer
		require.NoError(t, ndio.SaveNPY(&buf, a.AsView()))
		require.Contains(t, buf.String(), "{'descr': '<f8', 'fortran_order': False, 'shape': (2, 3), }")

		h, err := ndio.ReadNPYHeader(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		require.Zero(t, h.DataOffset%64)
		require.Equal(t, int(h.DataOffset)+6*8, buf.Len())
		require.Equal(t, marray.KindFloat64, h.Kind)
		require.Equal(t, 8, h.ElementSize())

		got, err := ndio.LoadNPY[float64](&buf)
		require.NoError(t, err)
		require.Empty(t, cmp.Diff([]int{2, 3}, got.Shape()))
		require.Equal(t, marray.FirstMajorOrder, got.Order())
		require.Empty(t, cmp.Diff(a.Data(), got.Data()))
	})

	t.Run("int16 last-major big-endian", func(t *testing.T) {
		a := mustArray(t, []int16{-300, 1, 2, 3, 4, 32767}, []int{3, 2}, marray.WithOrder(marray.LastMajorOrder))
		var buf bytes.Buffer
		require.NoError(t, ndio.SaveNPY(&buf, a.AsView(), ndio.WithByteOrder(binary.BigEndian)))
		require.Contains(t, buf.String(), "'descr': '>i2', 'fortran_order': True, 'shape': (3, 2)")

		got, err := ndio.LoadNPY[int16](&buf)
		require.NoError(t, err)
		require.Equal(t, marray.LastMajorOrder, got.Order())
		require.Empty(t, cmp.Diff(a.Data(), got.Data()))
		x, err := got.At(2, 1)
		require.NoError(t, err)
		require.Equal(t, int16(32767), x)
	})

	t.Run("uint8 vector and scalar", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, ndio.SaveNPY(&buf, mustArray(t, []uint8{7, 8, 9}, []int{3}).AsView()))
		require.Contains(t, buf.String(), "'descr': '|u1'")
		require.Contains(t, buf.String(), "'shape': (3,)")
		v, err := ndio.LoadNPY[uint8](&buf)
		require.NoError(t, err)
		require.Empty(t, cmp.Diff([]uint8{7, 8, 9}, v.Data()))

		buf.Reset()
		require.NoError(t, ndio.SaveNPY(&buf, marray.NewScalar(int32(-5)).AsView()))
		require.Contains(t, buf.String(), "'shape': ()")
		s, err := ndio.LoadNPY[int32](&buf)
		require.NoError(t, err)
		require.Equal(t, 0, s.Dimension())
		require.Empty(t, cmp.Diff([]int32{-5}, s.Data()))
	})

	t.Run("strided view is written in its own order", func(t *testing.T) {
		a := mustArray(t, []int64{0, 1, 2, 3, 4, 5}, []int{2, 3})
		var buf bytes.Buffer
		require.NoError(t, ndio.SaveNPY(&buf, a.AsView().Transposed()))
		got, err := ndio.LoadNPY[int64](&buf)
		require.NoError(t, err)
		require.Empty(t, cmp.Diff([]int{3, 2}, got.Shape()))
		require.Empty(t, cmp.Diff([]int64{0, 3, 1, 4, 2, 5}, got.Data()))
	})
}

func TestLoadNPYHandWrittenHeader(t *testing.T) {
	data := make([]byte, 16)
	for i, x := range []int32{1, 2, 3, 4} {
		binary.BigEndian.PutUint32(data[4*i:], uint32(x))
	}
	raw := rawNPY(`{"descr": ">i4", "fortran_order": True, "shape": (2L, 2L)}`, data)

	a, err := ndio.LoadNPY[int](bytes.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, marray.LastMajorOrder, a.Order())
	x, err := a.At(1, 0)
	require.NoError(t, err)
	require.Equal(t, 2, x)
	x, err = a.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, 3, x)
}

func TestNPYConversionOnLoad(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ndio.SaveNPY(&buf, mustArray(t, []int16{-2, 0, 9}, []int{3}).AsView()))
	got, err := ndio.LoadNPY[float64](&buf)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff([]float64{-2, 0, 9}, got.Data()))
}

func TestNPYHalfPrecision(t *testing.T) {
	values := []float32{0.5, 1.5, -2, 65504, 0}
	var buf bytes.Buffer
	require.NoError(t, ndio.SaveNPY(&buf, mustArray(t, values, []int{5}).AsView(), ndio.WithHalfPrecision()))
	raw := buf.Bytes()
	require.Contains(t, string(raw), "'descr': '<f2'")

	h, err := ndio.ReadNPYHeader(bytes.NewReader(raw))
	require.NoError(t, err)
	require.True(t, h.Half)
	require.Equal(t, 2, h.ElementSize())

	got, err := ndio.LoadNPY[float64](bytes.NewReader(raw))
	require.NoError(t, err)
	require.Empty(t, cmp.Diff([]float64{0.5, 1.5, -2, 65504, 0}, got.Data()))

	_, err = ndio.LoadNPY[int32](bytes.NewReader(raw))
	require.ErrorIs(t, err, ndio.ErrUnsupportedType)

	err = ndio.SaveNPY(&buf, mustArray(t, []int{1}, []int{1}).AsView(), ndio.WithHalfPrecision())
	require.ErrorIs(t, err, ndio.ErrUnsupportedType)
}

func TestNPYErrors(t *testing.T) {
	data := make([]byte, 8)
	cases := []struct {
		name string
		raw  []byte
		want error
	}{
		{"bad magic", []byte("\x93NUMPX\x01\x00\x00\x00"), ndio.ErrFormat},
		{"short preamble", []byte("\x93NUM"), ndio.ErrFormat},
		{"bad version", []byte("\x93NUMPY\x09\x00\x00\x00"), ndio.ErrFormat},
		{"negative extent", rawNPY("{'descr': '<i8', 'fortran_order': False, 'shape': (-1,), }", data), ndio.ErrShapeRange},
		{"complex descr", rawNPY("{'descr': '<c16', 'fortran_order': False, 'shape': (1,), }", data), ndio.ErrUnsupportedType},
		{"structured descr", rawNPY("{'descr': [('a', '<i4')], 'fortran_order': False, 'shape': (1,), }", data), ndio.ErrUnsupportedType},
		{"missing shape", rawNPY("{'descr': '<i8', 'fortran_order': False, }", data), ndio.ErrFormat},
		{"unknown key", rawNPY("{'descr': '<i8', 'fortran_order': False, 'shape': (1,), 'x': 1}", data), ndio.ErrFormat},
		{"bad bool", rawNPY("{'descr': '<i8', 'fortran_order': maybe, 'shape': (1,), }", data), ndio.ErrFormat},
		{"truncated data", rawNPY("{'descr': '<i8', 'fortran_order': False, 'shape': (2,), }", data), ndio.ErrFormat},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ndio.LoadNPY[int64](bytes.NewReader(tc.raw))
			require.ErrorIs(t, err, tc.want)
			require.True(t, strings.HasPrefix(err.Error(), "ndio.LoadNPY: "), err.Error())
		})
	}

	var buf bytes.Buffer
	require.NoError(t, ndio.SaveNPY(&buf, mustArray(t, make([]float32, 12), []int{3, 4}).AsView()))
	_, err := ndio.LoadNPY[float32](&buf, ndio.WithMaxElements(10))
	require.ErrorIs(t, err, marray.ErrTooLarge)

	require.ErrorIs(t, ndio.SaveNPY[int](&buf, nil), marray.ErrNilView)
	require.ErrorIs(t, ndio.SaveNPY(&buf, &marray.View[int]{}), marray.ErrEmptyView)
	require.Panics(t, func() { ndio.WithMaxElements(-1) })
	require.Panics(t, func() { ndio.WithByteOrder(nil) })
}

func TestLoadNPYOversizedHeader(t *testing.T) {
	// 2^46 float64 elements announced by a 128-byte file.
	raw := rawNPY("{'descr': '<f8', 'fortran_order': False, 'shape': (70368744177664,), }", nil)
	require.Len(t, raw, 128)

	_, err := ndio.LoadNPY[float64](bytes.NewReader(raw))
	require.ErrorIs(t, err, marray.ErrTooLarge)
	_, err = ndio.LoadNPY[float64](struct{ io.Reader }{bytes.NewReader(raw)})
	require.ErrorIs(t, err, marray.ErrTooLarge)
	_, err = ndio.LoadNPY[float64](bytes.NewReader(raw), ndio.WithMaxElements(1<<20))
	require.ErrorIs(t, err, marray.ErrTooLarge)

	// Without a byte cap the seekable reader is checked against what it holds.
	_, err = ndio.LoadNPY[float64](bytes.NewReader(raw), ndio.WithMaxBytes(0))
	require.ErrorIs(t, err, ndio.ErrFormat)
	_, err = ndio.LoadNPYHyperslab[float64](bytes.NewReader(raw), []int{0}, []int{2}, ndio.WithMaxBytes(0))
	require.ErrorIs(t, err, ndio.ErrFormat)

	require.Panics(t, func() { ndio.WithMaxBytes(-1) })
}

func TestLoadNPYByteCap(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ndio.SaveNPY(&buf, mustArray(t, make([]float64, 16), []int{4, 4}).AsView()))

	_, err := ndio.LoadNPY[float64](bytes.NewReader(buf.Bytes()), ndio.WithMaxBytes(64))
	require.ErrorIs(t, err, marray.ErrTooLarge)
	// The cap counts decoded bytes: 16 int8 elements fit in 64.
	got, err := ndio.LoadNPY[int8](bytes.NewReader(buf.Bytes()), ndio.WithMaxBytes(64))
	require.NoError(t, err)
	require.Equal(t, 16, got.Size())

	_, err = ndio.LoadNPYHyperslab[float64](bytes.NewReader(buf.Bytes()), []int{0, 0}, []int{4, 4}, ndio.WithMaxBytes(64))
	require.ErrorIs(t, err, marray.ErrTooLarge)
	slab, err := ndio.LoadNPYHyperslab[float64](bytes.NewReader(buf.Bytes()), []int{1, 1}, []int{2, 2}, ndio.WithMaxBytes(64))
	require.NoError(t, err)
	require.Equal(t, 4, slab.Size())
}

func TestLoadNPYInto(t *testing.T) {
	dst := mustArray(t, []int{1, 2, 3}, []int{3})
	err := ndio.LoadNPYInto(dst, bytes.NewReader([]byte("garbage")))
	require.ErrorIs(t, err, ndio.ErrFormat)
	require.Empty(t, cmp.Diff([]int{1, 2, 3}, dst.Data()))
	require.Empty(t, cmp.Diff([]int{3}, dst.Shape()))

	var buf bytes.Buffer
	require.NoError(t, ndio.SaveNPY(&buf, mustArray(t, []int{4, 5, 6, 7}, []int{2, 2}).AsView()))
	require.NoError(t, ndio.LoadNPYInto(dst, &buf))
	require.Empty(t, cmp.Diff([]int{2, 2}, dst.Shape()))
	require.Empty(t, cmp.Diff([]int{4, 5, 6, 7}, dst.Data()))

	require.ErrorIs(t, ndio.LoadNPYInto[int](nil, &buf), marray.ErrNilView)
}

func TestLoadNPYHyperslab(t *testing.T) {
	values := make([]float64, 20)
	for i := range values {
		values[i] = float64(i)
	}

	t.Run("first-major", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, ndio.SaveNPY(&buf, mustArray(t, values, []int{4, 5}).AsView()))
		slab, err := ndio.LoadNPYHyperslab[float64](bytes.NewReader(buf.Bytes()), []int{1, 2}, []int{2, 3})
		require.NoError(t, err)
		require.Empty(t, cmp.Diff([]int{2, 3}, slab.Shape()))
		require.Empty(t, cmp.Diff([]float64{7, 8, 9, 12, 13, 14}, slab.Data()))
	})

	t.Run("last-major", func(t *testing.T) {
		var buf bytes.Buffer
		a := mustArray(t, values, []int{4, 5}, marray.WithOrder(marray.LastMajorOrder))
		require.NoError(t, ndio.SaveNPY(&buf, a.AsView()))
		slab, err := ndio.LoadNPYHyperslab[float64](bytes.NewReader(buf.Bytes()), []int{1, 2}, []int{2, 3})
		require.NoError(t, err)
		require.Equal(t, marray.LastMajorOrder, slab.Order())
		require.Empty(t, cmp.Diff([]float64{9, 10, 13, 14, 17, 18}, slab.Data()))
	})

	t.Run("errors", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, ndio.SaveNPY(&buf, mustArray(t, values, []int{4, 5}).AsView()))
		raw := buf.Bytes()
		_, err := ndio.LoadNPYHyperslab[float64](bytes.NewReader(raw), []int{3, 3}, []int{2, 2})
		require.ErrorIs(t, err, marray.ErrOutOfRange)
		_, err = ndio.LoadNPYHyperslab[float64](bytes.NewReader(raw), []int{0}, []int{2})
		require.ErrorIs(t, err, marray.ErrDimensionMismatch)
		_, err = ndio.LoadNPYHyperslab[float64](bytes.NewReader(raw[:len(raw)-8]), []int{3, 4}, []int{1, 1})
		require.ErrorIs(t, err, ndio.ErrFormat)
	})
}

func TestSaveNPYHyperslab(t *testing.T) {
	f := saveNPYFile(t, mustArray(t, make([]int32, 9), []int{3, 3}).AsView())

	patch := mustArray(t, []int32{1, 2, 3, 4}, []int{2, 2})
	require.NoError(t, ndio.SaveNPYHyperslab(f, []int{1, 1}, patch.AsView()))
	whole, err := ndio.LoadNPYHyperslab[int32](f, []int{0, 0}, []int{3, 3})
	require.NoError(t, err)
	require.Empty(t, cmp.Diff([]int32{0, 0, 0, 0, 1, 2, 0, 3, 4}, whole.Data()))

	// A transposed source is written coordinate by coordinate.
	require.NoError(t, ndio.SaveNPYHyperslab(f, []int{1, 1}, patch.AsView().Transposed()))
	whole, err = ndio.LoadNPYHyperslab[int32](f, []int{0, 0}, []int{3, 3})
	require.NoError(t, err)
	require.Empty(t, cmp.Diff([]int32{0, 0, 0, 0, 1, 3, 0, 2, 4}, whole.Data()))

	// Elements are converted to the stored type.
	require.NoError(t, ndio.SaveNPYHyperslab(f, []int{0, 0}, mustArray(t, []float64{7.9}, []int{1, 1}).AsView()))
	x, err := ndio.LoadNPYHyperslab[int32](f, []int{0, 0}, []int{1, 1})
	require.NoError(t, err)
	require.Empty(t, cmp.Diff([]int32{7}, x.Data()))

	err = ndio.SaveNPYHyperslab(f, []int{2, 2}, patch.AsView())
	require.ErrorIs(t, err, marray.ErrOutOfRange)
}
