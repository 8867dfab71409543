// SPDX-License-Identifier: MIT

package ndio_test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmarray/marray"
	"github.com/katalvlaran/lvmarray/ndio"
)

func TestSavePGM8(t *testing.T) {
	img := mustArray(t, []uint8{1, 2, 3, 4, 5, 6}, []int{3, 2}, marray.WithOrder(marray.LastMajorOrder))
	var buf bytes.Buffer
	require.NoError(t, ndio.SavePGM(&buf, img.AsView()))
	want := append([]byte("P5\n3 2\n255\n"), 1, 2, 3, 4, 5, 6)
	require.Empty(t, cmp.Diff(want, buf.Bytes()))

	got, err := ndio.LoadPGM[uint8](&buf)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff([]int{3, 2}, got.Shape()))
	require.Equal(t, marray.LastMajorOrder, got.Order())
	require.Empty(t, cmp.Diff(img.Data(), got.Data()))
}

func TestSavePGM16(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ndio.SavePGM(&buf, mustArray(t, []uint16{1000, 65535}, []int{2, 1}).AsView()))
	want := append([]byte("P5\n2 1\n65535\n"), 0x03, 0xE8, 0xFF, 0xFF)
	require.Empty(t, cmp.Diff(want, buf.Bytes()))

	raw := buf.Bytes()
	got, err := ndio.LoadPGM[int](bytes.NewReader(raw))
	require.NoError(t, err)
	require.Empty(t, cmp.Diff([]int{1000, 65535}, got.Data()))

	_, err = ndio.LoadPGM[uint8](bytes.NewReader(raw))
	require.ErrorIs(t, err, ndio.ErrUnsupportedType)
}

func TestSavePGMClamps(t *testing.T) {
	var buf bytes.Buffer
	v := mustArray(t, []float64{-3, 300, 12.7, 255}, []int{4, 1}).AsView()
	require.NoError(t, ndio.SavePGM(&buf, v, ndio.WithBitDepth(8)))
	want := append([]byte("P5\n4 1\n255\n"), 0, 255, 12, 255)
	require.Empty(t, cmp.Diff(want, buf.Bytes()))
}

func TestLoadPGMWithComments(t *testing.T) {
	raw := append([]byte("P5\n# made by hand\n2 2\n# depth\n255\n"), 10, 20, 30, 40)
	got, err := ndio.LoadPGM[float32](bytes.NewReader(raw))
	require.NoError(t, err)
	x, err := got.At(1, 0)
	require.NoError(t, err)
	require.Equal(t, float32(20), x)
	x, err = got.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, float32(30), x)
}

func TestPGMErrors(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want error
	}{
		{"wrong magic", "P6\n1 1\n255\n\x00", ndio.ErrFormat},
		{"missing field", "P5\n1\n", ndio.ErrFormat},
		{"truncated samples", "P5\n2 2\n255\n\x01", ndio.ErrFormat},
		{"zero width", "P5\n0 2\n255\n", ndio.ErrShapeRange},
		{"zero maxval", "P5\n1 1\n0\n\x00", ndio.ErrFormat},
		{"no terminator", "P5\n1 1\n255", ndio.ErrFormat},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ndio.LoadPGM[uint8](bytes.NewReader([]byte(tc.raw)))
			require.ErrorIs(t, err, tc.want)
		})
	}

	_, err := ndio.LoadPGM[int8](bytes.NewReader([]byte("P5\n1 1\n300\n\x00\x01")))
	require.ErrorIs(t, err, ndio.ErrUnsupportedType)

	var buf bytes.Buffer
	err = ndio.SavePGM(&buf, mustArray(t, make([]uint8, 8), []int{2, 2, 2}).AsView())
	require.ErrorIs(t, err, marray.ErrDimensionMismatch)
	require.Panics(t, func() { ndio.WithBitDepth(12) })
}

func TestLoadPGMOversizedHeader(t *testing.T) {
	raw := []byte("P5\n100000 100000\n255\n\x00\x01")

	_, err := ndio.LoadPGM[uint8](bytes.NewReader(raw))
	require.ErrorIs(t, err, marray.ErrTooLarge)
	_, err = ndio.LoadPGM[uint8](bytes.NewReader(raw), ndio.WithMaxBytes(0), ndio.WithMaxElements(1000))
	require.ErrorIs(t, err, marray.ErrTooLarge)
	_, err = ndio.LoadPGM[uint8](bytes.NewReader(raw), ndio.WithMaxBytes(0))
	require.ErrorIs(t, err, ndio.ErrFormat)
}

func TestReadPGMHeader(t *testing.T) {
	h, err := ndio.ReadPGMHeader(bytes.NewReader([]byte("P5 640 480 1023\n")))
	require.NoError(t, err)
	require.Equal(t, ndio.PGMHeader{Width: 640, Height: 480, MaxValue: 1023}, *h)

	_, err = ndio.ReadPGMHeader(bytes.NewReader([]byte("P5 1 1 70000\n")))
	require.ErrorIs(t, err, ndio.ErrFormat)
}
