// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvmarray/marray"
	"github.com/katalvlaran/lvmarray/ndio"
)

// SliceHandler copies the hyperslab --base/--shape of an NPY file into a new
// NPY file with the same element type, reading only the selected elements.
func SliceHandler(cmd *cobra.Command, args []string) (err error) {
	base, err := cmd.Flags().GetIntSlice("base")
	if err != nil {
		return err
	}
	shape, err := cmd.Flags().GetIntSlice("shape")
	if err != nil {
		return err
	}
	in, out := args[0], args[1]
	for _, p := range args {
		if format, err := formatOf(p); err != nil {
			return err
		} else if format != formatNPY {
			return fmt.Errorf("%s: slice needs npy files: %w", p, errUnknownFormat)
		}
	}

	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()
	h, err := ndio.ReadNPYHeader(f)
	if err != nil {
		return err
	}

	dst, err := os.Create(out)
	if err != nil {
		return err
	}
	defer removeOnError(out, &err)
	w := bufio.NewWriter(dst)

	switch h.Kind {
	case marray.KindInt8:
		err = sliceNPY[int8](f, w, base, shape)
	case marray.KindInt16:
		err = sliceNPY[int16](f, w, base, shape)
	case marray.KindInt32:
		err = sliceNPY[int32](f, w, base, shape)
	case marray.KindInt64:
		err = sliceNPY[int64](f, w, base, shape)
	case marray.KindUint8:
		err = sliceNPY[uint8](f, w, base, shape)
	case marray.KindUint16:
		err = sliceNPY[uint16](f, w, base, shape)
	case marray.KindUint32:
		err = sliceNPY[uint32](f, w, base, shape)
	case marray.KindUint64:
		err = sliceNPY[uint64](f, w, base, shape)
	case marray.KindFloat32:
		if h.Half {
			err = sliceNPY[float32](f, w, base, shape, ndio.WithHalfPrecision())
		} else {
			err = sliceNPY[float32](f, w, base, shape)
		}
	default:
		err = sliceNPY[float64](f, w, base, shape)
	}
	if err == nil {
		err = w.Flush()
	}
	if cerr := dst.Close(); err == nil {
		err = cerr
	}

	return err
}

func sliceNPY[T marray.Number](ra io.ReaderAt, w io.Writer, base, shape []int, opts ...ndio.Option) error {
	a, err := ndio.LoadNPYHyperslab[T](ra, base, shape, ndio.WithMaxElements(maxElements()))
	if err != nil {
		return err
	}

	return ndio.SaveNPY(w, a.AsView(), opts...)
}
