// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/lvmarray/marray"
	"github.com/katalvlaran/lvmarray/ndio"
)

type fileFormat string

const (
	formatNPY fileFormat = "npy"
	formatPGM fileFormat = "pgm"
	formatBMP fileFormat = "bmp"
)

var errUnknownFormat = errors.New("unknown file format")

// formatOf picks the format from a file extension.
func formatOf(path string) (fileFormat, error) {
	switch f := fileFormat(strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")); f {
	case formatNPY, formatPGM, formatBMP:
		return f, nil
	}

	return "", fmt.Errorf("%s: %w", path, errUnknownFormat)
}

// loadFloat reads any supported file as float64 elements.
func loadFloat(path string) (*marray.Array[float64], error) {
	format, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// NPY and PGM get the file itself so truncated data is caught before
	// allocating; both buffer their own reads.
	opts := []ndio.Option{ndio.WithMaxElements(maxElements())}
	switch format {
	case formatPGM:
		return ndio.LoadPGM[float64](f, opts...)
	case formatBMP:
		return ndio.LoadBMP[float64](bufio.NewReader(f), opts...)
	default:
		return ndio.LoadNPY[float64](f, opts...)
	}
}

// saveFloat writes v to path in format. A failed write leaves no file behind.
func saveFloat(path string, format fileFormat, v *marray.View[float64], opts ...ndio.Option) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer removeOnError(path, &err)

	w := bufio.NewWriter(f)
	switch format {
	case formatPGM:
		err = ndio.SavePGM(w, v, opts...)
	case formatBMP:
		err = ndio.SaveBMP(w, v)
	default:
		err = ndio.SaveNPY(w, v, opts...)
	}
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	return err
}

func formatShape(shape []int) string {
	if len(shape) == 0 {
		return "scalar"
	}
	parts := make([]string, len(shape))
	for i, e := range shape {
		parts[i] = fmt.Sprint(e)
	}

	return strings.Join(parts, "x")
}
