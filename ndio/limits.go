// SPDX-License-Identifier: MIT

package ndio

import (
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/lvmarray/geometry"
	"github.com/katalvlaran/lvmarray/marray"
)

// checkBudget returns the element count of shape when its decoded size fits
// the configured limits. esz is the width of one decoded element.
func checkBudget(shape []int, esz int, o Options) (int, error) {
	n, err := geometry.CheckedSize(shape, o.maxElements)
	if err != nil {
		return 0, fmt.Errorf("shape %v: %w", shape, err)
	}
	if o.maxBytes > 0 && int64(n) > o.maxBytes/int64(esz) {
		return 0, fmt.Errorf("shape %v of %d-byte elements over %d bytes: %w", shape, esz, o.maxBytes, marray.ErrTooLarge)
	}

	return n, nil
}

// checkAvailable fails with ErrFormat when a reader of known length holds
// fewer than need bytes. Readers of unknown length pass.
func checkAvailable(avail int64, known bool, need int64) error {
	if known && avail < need {
		return fmt.Errorf("%d data bytes for %d expected: %w", avail, need, ErrFormat)
	}

	return nil
}

// remaining reports how many bytes are left in r when r can seek. The read
// position is restored.
func remaining(r io.Reader) (int64, bool) {
	s, ok := r.(io.Seeker)
	if !ok {
		return 0, false
	}
	cur, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, false
	}
	end, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, false
	}
	if _, err = s.Seek(cur, io.SeekStart); err != nil {
		return 0, false
	}

	return end - cur, true
}

// sizeOf reports the total length behind ra when it is known.
func sizeOf(ra io.ReaderAt) (int64, bool) {
	switch r := ra.(type) {
	case interface{ Size() int64 }:
		return r.Size(), true
	case *os.File:
		fi, err := r.Stat()
		if err != nil || !fi.Mode().IsRegular() {
			return 0, false
		}
		return fi.Size(), true
	}

	return 0, false
}
