// SPDX-License-Identifier: MIT

package ndio

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat indicates malformed or truncated input.
	ErrFormat = errors.New("ndio: malformed input")

	// ErrUnsupportedType indicates an element type the format cannot carry,
	// or a stored type that cannot be loaded into the requested element type.
	ErrUnsupportedType = errors.New("ndio: unsupported element type")

	// ErrShapeRange indicates extents outside what the format can describe.
	ErrShapeRange = errors.New("ndio: shape out of format range")
)

// ioErrorf wraps err with the public entry point that detected it.
func ioErrorf(fn string, err error) error {
	return fmt.Errorf("ndio.%s: %w", fn, err)
}
