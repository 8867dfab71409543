// SPDX-License-Identifier: MIT

package ndio

import "encoding/binary"

const (
	// DefaultMaxElements disables the element limit on loads.
	DefaultMaxElements = 0

	// DefaultMaxBytes caps the decoded size of a single load at 4 GiB.
	DefaultMaxBytes int64 = 1 << 32

	// DefaultBitDepth selects the image depth from the element type: 8 bits
	// for one-byte integers, 16 bits otherwise.
	DefaultBitDepth = 0
)

const (
	panicMaxElementsInvalid = "ndio: WithMaxElements: limit must be >= 0"
	panicMaxBytesInvalid    = "ndio: WithMaxBytes: limit must be >= 0"
	panicByteOrderNil       = "ndio: WithByteOrder: byte order must not be nil"
	panicBitDepthInvalid    = "ndio: WithBitDepth: depth must be 8 or 16"
)

// Option configures loads and saves.
type Option func(*Options)

// Options is the resolved configuration.
type Options struct {
	maxElements int
	maxBytes    int64
	byteOrder   binary.ByteOrder
	half        bool
	bitDepth    int
}

// WithMaxElements fails loads whose element count exceeds n with
// marray.ErrTooLarge. 0 disables the limit.
func WithMaxElements(n int) Option {
	if n < 0 {
		panic(panicMaxElementsInvalid)
	}

	return func(o *Options) { o.maxElements = n }
}

// WithMaxBytes fails loads whose decoded data would exceed n bytes with
// marray.ErrTooLarge. 0 disables the limit. Panics on negative limits.
func WithMaxBytes(n int64) Option {
	if n < 0 {
		panic(panicMaxBytesInvalid)
	}

	return func(o *Options) { o.maxBytes = n }
}

// WithByteOrder sets the byte order of saved NPY data (little endian by default).
func WithByteOrder(bo binary.ByteOrder) Option {
	if bo == nil {
		panic(panicByteOrderNil)
	}

	return func(o *Options) { o.byteOrder = bo }
}

// WithHalfPrecision saves float data as NPY f2.
func WithHalfPrecision() Option {
	return func(o *Options) { o.half = true }
}

// WithBitDepth forces the PGM sample depth.
func WithBitDepth(bits int) Option {
	if bits != 8 && bits != 16 {
		panic(panicBitDepthInvalid)
	}

	return func(o *Options) { o.bitDepth = bits }
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		maxElements: DefaultMaxElements,
		maxBytes:    DefaultMaxBytes,
		byteOrder:   binary.LittleEndian,
		bitDepth:    DefaultBitDepth,
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
