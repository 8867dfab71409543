// SPDX-License-Identifier: MIT

// Package marray: functional configuration for view and array construction.
// This file defines:
//   - Option / Options (functional options with unexported state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Design goals:
//   - Deterministic behavior: no global state.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package marray

import "github.com/katalvlaran/lvmarray/geometry"

// Order re-exports geometry.Order so most callers only import marray.
type Order = geometry.Order

// Coordinate orders, re-exported from geometry.
const (
	FirstMajorOrder = geometry.FirstMajorOrder
	LastMajorOrder  = geometry.LastMajorOrder
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultOrder is the coordinate order used when WithOrder is not given.
	DefaultOrder = geometry.DefaultOrder

	// DefaultMaxElements disables the allocation limit (0 = unlimited up to
	// what an int can count).
	DefaultMaxElements = 0

	// DefaultSkipInit keeps the fill pass of array constructors enabled.
	DefaultSkipInit = false
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicOrderInvalid       = "marray: WithOrder: order must be FirstMajorOrder or LastMajorOrder"
	panicMaxElementsInvalid = "marray: WithMaxElements: limit must be >= 0"
)

// Option mutates construction options. Applying the same Option twice is harmless.
type Option func(*Options)

// Options is the resolved configuration. Fields are unexported; public entry
// points accept ...Option and resolve them with gatherOptions.
type Options struct {
	order       geometry.Order
	orderSet    bool // distinguishes "default" from an explicit FirstMajorOrder
	skipInit    bool
	maxElements int
}

// WithOrder selects the coordinate order used to derive strides and to
// decompose scalar indices. Panics on values outside the enumeration.
func WithOrder(o Order) Option {
	if !o.Valid() {
		panic(panicOrderInvalid)
	}

	return func(opt *Options) {
		opt.order = o
		opt.orderSet = true
	}
}

// WithSkipInit tells array constructors that the caller overwrites every
// element immediately, so the fill pass can be skipped. Go still hands out
// zeroed memory; only the explicit fill loop is avoided. Loaders use it.
func WithSkipInit() Option {
	return func(opt *Options) { opt.skipInit = true }
}

// WithMaxElements caps the element count of any allocation performed with
// these options; 0 disables the cap. Exceeding it yields ErrTooLarge.
// Panics on negative limits.
func WithMaxElements(n int) Option {
	if n < 0 {
		panic(panicMaxElementsInvalid)
	}

	return func(opt *Options) { opt.maxElements = n }
}

// gatherOptions applies opts over the documented defaults.
func gatherOptions(opts ...Option) Options {
	o := Options{
		order:       DefaultOrder,
		skipInit:    DefaultSkipInit,
		maxElements: DefaultMaxElements,
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

// orderOr returns the explicit order when one was given, fallback otherwise.
func (o Options) orderOr(fallback Order) Order {
	if o.orderSet {
		return o.order
	}

	return fallback
}
