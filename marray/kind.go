// SPDX-License-Identifier: MIT

package marray

import (
	"reflect"

	"golang.org/x/exp/constraints"
)

// Number is the element constraint of the arithmetic layer.
// Views and arrays themselves accept any element type.
type Number interface {
	constraints.Integer | constraints.Float
}

// Kind identifies a numeric element type independently of Go's type system.
// Adapters use it to map element types onto external formats.
type Kind uint8

// Supported kinds. KindInvalid marks non-numeric element types.
const (
	KindInvalid Kind = iota
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindInt8:    "int8",
	KindInt16:   "int16",
	KindInt32:   "int32",
	KindInt64:   "int64",
	KindUint8:   "uint8",
	KindUint16:  "uint16",
	KindUint32:  "uint32",
	KindUint64:  "uint64",
	KindFloat32: "float32",
	KindFloat64: "float64",
}

// String returns the Go spelling of the kind ("int8", "float64", ...).
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return kindNames[KindInvalid]
}

// Size returns the element width in bytes (0 for KindInvalid).
func (k Kind) Size() int {
	switch k {
	case KindInt8, KindUint8:
		return 1
	case KindInt16, KindUint16:
		return 2
	case KindInt32, KindUint32, KindFloat32:
		return 4
	case KindInt64, KindUint64, KindFloat64:
		return 8
	default:
		return 0
	}
}

// IsFloat reports whether k is a floating-point kind.
func (k Kind) IsFloat() bool { return k == KindFloat32 || k == KindFloat64 }

// IsSigned reports whether k is a signed integer kind.
func (k Kind) IsSigned() bool { return k >= KindInt8 && k <= KindInt64 }

// IsUnsigned reports whether k is an unsigned integer kind.
func (k Kind) IsUnsigned() bool { return k >= KindUint8 && k <= KindUint64 }

// IsInteger reports whether k is a signed or unsigned integer kind.
func (k Kind) IsInteger() bool { return k.IsSigned() || k.IsUnsigned() }

// KindOf returns the Kind of T. Named types resolve through their underlying
// type; int, uint and uintptr map to the kind of their platform width.
func KindOf[T any]() Kind {
	t := reflect.TypeFor[T]()
	switch t.Kind() {
	case reflect.Int8:
		return KindInt8
	case reflect.Int16:
		return KindInt16
	case reflect.Int32:
		return KindInt32
	case reflect.Int64:
		return KindInt64
	case reflect.Int:
		return signedOfSize(int(t.Size()))
	case reflect.Uint8:
		return KindUint8
	case reflect.Uint16:
		return KindUint16
	case reflect.Uint32:
		return KindUint32
	case reflect.Uint64:
		return KindUint64
	case reflect.Uint, reflect.Uintptr:
		return unsignedOfSize(int(t.Size()))
	case reflect.Float32:
		return KindFloat32
	case reflect.Float64:
		return KindFloat64
	default:
		return KindInvalid
	}
}

// Promote returns the kind of the result of combining a and b:
//   - if either is a float, the widest float of the two (float32 unless one
//     operand is float64);
//   - two integers of the same signedness give the wider one;
//   - mixed signedness gives the signed kind when it is strictly wider,
//     otherwise the unsigned kind of the larger width.
//
// The rules mirror the usual arithmetic conversions of C-family languages.
func Promote(a, b Kind) Kind {
	if a == KindInvalid || b == KindInvalid {
		return KindInvalid
	}
	if a == b {
		return a
	}
	if a.IsFloat() || b.IsFloat() {
		if a == KindFloat64 || b == KindFloat64 {
			return KindFloat64
		}

		return KindFloat32
	}
	sa, sb := a.Size(), b.Size()
	if a.IsSigned() == b.IsSigned() {
		if sa >= sb {
			return a
		}

		return b
	}
	signed, unsigned := a, b
	if b.IsSigned() {
		signed, unsigned = b, a
	}
	if signed.Size() > unsigned.Size() {
		return signed
	}

	return unsignedOfSize(max(sa, sb))
}

func signedOfSize(n int) Kind {
	switch n {
	case 1:
		return KindInt8
	case 2:
		return KindInt16
	case 4:
		return KindInt32
	default:
		return KindInt64
	}
}

func unsignedOfSize(n int) Kind {
	switch n {
	case 1:
		return KindUint8
	case 2:
		return KindUint16
	case 4:
		return KindUint32
	default:
		return KindUint64
	}
}

// isIntegerType reports whether the Number type T is an integer type.
func isIntegerType[T Number]() bool {
	return KindOf[T]().IsInteger()
}
