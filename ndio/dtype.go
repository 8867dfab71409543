// SPDX-License-Identifier: MIT

package ndio

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"github.com/x448/float16"

	"github.com/katalvlaran/lvmarray/marray"
)

// dtype is a stored element type: a kind, a byte order and the half flag.
// Half precision values carry KindFloat32 as their decoded kind.
type dtype struct {
	kind  marray.Kind
	half  bool
	order binary.ByteOrder
}

func (d dtype) size() int {
	if d.half {
		return 2
	}

	return d.kind.Size()
}

// descr renders the NPY type string, e.g. "<f8" or "|u1".
func (d dtype) descr() string {
	var c byte
	switch {
	case d.half || d.kind.IsFloat():
		c = 'f'
	case d.kind.IsSigned():
		c = 'i'
	default:
		c = 'u'
	}
	endian := byte('<')
	switch {
	case d.size() == 1:
		endian = '|'
	case d.order.String() == binary.BigEndian.String():
		endian = '>'
	}

	return string([]byte{endian, c}) + strconv.Itoa(d.size())
}

// parseDescr decodes an NPY type string.
func parseDescr(s string) (dtype, error) {
	if len(s) < 3 {
		return dtype{}, fmt.Errorf("descr %q: %w", s, ErrFormat)
	}
	d := dtype{order: binary.LittleEndian}
	switch s[0] {
	case '<', '|':
	case '>':
		d.order = binary.BigEndian
	case '=':
		d.order = binary.NativeEndian
	default:
		return dtype{}, fmt.Errorf("descr %q byte order: %w", s, ErrFormat)
	}
	size, err := strconv.Atoi(s[2:])
	if err != nil {
		return dtype{}, fmt.Errorf("descr %q: %w", s, ErrFormat)
	}
	switch s[1] {
	case 'i':
		d.kind = signedKind(size)
	case 'u':
		d.kind = unsignedKind(size)
	case 'f':
		switch size {
		case 2:
			d.kind, d.half = marray.KindFloat32, true
		case 4:
			d.kind = marray.KindFloat32
		case 8:
			d.kind = marray.KindFloat64
		}
	}
	if d.kind == marray.KindInvalid {
		return dtype{}, fmt.Errorf("descr %q: %w", s, ErrUnsupportedType)
	}

	return d, nil
}

func signedKind(size int) marray.Kind {
	switch size {
	case 1:
		return marray.KindInt8
	case 2:
		return marray.KindInt16
	case 4:
		return marray.KindInt32
	case 8:
		return marray.KindInt64
	}

	return marray.KindInvalid
}

func unsignedKind(size int) marray.Kind {
	switch size {
	case 1:
		return marray.KindUint8
	case 2:
		return marray.KindUint16
	case 4:
		return marray.KindUint32
	case 8:
		return marray.KindUint64
	}

	return marray.KindInvalid
}

// dtypeFor returns the stored type used to save elements of type T.
func dtypeFor[T marray.Number](o Options) (dtype, error) {
	k := marray.KindOf[T]()
	if k == marray.KindInvalid {
		return dtype{}, ErrUnsupportedType
	}
	if o.half {
		if !k.IsFloat() {
			return dtype{}, fmt.Errorf("half precision from %s: %w", k, ErrUnsupportedType)
		}

		return dtype{kind: marray.KindFloat32, half: true, order: o.byteOrder}, nil
	}

	return dtype{kind: k, order: o.byteOrder}, nil
}

// checkLoadable rejects stored types that T cannot receive.
func checkLoadable[T marray.Number](d dtype) error {
	if d.half && !marray.KindOf[T]().IsFloat() {
		return fmt.Errorf("f2 into %s: %w", marray.KindOf[T](), ErrUnsupportedType)
	}

	return nil
}

// decode converts len(dst) stored elements from raw into dst.
func decode[T marray.Number](dst []T, raw []byte, d dtype) {
	bo := d.order
	switch {
	case d.half:
		for i := range dst {
			dst[i] = T(float16.Frombits(bo.Uint16(raw[2*i:])).Float32())
		}
	case d.kind == marray.KindInt8:
		for i := range dst {
			dst[i] = T(int8(raw[i]))
		}
	case d.kind == marray.KindUint8:
		for i := range dst {
			dst[i] = T(raw[i])
		}
	case d.kind == marray.KindInt16:
		for i := range dst {
			dst[i] = T(int16(bo.Uint16(raw[2*i:])))
		}
	case d.kind == marray.KindUint16:
		for i := range dst {
			dst[i] = T(bo.Uint16(raw[2*i:]))
		}
	case d.kind == marray.KindInt32:
		for i := range dst {
			dst[i] = T(int32(bo.Uint32(raw[4*i:])))
		}
	case d.kind == marray.KindUint32:
		for i := range dst {
			dst[i] = T(bo.Uint32(raw[4*i:]))
		}
	case d.kind == marray.KindInt64:
		for i := range dst {
			dst[i] = T(int64(bo.Uint64(raw[8*i:])))
		}
	case d.kind == marray.KindUint64:
		for i := range dst {
			dst[i] = T(bo.Uint64(raw[8*i:]))
		}
	case d.kind == marray.KindFloat32:
		for i := range dst {
			dst[i] = T(math.Float32frombits(bo.Uint32(raw[4*i:])))
		}
	case d.kind == marray.KindFloat64:
		for i := range dst {
			dst[i] = T(math.Float64frombits(bo.Uint64(raw[8*i:])))
		}
	}
}

// encode converts src into the stored representation d, writing into raw.
func encode[T marray.Number](raw []byte, src []T, d dtype) {
	bo := d.order
	switch {
	case d.half:
		for i, x := range src {
			bo.PutUint16(raw[2*i:], float16.Fromfloat32(float32(x)).Bits())
		}
	case d.kind == marray.KindInt8:
		for i, x := range src {
			raw[i] = byte(int8(x))
		}
	case d.kind == marray.KindUint8:
		for i, x := range src {
			raw[i] = uint8(x)
		}
	case d.kind == marray.KindInt16:
		for i, x := range src {
			bo.PutUint16(raw[2*i:], uint16(int16(x)))
		}
	case d.kind == marray.KindUint16:
		for i, x := range src {
			bo.PutUint16(raw[2*i:], uint16(x))
		}
	case d.kind == marray.KindInt32:
		for i, x := range src {
			bo.PutUint32(raw[4*i:], uint32(int32(x)))
		}
	case d.kind == marray.KindUint32:
		for i, x := range src {
			bo.PutUint32(raw[4*i:], uint32(x))
		}
	case d.kind == marray.KindInt64:
		for i, x := range src {
			bo.PutUint64(raw[8*i:], uint64(int64(x)))
		}
	case d.kind == marray.KindUint64:
		for i, x := range src {
			bo.PutUint64(raw[8*i:], uint64(x))
		}
	case d.kind == marray.KindFloat32:
		for i, x := range src {
			bo.PutUint32(raw[4*i:], math.Float32bits(float32(x)))
		}
	case d.kind == marray.KindFloat64:
		for i, x := range src {
			bo.PutUint64(raw[8*i:], math.Float64bits(float64(x)))
		}
	}
}
