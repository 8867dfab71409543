// SPDX-License-Identifier: MIT

package ndio_test

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvmarray/marray"
	"github.com/katalvlaran/lvmarray/ndio"
)

func mustArray[T any](tb testing.TB, values []T, shape []int, opts ...marray.Option) *marray.Array[T] {
	tb.Helper()
	a, err := marray.FromSlice(values, shape, opts...)
	require.NoError(tb, err)

	return a
}

// rawNPY assembles a v1 file around a literal header dict.
func rawNPY(dict string, data []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x93NUMPY\x01\x00")
	hlen := len(dict) + 1
	pad := (64 - (10+hlen)%64) % 64
	_ = binary.Write(&buf, binary.LittleEndian, uint16(hlen+pad))
	buf.WriteString(dict)
	buf.Write(bytes.Repeat([]byte{' '}, pad))
	buf.WriteByte('\n')
	buf.Write(data)

	return buf.Bytes()
}

// saveNPYFile writes v to a fresh file and returns it opened read-write.
func saveNPYFile[T marray.Number](tb testing.TB, v *marray.View[T]) *os.File {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), "data.npy")
	var buf bytes.Buffer
	require.NoError(tb, ndio.SaveNPY(&buf, v))
	require.NoError(tb, os.WriteFile(path, buf.Bytes(), 0o600))
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	require.NoError(tb, err)
	tb.Cleanup(func() { _ = f.Close() })

	return f
}
