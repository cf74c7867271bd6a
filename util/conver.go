package util

import (
	"strconv"
	"unsafe"

	"github.com/pkg/errors"
)

// Str2bytes returns the bytes of s without copying. The result must not be
// modified.
func Str2bytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

func Byte2Str(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// Str2Int parses a base 10 int, naming s in the error.
func Str2Int(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Errorf("%q is not an integer", s)
	}
	return n, nil
}
