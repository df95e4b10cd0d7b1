package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCopyBytes(t *testing.T) {
	require.Nil(t, CopyBytes(nil))

	src := []byte{1, 2, 3}
	dst := CopyBytes(src)
	src[0] = 9
	require.Equal(t, []byte{1, 2, 3}, dst)
}

func TestUint32Bytes(t *testing.T) {
	b := Uint32ToBytes(0x01020304)
	require.Equal(t, []byte{1, 2, 3, 4}, b)
	require.Equal(t, uint32(0x01020304), BytesToUint32(b))
	require.Equal(t, uint32(0), BytesToUint32([]byte{1}))
}
