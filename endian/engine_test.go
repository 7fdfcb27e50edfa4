package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetEngines(t *testing.T) {
	require.Equal(t, binary.BigEndian, GetBigEndianEngine())
	require.Equal(t, binary.LittleEndian, GetLittleEndianEngine())
	require.True(t, IsBigEndian(GetBigEndianEngine()))
	require.False(t, IsBigEndian(GetLittleEndianEngine()))
}

func TestUint24(t *testing.T) {
	tests := []struct {
		name   string
		engine EndianEngine
		value  uint32
		bytes  []byte
	}{
		{"big zero", GetBigEndianEngine(), 0, []byte{0, 0, 0}},
		{"big value", GetBigEndianEngine(), 0x123456, []byte{0x12, 0x34, 0x56}},
		{"big max", GetBigEndianEngine(), MaxUint24, []byte{0xFF, 0xFF, 0xFF}},
		{"little value", GetLittleEndianEngine(), 0x123456, []byte{0x56, 0x34, 0x12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := make([]byte, 3)
			PutUint24(tt.engine, b, tt.value)
			require.Equal(t, tt.bytes, b)
			require.Equal(t, tt.value, Uint24(tt.engine, b))
		})
	}
}

func TestPutUint24_Truncates(t *testing.T) {
	b := make([]byte, 4)
	PutUint24(GetBigEndianEngine(), b, 0xAABBCCDD)

	require.Equal(t, []byte{0xBB, 0xCC, 0xDD, 0x00}, b)
}

func TestUint24_ShortBuffer(t *testing.T) {
	require.Panics(t, func() {
		Uint24(GetBigEndianEngine(), []byte{1, 2})
	})
}
