package cmpent

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cmpent/format"
)

func TestEntity_PrintHeader(t *testing.T) {
	tests := []struct {
		dt      format.DataType
		want    []string
		notWant []string
	}{
		{
			dt:      format.DataTypeImagette,
			want:    []string{"Used Golomb Parameter: 5", "Used Spillover Threshold Parameter: 64"},
			notWant: []string{"Adaptive", "Compression Parameter 1"},
		},
		{
			dt: format.DataTypeImagetteAdaptive,
			want: []string{
				"Used Golomb Parameter: 7", "Used Adaptive 1 Golomb Parameter: 8",
				"Used Adaptive 2 Spillover Threshold Parameter: 13398",
			},
			notWant: []string{"Compression Parameter 1"},
		},
		{
			dt: format.DataTypeBackground,
			want: []string{
				"Used Spillover Threshold Parameter 1: 66051", "Used Compression Parameter 6: 1542",
			},
			notWant: []string{"Used Golomb Parameter", "Adaptive"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.dt.String(), func(t *testing.T) {
			ent, err := Build(fullConfig(tt.dt, format.CmpModeModelZero), []byte{0x01, 0xAB})
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, ent.PrintHeader(&buf))
			out := buf.String()

			require.Contains(t, out, "Compressed with cmp_tool version: 1.00")
			require.Contains(t, out, "Data Product Type: "+strconv.Itoa(int(tt.dt))+" ("+tt.dt.String()+")")
			require.Contains(t, out, "Used Compression Mode: 1 (MODE_MODEL_ZERO)")
			require.Contains(t, out, "Model ID: 48879")
			require.Contains(t, out, "RAW bit in the Data Product Type is not set")
			for _, s := range tt.want {
				require.Contains(t, out, s)
			}
			for _, s := range tt.notWant {
				require.NotContains(t, out, s)
			}
		})
	}
}

func TestEntity_PrintInstrumentVersion(t *testing.T) {
	ent, err := Build(fullConfig(format.DataTypeOffset, format.CmpModeRaw), nil, WithVersionID(1234))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ent.PrintHeader(&buf))
	require.Contains(t, buf.String(), "ICU ASW Version ID: 1234")
}

func TestEntity_PrintData(t *testing.T) {
	payload := make([]byte, 40)
	for i := range payload {
		payload[i] = byte(i)
	}
	ent, err := Build(fullConfig(format.DataTypeImagette, format.CmpModeRaw), payload)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ent.PrintData(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "Compressed Data (40 byte):", lines[0])
	require.True(t, strings.HasPrefix(lines[1], "00 01 02"))
	require.True(t, strings.HasSuffix(lines[1], "1E 1F"))
	require.Equal(t, "20 21 22 23 24 25 26 27", lines[2])
}

type failingWriter struct{}

var errWrite = errors.New("write failed")

func (failingWriter) Write([]byte) (int, error) {
	return 0, errWrite
}

func TestEntity_PrintWriteError(t *testing.T) {
	ent, err := Build(fullConfig(format.DataTypeImagette, format.CmpModeRaw), []byte{1})
	require.NoError(t, err)

	require.ErrorIs(t, ent.Print(failingWriter{}), errWrite)
}
