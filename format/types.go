package format

import (
	"strconv"
	"strings"
)

type (
	// DataType is the 15-bit data product type stored in the generic header.
	DataType uint16
	// CompressionMode is the compression mode used to produce the payload.
	CompressionMode uint8
	// CompressionType is the outer codec applied to entities stored in an archive.
	CompressionType uint8
)

const (
	DataTypeUnknown              DataType = 0
	DataTypeImagette             DataType = 1
	DataTypeImagetteAdaptive     DataType = 2
	DataTypeSatImagette          DataType = 3
	DataTypeSatImagetteAdaptive  DataType = 4
	DataTypeOffset               DataType = 5
	DataTypeBackground           DataType = 6
	DataTypeSmearing             DataType = 7
	DataTypeSFx                  DataType = 8
	DataTypeSFxEfx               DataType = 9
	DataTypeSFxNcob              DataType = 10
	DataTypeSFxEfxNcobEcob       DataType = 11
	DataTypeLFx                  DataType = 12
	DataTypeLFxEfx               DataType = 13
	DataTypeLFxNcob              DataType = 14
	DataTypeLFxEfxNcobEcob       DataType = 15
	DataTypeFFx                  DataType = 16
	DataTypeFFxEfx               DataType = 17
	DataTypeFFxNcob              DataType = 18
	DataTypeFFxEfxNcobEcob       DataType = 19
	DataTypeFCamImagette         DataType = 20
	DataTypeFCamImagetteAdaptive DataType = 21
	DataTypeFCamOffset           DataType = 22
	DataTypeFCamBackground       DataType = 23
	DataTypeChunk                DataType = 24
)

const (
	CmpModeRaw        CompressionMode = 0 // CmpModeRaw stores the original data verbatim.
	CmpModeModelZero  CompressionMode = 1 // CmpModeModelZero is model mode with the zero escape symbol mechanism.
	CmpModeDiffZero   CompressionMode = 2 // CmpModeDiffZero is 1d-differencing with the zero escape symbol mechanism.
	CmpModeModelMulti CompressionMode = 3 // CmpModeModelMulti is model mode with the multi escape symbol mechanism.
	CmpModeDiffMulti  CompressionMode = 4 // CmpModeDiffMulti is 1d-differencing with the multi escape symbol mechanism.
	CmpModeStuff      CompressionMode = 5 // CmpModeStuff packs values with a fixed bit length.
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

const (
	dataTypeLast = DataTypeChunk
	cmpModeLast  = CmpModeStuff
)

var dataTypeNames = [...]string{
	"DATA_TYPE_UNKNOWN",
	"DATA_TYPE_IMAGETTE",
	"DATA_TYPE_IMAGETTE_ADAPTIVE",
	"DATA_TYPE_SAT_IMAGETTE",
	"DATA_TYPE_SAT_IMAGETTE_ADAPTIVE",
	"DATA_TYPE_OFFSET",
	"DATA_TYPE_BACKGROUND",
	"DATA_TYPE_SMEARING",
	"DATA_TYPE_S_FX",
	"DATA_TYPE_S_FX_EFX",
	"DATA_TYPE_S_FX_NCOB",
	"DATA_TYPE_S_FX_EFX_NCOB_ECOB",
	"DATA_TYPE_L_FX",
	"DATA_TYPE_L_FX_EFX",
	"DATA_TYPE_L_FX_NCOB",
	"DATA_TYPE_L_FX_EFX_NCOB_ECOB",
	"DATA_TYPE_F_FX",
	"DATA_TYPE_F_FX_EFX",
	"DATA_TYPE_F_FX_NCOB",
	"DATA_TYPE_F_FX_EFX_NCOB_ECOB",
	"DATA_TYPE_F_CAM_IMAGETTE",
	"DATA_TYPE_F_CAM_IMAGETTE_ADAPTIVE",
	"DATA_TYPE_F_CAM_OFFSET",
	"DATA_TYPE_F_CAM_BACKGROUND",
	"DATA_TYPE_CHUNK",
}

var cmpModeNames = [...]string{
	"MODE_RAW",
	"MODE_MODEL_ZERO",
	"MODE_DIFF_ZERO",
	"MODE_MODEL_MULTI",
	"MODE_DIFF_MULTI",
	"MODE_STUFF",
}

// IsKnown reports whether d is a defined data product type other than DataTypeUnknown.
func (d DataType) IsKnown() bool {
	return d > DataTypeUnknown && d <= dataTypeLast
}

// IsImagette reports whether d is one of the imagette data types, adaptive or not.
func (d DataType) IsImagette() bool {
	switch d { //nolint: exhaustive
	case DataTypeImagette, DataTypeImagetteAdaptive,
		DataTypeSatImagette, DataTypeSatImagetteAdaptive,
		DataTypeFCamImagette, DataTypeFCamImagetteAdaptive:
		return true
	default:
		return false
	}
}

// IsAdaptive reports whether d is an adaptive imagette data type.
func (d DataType) IsAdaptive() bool {
	switch d { //nolint: exhaustive
	case DataTypeImagetteAdaptive, DataTypeSatImagetteAdaptive, DataTypeFCamImagetteAdaptive:
		return true
	default:
		return false
	}
}

func (d DataType) String() string {
	if int(d) < len(dataTypeNames) {
		return dataTypeNames[d]
	}

	return "Unknown(" + strconv.Itoa(int(d)) + ")"
}

// ParseDataType parses a data type name such as "DATA_TYPE_IMAGETTE" or "imagette",
// or its decimal value.
func ParseDataType(s string) (DataType, bool) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range dataTypeNames {
		if name == n || "DATA_TYPE_"+name == n {
			return DataType(i), true
		}
	}

	v, err := strconv.ParseUint(name, 10, 15)
	if err != nil {
		return DataTypeUnknown, false
	}

	return DataType(v), true
}

// IsKnown reports whether m is a defined compression mode.
func (m CompressionMode) IsKnown() bool {
	return m <= cmpModeLast
}

// IsModel reports whether m predicts from a model of previous data.
func (m CompressionMode) IsModel() bool {
	return m == CmpModeModelZero || m == CmpModeModelMulti
}

// IsRaw reports whether m stores the data uncompressed.
func (m CompressionMode) IsRaw() bool {
	return m == CmpModeRaw
}

func (m CompressionMode) String() string {
	if int(m) < len(cmpModeNames) {
		return cmpModeNames[m]
	}

	return "Unknown(" + strconv.Itoa(int(m)) + ")"
}

// ParseCompressionMode parses a mode name such as "MODE_DIFF_ZERO" or "diff_zero",
// or its decimal value.
func ParseCompressionMode(s string) (CompressionMode, bool) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range cmpModeNames {
		if name == n || "MODE_"+name == n {
			return CompressionMode(i), true
		}
	}

	v, err := strconv.ParseUint(name, 10, 8)
	if err != nil {
		return 0, false
	}

	return CompressionMode(v), true
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
