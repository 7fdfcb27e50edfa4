package archive

import "github.com/arloliu/cmpent/endian"

// stream layout
const (
	StreamMagic      = 0x434D5041 // "CMPA"
	FrameMagic       = 0x434D5046 // "CMPF"
	FormatVersion    = 1
	StreamHeaderSize = 24
	FrameHeaderSize  = 24
)

// stream header byte offsets
const (
	streamMagicOffset   = 0
	streamVersionOffset = 4
	streamCodecOffset   = 6
	streamIDOffset      = 8
)

// frame header byte offsets
const (
	frameMagicOffset     = 0
	frameCodecOffset     = 4
	frameStoredLenOffset = 8
	frameEntityLenOffset = 12
	frameChecksumOffset  = 16
)

var engine = endian.GetBigEndianEngine()
