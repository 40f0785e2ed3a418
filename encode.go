package borepix

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/klauspost/compress/zlib"
)

// pngSignature is the 8-byte magic at the start of every PNG stream.
var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// pngCompressionLevel is fixed so that identical RGB content always encodes
// to byte-identical output. Content-addressed storage upstream relies on
// this determinism.
const pngCompressionLevel = zlib.BestCompression

// EncodePNG serializes a packed RGB row as a 1-pixel-tall truecolor PNG.
//
// The stream is written chunk by chunk (IHDR, one IDAT, IEND), the single
// scanline stored with filter type None and deflated at a fixed compression
// level, so encoding is fully deterministic.
//
// The buffer must hold exactly width*3 bytes; anything else is a contract
// violation reported as ErrEncode.
func EncodePNG(rgb []byte, width int) ([]byte, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: width must be positive, got %d", ErrEncode, width)
	}
	if len(rgb) != width*3 {
		return nil, fmt.Errorf("%w: rgb buffer is %d bytes, want %d for width %d",
			ErrEncode, len(rgb), width*3, width)
	}

	var buf bytes.Buffer
	buf.Write(pngSignature)

	// IHDR: width, height 1, 8-bit samples, truecolor, deflate compression,
	// adaptive filtering, no interlace. The trailing method bytes are all
	// zero, which the array's zero value already provides.
	var ihdr [13]byte
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(width))
	binary.BigEndian.PutUint32(ihdr[4:8], 1)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 2 // color type: truecolor RGB
	writeChunk(&buf, "IHDR", ihdr[:])

	// IDAT: the scanline prefixed with its filter byte (None), deflated.
	scanline := make([]byte, 1+len(rgb))
	copy(scanline[1:], rgb)

	var idat bytes.Buffer
	zw, err := zlib.NewWriterLevel(&idat, pngCompressionLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if _, err := zw.Write(scanline); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	writeChunk(&buf, "IDAT", idat.Bytes())

	writeChunk(&buf, "IEND", nil)
	return buf.Bytes(), nil
}

// IsPNG reports whether b begins with the 8-byte PNG signature.
func IsPNG(b []byte) bool {
	return bytes.HasPrefix(b, pngSignature)
}

// writeChunk emits one PNG chunk: length, type, data, CRC32 over type+data.
func writeChunk(buf *bytes.Buffer, typ string, data []byte) {
	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[0:4], uint32(len(data)))
	copy(hdr[4:8], typ)
	buf.Write(hdr[:])
	buf.Write(data)

	crc := crc32.NewIEEE()
	crc.Write(hdr[4:8])
	crc.Write(data)
	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc.Sum32())
	buf.Write(sum[:])
}
