package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the frame format of the compressed payload.
type Compression uint8

const (
	// CompressionZSTD writes a zstd frame (better ratio, the default).
	CompressionZSTD Compression = iota + 1
	// CompressionLZ4 writes an LZ4 frame (faster, larger output).
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionZSTD:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// ParseCompression returns the Compression named s ("zstd" or "lz4").
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "zstd", "":
		return CompressionZSTD, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", s)
	}
}

// Frame magics as they appear on the wire (little-endian).
const (
	zstdFrameMagic = 0xFD2FB528
	lz4FrameMagic  = 0x184D2204
)

// maxDecodedSize bounds the decompressed record.
const maxDecodedSize uint64 = 1 << 34

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil,
		zstd.WithDecoderMaxMemory(maxDecodedSize),
		zstd.WithDecoderConcurrency(1),
	)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

func compress(c Compression, level zstd.EncoderLevel, src []byte) ([]byte, error) {
	switch c {
	case CompressionZSTD:
		return compressZSTD(level, src)
	case CompressionLZ4:
		return compressLZ4(src)
	default:
		return nil, fmt.Errorf("unknown compression %s", c)
	}
}

func compressZSTD(level zstd.EncoderLevel, src []byte) ([]byte, error) {
	if level == zstd.SpeedDefault {
		enc := getZstdEncoder()
		defer putZstdEncoder(enc)
		return enc.EncodeAll(src, nil), nil
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level))
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(src, nil), nil
}

func compressLZ4(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if err := zw.Apply(lz4.ChecksumOption(true)); err != nil {
		return nil, err
	}
	if _, err := zw.Write(src); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decompress detects the frame format from its magic number.
func decompress(src []byte) ([]byte, error) {
	if len(src) < 4 {
		return nil, corruptf("payload too short (%d bytes)", len(src))
	}

	switch binary.LittleEndian.Uint32(src) {
	case zstdFrameMagic:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)
		out, err := dec.DecodeAll(src, nil)
		if err != nil {
			return nil, corruptf("zstd: %v", err)
		}
		return out, nil
	case lz4FrameMagic:
		zr := lz4.NewReader(bytes.NewReader(src))
		out, err := io.ReadAll(io.LimitReader(zr, int64(maxDecodedSize)+1))
		if err != nil {
			return nil, corruptf("lz4: %v", err)
		}
		if uint64(len(out)) > maxDecodedSize {
			return nil, corruptf("lz4: decoded size exceeds %d bytes", maxDecodedSize)
		}
		return out, nil
	default:
		return nil, corruptf("unknown compression frame %#x", binary.LittleEndian.Uint32(src))
	}
}
