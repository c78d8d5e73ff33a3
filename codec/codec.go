// Package codec persists a weft.Graph as a compact, versioned byte stream.
//
// The wire format is a single format-version byte followed by one
// compressed frame (zstd by default, LZ4 optionally):
//
//	[version: 1 byte][zstd or LZ4 frame]
//
// The frame holds the node id table in index order, delta-encoded outgoing
// adjacency, optional edge weights and a CRC32-C checksum. Incoming
// adjacency is rebuilt on load. Decode rejects unknown versions with
// ErrUnsupportedVersion and any malformed input with ErrCorruptData; it
// never returns a partially built graph.
//
// The core weft package does not depend on this package. Programs that do
// not persist graphs never link the compression libraries.
package codec

import (
	"bytes"
	"io"

	"github.com/hupe1980/weft"
	"github.com/klauspost/compress/zstd"
)

// FormatVersion is the only version Decode accepts.
const FormatVersion byte = 1

type options struct {
	compression Compression
	zstdLevel   zstd.EncoderLevel
}

// Option configures Encode.
type Option func(*options)

// WithCompression selects the frame format. The default is CompressionZSTD.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithZstdLevel sets the zstd encoder level. Ignored for LZ4.
func WithZstdLevel(level zstd.EncoderLevel) Option {
	return func(o *options) {
		o.zstdLevel = level
	}
}

// Encode serializes g.
func Encode(g *weft.Graph, optFns ...Option) ([]byte, error) {
	opts := options{
		compression: CompressionZSTD,
		zstdLevel:   zstd.SpeedDefault,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	payload, err := compress(opts.compression, opts.zstdLevel, marshalRecord(g))
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, 1+len(payload))
	out = append(out, FormatVersion)
	return append(out, payload...), nil
}

// Decode reconstructs a graph produced by Encode.
func Decode(data []byte) (*weft.Graph, error) {
	if len(data) == 0 {
		return nil, corruptf("empty input")
	}
	if data[0] != FormatVersion {
		return nil, &VersionError{Version: data[0]}
	}

	record, err := decompress(data[1:])
	if err != nil {
		return nil, err
	}
	return unmarshalRecord(record)
}

// Write encodes g to w.
func Write(w io.Writer, g *weft.Graph, optFns ...Option) error {
	data, err := Encode(g, optFns...)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Read decodes a graph from the remaining contents of r.
func Read(r io.Reader) (*weft.Graph, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, err
	}
	return Decode(buf.Bytes())
}
