package codec

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/hupe1980/weft"
	"github.com/hupe1980/weft/internal/conv"
	"github.com/hupe1980/weft/internal/hash"
	"github.com/hupe1980/weft/model"
)

// Record layout (before compression), integers are uvarints unless noted:
//
//	NodeCount
//	NodeCount × (Len, Bytes)          external ids, position = NodeIndex
//	Flags (1 byte)                    bit 0: weight section present
//	NodeCount × (Degree, Targets...)  first target absolute, then gaps > 0
//	[WeightCount, WeightCount × (From, To, Float64 bits LE 8 bytes)]
//	CRC32C (4 bytes LE)               of everything above
const (
	flagWeights byte = 1 << 0

	knownFlags = flagWeights
)

func marshalRecord(g *weft.Graph) []byte {
	n := g.NodeCount()
	pb := newPayloadBuffer(make([]byte, 0, 16+n*8+g.EdgeCount()*2))

	pb.writeUvarint(uint64(n))
	for _, id := range g.IDs() {
		pb.writeString(id)
	}

	weights := g.WeightedEdges()
	var flags byte
	if len(weights) > 0 {
		flags |= flagWeights
	}
	pb.writeByte(flags)

	for i := 0; i < n; i++ {
		row := g.OutNeighbors(model.NodeIndex(i))
		pb.writeUvarint(uint64(len(row)))
		var prev model.NodeIndex
		for j, t := range row {
			if j == 0 {
				pb.writeUvarint(uint64(t))
			} else {
				pb.writeUvarint(uint64(t - prev))
			}
			prev = t
		}
	}

	if flags&flagWeights != 0 {
		pb.writeUvarint(uint64(len(weights)))
		for _, w := range weights {
			pb.writeUvarint(uint64(w.From))
			pb.writeUvarint(uint64(w.To))
			pb.writeUint64(math.Float64bits(w.Weight))
		}
	}

	return hash.AppendCRC32C(pb.buf)
}

func unmarshalRecord(data []byte) (*weft.Graph, error) {
	body, ok := hash.VerifyCRC32C(data)
	if !ok {
		return nil, corruptf("checksum mismatch")
	}
	pb := newPayloadBuffer(body)

	// Every node costs at least two bytes (id length and degree).
	n, err := pb.readCount(2)
	if err != nil {
		return nil, err
	}
	if n > model.MaxNodes {
		return nil, corruptf("node count %d exceeds limit", n)
	}

	ids := make([]string, n)
	for i := range ids {
		ids[i] = pb.readString()
	}

	flags := pb.readByte()
	if flags&^knownFlags != 0 {
		return nil, corruptf("unknown flags %#x", flags)
	}

	adjacency := make([][]model.NodeIndex, n)
	for i := range adjacency {
		deg, err := pb.readCount(1)
		if err != nil {
			return nil, err
		}
		if deg > n {
			return nil, corruptf("node %d: degree %d exceeds node count %d", i, deg, n)
		}
		row := make([]model.NodeIndex, deg)
		var prev uint64
		for j := range row {
			v := pb.readUvarint()
			if pb.err != nil {
				return nil, corruptf("truncated record: %v", pb.err)
			}
			if j > 0 {
				if v == 0 {
					return nil, corruptf("node %d: neighbors not strictly ascending", i)
				}
				if v >= uint64(n) {
					return nil, corruptf("node %d: neighbor gap %d out of range", i, v)
				}
				v += prev
			}
			if v >= uint64(n) {
				return nil, corruptf("node %d: neighbor index %d out of range [0, %d)", i, v, n)
			}
			row[j] = model.NodeIndex(v)
			prev = v
		}
		adjacency[i] = row
	}

	var weights []model.WeightedEdge
	if flags&flagWeights != 0 {
		// from + to + 8 bytes of weight
		cnt, err := pb.readCount(10)
		if err != nil {
			return nil, err
		}
		weights = make([]model.WeightedEdge, cnt)
		for i := range weights {
			from, err := conv.Uint64ToUint32(pb.readUvarint())
			if err != nil {
				return nil, corruptf("weight %d: %v", i, err)
			}
			to, err := conv.Uint64ToUint32(pb.readUvarint())
			if err != nil {
				return nil, corruptf("weight %d: %v", i, err)
			}
			weights[i] = model.WeightedEdge{
				Edge:   model.Edge{From: model.NodeIndex(from), To: model.NodeIndex(to)},
				Weight: math.Float64frombits(pb.readUint64()),
			}
		}
	}

	if pb.err != nil {
		return nil, corruptf("truncated record: %v", pb.err)
	}
	if pb.pos != len(pb.buf) {
		return nil, corruptf("%d trailing bytes", len(pb.buf)-pb.pos)
	}

	g, err := weft.NewGraph(ids, adjacency, weights)
	if err != nil {
		return nil, corruptf("%v", err)
	}
	return g, nil
}

type payloadBuffer struct {
	buf []byte
	pos int
	err error
}

func newPayloadBuffer(b []byte) *payloadBuffer {
	return &payloadBuffer{buf: b}
}

func (p *payloadBuffer) writeUvarint(v uint64) {
	p.buf = binary.AppendUvarint(p.buf, v)
}

func (p *payloadBuffer) writeUint64(v uint64) {
	p.buf = binary.LittleEndian.AppendUint64(p.buf, v)
}

func (p *payloadBuffer) writeByte(b byte) {
	p.buf = append(p.buf, b)
}

func (p *payloadBuffer) writeString(s string) {
	p.writeUvarint(uint64(len(s)))
	p.buf = append(p.buf, s...)
}

func (p *payloadBuffer) remaining() int {
	return len(p.buf) - p.pos
}

func (p *payloadBuffer) readUvarint() uint64 {
	if p.err != nil {
		return 0
	}
	v, n := binary.Uvarint(p.buf[p.pos:])
	if n <= 0 {
		p.err = io.ErrUnexpectedEOF
		return 0
	}
	p.pos += n
	return v
}

// readCount reads a length prefix and rejects values that cannot fit in the
// remaining input when every element needs at least minSize bytes.
func (p *payloadBuffer) readCount(minSize int) (int, error) {
	v := p.readUvarint()
	if p.err != nil {
		return 0, corruptf("truncated record: %v", p.err)
	}
	n, err := conv.Uint64ToInt(v)
	if err != nil {
		return 0, corruptf("%v", err)
	}
	if n > p.remaining()/minSize {
		return 0, corruptf("count %d exceeds remaining %d bytes", n, p.remaining())
	}
	return n, nil
}

func (p *payloadBuffer) readUint64() uint64 {
	if p.err != nil {
		return 0
	}
	if p.pos+8 > len(p.buf) {
		p.err = io.ErrUnexpectedEOF
		return 0
	}
	v := binary.LittleEndian.Uint64(p.buf[p.pos:])
	p.pos += 8
	return v
}

func (p *payloadBuffer) readByte() byte {
	if p.err != nil {
		return 0
	}
	if p.pos >= len(p.buf) {
		p.err = io.ErrUnexpectedEOF
		return 0
	}
	b := p.buf[p.pos]
	p.pos++
	return b
}

func (p *payloadBuffer) readString() string {
	if p.err != nil {
		return ""
	}
	l := p.readUvarint()
	if p.err != nil {
		return ""
	}
	if l > uint64(p.remaining()) {
		p.err = io.ErrUnexpectedEOF
		return ""
	}
	s := string(p.buf[p.pos : p.pos+int(l)])
	p.pos += int(l)
	return s
}
