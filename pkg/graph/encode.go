package graph

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/bitgraph-dev/bitgraph/pkg/bitvec"
)

// FormatVersion is the only supported serialization format version.
const FormatVersion int32 = 1

// nilSet marks a node with an empty outbound set in the serialized form.
const nilSet int32 = -1

// maxDecodeAlloc caps the up-front allocations Decode makes from
// header-declared counts and sizes. Larger graphs still decode; the
// buffers grow only as payload actually arrives, so a forged header
// over a short stream fails with ErrCorruptData instead of exhausting
// memory.
const maxDecodeAlloc = 1 << 16

// Encode writes the graph in the versioned binary format:
//
//	[i32 version][i32 nodeCount][per node: i32 byteLen or -1, bytes]
//
// Only the outbound edge sets are stored; empty sets are written as the
// -1 marker with no payload. All integers are big-endian.
func (g *Graph) Encode(w io.Writer) error {
	if err := binary.Write(w, binary.BigEndian, FormatVersion); err != nil {
		return fmt.Errorf("write version: %w", err)
	}
	if err := binary.Write(w, binary.BigEndian, int32(g.Size())); err != nil {
		return fmt.Errorf("write node count: %w", err)
	}
	for i, v := range g.outbound {
		if v.IsEmpty() {
			if err := binary.Write(w, binary.BigEndian, nilSet); err != nil {
				return fmt.Errorf("write node %d: %w", i, err)
			}
			continue
		}
		data, err := v.ToBytes()
		if err != nil {
			return fmt.Errorf("encode node %d: %w", i, err)
		}
		if err := binary.Write(w, binary.BigEndian, int32(len(data))); err != nil {
			return fmt.Errorf("write node %d: %w", i, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("write node %d: %w", i, err)
		}
	}
	return nil
}

// Decode reads a graph in the format produced by [Graph.Encode]. The
// inbound edge sets are recomputed as the structural inverse - the format
// never stores them.
//
// Returns ErrUnsupportedVersion for any version other than
// [FormatVersion], and ErrCorruptData for truncated input or a node
// bit-set payload that fails to decode. Corrupt payloads fail closed;
// they never decode to an empty set, and allocation is bounded by the
// bytes actually read, so a header declaring a huge node count or
// payload over a short stream is rejected without a matching
// allocation.
func Decode(r io.Reader) (*Graph, error) {
	var version int32
	if err := binary.Read(r, binary.BigEndian, &version); err != nil {
		return nil, fmt.Errorf("%w: missing version: %v", ErrCorruptData, err)
	}
	if version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	var count int32
	if err := binary.Read(r, binary.BigEndian, &count); err != nil {
		return nil, fmt.Errorf("%w: missing node count: %v", ErrCorruptData, err)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: negative node count %d", ErrCorruptData, count)
	}

	capHint := int(count)
	if capHint > maxDecodeAlloc {
		capHint = maxDecodeAlloc
	}
	outbound := make([]*bitvec.Vector, 0, capHint)
	for i := int32(0); i < count; i++ {
		var size int32
		if err := binary.Read(r, binary.BigEndian, &size); err != nil {
			return nil, fmt.Errorf("%w: node %d: %v", ErrCorruptData, i, err)
		}
		if size == nilSet {
			outbound = append(outbound, bitvec.New().Freeze())
			continue
		}
		if size < 0 {
			return nil, fmt.Errorf("%w: node %d: negative payload size %d", ErrCorruptData, i, size)
		}
		var buf bytes.Buffer
		if size <= maxDecodeAlloc {
			buf.Grow(int(size))
		}
		if _, err := io.CopyN(&buf, r, int64(size)); err != nil {
			return nil, fmt.Errorf("%w: node %d: %v", ErrCorruptData, i, err)
		}
		v, err := bitvec.FromBytes(buf.Bytes())
		if err != nil {
			return nil, fmt.Errorf("%w: node %d: %v", ErrCorruptData, i, err)
		}
		outbound = append(outbound, v)
	}

	g, err := FromEdges(outbound)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	return g, nil
}
