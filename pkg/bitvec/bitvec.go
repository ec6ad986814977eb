package bitvec

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

// ErrCorruptData is returned by FromBytes when the input is not a valid
// serialized bit vector. Partial or truncated input fails closed rather
// than decoding to an empty vector.
var ErrCorruptData = errors.New("corrupt bit vector data")

// Vector is a read-only set of non-negative integers backed by a Roaring
// bitmap. The zero value is not usable - obtain vectors from New,
// FromBytes, or by freezing a MutableVector.
type Vector struct {
	rb *roaring.Bitmap
}

// MutableVector extends Vector with in-place mutation and set algebra.
type MutableVector struct {
	Vector
}

// New creates an empty mutable vector.
func New() *MutableVector {
	return &MutableVector{Vector{rb: roaring.New()}}
}

// Of creates a mutable vector containing the given bits.
func Of(bits ...int) *MutableVector {
	v := New()
	for _, b := range bits {
		v.Set(b)
	}
	return v
}

// FromBytes reconstructs a vector from its ToBytes encoding.
// Returns ErrCorruptData if the input cannot be decoded.
func FromBytes(data []byte) (*Vector, error) {
	rb := roaring.New()
	if _, err := rb.ReadFrom(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	return &Vector{rb: rb}, nil
}

// Get reports whether bit i is set. Negative indices are never set.
func (v *Vector) Get(i int) bool {
	if i < 0 {
		return false
	}
	return v.rb.Contains(uint32(i))
}

// Cardinality returns the number of set bits.
func (v *Vector) Cardinality() int {
	return int(v.rb.GetCardinality())
}

// IsEmpty reports whether no bits are set.
func (v *Vector) IsEmpty() bool {
	return v.rb.IsEmpty()
}

// NextSetBit returns the smallest set bit >= from, or -1 if none.
func (v *Vector) NextSetBit(from int) int {
	if from < 0 {
		from = 0
	}
	it := v.rb.Iterator()
	it.AdvanceIfNeeded(uint32(from))
	if !it.HasNext() {
		return -1
	}
	return int(it.Next())
}

// ForEachSetBit calls fn for each set bit in ascending order. fn returns
// false to stop early. Returns the bit at which iteration stopped, or -1
// if it ran to completion.
func (v *Vector) ForEachSetBit(fn func(i int) bool) int {
	it := v.rb.Iterator()
	for it.HasNext() {
		i := int(it.Next())
		if !fn(i) {
			return i
		}
	}
	return -1
}

// ForEachSetBitDescending is ForEachSetBit in descending bit order.
func (v *Vector) ForEachSetBitDescending(fn func(i int) bool) int {
	it := v.rb.ReverseIterator()
	for it.HasNext() {
		i := int(it.Next())
		if !fn(i) {
			return i
		}
	}
	return -1
}

// Intersects reports whether v and other share at least one set bit.
func (v *Vector) Intersects(other *Vector) bool {
	return v.rb.Intersects(other.rb)
}

// Equals reports whether v and other contain exactly the same bits.
func (v *Vector) Equals(other *Vector) bool {
	return v.rb.Equals(other.rb)
}

// Bits returns all set bits in ascending order.
func (v *Vector) Bits() []int {
	out := make([]int, 0, v.Cardinality())
	v.ForEachSetBit(func(i int) bool {
		out = append(out, i)
		return true
	})
	return out
}

// Copy returns an independent read-only copy.
func (v *Vector) Copy() *Vector {
	return &Vector{rb: v.rb.Clone()}
}

// MutableCopy returns an independent mutable copy.
func (v *Vector) MutableCopy() *MutableVector {
	return &MutableVector{Vector{rb: v.rb.Clone()}}
}

// ToBytes returns the binary encoding of the vector, suitable for
// FromBytes. An empty vector encodes to a small non-nil payload.
func (v *Vector) ToBytes() ([]byte, error) {
	return v.rb.ToBytes()
}

// String renders the set bits for debugging, e.g. "{0,3,17}".
func (v *Vector) String() string {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	v.ForEachSetBit(func(i int) bool {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		fmt.Fprintf(&buf, "%d", i)
		return true
	})
	buf.WriteByte('}')
	return buf.String()
}

// Set sets bit i. Panics if i is negative.
func (m *MutableVector) Set(i int) {
	if i < 0 {
		panic(fmt.Sprintf("bitvec: Set index %d out of range", i))
	}
	m.rb.Add(uint32(i))
}

// Clear clears bit i. Clearing an unset or negative bit is a no-op.
func (m *MutableVector) Clear(i int) {
	if i < 0 {
		return
	}
	m.rb.Remove(uint32(i))
}

// And intersects m with other in place.
func (m *MutableVector) And(other *Vector) {
	m.rb.And(other.rb)
}

// Or unions other into m in place.
func (m *MutableVector) Or(other *Vector) {
	m.rb.Or(other.rb)
}

// Xor replaces m with the symmetric difference of m and other.
func (m *MutableVector) Xor(other *Vector) {
	m.rb.Xor(other.rb)
}

// AndNot removes all bits of other from m.
func (m *MutableVector) AndNot(other *Vector) {
	m.rb.AndNot(other.rb)
}

// Freeze returns the read-only view of m. The view shares storage with m;
// callers that keep mutating m after freezing see the mutations through
// the view. Graph construction freezes exactly once and drops the
// mutable handle.
func (m *MutableVector) Freeze() *Vector {
	return &m.Vector
}
