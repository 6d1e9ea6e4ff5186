package vec

import (
	"iter"
	"strings"

	"github.com/joshuapare/veckit/internal/buf"
	"github.com/joshuapare/veckit/pkg/types"
)

// Bits is a bit-packed boolean vector stored in the byte allocator S.
//
// Bit pos lives in byte pos/8 under mask 1<<(pos%8). Size and capacity are
// counted in bits. A byte is live in the allocator exactly when some bit below
// Size() lies in it, so ByteLen() == ceil(Size()/8). Bits of live bytes at or
// past Size() are always zero.
type Bits[S any, P Storage[byte, S]] struct {
	store S
	n     int
}

// BitRef is a transient reference to one bit. It holds a pointer into the
// vector's storage and is invalidated by anything that reallocates it.
type BitRef struct {
	b    *byte
	mask byte
}

// Get reads the bit.
func (r BitRef) Get() bool { return *r.b&r.mask != 0 }

// Set writes the bit, leaving the rest of its byte unchanged.
func (r BitRef) Set(v bool) {
	if v {
		*r.b |= r.mask
	} else {
		*r.b &^= r.mask
	}
}

func bitAddr(pos int) (block int, mask byte) {
	return pos >> 3, 1 << (pos & 7)
}

func bitBytes(bits int) int { return buf.CeilDiv(bits, 8) }

func (b *Bits[S, P]) storage() P { return P(&b.store) }

// Size returns the number of bits.
func (b *Bits[S, P]) Size() int { return b.n }

// Cap returns the number of bits the storage holds without growing.
func (b *Bits[S, P]) Cap() int { return b.storage().Cap() * 8 }

// ByteLen returns the number of live bytes.
func (b *Bits[S, P]) ByteLen() int { return b.storage().Size() }

// Empty reports whether there are no bits.
func (b *Bits[S, P]) Empty() bool { return b.n == 0 }

// Bytes returns the live bytes, least significant bit first. The slice
// aliases the storage.
func (b *Bits[S, P]) Bytes() []byte { return b.storage().Data() }

// Index returns a reference to bit pos without checking it against Size().
func (b *Bits[S, P]) Index(pos int) BitRef {
	block, mask := bitAddr(pos)
	return BitRef{b: b.storage().At(block), mask: mask}
}

// At reads bit pos, failing with types.ErrOutOfBounds when pos is not below
// Size().
func (b *Bits[S, P]) At(pos int) (bool, error) {
	if pos < 0 || pos >= b.n {
		return false, outOfBounds(pos, b.n)
	}
	return b.Index(pos).Get(), nil
}

// Set writes bit pos with the bounds check of At.
func (b *Bits[S, P]) Set(pos int, v bool) error {
	if pos < 0 || pos >= b.n {
		return outOfBounds(pos, b.n)
	}
	b.Index(pos).Set(v)
	return nil
}

// Front returns a reference to the first bit. The vector must not be empty.
func (b *Bits[S, P]) Front() BitRef { return b.Index(0) }

// Back returns a reference to the last bit. The vector must not be empty.
func (b *Bits[S, P]) Back() BitRef { return b.Index(b.n - 1) }

// All yields the bits with their positions.
func (b *Bits[S, P]) All() iter.Seq2[int, bool] {
	return func(yield func(int, bool) bool) {
		for i := 0; i < b.n; i++ {
			if !yield(i, b.Index(i).Get()) {
				return
			}
		}
	}
}

// String renders the bits as '0' and '1' characters, position 0 first.
func (b *Bits[S, P]) String() string {
	var sb strings.Builder
	sb.Grow(b.n)
	for _, v := range b.All() {
		if v {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// PushBack appends a bit. A full vector grows to the byte boundary at or above
// GrowthCapacity(Cap()) bits; a failed growth leaves it unchanged.
func (b *Bits[S, P]) PushBack(v bool) error {
	a := b.storage()
	if b.n == b.Cap() {
		bits, err := GrowthCapacity(b.Cap())
		if err != nil {
			return wrap(err, "can't grow bit vector on push")
		}
		if err := a.Grow(bitBytes(bits)); err != nil {
			return wrap(err, "can't grow bit vector on push")
		}
	}
	block, _ := bitAddr(b.n)
	if block == a.Size() {
		if err := a.Slot(block).Set(0); err != nil {
			return wrap(err, "can't construct byte on push")
		}
	}
	b.Index(b.n).Set(v)
	b.n++
	return nil
}

// PopBack removes the last bit, clearing it and destroying its byte when no
// other live bit remains in it. The vector must not be empty.
func (b *Bits[S, P]) PopBack() {
	b.n--
	b.Index(b.n).Set(false)
	if block, _ := bitAddr(b.n); b.n&7 == 0 {
		b.storage().DestroyRange(block, block+1)
	}
}

// Reserve grows the capacity to at least n bits.
func (b *Bits[S, P]) Reserve(n int) error {
	if n <= b.Cap() {
		return nil
	}
	return wrap(b.storage().Grow(bitBytes(n)), "can't reserve bit vector capacity")
}

// ShrinkToFit reallocates the storage to exactly ByteLen() bytes.
func (b *Bits[S, P]) ShrinkToFit() error {
	a := b.storage()
	if a.Size() == a.Cap() {
		return nil
	}
	return wrap(a.Grow(a.Size()), "can't shrink bit vector")
}

// Resize rebuilds the vector with n bits: the first min(n, Size()) bits are
// kept and the rest are set to fill. The storage is sized to ceil(n/8) bytes.
func (b *Bits[S, P]) Resize(n int, fill bool) error {
	if n < 0 {
		return types.Newf(types.ErrKindMemAlloc, "negative bit vector size %d", n)
	}
	a := b.storage()
	nb := bitBytes(n)
	keep := min(a.Size(), nb)
	next, err := buildAside[byte, S, P](a, nb, a.Data()[:keep], nb-keep, fillByte(fill))
	if err != nil {
		return wrap(err, "can't resize bit vector")
	}

	p := P(&next)
	for i := b.n; i < min(n, keep*8); i++ {
		block, mask := bitAddr(i)
		BitRef{b: p.At(block), mask: mask}.Set(fill)
	}
	clearTail[S, P](p, n)

	commit[byte, S, P](a, next)
	b.n = n
	return nil
}

// AssignFill replaces the contents with n copies of v.
func (b *Bits[S, P]) AssignFill(n int, v bool) error {
	if n < 0 {
		return types.Newf(types.ErrKindMemAlloc, "negative bit vector size %d", n)
	}
	a := b.storage()
	nb := bitBytes(n)
	next, err := buildAside[byte, S, P](a, nb, nil, nb, fillByte(v))
	if err != nil {
		return wrap(err, "can't assign bit vector")
	}
	clearTail[S, P](P(&next), n)
	commit[byte, S, P](a, next)
	b.n = n
	return nil
}

// Clear removes all bits. The capacity is unchanged.
func (b *Bits[S, P]) Clear() {
	b.storage().DestroyRange(0, b.ByteLen())
	b.n = 0
}

// Clone returns a deep copy of b sized to its live bytes.
func (b *Bits[S, P]) Clone() (Bits[S, P], error) {
	a := b.storage()
	next, err := buildAside[byte, S, P](a, a.Size(), a.Data(), 0, 0)
	if err != nil {
		return Bits[S, P]{store: a.Spare()}, wrap(err, "can't copy bit vector")
	}
	return Bits[S, P]{store: next, n: b.n}, nil
}

// CopyFrom replaces the contents of b with a copy of other. On failure b is
// unchanged.
func (b *Bits[S, P]) CopyFrom(other *Bits[S, P]) error {
	if b == other {
		return nil
	}
	src := other.storage()
	next, err := buildAside[byte, S, P](b.storage(), src.Size(), src.Data(), 0, 0)
	if err != nil {
		return wrap(err, "can't copy bit vector")
	}
	commit[byte, S, P](b.storage(), next)
	b.n = other.n
	return nil
}

// Move transfers b's storage to the returned vector and leaves b empty.
func (b *Bits[S, P]) Move() Bits[S, P] {
	out := Bits[S, P]{store: b.storage().Spare()}
	out.Swap(b)
	return out
}

// MoveFrom releases b's bits and takes over other's storage, leaving other
// empty.
func (b *Bits[S, P]) MoveFrom(other *Bits[S, P]) {
	if b == other {
		return
	}
	moved := other.Move()
	b.Swap(&moved)
	moved.Release()
}

// Swap exchanges the complete state of b and other.
func (b *Bits[S, P]) Swap(other *Bits[S, P]) {
	b.storage().Swap(&other.store)
	b.n, other.n = other.n, b.n
}

// Release drops all bits and the storage.
func (b *Bits[S, P]) Release() {
	b.storage().Release()
	b.n = 0
}

func fillByte(v bool) byte {
	if v {
		return 0xff
	}
	return 0
}

// clearTail zeroes the bits at or past n in the last live byte.
func clearTail[S any, P Storage[byte, S]](p P, n int) {
	if n&7 == 0 {
		return
	}
	block, mask := bitAddr(n)
	*p.At(block) &= mask - 1
}
