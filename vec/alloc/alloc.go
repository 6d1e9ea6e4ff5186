package alloc

// Allocator defines the capability set the containers are built on.
//
// Implementations:
//   - Heap: growable arena on the Go heap
//   - Fixed: inline arena with a compile-time bound
//   - Mapped: arena in an anonymous memory mapping
type Allocator[T any] interface {
	// Data returns the live elements [0, Size()). It is nil if storage was
	// never allocated.
	Data() []T

	// Size returns the number of live elements.
	Size() int

	// Cap returns the number of slots the storage holds.
	Cap() int

	// SetSize overrides the live count without constructing or destroying
	// anything. Callers that manage liveness externally must keep it consistent.
	SetSize(n int)

	// Grow moves the live elements into new storage of newCap slots. Elements
	// past newCap are destroyed with the old storage.
	Grow(newCap int) error

	// GrowFill is Grow followed by constructing copies of fill in every slot
	// past the transferred elements, so that Size() == newCap on success.
	GrowFill(newCap int, fill T) error

	// DestroyRange destroys the elements in [from, to) and decrements Size()
	// by to - from.
	DestroyRange(from, to int)

	// Release destroys all live elements and drops the storage. It is idempotent.
	Release()

	// At returns a pointer to slot pos without side effects.
	At(pos int) *T

	// Slot returns an assignable proxy for slot pos.
	Slot(pos int) Slot[T]
}

// Cloner is implemented by element types whose copies can fail.
type Cloner[T any] interface {
	Clone() (T, error)
}

// Destroyer is implemented by element pointer types that release resources
// when their slot returns to raw storage.
type Destroyer interface {
	Destroy()
}

// Slot is an assignable proxy for one allocator slot.
//
// Assigning past the live range constructs the element and grows Size() by
// one, so pos must equal Size() in that case. Assigning inside the live range
// replaces the element: the new copy is made first, so a failed copy leaves
// the old element in place.
type Slot[T any] struct {
	a   Allocator[T]
	pos int
}

// Pos returns the slot position.
func (s Slot[T]) Pos() int { return s.pos }

// Get returns a copy of the slot contents without invoking Clone.
func (s Slot[T]) Get() T { return *s.a.At(s.pos) }

// Ptr returns a pointer to the slot contents.
func (s Slot[T]) Ptr() *T { return s.a.At(s.pos) }

// Set constructs or assigns value in the slot.
func (s Slot[T]) Set(value T) error {
	c, err := cloneValue(value)
	if err != nil {
		return err
	}
	p := s.a.At(s.pos)
	size := s.a.Size()
	if s.pos >= size {
		*p = c
		s.a.SetSize(size + 1)
		return nil
	}
	destroyValue(p)
	*p = c
	return nil
}

func cloneValue[T any](v T) (T, error) {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v, nil
}

func destroyValue[T any](p *T) {
	if d, ok := any(p).(Destroyer); ok {
		d.Destroy()
	}
	var zero T
	*p = zero
}

// destroySlots runs destruction over slots without touching any size.
func destroySlots[T any](slots []T) {
	for i := range slots {
		destroyValue(&slots[i])
	}
}
