package alloc

import "github.com/joshuapare/veckit/pkg/types"

// CopyInto constructs copies of src into dst starting at slot from, which must
// equal dst.Size(). On failure every element constructed by this call is
// destroyed and the error is returned as a types.ErrKindConstruct chain.
func CopyInto[T any](dst Allocator[T], from int, src []T) error {
	for i := range src {
		if err := dst.Slot(from + i).Set(src[i]); err != nil {
			dst.DestroyRange(from, from+i)
			return types.WrapSkip(1, types.ErrKindConstruct,
				"failed to copy elements while copying allocator", err)
		}
	}
	return nil
}

// FillInto constructs count copies of value into dst starting at slot from,
// which must equal dst.Size(). Failure handling matches CopyInto.
func FillInto[T any](dst Allocator[T], from, count int, value T) error {
	for i := 0; i < count; i++ {
		if err := dst.Slot(from + i).Set(value); err != nil {
			dst.DestroyRange(from, from+i)
			return types.WrapSkip(1, types.ErrKindConstruct,
				"failed to copy elements while filling allocator", err)
		}
	}
	return nil
}
