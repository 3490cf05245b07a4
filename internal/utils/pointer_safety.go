package utils

func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}

func Ptr[T any](v T) *T {
	return &v
}

// Merge returns patch when it is set, otherwise current.
func Merge[T any](current T, patch *T) T {
	if patch == nil {
		return current
	}
	return *patch
}

// ClonePtr copies the pointee so the result shares no memory with v.
func ClonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
