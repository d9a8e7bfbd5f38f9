package patch

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// Apply overwrites *dst with *src when src is set and reports whether anything changed.
func Apply[T comparable](dst *T, src *T) bool {
	if src == nil || *dst == *src {
		return false
	}
	*dst = *src
	return true
}
