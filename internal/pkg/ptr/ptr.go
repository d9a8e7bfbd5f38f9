package ptr

func Of[T any](v T) *T {
	return &v
}

func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// NonEmpty returns nil for the empty string so optional text columns stay NULL.
func NonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
