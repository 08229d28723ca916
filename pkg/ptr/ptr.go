// Package ptr converts between values and pointers for optional fields.
package ptr

// New returns a pointer to a copy of v.
func New[T any](v T) *T { return &v }

// Value dereferences p, yielding the zero value of T for nil.
func Value[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Or dereferences p, yielding def for nil.
func Or[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
