package vkobj

import (
	"slices"

	"github.com/cockroachdb/errors"
)

// IsIncluded reports whether every element of required is present in
// available. An empty required is always included.
func IsIncluded[T comparable](required, available []T) bool {
	for _, r := range required {
		if !slices.Contains(available, r) {
			return false
		}
	}
	return true
}

// IsIncludedFunc reports whether every element of required matches at
// least one element of available.
func IsIncludedFunc[R, A any](required []R, available []A, match func(R, A) bool) bool {
	for _, r := range required {
		if !slices.ContainsFunc(available, func(a A) bool { return match(r, a) }) {
			return false
		}
	}
	return true
}

// Missing returns the elements of required that match nothing in available,
// in the order of required.
func Missing[R, A any](required []R, available []A, match func(R, A) bool) []R {
	var missing []R
	for _, r := range required {
		if !slices.ContainsFunc(available, func(a A) bool { return match(r, a) }) {
			missing = append(missing, r)
		}
	}
	return missing
}

// Identity returns v unchanged.
func Identity[T any](v T) T { return v }

// Transform maps every element of in through op into a new Out, keeping
// the order.
func Transform[Out ~[]E, In, E any](in []In, op func(In) E) Out {
	out := make(Out, len(in))
	for k, v := range in {
		out[k] = op(v)
	}
	return out
}

// TransformRange maps in[begin:end] through op into a new Out. It returns
// ErrOutOfRange if end is before begin or the range is not within in.
func TransformRange[Out ~[]E, In, E any](in []In, begin, end int, op func(In) E) (Out, error) {
	if end < begin {
		return nil, errors.Wrapf(ErrOutOfRange, "end %d is before begin %d", end, begin)
	}
	if begin < 0 || end > len(in) {
		return nil, errors.Wrapf(ErrOutOfRange, "range [%d, %d) outside of length %d", begin, end, len(in))
	}
	return Transform[Out](in[begin:end], op), nil
}
