package vkobj

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrOutOfRange is returned when a range ends before it begins or
	// extends past its input.
	ErrOutOfRange = errors.New("vkobj: range out of bounds")

	// ErrNoDispatch is returned when a dispatch table is required but the
	// object does not hold one.
	ErrNoDispatch = errors.New("vkobj: no dispatch table")

	// ErrNotVks is returned when a vks facade is requested from a table that
	// was not loaded by a VksLoader.
	ErrNotVks = errors.New("vkobj: table is not backed by vks")
)
