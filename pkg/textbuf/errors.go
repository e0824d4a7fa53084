package textbuf

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds reports a position or range outside the current document.
// Buffer operations never clamp: the caller's coordinates are either valid
// or rejected.
var ErrOutOfBounds = errors.New("out of bounds")

func posErr(op string, pos, docLen int) error {
	return fmt.Errorf("%s at %d in document of length %d: %w", op, pos, docLen, ErrOutOfBounds)
}

func rangeErr(op string, start, end, docLen int) error {
	return fmt.Errorf("%s range [%d,%d) in document of length %d: %w", op, start, end, docLen, ErrOutOfBounds)
}

func lineErr(line, count int) error {
	return fmt.Errorf("line %d in document of %d lines: %w", line, count, ErrOutOfBounds)
}
