package sequence

import "errors"

// ErrEmptyInputSet is returned when there are no objects to sequence.
var ErrEmptyInputSet = errors.New("empty input set")
