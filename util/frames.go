package util

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNameFormat is returned for a frame name format that cannot number frames.
var ErrNameFormat = errors.New("bad frame name format")

// CheckNameFormat requires format to hold exactly one integer verb, so that
// every frame gets a distinct name.
func CheckNameFormat(format string) error {
	first, second := fmt.Sprintf(format, 0), fmt.Sprintf(format, 1)
	if strings.Contains(first, "%!") || first == second {
		return fmt.Errorf("%w: %q must format the frame index with one integer verb", ErrNameFormat, format)
	}
	return nil
}
