package stencil

import (
	"fmt"
	"strconv"
	"strings"
)

// Style selects the language a kernel is printed for.
type Style string

const (
	// Go prints a composite literal of nested arrays.
	Go Style = "go"
	// C prints an initialised array declaration.
	C Style = "c"
	// Text prints a bare nested list, the form used in notes and papers.
	Text Style = "text"
)

// ParseStyle converts a style name, ignoring case.
func ParseStyle(s string) (Style, error) {
	switch Style(strings.ToLower(s)) {
	case Go:
		return Go, nil
	case C:
		return C, nil
	case Text:
		return Text, nil
	}
	return "", fmt.Errorf("stencil: unknown style %q", s)
}

// Format prints k as a named constant in the given style, for example
//
//	var laplacian = [3][3]float64{{0, 1, 0}, {1, -4, 1}, {0, 1, 0}}
func Format(name string, k *Kernel, style Style) (string, error) {
	var dims strings.Builder
	for _, s := range k.Shape {
		fmt.Fprintf(&dims, "[%d]", s)
	}

	body := nested(k, 0, 0)
	switch style {
	case Go:
		return fmt.Sprintf("var %s = %sfloat64%s", name, dims.String(), body), nil
	case C:
		return fmt.Sprintf("static const double %s%s = %s;", name, dims.String(), body), nil
	case Text:
		return fmt.Sprintf("%s = %s", name, body), nil
	}
	return "", fmt.Errorf("stencil: unknown style %q", style)
}

// FormatStencil prints the integer weights of s followed by its divisor, for
// example
//
//	trilaplacian2D = {{...}} / 18h^6
//
// The go and c styles carry the divisor in a trailing comment.
func FormatStencil(name string, s *Stencil, style Style) (string, error) {
	body, err := Format(name, s.Kernel, style)
	if err != nil {
		return "", err
	}

	divisor := formatWeight(s.Divisor)
	if s.Order > 0 {
		divisor += fmt.Sprintf("h^%d", s.Order)
	}
	switch style {
	case Text:
		return body + " / " + divisor, nil
	case C:
		return body + " /* / " + divisor + " */", nil
	}
	return body + " // / " + divisor, nil
}

// nested prints the sub-array of k along axis starting at flat offset.
func nested(k *Kernel, axis, offset int) string {
	stride := 1
	for _, s := range k.Shape[axis+1:] {
		stride *= s
	}

	parts := make([]string, k.Shape[axis])
	for i := range parts {
		at := offset + i*stride
		if axis == k.Dims()-1 {
			parts[i] = formatWeight(k.Data[at])
		} else {
			parts[i] = nested(k, axis+1, at)
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func formatWeight(w float64) string {
	if w == 0 {
		// Avoid printing -0.
		return "0"
	}
	return strconv.FormatFloat(w, 'g', -1, 64)
}
