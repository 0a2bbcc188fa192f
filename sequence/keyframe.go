package sequence

import "fmt"

// Scheme is a way of laying out visibility keyframes along the timeline.
// The schemes are independent; neither is derived from the other.
type Scheme int

const (
	// OneBased shows object i (counting from 1) at frame i. The range is [1, N].
	OneBased Scheme = iota
	// ZeroBased shows object i (counting from 0) at frame i. The range is [0, N-1].
	ZeroBased
)

func (s Scheme) String() string {
	switch s {
	case OneBased:
		return "one-based"
	case ZeroBased:
		return "zero-based"
	}
	return "unknown"
}

// Frame returns the frame that the object at index i is shown on.
func (s Scheme) Frame(i int) int {
	if s == OneBased {
		return i + 1
	}
	return i
}

// Range returns the timeline range for n objects.
func (s Scheme) Range(n int) (int, int) {
	return s.Frame(0), s.Frame(n - 1)
}

// KeyframeVisibility records, for every object, a visible keyframe on its
// frame and hidden keyframes on the frames either side, then sets the
// timeline range to cover all objects. Nothing is written when the
// assignment is empty.
func KeyframeVisibility(tl *Timeline, a *Assignment, s Scheme) error {
	if a.Len() == 0 {
		return ErrEmptyInputSet
	}

	for i := 0; i < a.Len(); i++ {
		o := a.At(i)
		f := s.Frame(i)
		tl.InsertKeyframe(Keyframe{Object: o, Property: Visible, Frame: f - 1, Value: false})
		tl.InsertKeyframe(Keyframe{Object: o, Property: Visible, Frame: f, Value: true})
		tl.InsertKeyframe(Keyframe{Object: o, Property: Visible, Frame: f + 1, Value: false})
	}

	tl.SetRange(s.Range(a.Len()))
	return nil
}

// ParseScheme converts a scheme name as printed by Scheme.String.
func ParseScheme(s string) (Scheme, error) {
	switch s {
	case OneBased.String():
		return OneBased, nil
	case ZeroBased.String():
		return ZeroBased, nil
	}
	return 0, fmt.Errorf("unknown keyframe scheme %q", s)
}

// Export lists the visibility keyframes of every object in assignment order.
func Export(tl *Timeline, a *Assignment) []Keyframe {
	var keys []Keyframe
	for i := 0; i < a.Len(); i++ {
		keys = append(keys, tl.Keyframes(a.At(i), Visible)...)
	}
	return keys
}
