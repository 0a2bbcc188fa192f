package sequence

// Apply shows the object whose index equals frame and hides every other one.
// If no index matches, all objects are hidden.
func Apply(a *Assignment, frame int) {
	for i := 0; i < a.Len(); i++ {
		Visible.Set(a.At(i), i == frame)
	}
}

// VisibleAt is the index of the object Apply shows at frame, or -1 when the
// frame is outside [0, N-1].
func VisibleAt(a *Assignment, frame int) int {
	if frame < 0 || frame >= a.Len() {
		return -1
	}
	return frame
}

// Follow registers Apply as a frame handler on the timeline, and sets the
// range to [0, N-1]. The returned function detaches it.
func Follow(tl *Timeline, a *Assignment) (detach func(), err error) {
	if a.Len() == 0 {
		return nil, ErrEmptyInputSet
	}

	tl.SetRange(0, a.Len()-1)
	return tl.Register(func(frame int) {
		Apply(a, frame)
	}), nil
}
