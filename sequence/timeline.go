package sequence

import "sort"

// A FrameHandler is notified each time the timeline moves to a new frame.
type FrameHandler func(frame int)

// Keyframe anchors the value of a property on an object at a frame.
type Keyframe struct {
	Object   Object
	Property Property
	Frame    int
	Value    bool
}

type trackKey struct {
	object   Object
	property Property
}

type observer struct {
	handler FrameHandler
}

// Timeline holds a frame range, keyframe tracks and frame-advance observers.
// Values are held constant between keyframes. Before the first keyframe of a
// track the first value applies.
type Timeline struct {
	start     int
	end       int
	current   int
	tracks    map[trackKey][]Keyframe
	order     []trackKey
	observers []*observer
}

// NewTimeline creates an instance of a Timeline covering [start, end].
func NewTimeline(start, end int) *Timeline {
	tl := new(Timeline)
	tl.start = start
	tl.end = end
	tl.current = start
	tl.tracks = make(map[trackKey][]Keyframe)
	return tl
}

// Range returns the first and last frame of the timeline, inclusive.
func (tl *Timeline) Range() (int, int) {
	return tl.start, tl.end
}

// SetRange changes the first and last frame of the timeline.
func (tl *Timeline) SetRange(start, end int) {
	tl.start = start
	tl.end = end
}

// Current returns the frame the timeline is on.
func (tl *Timeline) Current() int {
	return tl.current
}

// InsertKeyframe records k, replacing any keyframe on the same track and frame.
func (tl *Timeline) InsertKeyframe(k Keyframe) {
	key := trackKey{k.Object, k.Property}
	track, found := tl.tracks[key]
	if !found {
		tl.order = append(tl.order, key)
	}

	i := sort.Search(len(track), func(i int) bool { return track[i].Frame >= k.Frame })
	if i < len(track) && track[i].Frame == k.Frame {
		track[i] = k
	} else {
		track = append(track, Keyframe{})
		copy(track[i+1:], track[i:])
		track[i] = k
	}
	tl.tracks[key] = track
}

// Keyframes returns the keyframes recorded for a property of an object, in frame order.
func (tl *Timeline) Keyframes(o Object, p Property) []Keyframe {
	track := tl.tracks[trackKey{o, p}]
	out := make([]Keyframe, len(track))
	copy(out, track)
	return out
}

// ValueAt evaluates the track for a property of an object at frame. ok is
// false when the track has no keyframes.
func (tl *Timeline) ValueAt(o Object, p Property, frame int) (value bool, ok bool) {
	track := tl.tracks[trackKey{o, p}]
	if len(track) == 0 {
		return false, false
	}

	i := sort.Search(len(track), func(i int) bool { return track[i].Frame > frame })
	if i == 0 {
		return track[0].Value, true
	}
	return track[i-1].Value, true
}

// Register adds a handler that is called on every frame change. The returned
// function removes it again.
func (tl *Timeline) Register(h FrameHandler) (unregister func()) {
	obs := &observer{handler: h}
	tl.observers = append(tl.observers, obs)
	return func() {
		for i, o := range tl.observers {
			if o == obs {
				tl.observers = append(tl.observers[:i], tl.observers[i+1:]...)
				return
			}
		}
	}
}

// Observers is the number of registered handlers.
func (tl *Timeline) Observers() int {
	return len(tl.observers)
}

// SetFrame moves the timeline to frame. Animated properties are written first,
// then every handler runs in registration order.
func (tl *Timeline) SetFrame(frame int) {
	tl.current = frame
	for _, key := range tl.order {
		if value, ok := tl.ValueAt(key.object, key.property, frame); ok {
			key.property.Set(key.object, value)
		}
	}

	observers := make([]*observer, len(tl.observers))
	copy(observers, tl.observers)
	for _, o := range observers {
		o.handler(frame)
	}
}

// Advance moves to the next frame, wrapping back to the start after the end.
func (tl *Timeline) Advance() int {
	next := tl.current + 1
	if next > tl.end || next < tl.start {
		next = tl.start
	}
	tl.SetFrame(next)
	return next
}
