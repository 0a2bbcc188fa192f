package sequence

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type handle struct {
	name   string
	hidden bool
}

func (h *handle) Name() string          { return h.name }
func (h *handle) Hidden() bool          { return h.hidden }
func (h *handle) SetHidden(hidden bool) { h.hidden = hidden }

func newHandles(n int) []Object {
	objects := make([]Object, n)
	for i := range objects {
		objects[i] = &handle{name: fmt.Sprintf("mesh_%03d", i)}
	}
	return objects
}

func newAssignment(t *testing.T, n int) *Assignment {
	a, err := NewAssignment(newHandles(n))
	require.NoError(t, err)
	return a
}

func TestNewAssignmentEmpty(t *testing.T) {
	a, err := NewAssignment(nil)
	assert.ErrorIs(t, err, ErrEmptyInputSet)
	assert.Nil(t, a)
	assert.Equal(t, 0, a.Len())
}

func TestAssignmentOrder(t *testing.T) {
	objects := newHandles(4)
	a1, err := NewAssignment(objects)
	require.NoError(t, err)
	a2, err := NewAssignment(objects)
	require.NoError(t, err)

	for i, o := range objects {
		assert.Same(t, o, a1.At(i))
		assert.Same(t, a1.At(i), a2.At(i))
		assert.Equal(t, i, a1.Index(o))
	}
	assert.Equal(t, -1, a1.Index(&handle{}))

	// Later changes to the input slice do not reach the assignment.
	objects[0] = &handle{name: "other"}
	assert.Equal(t, "mesh_000", a1.At(0).Name())
}

func TestApplyScenario(t *testing.T) {
	a := newAssignment(t, 3)

	tests := []struct {
		frame   int
		visible []int
	}{
		{frame: 0, visible: []int{0}},
		{frame: 1, visible: []int{1}},
		{frame: 2, visible: []int{2}},
		{frame: 5, visible: nil},
		{frame: -1, visible: nil},
	}

	for _, test := range tests {
		t.Run(fmt.Sprint(test.frame), func(t *testing.T) {
			Apply(a, test.frame)
			assert.Equal(t, test.visible, a.Visible())
		})
	}
}

func TestApplyIdempotent(t *testing.T) {
	a := newAssignment(t, 5)
	Apply(a, 3)
	first := a.Visible()
	Apply(a, 3)
	assert.Equal(t, first, a.Visible())
	assert.Equal(t, 3, a.VisibleIndex())
}

func TestApplySelfCorrecting(t *testing.T) {
	a := newAssignment(t, 3)
	Apply(a, 1)
	a.At(0).SetHidden(false)
	a.At(1).SetHidden(true)
	Apply(a, 1)
	assert.Equal(t, []int{1}, a.Visible())
}

func TestVisibleAt(t *testing.T) {
	a := newAssignment(t, 4)
	for f := -2; f <= 6; f++ {
		Apply(a, f)
		assert.Equal(t, a.VisibleIndex(), VisibleAt(a, f), "frame %d", f)
	}
	assert.Equal(t, 3, VisibleAt(a, 3))
	assert.Equal(t, -1, VisibleAt(a, 4))
	assert.Equal(t, -1, VisibleAt(nil, 0))
}

func TestFollow(t *testing.T) {
	a := newAssignment(t, 3)
	tl := NewTimeline(0, 0)

	detach, err := Follow(tl, a)
	require.NoError(t, err)
	start, end := tl.Range()
	assert.Equal(t, 0, start)
	assert.Equal(t, 2, end)

	tl.SetFrame(0)
	assert.Equal(t, []int{0}, a.Visible())
	tl.SetFrame(1)
	assert.Equal(t, []int{1}, a.Visible())
	tl.SetFrame(5)
	assert.Empty(t, a.Visible())

	detach()
	assert.Equal(t, 0, tl.Observers())
	tl.SetFrame(2)
	assert.Empty(t, a.Visible())
}

func TestFollowEmpty(t *testing.T) {
	tl := NewTimeline(10, 20)
	detach, err := Follow(tl, nil)
	assert.ErrorIs(t, err, ErrEmptyInputSet)
	assert.Nil(t, detach)
	assert.Equal(t, 0, tl.Observers())

	start, end := tl.Range()
	assert.Equal(t, 10, start)
	assert.Equal(t, 20, end)
}

func TestKeyframeVisibility(t *testing.T) {
	for _, scheme := range []Scheme{OneBased, ZeroBased} {
		for n := 1; n <= 6; n++ {
			t.Run(fmt.Sprintf("%v/%d", scheme, n), func(t *testing.T) {
				a := newAssignment(t, n)
				tl := NewTimeline(0, 0)
				require.NoError(t, KeyframeVisibility(tl, a, scheme))

				start, end := tl.Range()
				assert.Equal(t, scheme.Frame(0), start)
				assert.Equal(t, scheme.Frame(n-1), end)
				assert.Equal(t, n-1, end-start)

				for f := start - 3; f <= end+3; f++ {
					tl.SetFrame(f)
					if f >= start && f <= end {
						assert.Equal(t, []int{f - start}, a.Visible(), "frame %d", f)
					} else {
						assert.Empty(t, a.Visible(), "frame %d", f)
					}
				}
			})
		}
	}
}

func TestKeyframeVisibilitySampling(t *testing.T) {
	a := newAssignment(t, 3)
	tl := NewTimeline(0, 0)
	require.NoError(t, KeyframeVisibility(tl, a, OneBased))

	for i := 0; i < a.Len(); i++ {
		o := a.At(i)
		f := OneBased.Frame(i)

		keys := tl.Keyframes(o, Visible)
		require.Len(t, keys, 3)
		assert.Equal(t, []int{f - 1, f, f + 1}, []int{keys[0].Frame, keys[1].Frame, keys[2].Frame})

		v, ok := tl.ValueAt(o, Visible, f-1)
		assert.True(t, ok)
		assert.False(t, v)
		v, _ = tl.ValueAt(o, Visible, f)
		assert.True(t, v)
		v, _ = tl.ValueAt(o, Visible, f+1)
		assert.False(t, v)
	}
}

func TestKeyframeVisibilityEmpty(t *testing.T) {
	tl := NewTimeline(4, 8)
	err := KeyframeVisibility(tl, nil, ZeroBased)
	assert.ErrorIs(t, err, ErrEmptyInputSet)

	start, end := tl.Range()
	assert.Equal(t, 4, start)
	assert.Equal(t, 8, end)
}

func TestInsertKeyframeReplaces(t *testing.T) {
	h := &handle{name: "a"}
	tl := NewTimeline(0, 10)
	tl.InsertKeyframe(Keyframe{Object: h, Property: Visible, Frame: 5, Value: true})
	tl.InsertKeyframe(Keyframe{Object: h, Property: Visible, Frame: 2, Value: false})
	tl.InsertKeyframe(Keyframe{Object: h, Property: Visible, Frame: 5, Value: false})

	keys := tl.Keyframes(h, Visible)
	require.Len(t, keys, 2)
	assert.Equal(t, 2, keys[0].Frame)
	assert.Equal(t, 5, keys[1].Frame)
	assert.False(t, keys[1].Value)

	_, ok := tl.ValueAt(&handle{}, Visible, 0)
	assert.False(t, ok)
}

func TestRegisterOrder(t *testing.T) {
	tl := NewTimeline(0, 2)
	var calls []string
	un1 := tl.Register(func(f int) { calls = append(calls, fmt.Sprintf("a%d", f)) })
	tl.Register(func(f int) { calls = append(calls, fmt.Sprintf("b%d", f)) })

	tl.SetFrame(1)
	un1()
	un1()
	tl.SetFrame(2)
	assert.Equal(t, []string{"a1", "b1", "b2"}, calls)
	assert.Equal(t, 1, tl.Observers())
}

func TestAdvanceWraps(t *testing.T) {
	tl := NewTimeline(1, 3)
	var frames []int
	tl.Register(func(f int) { frames = append(frames, f) })
	for i := 0; i < 4; i++ {
		tl.Advance()
	}
	assert.Equal(t, []int{2, 3, 1, 2}, frames)
	assert.Equal(t, 2, tl.Current())
}

func TestPropertyString(t *testing.T) {
	assert.Equal(t, "visible", Visible.String())
	assert.Equal(t, "unknown", Property(7).String())
	assert.Equal(t, "zero-based", ZeroBased.String())
}

func TestExport(t *testing.T) {
	a := newAssignment(t, 2)
	tl := NewTimeline(0, 0)
	require.NoError(t, KeyframeVisibility(tl, a, ZeroBased))

	keys := Export(tl, a)
	require.Len(t, keys, 6)
	assert.Equal(t, Keyframe{Object: a.At(0), Property: Visible, Frame: -1, Value: false}, keys[0])
	assert.Equal(t, Keyframe{Object: a.At(1), Property: Visible, Frame: 1, Value: true}, keys[4])
}

func TestParseScheme(t *testing.T) {
	s, err := ParseScheme("one-based")
	require.NoError(t, err)
	assert.Equal(t, OneBased, s)
	_, err = ParseScheme("two-based")
	assert.Error(t, err)
}
