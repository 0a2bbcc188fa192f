package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/rdtools/sequence"
)

type handle struct {
	name   string
	hidden bool
}

func (h *handle) Name() string          { return h.name }
func (h *handle) Hidden() bool          { return h.hidden }
func (h *handle) SetHidden(hidden bool) { h.hidden = hidden }

func newAssignment(t *testing.T, n int) *sequence.Assignment {
	objects := make([]sequence.Object, n)
	for i := range objects {
		objects[i] = &handle{name: fmt.Sprint(i)}
	}
	a, err := sequence.NewAssignment(objects)
	require.NoError(t, err)
	return a
}

type fakeToken struct {
	err error
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Error() error                   { return t.err }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

type message struct {
	topic   string
	qos     byte
	payload []byte
}

type fakePublisher struct {
	messages []message
	err      error
}

func (p *fakePublisher) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	p.messages = append(p.messages, message{topic, qos, payload.([]byte)})
	return &fakeToken{err: p.err}
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestFrameRoundTrip(t *testing.T) {
	a := newAssignment(t, 4)
	sequence.Apply(a, 2)
	f := Capture(a, -7)
	assert.Equal(t, 2, f.Shown())

	b, err := f.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{4, 0, 0xf9, 0xff, 0xff, 0xff, 0, 0, 1, 0}, b)

	var g Frame
	require.NoError(t, g.UnmarshalBinary(b))
	assert.Equal(t, *f, g)

	assert.Error(t, g.UnmarshalBinary([]byte{1, 0}))
	assert.Error(t, g.UnmarshalBinary([]byte{2, 0, 0, 0, 0, 0, 1}))
}

func TestFrameNumberRange(t *testing.T) {
	f := &Frame{Number: math.MinInt32, Visible: []bool{true}}
	b, err := f.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0, 0, 0, 0, 0x80, 1}, b)

	_, err = (&Frame{Number: math.MaxInt32 + 1}).MarshalBinary()
	assert.Error(t, err)
}

func TestFrameNoneShown(t *testing.T) {
	a := newAssignment(t, 2)
	sequence.Apply(a, 9)
	assert.Equal(t, -1, Capture(a, 9).Shown())
}

func TestStreamer(t *testing.T) {
	a := newAssignment(t, 3)
	tl := sequence.NewTimeline(0, 2)
	_, err := sequence.Follow(tl, a)
	require.NoError(t, err)

	pub := &fakePublisher{}
	s := NewStreamer(pub, "rd/frame", 1, a, quietLogger())
	detach := s.Attach(tl)

	tl.SetFrame(1)
	tl.SetFrame(2)
	detach()
	tl.SetFrame(0)

	require.Len(t, pub.messages, 2)
	assert.Equal(t, "rd/frame", pub.messages[0].topic)
	assert.Equal(t, byte(1), pub.messages[0].qos)

	var f Frame
	require.NoError(t, f.UnmarshalBinary(pub.messages[1].payload))
	assert.Equal(t, 2, f.Number)
	assert.Equal(t, []bool{false, false, true}, f.Visible)
}

func TestStreamerLogsPublishError(t *testing.T) {
	a := newAssignment(t, 1)
	log, hook := test.NewNullLogger()
	pub := &fakePublisher{err: errors.New("broker gone")}
	s := NewStreamer(pub, "rd/frame", 0, a, log)

	s.SendFrame(0)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "publishing frame", hook.LastEntry().Message)
}

func TestPlayerLoops(t *testing.T) {
	a := newAssignment(t, 3)
	tl := sequence.NewTimeline(0, 0)
	_, err := sequence.Follow(tl, a)
	require.NoError(t, err)

	var shown []int
	tl.Register(func(f int) { shown = append(shown, a.VisibleIndex()) })

	p := NewPlayer(tl, 1000, 2, quietLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, p.Run(ctx))
	assert.Equal(t, []int{0, 1, 2, 0, 1, 2}, shown)
}

func TestPlayerCancel(t *testing.T) {
	tl := sequence.NewTimeline(0, 10)
	p := NewPlayer(tl, 1, 0, quietLogger())
	assert.Equal(t, time.Second, p.Interval())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Run(ctx), context.Canceled)
}

func TestPlayerIntervalClamped(t *testing.T) {
	tl := sequence.NewTimeline(0, 2)
	for _, rate := range []float64{2e9, math.Inf(1), math.NaN(), 0, -5} {
		p := NewPlayer(tl, rate, 1, quietLogger())
		assert.Equal(t, time.Millisecond, p.Interval(), "rate %v", rate)
	}
	assert.Equal(t, 40*time.Millisecond, NewPlayer(tl, 25, 1, quietLogger()).Interval())

	p := NewPlayer(tl, 2e9, 1, quietLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NotPanics(t, func() {
		assert.NoError(t, p.Run(ctx))
	})
}

func TestDecodeConfigClampsFrameRate(t *testing.T) {
	c, err := DecodeConfig(strings.NewReader("sequence:\n  frameRate: 5e9\n"))
	require.NoError(t, err)
	assert.Equal(t, MaxFrameRate, c.Sequence.FrameRate)
}

func TestDecodeConfig(t *testing.T) {
	in := `
input:
  pattern: out/*.ply
sequence:
  mode: follow
  frameRate: 12
mqtt:
  url: tcp://localhost:1883
  topics:
    frame: sim/frame
stencil:
  powers: [2]
`
	c, err := DecodeConfig(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, "out/*.ply", c.Input.Pattern)
	assert.Equal(t, "follow", c.Sequence.Mode)
	assert.Equal(t, 12.0, c.Sequence.FrameRate)
	assert.Equal(t, "sim/frame", c.Mqtt.Topics.Frame)
	assert.Equal(t, []int{2}, c.Stencil.Powers)

	// Defaults.
	assert.Equal(t, "zero-based", c.Sequence.Scheme)
	assert.Equal(t, "frame_%04d.png", c.Render.NameFormat)
	assert.Equal(t, 2, c.Stencil.Dims)
}

func TestDecodeConfigEmpty(t *testing.T) {
	c, err := DecodeConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "meshes/*.obj", c.Input.Pattern)

	_, err = DecodeConfig(strings.NewReader("input: [1, 2"))
	assert.Error(t, err)
}
