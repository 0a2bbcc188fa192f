package stream

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/matt-g-everett/rdtools/sequence"
)

// Frame is the visibility of every object at one timeline frame.
type Frame struct {
	Number  int
	Visible []bool
}

// Capture records the current visibility of the objects in a.
func Capture(a *sequence.Assignment, number int) *Frame {
	f := new(Frame)
	f.Number = number
	f.Visible = make([]bool, a.Len())
	for i := range f.Visible {
		f.Visible[i] = sequence.Visible.Get(a.At(i))
	}
	return f
}

// Shown returns the index of the first visible object, or -1.
func (f *Frame) Shown() int {
	for i, v := range f.Visible {
		if v {
			return i
		}
	}
	return -1
}

// MarshalBinary converts a Frame into a uint16 object count, an int32 frame
// number and one byte per object.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	if len(f.Visible) > 0xffff {
		return nil, fmt.Errorf("frame has %d objects, the limit is 65535", len(f.Visible))
	}
	if f.Number < math.MinInt32 || f.Number > math.MaxInt32 {
		return nil, fmt.Errorf("frame number %d does not fit in 32 bits", f.Number)
	}
	data = make([]byte, 6, 6+len(f.Visible))
	binary.LittleEndian.PutUint16(data, uint16(len(f.Visible)))
	binary.LittleEndian.PutUint32(data[2:], uint32(int32(f.Number)))
	for _, v := range f.Visible {
		var b byte
		if v {
			b = 1
		}
		data = append(data, b)
	}

	return data, nil
}

// UnmarshalBinary reads a Frame written by MarshalBinary.
func (f *Frame) UnmarshalBinary(data []byte) error {
	if len(data) < 6 {
		return fmt.Errorf("frame too short: %d bytes", len(data))
	}
	n := int(binary.LittleEndian.Uint16(data))
	if len(data) != 6+n {
		return fmt.Errorf("frame length %d does not match %d objects", len(data), n)
	}
	f.Number = int(int32(binary.LittleEndian.Uint32(data[2:])))
	f.Visible = make([]bool, n)
	for i := range f.Visible {
		f.Visible[i] = data[6+i] != 0
	}
	return nil
}
