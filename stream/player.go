package stream

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/matt-g-everett/rdtools/sequence"
)

// Player advances a timeline at a fixed frame rate, looping over its range.
type Player struct {
	timeline  *sequence.Timeline
	frameRate float64
	loops     int
	log       logrus.FieldLogger
}

// NewPlayer creates an instance of a Player. A loops value of 0 plays forever.
func NewPlayer(tl *sequence.Timeline, frameRate float64, loops int, log logrus.FieldLogger) *Player {
	p := new(Player)
	p.timeline = tl
	p.frameRate = frameRate
	p.loops = loops
	p.log = log
	return p
}

// MaxFrameRate is the fastest a Player will tick.
const MaxFrameRate = 1000.0

// Interval is the time between frames. Rates above MaxFrameRate, and rates
// that are not positive numbers, play at MaxFrameRate.
func (p *Player) Interval() time.Duration {
	rate := p.frameRate
	if !(rate > 0 && rate <= MaxFrameRate) {
		rate = MaxFrameRate
	}
	return time.Duration(float64(time.Second) / rate)
}

// Run plays from the start of the range until the loops are done or ctx is
// cancelled. Handlers run on the calling goroutine, one frame at a time.
func (p *Player) Run(ctx context.Context) error {
	start, end := p.timeline.Range()
	p.log.WithFields(logrus.Fields{
		"start":     start,
		"end":       end,
		"frameRate": p.frameRate,
	}).Info("playing")

	p.timeline.SetFrame(start)
	loop := 0
	ticker := time.NewTicker(p.Interval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if p.timeline.Current() >= end {
				loop++
				if p.loops > 0 && loop >= p.loops {
					p.log.WithField("loops", loop).Info("finished")
					return nil
				}
				p.log.WithField("loop", loop).Debug("looping")
			}
			p.timeline.Advance()
		}
	}
}
