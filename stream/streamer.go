package stream

import (
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"

	"github.com/matt-g-everett/rdtools/sequence"
)

// Publisher is the part of mqtt.Client the Streamer needs.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// Streamer publishes the visibility of every frame over MQTT.
type Streamer struct {
	client     Publisher
	topic      string
	qos        byte
	assignment *sequence.Assignment
	timeout    time.Duration
	log        logrus.FieldLogger
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(client Publisher, topic string, qos byte, a *sequence.Assignment, log logrus.FieldLogger) *Streamer {
	s := new(Streamer)
	s.client = client
	s.topic = topic
	s.qos = qos
	s.assignment = a
	s.timeout = 5 * time.Second
	s.log = log
	return s
}

// Attach publishes on every frame change of tl until the returned function is called.
func (s *Streamer) Attach(tl *sequence.Timeline) (detach func()) {
	return tl.Register(s.SendFrame)
}

// SendFrame sends the current visibility as binary over MQTT.
func (s *Streamer) SendFrame(number int) {
	f := Capture(s.assignment, number)
	b, err := f.MarshalBinary()
	if err != nil {
		s.log.WithError(err).Error("encoding frame")
		return
	}

	token := s.client.Publish(s.topic, s.qos, false, b)
	if !token.WaitTimeout(s.timeout) {
		s.log.WithField("frame", number).Warn("timed out publishing frame")
		return
	}
	if err := token.Error(); err != nil {
		s.log.WithError(err).WithField("frame", number).Error("publishing frame")
	}
}
