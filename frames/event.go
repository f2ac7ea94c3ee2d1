// Package frames turns the timestamped event stream of a recorded terminal
// session into a bounded sequence of screen snapshots with durations,
// applying the playback transforms (idle-time limiting, speed scaling,
// frame-rate capping) in between.
package frames

import (
	"fmt"
	"io"
)

// Event is one timestamped chunk of raw terminal output.
type Event struct {
	Time float64 // seconds since session start
	Data string  // raw output bytes
}

// Source yields events in time order. Next returns io.EOF after the last
// event.
type Source interface {
	Next() (Event, error)
}

type sliceSource struct {
	events []Event
	pos    int
}

// SliceSource returns a Source reading from an in-memory slice.
func SliceSource(events []Event) Source {
	return &sliceSource{events: events}
}

func (s *sliceSource) Next() (Event, error) {
	if s.pos >= len(s.events) {
		return Event{}, io.EOF
	}
	e := s.events[s.pos]
	s.pos++
	return e, nil
}

// monotonicSource enforces non-decreasing event timestamps. A violation is
// a fatal stream-ordering error carrying the offending event's index and
// timestamps.
type monotonicSource struct {
	src      Source
	prevTime float64
	index    int
	failed   bool
}

func (m *monotonicSource) Next() (Event, error) {
	if m.failed {
		return Event{}, fmt.Errorf("event stream already failed ordering check")
	}
	e, err := m.src.Next()
	if err != nil {
		return Event{}, err
	}
	if e.Time < m.prevTime {
		m.failed = true
		return Event{}, fmt.Errorf("event %d out of order: time %.6f earlier than %.6f",
			m.index, e.Time, m.prevTime)
	}
	m.prevTime = e.Time
	m.index++
	return e, nil
}

// prependSource yields one synthetic event before the wrapped source. The
// scheduler uses it to make the initial blank screen frame zero.
type prependSource struct {
	src   Source
	first *Event
}

func (p *prependSource) Next() (Event, error) {
	if p.first != nil {
		e := *p.first
		p.first = nil
		return e, nil
	}
	return p.src.Next()
}

// LimitIdleTime clamps every gap between consecutive events to at most
// limit seconds, shifting later events earlier. A limit <= 0 disables
// clamping.
func LimitIdleTime(src Source, limit float64) Source {
	if limit <= 0 {
		return src
	}
	return &idleLimitSource{src: src, limit: limit}
}

type idleLimitSource struct {
	src     Source
	limit   float64
	prevIn  float64
	prevOut float64
}

func (l *idleLimitSource) Next() (Event, error) {
	e, err := l.src.Next()
	if err != nil {
		return Event{}, err
	}
	gap := e.Time - l.prevIn
	if gap > l.limit {
		gap = l.limit
	}
	l.prevIn = e.Time
	l.prevOut += gap
	e.Time = l.prevOut
	return e, nil
}

// Accelerate divides event times by speed; speed > 1 plays faster.
func Accelerate(src Source, speed float64) Source {
	if speed == 1 {
		return src
	}
	return &accelerateSource{src: src, speed: speed}
}

type accelerateSource struct {
	src   Source
	speed float64
}

func (a *accelerateSource) Next() (Event, error) {
	e, err := a.src.Next()
	if err != nil {
		return Event{}, err
	}
	e.Time /= a.speed
	return e, nil
}

// Batch merges runs of events closer together than 1/fpsCap seconds into a
// single event carrying the concatenated payload and the run's start time.
// The timestamps of emitted events are therefore always at least the frame
// floor apart, which bounds the replay to fpsCap frames per second while
// keeping the latest state within each merged window.
func Batch(src Source, fpsCap int) Source {
	return &batchSource{src: src, maxFrameTime: 1.0 / float64(fpsCap)}
}

type batchSource struct {
	src          Source
	maxFrameTime float64
	prevTime     float64
	prevData     string
	pending      bool
	done         bool
}

func (b *batchSource) Next() (Event, error) {
	if b.done {
		return Event{}, io.EOF
	}
	for {
		e, err := b.src.Next()
		if err == io.EOF {
			b.done = true
			if b.pending {
				return Event{Time: b.prevTime, Data: b.prevData}, nil
			}
			return Event{}, io.EOF
		}
		if err != nil {
			b.done = true
			return Event{}, err
		}

		if b.pending && e.Time-b.prevTime < b.maxFrameTime {
			b.prevData += e.Data
			continue
		}
		if b.pending {
			out := Event{Time: b.prevTime, Data: b.prevData}
			b.prevTime = e.Time
			b.prevData = e.Data
			return out, nil
		}
		b.pending = true
		b.prevTime = e.Time
		b.prevData = e.Data
	}
}
