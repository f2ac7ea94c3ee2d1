package frames

import (
	"errors"
	"fmt"
	"io"

	gifcast "github.com/gifcast/gifcast"
)

// Default playback settings, matching common recording conventions.
const (
	DefaultSpeed             = 1.0
	DefaultFPSCap            = 30
	DefaultIdleTimeLimit     = 5.0
	DefaultLastFrameDuration = 3.0
)

// Validation errors, raised at construction before any event is processed.
var (
	ErrInvalidSpeed    = errors.New("speed must be positive")
	ErrInvalidFPSCap   = errors.New("fps cap must be a positive integer")
	ErrInvalidDuration = errors.New("last frame duration must not be negative")
)

// Options configure playback timing.
type Options struct {
	// Speed divides all inter-event gaps; >1 plays faster.
	Speed float64
	// IdleTimeLimit caps any single inter-event gap, in seconds.
	// Zero disables the cap.
	IdleTimeLimit float64
	// FPSCap bounds the emitted frame rate; events closer together than
	// 1/FPSCap seconds are merged, keeping the latest screen state.
	FPSCap int
	// LastFrameDuration is appended to the final frame so the end state
	// stays visible, in seconds.
	LastFrameDuration float64
}

// Frame is one scheduled output frame: the screen state shown from Time
// for Duration seconds.
type Frame struct {
	Index    int
	Time     float64
	Duration float64
	Snapshot gifcast.Snapshot
}

// Scheduler drives a terminal with the transformed event stream and emits
// frames in time order. Frames whose screen state is visually identical to
// the previous frame are folded into it, extending its duration.
type Scheduler struct {
	src     Source
	term    *gifcast.Terminal
	opts    Options
	pending *Frame
	index   int
	done    bool
}

// NewScheduler validates opts and builds the transform chain
// (ordering check, idle-time limiting, speed scaling, fps batching)
// around src.
func NewScheduler(term *gifcast.Terminal, src Source, opts Options) (*Scheduler, error) {
	if opts.Speed <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpeed, opts.Speed)
	}
	if opts.FPSCap < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFPSCap, opts.FPSCap)
	}
	if opts.LastFrameDuration < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, opts.LastFrameDuration)
	}

	chain := Source(&monotonicSource{src: src})
	chain = &prependSource{src: chain, first: &Event{}}
	chain = LimitIdleTime(chain, opts.IdleTimeLimit)
	chain = Accelerate(chain, opts.Speed)
	chain = Batch(chain, opts.FPSCap)

	return &Scheduler{src: chain, term: term, opts: opts}, nil
}

// Next returns the next frame, or io.EOF after the final one. Any error
// from the underlying event source is fatal and ends the stream; no frame
// derived from events past the failure is ever emitted.
func (s *Scheduler) Next() (Frame, error) {
	if s.done {
		return Frame{}, io.EOF
	}
	for {
		e, err := s.src.Next()
		if err == io.EOF {
			s.done = true
			if s.pending != nil {
				out := *s.pending
				out.Duration = s.opts.LastFrameDuration
				out.Index = s.index
				s.index++
				s.pending = nil
				return out, nil
			}
			return Frame{}, io.EOF
		}
		if err != nil {
			s.done = true
			s.pending = nil
			return Frame{}, err
		}

		s.term.FeedString(e.Data)
		if !s.term.Changed() {
			// No visual difference: the pending frame keeps running and
			// absorbs this event's time. Total duration is unaffected.
			continue
		}

		next := &Frame{Time: e.Time, Snapshot: s.term.Snapshot()}
		if s.pending == nil {
			s.pending = next
			continue
		}
		out := *s.pending
		out.Duration = e.Time - out.Time
		out.Index = s.index
		s.index++
		s.pending = next
		return out, nil
	}
}

// Collect drains the scheduler into a slice. Mostly useful in tests and
// for whole-buffered consumption.
func (s *Scheduler) Collect() ([]Frame, error) {
	var out []Frame
	for {
		f, err := s.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, f)
	}
}
