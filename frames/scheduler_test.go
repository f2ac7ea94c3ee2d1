package frames

import (
	"errors"
	"io"
	"math"
	"testing"

	gifcast "github.com/gifcast/gifcast"
)

func newTerm(t *testing.T) *gifcast.Terminal {
	t.Helper()
	term, err := gifcast.NewTerminal(20, 5)
	if err != nil {
		t.Fatal(err)
	}
	return term
}

func collect(t *testing.T, events []Event, opts Options) []Frame {
	t.Helper()
	s, err := NewScheduler(newTerm(t), SliceSource(events), opts)
	if err != nil {
		t.Fatal(err)
	}
	out, err := s.Collect()
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestOptionValidation(t *testing.T) {
	term := newTerm(t)
	src := SliceSource(nil)

	tests := []struct {
		name string
		opts Options
		want error
	}{
		{"zero speed", Options{Speed: 0, FPSCap: 30}, ErrInvalidSpeed},
		{"negative speed", Options{Speed: -1, FPSCap: 30}, ErrInvalidSpeed},
		{"zero fps", Options{Speed: 1, FPSCap: 0}, ErrInvalidFPSCap},
		{"negative last frame", Options{Speed: 1, FPSCap: 30, LastFrameDuration: -1}, ErrInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewScheduler(term, src, tt.opts); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestIdleTimeClamp(t *testing.T) {
	events := []Event{
		{Time: 0.0, Data: "a"},
		{Time: 10.0, Data: "b"}, // 10s gap clamped to 2s
		{Time: 11.0, Data: "c"},
	}
	frames := collect(t, events, Options{Speed: 1, FPSCap: 30, IdleTimeLimit: 2})

	if len(frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(frames))
	}
	if !approx(frames[0].Duration, 2.0) {
		t.Errorf("clamped gap = %v, want 2.0", frames[0].Duration)
	}
	if !approx(frames[1].Duration, 1.0) {
		t.Errorf("unclamped gap = %v, want 1.0", frames[1].Duration)
	}
}

func TestSpeedScaling(t *testing.T) {
	events := []Event{
		{Time: 0.0, Data: "a"},
		{Time: 4.0, Data: "b"},
	}
	frames := collect(t, events, Options{Speed: 2, FPSCap: 30})

	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	if !approx(frames[0].Duration, 2.0) {
		t.Errorf("scaled gap = %v, want 2.0", frames[0].Duration)
	}
}

func TestIdleClampAppliesBeforeSpeed(t *testing.T) {
	events := []Event{
		{Time: 0.0, Data: "a"},
		{Time: 10.0, Data: "b"},
	}
	// Clamp 10 -> 4, then halve to 2.
	frames := collect(t, events, Options{Speed: 2, FPSCap: 30, IdleTimeLimit: 4})

	if !approx(frames[0].Duration, 2.0) {
		t.Errorf("duration = %v, want 2.0", frames[0].Duration)
	}
}

func TestFPSCapMergesShortIntervals(t *testing.T) {
	// Floor 0.1s; three events 0.03/0.03/0.05 apart merge into one frame
	// of duration 0.11 showing the latest state.
	events := []Event{
		{Time: 1.0, Data: "a"},
		{Time: 1.03, Data: "b"},
		{Time: 1.06, Data: "c"},
		{Time: 1.11, Data: "d"},
	}
	frames := collect(t, events, Options{Speed: 1, FPSCap: 10})

	// Frame 0 is the initial blank screen lasting until the first event.
	if len(frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(frames))
	}
	if !approx(frames[0].Duration, 1.0) {
		t.Errorf("blank lead-in duration = %v, want 1.0", frames[0].Duration)
	}
	if !approx(frames[1].Duration, 0.11) {
		t.Errorf("merged duration = %v, want 0.11", frames[1].Duration)
	}
	if got := frames[1].Snapshot.Line(0); got[:3] != "abc" {
		t.Errorf("merged frame should show latest state, line = %q", got)
	}
	if got := frames[2].Snapshot.Line(0); got[:4] != "abcd" {
		t.Errorf("final frame line = %q", got)
	}
}

func TestDurationConservation(t *testing.T) {
	events := []Event{
		{Time: 0.0, Data: "a"},
		{Time: 0.02, Data: "b"},
		{Time: 0.31, Data: "c"},
		{Time: 0.35, Data: "d"},
		{Time: 1.0, Data: "e"},
		{Time: 2.5, Data: "f"},
	}
	last := 3.0
	frames := collect(t, events, Options{Speed: 1, FPSCap: 10, LastFrameDuration: last})

	var total float64
	for _, f := range frames {
		if f.Duration <= 0 {
			t.Errorf("frame %d has non-positive duration %v", f.Index, f.Duration)
		}
		total += f.Duration
	}
	// fps-cap merging must never drop or add time: total playback is the
	// last event time plus the configured trailing hold.
	if !approx(total, 2.5+last) {
		t.Errorf("total duration = %v, want %v", total, 2.5+last)
	}
}

func TestLastFrameFlushes(t *testing.T) {
	events := []Event{{Time: 0.0, Data: "x"}}
	frames := collect(t, events, Options{Speed: 1, FPSCap: 30, LastFrameDuration: 1.5})

	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	if !approx(frames[0].Duration, 1.5) {
		t.Errorf("final duration = %v, want 1.5", frames[0].Duration)
	}
}

func TestNoChangeFramesAreFolded(t *testing.T) {
	events := []Event{
		{Time: 0.0, Data: "hello"},
		{Time: 1.0, Data: "\x1b[0m"}, // attribute-only, nothing visible changes
		{Time: 2.0, Data: "!"},
	}
	frames := collect(t, events, Options{Speed: 1, FPSCap: 30, LastFrameDuration: 1})

	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2 (no-change frame folded)", len(frames))
	}
	// The folded event's second still belongs to the first frame.
	if !approx(frames[0].Duration, 2.0) {
		t.Errorf("first frame duration = %v, want 2.0", frames[0].Duration)
	}
}

func TestFrameIndexesAreSequential(t *testing.T) {
	events := []Event{
		{Time: 0.0, Data: "a"},
		{Time: 1.0, Data: "b"},
		{Time: 2.0, Data: "c"},
	}
	frames := collect(t, events, Options{Speed: 1, FPSCap: 30})

	for i, f := range frames {
		if f.Index != i {
			t.Errorf("frame %d has index %d", i, f.Index)
		}
	}
}

func TestOutOfOrderEventsAreFatal(t *testing.T) {
	events := []Event{
		{Time: 1.0, Data: "a"},
		{Time: 2.0, Data: "b"},
		{Time: 1.5, Data: "c"}, // violates ordering
		{Time: 3.0, Data: "d"},
	}
	s, err := NewScheduler(newTerm(t), SliceSource(events), Options{Speed: 1, FPSCap: 30})
	if err != nil {
		t.Fatal(err)
	}

	frames, err := s.Collect()
	if err == nil {
		t.Fatal("expected a stream-ordering error")
	}
	// No frame derived from events at or past the violation.
	for _, f := range frames {
		if f.Time >= 1.5 {
			t.Errorf("frame at time %v emitted after ordering failure", f.Time)
		}
	}
	if _, err := s.Next(); err != io.EOF {
		t.Errorf("scheduler should be drained after a fatal error, got %v", err)
	}
}

func TestSourceErrorsPropagate(t *testing.T) {
	boom := errors.New("read failed")
	src := &failingSource{after: 2, err: boom}
	s, err := NewScheduler(newTerm(t), src, Options{Speed: 1, FPSCap: 30})
	if err != nil {
		t.Fatal(err)
	}

	_, err = s.Collect()
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}
}

type failingSource struct {
	after int
	count int
	err   error
}

func (f *failingSource) Next() (Event, error) {
	if f.count >= f.after {
		return Event{}, f.err
	}
	f.count++
	return Event{Time: float64(f.count), Data: "x"}, nil
}

func TestResizeEventMidStream(t *testing.T) {
	// The asciicast layer encodes resize events as XTWINOPS sequences.
	events := []Event{
		{Time: 0.0, Data: "wide"},
		{Time: 1.0, Data: "\x1b[8;3;10t"},
		{Time: 2.0, Data: "x"},
	}
	frames := collect(t, events, Options{Speed: 1, FPSCap: 30})

	lastSnap := frames[len(frames)-1].Snapshot
	cols, rows := lastSnap.Size()
	if cols != 10 || rows != 3 {
		t.Errorf("size after resize = %dx%d, want 10x3", cols, rows)
	}
}
