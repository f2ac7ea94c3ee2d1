// Package pipeline wires the conversion stages together: parse the
// recording, schedule frames through the terminal emulator, rasterize
// them on a worker pool, and encode the GIF. Emulation and encoding are
// inherently sequential; rasterization dominates the cost and fans out.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	"golang.org/x/sync/errgroup"
	"pkt.systems/pslog"

	"github.com/gifcast/gifcast"
	"github.com/gifcast/gifcast/asciicast"
	"github.com/gifcast/gifcast/config"
	"github.com/gifcast/gifcast/frames"
	"github.com/gifcast/gifcast/gifenc"
	"github.com/gifcast/gifcast/render"
	"github.com/gifcast/gifcast/theme"
)

// Fallback geometry for recordings whose header carries no size.
const (
	fallbackCols = 80
	fallbackRows = 24
)

type renderJob struct {
	index    int
	duration float64
	snapshot gifcast.Snapshot
}

type renderedFrame struct {
	index    int
	duration float64
	image    *image.RGBA
}

// Run converts the asciicast read from in into an animated GIF written
// to out. The first error from any stage cancels the rest.
func Run(ctx context.Context, in io.Reader, out io.Writer, cfg config.Config) error {
	log := pslog.Ctx(ctx)

	cast, err := asciicast.Open(in)
	if err != nil {
		return err
	}

	cols, rows := cfg.Cols, cfg.Rows
	if cols == 0 {
		cols = cast.Header.Cols
	}
	if rows == 0 {
		rows = cast.Header.Rows
	}
	if cols == 0 {
		cols = fallbackCols
	}
	if rows == 0 {
		rows = fallbackRows
	}

	th, err := pickTheme(cfg, cast.Header.Theme)
	if err != nil {
		return err
	}

	idle := cfg.IdleTimeLimit
	if idle == 0 {
		idle = cast.Header.IdleTimeLimit
	}
	if idle == 0 {
		idle = frames.DefaultIdleTimeLimit
	}

	log.Debug("recording parsed",
		"version", cast.Header.Version,
		"cols", cols, "rows", rows,
		"speed", cfg.Speed, "fps_cap", cfg.FPSCap, "idle_time_limit", idle)

	term, err := gifcast.NewTerminal(cols, rows)
	if err != nil {
		return err
	}
	sched, err := frames.NewScheduler(term, cast.Events, frames.Options{
		Speed:             cfg.Speed,
		IdleTimeLimit:     idle,
		FPSCap:            cfg.FPSCap,
		LastFrameDuration: cfg.LastFrameDuration,
	})
	if err != nil {
		return err
	}

	workers := cfg.EffectiveWorkers()
	settings := render.Settings{
		Cols:       cols,
		Rows:       rows,
		FontSize:   cfg.FontSize,
		LineHeight: cfg.LineHeight,
		FontFiles:  cfg.FontFiles,
		Theme:      th,
	}
	// One renderer per worker; font faces keep mutable shaping state.
	renderers := make([]*render.Renderer, workers)
	for i := range renderers {
		if renderers[i], err = render.New(settings); err != nil {
			return err
		}
	}
	w, h := renderers[0].PixelSize()
	log.Debug("rasterizer ready", "width", w, "height", h, "workers", workers)

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan renderJob, workers)
	results := make(chan renderedFrame, workers)

	g.Go(func() error {
		defer close(jobs)
		for {
			frame, err := sched.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			job := renderJob{index: frame.Index, duration: frame.Duration, snapshot: frame.Snapshot}
			select {
			case jobs <- job:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	var workerGroup errgroup.Group
	for _, r := range renderers {
		r := r
		workerGroup.Go(func() error {
			for job := range jobs {
				frame := renderedFrame{index: job.index, duration: job.duration, image: r.Render(job.snapshot)}
				select {
				case results <- frame:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		defer close(results)
		return workerGroup.Wait()
	})

	g.Go(func() error {
		enc := gifenc.New(out, gifenc.Options{NoLoop: cfg.NoLoop})
		count, err := encodeInOrder(results, enc)
		if err != nil {
			return err
		}
		// An upstream failure cancels the context; skip writing a
		// truncated GIF in that case.
		if err := ctx.Err(); err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("pipeline: recording produced no frames")
		}
		log.Debug("frames encoded", "count", count)
		return enc.Close()
	})

	return g.Wait()
}

// encodeInOrder drains rendered frames, which arrive out of order from
// the worker pool, and feeds them to the encoder in index order.
func encodeInOrder(results <-chan renderedFrame, enc *gifenc.Encoder) (int, error) {
	pending := make(map[int]renderedFrame)
	next := 0
	for frame := range results {
		pending[frame.index] = frame
		for {
			f, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			if err := enc.AddFrame(f.image, f.duration); err != nil {
				return next, err
			}
			next++
		}
	}
	return next, nil
}

// pickTheme resolves the theme: an explicit setting wins, then the
// recording's embedded theme, then the built-in default.
func pickTheme(cfg config.Config, embedded *theme.Theme) (*theme.Theme, error) {
	th, err := cfg.ResolveTheme()
	if err != nil || th != nil {
		return th, err
	}
	if embedded != nil {
		return embedded, nil
	}
	return theme.Named(theme.DefaultName)
}
