package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gifcast/gifcast/asciicast"
	"github.com/gifcast/gifcast/frames"
)

func newPlayCmd() *cobra.Command {
	var (
		speed         float64
		idleTimeLimit float64
	)

	cmd := &cobra.Command{
		Use:   "play <input>",
		Short: "Replay a recording in the current terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if speed <= 0 {
				return fmt.Errorf("speed must be positive, got %v", speed)
			}

			in, closeIn, err := openInput(args[0])
			if err != nil {
				return err
			}
			defer closeIn()

			cast, err := asciicast.Open(in)
			if err != nil {
				return err
			}

			idle := idleTimeLimit
			if idle == 0 {
				idle = cast.Header.IdleTimeLimit
			}
			src := cast.Events
			if idle > 0 {
				src = frames.LimitIdleTime(src, idle)
			}
			src = frames.Accelerate(src, speed)

			out := cmd.OutOrStdout()
			if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
				// Reset colors and attributes when playback ends.
				defer fmt.Fprint(out, "\x1b[0m")
			}

			ctx := cmd.Context()
			start := time.Now()
			for {
				e, err := src.Next()
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return err
				}

				due := start.Add(time.Duration(e.Time * float64(time.Second)))
				if wait := time.Until(due); wait > 0 {
					timer := time.NewTimer(wait)
					select {
					case <-timer.C:
					case <-ctx.Done():
						timer.Stop()
						return ctx.Err()
					}
				}
				if _, err := io.WriteString(out, e.Data); err != nil {
					return err
				}
			}
		},
	}

	cmd.Flags().Float64Var(&speed, "speed", 1.0, "playback speed multiplier")
	cmd.Flags().Float64Var(&idleTimeLimit, "idle-time-limit", 0, "clamp pauses to this many seconds")

	return cmd
}
