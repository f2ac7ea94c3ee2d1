package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/gifcast/gifcast/config"
	"github.com/gifcast/gifcast/pipeline"
)

func newConvertCmd() *cobra.Command {
	var (
		configPath        string
		speed             float64
		fpsCap            int
		idleTimeLimit     float64
		lastFrameDuration float64
		cols, rows        int
		themeName         string
		fontSize          int
		lineHeight        float64
		fontFiles         []string
		noLoop            bool
		workers           int
	)

	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert an asciicast recording to an animated GIF",
		Long: `Convert an asciicast recording (v1, v2 or v3) to an animated GIF.
Use "-" as input to read from stdin or as output to write to stdout.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			// Flags set on the command line override the config file.
			flags := cmd.Flags()
			if flags.Changed("speed") {
				cfg.Speed = speed
			}
			if flags.Changed("fps-cap") {
				cfg.FPSCap = fpsCap
			}
			if flags.Changed("idle-time-limit") {
				cfg.IdleTimeLimit = idleTimeLimit
			}
			if flags.Changed("last-frame-duration") {
				cfg.LastFrameDuration = lastFrameDuration
			}
			if flags.Changed("cols") {
				cfg.Cols = cols
			}
			if flags.Changed("rows") {
				cfg.Rows = rows
			}
			if flags.Changed("theme") {
				cfg.Theme = themeName
			}
			if flags.Changed("font-size") {
				cfg.FontSize = fontSize
			}
			if flags.Changed("line-height") {
				cfg.LineHeight = lineHeight
			}
			if flags.Changed("font-file") {
				cfg.FontFiles = fontFiles
			}
			if flags.Changed("no-loop") {
				cfg.NoLoop = noLoop
			}
			if flags.Changed("workers") {
				cfg.Workers = workers
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			in, closeIn, err := openInput(args[0])
			if err != nil {
				return err
			}
			defer closeIn()

			out, closeOut, err := openOutput(args[1])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := pipeline.Run(ctx, in, out, cfg); err != nil {
				closeOut()
				if args[1] != "-" {
					os.Remove(args[1])
				}
				return err
			}
			if err := closeOut(); err != nil {
				return err
			}

			pslog.Ctx(ctx).Info("conversion complete", "input", args[0], "output", args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file path")
	cmd.Flags().Float64Var(&speed, "speed", 0, "playback speed multiplier")
	cmd.Flags().IntVar(&fpsCap, "fps-cap", 0, "maximum frames per second")
	cmd.Flags().Float64Var(&idleTimeLimit, "idle-time-limit", 0, "clamp pauses to this many seconds")
	cmd.Flags().Float64Var(&lastFrameDuration, "last-frame-duration", 0, "seconds to hold the final frame")
	cmd.Flags().IntVar(&cols, "cols", 0, "override terminal width")
	cmd.Flags().IntVar(&rows, "rows", 0, "override terminal height")
	cmd.Flags().StringVar(&themeName, "theme", "", "color theme name or inline palette")
	cmd.Flags().IntVar(&fontSize, "font-size", 0, "font size in pixels")
	cmd.Flags().Float64Var(&lineHeight, "line-height", 0, "line height as a multiple of font size")
	cmd.Flags().StringArrayVar(&fontFiles, "font-file", nil, "font file to use (repeatable)")
	cmd.Flags().BoolVar(&noLoop, "no-loop", false, "play the animation once instead of looping")
	cmd.Flags().IntVar(&workers, "workers", 0, "render worker count (0 = all CPUs)")

	return cmd
}

func openInput(path string) (io.Reader, func() error, error) {
	if path == "-" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, f.Close, nil
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, f.Close, nil
}
