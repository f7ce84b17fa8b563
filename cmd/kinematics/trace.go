package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lixenwraith/kinematics/app"
	"github.com/lixenwraith/kinematics/driver"
	"github.com/lixenwraith/kinematics/render"
	"github.com/lixenwraith/kinematics/vmath"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newTraceCmd(opts *rootOptions) *cobra.Command {
	var (
		frames int
		target string
	)

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Run the chain headless and print every frame as a JSON line",
		Long: `Trace steps the chain for a fixed number of frames without a terminal.
With --target the pointer is held at that point, otherwise the chain wanders.
Each frame is written to stdout as one JSON object.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if frames < 0 {
				return fmt.Errorf("--frames must not be negative")
			}
			in, err := parseTarget(target)
			if err != nil {
				return err
			}

			cfg, logger, err := opts.setup(zapcore.Lock(zapcore.AddSync(cmd.ErrOrStderr())))
			if err != nil {
				return err
			}
			defer logger.Sync()

			d, err := app.NewDriver(cfg, logger)
			if err != nil {
				return err
			}
			if err := runTrace(d, in, frames, render.NewJSONLines(cmd.OutOrStdout())); err != nil {
				return err
			}
			logger.Info("trace finished",
				zap.Int("frames", frames),
				zap.Bool("pointer", in.Present),
				zap.Stringer("final_state", d.Tracker().State()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&frames, "frames", "n", 100, "number of frames to run")
	cmd.Flags().StringVarP(&target, "target", "t", "", "fixed pointer position as x,y")
	return cmd
}

func runTrace(d *driver.Driver, in driver.Input, frames int, r render.Renderer) error {
	for i := 0; i < frames; i++ {
		if err := r.Render(d.Step(in)); err != nil {
			return err
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// parseTarget reads "x,y", an empty string means no pointer
func parseTarget(s string) (driver.Input, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return driver.Input{}, nil
	}

	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return driver.Input{}, fmt.Errorf("--target %q: expected x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return driver.Input{}, fmt.Errorf("--target x: %w", err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return driver.Input{}, fmt.Errorf("--target y: %w", err)
	}
	if !finite(x) || !finite(y) {
		return driver.Input{}, fmt.Errorf("--target %q: coordinates must be finite", s)
	}
	return driver.Input{Pointer: vmath.Pt(x, y), Present: true}, nil
}
