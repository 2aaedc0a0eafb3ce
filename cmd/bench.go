package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mode7racer/internal/game"
	"mode7racer/log"
)

// frameBudget is one frame at 60 Hz.
const frameBudget = time.Second / 60

func newBenchCmd() *cobra.Command {
	var frames int
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "times the frame step and ground render without a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Validate(); err != nil {
				return err
			}
			for _, e := range entries(opts) {
				res, err := game.Bench(opts, e, frames, frameBudget, game.WithLogger(log.Logger))
				if err != nil {
					return err
				}
				log.Logger.Info("bench",
					zap.String("course", e.Course),
					zap.Int("frames", res.Frames),
					zap.Int("workers", res.Workers),
					zap.Duration("mean", res.Mean),
					zap.Duration("max", res.Max),
					zap.Int("overBudget", res.OverBudget),
					zap.Duration("budget", frameBudget))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&frames, "frames", 600, "frames per course")
	return cmd
}
