package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mode7racer/internal/game"
	"mode7racer/log"
)

func newSimulateCmd() *cobra.Command {
	var (
		maxSeconds int
		boost      bool
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "drives the courses headless with the autopilot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Validate(); err != nil {
				return err
			}
			failed := 0
			for _, e := range entries(opts) {
				res, err := game.Simulate(opts, e, maxSeconds*60, boost, game.WithLogger(log.Logger))
				if err != nil {
					return err
				}
				for i, lt := range res.LapTimes {
					log.Logger.Info("lap",
						zap.String("course", res.Course),
						zap.Int("lap", i+1),
						zap.String("time", game.FormatRaceTime(lt)))
				}
				if !res.Finished {
					failed++
					log.Logger.Warn("race not finished",
						zap.String("course", res.Course),
						zap.Int("laps", res.Laps),
						zap.String("cause", res.Cause))
					continue
				}
				log.Logger.Info("race finished",
					zap.String("course", res.Course),
					zap.String("total", game.FormatRaceTime(res.Total)))
			}
			if failed > 0 {
				return fmt.Errorf("%d race(s) not finished", failed)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&maxSeconds, "max-seconds", 600, "give up a race after this much race time")
	cmd.Flags().BoolVar(&boost, "boost", false, "let the autopilot use the booster")
	return cmd
}
