package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mode7racer/internal/game"
	"mode7racer/internal/machine"
)

func newCoursesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "courses",
		Short: "lists courses, the league order and machines",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "courses:")
			cat := game.DefaultCatalog()
			for _, n := range cat.Names() {
				c := cat[n]
				fmt.Fprintf(out, "  %-16s fog=%-5t palette=%s\n", n, c.Foggy, c.Palette.Name)
			}
			fmt.Fprintln(out, "league:")
			for i, e := range entries(opts) {
				fmt.Fprintf(out, "  %d. %s (%d laps)\n", i+1, e.Course, e.Laps)
			}
			fmt.Fprintln(out, "machines:")
			for _, p := range machine.All() {
				fmt.Fprintf(out, "  %-20s max=%.1f boost=%.1f\n", p.Name, p.MaxSpeed, p.BoostedMaxSpeed)
			}
			return nil
		},
	}
}
