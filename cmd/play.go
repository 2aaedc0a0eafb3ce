package cmd

import (
	"github.com/spf13/cobra"

	"mode7racer/internal/desktop"
	"mode7racer/log"
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "opens the game window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return play()
		},
	}
	cmd.Flags().IntVar(&opts.Window.Width, "window-width", opts.Window.Width, "window width")
	cmd.Flags().IntVar(&opts.Window.Height, "window-height", opts.Window.Height, "window height")
	cmd.Flags().BoolVar(&opts.Window.VSync, "vsync", opts.Window.VSync, "wait for vertical sync")
	cmd.Flags().BoolVar(&opts.Audio.Enabled, "audio", opts.Audio.Enabled, "play sound")
	cmd.Flags().Float64Var(&opts.Audio.Volume, "volume", opts.Audio.Volume, "sound volume 0..1")
	cmd.Flags().BoolVar(&opts.Debug.RestartKey, "restart-key", opts.Debug.RestartKey,
		"R restarts the current race")
	cmd.Flags().BoolVar(&opts.Debug.ShowFPS, "show-fps", opts.Debug.ShowFPS,
		"show frames per second in the title")
	return cmd
}

func play() error {
	if err := opts.Validate(); err != nil {
		return err
	}
	return desktop.Run(opts, log.Logger)
}
