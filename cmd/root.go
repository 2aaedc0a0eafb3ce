package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"mode7racer/internal/config"
	"mode7racer/internal/game"
	"mode7racer/internal/race"
	"mode7racer/log"
)

const envPrefix = "RACER"

var (
	cfgFile   string
	logLevel  string
	logFormat string
	opts      = config.Default()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mode7racer",
	Short: "Pseudo-3D futuristic racer",
	Long: `Races hover machines around flat courses drawn with a mode7
ground projection. Without a subcommand the game window opens.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return log.Init(logLevel, logFormat)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return play()
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.racer.yml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"controls the log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"controls the log output format (text, json)")

	rootCmd.PersistentFlags().StringVar(&opts.Race.Course, "course", "",
		"race a single course instead of the league")
	rootCmd.PersistentFlags().StringVar(&opts.Race.Machine, "machine", opts.Race.Machine,
		"machine to drive")
	rootCmd.PersistentFlags().IntVar(&opts.Race.Laps, "laps", opts.Race.Laps,
		"laps per race")
	rootCmd.PersistentFlags().IntVar(&opts.Render.Workers, "workers", 0,
		"goroutines rendering the ground (0 = one per CPU)")
	rootCmd.PersistentFlags().IntVar(&opts.Render.Width, "render-width", opts.Render.Width,
		"internal render width in pixels")
	rootCmd.PersistentFlags().IntVar(&opts.Render.Height, "render-height", opts.Render.Height,
		"internal render height in pixels")
	rootCmd.PersistentFlags().IntVar(&opts.Render.Horizon, "horizon", opts.Render.Horizon,
		"first ground row of the internal frame")
	rootCmd.PersistentFlags().BoolVar(&opts.Physics.CollisionOff, "collision-off", false,
		"drive through everything (debug)")

	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newSimulateCmd())
	rootCmd.AddCommand(newBenchCmd())
	rootCmd.AddCommand(newCoursesCmd())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".racer")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		overlayConfig(viper.GetViper())
	}

	bindFlags(rootCmd, viper.GetViper())
	for _, cmd := range rootCmd.Commands() {
		bindFlags(cmd, viper.GetViper())
	}
}

// overlayConfig decodes the config file into opts. Flags given on the
// command line win over the file.
func overlayConfig(v *viper.Viper) {
	changed := map[*pflag.Flag]string{}
	collect := func(f *pflag.Flag) {
		if f.Changed {
			changed[f] = f.Value.String()
		}
	}
	rootCmd.PersistentFlags().VisitAll(collect)
	for _, cmd := range rootCmd.Commands() {
		cmd.Flags().VisitAll(collect)
	}

	cobra.CheckErr(config.Decode(v, &opts))

	for f, val := range changed {
		if err := f.Value.Set(val); err != nil {
			fmt.Fprintf(os.Stderr, "Could not restore flag value for %s: %v", f.Name, err)
		}
	}
}

// Bind each cobra flag to its associated viper configuration
// (config file and environment variable)
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// Environment variables can't have dashes in them, so bind them to their
		// equivalent keys with underscores, e.g. --log-level to RACER_LOG_LEVEL
		if strings.Contains(f.Name, "-") {
			envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindEnv(f.Name,
				fmt.Sprintf("%s_%s", envPrefix, envVarSuffix)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not bind env var %s: %v", f.Name, err)
			}
		}
		// Apply the viper config value to the flag when the flag is not set and viper
		// has a value
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				fmt.Fprintf(os.Stderr, "Could not set flag value for %s: %v", f.Name, err)
			}
		}
	})
}

// entries lists the races a headless command should run.
func entries(cfg config.Config) []race.Entry {
	if cfg.Race.Course != "" {
		return []race.Entry{{Course: cfg.Race.Course, Laps: cfg.Race.Laps}}
	}
	l := game.DefaultLeague(cfg.Race.Laps)
	out := make([]race.Entry, 0, l.Len())
	for e, ok := l.Current(); ok; e, ok = l.Next() {
		out = append(out, e)
	}
	return out
}
