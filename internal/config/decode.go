package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Decode overlays the settings held by v onto cfg. Keys v does not know
// keep their current value, so cfg is usually Default().
func Decode(v *viper.Viper, cfg *Config) error {
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
