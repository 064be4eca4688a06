// Package config holds runner-level configuration backed by viper.
//
// Battle-specific values (arena size, fps, duration) can still be overridden
// per request; the defaults registered here are the documented fallbacks
// applied when the request's config block omits a field.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// ConfigFileName is the optional runner config file searched for in the
// provided directories.
const ConfigFileName = "battlesim.cfg.json"

// Load registers defaults and reads the optional config file from the given
// directories. A missing config file is not an error; a malformed one is.
func Load(searchDirs ...string) error {
	// Set default values
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./battlelogs")

	viper.SetDefault("arena.width", 1000)
	viper.SetDefault("arena.height", 1000)
	viper.SetDefault("arena.fps", 30)
	viper.SetDefault("arena.maxDuration", 60.0)

	viper.SetDefault("engine.seed", 3241)

	viper.SetDefault("render.scale", 0.5)
	viper.SetDefault("render.team1Color", "#3b78ff")
	viper.SetDefault("render.team2Color", "#e04545")
	viper.SetDefault("render.gifTargetFPS", 15)
	viper.SetDefault("render.ffmpegPath", "ffmpeg")
	viper.SetDefault("render.assetsDir", "./assets")

	viper.SetConfigName(ConfigFileName)
	viper.SetConfigType("json")
	for _, dir := range searchDirs {
		viper.AddConfigPath(dir)
	}

	if len(searchDirs) == 0 {
		return nil
	}

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetFloat64 returns a float config value.
func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
