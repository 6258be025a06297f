package cli

import (
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ironsheep/imgmode/internal/imaging"
)

// Configuration keys. Each is settable by flag, by IMGMODE_<KEY> in the
// environment (dashes become underscores) or by a YAML config file.
const (
	keyConfig         = "config"
	keyLogLevel       = "log-level"
	keyDither         = "dither"
	keyJPEGQuality    = "jpeg-quality"
	keyPNGCompression = "png-compression"
)

const envPrefix = "IMGMODE"

// Config holds the validated settings for one run.
type Config struct {
	LogLevel       logrus.Level
	Dither         imaging.Dither
	JPEGQuality    int
	PNGCompression png.CompressionLevel
}

var pngLevels = map[string]png.CompressionLevel{
	"default": png.DefaultCompression,
	"none":    png.NoCompression,
	"fast":    png.BestSpeed,
	"best":    png.BestCompression,
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyLogLevel, "warn")
	v.SetDefault(keyDither, imaging.DitherFloydSteinberg.String())
	v.SetDefault(keyJPEGQuality, 95)
	v.SetDefault(keyPNGCompression, "default")
	return v
}

// bindFlags attaches the persistent flags of cmd to v.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for _, key := range []string{keyConfig, keyLogLevel, keyDither, keyJPEGQuality, keyPNGCompression} {
		if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(key)); err != nil {
			return fmt.Errorf("binding flag %s: %w", key, err)
		}
	}
	return nil
}

// readConfigFile loads an optional config file. An explicit --config path
// must exist; otherwise imgmode.yaml (or .yml, .json, .toml) is looked up in
// the working directory and ~/.config/imgmode/ and silently skipped when
// absent. No config type is forced, so the extension picks the parser and a
// bare "imgmode" binary in the working directory is never read as config.
func readConfigFile(v *viper.Viper) (string, error) {
	if cfgFile := v.GetString(keyConfig); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
		return v.ConfigFileUsed(), nil
	}

	v.SetConfigName("imgmode")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "imgmode"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// loadConfig validates the merged settings in v.
func loadConfig(v *viper.Viper) (*Config, error) {
	level, err := logrus.ParseLevel(v.GetString(keyLogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", keyLogLevel, err)
	}

	dither, err := imaging.ParseDither(v.GetString(keyDither))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", keyDither, err)
	}

	quality := v.GetInt(keyJPEGQuality)
	if quality < 1 || quality > 100 {
		return nil, fmt.Errorf("invalid %s: %d is outside 1-100", keyJPEGQuality, quality)
	}

	compression, ok := pngLevels[v.GetString(keyPNGCompression)]
	if !ok {
		return nil, fmt.Errorf("invalid %s: %q (want default, none, fast or best)",
			keyPNGCompression, v.GetString(keyPNGCompression))
	}

	return &Config{
		LogLevel:       level,
		Dither:         dither,
		JPEGQuality:    quality,
		PNGCompression: compression,
	}, nil
}

// convertOptions translates cfg into library options.
func (c *Config) convertOptions(log logrus.FieldLogger) []imaging.Option {
	return []imaging.Option{
		imaging.WithDither(c.Dither),
		imaging.WithJPEGQuality(c.JPEGQuality),
		imaging.WithPNGCompression(c.PNGCompression),
		imaging.WithLogger(log),
	}
}
