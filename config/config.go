// Package config loads runtime settings from defaults, an optional config file and
// KINEMATICS_ environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/kinematics/parameter"
	"github.com/lixenwraith/kinematics/vmath"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const (
	EnvPrefix  = "KINEMATICS"
	ConfigName = "kinematics"

	// DebugLogFile is used when --debug is set without an explicit log.file
	DebugLogFile = "logs/kinematics.log"
)

// Config is the full runtime configuration
type Config struct {
	Chain   parameter.Params `mapstructure:"chain"`
	Tracker TrackerConfig    `mapstructure:"tracker"`
	Input   InputConfig      `mapstructure:"input"`
	Render  RenderConfig     `mapstructure:"render"`
	Audio   AudioConfig      `mapstructure:"audio"`
	Log     LogConfig        `mapstructure:"log"`
	// Keys maps key specs to action names. Viper lowercases map keys, so "Q" binds q
	// and upper case runes must be written as "shift-q"
	Keys map[string]string `mapstructure:"keys"`
}

// TrackerConfig sets the wander drift per frame
type TrackerConfig struct {
	DriftX float64 `mapstructure:"drift_x"`
	DriftY float64 `mapstructure:"drift_y"`
}

// Drift returns the configured drift vector
func (t TrackerConfig) Drift() vmath.Vec {
	return vmath.V(t.DriftX, t.DriftY)
}

// InputConfig tunes pointer presence detection, zero IdleTimeout never expires the pointer
type InputConfig struct {
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
}

// RenderConfig holds terminal output settings
type RenderConfig struct {
	FPS       int     `mapstructure:"fps"`
	Scale     float64 `mapstructure:"scale"`
	Color     string  `mapstructure:"color"`
	StatusBar bool    `mapstructure:"status_bar"`
}

// ParsedColor decodes Color as a #rrggbb hex triplet
func (r RenderConfig) ParsedColor() (colorful.Color, error) {
	c, err := colorful.Hex(r.Color)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("render.color %q: %w", r.Color, err)
	}
	return c, nil
}

// FrameInterval is the time between frames
func (r RenderConfig) FrameInterval() time.Duration {
	if r.FPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(r.FPS)
}

type AudioConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LogConfig configures the zap logger and its rotating file sink
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// SetDefaults registers every key with its default value
func SetDefaults(v *viper.Viper) {
	p := parameter.Default()
	v.SetDefault("chain.segments", p.SegmentCount)
	v.SetDefault("chain.length", p.SegmentLength)
	v.SetDefault("chain.width", p.SegmentWidth)
	v.SetDefault("chain.width_growth", p.WidthGrowth)
	v.SetDefault("chain.paused", false)

	v.SetDefault("tracker.drift_x", -1.0)
	v.SetDefault("tracker.drift_y", 1.0)

	v.SetDefault("input.idle_timeout", 3*time.Second)

	v.SetDefault("render.fps", 60)
	v.SetDefault("render.scale", 2.0)
	v.SetDefault("render.color", "#ffffff")
	v.SetDefault("render.status_bar", true)

	v.SetDefault("audio.enabled", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 7)
	v.SetDefault("log.compress", false)
}

// NewDefaultConfig returns the configuration with nothing but defaults applied
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// Load reads configuration into v and decodes it
// An empty file searches the working directory for kinematics.{toml,yaml,...} and tolerates finding none
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(ConfigName)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings that cannot be corrected by clamping
func (c *Config) Validate() error {
	if c.Render.FPS <= 0 {
		return fmt.Errorf("render.fps must be a positive integer")
	}
	if c.Render.Scale <= 0 {
		return fmt.Errorf("render.scale must be positive")
	}
	if _, err := c.Render.ParsedColor(); err != nil {
		return err
	}
	if c.Input.IdleTimeout < 0 {
		return fmt.Errorf("input.idle_timeout must not be negative")
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// ClampChain forces chain options into range and returns the keys that were adjusted
func (c *Config) ClampChain() []string {
	before := c.Chain
	c.Chain = before.Clamp()

	var adjusted []string
	if before.SegmentCount != c.Chain.SegmentCount {
		adjusted = append(adjusted, "chain.segments")
	}
	if before.SegmentLength != c.Chain.SegmentLength {
		adjusted = append(adjusted, "chain.length")
	}
	if before.SegmentWidth != c.Chain.SegmentWidth {
		adjusted = append(adjusted, "chain.width")
	}
	if before.WidthGrowth != c.Chain.WidthGrowth {
		adjusted = append(adjusted, "chain.width_growth")
	}
	return adjusted
}
