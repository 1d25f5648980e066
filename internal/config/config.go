package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Reveal   RevealConfig   `mapstructure:"reveal"`
	Showcase ShowcaseConfig `mapstructure:"showcase"`
	Marquee  MarqueeConfig  `mapstructure:"marquee"`
	Contact  ContactConfig  `mapstructure:"contact"`
	Log      LogConfig      `mapstructure:"log"`
	Content  ContentConfig  `mapstructure:"content"`
}

// RevealConfig holds the timing of the counter reveal.
type RevealConfig struct {
	TickPeriod    time.Duration `mapstructure:"tick_period"`
	Fade          time.Duration `mapstructure:"fade"`
	Threshold     float64       `mapstructure:"threshold"`
	PerOwnerDelay time.Duration `mapstructure:"per_owner_delay"`
	PerUnitDelay  time.Duration `mapstructure:"per_unit_delay"`
}

// ShowcaseConfig holds the fade of the project cards.
// Card i waits (i+1)×Stagger once it scrolls into view.
type ShowcaseConfig struct {
	Stagger   time.Duration `mapstructure:"stagger"`
	Fade      time.Duration `mapstructure:"fade"`
	Threshold float64       `mapstructure:"threshold"`
}

// ContactConfig holds the timings of the contact form.
type ContactConfig struct {
	// how long a message stays in flight
	SendDelay time.Duration `mapstructure:"send_delay"`
	// how long the button reads "Sent" after a success
	SentReset time.Duration `mapstructure:"sent_reset"`
	Toast     time.Duration `mapstructure:"toast"`
}

// MarqueeConfig holds the logo strip settings.
type MarqueeConfig struct {
	Speed time.Duration `mapstructure:"speed"`
	Gap   int           `mapstructure:"gap"`
}

// LogConfig holds logging settings. An empty file disables logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// ContentConfig points at the page content. An empty path uses the built-in content.
type ContentConfig struct {
	Path string `mapstructure:"path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Reveal: RevealConfig{
			TickPeriod:    50 * time.Millisecond,
			Fade:          100 * time.Millisecond,
			Threshold:     0.5,
			PerOwnerDelay: 200 * time.Millisecond,
			PerUnitDelay:  50 * time.Millisecond,
		},
		Showcase: ShowcaseConfig{
			Stagger:   300 * time.Millisecond,
			Fade:      time.Second,
			Threshold: 0.25,
		},
		Marquee: MarqueeConfig{
			Speed: 120 * time.Millisecond,
			Gap:   6,
		},
		Contact: ContactConfig{
			SendDelay: 600 * time.Millisecond,
			SentReset: 3 * time.Second,
			Toast:     4 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from path (if not empty) and env.
// Env var overrides use prefix PORTFOLIO_, e.g. PORTFOLIO_REVEAL_TICK_PERIOD.
func Load(path string) (Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("reveal.tick_period", def.Reveal.TickPeriod)
	v.SetDefault("reveal.fade", def.Reveal.Fade)
	v.SetDefault("reveal.threshold", def.Reveal.Threshold)
	v.SetDefault("reveal.per_owner_delay", def.Reveal.PerOwnerDelay)
	v.SetDefault("reveal.per_unit_delay", def.Reveal.PerUnitDelay)
	v.SetDefault("showcase.stagger", def.Showcase.Stagger)
	v.SetDefault("showcase.fade", def.Showcase.Fade)
	v.SetDefault("showcase.threshold", def.Showcase.Threshold)
	v.SetDefault("contact.send_delay", def.Contact.SendDelay)
	v.SetDefault("contact.sent_reset", def.Contact.SentReset)
	v.SetDefault("contact.toast", def.Contact.Toast)
	v.SetDefault("marquee.speed", def.Marquee.Speed)
	v.SetDefault("marquee.gap", def.Marquee.Gap)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("content.path", def.Content.Path)

	v.SetConfigType("toml")

	v.SetEnvPrefix("PORTFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	return Normalize(c), nil
}

// Normalize replaces out of range values with defaults.
func Normalize(c Config) Config {
	def := Default()

	if c.Reveal.TickPeriod <= 0 {
		c.Reveal.TickPeriod = def.Reveal.TickPeriod
	}
	if c.Reveal.Fade < 0 {
		c.Reveal.Fade = 0
	}
	c.Reveal.Threshold = min(max(c.Reveal.Threshold, 0), 1)
	if c.Reveal.PerOwnerDelay < 0 {
		c.Reveal.PerOwnerDelay = 0
	}
	if c.Reveal.PerUnitDelay < 0 {
		c.Reveal.PerUnitDelay = 0
	}

	if c.Showcase.Stagger < 0 {
		c.Showcase.Stagger = 0
	}
	if c.Showcase.Fade < 0 {
		c.Showcase.Fade = 0
	}
	c.Showcase.Threshold = min(max(c.Showcase.Threshold, 0), 1)

	if c.Contact.SendDelay < 0 {
		c.Contact.SendDelay = 0
	}
	if c.Contact.SentReset <= 0 {
		c.Contact.SentReset = def.Contact.SentReset
	}
	if c.Contact.Toast <= 0 {
		c.Contact.Toast = def.Contact.Toast
	}

	if c.Marquee.Speed <= 0 {
		c.Marquee.Speed = def.Marquee.Speed
	}
	if c.Marquee.Gap < 0 {
		c.Marquee.Gap = def.Marquee.Gap
	}

	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if _, err := ParseLevel(c.Log.Level); err != nil {
		c.Log.Level = def.Log.Level
	}
	c.Log.File = strings.TrimSpace(c.Log.File)
	c.Content.Path = strings.TrimSpace(c.Content.Path)

	return c
}

var errUnknownLevel = errors.New("unknown log level")

// ParseLevel maps debug, info, warn and error to their slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", errUnknownLevel, s)
	}
}
