package config

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	// Tree building
	Ancestry   string `mapstructure:"THREADR_ANCESTRY" validate:"oneof=first last explicit"`
	Orphans    string `mapstructure:"THREADR_ORPHANS" validate:"oneof=drop reject"`
	Duplicates string `mapstructure:"THREADR_DUPLICATES" validate:"oneof=last-wins reject"`

	// Input / output
	Body      string `mapstructure:"THREADR_BODY" validate:"oneof=plain markdown"`
	MaxLine   string `mapstructure:"THREADR_MAX_LINE" validate:"required"`
	OutputDir string `mapstructure:"THREADR_OUTPUT_DIR"`

	// External tools
	YtdlpPath      string `mapstructure:"THREADR_YTDLP_PATH" validate:"required"`
	DownloaderPath string `mapstructure:"THREADR_DOWNLOADER_PATH" validate:"required"`
	CommentLimit   int    `mapstructure:"THREADR_COMMENT_LIMIT" validate:"min=0"`

	// Preview server
	ServePort int `mapstructure:"THREADR_SERVE_PORT" validate:"min=1,max=65535"`

	LogLevel string `mapstructure:"THREADR_LOG_LEVEL" validate:"oneof=debug info warn error"`
}

// MaxLineBytes parses MaxLine ("1MB", "512KiB") into bytes.
func (c *Config) MaxLineBytes() (int, error) {
	n, err := humanize.ParseBytes(c.MaxLine)
	if err != nil {
		return 0, fmt.Errorf("parse THREADR_MAX_LINE %q: %w", c.MaxLine, err)
	}
	if n == 0 || n > 1<<30 {
		return 0, fmt.Errorf("THREADR_MAX_LINE %q out of range", c.MaxLine)
	}
	return int(n), nil
}

// use reflect to bind environment variables based on mapstructure tags
func bindEnv(c Config) {
	val := reflect.ValueOf(c)
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		if tag := typ.Field(i).Tag.Get("mapstructure"); tag != "" {
			_ = viper.BindEnv(tag)
		}
	}
}

func setDefaults() {
	viper.SetDefault("THREADR_ANCESTRY", "first")
	viper.SetDefault("THREADR_ORPHANS", "drop")
	viper.SetDefault("THREADR_DUPLICATES", "last-wins")
	viper.SetDefault("THREADR_BODY", "plain")
	viper.SetDefault("THREADR_MAX_LINE", "1MB")
	viper.SetDefault("THREADR_OUTPUT_DIR", ".")
	viper.SetDefault("THREADR_YTDLP_PATH", "yt-dlp")
	viper.SetDefault("THREADR_DOWNLOADER_PATH", "youtube-comment-downloader")
	viper.SetDefault("THREADR_COMMENT_LIMIT", 0)
	viper.SetDefault("THREADR_SERVE_PORT", 8080)
	viper.SetDefault("THREADR_LOG_LEVEL", "info")
}

// LoadConfig reads configuration from the environment and any flags bound
// to the same keys with viper.BindPFlag. Flags win over the environment.
func LoadConfig(ctx context.Context) (*Config, error) {
	bindEnv(Config{})
	viper.AutomaticEnv()
	setDefaults()

	cfg := Config{}
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	slog.Debug("Loaded configuration", "config", cfg)

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	if _, err := cfg.MaxLineBytes(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
