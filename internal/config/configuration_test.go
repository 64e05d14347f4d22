package config

import (
	"context"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Success_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := LoadConfig(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Equal(t, "first", cfg.Ancestry)
	require.Equal(t, "drop", cfg.Orphans)
	require.Equal(t, "last-wins", cfg.Duplicates)
	require.Equal(t, "plain", cfg.Body)
	require.Equal(t, "yt-dlp", cfg.YtdlpPath)
	require.Equal(t, 8080, cfg.ServePort)

	n, err := cfg.MaxLineBytes()
	require.NoError(t, err)
	require.Equal(t, 1000*1000, n)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("THREADR_ANCESTRY", "last")
	t.Setenv("THREADR_BODY", "markdown")
	t.Setenv("THREADR_MAX_LINE", "4MiB")
	t.Setenv("THREADR_SERVE_PORT", "9000")

	cfg, err := LoadConfig(context.Background())
	require.NoError(t, err)
	require.Equal(t, "last", cfg.Ancestry)
	require.Equal(t, "markdown", cfg.Body)
	require.Equal(t, 9000, cfg.ServePort)

	n, err := cfg.MaxLineBytes()
	require.NoError(t, err)
	require.Equal(t, 4<<20, n)
}

func TestLoadConfig_ValidationError(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("THREADR_ORPHANS", "keep")

	cfg, err := LoadConfig(context.Background())
	require.Error(t, err)
	require.Nil(t, cfg)
}

func TestLoadConfig_BadMaxLine(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("THREADR_MAX_LINE", "lots")

	_, err := LoadConfig(context.Background())
	require.Error(t, err)
}

func TestLoadConfig_FlagWinsOverEnv(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("THREADR_ANCESTRY", "last")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("ancestry", "first", "")
	require.NoError(t, fs.Parse([]string{"--ancestry", "explicit"}))
	require.NoError(t, viper.BindPFlag("THREADR_ANCESTRY", fs.Lookup("ancestry")))

	cfg, err := LoadConfig(context.Background())
	require.NoError(t, err)
	require.Equal(t, "explicit", cfg.Ancestry)
}
