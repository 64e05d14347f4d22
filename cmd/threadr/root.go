package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"thirdcoast.systems/threadr/internal/config"
	"thirdcoast.systems/threadr/internal/pipeline"
)

// commandContext carries state loaded once in PersistentPreRunE.
type commandContext struct {
	cfg *config.Config
}

func (cc *commandContext) pipelineOptions() (pipeline.Options, error) {
	if cc.cfg == nil {
		return pipeline.Options{}, fmt.Errorf("configuration not loaded")
	}
	return pipeline.OptionsFromConfig(cc.cfg)
}

func newRootCommand() *cobra.Command {
	cc := &commandContext{}

	root := &cobra.Command{
		Use:           "threadr",
		Short:         "Turn exported YouTube comments into a threaded, vote-ranked HTML page",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cmd.Context())
			if err != nil {
				return err
			}
			cc.cfg = cfg
			setupLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.String("ancestry", "first", "reply attachment rule: first, last or explicit")
	flags.String("orphans", "drop", "replies whose parent is missing: drop or reject")
	flags.String("duplicates", "last-wins", "repeated comment ids: last-wins or reject")
	flags.String("body", "plain", "comment body rendering: plain or markdown")
	flags.String("max-line", "1MB", "longest accepted input line")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	bindFlags(flags, map[string]string{
		"ancestry":   "THREADR_ANCESTRY",
		"orphans":    "THREADR_ORPHANS",
		"duplicates": "THREADR_DUPLICATES",
		"body":       "THREADR_BODY",
		"max-line":   "THREADR_MAX_LINE",
		"log-level":  "THREADR_LOG_LEVEL",
	})

	root.AddCommand(newFetchCommand(cc))
	root.AddCommand(newRenderCommand(cc))
	root.AddCommand(newStatsCommand(cc))
	root.AddCommand(newServeCommand(cc))

	return root
}

// bindFlags points viper config keys at flags so a flag set on the command
// line overrides the environment.
func bindFlags(fs *pflag.FlagSet, keys map[string]string) {
	for name, key := range keys {
		if err := viper.BindPFlag(key, fs.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}
}
