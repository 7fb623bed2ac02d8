package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/RafRunner/shh/config"
	"github.com/RafRunner/shh/logger"
	"github.com/RafRunner/shh/stats"
)

const version = "0.1.0"

// app holds what the subcommands share. It is built once per root command
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	stats   *stats.Stats
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), stats: stats.Global()}

	root := &cobra.Command{
		Use:               "shh",
		Short:             "Shh: simple steganography",
		Long:              "Shh hides files or text in the least significant bits of an image's pixels and gets them back out.",
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.initConfig,
		PersistentPostRun: a.finish,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (optional)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-file", "", "also write JSON logs to this file, rotated by size")
	pf.Bool("overwrite", false, "replace output files that already exist")

	_ = a.v.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = a.v.BindPFlag("log.file", pf.Lookup("log-file"))
	_ = a.v.BindPFlag("overwrite", pf.Lookup("overwrite"))

	config.SetDefaults(a.v)
	a.v.SetEnvPrefix("shh")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(
		newEncodeCmd(a),
		newDecodeCmd(a),
		newCapacityCmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) initConfig(cmd *cobra.Command, args []string) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.SetConfigName("shh")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
		a.v.AddConfigPath("$HOME/.config/shh")
	}

	if err := a.v.ReadInConfig(); err != nil {
		// a missing default config file is fine, anything else is not
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("config error: %w", err)
		}
	}

	cfg, err := config.FromViper(a.v)
	if err != nil {
		return err
	}
	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger.Configure(logger.Options{
		Level:      level,
		Output:     os.Stderr,
		Prefix:     "shh",
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		Compress:   cfg.Log.Compress,
	})
	if used := a.v.ConfigFileUsed(); used != "" {
		logger.Debug("loaded configuration from %s", used)
	}

	a.cfg = cfg
	return nil
}

func (a *app) finish(cmd *cobra.Command, args []string) {
	s := a.stats.GetSnapshot()
	logger.Debug("stats: encodes=%d decodes=%d queries=%d failures=%d hidden=%dB recovered=%dB",
		s.Encodes, s.Decodes, s.Queries, s.Failures, s.BytesHidden, s.BytesRecovered)
	_ = logger.Global().Sync()
}

func success(cmd *cobra.Command, format string, v ...interface{}) {
	pterm.Success.WithWriter(cmd.OutOrStdout()).Printfln(format, v...)
}

func info(cmd *cobra.Command, format string, v ...interface{}) {
	pterm.Info.WithWriter(cmd.OutOrStdout()).Printfln(format, v...)
}
