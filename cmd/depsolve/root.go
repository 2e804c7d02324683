package main

import (
	"errors"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

const envPrefix = "DEPSOLVE"

type rootConfig struct {
	LogLevel string
}

func run() int {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		return exitCodeForError(err)
	}
	return 0
}

func newRootCommand() *cobra.Command {
	cfg := rootConfig{}
	cmd := &cobra.Command{
		Use:     "depsolve",
		Short:   "Dependency version resolution over a declarative package repository",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			setupLogging(viper.GetString("log_level"))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	cmd.AddCommand(newSolveCommand())
	cmd.AddCommand(newOptimizeCommand())
	return cmd
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func exitCodeForError(err error) int {
	code := errbuilder.CodeOf(err)
	switch code {
	case errbuilder.CodeInvalidArgument:
		return 2
	case errbuilder.CodeFailedPrecondition:
		return 3
	case errbuilder.CodeDeadlineExceeded:
		return 4
	case errbuilder.CodeInternal:
		return 5
	default:
		return 1
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
