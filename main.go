// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	internalcmd "github.com/mia-platform/cardiostat/internal/cmd"
	"github.com/mia-platform/cardiostat/internal/config"
	"github.com/mia-platform/cardiostat/internal/info"
	"github.com/mia-platform/cardiostat/internal/logger"
)

var (
	// Version and BuildDate default to the values of the info package.
	Version   = info.Version
	BuildDate = info.BuildDate

	appName      = info.AppName
	versionShort = "Display the " + appName + " version"
)

const (
	appShort = "cardiostat exports and summarizes the answers of a heart health survey"
	appLong  = `cardiostat exports and summarizes the answers of a heart health survey.
	The survey table is read from a comma separated file or from an .xlsx workbook.
	Defaults for the input and output paths and for the log level are read from the
	` + config.EnvPrefix + `* environment variables and from a ` + config.DotEnvFile + ` file in the
	working directory, and every flag takes precedence over them.`

	logLevelFlagName      = "log-level"
	logLevelShortFlagName = "v"

	versionCmdName = "version"
)

var (
	allLoggerLevels = []string{
		logger.TRACE.String(),
		logger.DEBUG.String(),
		logger.INFO.String(),
		logger.WARN.String(),
		logger.ERROR.String(),
	}
	logLevelFlagUsage = "set the logging level (possible values: " + strings.Join(allLoggerLevels, ", ") + ")"
)

// rootFlags holds the persistent flags shared across the command tree.
type rootFlags struct {
	logLevel string
}

// addFlags registers the persistent CLI flags on cmd.
func (f *rootFlags) addFlags(cmd *cobra.Command, defaultLevel string) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&f.logLevel, logLevelFlagName, logLevelShortFlagName, defaultLevel, heredoc.Doc(logLevelFlagUsage))
}

func main() {
	defaults, err := config.LoadConfig(config.DotEnvFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cmd := rootCmd(defaults)
	log := logger.NewLogger(cmd.ErrOrStderr())
	ctx := logger.WithContext(context.Background(), log)

	exitCode := 0
	if err := cmd.ExecuteContext(ctx); err != nil {
		exitCode = 1
	}

	os.Exit(exitCode)
}

// rootCmd constructs the root Cobra command with shared configuration.
func rootCmd(defaults *config.Config) *cobra.Command {
	flag := &rootFlags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: heredoc.Doc(appShort),
		Long:  heredoc.Doc(appLong),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			log := logger.FromContext(cmd.Context())
			log.SetLevel(logger.LevelFromString(flag.logLevel))
		},
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.PrintErrln(err)
		_ = c.Usage()
		return err
	})

	flag.addFlags(cmd, strings.ToUpper(defaults.LogLevel))
	cmd.AddCommand(
		internalcmd.ExportCmd(defaults),
		internalcmd.SummaryCmd(defaults),
		internalcmd.CrosstabCmd(defaults),
		internalcmd.RunCmd(defaults),
		versionCmd(),
	)

	return cmd
}

// versionCmd constructs the Cobra command that prints version information.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   versionCmdName,
		Short: heredoc.Doc(versionShort),

		Args: func(cmd *cobra.Command, args []string) error {
			err := cobra.NoArgs(cmd, args)
			if err != nil {
				cmd.PrintErrln(err)
				_ = cmd.Usage()
			}

			return err
		},
		ValidArgsFunction: cobra.NoFileCompletions,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), info.VersionString(Version, BuildDate, runtime.Version()))
		},
	}
}
