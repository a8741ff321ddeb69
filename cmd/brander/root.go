package main

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/brander/cmd/brander/commands"
	"github.com/walteh/brander/cmd/brander/opts"
	"github.com/walteh/brander/pkg/config"
	"github.com/walteh/brander/pkg/log"
)

const defaultConfigFile = ".brander.yaml"

type rootFlags struct {
	configFile string
	debug      bool
}

// newRootCmd builds the command tree. Shared options are filled in by the
// persistent pre-run once flags are parsed.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}
	rootOpts := &opts.RootOpts{Out: stdout}

	cmd := &cobra.Command{
		Use:   "brander",
		Short: "Stamp license boilerplate into source files",
		Long: `brander inserts a boilerplate block (a license or copyright header) at the
top or bottom of each target file, unless the file already matches a skip
pattern. By default a file is skipped when it already contains the boilerplate.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), stderr, flags.debug)

			cfg, err := loadConfig(ctx, flags.configFile, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}

			rootOpts.Config = cfg
			rootOpts.UserLogger = log.NewUserLogger(ctx, stdout)

			cmd.SetContext(log.NewContext(ctx, log.New(stdout, *zerolog.Ctx(ctx))))
			return nil
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	addRootFlags(cmd, flags)

	cmd.AddCommand(
		commands.NewBrandCmd(rootOpts),
		commands.NewCheckCmd(rootOpts),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", defaultConfigFile, "config file path")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
}

// loadConfig reads the config file. A missing file is only an error when the
// path was given explicitly.
func loadConfig(ctx context.Context, path string, explicit bool) (*config.Config, error) {
	cfg, err := config.LoadConfig(ctx, path)
	if err == nil {
		return cfg, nil
	}

	if !explicit && errors.Is(err, os.ErrNotExist) {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no config file, using defaults")
		return config.Default(), nil
	}

	return nil, errors.Errorf("loading config: %w", err)
}
