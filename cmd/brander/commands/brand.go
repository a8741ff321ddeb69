package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/brander/cmd/brander/opts"
	"github.com/walteh/brander/pkg/log"
	"github.com/walteh/brander/pkg/status"
)

// NewBrandCmd creates a new brand command
func NewBrandCmd(opts *opts.RootOpts) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "brand [files...]",
		Short: "Insert the boilerplate into files that lack it",
		Long: `Brand reads the boilerplate, replaces $(Year) with the current year and
inserts it into every target file that does not match the skip pattern.
It will:
1. Merge flags over the config file
2. Expand file globs relative to the root
3. Rewrite each unbranded file in order
4. Stop at the first failure`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "brand").Logger().WithContext(ctx)

			cfg, err := flags.merge(ctx, cmd, opts.Config, args)
			if err != nil {
				return err
			}

			targets, err := cfg.Targets(ctx)
			if err != nil {
				return err
			}

			mgr := status.New(cfg.Root, zerolog.Ctx(ctx))
			res := execute(ctx, opts, cfg, targets, mgr, mgr, false)
			if !res.Success {
				return errors.Errorf("branding files: %w", res.Err)
			}

			if res.Reason != "" {
				opts.UserLogger.LogStateChange(res.Reason)
				return nil
			}

			log.FromContext(ctx).Success(status.NewDefaultFileFormatter().FormatSummary(mgr.Summary(ctx)))
			return nil
		},
	}

	flags.bind(cmd)
	return cmd
}
