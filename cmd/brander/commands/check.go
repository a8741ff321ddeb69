package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/brander/cmd/brander/opts"
	"github.com/walteh/brander/pkg/log"
	"github.com/walteh/brander/pkg/status"
)

// NewCheckCmd creates a new check command
func NewCheckCmd(opts *opts.RootOpts) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Report files that are missing the boilerplate",
		Long: `Check runs the same pass as brand without writing anything. Every file
that would be branded is printed with a diff, and the command fails if
there is at least one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "check").Logger().WithContext(ctx)

			cfg, err := flags.merge(ctx, cmd, opts.Config, args)
			if err != nil {
				return err
			}

			targets, err := cfg.Targets(ctx)
			if err != nil {
				return err
			}

			mgr := status.New(cfg.Root, zerolog.Ctx(ctx))
			differ := status.NewDiffManager(mgr)
			res := execute(ctx, opts, cfg, targets, differ, mgr, true)
			if !res.Success {
				return errors.Errorf("checking files: %w", res.Err)
			}

			for _, fd := range differ.Diffs() {
				opts.UserLogger.LogFileChange(log.FileChange{Type: log.FileWouldBrand, Path: fd.Path})
				fmt.Fprintln(opts.Out, differ.Render(fd))
			}

			logger := log.FromContext(ctx)
			if n := len(res.Branded); n > 0 {
				logger.Warningf("%d of %d files are missing the boilerplate", n, len(targets))
				return errors.Errorf("%d of %d files are missing the boilerplate", n, len(targets))
			}

			if res.Reason != "" {
				opts.UserLogger.LogStateChange(res.Reason)
				return nil
			}

			logger.Successf("All %d files carry the boilerplate", len(targets))
			return nil
		},
	}

	flags.bind(cmd)
	return cmd
}
