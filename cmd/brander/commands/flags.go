package commands

import (
	"context"
	"slices"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/brander/pkg/config"
)

// runFlags are the per-run options shared by brand and check
type runFlags struct {
	fromBoilerplate string
	skipWhenHas     string
	insertAtTheTop  bool
	exclude         []string
	root            string
}

func (f *runFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.fromBoilerplate, "from-boilerplate", "", "boilerplate template file")
	cmd.Flags().StringVar(&f.skipWhenHas, "skip-when-has", "", "skip files matching this regex (default: the boilerplate itself)")
	cmd.Flags().BoolVar(&f.insertAtTheTop, "insert-at-the-top", true, "insert at the top instead of the bottom")
	cmd.Flags().StringSliceVar(&f.exclude, "exclude", nil, "glob of files to leave alone (repeatable)")
	cmd.Flags().StringVar(&f.root, "root", "", "directory paths and globs are relative to")
}

// merge layers the flags that were set, and the positional files, over base.
func (f *runFlags) merge(ctx context.Context, cmd *cobra.Command, base *config.Config, args []string) (*config.Config, error) {
	cfg := *base
	cfg.Files = append(slices.Clone(base.Files), args...)
	cfg.Exclude = slices.Clone(base.Exclude)

	flags := cmd.Flags()
	if flags.Changed("from-boilerplate") {
		cfg.FromBoilerplate = f.fromBoilerplate
	}
	if flags.Changed("skip-when-has") {
		cfg.SkipWhenHas = f.skipWhenHas
	}
	if flags.Changed("insert-at-the-top") {
		top := f.insertAtTheTop
		cfg.InsertAtTheTop = &top
	}
	if flags.Changed("exclude") {
		cfg.Exclude = f.exclude
	}
	if flags.Changed("root") {
		cfg.Root = f.root
	}

	if err := config.Validate(ctx, &cfg); err != nil {
		return nil, errors.Errorf("validating options: %w", err)
	}
	return &cfg, nil
}
