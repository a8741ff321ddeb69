package commands

import (
	"context"
	"fmt"

	"github.com/walteh/brander/cmd/brander/opts"
	"github.com/walteh/brander/pkg/brand"
	"github.com/walteh/brander/pkg/config"
	"github.com/walteh/brander/pkg/log"
	"github.com/walteh/brander/pkg/status"
)

// execute runs one branding pass and prints a line per tracked file.
// files does the I/O; tracker records outcomes.
func execute(ctx context.Context, opts *opts.RootOpts, cfg *config.Config, targets []string, files status.FileManager, tracker *status.Manager, dryRun bool) *brand.Result {
	logger := log.FromContext(ctx)

	verb := "branding"
	if dryRun {
		verb = "checking"
	}
	logger.Header(fmt.Sprintf("%s %s", verb, describeSource(cfg)))

	logger.StartRunOperation(ctx, log.RunOperation{
		Boilerplate: cfg.FromBoilerplate,
		Files:       len(targets),
		Position:    cfg.Position().String(),
		DryRun:      dryRun,
	})
	defer logger.EndRunOperation(ctx)

	res := brand.New(files, tracker).Execute(ctx, cfg.Options(targets))

	tracked := tracker.ListFiles(ctx)
	for _, info := range tracked {
		logger.LogFileOperation(ctx, fileOperation(info, dryRun))
	}
	if len(tracked) > 0 {
		logger.LogNewline()
	}

	for _, info := range tracked {
		if info.Status == status.StatusFailed {
			opts.UserLogger.LogFileChange(log.FileChange{Type: log.FileError, Path: info.Path, Error: info.Error})
		}
	}

	return res
}

// describeSource names where the options came from
func describeSource(cfg *config.Config) string {
	if loc := cfg.Location(); loc != "" {
		return "from " + loc
	}
	return "from flags"
}

func fileOperation(info status.FileInfo, dryRun bool) log.FileOperation {
	op := log.FileOperation{
		Path:      info.Path,
		Status:    info.Status.String(),
		IsBranded: info.Status == status.StatusBranded,
		IsSkipped: info.Status == status.StatusSkipped,
		IsFailed:  info.Status == status.StatusFailed,
	}
	if dryRun && op.IsBranded {
		op.Status = "would brand"
	}
	return op
}
