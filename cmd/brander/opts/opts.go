package opts

import (
	"io"

	"github.com/walteh/brander/pkg/config"
	"github.com/walteh/brander/pkg/log"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config     *config.Config
	UserLogger *log.UserLogger
	Out        io.Writer
}
