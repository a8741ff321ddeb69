package log

import (
	"context"
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger provides user-friendly feedback about a branding run
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
	out io.Writer
}

// 🎨 FileChangeType represents what happened to a file
type FileChangeType int

const (
	FileWouldBrand FileChangeType = iota
	FileError
)

// 🖼️ FileChange represents a change to a target file
type FileChange struct {
	Type        FileChangeType
	Path        string
	Description string
	Error       error
}

// 🎯 NewUserLogger creates a new user logger printing to out
func NewUserLogger(ctx context.Context, out io.Writer) *UserLogger {
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
		out: out,
	}
}

func (u *UserLogger) printer(p pterm.PrefixPrinter, prefix string) *pterm.PrefixPrinter {
	return p.WithPrefix(pterm.Prefix{Text: prefix, Style: p.Prefix.Style}).WithWriter(u.out)
}

// 📝 LogFileChange logs a file change with appropriate emoji and formatting
func (u *UserLogger) LogFileChange(change FileChange) {
	var action string
	var printer *pterm.PrefixPrinter
	switch change.Type {
	case FileWouldBrand:
		action = "Missing boilerplate"
		printer = u.printer(pterm.Warning, "📝")
	default:
		action = "Error"
		printer = u.printer(pterm.Error, "❌")
	}

	msg := fmt.Sprintf("%s %s", action, change.Path)
	if change.Description != "" {
		msg += fmt.Sprintf(" (%s)", change.Description)
	}

	printer.Println(msg)
	if change.Error != nil {
		u.printer(pterm.Error, "❌").Println(change.Error.Error())
		u.log.Error().Err(change.Error).Msg(msg)
		return
	}
	u.log.Info().Msg(msg)
}

// 📊 LogStateChange logs a change to the overall run
func (u *UserLogger) LogStateChange(description string) {
	u.printer(pterm.Info, "📦").Println(description)
	u.log.Info().Msg(description)
}

// 🔍 LogValidation logs the final verdict of a run
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	switch {
	case valid:
		u.printer(pterm.Success, "✅").Println(description)
		u.log.Info().Msg(description)
	case err != nil:
		u.printer(pterm.Error, "❌").Println(description)
		u.printer(pterm.Error, "❌").Println(err.Error())
		u.log.Error().Err(err).Msg(description)
	default:
		u.printer(pterm.Warning, "⚠️").Println(description)
		u.log.Warn().Msg(description)
	}
}
