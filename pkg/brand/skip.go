package brand

import (
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// compileSkipPattern compiles pattern case-insensitively. A blank pattern
// falls back to the boilerplate text, which is compiled as a regular
// expression as-is: metacharacters in the boilerplate are not escaped.
func compileSkipPattern(pattern, boilerplate string) (*regexp.Regexp, error) {
	if strings.TrimSpace(pattern) == "" {
		pattern = boilerplate
	}

	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, errors.Errorf("compiling skip pattern: %w", err)
	}
	return re, nil
}
