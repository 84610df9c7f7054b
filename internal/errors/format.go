package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// FormatError renders err for terminal display with colors.
// Non-CLI errors are rendered as runtime errors.
func FormatError(err error) string {
	return format(err, true)
}

// FormatErrorPlain renders err without ANSI color codes
func FormatErrorPlain(err error) string {
	return format(err, false)
}

// FprintError writes the formatted error to w
func FprintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}

func format(err error, colored bool) string {
	if err == nil {
		return ""
	}

	cliErr := AsCLIError(err)
	if cliErr == nil {
		cliErr = &CLIError{Category: Runtime, Message: err.Error()}
	}

	red := color.New(color.FgRed, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	if !colored {
		red = fmt.Sprint
		cyan = fmt.Sprint
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", red(cliErr.Category.String()), cliErr.Message)

	if cliErr.Usage != "" {
		fmt.Fprintf(&b, "\nUsage:\n  %s\n", cliErr.Usage)
	}

	if len(cliErr.Remediation) > 0 {
		fmt.Fprintf(&b, "\n%s\n", cyan("To fix this:"))
		for _, step := range cliErr.Remediation {
			fmt.Fprintf(&b, "  - %s\n", step)
		}
	}

	return b.String()
}
