package progress

import (
	"os"

	"golang.org/x/term"
)

// DetectTerminalCapabilities detects terminal features of f
func DetectTerminalCapabilities(f *os.File) TerminalCapabilities {
	isTTY := term.IsTerminal(int(f.Fd()))

	noColor := os.Getenv("NO_COLOR") != ""
	forceASCII := os.Getenv("CADUPDATE_ASCII") == "1"

	width := 0
	if isTTY {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil {
			width = w
		}
	}

	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && !noColor,
		SupportsUnicode: isTTY && !forceASCII,
		Width:           width,
	}
}

// SelectSymbols returns the appropriate symbol set based on terminal capabilities
func SelectSymbols(caps TerminalCapabilities) ProgressSymbols {
	if caps.SupportsUnicode {
		return ProgressSymbols{
			Checkmark:  "✓",
			Failure:    "✗",
			BarFilled:  "█",
			BarEmpty:   "░",
			SpinnerSet: 14, // Unicode dots: ⠋ ⠙ ⠹ ⠸ ⠼ ⠴ ⠦ ⠧ ⠇ ⠏
		}
	}

	return ProgressSymbols{
		Checkmark:  "[OK]",
		Failure:    "[FAIL]",
		BarFilled:  "#",
		BarEmpty:   "-",
		SpinnerSet: 9, // ASCII: | / - \
	}
}
