// Package progress renders update check events on the terminal: a spinner
// while the feed is queried and a byte progress bar while the installer
// downloads.
package progress

// TerminalCapabilities encapsulates detected terminal features
type TerminalCapabilities struct {
	// IsTTY indicates whether the output is a terminal (vs pipe/redirect)
	IsTTY bool
	// SupportsColor indicates whether terminal supports ANSI color codes
	SupportsColor bool
	// SupportsUnicode indicates whether terminal supports Unicode characters
	SupportsUnicode bool
	// Width is the terminal width in columns (0 if unknown/pipe)
	Width int
}

// ProgressSymbols defines the character set for visual indicators
type ProgressSymbols struct {
	// Checkmark is the success indicator ("✓" or "[OK]")
	Checkmark string
	// Failure is the failure indicator ("✗" or "[FAIL]")
	Failure string
	// BarFilled and BarEmpty draw the download bar
	BarFilled string
	BarEmpty  string
	// SpinnerSet is the index into spinner.CharSets
	SpinnerSet int
}
