package progress

import (
	"fmt"
	"strings"

	"github.com/mark43/cadupdate/internal/update"
)

const barWidth = 30

// formatBytes formats a byte count as a human-readable string.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// formatProgress renders one progress line. An unknown total prints only the
// byte count.
func formatProgress(p update.Progress, symbols ProgressSymbols) string {
	if !p.Known() {
		return fmt.Sprintf("  Downloaded %s", formatBytes(p.Downloaded))
	}

	percent := p.Percent()
	filled := int(float64(barWidth) * percent / 100)

	var bar strings.Builder
	bar.WriteString(strings.Repeat(symbols.BarFilled, filled))
	bar.WriteString(strings.Repeat(symbols.BarEmpty, barWidth-filled))

	return fmt.Sprintf("  [%s] %.1f%% (%s/%s)", bar.String(), percent,
		formatBytes(p.Downloaded), formatBytes(p.Total))
}

// checkmark returns the appropriate checkmark symbol
func checkmark(symbols ProgressSymbols, supportsColor bool) string {
	mark := symbols.Checkmark
	if supportsColor && symbols.Checkmark == "✓" {
		mark = "\033[32m" + mark + "\033[0m" // Green
	}
	return mark
}

// failureMark returns the appropriate failure symbol
func failureMark(symbols ProgressSymbols, supportsColor bool) string {
	mark := symbols.Failure
	if supportsColor && symbols.Failure == "✗" {
		mark = "\033[31m" + mark + "\033[0m" // Red
	}
	return mark
}
