package config

import "github.com/mark43/cadupdate/internal/update"

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"owner":         "",
		"repo":          "",
		"package_name":  "",
		"feed_url":      update.DefaultFeedURL,
		"download_url":  update.DefaultDownloadURL,
		"timeout":       300,
		"show_progress": true,
		"notify":        false,
	}
}
