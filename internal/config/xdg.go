package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// ConfigDir returns the XDG-compliant config directory for gmail-cli
// Typically ~/.config/gmail-cli/ on Linux
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, "gmail-cli")
}

// ConfigPath returns the full path to the config file
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json5")
}

// CacheDir returns the XDG-compliant cache directory for gmail-cli
// Typically ~/.cache/gmail-cli/ on Linux (token cache lives here)
func CacheDir() string {
	return filepath.Join(xdg.CacheHome, "gmail-cli")
}

// DataDir returns the XDG-compliant data directory for gmail-cli
// Typically ~/.local/share/gmail-cli/ on Linux (encrypted credential fallback)
func DataDir() string {
	return filepath.Join(xdg.DataHome, "gmail-cli")
}
