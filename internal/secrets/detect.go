package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
)

// NewStore creates a Store using the platform-appropriate backend.
// Tries the OS keyring first, falls back to an encrypted file when the
// keyring is unavailable. WSL and headless environments go straight to
// the file fallback because their keyrings are unreliable.
func NewStore() (Store, error) {
	if IsWSL() || IsHeadless() {
		warnOnce("Detected WSL/headless environment, using encrypted file storage")
		store, err := NewFileStore("")
		if err != nil {
			return nil, err
		}
		markWarningsDone()
		return store, nil
	}

	store, err := NewKeyringStore()
	if err != nil {
		warnOnce(fmt.Sprintf("Keyring unavailable (%v), falling back to encrypted file", err))
		fstore, ferr := NewFileStore("")
		if ferr != nil {
			return nil, ferr
		}
		markWarningsDone()
		return fstore, nil
	}

	return store, nil
}

// IsWSL returns true if running under Windows Subsystem for Linux.
func IsWSL() bool {
	if runtime.GOOS != "linux" {
		return false
	}

	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return false
	}

	version := strings.ToLower(string(data))
	return strings.Contains(version, "microsoft") || strings.Contains(version, "wsl")
}

// IsHeadless returns true if running without a display server.
// Only applicable on Linux; macOS and Windows are assumed to have GUI.
func IsHeadless() bool {
	if runtime.GOOS != "linux" {
		return false
	}

	return os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == ""
}

// warnOnce prints a message to stderr, but only the first time.
// Subsequent invocations are suppressed via a marker file.
// Set GMAIL_CLI_QUIET=1 to suppress entirely.
func warnOnce(msg string) {
	if quietMode() || warningShown() {
		return
	}
	fmt.Fprintln(os.Stderr, msg)
}

// markWarningsDone persists the marker so future commands stay quiet.
func markWarningsDone() {
	if !warningShown() {
		_ = os.WriteFile(warningMarkerPath(), []byte("1"), 0600)
	}
}

func warningShown() bool {
	_, err := os.Stat(warningMarkerPath())
	return err == nil
}

func warningMarkerPath() string {
	return filepath.Join(xdg.DataHome, "gmail-cli", ".file-store-warning-shown")
}

func quietMode() bool {
	v := os.Getenv("GMAIL_CLI_QUIET")
	return v == "1" || v == "true"
}
