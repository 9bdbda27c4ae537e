package dirs

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "clipcatch"

// AppName returns the canonical application name for directory paths.
func AppName() string {
	return appName
}

// ConfigDir returns the app's configuration directory.
// - Linux: $XDG_CONFIG_HOME/clipcatch or ~/.config/clipcatch
// - macOS: ~/Library/Application Support/clipcatch
// - elsewhere: os.UserConfigDir()/clipcatch
func ConfigDir() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support", AppName()), nil
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, AppName()), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", AppName()), nil
	default:
		cfg, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(cfg, AppName()), nil
	}
}

// DataDir returns the app's data directory, which holds the two media
// directories.
// - Linux: $XDG_DATA_HOME/clipcatch or ~/.local/share/clipcatch
// - macOS: ~/Library/Application Support/clipcatch
// - elsewhere: os.UserConfigDir()/clipcatch
func DataDir() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support", AppName()), nil
	case "linux":
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, AppName()), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share", AppName()), nil
	default:
		cfg, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(cfg, AppName()), nil
	}
}

// DownloadsDir returns the fixed directory for raw downloads under dataDir.
func DownloadsDir(dataDir string) string {
	return filepath.Join(dataDir, "downloads")
}

// TrimmedDir returns the fixed directory for trimmed outputs under dataDir.
func TrimmedDir(dataDir string) string {
	return filepath.Join(dataDir, "trimmed")
}

// Ensure creates the directory if it doesn't exist.
func Ensure(path string) error {
	if path == "" {
		return errors.New("empty path")
	}
	return os.MkdirAll(path, 0o755)
}
