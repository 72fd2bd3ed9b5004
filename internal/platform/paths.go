package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// defaultAppName is used when no explicit app name is configured.
const defaultAppName = "syssla"

// Paths locates the per-user config file and data directory.
type Paths struct {
	ConfigPath string
	DataDir    string
	DBPath     string
}

// Options selects the app name and dev-mode suffixing for path resolution.
type Options struct {
	AppName string
	DevMode bool
}

// DefaultPaths resolves paths for the default app name.
func DefaultPaths() (Paths, error) {
	return DefaultPathsWithOptions(Options{AppName: defaultAppName})
}

// DefaultPathsWithOptions resolves platform-conventional paths, honoring XDG
// overrides on Linux and the AppData split on Windows. Dev mode isolates state
// under "<app>-dev" so a development build never touches real data.
func DefaultPathsWithOptions(opts Options) (Paths, error) {
	appName := strings.TrimSpace(opts.AppName)
	if appName == "" {
		appName = defaultAppName
	}
	if opts.DevMode {
		appName += "-dev"
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return Paths{}, fmt.Errorf("user config dir: %w", err)
	}
	dataDir := configDir
	if runtime.GOOS == "linux" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return Paths{}, fmt.Errorf("user home dir: %w", homeErr)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	if runtime.GOOS == "windows" {
		if v := strings.TrimSpace(os.Getenv("LOCALAPPDATA")); v != "" {
			dataDir = v
		}
	}

	env := map[string]string{
		"XDG_CONFIG_HOME": os.Getenv("XDG_CONFIG_HOME"),
		"XDG_DATA_HOME":   os.Getenv("XDG_DATA_HOME"),
		"APPDATA":         os.Getenv("APPDATA"),
		"LOCALAPPDATA":    os.Getenv("LOCALAPPDATA"),
	}
	return PathsFor(runtime.GOOS, env, configDir, dataDir, appName)
}

// PathsFor resolves paths from explicit inputs; DefaultPathsWithOptions feeds
// it the live environment, tests feed it fixtures.
func PathsFor(goos string, env map[string]string, userConfigDir, userDataDir, appName string) (Paths, error) {
	if userConfigDir == "" || userDataDir == "" {
		return Paths{}, fmt.Errorf("empty base dirs")
	}
	appName = strings.TrimSpace(appName)
	if appName == "" {
		return Paths{}, fmt.Errorf("empty app name")
	}

	// macOS and anything unlisted keep the os.UserConfigDir defaults.
	configBase := userConfigDir
	dataBase := userDataDir

	switch goos {
	case "linux":
		if v := env["XDG_CONFIG_HOME"]; v != "" {
			configBase = v
		}
		if v := env["XDG_DATA_HOME"]; v != "" {
			dataBase = v
		}
	case "windows":
		if v := env["APPDATA"]; v != "" {
			configBase = v
		}
		if v := env["LOCALAPPDATA"]; v != "" {
			dataBase = v
		}
	}

	appDataDir := filepath.Join(dataBase, appName)
	return Paths{
		ConfigPath: filepath.Join(configBase, appName, "config.toml"),
		DataDir:    appDataDir,
		DBPath:     filepath.Join(appDataDir, appName+".db"),
	}, nil
}
