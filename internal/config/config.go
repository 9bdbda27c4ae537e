// Package config wires Viper to the CLI flags, the config file, and the
// CLIPCATCH_* environment.
package config

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"clipcatch/internal/dirs"
)

// Settings is the resolved runtime configuration shared by the CLI commands
// and the web server.
type Settings struct {
	DataDir      string
	DownloadsDir string
	TrimmedDir   string
	Addr         string
	CookieFile   string
	DLBinary     string
	FFmpegPath   string
	FFprobePath  string
	LogJSON      bool
	Verbose      bool
}

// Init wires Viper with config paths, env, and flag bindings.
// Errors are returned for optional handling by the caller; a missing config
// file is not an error.
func Init(root *cobra.Command) error {
	if cfgDir, err := dirs.ConfigDir(); err == nil {
		_ = dirs.Ensure(cfgDir)
		viper.AddConfigPath(cfgDir)
	}
	viper.SetConfigName("config") // supports config.{yaml|yml|json|toml}

	viper.SetEnvPrefix("CLIPCATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	for _, name := range []string{
		"data-dir", "addr", "cookies", "dl-binary", "ffmpeg", "ffprobe", "log-json", "verbose",
	} {
		key := strings.ReplaceAll(name, "-", "_")
		_ = viper.BindPFlag(key, root.PersistentFlags().Lookup(name))
	}

	_ = viper.ReadInConfig()

	return nil
}

// Resolve builds Settings from Viper state, falling back to the XDG data
// directory when no data dir was configured.
func Resolve() (Settings, error) {
	dataDir := viper.GetString("data_dir")
	if dataDir == "" {
		d, err := dirs.DataDir()
		if err != nil {
			return Settings{}, err
		}
		dataDir = d
	}

	return Settings{
		DataDir:      dataDir,
		DownloadsDir: dirs.DownloadsDir(dataDir),
		TrimmedDir:   dirs.TrimmedDir(dataDir),
		Addr:         viper.GetString("addr"),
		CookieFile:   viper.GetString("cookies"),
		DLBinary:     viper.GetString("dl_binary"),
		FFmpegPath:   viper.GetString("ffmpeg"),
		FFprobePath:  viper.GetString("ffprobe"),
		LogJSON:      viper.GetBool("log_json"),
		Verbose:      viper.GetBool("verbose"),
	}, nil
}
