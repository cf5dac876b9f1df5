package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jask/dualpick/core/filtering"
	"github.com/jask/dualpick/core/selection"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Widget   WidgetConfig
	UI       UIConfig
	Redis    RedisConfig
	Server   ServerConfig
	Log      LogConfig
	// Keys maps an action name to the keys that replace its defaults.
	Keys map[string][]string
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// WidgetConfig holds the per-instance picker options.
type WidgetConfig struct {
	AllowOrder   bool   `mapstructure:"allow_order"`
	AllowMoveAll bool   `mapstructure:"allow_move_all"`
	Vertical     bool   `mapstructure:"vertical"`
	Filter       bool   `mapstructure:"filter"`
	CustomClass  string `mapstructure:"custom_class"`
	Match        string `mapstructure:"match"`
	WorkerScript string `mapstructure:"worker_script"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Locale string
}

// RedisConfig selects the redis selection binding when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// ServerConfig holds the HTTP adapter settings.
type ServerConfig struct {
	Addr string
}

// LogConfig holds logger settings.
type LogConfig struct {
	File    string
	Verbose bool
}

// Selection converts the widget options into the store configuration. An
// unknown match mode is logged and replaced by substring matching.
func (w WidgetConfig) Selection(logger *zap.Logger) selection.Config {
	mode, err := filtering.ParseMatchMode(w.Match)
	if err != nil {
		if logger != nil {
			logger.Warn("invalid widget.match, using substring", zap.String("match", w.Match), zap.Error(err))
		}
		mode = filtering.MatchSubstring
	}
	return selection.Config{
		AllowOrder:   w.AllowOrder,
		AllowMoveAll: w.AllowMoveAll,
		Vertical:     w.Vertical,
		Filter:       w.Filter,
		CustomClass:  w.CustomClass,
		Match:        mode,
	}
}

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "dualpick")
}

// Path returns the config file location. DUALPICK_CONFIG overrides it.
func Path() string {
	if p := os.Getenv("DUALPICK_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "dualpick", "config.toml")
}

// Load reads configuration from file and env. Env var overrides use prefix DUALPICK_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("database.path", filepath.Join(dataDir(), "dualpick.db"))
	v.SetDefault("widget.allow_order", true)
	v.SetDefault("widget.allow_move_all", true)
	v.SetDefault("widget.vertical", false)
	v.SetDefault("widget.filter", true)
	v.SetDefault("widget.custom_class", "")
	v.SetDefault("widget.match", filtering.MatchSubstring.String())
	v.SetDefault("widget.worker_script", "")
	v.SetDefault("ui.locale", "en")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("log.file", filepath.Join(dataDir(), "dualpick.log"))
	v.SetDefault("log.verbose", false)

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix("DUALPICK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("widget.allow_order", cfg.Widget.AllowOrder)
	v.Set("widget.allow_move_all", cfg.Widget.AllowMoveAll)
	v.Set("widget.vertical", cfg.Widget.Vertical)
	v.Set("widget.filter", cfg.Widget.Filter)
	v.Set("widget.custom_class", cfg.Widget.CustomClass)
	v.Set("widget.match", cfg.Widget.Match)
	v.Set("widget.worker_script", cfg.Widget.WorkerScript)
	v.Set("ui.locale", cfg.UI.Locale)
	v.Set("redis.addr", cfg.Redis.Addr)
	v.Set("redis.db", cfg.Redis.DB)
	v.Set("server.addr", cfg.Server.Addr)
	v.Set("log.file", cfg.Log.File)
	v.Set("log.verbose", cfg.Log.Verbose)
	for action, keys := range cfg.Keys {
		v.Set("keys."+action, keys)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
