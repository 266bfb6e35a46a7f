// internal/config/config.go
package config

import (
	"log"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DatabaseConfig struct {
	// Path of the local sqlite file holding the schedule history, the
	// offline queue and UI preferences.
	Path string `mapstructure:"path"`
}

type RemoteConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type SyncConfig struct {
	// DebounceMS is the trailing quiet window before an ordinary increment
	// is flushed to the remote store.
	DebounceMS int `mapstructure:"debounce_ms"`
	// DrainIntervalSeconds is the outbox retry cadence. The UI additionally
	// triggers drains on its connectivity-restored and foreground events.
	DrainIntervalSeconds int `mapstructure:"drain_interval_seconds"`
	// AdvanceDelayMS is the auto-advance delay hint returned on completion.
	AdvanceDelayMS int `mapstructure:"advance_delay_ms"`
}

type StatsConfig struct {
	HeatmapWindowDays int `mapstructure:"heatmap_window_days"`
}

type JWTConfig struct {
	SecretKey string `mapstructure:"secret_key"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Remote   RemoteConfig   `mapstructure:"remote"`
	Sync     SyncConfig     `mapstructure:"sync"`
	Stats    StatsConfig    `mapstructure:"stats"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("remote.base_url", "REMOTE_BASE_URL")
	viper.BindEnv("remote.api_key", "REMOTE_API_KEY")
	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using defaults and environment variables.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	if Cfg.Server.Port == "" {
		Cfg.Server.Port = DefaultServerPort
	}
	if Cfg.Log.Level == "" {
		Cfg.Log.Level = DefaultLogLevel
	}
	if Cfg.Database.Path == "" {
		Cfg.Database.Path = DefaultDatabasePath
	}
	if Cfg.Remote.TimeoutSeconds <= 0 {
		Cfg.Remote.TimeoutSeconds = DefaultRemoteTimeoutSeconds
	}
	if Cfg.Sync.DebounceMS <= 0 {
		Cfg.Sync.DebounceMS = DefaultDebounceMS
	}
	if Cfg.Sync.DrainIntervalSeconds <= 0 {
		Cfg.Sync.DrainIntervalSeconds = DefaultDrainIntervalSeconds
	}
	if Cfg.Sync.AdvanceDelayMS <= 0 {
		Cfg.Sync.AdvanceDelayMS = DefaultAdvanceDelayMS
	}
	if Cfg.Stats.HeatmapWindowDays <= 0 {
		Cfg.Stats.HeatmapWindowDays = DefaultHeatmapWindowDays
	}
	if Cfg.Remote.BaseURL == "" {
		log.Println("Warning: remote base URL is not set; all writes will queue locally.")
	}

	log.Println("Config loaded successfully")
	return nil
}
