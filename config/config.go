package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Player  PlayerConfig  `mapstructure:"player"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	RPC     RPCConfig     `mapstructure:"rpc"`
	Archive ArchiveConfig `mapstructure:"archive"`
}

type ServerConfig struct {
	// URL is the base websocket endpoint of the room server, e.g.
	// ws://localhost:8080/rooms. The room code is appended as a path segment.
	URL string `mapstructure:"url"`
	// JoinGuardDelayMS is how long to wait after the connection is
	// established before emitting join. The server needs a moment to finish
	// registering the socket; joining immediately can race that.
	JoinGuardDelayMS int `mapstructure:"join_guard_delay_ms"`
	// JoinTimeoutMS bounds the wait for the joined acknowledgement.
	JoinTimeoutMS int `mapstructure:"join_timeout_ms"`
}

type PlayerConfig struct {
	Nickname string `mapstructure:"nickname"`
	Avatar   string `mapstructure:"avatar"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

type RPCConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

type ArchiveConfig struct {
	Enabled  bool           `mapstructure:"enabled"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

func LoadConfig(path string) (config *Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.url", "ws://localhost:8080/rooms")
	viper.SetDefault("server.join_guard_delay_ms", 100)
	viper.SetDefault("server.join_timeout_ms", 10000)
	viper.SetDefault("metrics.address", ":9120")
	viper.SetDefault("rpc.address", ":9121")

	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		// Defaults cover every key, so a missing file is fine.
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}

// JoinGuardDelay returns the configured guard delay as a duration.
func (c *ServerConfig) JoinGuardDelay() time.Duration {
	return time.Duration(c.JoinGuardDelayMS) * time.Millisecond
}

// JoinTimeout returns the configured join timeout as a duration.
func (c *ServerConfig) JoinTimeout() time.Duration {
	return time.Duration(c.JoinTimeoutMS) * time.Millisecond
}
