package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel          string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort          string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort        string        `yaml:"socket-port" env:"SOCKET_PORT" env-default:"7000"`
	Redis             Redis         `yaml:"redis"`
	GoogleOAuth       GoogleOAuth   `yaml:"google-oauth"`
	SQLiteStoragePath string        `yaml:"sqlite-storage-path" env:"SQLITE_STORAGE_PATH" env-default:"./users.db"`
	JWTSecretKey      string        `yaml:"jwt-secret-key" env:"JWT_SECRET_KEY" env-required:"true"`
	JWTTTL            time.Duration `yaml:"jwt-ttl" env:"JWT_TTL" env-default:"24h"`
	SessionSecret     string        `yaml:"session-secret" env:"SESSION_SECRET" env-required:"true"`
	Match             Match         `yaml:"match"`
	Sweeper           Sweeper       `yaml:"sweeper"`
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type GoogleOAuth struct {
	ClientID     string   `yaml:"client-id" env:"GOOGLE_CLIENT_ID" env-default:""`
	ClientSecret string   `yaml:"client-secret" env:"GOOGLE_CLIENT_SECRET" env-default:""`
	RedirectURL  string   `yaml:"redirect-url" env:"GOOGLE_REDIRECT_URL" env-default:""`
	Scopes       []string `yaml:"scopes" env-default:"openid,email,profile"`
}

type Match struct {
	MaxRounds int `yaml:"max-rounds" env:"MATCH_MAX_ROUNDS" env-default:"5"`
}

type Sweeper struct {
	IdleTimeout time.Duration `yaml:"idle-timeout" env:"SWEEPER_IDLE_TIMEOUT" env-default:"30m"`
	Interval    time.Duration `yaml:"interval" env:"SWEEPER_INTERVAL" env-default:"1m"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" || that.Port == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// Enabled reports whether Google login is configured.
func (that *GoogleOAuth) Enabled() bool {
	return that.ClientID != "" && that.ClientSecret != "" && that.RedirectURL != ""
}
