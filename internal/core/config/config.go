package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultPath = "./configs/config.local.yaml"

type HTTP struct {
	Host              string
	Port              int
	ReadTimeoutSec    int   `mapstructure:"read_timeout_sec"`
	WriteTimeoutSec   int   `mapstructure:"write_timeout_sec"`
	IdleTimeoutSec    int   `mapstructure:"idle_timeout_sec"`
	RequestTimeoutSec int   `mapstructure:"request_timeout_sec"` // 0 disables
	MaxBodyBytes      int64 `mapstructure:"max_body_bytes"`
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type LogFile struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int `mapstructure:"max_size_mb"`
	MaxBackups int `mapstructure:"max_backups"`
	MaxAgeDays int `mapstructure:"max_age_days"`
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

type JWT struct {
	Secret  string
	Issuer  string
	TTLDays int    `mapstructure:"ttl_days"`
	Header  string // request header carrying the raw token
}

func (j JWT) TTL() time.Duration { return time.Duration(j.TTLDays) * 24 * time.Hour }

type DB struct {
	Driver             string // mongo | postgres | mysql | memory
	DSN                string
	Name               string // mongo database
	Username           string
	Password           string
	MaxOpenConns       int    `mapstructure:"max_open_conns"`
	MaxIdleConns       int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMin int    `mapstructure:"conn_max_lifetime_min"`
	ConnectTimeoutSec  int    `mapstructure:"connect_timeout_sec"`
	AutoMigrate        bool   `mapstructure:"auto_migrate"`
	LogLevel           string `mapstructure:"log_level"`
}

type Config struct {
	App App
	Log Log
	JWT JWT
	DB  DB
}

var drivers = map[string]bool{"mongo": true, "postgres": true, "mysql": true, "memory": true}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "go-gin-mongo-shop")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.read_timeout_sec", 5)
	v.SetDefault("app.http.write_timeout_sec", 10)
	v.SetDefault("app.http.idle_timeout_sec", 60)
	v.SetDefault("app.http.request_timeout_sec", 10)
	v.SetDefault("app.http.max_body_bytes", 16<<20)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file.enable", false)
	v.SetDefault("log.file.filename", "logs/app.log")
	v.SetDefault("log.file.max_size_mb", 100)
	v.SetDefault("log.file.max_backups", 7)
	v.SetDefault("log.file.max_age_days", 30)
	v.SetDefault("log.file.compress", true)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "")
	v.SetDefault("jwt.ttl_days", 365)
	v.SetDefault("jwt.header", "token")

	v.SetDefault("db.driver", "mongo")
	v.SetDefault("db.dsn", "mongodb://127.0.0.1:27017")
	v.SetDefault("db.name", "ecommerceProject")
	v.SetDefault("db.username", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.max_open_conns", 50)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime_min", 30)
	v.SetDefault("db.connect_timeout_sec", 10)
	v.SetDefault("db.auto_migrate", true)
	v.SetDefault("db.log_level", "warn")
}

// Load reads the YAML file at path (or CONFIG_PATH, or the local default)
// and applies APP_* environment overrides. A missing file is fine when no
// path was asked for explicitly.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		explicit = path != ""
	}
	if path == "" {
		path = defaultPath
	}

	if _, err := os.Stat(path); err == nil || explicit {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.DB.Driver = strings.ToLower(strings.TrimSpace(c.DB.Driver))
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.JWT.Secret) == "" {
		errs = append(errs, errors.New("jwt.secret is required (APP_JWT_SECRET)"))
	}
	if c.JWT.TTLDays <= 0 {
		errs = append(errs, errors.New("jwt.ttl_days must be positive"))
	}
	if c.JWT.Header == "" {
		errs = append(errs, errors.New("jwt.header must not be empty"))
	}
	if !drivers[c.DB.Driver] {
		errs = append(errs, fmt.Errorf("db.driver %q is not supported", c.DB.Driver))
	}
	if c.App.HTTP.Port <= 0 || c.App.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("app.http.port %d out of range", c.App.HTTP.Port))
	}
	return errors.Join(errs...)
}
