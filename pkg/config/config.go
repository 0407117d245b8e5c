package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/smith3v/reply-reminder/pkg/logger"
	"github.com/spf13/viper"
)

const EnvPrefix = "REPLY_REMINDER"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Reminders RemindersConfig `mapstructure:"reminders"`
}

type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	Mode           string        `mapstructure:"mode"` // gin mode: debug, release, test
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"` // sqlite or postgres
	DSN      string `mapstructure:"dsn"`    // empty selects the in-memory sqlite database
	Host     string `mapstructure:"host"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Port     int    `mapstructure:"port"`
	SSLMode  string `mapstructure:"sslmode"`
}

type LoggingConfig struct {
	Level     string `mapstructure:"level"`
	File      string `mapstructure:"file"`
	Format    string `mapstructure:"format"`
	GormLevel string `mapstructure:"gorm_level"`
}

type TelegramConfig struct {
	Token  string `mapstructure:"token"`
	ChatID int64  `mapstructure:"chat_id"`
}

type RemindersConfig struct {
	PollInterval   time.Duration `mapstructure:"poll_interval"`
	AlertThreshold int           `mapstructure:"alert_threshold"`
	RenotifyAfter  time.Duration `mapstructure:"renotify_after"`
	DefaultSnooze  time.Duration `mapstructure:"default_snooze"`
}

var AppConfig Config

func init() {
	AppConfig = Defaults()
}

// Defaults returns the configuration used when no file or environment
// override sets a key.
func Defaults() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		logger.Error("failed to decode default config", "error", err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.request_timeout", 15*time.Second)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "reply_reminder")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.gorm_level", "warn")

	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.chat_id", 0)

	v.SetDefault("reminders.poll_interval", time.Minute)
	v.SetDefault("reminders.alert_threshold", 90)
	v.SetDefault("reminders.renotify_after", time.Hour)
	v.SetDefault("reminders.default_snooze", 3*time.Hour)
}

// LoadConfig reads a JSON config file into AppConfig. A missing file is an
// error unless filename is empty, in which case only defaults, .env and the
// environment apply.
func LoadConfig(filename string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Error("failed to load .env file", "error", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if strings.TrimSpace(filename) != "" {
		v.SetConfigFile(filename)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			logger.Error("failed to read config file", "file", filename, "error", err)
			return err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		logger.Error("failed to decode config file", "error", err)
		return err
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		return err
	}

	AppConfig = cfg
	return nil
}

func (c Config) Validate() error {
	var errs []error
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, errors.New("database.driver must be sqlite or postgres"))
	}
	if c.Reminders.PollInterval <= 0 {
		errs = append(errs, errors.New("reminders.poll_interval must be positive"))
	}
	if c.Reminders.AlertThreshold < 0 || c.Reminders.AlertThreshold > 100 {
		errs = append(errs, errors.New("reminders.alert_threshold must be within 0..100"))
	}
	if c.Reminders.DefaultSnooze <= 0 {
		errs = append(errs, errors.New("reminders.default_snooze must be positive"))
	}
	return errors.Join(errs...)
}
