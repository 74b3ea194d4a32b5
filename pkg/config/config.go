package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "./config.yaml"

type Config struct {
	App      App      `yaml:"app"`
	Database Database `yaml:"database"`
	Allows   Allows   `yaml:"allows"`
	Auth     Auth     `yaml:"auth"`
	Limits   Limits   `yaml:"limits"`
	Mail     Mail     `yaml:"mail"`
	Log      Log      `yaml:"log"`
}

type App struct {
	Name    string `yaml:"name"`
	Port    string `yaml:"port"`
	Host    string `yaml:"host"`
	Mode    string `yaml:"mode"`
	Version string `yaml:"version"`
}

type Database struct {
	Driver string `yaml:"driver"`
	Host   string `yaml:"host"`
	Port   string `yaml:"port"`
	User   string `yaml:"user"`
	Pass   string `yaml:"pass"`
	Name   string `yaml:"name"`
	// Path is the sqlite database file, used when Driver is sqlite.
	Path string `yaml:"path"`
}

type Allows struct {
	Methods []string `yaml:"methods"`
	Origins []string `yaml:"origins"`
	Headers []string `yaml:"headers"`
	// TrustedProxies lists the proxy IPs or CIDRs whose forwarding headers set the client IP.
	// Empty means the socket peer is always the client.
	TrustedProxies []string `yaml:"trusted_proxies"`
}

type Auth struct {
	Secret     string        `yaml:"secret"`
	TokenTTL   time.Duration `yaml:"token_ttl"`
	CodeTTL    time.Duration `yaml:"code_ttl"`
	BcryptCost int           `yaml:"bcrypt_cost"`
}

type Limits struct {
	MaxBodySize   int64         `yaml:"max_body_size"`
	RequestWindow time.Duration `yaml:"request_window"`
	RequestNumber int           `yaml:"request_number"`
}

type Mail struct {
	Driver string `yaml:"driver"`
	From   string `yaml:"from"`
	SMTP   SMTP   `yaml:"smtp"`
	Kafka  Kafka  `yaml:"kafka"`
}

type SMTP struct {
	Host     string        `yaml:"host"`
	Port     int           `yaml:"port"`
	User     string        `yaml:"user"`
	Pass     string        `yaml:"pass"`
	Insecure bool          `yaml:"insecure"`
	Timeout  time.Duration `yaml:"timeout"`
}

type Kafka struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

type Log struct {
	Format string `yaml:"format"`
	Level  string `yaml:"level"`
}

// Default returns the configuration used when no file or environment value overrides a field.
func Default() Config {
	return Config{
		App: App{
			Name:    "taskmanager",
			Port:    "5000",
			Host:    "0.0.0.0",
			Mode:    "release",
			Version: "dev",
		},
		Database: Database{
			Driver: "postgres",
			Host:   "localhost",
			Port:   "5432",
			Name:   "taskmanager",
			Path:   "taskmanager.db",
		},
		Allows: Allows{
			Methods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			Origins: []string{"*"},
			Headers: []string{"Content-Type", "Authorization", "token", "X-Requested-With", "Origin", "Accept"},
		},
		Auth: Auth{
			TokenTTL:   720 * time.Hour,
			CodeTTL:    10 * time.Minute,
			BcryptCost: 10,
		},
		Limits: Limits{
			MaxBodySize:   10 << 20,
			RequestWindow: 200 * time.Minute,
			RequestNumber: 2000,
		},
		Mail: Mail{
			Driver: "log",
			From:   "no-reply@taskmanager.local",
			SMTP: SMTP{
				Port:    587,
				Timeout: 10 * time.Second,
			},
			Kafka: Kafka{
				Topic: "taskmanager.mail",
			},
		},
		Log: Log{
			Format: "json",
			Level:  "info",
		},
	}
}

// InitConfig loads path (a missing file is not an error) over the defaults and then applies
// environment overrides.
func InitConfig(path string) (*Config, error) {
	configs := Default()
	if path == "" {
		path = DefaultPath
	}

	file_name, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	yaml_file, err := os.ReadFile(file_name)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(yaml_file, &configs); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file_name, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read %s: %w", file_name, err)
	}

	if err := configs.applyEnv(); err != nil {
		return nil, err
	}
	return &configs, nil
}

// Override with environment variables if they exist (for Docker)
func (c *Config) applyEnv() error {
	setString(&c.App.Host, "APP_HOST")
	setString(&c.App.Port, "APP_PORT")
	setString(&c.App.Name, "APP_NAME")
	setString(&c.App.Mode, "APP_MODE")

	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Pass, "DB_PASSWORD")
	setString(&c.Database.Name, "DB_NAME")
	setString(&c.Database.Path, "DB_PATH")

	if proxies := os.Getenv("TRUSTED_PROXIES"); proxies != "" {
		c.Allows.TrustedProxies = strings.Split(proxies, ",")
	}

	setString(&c.Auth.Secret, "JWT_SECRET")
	if err := setDuration(&c.Auth.TokenTTL, "TOKEN_TTL"); err != nil {
		return err
	}
	if err := setDuration(&c.Auth.CodeTTL, "CODE_TTL"); err != nil {
		return err
	}
	if err := setInt(&c.Auth.BcryptCost, "BCRYPT_COST"); err != nil {
		return err
	}

	setString(&c.Mail.Driver, "MAIL_DRIVER")
	setString(&c.Mail.From, "MAIL_FROM")
	setString(&c.Mail.SMTP.Host, "SMTP_HOST")
	if err := setInt(&c.Mail.SMTP.Port, "SMTP_PORT"); err != nil {
		return err
	}
	setString(&c.Mail.SMTP.User, "SMTP_USER")
	setString(&c.Mail.SMTP.Pass, "SMTP_PASSWORD")
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		c.Mail.Kafka.Brokers = strings.Split(brokers, ",")
	}
	setString(&c.Mail.Kafka.Topic, "KAFKA_TOPIC")

	setString(&c.Log.Format, "LOG_FORMAT")
	setString(&c.Log.Level, "LOG_LEVEL")
	return nil
}

// Validate reports configuration that would leave the service unsafe or unable to start.
func (c *Config) Validate() error {
	if len(c.Auth.Secret) < 32 {
		return errors.New("auth.secret must be at least 32 bytes (set JWT_SECRET)")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.token_ttl must be positive")
	}
	if c.Auth.CodeTTL <= 0 {
		return errors.New("auth.code_ttl must be positive")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("auth.bcrypt_cost %d out of range [4,31]", c.Auth.BcryptCost)
	}
	for _, proxy := range c.Allows.TrustedProxies {
		if !isIPOrCIDR(strings.TrimSpace(proxy)) {
			return fmt.Errorf("allows.trusted_proxies: %q is not an IP or CIDR", proxy)
		}
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unknown database.driver %q", c.Database.Driver)
	}
	switch c.Mail.Driver {
	case "smtp":
		if c.Mail.SMTP.Host == "" {
			return errors.New("mail.smtp.host is required for the smtp driver")
		}
	case "kafka":
		if len(c.Mail.Kafka.Brokers) == 0 || c.Mail.Kafka.Topic == "" {
			return errors.New("mail.kafka.brokers and mail.kafka.topic are required for the kafka driver")
		}
	case "log":
	default:
		return fmt.Errorf("unknown mail.driver %q", c.Mail.Driver)
	}
	return nil
}

func isIPOrCIDR(s string) bool {
	if _, err := netip.ParseAddr(s); err == nil {
		return true
	}
	_, err := netip.ParsePrefix(s)
	return err == nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
