package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	MenuModeEnum = "enum"
	MenuModeFree = "free"
)

type DatabaseConfig struct {
	Driver          string        `yaml:"driver"`
	URL             string        `yaml:"url"`
	Filename        string        `yaml:"filename"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// BusinessHours bounds the bookable start times. CloseInclusive admits a
// booking exactly at CloseHour:00.
type BusinessHours struct {
	OpenHour       int  `yaml:"open_hour"`
	CloseHour      int  `yaml:"close_hour"`
	CloseInclusive bool `yaml:"close_inclusive"`
}

type MenuItem struct {
	Key      string `yaml:"key" json:"key"`
	Name     string `yaml:"name" json:"name"`
	Price    int    `yaml:"price" json:"price"`
	Category string `yaml:"category" json:"category"`
}

type MenuConfig struct {
	Mode  string     `yaml:"mode"`
	Items []MenuItem `yaml:"items"`
}

type ReminderConfig struct {
	Cron        string `yaml:"cron"`
	PhoneRegion string `yaml:"phone_region"`
}

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

func (t TwilioConfig) Enabled() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.FromNumber != ""
}

type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

func (s SendGridConfig) Enabled() bool {
	return s.APIKey != "" && s.FromEmail != ""
}

type AuthConfig struct {
	JWTSecret         string
	JWTExpiryHours    int
	AdminEmail        string
	AdminPasswordHash string
}

type Config struct {
	App struct {
		Name           string   `yaml:"name"`
		Environment    string   `yaml:"environment"`
		Port           string   `yaml:"port"`
		Timezone       string   `yaml:"timezone"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"app"`

	Database      DatabaseConfig `yaml:"database"`
	BusinessHours BusinessHours  `yaml:"business_hours"`
	Menu          MenuConfig     `yaml:"menu"`
	Reminders     ReminderConfig `yaml:"reminders"`

	// Secrets only come from the environment.
	Auth     AuthConfig     `yaml:"-"`
	Twilio   TwilioConfig   `yaml:"-"`
	SendGrid SendGridConfig `yaml:"-"`

	ShutdownTimeout time.Duration `yaml:"-"`

	location *time.Location
}

// DefaultMenu is the salon's grand menu.
func DefaultMenu() []MenuItem {
	return []MenuItem{
		{Key: "cut", Name: "Cut (with blow)", Price: 3600, Category: "grand"},
		{Key: "color", Name: "Hair color", Price: 4500, Category: "grand"},
		{Key: "perm", Name: "Perm (cut separate)", Price: 3600, Category: "grand"},
		{Key: "treatment", Name: "Head spa / treatment", Price: 3000, Category: "grand"},
		{Key: "other", Name: "Other (kimono dressing, set, straightening)", Price: 0, Category: "other"},
	}
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	cfg := &Config{}
	cfg.App.Name = "natura-salon"
	cfg.App.Environment = "development"
	cfg.App.Port = "8080"
	cfg.App.Timezone = "Asia/Tokyo"
	cfg.App.AllowedOrigins = []string{"http://localhost:3000"}
	cfg.Database = DatabaseConfig{
		Driver:          DriverMemory,
		Filename:        "salon.db",
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 5 * time.Minute,
	}
	cfg.BusinessHours = BusinessHours{OpenHour: 10, CloseHour: 19}
	cfg.Menu = MenuConfig{Mode: MenuModeEnum, Items: DefaultMenu()}
	cfg.Reminders = ReminderConfig{Cron: "0 9 * * *", PhoneRegion: "JP"}
	cfg.Auth.JWTExpiryHours = 24
	cfg.ShutdownTimeout = 10 * time.Second
	return cfg
}

// Load reads .env, then the optional YAML file named by SALON_CONFIG, then
// applies environment overrides.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("Failed to load .env file")
	}

	cfg := Default()

	if path := os.Getenv("SALON_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := cfg.parseYAML(data); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) parseYAML(data []byte) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("error parsing config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.App.Port = getEnv("PORT", c.App.Port)
	c.App.Environment = getEnv("APP_ENV", c.App.Environment)
	c.App.Timezone = getEnv("SALON_TIMEZONE", c.App.Timezone)
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		c.App.AllowedOrigins = splitList(origins)
	}

	c.Database.Driver = getEnv("STORE_DRIVER", c.Database.Driver)
	c.Database.URL = getEnv("DB_URL", c.Database.URL)
	c.Database.Filename = getEnv("SQLITE_PATH", c.Database.Filename)
	c.Database.MaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", c.Database.MaxOpenConns)
	c.Database.MaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", c.Database.MaxIdleConns)
	c.Database.ConnMaxLifetime = getEnvDuration("DB_CONN_MAX_LIFETIME", c.Database.ConnMaxLifetime)

	c.BusinessHours.CloseInclusive = getEnvBool("CLOSE_INCLUSIVE", c.BusinessHours.CloseInclusive)
	c.Menu.Mode = getEnv("MENU_MODE", c.Menu.Mode)

	c.Reminders.Cron = getEnv("REMINDER_CRON", c.Reminders.Cron)
	c.Reminders.PhoneRegion = getEnv("PHONE_REGION", c.Reminders.PhoneRegion)

	c.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	c.Auth.JWTExpiryHours = getEnvInt("JWT_EXPIRY_HOURS", c.Auth.JWTExpiryHours)
	c.Auth.AdminEmail = os.Getenv("ADMIN_EMAIL")
	c.Auth.AdminPasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")

	c.Twilio = TwilioConfig{
		AccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		AuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		FromNumber: os.Getenv("TWILIO_PHONE_NUMBER"),
	}
	c.SendGrid = SendGridConfig{
		APIKey:    os.Getenv("SENDGRID_API_KEY"),
		FromEmail: os.Getenv("SENDGRID_FROM_EMAIL"),
		FromName:  getEnv("SENDGRID_FROM_NAME", c.App.Name),
	}
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DB_URL is required for the postgres driver")
		}
	case DriverSQLite:
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported store driver: %s", c.Database.Driver)
	}

	h := c.BusinessHours
	if h.OpenHour < 0 || h.CloseHour > 24 || h.OpenHour >= h.CloseHour {
		return fmt.Errorf("invalid business hours: %d-%d", h.OpenHour, h.CloseHour)
	}

	switch c.Menu.Mode {
	case MenuModeFree:
	case MenuModeEnum:
		if len(c.Menu.Items) == 0 {
			return fmt.Errorf("enum menu mode needs at least one menu item")
		}
		for _, item := range c.Menu.Items {
			if strings.TrimSpace(item.Key) == "" {
				return fmt.Errorf("menu item %q has no key", item.Name)
			}
		}
	default:
		return fmt.Errorf("unsupported menu mode: %s", c.Menu.Mode)
	}

	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.App.Timezone, err)
	}
	c.location = loc

	return nil
}

// Location is the salon's local timezone. It falls back to UTC before Validate.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// MenuKeys returns the accepted menu values, or nil when any text is allowed.
func (c *Config) MenuKeys() []string {
	if c.Menu.Mode != MenuModeEnum {
		return nil
	}
	keys := make([]string, 0, len(c.Menu.Items))
	for _, item := range c.Menu.Items {
		keys = append(keys, item.Key)
	}
	return keys
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
