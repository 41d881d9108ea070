package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

var (
	// ErrLoadConfig возвращается, когда файл конфигурации не удалось прочитать
	ErrLoadConfig = errors.New("config: failed to load")

	// ErrInvalidConfig возвращается при недопустимых значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid value")
)

// Payment providers
const (
	ProviderMercadoPago = "mercadopago"
	ProviderFake        = "fake"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Booking  BookingConfig  `toml:"booking"`
	Payments PaymentsConfig `toml:"payments"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// URL возвращает строку подключения в формате URL (для golang-migrate)
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}

// RedisConfig настройки Redis (хранилище ожидающих оплаты записей)
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthConfig настройки проверки JWT
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
	Issuer    string `toml:"issuer"`
}

// BookingConfig параметры записи
type BookingConfig struct {
	HorizonDays  int    `toml:"horizon_days"`
	MaxRangeDays int    `toml:"max_range_days"`
	Timezone     string `toml:"timezone"`
}

// Location возвращает часовой пояс, в котором считается "сегодня"
func (b BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

// PaymentsConfig параметры передачи депозита платежному провайдеру
type PaymentsConfig struct {
	Provider          string `toml:"provider"`
	AccessToken       string `toml:"access_token"`
	PublicBaseURL     string `toml:"public_base_url"`
	NotificationURL   string `toml:"notification_url"`
	PendingTTLMinutes int    `toml:"pending_ttl_minutes"`
	Currency          string `toml:"currency"`
}

// PendingTTL срок, в течение которого клиент может оплатить депозит
func (p PaymentsConfig) PendingTTL() time.Duration {
	return time.Duration(p.PendingTTLMinutes) * time.Minute
}

// Load читает конфигурацию из TOML файла, подставляет значения по умолчанию
// и секреты из окружения (.env в текущей директории читается, если есть)
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
	}

	// .env необязателен, переменные окружения процесса имеют приоритет
	_ = godotenv.Load()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "appointments",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "appointment_service",
		},
		Auth: AuthConfig{
			Issuer: "smc-auth",
		},
		Booking: BookingConfig{
			HorizonDays:  30,
			MaxRangeDays: 31,
			Timezone:     "UTC",
		},
		Payments: PaymentsConfig{
			Provider:          ProviderFake,
			PublicBaseURL:     "http://localhost:8080",
			PendingTTLMinutes: 30,
			Currency:          "ARS",
		},
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("MP_ACCESS_TOKEN"); v != "" {
		c.Payments.AccessToken = v
	}
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Port <= 0 {
		return fmt.Errorf("%w: database.port=%d", ErrInvalidConfig, c.Database.Port)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret is required (or JWT_SECRET)", ErrInvalidConfig)
	}
	if c.Booking.HorizonDays <= 0 {
		return fmt.Errorf("%w: booking.horizon_days must be positive", ErrInvalidConfig)
	}
	if c.Booking.MaxRangeDays <= 0 {
		return fmt.Errorf("%w: booking.max_range_days must be positive", ErrInvalidConfig)
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone=%q: %v", ErrInvalidConfig, c.Booking.Timezone, err)
	}
	if c.Payments.PendingTTLMinutes <= 0 {
		return fmt.Errorf("%w: payments.pending_ttl_minutes must be positive", ErrInvalidConfig)
	}

	switch c.Payments.Provider {
	case ProviderFake:
	case ProviderMercadoPago:
		if c.Payments.AccessToken == "" {
			return fmt.Errorf("%w: payments.access_token is required for mercadopago (or MP_ACCESS_TOKEN)", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown payments.provider %q", ErrInvalidConfig, c.Payments.Provider)
	}

	return nil
}
