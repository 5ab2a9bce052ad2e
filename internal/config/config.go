package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-BeautyBookingService/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	PaymentGateway PaymentGatewayConfig `toml:"payment_gateway"`
	CatalogService IntegrationConfig    `toml:"catalog_service"`
	UserService    IntegrationConfig    `toml:"user_service"`
	Notifier       IntegrationConfig    `toml:"notifier"`
	Booking        BookingConfig        `toml:"booking"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// PaymentGatewayConfig настройки платёжного шлюза
type PaymentGatewayConfig struct {
	BaseURL            string  `toml:"base_url"`
	SecretKey          string  `toml:"secret_key"`
	PlatformFeePercent float64 `toml:"platform_fee_percent"` // комиссия площадки, % от суммы платежа
	SuccessURL         string  `toml:"success_url"`
	CancelURL          string  `toml:"cancel_url"`
	Timeout            int     `toml:"timeout"` // секунды
}

// IntegrationConfig настройки HTTP клиента внешнего сервиса
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// BookingConfig бизнес-настройки бронирования
type BookingConfig struct {
	MinBookingNoticeMinutes int `toml:"min_booking_notice_minutes"`
}

// Load читает и валидирует конфигурацию из toml файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.PaymentGateway.PlatformFeePercent == 0 {
		c.PaymentGateway.PlatformFeePercent = domain.DefaultPlatformFeePercent
	}
	if c.Booking.MinBookingNoticeMinutes == 0 {
		c.Booking.MinBookingNoticeMinutes = domain.DefaultMinBookingNoticeMinutes
	}
}

func (c *Config) validate() error {
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database host and dbname are required")
	}
	if c.PaymentGateway.BaseURL == "" || c.PaymentGateway.SecretKey == "" {
		return fmt.Errorf("config: payment_gateway base_url and secret_key are required")
	}
	if c.PaymentGateway.PlatformFeePercent < 0 || c.PaymentGateway.PlatformFeePercent > domain.MaxCommissionPct {
		return fmt.Errorf("config: payment_gateway platform_fee_percent must be in [0, %v]", domain.MaxCommissionPct)
	}
	return nil
}
