package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Notifications NotificationsConfig `toml:"notifications"`
	Scheduler     SchedulerConfig     `toml:"scheduler"`
	App           AppConfig           `toml:"app"`
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

// DSN собирает строку подключения PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// NotificationsConfig настройки каналов уведомлений
// Пустые учетные данные Twilio включают preview-режим: сообщения только логируются
type NotificationsConfig struct {
	ExpoPushURL        string `toml:"expo_push_url"`
	TwilioBaseURL      string `toml:"twilio_base_url"`
	TwilioAccountSID   string `toml:"twilio_account_sid"`
	TwilioAuthToken    string `toml:"twilio_auth_token"`
	TwilioWhatsappFrom string `toml:"twilio_whatsapp_from"`
	Timeout            int    `toml:"timeout"` // секунды
}

// SchedulerConfig настройки фоновых задач
type SchedulerConfig struct {
	ReminderInterval int `toml:"reminder_interval"` // секунды
	BillingInterval  int `toml:"billing_interval"`  // секунды
}

// AppConfig прикладные настройки
type AppConfig struct {
	Timezone string `toml:"timezone"` // IANA имя, например America/Guyana
}

// Load читает и парсит TOML конфигурацию
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("server.http_port must be positive")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database.dbname is required")
	}
	if c.App.Timezone == "" {
		return fmt.Errorf("app.timezone is required")
	}
	return nil
}
