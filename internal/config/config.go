package config

import (
	"encoding/json"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server     ServerConfig     `json:"server"`
	Database   DatabaseConfig   `json:"database"`
	Redis      RedisConfig      `json:"redis"`
	Storefront StorefrontConfig `json:"storefront"`
}

type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

type DatabaseConfig struct {
	Host           string `json:"host"`
	Port           int    `json:"port"`
	User           string `json:"user"`
	Password       string `json:"password"`
	DBName         string `json:"dbname"`
	SSLMode        string `json:"sslmode"`
	MigrationsPath string `json:"migrations_path"`
}

type RedisConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

// StorefrontConfig carries the storefront-facing knobs: the origin used to
// absolutize relative image paths, the placeholder for products without an
// image, the storage key the cart lives under, and display timing.
type StorefrontConfig struct {
	Origin                 string `json:"origin"`
	PlaceholderImage       string `json:"placeholder_image"`
	CartKey                string `json:"cart_key"`
	ToastTTLMillis         int    `json:"toast_ttl_ms"`
	JanitorIntervalSeconds int    `json:"janitor_interval_seconds"`
}

func (c StorefrontConfig) ToastTTL() time.Duration {
	return time.Duration(c.ToastTTLMillis) * time.Millisecond
}

func (c StorefrontConfig) JanitorInterval() time.Duration {
	return time.Duration(c.JanitorIntervalSeconds) * time.Second
}

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	applyDefaults(&config)

	return &config, nil
}

func applyDefaults(c *Config) {
	if c.Storefront.PlaceholderImage == "" {
		c.Storefront.PlaceholderImage = "/images/products/placeholder.png"
	}
	if c.Storefront.CartKey == "" {
		c.Storefront.CartKey = "local_cart"
	}
	if c.Storefront.ToastTTLMillis <= 0 {
		c.Storefront.ToastTTLMillis = 3500
	}
	if c.Storefront.JanitorIntervalSeconds <= 0 {
		c.Storefront.JanitorIntervalSeconds = 30
	}
}

func (c *DatabaseConfig) GetDSN() string {
	return "host=" + c.Host +
		" port=" + strconv.Itoa(c.Port) +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}
