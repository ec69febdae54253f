package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:":8081"`
}

type Database struct {
	Host     string `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port     string `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User     string `yaml:"PG_USER" env:"PG_USER" env-required:"true"`
	Password string `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-required:"true"`
	Name     string `yaml:"PG_DBNAME" env:"PG_DBNAME" env-required:"true"`
	SSLMode  string `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

// BookingBackend is the remote REST service that owns hotels, bookings and
// business rules. This service only fronts it.
type BookingBackend struct {
	BaseURL string `yaml:"BOOKING_API_URL" env:"BOOKING_API_URL" env-required:"true"`
}

type InvoiceService struct {
	BaseURL string `yaml:"INVOICE_API_URL" env:"INVOICE_API_URL" env-default:""`
}

type CacheConfig struct {
	HotelTTL   time.Duration `yaml:"HOTEL_CACHE_TTL" env:"HOTEL_CACHE_TTL" env-default:"5m"`
	DefaultTTL time.Duration `yaml:"DEFAULT_CACHE_TTL" env:"DEFAULT_CACHE_TTL" env-default:"1m"`
}

type Security struct {
	JWTKey string `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
}

type SendGrid struct {
	APIKey    string `yaml:"SENDGRID_API_KEY" env:"SENDGRID_API_KEY" env-default:""`
	FromEmail string `yaml:"SENDGRID_FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"bookings@hotelbooking.example"`
	FromName  string `yaml:"SENDGRID_FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"Hotel Booking"`
}

type Config struct {
	Env            string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer     `yaml:"http_server"`
	Database       Database       `yaml:"database"`
	RedisConnect   RedisConnect   `yaml:"redis"`
	BookingBackend BookingBackend `yaml:"booking_backend"`
	InvoiceService InvoiceService `yaml:"invoice_service"`
	Cache          CacheConfig    `yaml:"cache"`
	Security       Security       `yaml:"security"`
	SendGrid       SendGrid       `yaml:"sendgrid"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			log.Fatal("Config path is not set")
		}

	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	err := cleanenv.ReadConfig(configPath, &cfg)

	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return &cfg
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s", r.Username, r.Password, r.Host, r.Port)
}
