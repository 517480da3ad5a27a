package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
}

// Upstream is the remote ordering backend this service fronts.
type Upstream struct {
	BaseURL string        `yaml:"base_url" env:"UPSTREAM_BASE_URL" env-required:"true"`
	Timeout time.Duration `yaml:"timeout" env:"UPSTREAM_TIMEOUT" env-default:"10s"`
}

type Security struct {
	JWTKey string `yaml:"jwt_key" env:"JWT_KEY" env-required:"true"`
}

// CartStore decides whether carts survive a restart. "memory" keeps the
// session-only behaviour of the mobile app; "redis" persists carts with TTL.
type CartStore struct {
	Backend string        `yaml:"backend" env:"CART_STORE" env-default:"memory"`
	TTL     time.Duration `yaml:"ttl" env:"CART_TTL" env-default:"24h"`
}

type RedisConnect struct {
	Addr     string `yaml:"REDIS_ADDR" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

func (r *RedisConnect) GetDSN() string {
	return "redis://" + r.Addr
}

type Telemetry struct {
	Enabled      bool   `yaml:"enabled" env:"OTEL_ENABLED" env-default:"false"`
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"localhost:4318"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
}

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer `yaml:"http_server"`
	Upstream   Upstream     `yaml:"upstream"`
	Security   Security     `yaml:"security"`
	CartStore  CartStore    `yaml:"cart_store"`
	Redis      RedisConnect `yaml:"redis"`
	Telemetry  Telemetry    `yaml:"telemetry"`
	CORS       CORS         `yaml:"cors"`
}

func MustLoad() *Config {

	var configPath string

	configPath = os.Getenv("CONFIG_PATH")

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
