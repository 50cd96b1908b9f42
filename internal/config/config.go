package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env      string `yaml:"env" env:"ENV" env-default:"local" env-description:"Environment" env-choices:"local,dev,prod"`
	ApiPort  int    `yaml:"api_port" env:"API_PORT" env-default:"8080"`
	ApiHost  string `yaml:"api_host" env:"API_HOST" env-default:"localhost"`
	JWT      `yaml:"jwt"`
	Ledger   `yaml:"ledger"`
	Postgres `yaml:"postgres"`
	Kafka    `yaml:"kafka"`
}

type JWT struct {
	Secret string        `yaml:"secret" env:"JWT_SECRET" env-default:"secret42212"`
	TTL    time.Duration `yaml:"ttl" env:"JWT_TTL" env-default:"24h"`
}

// Ledger holds the product limits of the customer directory.
// A MaxCustomers or HistoryLimit below one means unbounded; yaml zero
// falls back to the default, so use -1 there.
type Ledger struct {
	AccountIDBase int64 `yaml:"account_id_base" env-default:"1001"`
	MaxCustomers  int   `yaml:"max_customers" env-default:"50"`
	HistoryLimit  int   `yaml:"history_limit" env-default:"100"`
	BcryptCost    int   `yaml:"bcrypt_cost" env-default:"10"`
}

type Postgres struct {
	Enabled bool   `yaml:"enabled" env:"POSTGRES_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env-default:"localhost"`
	Port    string `yaml:"port" env-default:"5433"`
	User    string `yaml:"user" env-default:"test"`
	Pass    string `yaml:"pass" env:"POSTGRES_PASS" env-default:"12345"`
	Db      string `yaml:"db" env-default:"test_db"`
}

type Kafka struct {
	Enabled bool     `yaml:"enabled" env:"KAFKA_ENABLED" env-default:"false"`
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:"," env-default:"localhost:9092"`
	Topic   string   `yaml:"topic" env-default:"ledger_events"`
}

func MustLoad() *Config {
	// .env is optional, it only seeds CONFIG_PATH and overrides
	_ = godotenv.Load()

	path := fetchConfigPath()

	return MustLoadPath(path)
}

func MustLoadPath(path string) *Config {
	cfg, err := LoadPath(path)
	if err != nil {
		panic(err.Error())
	}

	return cfg
}

func LoadPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &MissingFileError{Path: path}
	}

	var cfg Config

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration built from defaults and environment only.
func Default() (*Config, error) {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return "config file does not exist: " + e.Path
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}

// DSN builds the lib/pq connection string for the journal database.
func (p Postgres) DSN() string {
	return "postgres://" + p.User + ":" + p.Pass + "@" + p.Host + ":" + p.Port + "/" + p.Db + "?sslmode=disable"
}
