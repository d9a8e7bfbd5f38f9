package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, loan policy), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Lending LendingConfig
	Catalog CatalogConfig
	Migrate MigrateConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`

	MaxConns        int32         `envconfig:"DB_MAX_CONNS" default:"20"`
	MinConns        int32         `envconfig:"DB_MIN_CONNS" default:"2"`
	MaxConnLifetime time.Duration `envconfig:"DB_MAX_CONN_LIFETIME" default:"1h"`
	ConnectTimeout  time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"5s"`

	// write transactions
	TxMaxRetries int           `envconfig:"DB_TX_MAX_RETRIES" default:"3"`
	TxRetryBase  time.Duration `envconfig:"DB_TX_RETRY_BASE" default:"100ms"`
	LockTimeout  time.Duration `envconfig:"DB_LOCK_TIMEOUT" default:"2s"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Location,X-Request-ID"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

// Tokens are issued by the identity provider; the service only verifies them.
type JWTConfig struct {
	Secret   string        `envconfig:"JWT_SECRET" required:"true"`
	Issuer   string        `envconfig:"JWT_ISSUER"`
	Duration time.Duration `envconfig:"JWT_DURATION" default:"24h"`
}

type LendingConfig struct {
	LoanPeriod                   time.Duration `envconfig:"LENDING_LOAN_PERIOD" default:"336h"`
	LateFeePerDay                int64         `envconfig:"LENDING_LATE_FEE_PER_DAY" default:"5"`
	PreventDuplicateLoans        bool          `envconfig:"LENDING_PREVENT_DUPLICATE_LOANS" default:"false"`
	PreventDuplicateReservations bool          `envconfig:"LENDING_PREVENT_DUPLICATE_RESERVATIONS" default:"false"`
}

type CatalogConfig struct {
	BaseURL string        `envconfig:"CATALOG_BASE_URL" default:"https://www.googleapis.com/books/v1"`
	APIKey  string        `envconfig:"CATALOG_API_KEY"`
	Timeout time.Duration `envconfig:"CATALOG_TIMEOUT" default:"5s"`
}

type MigrateConfig struct {
	Dir      string `envconfig:"MIGRATE_DIR" default:"file://migrations"`
	AtlasBin string `envconfig:"ATLAS_BIN" default:"atlas"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:            "localhost",
			Port:            "15433", // Test DB port
			User:            "test",
			Password:        "test",
			DBName:          "test_db",
			SSLMode:         "disable",
			TimeZone:        "UTC",
			MaxConns:        10,
			MinConns:        1,
			MaxConnLifetime: time.Hour,
			ConnectTimeout:  5 * time.Second,
			TxMaxRetries:    3,
			TxRetryBase:     10 * time.Millisecond,
			LockTimeout:     2 * time.Second,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-secret-key-for-lending",
			Duration: time.Hour,
		},
		Lending: LendingConfig{
			LoanPeriod:    14 * 24 * time.Hour,
			LateFeePerDay: 5,
		},
		Catalog: CatalogConfig{
			BaseURL: "http://127.0.0.1:0",
			Timeout: time.Second,
		},
		Migrate: MigrateConfig{
			Dir:      "file://migrations",
			AtlasBin: "atlas",
		},
	}
}
