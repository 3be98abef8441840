package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

type Config struct {
	AppPort       string
	PublicBaseURL string

	DBDriver    string
	SQLitePath  string
	AutoMigrate bool

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs  int
	WizardTTLSecs int

	LogLevel  string
	LogFormat string

	UploadMaxSizeMB    int
	UploadAllowedTypes []string
	UploadMultiple     bool

	SESRegion string
	SESSender string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getbool(k string, d bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load reads the environment, after merging an optional .env file from the
// working directory. Variables already set in the environment win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppPort:       getenv("APP_PORT", "8080"),
		PublicBaseURL: strings.TrimRight(getenv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),

		DBDriver:    strings.ToLower(getenv("DB_DRIVER", DriverMySQL)),
		SQLitePath:  getenv("SQLITE_PATH", "rental.db"),
		AutoMigrate: getbool("AUTO_MIGRATE", true),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "rental"),
		MySQLUser: getenv("MYSQL_USER", "rental"),
		MySQLPass: getenv("MYSQL_PASS", "rental"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:   getint("REDIS_DB", 0),

		IdempTTLSecs:  getint("IDEMPOTENCY_TTL_SECONDS", 300),
		WizardTTLSecs: getint("WIZARD_TTL_SECONDS", 7200),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "json"),

		UploadMaxSizeMB:    getint("UPLOAD_MAX_SIZE_MB", 5),
		UploadAllowedTypes: splitList(getenv("UPLOAD_ALLOWED_TYPES", "image/jpeg,image/png,application/pdf")),
		UploadMultiple:     getbool("UPLOAD_MULTIPLE", true),

		SESRegion: getenv("SES_REGION", "us-east-1"),
		SESSender: os.Getenv("SES_SENDER"),
	}
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case DriverMySQL:
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.RedisAddr == "" {
		return errors.New("missing REDIS_ADDR")
	}
	if c.IdempTTLSecs <= 0 || c.WizardTTLSecs <= 0 {
		return errors.New("IDEMPOTENCY_TTL_SECONDS and WIZARD_TTL_SECONDS must be positive")
	}
	if c.UploadMaxSizeMB <= 0 {
		return errors.New("UPLOAD_MAX_SIZE_MB must be positive")
	}
	if len(c.UploadAllowedTypes) == 0 {
		return errors.New("UPLOAD_ALLOWED_TYPES must list at least one media type")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
