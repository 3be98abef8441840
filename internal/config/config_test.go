package config

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("UPLOAD_ALLOWED_TYPES", "")
	t.Setenv("SES_SENDER", "")

	c := Load()
	if c.DBDriver != DriverMySQL {
		t.Fatalf("DBDriver = %q, want mysql", c.DBDriver)
	}
	if c.UploadMaxSizeMB != 5 || !c.UploadMultiple {
		t.Fatalf("upload defaults = %d/%v", c.UploadMaxSizeMB, c.UploadMultiple)
	}
	if got := strings.Join(c.UploadAllowedTypes, ","); got != "image/jpeg,image/png,application/pdf" {
		t.Fatalf("allowed types = %q", got)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate defaults: %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("WIZARD_TTL_SECONDS", "60")
	t.Setenv("UPLOAD_ALLOWED_TYPES", " application/pdf , ,image/png")
	t.Setenv("UPLOAD_MULTIPLE", "false")
	t.Setenv("PUBLIC_BASE_URL", "https://apply.example.com/")

	c := Load()
	if c.DBDriver != DriverSQLite || c.SQLitePath != "/tmp/x.db" {
		t.Fatalf("driver/path = %q/%q", c.DBDriver, c.SQLitePath)
	}
	if c.RedisDB != 3 || c.WizardTTLSecs != 60 {
		t.Fatalf("redis db/ttl = %d/%d", c.RedisDB, c.WizardTTLSecs)
	}
	if len(c.UploadAllowedTypes) != 2 || c.UploadAllowedTypes[0] != "application/pdf" {
		t.Fatalf("allowed types = %v", c.UploadAllowedTypes)
	}
	if c.UploadMultiple {
		t.Fatal("UploadMultiple should be false")
	}
	if c.PublicBaseURL != "https://apply.example.com" {
		t.Fatalf("PublicBaseURL = %q", c.PublicBaseURL)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	base := func() *Config {
		return &Config{
			AppPort: "8080", DBDriver: DriverMySQL,
			MySQLHost: "h", MySQLPort: "3306", MySQLDB: "d", MySQLUser: "u",
			RedisAddr: "r:6379", IdempTTLSecs: 1, WizardTTLSecs: 1,
			UploadMaxSizeMB: 1, UploadAllowedTypes: []string{"application/pdf"},
		}
	}
	tests := []struct {
		name string
		mut  func(c *Config)
	}{
		{"missing port", func(c *Config) { c.AppPort = "" }},
		{"unknown driver", func(c *Config) { c.DBDriver = "postgres" }},
		{"missing mysql host", func(c *Config) { c.MySQLHost = "" }},
		{"bad mysql port", func(c *Config) { c.MySQLPort = "not-a-port" }},
		{"sqlite no path", func(c *Config) { c.DBDriver = DriverSQLite; c.SQLitePath = "" }},
		{"missing redis", func(c *Config) { c.RedisAddr = "" }},
		{"zero ttl", func(c *Config) { c.WizardTTLSecs = 0 }},
		{"zero upload size", func(c *Config) { c.UploadMaxSizeMB = 0 }},
		{"no upload types", func(c *Config) { c.UploadAllowedTypes = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mut(c)
			if err := c.Validate(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestMySQLDSN(t *testing.T) {
	c := &Config{MySQLUser: "u", MySQLPass: "p", MySQLHost: "db", MySQLPort: "3307", MySQLDB: "rental"}
	want := "u:p@tcp(db:3307)/rental?parseTime=true&charset=utf8mb4,utf8"
	if got := c.MySQLDSN(); got != want {
		t.Fatalf("DSN = %q, want %q", got, want)
	}
}
