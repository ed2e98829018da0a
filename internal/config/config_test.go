package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Auth.TokenTTL != 30*time.Minute {
		t.Errorf("expected 30m TTL, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.BcryptCost != bcrypt.DefaultCost {
		t.Errorf("expected default cost, got %d", cfg.Auth.BcryptCost)
	}
	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("expected postgres driver, got %s", cfg.Database.Driver)
	}
	if len(cfg.CORS.AllowedOrigins) != 3 {
		t.Errorf("expected 3 default origins, got %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info level, got %v", cfg.LogLevel)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "9000" || cfg.Auth.TokenTTL != 15*time.Minute || cfg.Auth.BcryptCost != 4 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("expected sqlite driver, got %s", cfg.Database.Driver)
	}
	if strings.Join(cfg.CORS.AllowedOrigins, ",") != "https://a.example,https://b.example" {
		t.Errorf("unexpected origins %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.LogLevel)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing secret", map[string]string{"JWT_SECRET": ""}, "JWT_SECRET is required"},
		{"short secret", map[string]string{"JWT_SECRET": "short"}, "at least 32"},
		{"negative ttl", map[string]string{"JWT_SECRET": testSecret, "TOKEN_TTL": "-1m"}, "TOKEN_TTL"},
		{"bcrypt cost", map[string]string{"JWT_SECRET": testSecret, "BCRYPT_COST": "99"}, "BCRYPT_COST"},
		{"driver", map[string]string{"JWT_SECRET": testSecret, "DB_DRIVER": "mysql"}, "DB_DRIVER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "feedback", SSLMode: "disable"}

	want := "host=db port=5432 user=u password=p dbname=feedback sslmode=disable"
	if got := c.DSN(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
