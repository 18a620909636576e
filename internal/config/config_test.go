// internal/config/config_test.go
package config

import (
	"testing"
	"time"
)

func validTestConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080"},
		Database: DatabaseConfig{Host: "localhost", Name: "retailops_db", User: "retailops_user"},
		Redis:    RedisConfig{Host: "localhost"},
		JWT:      JWTConfig{Secret: "0123456789abcdef0123456789abcdef"},
		Estimator: EstimatorConfig{
			CriticalThreshold: 30,
			LowThreshold:      100,
			CacheTTL:          30 * time.Second,
		},
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := validTestConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateEstimatorThresholdBounds(t *testing.T) {
	low := validTestConfig()
	low.Estimator.CriticalThreshold = 19
	if err := low.Validate(); err == nil {
		t.Fatal("expected error for critical threshold below 20")
	}

	high := validTestConfig()
	high.Estimator.CriticalThreshold = 51
	if err := high.Validate(); err == nil {
		t.Fatal("expected error for critical threshold above 50")
	}

	edge := validTestConfig()
	edge.Estimator.CriticalThreshold = 20
	if err := edge.Validate(); err != nil {
		t.Fatalf("expected 20 to be accepted, got %v", err)
	}
	edge.Estimator.CriticalThreshold = 50
	if err := edge.Validate(); err != nil {
		t.Fatalf("expected 50 to be accepted, got %v", err)
	}
}

func TestValidateLowMustExceedCritical(t *testing.T) {
	cfg := validTestConfig()
	cfg.Estimator.LowThreshold = 25
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when low threshold is below critical")
	}
}

func TestValidateJWTSecretLength(t *testing.T) {
	cfg := validTestConfig()
	cfg.JWT.Secret = "short"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for short JWT secret")
	}
}

func TestLoadUsesEnvironmentOverrides(t *testing.T) {
	t.Setenv("ESTIMATOR_CRITICAL_THRESHOLD", "42")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Estimator.CriticalThreshold != 42 {
		t.Fatalf("expected threshold 42, got %v", cfg.Estimator.CriticalThreshold)
	}
	if cfg.Estimator.LowThreshold != 100 {
		t.Fatalf("expected default low threshold 100, got %v", cfg.Estimator.LowThreshold)
	}
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := validTestConfig()
	cfg.Database.Port = "5432"
	cfg.Database.Password = "secret"
	cfg.Database.SSLMode = "disable"

	want := "host=localhost port=5432 user=retailops_user password=secret dbname=retailops_db sslmode=disable"
	if got := cfg.GetDatabaseDSN(); got != want {
		t.Fatalf("unexpected DSN: %s", got)
	}
}
