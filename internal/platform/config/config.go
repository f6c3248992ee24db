package config

import (
	"os"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr          string
	MetricsAddr   string
	JWTSigningKey string
	AdminKeyHash  string
	DatabaseURL   string
	AuditBuffer   int
	TxTimeout     time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("CARESURE_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	metricsAddr := os.Getenv("CARESURE_METRICS_ADDR")
	if metricsAddr == "" {
		metricsAddr = ":9090"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	txTimeout := 5 * time.Second
	if v := os.Getenv("TX_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			txTimeout = d
		}
	}

	auditBuffer := 0
	if os.Getenv("AUDIT_ASYNC") == "true" {
		auditBuffer = 1024
	}

	return Server{
		Addr:          addr,
		MetricsAddr:   metricsAddr,
		JWTSigningKey: jwtSigningKey,
		AdminKeyHash:  os.Getenv("ADMIN_KEY_HASH"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		AuditBuffer:   auditBuffer,
		TxTimeout:     txTimeout,
	}
}
