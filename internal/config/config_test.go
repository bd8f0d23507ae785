package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port == "" {
		t.Error("Port default missing")
	}
	if cfg.Store.Type == "" {
		t.Error("Store.Type default missing")
	}
	if cfg.Store.KeyAttribute != "id" {
		t.Errorf("Store.KeyAttribute = %q, want id", cfg.Store.KeyAttribute)
	}
	if cfg.RateLimit.RequestsPerSecond <= 0 {
		t.Errorf("RateLimit.RequestsPerSecond = %v, want positive default", cfg.RateLimit.RequestsPerSecond)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("STORE_TYPE", "memory")
	t.Setenv("STORE_KEY_ATTRIBUTE", "pk")
	t.Setenv("PORT", "9999")
	t.Setenv("AUTH_ENABLED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Store.Type != "memory" {
		t.Errorf("Store.Type = %q, want memory", cfg.Store.Type)
	}
	if cfg.Store.KeyAttribute != "pk" {
		t.Errorf("Store.KeyAttribute = %q, want pk", cfg.Store.KeyAttribute)
	}
	if cfg.Port != "9999" {
		t.Errorf("Port = %q, want 9999", cfg.Port)
	}
	if !cfg.Auth.Enabled {
		t.Error("Auth.Enabled = false, want true")
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STRING", "value")
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_BAD_INT", "nope")

	if got := GetEnv("TEST_STRING", "fallback"); got != "value" {
		t.Errorf("GetEnv() = %q", got)
	}
	if got := GetEnv("TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("GetEnv() fallback = %q", got)
	}
	if got := GetEnvAsInt("TEST_INT", 0); got != 42 {
		t.Errorf("GetEnvAsInt() = %d", got)
	}
	if got := GetEnvAsInt("TEST_BAD_INT", 7); got != 7 {
		t.Errorf("GetEnvAsInt() bad value = %d, want fallback", got)
	}
	if got := GetEnvAsBool("TEST_BOOL", false); !got {
		t.Error("GetEnvAsBool() = false, want true")
	}
}

func TestIsRunningInLambda(t *testing.T) {
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "")
	if isRunningInLambda() {
		t.Error("isRunningInLambda() = true without function name")
	}

	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "table-ops-dispatch")
	if !isRunningInLambda() {
		t.Error("isRunningInLambda() = false with function name set")
	}
}
