package config

import (
	"os"
	"testing"
)

func TestLoad_RequiresBackendBaseURL(t *testing.T) {
	os.Unsetenv("BACKEND_BASE_URL")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error when BACKEND_BASE_URL is missing")
	}
}

func TestLoad_WithBackendBaseURL(t *testing.T) {
	os.Setenv("BACKEND_BASE_URL", "https://admin.onehealth.example/api")
	defer os.Unsetenv("BACKEND_BASE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BackendBaseURL != "https://admin.onehealth.example/api" {
		t.Errorf("expected BACKEND_BASE_URL to be set, got %s", cfg.BackendBaseURL)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}

	if cfg.FrontendURL != "http://localhost:3000" {
		t.Errorf("expected default frontend origin, got %s", cfg.FrontendURL)
	}

	if cfg.NotificationFile != "./data/notifications.json" {
		t.Errorf("expected default notification file, got %s", cfg.NotificationFile)
	}
}

func TestLoad_TrimsTrailingSlash(t *testing.T) {
	os.Setenv("BACKEND_BASE_URL", "https://admin.onehealth.example/api/")
	defer os.Unsetenv("BACKEND_BASE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BackendBaseURL != "https://admin.onehealth.example/api" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.BackendBaseURL)
	}
}

func TestConfig_IsDev(t *testing.T) {
	c := &Config{Env: "development"}
	if !c.IsDev() {
		t.Error("expected IsDev() to return true for development")
	}

	c.Env = "production"
	if c.IsDev() {
		t.Error("expected IsDev() to return false for production")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid http", Config{BackendBaseURL: "http://localhost:9000"}, false},
		{"valid https", Config{BackendBaseURL: "https://admin.onehealth.example"}, false},
		{"no scheme", Config{BackendBaseURL: "admin.onehealth.example"}, true},
		{"ftp scheme", Config{BackendBaseURL: "ftp://admin.onehealth.example"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr && err == nil {
				t.Errorf("expected error for %q", tt.cfg.BackendBaseURL)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
