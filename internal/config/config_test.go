package config

import (
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_FILE", "")
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_DATABASE", "community.db")
	t.Setenv("AUTH_MODE", "jwt")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "3000" {
		t.Errorf("Expected default port 3000, got %s", cfg.Port)
	}
	if cfg.TermsVersion != 1 {
		t.Errorf("Expected terms version 1, got %d", cfg.TermsVersion)
	}
	if !cfg.TermsEnforce {
		t.Error("Expected terms enforcement on by default")
	}
	if cfg.EditWindow != time.Hour {
		t.Errorf("Expected a one hour edit window, got %v", cfg.EditWindow)
	}
	if cfg.CommentPageSize != 30 || cfg.ReplyPageSize != 50 {
		t.Errorf("Unexpected page sizes %d/%d", cfg.CommentPageSize, cfg.ReplyPageSize)
	}
	if cfg.AnnouncementList != 8 || cfg.BannerList != 10 {
		t.Errorf("Unexpected announcement sizes %d/%d", cfg.AnnouncementList, cfg.BannerList)
	}
}

func TestLoadRequiresDatabase(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_DATABASE", "")

	if _, err := Load(); err == nil {
		t.Fatal("Expected an error without DB_DATABASE")
	}
}

func TestLoadRequiresDBUserForNetworkDatabases(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("DB_USER", "")

	if _, err := Load(); err == nil {
		t.Fatal("Expected an error without DB_USER")
	}
}

func TestLoadAuthModes(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{"jwt without secret", map[string]string{"AUTH_MODE": "jwt", "JWT_SECRET": ""}, true},
		{"authorizer without url", map[string]string{"AUTH_MODE": "authorizer", "AUTHZ_URL": "", "AUTHZ_CLIENT_ID": "id"}, true},
		{"authorizer without client", map[string]string{"AUTH_MODE": "authorizer", "AUTHZ_URL": "http://authz:8080", "AUTHZ_CLIENT_ID": ""}, true},
		{"authorizer complete", map[string]string{"AUTH_MODE": "authorizer", "AUTHZ_URL": "http://authz:8080", "AUTHZ_CLIENT_ID": "id"}, false},
		{"unknown mode", map[string]string{"AUTH_MODE": "basic"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadRejectsBadTimezone(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SITE_TIMEZONE", "Nowhere/Special")

	if _, err := Load(); err == nil {
		t.Fatal("Expected an error for an unknown timezone")
	}
}

func TestEnvParsersFallBack(t *testing.T) {
	t.Setenv("X_INT", "abc")
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_DUR", "-5s")

	if got := getEnvAsInt("X_INT", 7); got != 7 {
		t.Errorf("getEnvAsInt fallback = %d", got)
	}
	if got := getEnvAsBool("X_BOOL", true); !got {
		t.Error("getEnvAsBool fallback should be true")
	}
	if got := getEnvAsDuration("X_DUR", time.Minute); got != time.Minute {
		t.Errorf("getEnvAsDuration fallback = %v", got)
	}
}
