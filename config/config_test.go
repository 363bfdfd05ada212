package config

import (
	"strings"
	"testing"
	"time"
	_ "time/tzdata"
)

// clearEnv blanks every variable Load reads so defaults apply
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range GetEnvVars() {
		t.Setenv(name, "")
	}
}

func TestLoadValidConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8002")
	t.Setenv("ADDRESS", "127.0.0.1")
	t.Setenv("ENV", "dev")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TICK_INTERVAL", "30s")
	t.Setenv("NOTIFICATION_TTL", "45")
	t.Setenv("TIMEZONE", "Asia/Kolkata")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "8002" {
		t.Errorf("Expected port 8002, got %s", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.LogLevel)
	}
	if cfg.TickInterval != 30*time.Second {
		t.Errorf("Expected tick interval 30s, got %s", cfg.TickInterval)
	}
	if cfg.NotificationTTL != 45*time.Second {
		t.Errorf("Expected notification TTL 45s, got %s", cfg.NotificationTTL)
	}

	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("Expected timezone to resolve, got %v", err)
	}
	if loc.String() != "Asia/Kolkata" {
		t.Errorf("Expected Asia/Kolkata, got %s", loc)
	}
}

func TestLoadWithDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Expected default port 8000, got %s", cfg.Port)
	}
	if cfg.Address != "127.0.0.1" {
		t.Errorf("Expected default address 127.0.0.1, got %s", cfg.Address)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("Expected default env dev, got %s", cfg.Env)
	}
	if cfg.TickInterval != time.Minute {
		t.Errorf("Expected default tick interval 1m, got %s", cfg.TickInterval)
	}
	if cfg.NotificationTTL != 30*time.Second {
		t.Errorf("Expected default notification TTL 30s, got %s", cfg.NotificationTTL)
	}
	if cfg.Push.Provider != PushProviderLog {
		t.Errorf("Expected default push provider log, got %s", cfg.Push.Provider)
	}
	if cfg.DatasetFile != "" {
		t.Errorf("Expected no dataset file by default, got %s", cfg.DatasetFile)
	}
	if loc, _ := cfg.Location(); loc != time.Local {
		t.Errorf("Expected local timezone by default, got %v", loc)
	}
}

func TestInvalidValues(t *testing.T) {
	testCases := []struct {
		name     string
		key      string
		value    string
		expected string
	}{
		{"port not a number", "PORT", "abc", "PORT must be a valid number"},
		{"port out of range", "PORT", "65536", "PORT must be between 1 and 65535"},
		{"privileged port", "PORT", "80", "PORT 80 is privileged"},
		{"bad address", "ADDRESS", "invalid", "ADDRESS must be a valid IP address"},
		{"public address", "ADDRESS", "8.8.8.8", "is a public IP"},
		{"bad env", "ENV", "invalid", "ENV must be one of"},
		{"bad log level", "LOG_LEVEL", "verbose", "LOG_LEVEL must be one of"},
		{"bad timezone", "TIMEZONE", "Mars/Olympus", "invalid TIMEZONE"},
		{"tick too short", "TICK_INTERVAL", "100ms", "TICK_INTERVAL must be at least"},
		{"ttl too long", "NOTIFICATION_TTL", "48h", "NOTIFICATION_TTL must be at most"},
		{"unknown provider", "PUSH_PROVIDER", "pigeon", "PUSH_PROVIDER must be one of"},
		{"retention too large", "LOG_RETENTION_WEEKS", "60", "LOG_RETENTION_WEEKS is too large"},
		{"negative body limit", "MAX_REQUEST_BODY", "-1", "MAX_REQUEST_BODY must be positive"},
		{"header limit too large", "MAX_HEADER_SIZE", "209715200", "MAX_HEADER_SIZE is too large"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("Expected error for %s=%s, got nil", tc.key, tc.value)
			}
			if !strings.Contains(err.Error(), tc.expected) {
				t.Errorf("Expected error containing %q, got %v", tc.expected, err)
			}
		})
	}
}

func TestPushProviderRequirements(t *testing.T) {
	t.Run("onesignal missing credentials", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PUSH_PROVIDER", "onesignal")
		t.Setenv("ONESIGNAL_APP_ID", "app")

		_, err := Load()
		if err == nil {
			t.Fatal("Expected error for incomplete onesignal config")
		}
		if !strings.Contains(err.Error(), "ONESIGNAL_API_KEY") {
			t.Errorf("Expected missing key to be named, got %v", err)
		}
	})

	t.Run("onesignal complete", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PUSH_PROVIDER", "OneSignal")
		t.Setenv("ONESIGNAL_APP_ID", "app")
		t.Setenv("ONESIGNAL_API_KEY", "key")
		t.Setenv("ONESIGNAL_SUBSCRIPTION_ID", "sub")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.Push.Provider != PushProviderOneSignal {
			t.Errorf("Expected provider to be normalized, got %s", cfg.Push.Provider)
		}
	})

	t.Run("telegram missing chat", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PUSH_PROVIDER", "telegram")
		t.Setenv("TELEGRAM_BOT_TOKEN", "token")

		if _, err := Load(); err == nil {
			t.Fatal("Expected error for telegram without chat id")
		}
	})
}
