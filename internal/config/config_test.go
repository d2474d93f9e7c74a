package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edumanage/edudash/internal/errors"
)

func TestLoadRequiresBackendURL(t *testing.T) {
	t.Setenv("EDUDASH_BACKEND_URL", "")
	t.Setenv("EDUDASH_ANON_KEY", "anon-key")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfigBackendURL))
}

func TestLoadRequiresAnonKey(t *testing.T) {
	t.Setenv("EDUDASH_BACKEND_URL", "https://example.test")
	t.Setenv("EDUDASH_ANON_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfigAnonKey))
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("EDUDASH_BACKEND_URL", "https://example.test")
	t.Setenv("EDUDASH_ANON_KEY", "anon-key")
	t.Setenv("EDUDASH_LOG_LEVEL", "debug")
	t.Setenv("EDUDASH_HTTP_TIMEOUT", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://example.test", cfg.BackendURL)
	assert.Equal(t, "anon-key", cfg.AnonKey)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantCode errors.ErrorCode
	}{
		{
			name: "valid",
			cfg: Config{
				BackendURL:         "https://example.test",
				AnonKey:            "anon",
				HTTPTimeoutSeconds: 30,
			},
		},
		{
			name:     "missing url",
			cfg:      Config{AnonKey: "anon", HTTPTimeoutSeconds: 30},
			wantCode: errors.ErrCodeConfigBackendURL,
		},
		{
			name:     "missing key",
			cfg:      Config{BackendURL: "https://example.test", HTTPTimeoutSeconds: 30},
			wantCode: errors.ErrCodeConfigAnonKey,
		},
		{
			name: "bad timeout",
			cfg: Config{
				BackendURL: "https://example.test",
				AnonKey:    "anon",
			},
			wantCode: errors.ErrCodeConfigInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.wantCode))
		})
	}
}

func TestLogFileDefault(t *testing.T) {
	cfg := Config{}
	assert.Contains(t, cfg.LogFile(), "edudash.log")

	cfg.Logging.File = "/tmp/custom.log"
	assert.Equal(t, "/tmp/custom.log", cfg.LogFile())
}
