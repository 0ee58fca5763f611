package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "DB_NAME", "MAX_UPLOAD_FILES", "MAX_UPLOAD_SIZE_MB", "PROTECT_ROOT_ADMIN", "MAIL_PROVIDER"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "school.db", cfg.DBName)
	assert.Equal(t, 20, cfg.MaxUploadFiles)
	assert.Equal(t, int64(2048)*1024*1024, cfg.MaxUploadBytes())
	assert.False(t, cfg.ProtectRootAdmin)
	assert.Equal(t, "log", cfg.MailProvider)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("MAX_UPLOAD_FILES", "5")
	t.Setenv("JWT_TTL_HOURS", "not-a-number")
	t.Setenv("PROTECT_ROOT_ADMIN", "true")

	cfg := FromEnv()
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 5, cfg.MaxUploadFiles)
	assert.Equal(t, 24, cfg.JWTTTLHours)
	assert.True(t, cfg.ProtectRootAdmin)
}

func TestApplyYAMLFile(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "from-env")
	cfg := FromEnv()

	path := filepath.Join(t.TempDir(), "lms.yaml")
	raw := "port: \"8080\"\nupload_dir: /srv/uploads\nmax_upload_files: 3\norphan_sweep_cron: \"\"\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	require.NoError(t, cfg.ApplyYAMLFile(path))
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/srv/uploads", cfg.UploadDir)
	assert.Equal(t, 3, cfg.MaxUploadFiles)
	assert.Equal(t, "", cfg.OrphanSweepCron)
	assert.Equal(t, "from-env", cfg.JWTKey)
	assert.Equal(t, "school.db", cfg.DBName)

	assert.Error(t, cfg.ApplyYAMLFile(filepath.Join(t.TempDir(), "missing.yaml")))
}
