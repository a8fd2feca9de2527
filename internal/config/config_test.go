package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DRIVEDESK_JWT_SECRET", "secret")
	t.Setenv("DRIVEDESK_DATABASE_URL", "postgres://localhost/drivedesk")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "DriveDesk API", cfg.AppName)
	require.Equal(t, ":8080", cfg.HTTPAddress())
	require.Equal(t, 12*time.Hour, cfg.JWTTTL)
	require.Equal(t, 5*time.Minute, cfg.DashboardCacheTTL)
	require.Equal(t, "DH", cfg.Currency)
	require.Equal(t, 10, cfg.UploadMaxSizeMB)
	require.False(t, cfg.SeedEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DRIVEDESK_JWT_SECRET", "secret")
	t.Setenv("DRIVEDESK_DATABASE_URL", "postgres://localhost/drivedesk")
	t.Setenv("DRIVEDESK_APP_PORT", ":9090")
	t.Setenv("DRIVEDESK_CURRENCY", "MAD")
	t.Setenv("DRIVEDESK_DASHBOARD_CACHE_TTL", "30s")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddress())
	require.Equal(t, "MAD", cfg.Currency)
	require.Equal(t, 30*time.Second, cfg.DashboardCacheTTL)
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("DRIVEDESK_JWT_SECRET", "")
	t.Setenv("DRIVEDESK_DATABASE_URL", "postgres://localhost/drivedesk")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsInvalidDuration(t *testing.T) {
	t.Setenv("DRIVEDESK_JWT_SECRET", "secret")
	t.Setenv("DRIVEDESK_DATABASE_URL", "postgres://localhost/drivedesk")
	t.Setenv("DRIVEDESK_JWT_TTL", "soon")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadSeedNeedsToken(t *testing.T) {
	t.Setenv("DRIVEDESK_JWT_SECRET", "secret")
	t.Setenv("DRIVEDESK_DATABASE_URL", "postgres://localhost/drivedesk")
	t.Setenv("DRIVEDESK_SEED_ENABLED", "true")
	t.Setenv("DRIVEDESK_SEED_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
}
