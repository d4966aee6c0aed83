package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"ROUTER_CONFIG", "PORT", "DATABASE_URL", "REDIS_URL", "STATE_BACKEND", "SEED_PATH",
		"OSRM_HOSTS", "OSRM_SNAP_HOST", "OSRM_TIMEOUT", "OSRM_RETRIES", "OSRM_RATE_LIMIT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, StateMemory, cfg.StateBackend)
	require.Equal(t, DefaultHosts, cfg.Routing.Hosts)
	require.Equal(t, 8*time.Second, cfg.Routing.Timeout)
	require.Equal(t, 2, cfg.Routing.MaxRetries)
	require.Equal(t, DefaultSnapZone, cfg.Routing.SnapZone)
	require.Equal(t, "https://router.project-osrm.org", cfg.Routing.SnapHostOrDefault())
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "router.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9000"
routing:
  hosts:
    - https://osrm.internal
    - https://router.project-osrm.org
  timeout: 3s
  max_retries: 1
  snap_zone:
    west: 1
    east: 2
    south: 3
    north: 4
`), 0o600))

	t.Setenv("ROUTER_CONFIG", path)
	t.Setenv("OSRM_TIMEOUT", "5s")
	t.Setenv("OSRM_RATE_LIMIT", "2.5")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "9000", cfg.Port)
	require.Equal(t, []string{"https://osrm.internal", "https://router.project-osrm.org"}, cfg.Routing.Hosts)
	require.Equal(t, 5*time.Second, cfg.Routing.Timeout)
	require.Equal(t, 1, cfg.Routing.MaxRetries)
	require.Equal(t, 2.5, cfg.Routing.RateLimit)
	require.Equal(t, 4.0, cfg.Routing.SnapZone.North)
}

func TestLoadHostsFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("OSRM_HOSTS", " https://a.test, ,https://b.test ")
	t.Setenv("OSRM_SNAP_HOST", "https://snap.test")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.Routing.Hosts)
	require.Equal(t, "https://snap.test", cfg.Routing.SnapHostOrDefault())
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]map[string]string{
		"bad timeout":    {"OSRM_TIMEOUT": "soon"},
		"zero timeout":   {"OSRM_TIMEOUT": "0s"},
		"retries":        {"OSRM_RETRIES": "9"},
		"backend":        {"STATE_BACKEND": "etcd"},
		"redis url":      {"STATE_BACKEND": "redis"},
		"postgres url":   {"STATE_BACKEND": "postgres"},
		"missing file":   {"ROUTER_CONFIG": "/does/not/exist.yaml"},
		"bad rate limit": {"OSRM_RATE_LIMIT": "fast"},
		"negative limit": {"OSRM_RATE_LIMIT": "-1"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
		})
	}
}
