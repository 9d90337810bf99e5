package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const minimalConfig = `
server:
  port: 8080
database:
  host: localhost
  port: 5432
  user: roomdesk
  database: roomdesk
`

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, minimalConfig))
		require.NoError(t, err)

		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, "none", cfg.Notify.Provider)
		assert.Equal(t, "Europe/Rome", cfg.Property.Timezone)
		assert.Equal(t, 48*time.Hour, cfg.PendingTTL())
		assert.Equal(t, 30*time.Minute, cfg.ProposalTTL())
		assert.Equal(t, int32(4500), cfg.Pricing.DoubleRateCents)
		assert.Equal(t, int32(200), cfg.TouristTaxRates().HighSeasonCents)
		assert.Equal(t, "0 0 3 * * *", cfg.Scheduler.OptimizeAssignments)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "postgres://roomdesk:@localhost:5432/roomdesk?sslmode=disable", cfg.GetDatabaseConnectionString())
		assert.Equal(t, ":8080", cfg.GetServerAddress())

		policy, err := cfg.Policy()
		require.NoError(t, err)
		order, err := policy.PreferredRoomOrder(1)
		require.NoError(t, err)
		assert.Equal(t, []int32{2, 1, 4, 5, 6, 3}, order)
	})

	t.Run("EnvOverrides", func(t *testing.T) {
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("DB_PORT", "6543")
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("REDIS_ADDR", "cache:6379")
		t.Setenv("PROPERTY_TIMEZONE", "UTC")

		cfg, err := Load(writeConfig(t, minimalConfig))
		require.NoError(t, err)

		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, 6543, cfg.Database.Port)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "cache:6379", cfg.Redis.Addr)
		assert.Equal(t, time.UTC, cfg.Location())
	})

	t.Run("CustomPolicy", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, minimalConfig+`
assignment:
  classes:
    - name: double
      max_guests: 2
      order: [4, 1]
  fallback: [3]
`))
		require.NoError(t, err)

		policy, err := cfg.Policy()
		require.NoError(t, err)
		order, err := policy.PreferredRoomOrder(2)
		require.NoError(t, err)
		assert.Equal(t, []int32{4, 1}, order)
		order, err = policy.PreferredRoomOrder(5)
		require.NoError(t, err)
		assert.Equal(t, []int32{3}, order)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("InvalidConfigs", func(t *testing.T) {
		cases := map[string]string{
			"bad port":     "server:\n  port: 0\n",
			"no db host":   "server:\n  port: 8080\ndatabase:\n  user: u\n  database: d\n",
			"bad provider": minimalConfig + "notify:\n  provider: pigeon\n",
			"sendgrid key": minimalConfig + "notify:\n  provider: sendgrid\n",
			"bad timezone": minimalConfig + "property:\n  timezone: Mars/Olympus\n",
			"bad class":    minimalConfig + "assignment:\n  classes:\n    - name: suite\n      max_guests: 2\n      order: [1]\n",
			"empty order":  minimalConfig + "assignment:\n  classes:\n    - name: double\n      max_guests: 2\n",
			"malformed":    "server: [",
		}
		for name, body := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := Load(writeConfig(t, body))
				assert.Error(t, err)
			})
		}
	})
}
