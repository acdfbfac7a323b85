package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
db_creds:
  host: localhost
  port: "5432"
  username: geomatch
  password: secret
  database: geomatch
renames_path: config/renames.yaml
reconciler:
  source: olx
  review_dir: /var/lib/geomatch/review
resolver:
  candidate_limit: 10
  radius_meters: 500
  trust_text_sources:
    - lun
    - dom_ria
logging:
  level: debug
  pretty: true
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DBCreds.Host)
	assert.Equal(t, "geomatch", cfg.DBCreds.Database)
	assert.Equal(t, "config/renames.yaml", cfg.RenamesPath)
	assert.Equal(t, "olx", cfg.Reconciler.Source)
	assert.Equal(t, 10, cfg.Resolver.CandidateLimit)
	assert.Equal(t, 500.0, cfg.Resolver.RadiusMeters)
	assert.Equal(t, []string{"lun", "dom_ria"}, cfg.Resolver.TrustTextSources)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Pretty)
}

func TestLoadConfigEnvOverridesCreds(t *testing.T) {
	t.Setenv("GEOMATCH_DB_HOST", "db.internal")
	t.Setenv("GEOMATCH_DB_PASSWORD", "from-env")

	cfg, err := LoadConfig(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DBCreds.Host)
	assert.Equal(t, "from-env", cfg.DBCreds.Password)
	// Untouched fields keep the YAML values.
	assert.Equal(t, "geomatch", cfg.DBCreds.Username)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
