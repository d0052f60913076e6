package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err)
	return path
}

func TestParseJson_NoFlag(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"server"}

	c := &Config{}
	c.LoadDefaults()
	parseJson(c)

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
}

func TestParseJson_OverridesFromFile(t *testing.T) {
	path := writeTempJSON(t, `{
		"endpoint_addr_http": ":9090",
		"database_dsn": "postgres://u:p@db:5432/auth",
		"secret_key": "filesecret",
		"access_token_validity_duration": "5m",
		"refresh_token_validity_duration": "72h",
		"bcrypt_cost": 12,
		"clients": [{"id": "billing", "secret": "s3cr3t"}]
	}`)

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"server", "-c", path}

	c := &Config{}
	c.LoadDefaults()
	parseJson(c)

	assert.Equal(t, ":9090", c.EndpointAddrHTTP)
	assert.Equal(t, "postgres://u:p@db:5432/auth", c.DatabaseDSN)
	assert.Equal(t, "filesecret", c.SecretKey)
	assert.Equal(t, 5*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, 72*time.Hour, c.RefreshTokenValidityDuration)
	assert.Equal(t, 12, c.BcryptCost)
	require.Len(t, c.Clients, 1)
	assert.Equal(t, "billing", c.Clients[0].ID)
	assert.Equal(t, "s3cr3t", c.Clients[0].Secret)
}

func TestParseJson_InvalidFilePanics(t *testing.T) {
	path := writeTempJSON(t, `{not json`)

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"server", "-config", path}

	c := &Config{}
	c.LoadDefaults()

	assert.Panics(t, func() { parseJson(c) })
}
