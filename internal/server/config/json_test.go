package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestParseJson_OverlaysAllFields(t *testing.T) {
	path := writeTempConfig(t, `{
		"endpoint_addr": ":8081",
		"database_dsn": "postgres://u:p@db:5432/app",
		"secret_key": "json-secret",
		"access_token_validity_duration": "30m",
		"s3_root_user": "root",
		"s3_root_password": "pw",
		"s3_bucket": "b",
		"s3_region": "eu-west-1",
		"s3_base_endpoint": "http://minio:9000/"
	}`)

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"app", "-c", path}

	c := &Config{}
	c.LoadDefaults()
	parseJson(c)

	assert.Equal(t, ":8081", c.EndpointAddr)
	assert.Equal(t, "postgres://u:p@db:5432/app", c.DatabaseDSN)
	assert.Equal(t, "json-secret", c.SecretKey)
	assert.Equal(t, 30*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, "root", c.S3RootUser)
	assert.Equal(t, "b", c.S3Bucket)
}

func TestParseJson_NoFlagLeavesDefaults(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"app"}

	c := &Config{}
	c.LoadDefaults()
	parseJson(c)

	assert.Equal(t, ":3000", c.EndpointAddr)
	assert.Equal(t, 1*time.Hour, c.AccessTokenValidityDuration)
}

func TestParseJson_BrokenFilePanics(t *testing.T) {
	path := writeTempConfig(t, `{not json`)

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"app", "-c", path}

	c := &Config{}
	c.LoadDefaults()
	assert.Panics(t, func() { parseJson(c) })
}
