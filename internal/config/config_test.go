package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets the variables the overlay reads so a developer's shell
// does not leak into the tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"SQLGREP_DATABASE_URL", "DATABASE_URL", "SQLGREP_AUTH", "AWS_REGION", "AWS_DEFAULT_REGION",
		"AZURE_TENANT_ID", "AZURE_CLIENT_ID", "AZURE_CLIENT_SECRET", "SQLGREP_GOOGLE_INSTANCE",
		"SQLGREP_COLOR", "SQLGREP_TIMEOUT",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644))
	return dir
}

func TestLoad_AllFields(t *testing.T) {
	dir := writeConfig(t, `connection:
  database_url: postgres://reader@db/app
  auth_method: aws
  aws_region: eu-west-1
  azure_tenant_id: tenant
  azure_client_id: client
  google_instance: proj:region:inst

search:
  ignore_case: true
  fixed_strings: true
  whole_string: true
  ignore_non_read_only: true

color: never
timeout: 10m
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "postgres://reader@db/app", cfg.Connection.DatabaseURL)
	assert.Equal(t, "aws", cfg.Connection.AuthMethod)
	assert.Equal(t, "eu-west-1", cfg.Connection.AWSRegion)
	assert.Equal(t, "tenant", cfg.Connection.AzureTenantID)
	assert.Equal(t, "client", cfg.Connection.AzureClientID)
	assert.Equal(t, "proj:region:inst", cfg.Connection.GoogleInstance)
	assert.Equal(t, SearchConfig{IgnoreCase: true, FixedStrings: true, WholeString: true, IgnoreNonReadOnly: true}, cfg.Search)
	assert.Equal(t, "never", cfg.Color)

	timeout, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, timeout)
}

func TestLoad_SecretIsNotReadFromYAML(t *testing.T) {
	dir := writeConfig(t, "connection:\n  azure_client_secret: leaked\n")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Empty(t, cfg.Connection.AzureClientSecret)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{{invalid"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, ProjectConfig{}, *cfg)
}

func TestLoadWithEnv_EnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := writeConfig(t, "connection:\n  database_url: from-file.db\n  aws_region: us-east-1\ntimeout: 1m\n")
	t.Setenv("DATABASE_URL", "from-env.db")
	t.Setenv("AWS_REGION", "ap-south-1")
	t.Setenv("AZURE_CLIENT_SECRET", "s3cret")

	cfg, err := LoadWithEnv(filepath.Join(dir, ConfigFileName))
	require.NoError(t, err)

	assert.Equal(t, "from-env.db", cfg.Connection.DatabaseURL)
	assert.Equal(t, "ap-south-1", cfg.Connection.AWSRegion)
	assert.Equal(t, "s3cret", cfg.Connection.AzureClientSecret)
	assert.Equal(t, "1m", cfg.Timeout)
}

func TestLoadWithEnv_SqlgrepURLBeatsDatabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("SQLGREP_DATABASE_URL", "primary.db")
	t.Setenv("DATABASE_URL", "secondary.db")
	t.Chdir(t.TempDir())

	cfg, err := LoadWithEnv("")
	require.NoError(t, err)
	assert.Equal(t, "primary.db", cfg.Connection.DatabaseURL)
}

func TestLoadWithEnv_MissingDefaultFileIsFine(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := LoadWithEnv("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Connection.DatabaseURL)
}

func TestLoadWithEnv_MissingExplicitFileFails(t *testing.T) {
	clearEnv(t)

	_, err := LoadWithEnv(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestTimeoutDuration_Invalid(t *testing.T) {
	cfg := &ProjectConfig{Timeout: "soon"}
	_, err := cfg.TimeoutDuration()
	assert.Error(t, err)
}
