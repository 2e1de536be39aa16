package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	useTempHome(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultServer, cfg.Server)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.IsAuthenticated())
}

func TestSaveLoad(t *testing.T) {
	dir := useTempHome(t)

	in := &Config{
		Server:   "http://api.example.com",
		UserID:   "u-1",
		Email:    "alice@example.com",
		Timeout:  30 * time.Second,
		LogLevel: "debug",
	}
	require.NoError(t, in.Save())

	info, err := os.Stat(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	out, err := Load()
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.True(t, out.IsAuthenticated())
}

func TestLoad_EnvOverride(t *testing.T) {
	useTempHome(t)
	t.Setenv("LEXCTL_SERVER", "http://override:9000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://override:9000", cfg.Server)
}

func TestClearIdentity(t *testing.T) {
	useTempHome(t)

	cfg := &Config{Server: "http://api.example.com", UserID: "u-1", Email: "alice@example.com"}
	cfg.ClearIdentity()
	require.NoError(t, cfg.Save())

	out, err := Load()
	require.NoError(t, err)
	assert.False(t, out.IsAuthenticated())
	assert.Equal(t, "http://api.example.com", out.Server)
}

func TestFileIdentityProvider(t *testing.T) {
	useTempHome(t)

	user, err := FileIdentityProvider{}.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)

	require.NoError(t, (&Config{UserID: "u-1", Email: "alice@example.com"}).Save())

	user, err = FileIdentityProvider{}.CurrentUser(context.Background())
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestDeriveUserID(t *testing.T) {
	a := DeriveUserID("Alice@Example.com ")
	b := DeriveUserID("alice@example.com")
	c := DeriveUserID("bob@example.com")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 36)
}
