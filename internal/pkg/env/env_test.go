package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qtmops/coco-cloner/internal/pkg/log"
)

func TestMapKeysAreUppercase(t *testing.T) {
	t.Parallel()
	m := Empty()
	m.Set("auth_token", "abc")
	assert.Equal(t, "abc", m.Get("AUTH_TOKEN"))
	assert.Equal(t, "abc", m.Get("auth_token"))

	value, found := m.Lookup("Auth_Token")
	assert.True(t, found)
	assert.Equal(t, "abc", value)

	m.Unset("AUTH_token")
	_, found = m.Lookup("AUTH_TOKEN")
	assert.False(t, found)
}

func TestMapMerge(t *testing.T) {
	t.Parallel()
	m := FromMap(map[string]string{"A": "1", "B": "2"})
	other := FromMap(map[string]string{"B": "overwritten", "C": "3"})

	clone := m.Clone()
	clone.Merge(other, false)
	assert.Equal(t, map[string]string{"A": "1", "B": "2", "C": "3"}, clone.ToMap())

	clone = m.Clone()
	clone.Merge(other, true)
	assert.Equal(t, map[string]string{"A": "1", "B": "overwritten", "C": "3"}, clone.ToMap())
}

func TestMapMustGet(t *testing.T) {
	t.Parallel()
	m := Empty()
	assert.PanicsWithError(t, `missing ENV variable "MISSING"`, func() {
		m.MustGet("missing")
	})
}

func TestLoadDotEnv(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("AUTH_TOKEN=from-file\nPROJECT_ID=267\n"), 0o644))

	osEnvs := FromMap(map[string]string{"AUTH_TOKEN": "from-os"})
	envs := LoadDotEnv(log.NewNopLogger(), osEnvs, dir)

	// Existing envs take precedence
	assert.Equal(t, "from-os", envs.Get("AUTH_TOKEN"))
	assert.Equal(t, "267", envs.Get("PROJECT_ID"))
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	t.Parallel()
	osEnvs := FromMap(map[string]string{"A": "1"})
	envs := LoadDotEnv(log.NewNopLogger(), osEnvs, t.TempDir())
	assert.Equal(t, map[string]string{"A": "1"}, envs.ToMap())
}

func TestSaveKey(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PROJECT_ID=267\n"), 0o644))

	require.NoError(t, SaveKey(dir, "AUTH_TOKEN", "secret"))

	envs, err := LoadEnvFile(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, "secret", envs.Get("AUTH_TOKEN"))
	assert.Equal(t, "267", envs.Get("PROJECT_ID"))
}

func TestSaveKeyNewFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, SaveKey(dir, "AUTH_TOKEN", "secret"))

	envs, err := LoadEnvFile(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"AUTH_TOKEN": "secret"}, envs.ToMap())
}
