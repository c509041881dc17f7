package sources_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confwatch/confwatch/pkg/sources"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `{
		"sources": [
			{"id": "ccf_official", "name": "CCF Official", "priority": 1, "authoritative": true},
			{"id": "manual", "name": "Manual Curation", "priority": 2, "authoritative": true},
			{"id": "ccfddl", "name": "CCF DDL", "priority": 5},
			{"id": "legacy", "name": "Legacy Feed", "enabled": false}
		]
	}`)

	cfgs := sources.Load(path)
	require.Equal(t, 4, cfgs.Len())

	assert.Equal(t, 1, cfgs.Priority("ccf_official"))
	assert.Equal(t, 5, cfgs.Priority("ccfddl"))
	assert.True(t, cfgs.Authoritative("ccf_official"))
	assert.False(t, cfgs.Authoritative("ccfddl"))

	// Omitted fields get defaults.
	legacy, ok := cfgs.Get("legacy")
	require.True(t, ok)
	assert.Equal(t, sources.DefaultPriority, legacy.Priority)
	assert.False(t, legacy.Enabled)

	assert.Len(t, cfgs.Enabled(), 3)
}

func TestLoadMissingFileDegrades(t *testing.T) {
	cfgs := sources.Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.NotNil(t, cfgs)
	assert.Equal(t, 0, cfgs.Len())

	// Unknown IDs fall back to defaults instead of failing.
	assert.Equal(t, sources.DefaultPriority, cfgs.Priority("anything"))
	assert.False(t, cfgs.Authoritative("anything"))
	assert.Empty(t, cfgs.AuthoritativeOrder())
}

func TestLoadMalformedFileDegrades(t *testing.T) {
	path := writeFile(t, `{not json`)
	cfgs := sources.Load(path)
	assert.Equal(t, 0, cfgs.Len())
}

func TestLoadStrict(t *testing.T) {
	_, err := sources.LoadStrict(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := writeFile(t, `{not json`)
	_, err = sources.LoadStrict(path)
	assert.Error(t, err)

	path = writeFile(t, `{"sources": [{"id": "manual", "name": "Manual"}]}`)
	cfgs, err := sources.LoadStrict(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfgs.Len())
}

func TestAuthoritativeOrder(t *testing.T) {
	cfgs := sources.NewConfigs([]sources.Config{
		{ID: "manual", Priority: 2, Authoritative: true, Enabled: true},
		{ID: "ccfddl", Priority: 5, Enabled: true},
		{ID: "ccf_official", Priority: 1, Authoritative: true, Enabled: true},
		{ID: "mirror", Priority: 2, Authoritative: true, Enabled: true},
	})

	// Lower priority value first; ties keep configuration order.
	assert.Equal(t,
		[]sources.ID{"ccf_official", "manual", "mirror"},
		cfgs.AuthoritativeOrder())
}

func TestUnknownPriorityDefault(t *testing.T) {
	cfgs := sources.NewConfigs(nil)
	assert.Equal(t, sources.DefaultPriority, cfgs.Priority("ghost"))
}
