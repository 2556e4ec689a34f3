package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleManifest = `[catalog]
desc = "/usr/share/pari/pari.desc"

[output]
dir = "generated"
gen = "gen.pxi"

[filter]
blacklist = ["plotexport", "plothexport"]
`

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "autogen.toml"), []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, sampleManifest)

	m, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "/usr/share/pari/pari.desc", m.Catalog.Desc)
	assert.Equal(t, "generated", m.Output.Dir)
	assert.Equal(t, "gen.pxi", m.Output.Gen)
	// Unset fields fall back to the conventional names.
	assert.Equal(t, "auto_instance.pxi", m.Output.Instance)
	assert.Equal(t, "auto_paridecl.pxd", m.Output.Decl)
	assert.Equal(t, []string{"plotexport", "plothexport"}, m.Filter.Blacklist)

	assert.Equal(t, filepath.Join("generated", "gen.pxi"), m.GenPath())
	assert.Equal(t, filepath.Join("generated", "auto_instance.pxi"), m.InstancePath())
	assert.Equal(t, filepath.Join("generated", "auto_paridecl.pxd"), m.DeclPath())
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[output\ndir = ")
	_, err := Load(dir)
	require.Error(t, err)
}

func TestFindAndLoad(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, sampleManifest)
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	m, err := FindAndLoad(nested)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "generated", m.Output.Dir)
}

func TestFindAndLoadNotFound(t *testing.T) {
	m, err := FindAndLoad(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestDefault(t *testing.T) {
	m := Default()
	assert.Equal(t, "pari.desc", m.Catalog.Desc)
	assert.Equal(t, filepath.Join("cypari2", "auto_gen.pxi"), m.GenPath())
}
