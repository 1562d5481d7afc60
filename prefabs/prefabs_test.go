package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old := Dir
	Dir = dir
	t.Cleanup(func() { Dir = old })
	return dir
}

func TestLoadPrefersDisk(t *testing.T) {
	dir := withDir(t)

	embedded, err := Load("tank.yaml")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "tank.yaml"), []byte("name: edited\n"), 0o644))
	data, err := Load("prefabs/tank.yaml")
	require.NoError(t, err)
	assert.Equal(t, "name: edited\n", string(data))
	assert.NotEqual(t, embedded, data)

	_, err = Load("missing.yaml")
	assert.Error(t, err)
}

func TestLoadScriptPaths(t *testing.T) {
	withDir(t)
	for _, name := range []string{"bot.tengo", "scripts/bot.tengo", "prefabs/scripts/bot.tengo"} {
		t.Run(name, func(t *testing.T) {
			src, err := LoadScript(name)
			require.NoError(t, err)
			assert.Contains(t, string(src), "update")
		})
	}
}

func TestLoadMatchSpecDefaults(t *testing.T) {
	dir := withDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tiny.yaml"), []byte(`
name: tiny
start_delay: -1
players:
  - color: "#FF000080"
  - {}
`), 0o644))

	spec, err := LoadMatchSpec("tiny.yaml")
	require.NoError(t, err)
	assert.Equal(t, 3, spec.RoundsToWin)
	assert.Zero(t, spec.StartDelay)
	assert.Equal(t, "tank.yaml", spec.TankPrefab)
	assert.Equal(t, "camera.yaml", spec.Camera)
	assert.Equal(t, "bot.tengo", spec.BotScript)
	assert.Equal(t, 3.0, spec.Input.Sensitivity)
	require.Len(t, spec.Players, 2)
	assert.Equal(t, color.NRGBA{R: 0xff, A: 0x80}, spec.Players[0].Color.NRGBA())
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, spec.Players[1].Color.NRGBA(), "unset colour is white")
}

func TestEmbeddedMatch(t *testing.T) {
	withDir(t)
	spec, err := LoadMatchSpec("match.yaml")
	require.NoError(t, err)
	assert.Equal(t, 3, spec.RoundsToWin)
	require.Len(t, spec.Players, 4)
	assert.Equal(t, "ArrowUp", spec.Players[1].Keys.Up)
	assert.Equal(t, color.NRGBA{R: 0x2a, G: 0x64, B: 0xb2, A: 0xff}, spec.Players[0].Color.NRGBA())
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#E52E28", color.NRGBA{R: 0xe5, G: 0x2e, B: 0x28, A: 0xff}, false},
		{" 00ff0040 ", color.NRGBA{G: 0xff, A: 0x40}, false},
		{"#fff", color.NRGBA{}, true},
		{"#GG0000", color.NRGBA{}, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseHexColor(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeComponentSpec(t *testing.T) {
	spec, err := LoadEntityBuildSpec("tank.yaml")
	require.NoError(t, err)

	shooting, err := DecodeComponentSpec[ShootingComponentSpec](spec.Components["shooting"])
	require.NoError(t, err)
	assert.Equal(t, 15.0, shooting.MinLaunchForce)
	assert.Equal(t, 30.0, shooting.MaxLaunchForce)
	assert.Equal(t, 1.7, shooting.MuzzleOffset.Y)

	empty, err := DecodeComponentSpec[TTLComponentSpec](nil)
	require.NoError(t, err)
	assert.Zero(t, empty.Seconds)
}

func TestWatcherDrainDedupes(t *testing.T) {
	w := &Watcher{Events: make(chan string, 8)}
	w.Events <- "prefabs/tank.yaml"
	w.Events <- "prefabs/scripts/bot.tengo"
	w.Events <- "prefabs/tank.yaml"

	assert.Equal(t, []string{"prefabs/tank.yaml", "prefabs/scripts/bot.tengo"}, w.Drain())
	assert.Empty(t, w.Drain())

	var nilWatcher *Watcher
	assert.Nil(t, nilWatcher.Drain())
}

func TestWatchedFileFilter(t *testing.T) {
	assert.True(t, isSpecFile("a/tank.YAML"))
	assert.True(t, isSpecFile("match.yml"))
	assert.True(t, isScriptFile("bot.tengo"))
	assert.False(t, isSpecFile("tank.yaml~"))
	assert.False(t, isScriptFile("notes.txt"))
}
