package polysat

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akmonengine/polysat/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const sceneYAML = `
cell_size: 2
cells: 100
workers: 3
bodies:
  - name: crate
    box: [0.5, 0.5, 0.5]
  - name: pushed
    box: [0.5, 0.5, 0.5]
    position: [0.5, 0, 0]
    angles: [0, 0, 10]
`

func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig(strings.NewReader(sceneYAML))
	require.NoError(t, err)

	assert.Equal(t, 2.0, config.CellSize)
	assert.Equal(t, 100, config.Cells)
	assert.Equal(t, 3, config.Workers)
	assert.False(t, config.StrictMeshes)
	require.Len(t, config.Bodies, 2)
	assert.Equal(t, "pushed", config.Bodies[1].Name)
	assert.Equal(t, []float64{0.5, 0, 0}, config.Bodies[1].Position)
	assert.Equal(t, []float64{0, 0, 10}, config.Bodies[1].Angles)
	assert.Nil(t, config.Bodies[0].Position)
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig(strings.NewReader("bodies: []\n"))
	require.NoError(t, err)

	assert.Equal(t, 1.0, config.CellSize)
	assert.Equal(t, 1024, config.Cells)
	assert.Equal(t, DEFAULT_WORKERS, config.Workers)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		invalid bool
	}{
		{name: "empty document", yaml: ""},
		{name: "malformed yaml", yaml: "bodies: [\n"},
		{name: "negative cell size", yaml: "cell_size: -1\n", invalid: true},
		{name: "nan cell size", yaml: "cell_size: .nan\n", invalid: true},
		{name: "negative cells", yaml: "cells: -4\n", invalid: true},
		{name: "no geometry", yaml: "bodies:\n  - name: ghost\n", invalid: true},
		{name: "mesh and box", yaml: "bodies:\n  - name: both\n    mesh: a.mesh\n    box: [1, 1, 1]\n", invalid: true},
		{name: "short box", yaml: "bodies:\n  - box: [1, 1]\n", invalid: true},
		{name: "long position", yaml: "bodies:\n  - box: [1, 1, 1]\n    position: [1, 2, 3, 4]\n", invalid: true},
		{name: "short angles", yaml: "bodies:\n  - box: [1, 1, 1]\n    angles: [90]\n", invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Equal(t, tt.invalid, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestConfigValidateCellSize(t *testing.T) {
	for _, cellSize := range []float64{0, -2} {
		config := &Config{CellSize: cellSize, Cells: 16, Workers: 1}

		assert.ErrorIs(t, config.Validate(), ErrInvalidConfig, "cell_size %v", cellSize)

		world, err := config.Build(nil)
		assert.ErrorIs(t, err, ErrInvalidConfig, "cell_size %v", cellSize)
		assert.Nil(t, world)
	}
}

func TestConfigBuild(t *testing.T) {
	config, err := LoadConfig(strings.NewReader(sceneYAML))
	require.NoError(t, err)

	world, err := config.Build(nil)
	require.NoError(t, err)

	assert.Equal(t, 3, world.Workers)
	require.Len(t, world.Bodies, 2)
	assert.Equal(t, "crate", world.Bodies[0].Name)
	assert.Equal(t, "pushed", world.Bodies[1].Name)
	assert.Equal(t, actor.Pose{Position: mgl64.Vec3{0.5, 0, 0}, AngleZ: 10}, world.Bodies[1].Pose())
	assert.Len(t, world.Bodies[0].LocalVertices(), 8)

	contacts := world.Detect()
	assert.Len(t, contacts, 1)
}

func writeMesh(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func encodedBox(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, actor.EncodeMesh(&buf, actor.BoxRecords(mgl64.Vec3{0.5, 0.5, 0.5})))
	return buf.Bytes()
}

func TestLoadConfigFileWithMeshes(t *testing.T) {
	dir := t.TempDir()
	writeMesh(t, filepath.Join(dir, "box.mesh"), encodedBox(t))

	scene := "bodies:\n" +
		"  - name: from-file\n    mesh: box.mesh\n" +
		"  - name: inline\n    box: [0.5, 0.5, 0.5]\n    position: [0.25, 0, 0]\n"
	configPath := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(scene), 0o644))

	config, err := LoadConfigFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, dir, config.Dir)

	world, err := config.Build(nil)
	require.NoError(t, err)
	require.Len(t, world.Bodies, 2)
	assert.ElementsMatch(t, world.Bodies[1].LocalVertices(), world.Bodies[0].LocalVertices())
	assert.Equal(t, world.Bodies[1].LocalNormals(), world.Bodies[0].LocalNormals())

	result := Query(world.Bodies[0], world.Bodies[1])
	require.True(t, result.Collide)
	assert.InDelta(t, 0.75, result.MTVLength, epsilon)
}

func TestLoadConfigFileMissing(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfigBuildBrokenMesh(t *testing.T) {
	dir := t.TempDir()
	data := encodedBox(t)
	// the header and the first face survive
	writeMesh(t, filepath.Join(dir, "truncated.mesh"), data[:4+6*24+3])

	newConfig := func(strict bool) *Config {
		return &Config{
			CellSize:     1,
			Cells:        16,
			Workers:      2,
			StrictMeshes: strict,
			Dir:          dir,
			Bodies: []BodyConfig{
				{Name: "truncated", Mesh: "truncated.mesh"},
				{Name: "missing", Mesh: "missing.mesh"},
				{Name: "box", Box: []float64{1, 1, 1}},
			},
		}
	}

	t.Run("lenient keeps partial geometry", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)

		world, err := newConfig(false).Build(zap.New(core))
		require.NoError(t, err)
		require.Len(t, world.Bodies, 3)

		assert.Len(t, world.Bodies[0].LocalVertices(), 4)
		assert.Empty(t, world.Bodies[1].LocalVertices())
		assert.Len(t, world.Bodies[2].LocalVertices(), 8)

		assert.Equal(t, 2, logs.FilterMessage("keeping partial mesh").Len())
		assert.Equal(t, 2, logs.FilterMessage("mesh load failed").Len())
	})

	t.Run("strict fails the build", func(t *testing.T) {
		world, err := newConfig(true).Build(nil)
		assert.Error(t, err)
		assert.Nil(t, world)
	})
}
