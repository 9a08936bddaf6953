package polysat

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/akmonengine/polysat/actor"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every config validation error
var ErrInvalidConfig = errors.New("invalid config")

// Config describes a world and the bodies placed in it
type Config struct {
	CellSize float64 `yaml:"cell_size"`
	Cells    int     `yaml:"cells"`
	Workers  int     `yaml:"workers"`
	// StrictMeshes turns mesh read failures into Build errors.
	// By default a failing mesh is logged and the body keeps the geometry read so far.
	StrictMeshes bool         `yaml:"strict_meshes"`
	Bodies       []BodyConfig `yaml:"bodies"`

	// Dir resolves relative mesh paths; set by LoadConfigFile
	Dir string `yaml:"-"`
}

// BodyConfig places one body. Exactly one of Mesh and Box must be set.
type BodyConfig struct {
	Name string `yaml:"name"`
	// Mesh is the path of a binary mesh file
	Mesh string `yaml:"mesh,omitempty"`
	// Box holds the half-extents of a box body
	Box      []float64 `yaml:"box,omitempty"`
	Position []float64 `yaml:"position,omitempty"`
	// Angles are Euler angles in degrees around X, Y, Z
	Angles []float64 `yaml:"angles,omitempty"`
}

// LoadConfig decodes a YAML config and applies defaults
func LoadConfig(r io.Reader) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if c.CellSize == 0 {
		c.CellSize = 1
	}
	if c.Cells == 0 {
		c.Cells = 1024
	}
	c.Workers = max(DEFAULT_WORKERS, c.Workers)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// LoadConfigFile reads a YAML config file; relative mesh paths resolve against its directory
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	c, err := LoadConfig(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	c.Dir = filepath.Dir(path)

	return c, nil
}

// Validate checks the world settings and every body entry
func (c *Config) Validate() error {
	if !(c.CellSize > 0) {
		return fmt.Errorf("%w: cell_size %v must be positive", ErrInvalidConfig, c.CellSize)
	}
	if c.Cells < 0 {
		return fmt.Errorf("%w: cells %d is negative", ErrInvalidConfig, c.Cells)
	}

	for i, b := range c.Bodies {
		if (b.Mesh == "") == (b.Box == nil) {
			return fmt.Errorf("%w: body %d (%s) needs exactly one of mesh and box", ErrInvalidConfig, i, b.Name)
		}
		if b.Box != nil && len(b.Box) != 3 {
			return fmt.Errorf("%w: body %d (%s) box needs 3 values, got %d", ErrInvalidConfig, i, b.Name, len(b.Box))
		}
		if b.Position != nil && len(b.Position) != 3 {
			return fmt.Errorf("%w: body %d (%s) position needs 3 values, got %d", ErrInvalidConfig, i, b.Name, len(b.Position))
		}
		if b.Angles != nil && len(b.Angles) != 3 {
			return fmt.Errorf("%w: body %d (%s) angles needs 3 values, got %d", ErrInvalidConfig, i, b.Name, len(b.Angles))
		}
	}

	return nil
}

// Build loads every body concurrently and returns the populated world
func (c *Config) Build(logger *zap.Logger) (*World, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	bodies := make([]*actor.Body, len(c.Bodies))
	err := task(c.Workers, c.Bodies, func(i int, bc BodyConfig) error {
		mesh, err := c.loadMesh(bc, logger)
		if err != nil {
			if c.StrictMeshes {
				return fmt.Errorf("body %d (%s): %w", i, bc.Name, err)
			}
			logger.Warn("keeping partial mesh",
				zap.String("body", bc.Name),
				zap.Int("vertices", len(mesh.Vertices)),
				zap.Error(err),
			)
		}

		body := actor.NewBody(mesh)
		body.Name = bc.Name
		position := vec3(bc.Position)
		angles := vec3(bc.Angles)
		body.SetPose(position, angles.X(), angles.Y(), angles.Z())
		bodies[i] = body

		return nil
	})
	if err != nil {
		return nil, err
	}

	world := NewWorld(c.CellSize, c.Cells, c.Workers, logger)
	for _, body := range bodies {
		world.AddBody(body)
	}

	return world, nil
}

func (c *Config) loadMesh(bc BodyConfig, logger *zap.Logger) (actor.Mesh, error) {
	if bc.Box != nil {
		return actor.NewBoxMesh(vec3(bc.Box)), nil
	}

	path := bc.Mesh
	if !filepath.IsAbs(path) && c.Dir != "" {
		path = filepath.Join(c.Dir, path)
	}

	return actor.LoadMeshFile(path, logger.With(zap.String("body", bc.Name)))
}

// vec3 converts a validated config triple, nil meaning the zero vector
func vec3(values []float64) mgl64.Vec3 {
	if len(values) != 3 {
		return mgl64.Vec3{}
	}

	return mgl64.Vec3{values[0], values[1], values[2]}
}
