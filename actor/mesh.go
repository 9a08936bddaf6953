package actor

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// ErrNegativeTriangleCount is returned when a mesh header announces fewer than zero triangles
var ErrNegativeTriangleCount = errors.New("negative triangle count")

// recordSize is the byte size of one (vertex, normal) record: 6 little-endian float32
const recordSize = 6 * 4

// Record is one vertex of a triangle with its face normal, as stored in mesh files
type Record struct {
	Vertex mgl64.Vec3
	Normal mgl64.Vec3
}

// Mesh holds the deduplicated local geometry of a convex body
type Mesh struct {
	Vertices []mgl64.Vec3
	Normals  []mgl64.Vec3
}

// Add merges one record into the mesh under the deduplication policy
func (m *Mesh) Add(record Record) {
	m.Vertices = AppendDistinctVertex(m.Vertices, record.Vertex)
	m.Normals = AppendDistinctNormal(m.Normals, record.Normal)
}

// NewMesh builds a mesh from raw records
func NewMesh(records []Record) Mesh {
	var m Mesh
	for _, r := range records {
		m.Add(r)
	}

	return m
}

// LoadMesh decodes a binary mesh stream.
//
// Layout: int32 triangle count, then count*3 records of (vertex, normal), each
// component a little-endian float32.
//
// A read failure is logged and returned together with every record decoded
// before it, so callers can keep the partial geometry.
func LoadMesh(r io.Reader, logger *zap.Logger) (Mesh, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var mesh Mesh
	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		err = fmt.Errorf("read triangle count: %w", err)
		logger.Error("mesh load failed", zap.Error(err))
		return mesh, err
	}
	if count < 0 {
		err := fmt.Errorf("read triangle count %d: %w", count, ErrNegativeTriangleCount)
		logger.Error("mesh load failed", zap.Error(err))
		return mesh, err
	}

	buf := make([]byte, recordSize)
	for i := 0; i < int(count)*3; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			err = fmt.Errorf("read record %d of %d: %w", i, int(count)*3, err)
			logger.Error("mesh load failed",
				zap.Int("triangles", int(count)),
				zap.Int("vertices", len(mesh.Vertices)),
				zap.Error(err),
			)
			return mesh, err
		}

		mesh.Add(decodeRecord(buf))
	}

	logger.Debug("mesh loaded",
		zap.Int("triangles", int(count)),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("normals", len(mesh.Normals)),
	)

	return mesh, nil
}

// LoadMeshFile opens path and decodes it with LoadMesh
func LoadMeshFile(path string, logger *zap.Logger) (Mesh, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	f, err := os.Open(path)
	if err != nil {
		err = fmt.Errorf("open mesh: %w", err)
		logger.Error("mesh load failed", zap.String("path", path), zap.Error(err))
		return Mesh{}, err
	}
	defer f.Close()

	mesh, err := LoadMesh(f, logger.With(zap.String("path", path)))
	if err != nil {
		return mesh, fmt.Errorf("load %s: %w", path, err)
	}

	return mesh, nil
}

// EncodeMesh writes records in the LoadMesh layout. The record count must be a multiple of 3.
func EncodeMesh(w io.Writer, records []Record) error {
	if len(records)%3 != 0 {
		return fmt.Errorf("encode mesh: %d records do not form whole triangles", len(records))
	}

	if err := binary.Write(w, binary.LittleEndian, int32(len(records)/3)); err != nil {
		return fmt.Errorf("write triangle count: %w", err)
	}

	buf := make([]byte, recordSize)
	for i, r := range records {
		encodeRecord(buf, r)
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}

	return nil
}

func decodeRecord(buf []byte) Record {
	var f [6]float64
	for i := range f {
		f[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:])))
	}

	return Record{
		Vertex: mgl64.Vec3{f[0], f[1], f[2]},
		Normal: mgl64.Vec3{f[3], f[4], f[5]},
	}
}

func encodeRecord(buf []byte, r Record) {
	f := [6]float64{r.Vertex[0], r.Vertex[1], r.Vertex[2], r.Normal[0], r.Normal[1], r.Normal[2]}
	for i, v := range f {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(float32(v)))
	}
}
