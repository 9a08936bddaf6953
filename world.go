package polysat

import (
	"github.com/akmonengine/polysat/actor"
	"go.uber.org/zap"
)

const DEFAULT_WORKERS = 1

// World groups the bodies of a scene and runs collision detection over all of them.
// Poses must not change while Detect runs.
type World struct {
	// List of all bodies in the world
	Bodies      []*actor.Body
	SpatialGrid *SpatialGrid
	Workers     int
	Logger      *zap.Logger

	Events Events
}

// NewWorld creates an empty world with a spatial grid of the given cell size and bucket count
func NewWorld(cellSize float64, numCells int, workers int, logger *zap.Logger) *World {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &World{
		SpatialGrid: NewSpatialGrid(cellSize, numCells),
		Workers:     max(DEFAULT_WORKERS, workers),
		Logger:      logger,
		Events:      NewEvents(),
	}
}

// AddBody adds a body to the world
func (w *World) AddBody(body *actor.Body) {
	w.Bodies = append(w.Bodies, body)
}

// RemoveBody removes a body from the world
func (w *World) RemoveBody(body *actor.Body) {
	k := -1
	for i, b := range w.Bodies {
		if b == body {
			k = i
			break
		}
	}

	if k != -1 {
		w.Bodies = append(w.Bodies[:k], w.Bodies[k+1:]...)
	}

	w.Events.forget(body)
}

// Detect runs broad and narrow phase over the current poses, dispatches collision events
// and returns the colliding pairs.
func (w *World) Detect() []Contact {
	w.Workers = max(DEFAULT_WORKERS, w.Workers)
	if w.Logger == nil {
		w.Logger = zap.NewNop()
	}

	bounds := w.computeBounds()
	contacts := NarrowPhase(BroadPhase(w.SpatialGrid, w.Bodies, bounds, w.Workers), w.Workers)

	w.Logger.Debug("collision pass",
		zap.Int("bodies", len(w.Bodies)),
		zap.Int("contacts", len(contacts)),
	)

	w.Events.recordContacts(contacts)
	w.Events.flush()

	return contacts
}

func (w *World) computeBounds() []actor.AABB {
	bounds := make([]actor.AABB, len(w.Bodies))
	forEach(w.Workers, w.Bodies, func(i int, body *actor.Body) {
		bounds[i] = body.AABB()
	})

	return bounds
}
