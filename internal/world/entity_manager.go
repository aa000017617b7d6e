package world

import (
	"sync"

	"github.com/google/uuid"

	"windswept/internal/profiling"
)

// Mover is consulted after each integration step to refresh contact flags.
type Mover interface {
	FluidAt(pos BlockPos) FluidState
	IsSolid(pos BlockPos) bool
}

// EntityManager handles the lifecycle and motion of entities in the world.
type EntityManager struct {
	entities []*Entity
	mu       sync.RWMutex
}

// NewEntityManager creates a new entity manager.
func NewEntityManager() *EntityManager {
	return &EntityManager{
		entities: make([]*Entity, 0),
	}
}

// Add adds an entity to the manager.
func (em *EntityManager) Add(e *Entity) {
	em.mu.Lock()
	defer em.mu.Unlock()
	em.entities = append(em.entities, e)
}

// Mutate runs fn against the live entity with the given id. It reports whether the entity exists.
func (em *EntityManager) Mutate(id uuid.UUID, fn func(e *Entity)) bool {
	em.mu.Lock()
	defer em.mu.Unlock()
	for _, e := range em.entities {
		if e.ID == id {
			fn(e)
			return true
		}
	}
	return false
}

// Update advances every entity by its velocity, refreshes its contact flags and removes dead ones.
func (em *EntityManager) Update(m Mover) {
	defer profiling.Track("world.UpdateEntities")()
	em.mu.Lock()
	defer em.mu.Unlock()

	activeCount := 0
	for _, e := range em.entities {
		if !e.Alive {
			continue
		}
		step(e, m)
		em.entities[activeCount] = e
		activeCount++
	}
	// Trim slice to remove dead entities
	clear(em.entities[activeCount:])
	em.entities = em.entities[:activeCount]
}

func step(e *Entity, m Mover) {
	next := e.Position.Add(e.Velocity)
	if e.Velocity.Y() <= 0 && m.IsSolid(PosOf(next)) {
		// landed inside a block: snap on top of it
		next[1] = float64(PosOf(next).Y + 1)
		e.Velocity[1] = 0
	}
	e.Position = next

	feet := PosOf(e.Position)
	e.OnGround = m.IsSolid(feet.Down()) && e.Position.Y()-float64(feet.Y) < 0.05
	e.TouchingWater = m.FluidAt(feet) != FluidNone
	e.Submerged = m.FluidAt(PosOf(e.EyePosition())) != FluidNone
}

// Snapshot returns value copies of every live entity.
func (em *EntityManager) Snapshot() []Entity {
	em.mu.RLock()
	defer em.mu.RUnlock()

	result := make([]Entity, 0, len(em.entities))
	for _, e := range em.entities {
		result = append(result, *e)
	}
	return result
}

// Get returns a copy of one entity.
func (em *EntityManager) Get(id uuid.UUID) (Entity, bool) {
	em.mu.RLock()
	defer em.mu.RUnlock()
	for _, e := range em.entities {
		if e.ID == id {
			return *e, true
		}
	}
	return Entity{}, false
}

// Len returns the number of live entities.
func (em *EntityManager) Len() int {
	em.mu.RLock()
	defer em.mu.RUnlock()
	return len(em.entities)
}
