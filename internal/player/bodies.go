package player

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"windswept/internal/physics"
	"windswept/internal/world"
)

// Step heights a body may climb without stopping, on land and out of water.
const (
	StepHeight     = 1.01
	SwimStepHeight = 1.6
)

// Body is one scripted entity. Step runs once per tick before the world moves entities.
type Body interface {
	ID() uuid.UUID
	Step(w *world.World, tick int64)
}

// blocked reports whether the body's next horizontal move runs into a wall too tall to step up.
func blocked(g physics.Solid, e *world.Entity) bool {
	if e.Velocity[0] == 0 && e.Velocity[2] == 0 {
		return false
	}
	lift := StepHeight
	if e.TouchingWater {
		lift = SwimStepHeight
	}
	next := e.Position.Add(mgl64.Vec3{e.Velocity.X(), lift, e.Velocity.Z()})
	return physics.Collides(next, e.Width, e.Height, g)
}

// Walker follows a looping route of waypoints.
type Walker struct {
	id     uuid.UUID
	route  []mgl64.Vec3
	next   int
	speed  float64
	sprint bool
	pause  int // ticks to idle at each waypoint
	idle   int
}

// NewWalker drives the entity with the given id along route. A sprinting walker moves
// SprintMultiplier times faster and reports itself as sprinting.
func NewWalker(id uuid.UUID, route []mgl64.Vec3, sprint bool, pauseTicks int) *Walker {
	speed := WalkSpeed
	if sprint {
		speed *= SprintMultiplier
	}
	return &Walker{id: id, route: route, speed: speed, sprint: sprint, pause: pauseTicks}
}

func (w *Walker) ID() uuid.UUID { return w.id }

// Waypoint returns the index of the waypoint being walked to.
func (w *Walker) Waypoint() int { return w.next }

func (w *Walker) Step(wd *world.World, _ int64) {
	wd.EntityManager().Mutate(w.id, func(e *world.Entity) {
		Fall(e)
		e.Swimming = e.Submerged
		if len(w.route) == 0 {
			return
		}
		if w.idle > 0 {
			w.idle--
			Stop(e)
			e.Sprinting = false
			return
		}
		e.Sprinting = w.sprint
		arrived := Steer(e, w.route[w.next], w.speed)
		if !arrived && blocked(wd, e) {
			// give up on this waypoint
			Stop(e)
			arrived = true
		}
		if arrived {
			w.next = (w.next + 1) % len(w.route)
			w.idle = w.pause
		}
	})
}

// Wanderer picks a random target around home every few seconds, like a grazing animal.
type Wanderer struct {
	id      uuid.UUID
	home    mgl64.Vec3
	radius  float64
	speed   float64
	every   int64
	rng     *rand.Rand
	target  mgl64.Vec3
	resting bool
	hasGoal bool
}

// NewWanderer keeps the entity within radius blocks of home, retargeting every everyTicks.
func NewWanderer(id uuid.UUID, home mgl64.Vec3, radius, speed float64, everyTicks int64, seed int64) *Wanderer {
	return &Wanderer{
		id:     id,
		home:   home,
		radius: radius,
		speed:  speed,
		every:  max(everyTicks, 1),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

func (w *Wanderer) ID() uuid.UUID { return w.id }

func (w *Wanderer) Step(wd *world.World, tick int64) {
	if !w.hasGoal || tick%w.every == 0 {
		w.hasGoal = true
		w.resting = w.rng.Float64() < 0.3
		w.target = w.home.Add(mgl64.Vec3{
			(w.rng.Float64()*2 - 1) * w.radius,
			0,
			(w.rng.Float64()*2 - 1) * w.radius,
		})
	}
	wd.EntityManager().Mutate(w.id, func(e *world.Entity) {
		Fall(e)
		if w.resting {
			Stop(e)
			return
		}
		if !Steer(e, w.target, w.speed) && blocked(wd, e) {
			Stop(e)
			w.resting = true
		}
	})
}

// Dropper releases an item entity at a fixed point every few ticks and removes items that have
// lived past their lifetime.
type Dropper struct {
	id       uuid.UUID
	at       mgl64.Vec3
	every    int64
	lifetime int64
	limit    int
	live     []drop
}

type drop struct {
	id   uuid.UUID
	born int64
}

// NewDropper drops an item at `at` every everyTicks, keeping at most limit alive.
func NewDropper(at mgl64.Vec3, everyTicks, lifetimeTicks int64, limit int) *Dropper {
	return &Dropper{
		id:       uuid.New(),
		at:       at,
		every:    max(everyTicks, 1),
		lifetime: lifetimeTicks,
		limit:    limit,
	}
}

func (d *Dropper) ID() uuid.UUID { return d.id }

// Live returns how many dropped items are still alive.
func (d *Dropper) Live() int { return len(d.live) }

func (d *Dropper) Step(w *world.World, tick int64) {
	em := w.EntityManager()
	kept := d.live[:0]
	for _, it := range d.live {
		if tick-it.born >= d.lifetime {
			em.Mutate(it.id, func(e *world.Entity) { e.Alive = false })
			continue
		}
		em.Mutate(it.id, Fall)
		kept = append(kept, it)
	}
	d.live = kept

	if tick%d.every == 0 && len(d.live) < d.limit {
		item := world.NewEntity(world.KindItem, d.at, 0.25, 0.25)
		em.Add(item)
		d.live = append(d.live, drop{id: item.ID, born: tick})
	}
}
