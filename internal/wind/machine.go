package wind

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// noneRoll is the ninth outcome of the daily direction roll.
const noneRoll = DirectionCount

// Machine owns the session's wind state. It has a single writer, the tick driver.
type Machine struct {
	state State
}

// NewMachine starts a session with a normal easterly breeze. The first change happens
// on the first day after startDay.
func NewMachine(startDay int64) *Machine {
	return &Machine{state: initialState(startDay)}
}

func initialState(day int64) State {
	return State{
		Direction:     mgl64.Vec3{1, lift, 0}.Normalize(),
		Type:          Normal,
		LastChangeDay: day,
	}
}

// State returns the current reading.
func (m *Machine) State() State { return m.state }

// CurrentWindVector returns the unit direction and scalar strength.
func (m *Machine) CurrentWindVector() (mgl64.Vec3, float64) {
	return m.state.Direction, m.state.Strength()
}

// Advance rolls a new wind when day has moved past the last change. Otherwise it
// returns the current state unchanged.
//
// One of nine outcomes is drawn uniformly: eight compass directions or a calm day.
// Thunder forces Storm; rain gives Heavy 60%, else Soft or Normal evenly; clear
// weather rolls the biome weights.
func (m *Machine) Advance(day int64, thundering, raining bool, w Weights, rng *rand.Rand) State {
	if day <= m.state.LastChangeDay {
		return m.state
	}

	next := State{LastChangeDay: day}
	idx := rng.Intn(DirectionCount + 1)
	if idx == noneRoll {
		next.Type = None
	} else {
		next.Direction = CompassDirection(idx)
		switch {
		case thundering:
			next.Type = Storm
		case raining:
			if rng.Float64() < 0.6 {
				next.Type = Heavy
			} else if rng.Float64() < 0.5 {
				next.Type = Soft
			} else {
				next.Type = Normal
			}
		default:
			next.Type = w.Roll(rng.Float64())
		}
	}
	m.state = next
	return next
}

// SetWind overrides the wind and restarts the daily clock at day.
// Type None always yields a zero direction; a zero direction with any other type keeps the old one.
func (m *Machine) SetWind(dir mgl64.Vec3, t Type, day int64) State {
	next := State{Type: t, LastChangeDay: day}
	switch {
	case t == None:
	case dir.Len() == 0:
		next.Direction = m.state.Direction
		if next.Direction.Len() == 0 {
			next.Direction = CompassDirection(0)
		}
	default:
		next.Direction = dir.Normalize()
	}
	m.state = next
	return next
}

// Reset returns the machine to its session-start state.
func (m *Machine) Reset(day int64) {
	m.state = initialState(day)
}
