package particles

import (
	"math"

	"github.com/san-kum/orbitsim/internal/physics"
)

const (
	EpisodeTicks = 10
	PerTick      = 5

	Spread    = 0.3
	MinSpeed  = 1.0
	MaxSpeed  = 3.0
	MaxJitter = 5
	MinSize   = 2
	MaxSize   = 5
	MinLife   = 10
	MaxLife   = 20
)

// Source is the random stream particle emission draws from.
type Source interface {
	Float64() float64
	Intn(n int) int
}

type Particle struct {
	Pos  physics.Vec2
	Vel  physics.Vec2
	Size int
	Life int
}

// System owns the live particles and the current thrust episode.
type System struct {
	rng       Source
	particles []Particle
	active    bool
	remaining int
	direction float64
}

func NewSystem(rng Source) *System {
	return &System{
		rng:       rng,
		particles: make([]Particle, 0, PerTick*MaxLife),
	}
}

// Ignite starts a thrust episode with exhaust leaving along direction.
// Igniting during an episode restarts its countdown.
func (s *System) Ignite(direction float64) {
	s.active = true
	s.remaining = EpisodeTicks
	s.direction = direction
}

func (s *System) Active() bool       { return s.active }
func (s *System) Direction() float64 { return s.direction }
func (s *System) Remaining() int     { return s.remaining }

// Particles returns the live particles. The slice is reused by Tick.
func (s *System) Particles() []Particle { return s.particles }

func (s *System) Len() int { return len(s.particles) }

// Reset ends any episode and drops every particle.
func (s *System) Reset() {
	s.active = false
	s.remaining = 0
	s.particles = s.particles[:0]
}

// Tick advances the system by one simulation tick. origin and radius
// describe the emitter, normally the station.
func (s *System) Tick(origin physics.Vec2, radius float64) {
	s.age()

	if !s.active {
		return
	}
	s.remaining--
	if s.remaining <= 0 {
		s.active = false
		s.particles = s.particles[:0]
	}
	for iter := 0; iter < PerTick; iter++ {
		s.particles = append(s.particles, s.emit(origin, radius))
	}
}

func (s *System) age() {
	live := s.particles[:0]
	for _, p := range s.particles {
		p.Pos.X += p.Vel.X
		p.Pos.Y += p.Vel.Y
		p.Life--
		if p.Life > 0 {
			live = append(live, p)
		}
	}
	s.particles = live
}

func (s *System) emit(origin physics.Vec2, radius float64) Particle {
	offset := -Spread + 2*Spread*s.rng.Float64()
	dist := radius + float64(s.rng.Intn(MaxJitter+1))
	angle := s.direction + offset
	cos, sin := math.Cos(angle), math.Sin(angle)

	speed := MinSpeed + (MaxSpeed-MinSpeed)*s.rng.Float64()
	return Particle{
		Pos:  physics.Vec2{X: origin.X - dist*cos, Y: origin.Y - dist*sin},
		Vel:  physics.Vec2{X: speed * cos, Y: speed * sin},
		Size: MinSize + s.rng.Intn(MaxSize-MinSize+1),
		Life: MinLife + s.rng.Intn(MaxLife-MinLife+1),
	}
}
