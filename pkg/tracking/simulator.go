// Package tracking simulates a surgical tracking device: it generates
// position/orientation samples at a fixed rate and distributes them to
// subscribers without blocking. The simulator also serves as the reference
// point source for placement planning, standing in for a real tracking
// system during development.
package tracking

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"screwplanner/internal/models"
	"screwplanner/pkg/geometry"
	"screwplanner/pkg/snapshot"
)

// The simulator doubles as the planner's reference point source.
var _ snapshot.ReferencePointSource = (*Simulator)(nil)

// Mode selects the simulated motion path.
type Mode string

const (
	// ModeCircular orbits the center in the axial plane with a slight
	// superior/inferior drift.
	ModeCircular Mode = "circular"

	// ModeLinearAxial oscillates along the superior/inferior (Z) axis.
	ModeLinearAxial Mode = "linear-axial"

	// ModeLinearSagittal oscillates along the left/right (X) axis.
	ModeLinearSagittal Mode = "linear-sagittal"

	// ModeLinearCoronal oscillates along the anterior/posterior (Y) axis.
	ModeLinearCoronal Mode = "linear-coronal"

	// ModeRandomWalk jitters the position and orientation randomly.
	ModeRandomWalk Mode = "random-walk"
)

// Simulation step constants: the device nominally reports at 20 Hz, so each
// step advances the path parameter by 50 ms.
const (
	stepDelta  = 0.05
	sampleRate = 20.0
)

// Simulator produces tracking samples along a configurable synthetic path.
// The zero value is not usable; create one with NewSimulator.
type Simulator struct {
	mu     sync.Mutex
	mode   Mode
	t      float64
	center geometry.Vec3
	radius float64
	speed  float64
	active bool
	last   models.TrackingSample
	hasFix bool
	rng    *rand.Rand
	now    func() time.Time
}

// SimulatorOption configures a Simulator.
type SimulatorOption func(*Simulator)

// WithCenter sets the path center in patient coordinates (mm).
func WithCenter(c geometry.Vec3) SimulatorOption {
	return func(s *Simulator) { s.center = c }
}

// WithRadius sets the circular path radius in mm.
func WithRadius(r float64) SimulatorOption {
	return func(s *Simulator) { s.radius = r }
}

// WithSpeed sets the angular speed of the circular path.
func WithSpeed(v float64) SimulatorOption {
	return func(s *Simulator) { s.speed = v }
}

// WithSeed makes the random-walk path deterministic.
func WithSeed(seed uint64) SimulatorOption {
	return func(s *Simulator) { s.rng = rand.New(rand.NewPCG(seed, seed)) }
}

// NewSimulator creates a simulator centered on the default 64x64 volume
// with 3.2 mm spacing: the image spans 204.8 mm per axis, so the center
// sits at (102.4, 102.4, 70).
func NewSimulator(mode Mode, opts ...SimulatorOption) *Simulator {
	s := &Simulator{
		mode:   mode,
		center: geometry.V(102.4, 102.4, 70),
		radius: 50,
		speed:  0.5,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start activates sample generation and rewinds the path parameter.
func (s *Simulator) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = true
	s.t = 0
}

// Stop deactivates sample generation. The last sample remains available
// until ClearCache is called.
func (s *Simulator) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
}

// SetMode switches the motion path without rewinding.
func (s *Simulator) SetMode(mode Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

// SetCenter re-anchors the path, e.g. to a point picked in the viewer.
func (s *Simulator) SetCenter(c geometry.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.center = c
}

// Step advances the path by one 50 ms tick and returns the new sample.
func (s *Simulator) Step() models.TrackingSample {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pos, dir geometry.Vec3
	switch s.mode {
	case ModeLinearAxial:
		pos = geometry.V(s.center[0], s.center[1], s.center[2]+math.Sin(s.t*0.5)*50)
		dir = geometry.V(0, 0, math.Cos(s.t*0.5))
	case ModeLinearSagittal:
		pos = geometry.V(s.center[0]+math.Sin(s.t*0.5)*50, s.center[1], s.center[2])
		dir = geometry.V(math.Cos(s.t*0.5), 0, 0)
	case ModeLinearCoronal:
		pos = geometry.V(s.center[0], s.center[1]+math.Sin(s.t*0.5)*50, s.center[2])
		dir = geometry.V(0, math.Cos(s.t*0.5), 0)
	case ModeRandomWalk:
		s.center = s.center.Add(geometry.V(
			s.rng.Float64()*4-2,
			s.rng.Float64()*4-2,
			s.rng.Float64()*2-1,
		))
		pos = s.center
		dir = geometry.V(
			s.rng.Float64()*2-1,
			s.rng.Float64()*2-1,
			s.rng.Float64()-0.5,
		).Normalize()
	default: // ModeCircular
		angle := s.t * s.speed
		pos = geometry.V(
			s.center[0]+s.radius*math.Cos(angle),
			s.center[1]+s.radius*math.Sin(angle),
			s.center[2]+math.Sin(s.t*0.2)*20,
		)
		// Instrument points back toward the path center.
		dir = geometry.V(-math.Cos(angle), -math.Sin(angle), -0.1)
	}

	s.t += stepDelta
	s.last = models.TrackingSample{
		Position:    pos,
		Orientation: dir,
		Timestamp:   float64(s.now().UnixNano()) / 1e9,
		FrameID:     int(s.t * sampleRate),
	}
	s.hasFix = true
	return s.last
}

// Active reports whether the simulator is generating samples.
func (s *Simulator) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// ReferencePoint returns the most recent tracked position. It reports false
// until the first sample has been produced or after ClearCache. This makes
// the simulator usable wherever a crosshair reference point is expected.
func (s *Simulator) ReferencePoint() (geometry.Vec3, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasFix {
		return geometry.Vec3{}, false
	}
	return s.last.Position, true
}

// ClearCache forgets the cached position so the next read reflects a fresh
// sample.
func (s *Simulator) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hasFix = false
}
