// Package particles provides transient visual effects for the TUI.
package particles

import (
	"math/rand"
	"time"
)

// Kind selects a visual effect.
type Kind int

// Effect kinds.
const (
	KindCelebration Kind = iota
	KindError
	KindVictory
	KindSparkle
)

// Notifier receives effect requests. Purely cosmetic and fire-and-forget;
// implementations never return errors and never feed back into game state.
type Notifier interface {
	Request(kind Kind, x, y float64, count int)
}

// Nop discards all effect requests.
type Nop struct{}

// Request implements Notifier.
func (Nop) Request(Kind, float64, float64, int) {}

// Particle is a single drifting glyph. X is a 0..1 track fraction,
// Y a row offset above the track line (negative is up).
type Particle struct {
	Kind Kind
	X    float64
	Y    float64
	VX   float64
	VY   float64
	TTL  int
}

// System tracks live particles for rendering. It advances on the same
// tick that drives the game so effects decay deterministically.
type System struct {
	rnd  *rand.Rand
	live []Particle
	max  int
}

const defaultMaxParticles = 256

// NewSystem returns a System seeded with the current time.
func NewSystem() *System {
	return NewSystemSeeded(time.Now().UnixNano())
}

// NewSystemSeeded returns a System with an explicit seed for tests.
func NewSystemSeeded(seed int64) *System {
	return &System{
		rnd: rand.New(rand.NewSource(seed)),
		max: defaultMaxParticles,
	}
}

// Request implements Notifier by spawning count particles around (x, y).
func (s *System) Request(kind Kind, x, y float64, count int) {
	if s == nil || count <= 0 {
		return
	}
	for i := 0; i < count; i++ {
		if len(s.live) >= s.max {
			return
		}
		s.live = append(s.live, Particle{
			Kind: kind,
			X:    x + (s.rnd.Float64()-0.5)*0.08,
			Y:    y + (s.rnd.Float64()-0.5)*2,
			VX:   (s.rnd.Float64() - 0.5) * 0.02,
			VY:   -s.rnd.Float64() * 0.6,
			TTL:  ttlFor(kind, s.rnd),
		})
	}
}

func ttlFor(kind Kind, rnd *rand.Rand) int {
	switch kind {
	case KindVictory:
		return 12 + rnd.Intn(8)
	case KindCelebration:
		return 8 + rnd.Intn(6)
	case KindError:
		return 4 + rnd.Intn(3)
	default:
		return 6 + rnd.Intn(4)
	}
}

// Advance moves particles one tick and drops expired ones.
func (s *System) Advance() {
	out := s.live[:0]
	for _, p := range s.live {
		p.TTL--
		if p.TTL <= 0 {
			continue
		}
		p.X += p.VX
		p.Y += p.VY
		out = append(out, p)
	}
	s.live = out
}

// Live returns the particles currently alive, for rendering.
func (s *System) Live() []Particle {
	return s.live
}

// Clear drops all particles. Called on session reset.
func (s *System) Clear() {
	s.live = nil
}
