package reactphysics3d

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

const (
	// MaxContactPointsInManifold bounds how many contact points a single
	// body pair keeps alive across steps. The eviction geometry in
	// ContactManifold is specialized to exactly four slots.
	MaxContactPointsInManifold = 4

	// PersistentContactDistanceThreshold is the maximum tangential drift,
	// in world units, between the two world anchors of a cached contact
	// before the point stops describing the same contact feature.
	PersistentContactDistanceThreshold = 0.02

	// contactEquivalenceTolerance is the per-component tolerance under
	// which two body1-local anchor points count as the same feature.
	contactEquivalenceTolerance = 1e-6
)

const (
	DefaultContactPoolCapacity = 256
	DefaultPairPoolCapacity    = 64
	DefaultFrictionCoefficient = 0.3
	DefaultBaumgarteFactor     = 0.2
	DefaultRestitution         = 1.0
)

// WorldSettings is the creation-time configuration of a World. Zero values
// are filled in by validation where a sane default exists; capacities and
// coefficients outside their domain are rejected.
type WorldSettings struct {
	// WorldName identifies the world in log output. Left empty, a
	// uuid-derived name is assigned at creation.
	WorldName string

	Gravity mgl64.Vec3

	// ContactDistanceThreshold is how far the two world anchors of a cached
	// contact may drift apart tangentially before the point is dropped.
	// Zero selects PersistentContactDistanceThreshold.
	ContactDistanceThreshold float64

	// ContactPoolCapacity and PairPoolCapacity size the fixed block pools
	// backing contacts and overlapping pairs. Exhausting either pool at
	// runtime is fatal, so they must cover the expected peak load.
	ContactPoolCapacity int
	PairPoolCapacity    int

	// FrictionCoefficient scales the friction impulse bounds of the
	// constraint rows built from each contact.
	FrictionCoefficient float64

	// BaumgarteFactor is the fraction of the remaining penetration fed
	// back as a velocity bias each step.
	BaumgarteFactor float64

	// DefaultRestitution is assigned to bodies created without an
	// explicit restitution.
	DefaultRestitution float64
}

// DefaultWorldSettings returns the configuration the engine was tuned with.
func DefaultWorldSettings() WorldSettings {
	return WorldSettings{
		Gravity:                  mgl64.Vec3{0, -9.81, 0},
		ContactDistanceThreshold: PersistentContactDistanceThreshold,
		ContactPoolCapacity:      DefaultContactPoolCapacity,
		PairPoolCapacity:         DefaultPairPoolCapacity,
		FrictionCoefficient:      DefaultFrictionCoefficient,
		BaumgarteFactor:          DefaultBaumgarteFactor,
		DefaultRestitution:       DefaultRestitution,
	}
}

// validate fills defaulted fields in place and reports the first setting
// that cannot be repaired.
func (s *WorldSettings) validate() error {
	if s.WorldName == "" {
		s.WorldName = "world-" + uuid.NewString()
	}
	if s.ContactDistanceThreshold == 0 {
		s.ContactDistanceThreshold = PersistentContactDistanceThreshold
	}
	if s.ContactPoolCapacity == 0 {
		s.ContactPoolCapacity = DefaultContactPoolCapacity
	}
	if s.PairPoolCapacity == 0 {
		s.PairPoolCapacity = DefaultPairPoolCapacity
	}
	for _, g := range s.Gravity {
		if math.IsNaN(g) || math.IsInf(g, 0) {
			return fmt.Errorf("gravity must be finite, got %v", s.Gravity)
		}
	}
	if s.ContactDistanceThreshold < 0 || math.IsNaN(s.ContactDistanceThreshold) || math.IsInf(s.ContactDistanceThreshold, 0) {
		return fmt.Errorf("contact distance threshold must be positive and finite, got %g", s.ContactDistanceThreshold)
	}
	if s.ContactPoolCapacity < MaxContactPointsInManifold {
		return fmt.Errorf("contact pool capacity %d cannot hold a single full manifold of %d points",
			s.ContactPoolCapacity, MaxContactPointsInManifold)
	}
	if s.PairPoolCapacity < 1 {
		return fmt.Errorf("pair pool capacity must be positive, got %d", s.PairPoolCapacity)
	}
	if s.FrictionCoefficient < 0 {
		return fmt.Errorf("friction coefficient must be non-negative, got %g", s.FrictionCoefficient)
	}
	if s.BaumgarteFactor < 0 || s.BaumgarteFactor > 1 {
		return fmt.Errorf("baumgarte factor must be in [0,1], got %g", s.BaumgarteFactor)
	}
	if s.DefaultRestitution < 0 || s.DefaultRestitution > 1 {
		return fmt.Errorf("default restitution must be in [0,1], got %g", s.DefaultRestitution)
	}
	return nil
}
