package reactphysics3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ConstraintRow is one scalar row of the mixed linear complementarity
// problem a velocity solver assembles from the live contacts. The Jacobian
// is split into a linear and an angular block per body; the row's impulse
// is clamped to [LowerBound, UpperBound]; ErrorValue is the bias term added
// to the relative velocity the row drives to zero.
//
// The manifold layer never consumes this interface. It exists for the
// solver sitting on top.
type ConstraintRow interface {
	JacobianBody1() (linear, angular mgl64.Vec3)
	JacobianBody2() (linear, angular mgl64.Vec3)
	LowerBound() float64
	UpperBound() float64
	ErrorValue() float64
}

// ContactRows builds the three solver rows of one contact point: a
// non-penetration row along the normal and two friction rows along the
// tangent basis.
//
// The non-penetration row can only push (bounds [0, +inf)); its bias
// combines Baumgarte positional feedback on the remaining penetration with
// restitution applied to the approach speed. The friction rows are bounded
// by the usual mu*m*g cone linearization, with m the combined mass of the
// pair and g the gravity magnitude, and carry no bias.
func ContactRows(contact *Contact, body1, body2 *RigidBody, cfg RowConfig) []ConstraintRow {
	frictionBound := cfg.Friction * (body1.Mass() + body2.Mass()) * cfg.GravityMagnitude
	return []ConstraintRow{
		&normalContactRow{
			contact:   contact,
			body1:     body1,
			body2:     body2,
			baumgarte: cfg.Baumgarte,
			invDt:     1.0 / cfg.Dt,
		},
		&frictionContactRow{
			contact:   contact,
			body1:     body1,
			body2:     body2,
			direction: contact.FrictionVector1(),
			bound:     frictionBound,
		},
		&frictionContactRow{
			contact:   contact,
			body1:     body1,
			body2:     body2,
			direction: contact.FrictionVector2(),
			bound:     frictionBound,
		},
	}
}

// RowConfig carries the per-step quantities row construction needs.
type RowConfig struct {
	Dt               float64
	Friction         float64
	GravityMagnitude float64
	Baumgarte        float64
}

// rowConfig derives the row construction inputs from world settings.
func (s *WorldSettings) rowConfig(dt float64) RowConfig {
	return RowConfig{
		Dt:               dt,
		Friction:         s.FrictionCoefficient,
		GravityMagnitude: s.Gravity.Len(),
		Baumgarte:        s.BaumgarteFactor,
	}
}

type normalContactRow struct {
	contact   *Contact
	body1     *RigidBody
	body2     *RigidBody
	baumgarte float64
	invDt     float64
}

func (r *normalContactRow) arms() (r1, r2 mgl64.Vec3) {
	r1 = r.contact.WorldPointOnBody1().Sub(r.body1.Transform().Position)
	r2 = r.contact.WorldPointOnBody2().Sub(r.body2.Transform().Position)
	return r1, r2
}

func (r *normalContactRow) JacobianBody1() (mgl64.Vec3, mgl64.Vec3) {
	r1, _ := r.arms()
	n := r.contact.Normal()
	return n.Mul(-1), r1.Cross(n).Mul(-1)
}

func (r *normalContactRow) JacobianBody2() (mgl64.Vec3, mgl64.Vec3) {
	_, r2 := r.arms()
	n := r.contact.Normal()
	return n, r2.Cross(n)
}

func (r *normalContactRow) LowerBound() float64 { return 0 }
func (r *normalContactRow) UpperBound() float64 { return math.Inf(1) }

// ErrorValue is the velocity the row must gain: Baumgarte feedback pushes
// the bodies apart by a fraction of the penetration per step, and the
// restitution term (product of the bodies' coefficients) reflects the
// approach speed when the bodies are closing.
func (r *normalContactRow) ErrorValue() float64 {
	bias := r.baumgarte * r.invDt * r.contact.PenetrationDepth()

	r1, r2 := r.arms()
	v1 := r.body1.LinearVelocity().Add(r.body1.AngularVelocity().Cross(r1))
	v2 := r.body2.LinearVelocity().Add(r.body2.AngularVelocity().Cross(r2))
	closing := v2.Sub(v1).Dot(r.contact.Normal())
	if closing < 0 {
		bias += -r.body1.Restitution() * r.body2.Restitution() * closing
	}
	return bias
}

type frictionContactRow struct {
	contact   *Contact
	body1     *RigidBody
	body2     *RigidBody
	direction mgl64.Vec3
	bound     float64
}

func (r *frictionContactRow) JacobianBody1() (mgl64.Vec3, mgl64.Vec3) {
	r1 := r.contact.WorldPointOnBody1().Sub(r.body1.Transform().Position)
	return r.direction.Mul(-1), r1.Cross(r.direction).Mul(-1)
}

func (r *frictionContactRow) JacobianBody2() (mgl64.Vec3, mgl64.Vec3) {
	r2 := r.contact.WorldPointOnBody2().Sub(r.body2.Transform().Position)
	return r.direction, r2.Cross(r.direction)
}

func (r *frictionContactRow) LowerBound() float64 { return -r.bound }
func (r *frictionContactRow) UpperBound() float64 { return r.bound }
func (r *frictionContactRow) ErrorValue() float64 { return 0 }
