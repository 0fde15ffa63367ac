package reactphysics3d

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// BodyID identifies a rigid body inside one world.
type BodyID uint64

// RigidBody carries a body's placement, mass properties and velocities.
// It holds no collision shape: contact geometry is produced by the caller's
// narrow phase and only consumed here.
//
// The inverse mass and inverse inertia tensor are cached at construction
// since the solver reads them far more often than the plain values.
type RigidBody struct {
	id BodyID

	transform         Transform
	previousTransform Transform

	mass               float64
	inverseMass        float64
	inertiaTensorLocal mgl64.Mat3
	inverseInertia     mgl64.Mat3

	linearVelocity  mgl64.Vec3
	angularVelocity mgl64.Vec3

	restitution      float64
	motionEnabled    bool
	collisionEnabled bool
}

// newRigidBody builds a body with the inverse mass properties cached.
// Mass must be positive and the inertia tensor invertible; violations are
// construction bugs and panic.
func newRigidBody(id BodyID, transform Transform, mass float64, inertiaTensorLocal mgl64.Mat3, restitution float64) *RigidBody {
	if mass <= 0 {
		panic(fmt.Sprintf("rigid body %d: mass must be positive, got %g", id, mass))
	}
	if inertiaTensorLocal.Det() == 0 {
		panic(fmt.Sprintf("rigid body %d: inertia tensor is singular", id))
	}
	return &RigidBody{
		id:                 id,
		transform:          transform,
		previousTransform:  transform,
		mass:               mass,
		inverseMass:        1.0 / mass,
		inertiaTensorLocal: inertiaTensorLocal,
		inverseInertia:     inertiaTensorLocal.Inv(),
		restitution:        restitution,
		motionEnabled:      true,
		collisionEnabled:   true,
	}
}

func (b *RigidBody) ID() BodyID           { return b.id }
func (b *RigidBody) Transform() Transform { return b.transform }
func (b *RigidBody) Mass() float64        { return b.mass }
func (b *RigidBody) InverseMass() float64 { return b.inverseMass }

func (b *RigidBody) LinearVelocity() mgl64.Vec3  { return b.linearVelocity }
func (b *RigidBody) AngularVelocity() mgl64.Vec3 { return b.angularVelocity }

func (b *RigidBody) SetTransform(t Transform)        { b.transform = t }
func (b *RigidBody) SetLinearVelocity(v mgl64.Vec3)  { b.linearVelocity = v }
func (b *RigidBody) SetAngularVelocity(w mgl64.Vec3) { b.angularVelocity = w }

func (b *RigidBody) Restitution() float64 { return b.restitution }

// SetRestitution clamps to the physical range [0,1].
func (b *RigidBody) SetRestitution(e float64) {
	b.restitution = mgl64.Clamp(e, 0, 1)
}

// MotionEnabled reports whether the solver may move this body. Disabled
// bodies still collide; they act as infinite-mass obstacles.
func (b *RigidBody) MotionEnabled() bool      { return b.motionEnabled }
func (b *RigidBody) SetMotionEnabled(on bool) { b.motionEnabled = on }

// CollisionEnabled reports whether the body takes part in collision at all.
// The world ignores overlap candidates involving a disabled body, which also
// tears down any pair the body already participates in.
func (b *RigidBody) CollisionEnabled() bool      { return b.collisionEnabled }
func (b *RigidBody) SetCollisionEnabled(on bool) { b.collisionEnabled = on }

// InertiaTensorLocal returns the body-frame inertia tensor the body was
// created with.
func (b *RigidBody) InertiaTensorLocal() mgl64.Mat3 { return b.inertiaTensorLocal }

// InverseInertiaTensorWorld re-expresses the cached inverse inertia tensor
// in world coordinates for the current orientation.
func (b *RigidBody) InverseInertiaTensorWorld() mgl64.Mat3 {
	r := b.transform.Orientation.Mat4().Mat3()
	return r.Mul3(b.inverseInertia).Mul3(r.Transpose())
}

// InterpolatedTransform blends the placement at the start of the current
// step with the current placement. factor comes from Timer and is 0 right
// after a step, approaching 1 as the next step gets due.
func (b *RigidBody) InterpolatedTransform(factor float64) Transform {
	return InterpolateTransforms(b.previousTransform, b.transform, factor)
}

// markStepStart snapshots the placement interpolation starts from.
func (b *RigidBody) markStepStart() {
	b.previousTransform = b.transform
}
