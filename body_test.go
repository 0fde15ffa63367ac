package reactphysics3d

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestNewRigidBody_CachesInverses(t *testing.T) {
	inertia := mgl64.Mat3{2, 0, 0, 0, 4, 0, 0, 0, 8}
	b := newRigidBody(7, IdentityTransform(), 4.0, inertia, 1.0)

	if b.InverseMass() != 0.25 {
		t.Errorf("inverse mass = %g, want 0.25", b.InverseMass())
	}
	want := mgl64.Mat3{0.5, 0, 0, 0, 0.25, 0, 0, 0, 0.125}
	if got := b.InverseInertiaTensorWorld(); got != want {
		t.Errorf("inverse inertia at identity = %v, want %v", got, want)
	}
	if b.InertiaTensorLocal() != inertia {
		t.Errorf("local inertia tensor changed: %v", b.InertiaTensorLocal())
	}
}

func TestNewRigidBody_RejectsBadMassProperties(t *testing.T) {
	expectPanic(t, "zero mass", func() {
		newRigidBody(1, IdentityTransform(), 0, mgl64.Ident3(), 1.0)
	})
	expectPanic(t, "negative mass", func() {
		newRigidBody(1, IdentityTransform(), -2, mgl64.Ident3(), 1.0)
	})
	expectPanic(t, "singular inertia", func() {
		newRigidBody(1, IdentityTransform(), 1, mgl64.Mat3{}, 1.0)
	})
}

func TestRigidBody_SetRestitutionClamps(t *testing.T) {
	b := newRigidBody(1, IdentityTransform(), 1.0, mgl64.Ident3(), 1.0)

	b.SetRestitution(1.5)
	if b.Restitution() != 1 {
		t.Errorf("restitution above 1 must clamp, got %g", b.Restitution())
	}
	b.SetRestitution(-0.2)
	if b.Restitution() != 0 {
		t.Errorf("restitution below 0 must clamp, got %g", b.Restitution())
	}
	b.SetRestitution(0.42)
	if b.Restitution() != 0.42 {
		t.Errorf("restitution = %g, want 0.42", b.Restitution())
	}
}

func TestRigidBody_InverseInertiaTensorWorldFollowsOrientation(t *testing.T) {
	inertia := mgl64.Mat3{1, 0, 0, 0, 2, 0, 0, 0, 4}
	b := newRigidBody(1, IdentityTransform(), 1.0, inertia, 1.0)

	// A quarter turn about z swaps the x and y principal axes.
	b.SetTransform(NewTransform(mgl64.Vec3{}, mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})))

	got := b.InverseInertiaTensorWorld()
	want := mgl64.Mat3{0.5, 0, 0, 0, 1, 0, 0, 0, 0.25}
	for i := range want {
		if diff := got[i] - want[i]; diff > 1e-12 || diff < -1e-12 {
			t.Fatalf("world inverse inertia element %d = %g, want %g", i, got[i], want[i])
		}
	}
}

func TestRigidBody_InterpolatedTransform(t *testing.T) {
	b := newRigidBody(1, IdentityTransform(), 1.0, mgl64.Ident3(), 1.0)

	b.SetTransform(NewTransform(mgl64.Vec3{2, 0, 0}, mgl64.QuatIdent()))
	b.markStepStart()
	b.SetTransform(NewTransform(mgl64.Vec3{4, 0, 0}, mgl64.QuatIdent()))

	if got := b.InterpolatedTransform(0).Position; !vec3Near(got, mgl64.Vec3{2, 0, 0}, 1e-12) {
		t.Errorf("factor 0 should give the step-start placement, got %v", got)
	}
	if got := b.InterpolatedTransform(1).Position; !vec3Near(got, mgl64.Vec3{4, 0, 0}, 1e-12) {
		t.Errorf("factor 1 should give the current placement, got %v", got)
	}
	if got := b.InterpolatedTransform(0.5).Position; !vec3Near(got, mgl64.Vec3{3, 0, 0}, 1e-12) {
		t.Errorf("midpoint = %v, want (3,0,0)", got)
	}
}

func TestRigidBody_VelocityAndMotionAccessors(t *testing.T) {
	b := newRigidBody(1, IdentityTransform(), 1.0, mgl64.Ident3(), 1.0)

	b.SetLinearVelocity(mgl64.Vec3{1, 2, 3})
	b.SetAngularVelocity(mgl64.Vec3{0, 0, 5})
	if b.LinearVelocity() != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("linear velocity = %v", b.LinearVelocity())
	}
	if b.AngularVelocity() != (mgl64.Vec3{0, 0, 5}) {
		t.Errorf("angular velocity = %v", b.AngularVelocity())
	}

	if !b.MotionEnabled() {
		t.Error("bodies should start with motion enabled")
	}
	b.SetMotionEnabled(false)
	if b.MotionEnabled() {
		t.Error("SetMotionEnabled(false) did not stick")
	}
}
