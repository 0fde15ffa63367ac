package reactphysics3d

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestTangentBasis_Properties(t *testing.T) {
	s := 1 / math.Sqrt(3)
	normals := []mgl64.Vec3{
		{0, 0, 1},
		{0, 0, -1},
		{1, 0, 0},
		{0, 1, 0},
		{s, s, s},
		mgl64.Vec3{-0.3, 0.9, 0.1}.Normalize(),
	}

	for _, n := range normals {
		t1, t2 := tangentBasis(n)

		if d := math.Abs(t1.Dot(n)); d > 1e-12 {
			t.Errorf("n=%v: t1 not orthogonal to normal, dot %g", n, d)
		}
		if d := math.Abs(t2.Dot(n)); d > 1e-12 {
			t.Errorf("n=%v: t2 not orthogonal to normal, dot %g", n, d)
		}
		if d := math.Abs(t1.Dot(t2)); d > 1e-12 {
			t.Errorf("n=%v: tangents not orthogonal, dot %g", n, d)
		}
		if d := math.Abs(t1.Len() - 1); d > 1e-12 {
			t.Errorf("n=%v: t1 not unit length, |t1|=%g", n, t1.Len())
		}
		if d := math.Abs(t2.Len() - 1); d > 1e-12 {
			t.Errorf("n=%v: t2 not unit length, |t2|=%g", n, t2.Len())
		}
		if cross := t1.Cross(t2); !vec3Near(cross, n, 1e-12) {
			t.Errorf("n=%v: basis not right-handed, t1 x t2 = %v", n, cross)
		}

		u1, u2 := tangentBasis(n)
		if u1 != t1 || u2 != t2 {
			t.Errorf("n=%v: basis not deterministic", n)
		}
	}
}

func TestNewContact_InitialState(t *testing.T) {
	pool := NewPool[Contact]("contacts", 4)
	info := ContactInfo{
		Normal:           mgl64.Vec3{0, 1, 0},
		PenetrationDepth: 0.25,
		LocalPointBody1:  mgl64.Vec3{1, 2, 3},
		LocalPointBody2:  mgl64.Vec3{-1, 0, 4},
	}

	c := NewContact(pool, info)

	if c.Normal() != info.Normal {
		t.Errorf("normal = %v, want %v", c.Normal(), info.Normal)
	}
	if c.LocalPointOnBody1() != info.LocalPointBody1 {
		t.Errorf("local point 1 = %v, want %v", c.LocalPointOnBody1(), info.LocalPointBody1)
	}
	if c.LocalPointOnBody2() != info.LocalPointBody2 {
		t.Errorf("local point 2 = %v, want %v", c.LocalPointOnBody2(), info.LocalPointBody2)
	}
	if c.PenetrationDepth() != info.PenetrationDepth {
		t.Errorf("depth = %g, want %g", c.PenetrationDepth(), info.PenetrationDepth)
	}
	if got := c.WorldPointOnBody1(); got != (mgl64.Vec3{}) {
		t.Errorf("world point 1 should start zero, got %v", got)
	}
	if got := c.WorldPointOnBody2(); got != (mgl64.Vec3{}) {
		t.Errorf("world point 2 should start zero, got %v", got)
	}
	if cross := c.FrictionVector1().Cross(c.FrictionVector2()); !vec3Near(cross, info.Normal, 1e-12) {
		t.Errorf("friction basis not aligned with normal: %v", cross)
	}
}

func TestContact_Mutators(t *testing.T) {
	pool := NewPool[Contact]("contacts", 4)
	c := NewContact(pool, ContactInfo{Normal: mgl64.Vec3{0, 0, 1}, PenetrationDepth: 1})

	c.SetWorldPointOnBody1(mgl64.Vec3{1, 2, 3})
	c.SetWorldPointOnBody2(mgl64.Vec3{4, 5, 6})
	c.SetPenetrationDepth(0.75)

	if c.WorldPointOnBody1() != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("world point 1 = %v", c.WorldPointOnBody1())
	}
	if c.WorldPointOnBody2() != (mgl64.Vec3{4, 5, 6}) {
		t.Errorf("world point 2 = %v", c.WorldPointOnBody2())
	}
	if c.PenetrationDepth() != 0.75 {
		t.Errorf("depth = %g", c.PenetrationDepth())
	}
}
