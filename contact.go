package reactphysics3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ContactInfo is the raw result a narrow-phase routine reports for one
// detected contact point. Normal must be unit length and point from body1
// toward body2 in world space at detection time; the anchor points are
// expressed in each body's local frame so they stay meaningful as the
// bodies move.
type ContactInfo struct {
	Normal           mgl64.Vec3
	PenetrationDepth float64
	LocalPointBody1  mgl64.Vec3
	LocalPointBody2  mgl64.Vec3
}

// Contact is one persistent contact point between two bodies. The normal,
// the local anchors and the friction basis are fixed at creation; the world
// anchors and the penetration depth are refreshed by the owning manifold as
// the bodies move.
//
// Contacts live in pool blocks and are only ever created through NewContact.
// A contact knows nothing about the manifold holding it.
type Contact struct {
	normal          mgl64.Vec3
	localPointBody1 mgl64.Vec3
	localPointBody2 mgl64.Vec3

	worldPointBody1  mgl64.Vec3
	worldPointBody2  mgl64.Vec3
	penetrationDepth float64

	frictionVector1 mgl64.Vec3
	frictionVector2 mgl64.Vec3
}

// NewContact carves a contact out of the pool and fills it from the
// narrow-phase result. The friction basis is derived from the normal right
// away; the world anchors are set when a manifold admits the point. Panics
// if the pool is exhausted.
func NewContact(pool *Pool[Contact], info ContactInfo) *Contact {
	c := pool.Allocate()
	c.normal = info.Normal
	c.localPointBody1 = info.LocalPointBody1
	c.localPointBody2 = info.LocalPointBody2
	c.penetrationDepth = info.PenetrationDepth
	c.frictionVector1, c.frictionVector2 = tangentBasis(info.Normal)
	return c
}

func (c *Contact) Normal() mgl64.Vec3            { return c.normal }
func (c *Contact) LocalPointOnBody1() mgl64.Vec3 { return c.localPointBody1 }
func (c *Contact) LocalPointOnBody2() mgl64.Vec3 { return c.localPointBody2 }
func (c *Contact) WorldPointOnBody1() mgl64.Vec3 { return c.worldPointBody1 }
func (c *Contact) WorldPointOnBody2() mgl64.Vec3 { return c.worldPointBody2 }
func (c *Contact) PenetrationDepth() float64     { return c.penetrationDepth }

// FrictionVector1 and FrictionVector2 span the plane friction acts in.
// Together with the normal they form a right-handed basis:
// FrictionVector1 x FrictionVector2 == Normal.
func (c *Contact) FrictionVector1() mgl64.Vec3 { return c.frictionVector1 }
func (c *Contact) FrictionVector2() mgl64.Vec3 { return c.frictionVector2 }

// SetWorldPointOnBody1, SetWorldPointOnBody2 and SetPenetrationDepth are
// invoked by the owning manifold while revalidating the point against the
// bodies' current transforms.
func (c *Contact) SetWorldPointOnBody1(p mgl64.Vec3) { c.worldPointBody1 = p }
func (c *Contact) SetWorldPointOnBody2(p mgl64.Vec3) { c.worldPointBody2 = p }
func (c *Contact) SetPenetrationDepth(d float64)     { c.penetrationDepth = d }

// tangentBasis builds two unit vectors spanning the plane orthogonal to n,
// with t1 x t2 == n. The first tangent is seeded from the world axis least
// aligned with n so the construction is deterministic and well conditioned
// for near-axis normals.
func tangentBasis(n mgl64.Vec3) (t1, t2 mgl64.Vec3) {
	ax, ay, az := math.Abs(n.X()), math.Abs(n.Y()), math.Abs(n.Z())
	var axis mgl64.Vec3
	switch {
	case ax <= ay && ax <= az:
		axis = mgl64.Vec3{1, 0, 0}
	case ay <= az:
		axis = mgl64.Vec3{0, 1, 0}
	default:
		axis = mgl64.Vec3{0, 0, 1}
	}
	t1 = axis.Cross(n).Normalize()
	t2 = n.Cross(t1)
	return t1, t2
}
