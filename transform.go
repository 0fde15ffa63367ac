package reactphysics3d

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Transform is a rigid placement: a rotation followed by a translation.
// Orientation is kept unit length; NewTransform normalizes on the way in.
type Transform struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

func NewTransform(position mgl64.Vec3, orientation mgl64.Quat) Transform {
	return Transform{Position: position, Orientation: orientation.Normalize()}
}

func IdentityTransform() Transform {
	return Transform{Orientation: mgl64.QuatIdent()}
}

// Point maps a point from local space into world space.
func (t Transform) Point(p mgl64.Vec3) mgl64.Vec3 {
	return t.Orientation.Rotate(p).Add(t.Position)
}

// Vector rotates a direction into world space without translating it.
func (t Transform) Vector(v mgl64.Vec3) mgl64.Vec3 {
	return t.Orientation.Rotate(v)
}

// Inverse returns the transform mapping world space back into local space.
func (t Transform) Inverse() Transform {
	inv := t.Orientation.Conjugate()
	return Transform{
		Position:    inv.Rotate(t.Position.Mul(-1)),
		Orientation: inv,
	}
}

// Mul composes two transforms. The result applies u first, then t, so
// worldTransform.Mul(localOffset) places the offset in world space.
func (t Transform) Mul(u Transform) Transform {
	return Transform{
		Position:    t.Orientation.Rotate(u.Position).Add(t.Position),
		Orientation: t.Orientation.Mul(u.Orientation),
	}
}

// InterpolateTransforms blends two placements, lerping the position and
// slerping the orientation. factor 0 yields from, factor 1 yields to. Used
// to render between fixed steps.
func InterpolateTransforms(from, to Transform, factor float64) Transform {
	return Transform{
		Position:    from.Position.Mul(1 - factor).Add(to.Position.Mul(factor)),
		Orientation: mgl64.QuatSlerp(from.Orientation, to.Orientation, factor),
	}
}
