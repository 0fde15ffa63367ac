package reactphysics3d

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhysicsCommon_GeneratesDistinctWorldNames(t *testing.T) {
	pc := NewPhysicsCommon(NewNopLogger())

	w1, err := pc.CreatePhysicsWorld(WorldSettings{})
	require.NoError(t, err)
	w2, err := pc.CreatePhysicsWorld(WorldSettings{})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(w1.Name(), "world-"), "generated name %q", w1.Name())
	assert.True(t, strings.HasPrefix(w2.Name(), "world-"), "generated name %q", w2.Name())
	assert.NotEqual(t, w1.Name(), w2.Name())
	assert.Equal(t, 2, pc.WorldCount())
}

func TestPhysicsCommon_InvalidSettingsAreAnError(t *testing.T) {
	pc := NewPhysicsCommon(NewNopLogger())

	_, err := pc.CreatePhysicsWorld(WorldSettings{ContactPoolCapacity: 2})
	require.Error(t, err)
	assert.ErrorContains(t, err, "contact pool capacity")
	assert.Equal(t, 0, pc.WorldCount())
}

func TestPhysicsCommon_DestroyReleasesWorldResources(t *testing.T) {
	pc := NewPhysicsCommon(NewNopLogger())
	w, err := pc.CreatePhysicsWorld(WorldSettings{WorldName: "teardown"})
	require.NoError(t, err)

	b1 := w.CreateRigidBody(IdentityTransform(), 1.0, mgl64.Ident3())
	b2 := w.CreateRigidBody(IdentityTransform(), 1.0, mgl64.Ident3())
	w.Step([]BodyPair{{b1, b2}}, overlappingNarrowPhase(0.1))
	require.Equal(t, 1, w.LiveContactCount())

	pc.DestroyPhysicsWorld(w)

	assert.Equal(t, 0, pc.WorldCount())
	assert.Equal(t, 0, w.PairCount())
	assert.Equal(t, 0, w.BodyCount())
	assert.Equal(t, 0, w.ContactPool().InUse())
}

func TestPhysicsCommon_DestroyUnknownWorldPanics(t *testing.T) {
	pc1 := NewPhysicsCommon(NewNopLogger())
	pc2 := NewPhysicsCommon(NewNopLogger())
	w, err := pc1.CreatePhysicsWorld(WorldSettings{WorldName: "owned-elsewhere"})
	require.NoError(t, err)

	require.Panics(t, func() { pc2.DestroyPhysicsWorld(w) })

	pc1.DestroyPhysicsWorld(w)
	require.Panics(t, func() { pc1.DestroyPhysicsWorld(w) }, "second destroy must panic")
}

func TestPhysicsCommon_NilLoggerFallsBack(t *testing.T) {
	pc := NewPhysicsCommon(nil)
	assert.NotNil(t, pc.Logger())
}
