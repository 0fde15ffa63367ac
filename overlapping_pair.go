package reactphysics3d

// BodyPairID identifies an unordered body pair. The smaller body ID always
// occupies First, so the same two bodies map to the same key regardless of
// argument order.
type BodyPairID struct {
	First  BodyID
	Second BodyID
}

func NewBodyPairID(a, b BodyID) BodyPairID {
	if a <= b {
		return BodyPairID{First: a, Second: b}
	}
	return BodyPairID{First: b, Second: a}
}

// OverlappingPair ties one broad-phase body pair to its persistent contact
// manifold. Pairs live in pool blocks owned by the world; a pair exists
// exactly as long as the broad phase keeps reporting the two bodies as
// overlap candidates, which is what lets the manifold's contacts survive
// from step to step.
type OverlappingPair struct {
	id    BodyPairID
	body1 *RigidBody
	body2 *RigidBody

	manifold ContactManifold

	// lastSeenStep is the world step that most recently reported this
	// pair; the world sweeps pairs whose mark falls behind.
	lastSeenStep uint64
}

// initOverlappingPair fills a pool-allocated pair in place. body1 is always
// the body with the smaller ID.
func initOverlappingPair(p *OverlappingPair, body1, body2 *RigidBody, contactPool *Pool[Contact], distanceThreshold float64, step uint64) {
	if body1.ID() > body2.ID() {
		body1, body2 = body2, body1
	}
	p.id = NewBodyPairID(body1.ID(), body2.ID())
	p.body1 = body1
	p.body2 = body2
	p.manifold.init(body1, body2, contactPool, distanceThreshold)
	p.lastSeenStep = step
}

func (p *OverlappingPair) ID() BodyPairID    { return p.id }
func (p *OverlappingPair) Body1() *RigidBody { return p.body1 }
func (p *OverlappingPair) Body2() *RigidBody { return p.body2 }

// Manifold exposes the pair's persistent contact set.
func (p *OverlappingPair) Manifold() *ContactManifold { return &p.manifold }
