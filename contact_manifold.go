package reactphysics3d

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ContactManifold is the persistent contact cache for one body pair. It
// holds at most MaxContactPointsInManifold contact points and rebuilds the
// set incrementally across steps: re-detected features replace nothing,
// new features evict the slot contributing least to the contact area, and
// points invalidated by body motion are pruned every step. Keeping points
// alive this way hands the solver a temporally coherent contact set instead
// of a freshly detected one each frame.
//
// A manifold owns the contacts it holds. Evicted, pruned and cleared
// contacts go straight back to the shared pool; their pointers must not be
// retained. The body references are non-owning, bodies outlive the
// manifold.
//
// A manifold is not safe for concurrent use.
type ContactManifold struct {
	body1 *RigidBody
	body2 *RigidBody

	contacts     [MaxContactPointsInManifold]*Contact
	contactCount int

	pool *Pool[Contact]

	// distanceThreshold bounds the tangential drift Update tolerates
	// before pruning a point.
	distanceThreshold float64
}

// NewContactManifold creates an empty manifold for the body pair, drawing
// and releasing contact blocks through pool. The drift bound is the package
// default; worlds configure it per WorldSettings instead.
func NewContactManifold(body1, body2 *RigidBody, pool *Pool[Contact]) *ContactManifold {
	m := &ContactManifold{}
	m.init(body1, body2, pool, PersistentContactDistanceThreshold)
	return m
}

// init exists so pooled owners (OverlappingPair) can set up an embedded
// manifold in place.
func (m *ContactManifold) init(body1, body2 *RigidBody, pool *Pool[Contact], distanceThreshold float64) {
	if pool == nil {
		panic("contact manifold: nil contact pool")
	}
	if distanceThreshold <= 0 {
		panic(fmt.Sprintf("contact manifold: distance threshold must be positive, got %g", distanceThreshold))
	}
	m.body1 = body1
	m.body2 = body2
	m.contacts = [MaxContactPointsInManifold]*Contact{}
	m.contactCount = 0
	m.pool = pool
	m.distanceThreshold = distanceThreshold
}

func (m *ContactManifold) Body1() *RigidBody { return m.body1 }
func (m *ContactManifold) Body2() *RigidBody { return m.body2 }

// ContactCount returns how many points the manifold currently holds.
func (m *ContactManifold) ContactCount() int { return m.contactCount }

// Contact returns the point held at slot index, 0 <= index < ContactCount.
// Slot order is stable between AddContact and RemoveContact calls but
// carries no geometric meaning.
func (m *ContactManifold) Contact(index int) *Contact {
	if index < 0 || index >= m.contactCount {
		panic(fmt.Sprintf("contact manifold: contact index %d out of range [0,%d)", index, m.contactCount))
	}
	return m.contacts[index]
}

// AddContact inserts a freshly detected contact point, taking ownership of
// it. Three outcomes are possible:
//
//   - A held point with the same body1-local anchor (within tolerance)
//     already exists: the new point is a re-detection of a feature the
//     manifold already tracks, so it is released and the held point kept.
//   - The manifold is below capacity: the point is appended.
//   - The manifold is full: the eviction rule picks the held point whose
//     removal keeps the largest contact footprint, with the deepest
//     penetrating point protected, and the new point takes the freed slot.
//
// The admitted point's world anchors are stamped from the bodies' current
// transforms; Update refreshes them on subsequent steps.
func (m *ContactManifold) AddContact(contact *Contact) {
	for i := 0; i < m.contactCount; i++ {
		if sameContactFeature(contact.localPointBody1, m.contacts[i].localPointBody1) {
			m.pool.Release(contact)
			return
		}
	}

	contact.worldPointBody1 = m.body1.Transform().Point(contact.localPointBody1)
	contact.worldPointBody2 = m.body2.Transform().Point(contact.localPointBody2)

	if m.contactCount == MaxContactPointsInManifold {
		deepest := m.indexOfDeepestPenetration(contact)
		evict := m.indexToRemove(deepest, contact.localPointBody1)
		m.pool.Release(m.contacts[evict])
		m.contacts[evict] = contact
		return
	}

	m.contacts[m.contactCount] = contact
	m.contactCount++
}

// RemoveContact releases the point at index back to the pool. The last
// occupied slot is swapped into the freed position so the live slots stay
// a contiguous prefix. Out-of-range indices are caller bugs and panic.
func (m *ContactManifold) RemoveContact(index int) {
	if index < 0 || index >= m.contactCount {
		panic(fmt.Sprintf("contact manifold: remove index %d out of range [0,%d)", index, m.contactCount))
	}
	m.pool.Release(m.contacts[index])
	last := m.contactCount - 1
	if index < last {
		m.contacts[index] = m.contacts[last]
	}
	m.contacts[last] = nil
	m.contactCount--
}

// Update revalidates every held point against the bodies' current
// placements, then prunes the ones that stopped describing real contact.
//
// For each point the world anchors are recomputed from the stored local
// anchors and the penetration depth becomes the signed projection of
// (worldPoint1 - worldPoint2) onto the normal. A point is pruned when its
// depth falls to zero or below (the bodies separated there), or when its
// two world anchors have drifted apart farther than the manifold's distance
// threshold in the plane orthogonal to the normal (the feature slid away
// from where it was detected).
//
// Update only revalidates and prunes; new points arrive through AddContact.
func (m *ContactManifold) Update(transform1, transform2 Transform) {
	if m.contactCount == 0 {
		return
	}

	for i := 0; i < m.contactCount; i++ {
		c := m.contacts[i]
		c.worldPointBody1 = transform1.Point(c.localPointBody1)
		c.worldPointBody2 = transform2.Point(c.localPointBody2)
		c.penetrationDepth = c.worldPointBody1.Sub(c.worldPointBody2).Dot(c.normal)
	}

	squareThreshold := m.distanceThreshold * m.distanceThreshold

	// Sweep downward so a swap from the tail never skips an unvisited slot.
	for i := m.contactCount - 1; i >= 0; i-- {
		c := m.contacts[i]
		if c.penetrationDepth <= 0 {
			m.RemoveContact(i)
			continue
		}
		projOfPoint1 := c.worldPointBody1.Sub(c.normal.Mul(c.penetrationDepth))
		if c.worldPointBody2.Sub(projOfPoint1).LenSqr() > squareThreshold {
			m.RemoveContact(i)
		}
	}
}

// Clear releases every held point and empties the manifold.
func (m *ContactManifold) Clear() {
	for i := 0; i < m.contactCount; i++ {
		m.pool.Release(m.contacts[i])
		m.contacts[i] = nil
	}
	m.contactCount = 0
}

// indexOfDeepestPenetration returns the slot of the deepest held point, or
// -1 when newContact penetrates deeper than every held one. The returned
// slot is protected from eviction; -1 means the new point itself is the
// deepest and no held slot needs protection.
func (m *ContactManifold) indexOfDeepestPenetration(newContact *Contact) int {
	if m.contactCount != MaxContactPointsInManifold {
		panic(fmt.Sprintf("contact manifold: deepest-penetration scan on %d of %d slots", m.contactCount, MaxContactPointsInManifold))
	}
	index := -1
	maxDepth := newContact.penetrationDepth
	for i := 0; i < m.contactCount; i++ {
		if m.contacts[i].penetrationDepth > maxDepth {
			maxDepth = m.contacts[i].penetrationDepth
			index = i
		}
	}
	return index
}

// indexToRemove picks which of the four held points gives way to a new
// point at newPoint (a body1-local anchor). For every candidate slot it
// measures the footprint kept after the swap: the squared cross product of
// two edges spanning the other three anchors plus the new point. The slot
// whose removal keeps the largest footprint loses. protectedIndex (the
// deepest held point, -1 for none) keeps a zero candidate area, so it is
// only ever picked when every footprint degenerates to zero and it sits in
// slot 0.
//
// The edge pairings are hardwired to a four-slot manifold. They do not
// generalize to other capacities.
func (m *ContactManifold) indexToRemove(protectedIndex int, newPoint mgl64.Vec3) int {
	if m.contactCount != MaxContactPointsInManifold {
		panic(fmt.Sprintf("contact manifold: eviction scan on %d of %d slots", m.contactCount, MaxContactPointsInManifold))
	}

	area0 := 0.0 // footprint of newPoint with slots 1,2,3
	area1 := 0.0 // footprint of newPoint with slots 0,2,3
	area2 := 0.0 // footprint of newPoint with slots 0,1,3
	area3 := 0.0 // footprint of newPoint with slots 0,1,2

	if protectedIndex != 0 {
		edge1 := newPoint.Sub(m.contacts[1].localPointBody1)
		edge2 := m.contacts[3].localPointBody1.Sub(m.contacts[2].localPointBody1)
		area0 = edge1.Cross(edge2).LenSqr()
	}
	if protectedIndex != 1 {
		edge1 := newPoint.Sub(m.contacts[0].localPointBody1)
		edge2 := m.contacts[3].localPointBody1.Sub(m.contacts[2].localPointBody1)
		area1 = edge1.Cross(edge2).LenSqr()
	}
	if protectedIndex != 2 {
		edge1 := newPoint.Sub(m.contacts[0].localPointBody1)
		edge2 := m.contacts[3].localPointBody1.Sub(m.contacts[1].localPointBody1)
		area2 = edge1.Cross(edge2).LenSqr()
	}
	if protectedIndex != 3 {
		edge1 := newPoint.Sub(m.contacts[0].localPointBody1)
		edge2 := m.contacts[2].localPointBody1.Sub(m.contacts[1].localPointBody1)
		area3 = edge1.Cross(edge2).LenSqr()
	}

	return maxAreaIndex(area0, area1, area2, area3)
}

// sameContactFeature treats two body1-local anchors as the same detected
// feature when every component lies within the equivalence tolerance. The
// comparison is absolute, not relative: anchors near the origin must dedup
// just as reliably as anchors far from it.
func sameContactFeature(a, b mgl64.Vec3) bool {
	return math.Abs(a.X()-b.X()) <= contactEquivalenceTolerance &&
		math.Abs(a.Y()-b.Y()) <= contactEquivalenceTolerance &&
		math.Abs(a.Z()-b.Z()) <= contactEquivalenceTolerance
}

// maxAreaIndex returns the index of the largest area. Comparisons are
// strict, so equal areas resolve to the lowest index; that keeps eviction
// deterministic even for degenerate, collinear manifolds where every area
// collapses to zero.
func maxAreaIndex(area0, area1, area2, area3 float64) int {
	if area0 < area1 {
		if area1 < area2 {
			if area2 < area3 {
				return 3
			}
			return 2
		}
		if area1 < area3 {
			return 3
		}
		return 1
	}
	if area0 < area2 {
		if area2 < area3 {
			return 3
		}
		return 2
	}
	if area0 < area3 {
		return 3
	}
	return 0
}
