package reactphysics3d

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// BodyPair is one broad-phase overlap candidate fed into World.Step.
type BodyPair struct {
	Body1 *RigidBody
	Body2 *RigidBody
}

// NarrowPhase computes the contact geometry for one candidate pair. An
// empty result means the pair does not actually touch this step; the pair
// itself stays alive as long as the broad phase keeps reporting it.
type NarrowPhase func(body1, body2 *RigidBody) []ContactInfo

// World owns the bodies of one simulation and the persistent contact state
// between them. Broad-phase pair detection and shape intersection are the
// caller's: each Step consumes the candidate pairs and a narrow-phase
// callback, and maintains one OverlappingPair with a persistent manifold
// per candidate that lets contact points survive across steps.
//
// A World is not safe for concurrent use; drive it from a single goroutine.
// Only the block pools tolerate concurrent access.
type World struct {
	name     string
	settings WorldSettings
	logger   Logger
	listener EventListener

	bodies     map[BodyID]*RigidBody
	nextBodyID BodyID

	pairs       map[BodyPairID]*OverlappingPair
	contactPool *Pool[Contact]
	pairPool    *Pool[OverlappingPair]

	stepCount uint64
}

func newWorld(settings WorldSettings, logger Logger) (*World, error) {
	if err := settings.validate(); err != nil {
		return nil, fmt.Errorf("world settings: %w", err)
	}
	w := &World{
		name:        settings.WorldName,
		settings:    settings,
		logger:      logger,
		listener:    NopEventListener{},
		bodies:      make(map[BodyID]*RigidBody),
		nextBodyID:  1,
		pairs:       make(map[BodyPairID]*OverlappingPair),
		contactPool: NewPool[Contact](settings.WorldName+"/contacts", settings.ContactPoolCapacity),
		pairPool:    NewPool[OverlappingPair](settings.WorldName+"/pairs", settings.PairPoolCapacity),
	}
	w.logger.Infof("world %q created: contact pool %d, pair pool %d",
		w.name, settings.ContactPoolCapacity, settings.PairPoolCapacity)
	return w, nil
}

func (w *World) Name() string            { return w.name }
func (w *World) Settings() WorldSettings { return w.settings }
func (w *World) StepCount() uint64       { return w.stepCount }

// SetEventListener installs the overlap lifecycle listener. A nil listener
// resets to the no-op one.
func (w *World) SetEventListener(l EventListener) {
	if l == nil {
		l = NopEventListener{}
	}
	w.listener = l
}

// CreateRigidBody adds a body with the given placement and mass properties.
// Restitution starts at the world default.
func (w *World) CreateRigidBody(transform Transform, mass float64, inertiaTensorLocal mgl64.Mat3) *RigidBody {
	id := w.nextBodyID
	w.nextBodyID++
	b := newRigidBody(id, transform, mass, inertiaTensorLocal, w.settings.DefaultRestitution)
	w.bodies[id] = b
	return b
}

// DestroyRigidBody removes the body and tears down every overlapping pair
// it participates in, releasing their cached contacts. Destroying a body
// the world does not hold is a caller bug and panics.
func (w *World) DestroyRigidBody(b *RigidBody) {
	if _, ok := w.bodies[b.ID()]; !ok {
		panic(fmt.Sprintf("world %q: destroy of unknown body %d", w.name, b.ID()))
	}
	for id, pair := range w.pairs {
		if pair.body1 == b || pair.body2 == b {
			w.destroyPair(id, pair)
		}
	}
	delete(w.bodies, b.ID())
}

// Body returns the body with the given ID, or nil.
func (w *World) Body(id BodyID) *RigidBody { return w.bodies[id] }

func (w *World) BodyCount() int { return len(w.bodies) }
func (w *World) PairCount() int { return len(w.pairs) }

// ContactPool exposes the shared contact allocator, mainly so callers can
// watch occupancy against the configured capacity.
func (w *World) ContactPool() *Pool[Contact] { return w.contactPool }

// Step advances the contact state by one fixed step. overlaps is the broad
// phase's current candidate list; narrowPhase produces fresh contact
// geometry per candidate (nil narrowPhase skips detection, keeping only
// revalidation of cached points).
//
// Per candidate pair the order is: revalidate and prune the cached points
// against the bodies' current transforms, then feed the newly detected
// points through the manifold's admission rule. Pairs the broad phase
// stopped reporting are torn down afterwards, releasing their contacts.
func (w *World) Step(overlaps []BodyPair, narrowPhase NarrowPhase) {
	w.stepCount++

	for _, b := range w.bodies {
		b.markStepStart()
	}

	for _, candidate := range overlaps {
		pair := w.ensurePair(candidate)
		if pair == nil {
			continue
		}
		pair.lastSeenStep = w.stepCount

		pair.manifold.Update(pair.body1.Transform(), pair.body2.Transform())

		if narrowPhase != nil {
			for _, info := range narrowPhase(pair.body1, pair.body2) {
				pair.manifold.AddContact(NewContact(w.contactPool, info))
			}
		}

		if pair.manifold.ContactCount() > 0 {
			w.listener.OnContacts(pair)
		}
	}

	for id, pair := range w.pairs {
		if pair.lastSeenStep != w.stepCount {
			w.destroyPair(id, pair)
		}
	}
}

// ensurePair returns the live pair for the candidate, creating it on first
// sight. Candidates referring to bodies the world no longer holds, or to a
// body paired with itself, are dropped with a warning rather than panicking
// since broad phases routinely run a step behind body removal. Candidates
// involving a collision-disabled body are dropped silently; that is a
// normal state, and dropping the mark lets the end-of-step sweep tear the
// pair down.
func (w *World) ensurePair(candidate BodyPair) *OverlappingPair {
	b1, b2 := candidate.Body1, candidate.Body2
	if b1 == nil || b2 == nil || b1 == b2 {
		w.logger.Warnf("world %q: dropping malformed overlap candidate", w.name)
		return nil
	}
	if w.bodies[b1.ID()] != b1 || w.bodies[b2.ID()] != b2 {
		w.logger.Warnf("world %q: dropping overlap candidate with foreign body", w.name)
		return nil
	}
	if !b1.CollisionEnabled() || !b2.CollisionEnabled() {
		return nil
	}

	id := NewBodyPairID(b1.ID(), b2.ID())
	if pair, ok := w.pairs[id]; ok {
		return pair
	}

	pair := w.pairPool.Allocate()
	initOverlappingPair(pair, b1, b2, w.contactPool, w.settings.ContactDistanceThreshold, w.stepCount)
	w.pairs[id] = pair
	w.logger.Debugf("world %q: pair (%d,%d) begins overlapping", w.name, id.First, id.Second)
	w.listener.OnOverlapBegin(pair)
	return pair
}

// destroyPair clears the manifold and returns the pair block to the pool.
func (w *World) destroyPair(id BodyPairID, pair *OverlappingPair) {
	body1, body2 := pair.body1, pair.body2
	pair.manifold.Clear()
	delete(w.pairs, id)
	w.pairPool.Release(pair)
	w.logger.Debugf("world %q: pair (%d,%d) stopped overlapping", w.name, id.First, id.Second)
	w.listener.OnOverlapEnd(body1, body2)
}

// orderedPairs returns the live pairs sorted by pair ID. Iterating the map
// directly would hand the solver a different order every run; constraint
// solving is order sensitive, so the exposure surfaces all walk this.
func (w *World) orderedPairs() []*OverlappingPair {
	pairs := make([]*OverlappingPair, 0, len(w.pairs))
	for _, pair := range w.pairs {
		pairs = append(pairs, pair)
	}
	slices.SortFunc(pairs, func(a, b *OverlappingPair) int {
		if c := cmp.Compare(a.id.First, b.id.First); c != 0 {
			return c
		}
		return cmp.Compare(a.id.Second, b.id.Second)
	})
	return pairs
}

// ForEachPair visits every live overlapping pair in pair-ID order. Do not
// add or destroy bodies during the visit.
func (w *World) ForEachPair(visit func(*OverlappingPair)) {
	for _, pair := range w.orderedPairs() {
		visit(pair)
	}
}

// ForEachManifold visits the manifold of every pair that currently holds
// contact points, in pair-ID order. This is the read surface a constraint
// solver iterates after Step; empty manifolds are skipped since they
// contribute no rows.
func (w *World) ForEachManifold(visit func(*ContactManifold)) {
	for _, pair := range w.orderedPairs() {
		if pair.manifold.ContactCount() > 0 {
			visit(&pair.manifold)
		}
	}
}

// ManifoldCount returns how many pairs currently expose at least one
// contact point.
func (w *World) ManifoldCount() int {
	n := 0
	for _, pair := range w.pairs {
		if pair.manifold.ContactCount() > 0 {
			n++
		}
	}
	return n
}

// DebugVisitContacts walks every live contact point in pair-ID order, for
// debug drawing and inspection. Contact pointers must not be retained past
// the callback.
func (w *World) DebugVisitContacts(visit ContactVisitor) {
	for _, pair := range w.orderedPairs() {
		for i := 0; i < pair.manifold.ContactCount(); i++ {
			visit(pair, pair.manifold.Contact(i))
		}
	}
}

// LiveContactCount returns the number of contact points currently cached
// across all pairs.
func (w *World) LiveContactCount() int {
	n := 0
	for _, pair := range w.pairs {
		n += pair.manifold.ContactCount()
	}
	return n
}

// SolverRows assembles the constraint rows of every live contact for the
// step about to be solved. Rows appear in pair-ID order, three per contact
// point, and stay valid until the bodies move or the manifolds change.
func (w *World) SolverRows(dt float64) []ConstraintRow {
	if dt <= 0 {
		panic(fmt.Sprintf("world %q: solver rows need a positive dt, got %g", w.name, dt))
	}
	cfg := w.settings.rowConfig(dt)
	rows := make([]ConstraintRow, 0, 3*w.LiveContactCount())
	for _, pair := range w.orderedPairs() {
		m := &pair.manifold
		for i := 0; i < m.ContactCount(); i++ {
			rows = append(rows, ContactRows(m.Contact(i), pair.body1, pair.body2, cfg)...)
		}
	}
	return rows
}

// destroy tears down every pair and body; called by PhysicsCommon.
func (w *World) destroy() {
	for id, pair := range w.pairs {
		w.destroyPair(id, pair)
	}
	w.bodies = make(map[BodyID]*RigidBody)
	w.logger.Infof("world %q destroyed", w.name)
}
