package reactphysics3d

// EventListener is notified as body pairs begin and stop overlapping and as
// pairs carry contact points through a step. OnOverlapEnd receives the
// bodies rather than the pair because the pair's block has already gone back
// to the pool when the callback fires.
//
// Callbacks run synchronously inside World.Step; keep them short and do not
// mutate the world from them.
type EventListener interface {
	OnOverlapBegin(pair *OverlappingPair)
	OnOverlapEnd(body1, body2 *RigidBody)

	// OnContacts fires once per step for every pair whose manifold holds at
	// least one contact point after revalidation and admission, right
	// before the solver would read it.
	OnContacts(pair *OverlappingPair)
}

// NopEventListener implements EventListener with no-ops. Embed it to
// override only the callbacks of interest.
type NopEventListener struct{}

func (NopEventListener) OnOverlapBegin(*OverlappingPair)     {}
func (NopEventListener) OnOverlapEnd(*RigidBody, *RigidBody) {}
func (NopEventListener) OnContacts(*OverlappingPair)         {}

// ContactVisitor is invoked once per live contact point during a debug
// visit. The contact pointer is only valid for the duration of the call.
type ContactVisitor func(pair *OverlappingPair, contact *Contact)
