package reactphysics3d

import (
	"fmt"
	"sync"
)

// PhysicsCommon is the entry point of the library. It owns the logger and
// tracks every world created through it, so shutting a simulation down is
// one DestroyPhysicsWorld call per world instead of scattered cleanup.
type PhysicsCommon struct {
	mu     sync.Mutex
	logger Logger
	worlds map[*World]struct{}
}

// NewPhysicsCommon creates the factory. A nil logger falls back to the
// default stderr logger.
func NewPhysicsCommon(logger Logger) *PhysicsCommon {
	if logger == nil {
		logger = NewDefaultLogger("physics", false)
	}
	return &PhysicsCommon{
		logger: logger,
		worlds: make(map[*World]struct{}),
	}
}

func (pc *PhysicsCommon) Logger() Logger { return pc.logger }

// CreatePhysicsWorld builds a world from the settings. Invalid settings are
// a recoverable setup failure and come back as an error.
func (pc *PhysicsCommon) CreatePhysicsWorld(settings WorldSettings) (*World, error) {
	w, err := newWorld(settings, pc.logger)
	if err != nil {
		return nil, err
	}
	pc.mu.Lock()
	pc.worlds[w] = struct{}{}
	pc.mu.Unlock()
	return w, nil
}

// DestroyPhysicsWorld tears the world down, releasing every pair and cached
// contact. Destroying a world this factory did not create, or destroying
// one twice, is a caller bug and panics.
func (pc *PhysicsCommon) DestroyPhysicsWorld(w *World) {
	pc.mu.Lock()
	if _, ok := pc.worlds[w]; !ok {
		pc.mu.Unlock()
		panic(fmt.Sprintf("physics common: destroy of unknown world %q", w.Name()))
	}
	delete(pc.worlds, w)
	pc.mu.Unlock()
	w.destroy()
}

// WorldCount returns how many worlds are currently alive.
func (pc *PhysicsCommon) WorldCount() int {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return len(pc.worlds)
}
