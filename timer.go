package reactphysics3d

import (
	"fmt"
	"time"
)

// Timer drives the fixed-timestep loop. Real elapsed time accumulates via
// Update (wall clock) or Advance (explicit, for tests and headless runs);
// the loop then consumes whole steps of TimeStep seconds:
//
//	timer.Update()
//	for timer.CanTakeStep() {
//		world.Step(overlaps, narrowPhase)
//		timer.TakeStep()
//	}
//	render(body.InterpolatedTransform(timer.InterpolationFactor()))
//
// The leftover fraction of a step is exposed as the interpolation factor so
// rendering can blend body placements between steps.
type Timer struct {
	timeStep    float64
	accumulator float64
	lastUpdate  time.Time
	running     bool
}

// NewTimer creates a stopped timer with the given step length in seconds.
func NewTimer(timeStep float64) *Timer {
	if timeStep <= 0 {
		panic(fmt.Sprintf("timer: time step must be positive, got %g", timeStep))
	}
	return &Timer{timeStep: timeStep}
}

func (t *Timer) TimeStep() float64 { return t.timeStep }
func (t *Timer) IsRunning() bool   { return t.running }

// Start begins accumulating from now. The accumulator is left as is so a
// paused simulation resumes where it stopped.
func (t *Timer) Start() {
	t.lastUpdate = time.Now()
	t.running = true
}

func (t *Timer) Stop() {
	t.running = false
}

// Update feeds the wall-clock time since the previous Update (or Start)
// into the accumulator. Does nothing while the timer is stopped.
func (t *Timer) Update() {
	if !t.running {
		return
	}
	now := time.Now()
	t.accumulator += now.Sub(t.lastUpdate).Seconds()
	t.lastUpdate = now
}

// Advance feeds an explicit amount of elapsed seconds into the accumulator,
// independent of the wall clock.
func (t *Timer) Advance(elapsed float64) {
	if elapsed < 0 {
		panic(fmt.Sprintf("timer: cannot advance by negative time %g", elapsed))
	}
	t.accumulator += elapsed
}

// CanTakeStep reports whether at least one whole step is accumulated.
func (t *Timer) CanTakeStep() bool {
	return t.accumulator >= t.timeStep
}

// TakeStep consumes one step from the accumulator. Calling it without an
// accumulated step is a loop bug and panics.
func (t *Timer) TakeStep() {
	if !t.CanTakeStep() {
		panic("timer: TakeStep without an accumulated step")
	}
	t.accumulator -= t.timeStep
}

// InterpolationFactor returns how far the accumulator sits into the next
// step, in [0,1]. 0 means a step just completed, values near 1 mean the
// next step is due.
func (t *Timer) InterpolationFactor() float64 {
	f := t.accumulator / t.timeStep
	if f > 1 {
		return 1
	}
	return f
}
