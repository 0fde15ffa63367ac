package reactphysics3d

import "testing"

func TestTimer_AdvanceAccumulatesSteps(t *testing.T) {
	timer := NewTimer(1.0 / 60.0)

	timer.Advance(0.035)

	steps := 0
	for timer.CanTakeStep() {
		timer.TakeStep()
		steps++
	}
	if steps != 2 {
		t.Errorf("0.035s at 60Hz should yield 2 whole steps, got %d", steps)
	}
	if timer.CanTakeStep() {
		t.Error("leftover accumulation must stay below one step")
	}
}

func TestTimer_InterpolationFactor(t *testing.T) {
	timer := NewTimer(0.02)

	if f := timer.InterpolationFactor(); f != 0 {
		t.Errorf("fresh timer factor = %g, want 0", f)
	}

	timer.Advance(0.01)
	if f := timer.InterpolationFactor(); f != 0.5 {
		t.Errorf("half a step accumulated, factor = %g, want 0.5", f)
	}

	timer.Advance(0.1)
	if f := timer.InterpolationFactor(); f != 1 {
		t.Errorf("factor must clamp at 1, got %g", f)
	}
}

func TestTimer_TakeStepWithoutAccumulationPanics(t *testing.T) {
	timer := NewTimer(0.02)
	expectPanic(t, "premature TakeStep", func() { timer.TakeStep() })
}

func TestTimer_NegativeAdvancePanics(t *testing.T) {
	timer := NewTimer(0.02)
	expectPanic(t, "negative advance", func() { timer.Advance(-0.01) })
}

func TestTimer_InvalidTimeStepPanics(t *testing.T) {
	expectPanic(t, "zero step", func() { NewTimer(0) })
	expectPanic(t, "negative step", func() { NewTimer(-1) })
}

func TestTimer_StartStop(t *testing.T) {
	timer := NewTimer(0.02)

	if timer.IsRunning() {
		t.Error("timers must start stopped")
	}
	timer.Start()
	if !timer.IsRunning() {
		t.Error("Start did not mark the timer running")
	}

	// Update while stopped must not accumulate anything.
	timer.Stop()
	timer.Update()
	if timer.CanTakeStep() {
		t.Error("stopped timer accumulated time")
	}

	if timer.TimeStep() != 0.02 {
		t.Errorf("time step = %g", timer.TimeStep())
	}
}
