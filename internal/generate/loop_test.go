package generate

import (
	"testing"

	"resumeflow/internal/types"
)

func TestControllerConvergesFirstPass(t *testing.T) {
	ctrl := NewController(3, 80)

	if ctrl.Phase() != PhaseDrafting {
		t.Fatalf("initial phase = %s, want drafting", ctrl.Phase())
	}
	if err := ctrl.DraftComplete(); err != nil {
		t.Fatalf("DraftComplete: %v", err)
	}

	revise, err := ctrl.EvaluationComplete(85)
	if err != nil {
		t.Fatalf("EvaluationComplete: %v", err)
	}
	if revise {
		t.Error("quality above threshold should not revise")
	}
	if ctrl.Phase() != PhaseFinalizing {
		t.Errorf("phase = %s, want finalizing", ctrl.Phase())
	}
	if err := ctrl.FinalizeComplete(); err != nil {
		t.Fatalf("FinalizeComplete: %v", err)
	}

	if ctrl.Phase() != PhaseDone {
		t.Errorf("phase = %s, want done", ctrl.Phase())
	}
	if ctrl.Iteration() != 0 {
		t.Errorf("Iteration = %d, want 0", ctrl.Iteration())
	}
	if ctrl.Status() != types.StatusConverged {
		t.Errorf("Status = %s, want converged", ctrl.Status())
	}
}

func TestControllerThresholdBoundary(t *testing.T) {
	// Quality exactly at the threshold does not revise.
	ctrl := NewController(3, 80)
	if err := ctrl.DraftComplete(); err != nil {
		t.Fatal(err)
	}
	revise, err := ctrl.EvaluationComplete(80)
	if err != nil {
		t.Fatal(err)
	}
	if revise {
		t.Error("quality at threshold should not revise")
	}
	if ctrl.Status() != types.StatusConverged {
		t.Errorf("Status = %s, want converged", ctrl.Status())
	}
}

func TestControllerExhaustsIterationBudget(t *testing.T) {
	ctrl := NewController(3, 80)
	if err := ctrl.DraftComplete(); err != nil {
		t.Fatal(err)
	}

	evaluations := 0
	for {
		evaluations++
		revise, err := ctrl.EvaluationComplete(60)
		if err != nil {
			t.Fatalf("EvaluationComplete #%d: %v", evaluations, err)
		}
		if !revise {
			break
		}
		if err := ctrl.RevisionComplete(); err != nil {
			t.Fatalf("RevisionComplete: %v", err)
		}
	}

	// max_iterations revision passes, max_iterations+1 evaluations.
	if ctrl.Iteration() != 3 {
		t.Errorf("Iteration = %d, want 3", ctrl.Iteration())
	}
	if evaluations != 4 {
		t.Errorf("evaluations = %d, want 4", evaluations)
	}
	if err := ctrl.FinalizeComplete(); err != nil {
		t.Fatal(err)
	}
	if ctrl.Status() != types.StatusIterationBudgetExceeded {
		t.Errorf("Status = %s, want iteration_budget_exceeded", ctrl.Status())
	}
}

func TestControllerConvergesAfterRevision(t *testing.T) {
	ctrl := NewController(3, 80)
	if err := ctrl.DraftComplete(); err != nil {
		t.Fatal(err)
	}

	revise, err := ctrl.EvaluationComplete(70)
	if err != nil {
		t.Fatal(err)
	}
	if !revise {
		t.Fatal("quality below threshold should revise")
	}
	if err := ctrl.RevisionComplete(); err != nil {
		t.Fatal(err)
	}

	revise, err = ctrl.EvaluationComplete(84)
	if err != nil {
		t.Fatal(err)
	}
	if revise {
		t.Error("converged draft should not revise again")
	}
	if ctrl.Iteration() != 1 {
		t.Errorf("Iteration = %d, want 1", ctrl.Iteration())
	}
	if ctrl.Status() != types.StatusConverged {
		t.Errorf("Status = %s, want converged", ctrl.Status())
	}
}

func TestControllerInvalidTransitions(t *testing.T) {
	ctrl := NewController(3, 80)

	if _, err := ctrl.EvaluationComplete(90); err == nil {
		t.Error("evaluation before drafting should fail")
	}
	if err := ctrl.RevisionComplete(); err == nil {
		t.Error("revision in drafting phase should fail")
	}
	if err := ctrl.FinalizeComplete(); err == nil {
		t.Error("finalize in drafting phase should fail")
	}

	if err := ctrl.DraftComplete(); err != nil {
		t.Fatal(err)
	}
	if err := ctrl.DraftComplete(); err == nil {
		t.Error("double draft completion should fail")
	}
}

func TestControllerDefaults(t *testing.T) {
	ctrl := NewController(0, 0)
	if ctrl.MaxIterations() != DefaultMaxIterations {
		t.Errorf("MaxIterations = %d, want %d", ctrl.MaxIterations(), DefaultMaxIterations)
	}
	if ctrl.QualityThreshold() != DefaultQualityThreshold {
		t.Errorf("QualityThreshold = %d, want %d", ctrl.QualityThreshold(), DefaultQualityThreshold)
	}
}
