package generate

import (
	"fmt"

	"resumeflow/internal/types"
)

// Defaults for the revision loop.
const (
	DefaultMaxIterations    = 3
	DefaultQualityThreshold = 80
)

// Phase is a state of the revision loop.
type Phase int

const (
	PhaseDrafting Phase = iota
	PhaseEvaluating
	PhaseDeciding
	PhaseRevising
	PhaseFinalizing
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseDrafting:
		return "drafting"
	case PhaseEvaluating:
		return "evaluating"
	case PhaseDeciding:
		return "deciding"
	case PhaseRevising:
		return "revising"
	case PhaseFinalizing:
		return "finalizing"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Controller drives the quality-gated revision loop:
// drafting -> evaluating -> deciding -> revising -> evaluating -> ...
// until the draft meets the quality threshold or the iteration budget
// runs out, then finalizing -> done. The iteration count is the number
// of completed revision passes; the initial draft is not an iteration.
type Controller struct {
	phase            Phase
	iteration        int
	maxIterations    int
	qualityThreshold int
	lastQuality      int
	converged        bool
}

// NewController creates a loop controller in the drafting phase.
// Non-positive bounds fall back to the defaults.
func NewController(maxIterations, qualityThreshold int) *Controller {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	if qualityThreshold <= 0 {
		qualityThreshold = DefaultQualityThreshold
	}
	return &Controller{
		phase:            PhaseDrafting,
		maxIterations:    maxIterations,
		qualityThreshold: qualityThreshold,
	}
}

func (c *Controller) Phase() Phase    { return c.phase }
func (c *Controller) Iteration() int  { return c.iteration }
func (c *Controller) MaxIterations() int { return c.maxIterations }
func (c *Controller) QualityThreshold() int { return c.qualityThreshold }

// DraftComplete moves from drafting to evaluating.
func (c *Controller) DraftComplete() error {
	if c.phase != PhaseDrafting {
		return fmt.Errorf("draft completed in phase %s", c.phase)
	}
	c.phase = PhaseEvaluating
	return nil
}

// EvaluationComplete records the draft's quality and decides whether to
// revise. It returns true when another revision pass should run; false
// moves the loop to finalizing.
func (c *Controller) EvaluationComplete(overallQuality int) (bool, error) {
	if c.phase != PhaseEvaluating {
		return false, fmt.Errorf("evaluation completed in phase %s", c.phase)
	}
	c.phase = PhaseDeciding
	c.lastQuality = overallQuality

	if overallQuality < c.qualityThreshold && c.iteration < c.maxIterations {
		c.phase = PhaseRevising
		return true, nil
	}

	c.converged = overallQuality >= c.qualityThreshold
	c.phase = PhaseFinalizing
	return false, nil
}

// RevisionComplete counts one revision pass and returns to evaluating.
func (c *Controller) RevisionComplete() error {
	if c.phase != PhaseRevising {
		return fmt.Errorf("revision completed in phase %s", c.phase)
	}
	c.iteration++
	c.phase = PhaseEvaluating
	return nil
}

// FinalizeComplete finishes the loop.
func (c *Controller) FinalizeComplete() error {
	if c.phase != PhaseFinalizing {
		return fmt.Errorf("finalize completed in phase %s", c.phase)
	}
	c.phase = PhaseDone
	return nil
}

// Status reports how the loop ended. Running out of iterations below the
// threshold is a soft success, not an error.
func (c *Controller) Status() types.GenerateStatus {
	if c.converged {
		return types.StatusConverged
	}
	return types.StatusIterationBudgetExceeded
}
