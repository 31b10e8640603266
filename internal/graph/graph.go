// Package graph runs a static set of named steps in dependency order.
// Steps with no ordering constraint between them execute concurrently;
// the first failure cancels the run.
package graph

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Step is a single unit of work in a graph. Run must be safe to execute
// concurrently with any step it does not depend on; each step should
// write only its own result slot.
type Step struct {
	Name  string
	Needs []string
	Run   func(ctx context.Context) error
}

// Graph is an ordered collection of steps. The zero value is not usable;
// create one with New.
type Graph struct {
	steps []Step
	index map[string]int
}

func New() *Graph {
	return &Graph{index: make(map[string]int)}
}

// Add registers a step. Names must be unique and a step may not depend
// on itself.
func (g *Graph) Add(step Step) error {
	if step.Name == "" {
		return fmt.Errorf("graph: step has no name")
	}
	if step.Run == nil {
		return fmt.Errorf("graph: step %q has no run function", step.Name)
	}
	if _, exists := g.index[step.Name]; exists {
		return fmt.Errorf("graph: duplicate step %q", step.Name)
	}
	for _, dep := range step.Needs {
		if dep == step.Name {
			return fmt.Errorf("graph: step %q depends on itself", step.Name)
		}
	}
	g.index[step.Name] = len(g.steps)
	g.steps = append(g.steps, step)
	return nil
}

// MustAdd is Add for statically-known graphs where a bad definition is a
// programming error.
func (g *Graph) MustAdd(step Step) {
	if err := g.Add(step); err != nil {
		panic(err)
	}
}

// waves partitions the steps into topological levels. Steps in the same
// wave have no dependencies on each other.
func (g *Graph) waves() ([][]Step, error) {
	indegree := make(map[string]int, len(g.steps))
	for _, step := range g.steps {
		for _, dep := range step.Needs {
			if _, known := g.index[dep]; !known {
				return nil, fmt.Errorf("graph: step %q needs unknown step %q", step.Name, dep)
			}
		}
		indegree[step.Name] = len(step.Needs)
	}

	done := make(map[string]bool, len(g.steps))
	var waves [][]Step
	remaining := len(g.steps)

	for remaining > 0 {
		var wave []Step
		for _, step := range g.steps {
			if done[step.Name] || indegree[step.Name] > 0 {
				continue
			}
			wave = append(wave, step)
		}
		if len(wave) == 0 {
			return nil, fmt.Errorf("graph: dependency cycle among remaining %d steps", remaining)
		}
		for _, step := range wave {
			done[step.Name] = true
		}
		for _, step := range g.steps {
			if done[step.Name] {
				continue
			}
			for _, dep := range step.Needs {
				if containsStep(wave, dep) {
					indegree[step.Name]--
				}
			}
		}
		waves = append(waves, wave)
		remaining -= len(wave)
	}

	return waves, nil
}

func containsStep(steps []Step, name string) bool {
	for _, s := range steps {
		if s.Name == name {
			return true
		}
	}
	return false
}

// Run executes the graph. Steps within a wave run concurrently; a step
// error aborts the run and cancels in-flight siblings via the context.
func (g *Graph) Run(ctx context.Context) error {
	waves, err := g.waves()
	if err != nil {
		return err
	}

	for _, wave := range waves {
		eg, waveCtx := errgroup.WithContext(ctx)
		for _, step := range wave {
			eg.Go(func() error {
				if err := waveCtx.Err(); err != nil {
					return err
				}
				if err := step.Run(waveCtx); err != nil {
					return fmt.Errorf("step %s: %w", step.Name, err)
				}
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return err
		}
	}
	return nil
}
