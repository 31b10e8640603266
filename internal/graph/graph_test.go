package graph

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

func TestAddValidation(t *testing.T) {
	noop := func(ctx context.Context) error { return nil }

	tests := []struct {
		name    string
		step    Step
		wantErr string
	}{
		{
			name:    "missing name",
			step:    Step{Run: noop},
			wantErr: "no name",
		},
		{
			name:    "missing run",
			step:    Step{Name: "a"},
			wantErr: "no run function",
		},
		{
			name:    "self dependency",
			step:    Step{Name: "a", Needs: []string{"a"}, Run: noop},
			wantErr: "depends on itself",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			err := g.Add(tt.step)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestAddDuplicate(t *testing.T) {
	noop := func(ctx context.Context) error { return nil }
	g := New()
	if err := g.Add(Step{Name: "a", Run: noop}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	err := g.Add(Step{Name: "a", Run: noop})
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("error = %v, want duplicate", err)
	}
}

func TestRunOrdering(t *testing.T) {
	var mu sync.Mutex
	order := make(map[string]int)
	seq := 0
	record := func(name string) func(ctx context.Context) error {
		return func(ctx context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			seq++
			order[name] = seq
			return nil
		}
	}

	g := New()
	g.MustAdd(Step{Name: "fan1", Run: record("fan1")})
	g.MustAdd(Step{Name: "fan2", Run: record("fan2")})
	g.MustAdd(Step{Name: "join", Needs: []string{"fan1", "fan2"}, Run: record("join")})
	g.MustAdd(Step{Name: "tail", Needs: []string{"join"}, Run: record("tail")})

	if err := g.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if order["join"] < order["fan1"] || order["join"] < order["fan2"] {
		t.Errorf("join ran before its dependencies: %v", order)
	}
	if order["tail"] < order["join"] {
		t.Errorf("tail ran before join: %v", order)
	}
}

func TestRunFailFast(t *testing.T) {
	sentinel := errors.New("boom")
	var downstreamRan atomic.Bool

	g := New()
	g.MustAdd(Step{Name: "bad", Run: func(ctx context.Context) error { return sentinel }})
	g.MustAdd(Step{Name: "after", Needs: []string{"bad"}, Run: func(ctx context.Context) error {
		downstreamRan.Store(true)
		return nil
	}})

	err := g.Run(context.Background())
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want wrapped sentinel", err)
	}
	if !strings.Contains(err.Error(), "step bad") {
		t.Errorf("error %q does not name the failing step", err)
	}
	if downstreamRan.Load() {
		t.Error("downstream step ran after failure")
	}
}

func TestRunUnknownDependency(t *testing.T) {
	g := New()
	g.MustAdd(Step{Name: "a", Needs: []string{"ghost"}, Run: func(ctx context.Context) error { return nil }})
	err := g.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "unknown step") {
		t.Errorf("error = %v, want unknown step", err)
	}
}

func TestRunCycle(t *testing.T) {
	noop := func(ctx context.Context) error { return nil }
	g := New()
	g.MustAdd(Step{Name: "a", Needs: []string{"b"}, Run: noop})
	g.MustAdd(Step{Name: "b", Needs: []string{"a"}, Run: noop})
	err := g.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "cycle") {
		t.Errorf("error = %v, want cycle", err)
	}
}

func TestRunContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := New()
	g.MustAdd(Step{Name: "a", Run: func(ctx context.Context) error { return ctx.Err() }})
	if err := g.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
