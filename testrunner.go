package henhouse

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// testStep represents a single action in an input script.
type testStep struct {
	Action string `yaml:"action"`
	Label  string `yaml:"label,omitempty"`
	Input  Input  `yaml:"input,omitempty"`
	Frames int    `yaml:"frames,omitempty"`
}

// testScript is the top-level structure of an input script.
type testScript struct {
	Steps []testStep `yaml:"steps"`
}

var errEmptyScript = errors.New("no steps")

// TestRunner sequences injected input across frames for automated play.
// Attach to a Game via SetTestRunner.
//
// Supported actions:
//
//	press  queue Input for one frame
//	hold   queue Input for Frames frames
//	wait   let Frames frames pass with no injected input
//	log    log Label with the session's health, energy, and state
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a YAML (or JSON) input script.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: %w", errEmptyScript)
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "press", "hold", "wait", "log":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// LoadTestScriptFile reads and parses an input script from path.
func LoadTestScriptFile(path string) (*TestRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read test script: %w", err)
	}
	return LoadTestScript(data)
}

// SetTestRunner attaches a TestRunner to the game. The runner's step method
// is called from Game.Update before input is read each frame.
func (g *Game) SetTestRunner(runner *TestRunner) {
	g.runner = runner
}

// Done reports whether all steps in the script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Game.Update.
func (r *TestRunner) step(g *Game) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(g.injected) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "press":
		g.InjectPress(st.Input)
	case "hold":
		g.InjectHold(st.Input, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "log":
		logger.Info("script", "label", st.Label, "state", g.state.String(),
			"health", g.health, "energy", g.energy)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(g.injected) == 0 {
		r.done = true
	}
}
