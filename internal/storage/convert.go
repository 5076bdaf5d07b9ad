package storage

import (
	"fmt"

	"github.com/vovakirdan/tui-bloxorz/internal/puzzle/core"
	"github.com/vovakirdan/tui-bloxorz/internal/solver"
)

// RunFromResult converts a search result into a history record.
func RunFromResult(levelID string, res solver.Result) Run {
	return Run{
		LevelID:  levelID,
		Method:   string(res.Method),
		Solved:   res.Solved,
		Moves:    len(res.Moves),
		Actions:  actionNames(res.Moves),
		Visited:  res.Visited,
		Expanded: res.Expanded,
		Duration: res.Duration,
	}
}

// SolutionFromResult converts a path result into its export form.
func SolutionFromResult(levelID string, res solver.Result) Solution {
	states := make([]SolutionState, len(res.Path))
	for i, s := range res.Path {
		states[i] = SolutionState{
			Block1: [2]int{s.Player.Block1.X, s.Player.Block1.Y},
			Block2: [2]int{s.Player.Block2.X, s.Player.Block2.Y},
		}
		if s.Bridges.Len() > 0 {
			states[i].Bridges = s.Bridges.String()
		}
	}
	return Solution{
		Version: SolutionVersion,
		Stage:   levelID,
		Method:  string(res.Method),
		Actions: actionNames(res.Moves),
		States:  states,
	}
}

// Replay checks a solution against a level: every action must be allowed,
// land on the recorded state and the last state must be on the goal.
// It returns the final state.
func (sol Solution) Replay(l *core.Level) (core.State, error) {
	s := l.InitialState()
	if len(sol.States) > 0 {
		if err := sol.States[0].matches(s); err != nil {
			return s, fmt.Errorf("start: %w", err)
		}
	}
	for i, name := range sol.Actions {
		a, err := core.ParseAction(name)
		if err != nil {
			return s, fmt.Errorf("move %d: %w", i+1, err)
		}
		next, ok := l.Board.Step(s, a)
		if !ok {
			return s, fmt.Errorf("move %d (%s) is not allowed from %v", i+1, a, s.Player)
		}
		s = next
		if i+1 < len(sol.States) {
			if err := sol.States[i+1].matches(s); err != nil {
				return s, fmt.Errorf("move %d: %w", i+1, err)
			}
		}
	}
	if !l.Board.IsGoal(s.Player) {
		return s, fmt.Errorf("solution ends at %v, not on the goal", s.Player)
	}
	return s, nil
}

func (ss SolutionState) matches(s core.State) error {
	b1 := core.C(ss.Block1[0], ss.Block1[1])
	b2 := core.C(ss.Block2[0], ss.Block2[1])
	if b1 != s.Player.Block1 || b2 != s.Player.Block2 {
		return fmt.Errorf("recorded block %v %v, got %v", b1, b2, s.Player)
	}
	if ss.Bridges != "" && ss.Bridges != s.Bridges.String() {
		return fmt.Errorf("recorded bridges %s, got %s", ss.Bridges, s.Bridges)
	}
	return nil
}

func actionNames(acts []core.Action) []string {
	names := make([]string, len(acts))
	for i, a := range acts {
		names[i] = a.String()
	}
	return names
}
