// Package solver searches the state space of a level for a way to the goal.
package solver

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
	"github.com/zyedidia/generic/stack"

	"github.com/vovakirdan/tui-bloxorz/internal/puzzle/core"
)

var (
	// ErrNoPath is returned when the goal is unreachable from the start.
	ErrNoPath = errors.New("no path to goal")
	// ErrBudgetExceeded is returned when the visited set outgrows Options.MaxStates.
	ErrBudgetExceeded = errors.New("state budget exceeded")
)

// Method selects the search strategy.
type Method string

const (
	MethodDFS     Method = "dfs"      // exhaustive depth-first
	MethodBFS     Method = "bfs"      // exhaustive breadth-first
	MethodDFSPath Method = "dfs-path" // depth-first, returns the first path found
	MethodBFSPath Method = "bfs-path" // breadth-first, returns a shortest path
)

// Methods lists every supported method.
var Methods = []Method{MethodDFS, MethodBFS, MethodDFSPath, MethodBFSPath}

// ParseMethod converts a method name into a Method.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Methods {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown search method %q", s)
}

// RecordsPath reports whether the method returns a path.
func (m Method) RecordsPath() bool {
	return m == MethodDFSPath || m == MethodBFSPath
}

// Options tunes a search.
type Options struct {
	MaxStates int         // 0 means unlimited
	Logger    *log.Logger // optional debug progress
}

// Result is the outcome of a search.
type Result struct {
	Method   Method
	Solved   bool
	Path     []core.State  // start..goal inclusive, path methods only
	Moves    []core.Action // len(Path)-1 actions
	Visited  int           // distinct states discovered, start included
	Expanded int           // states taken from the frontier
	Duration time.Duration
}

// Actions returns the move sequence along the path.
func (r Result) Actions() []core.Action {
	return r.Moves
}

// Solver runs searches over one level.
type Solver struct {
	level *core.Level
	opts  Options
}

// New creates a solver for the level.
func New(level *core.Level, opts Options) *Solver {
	return &Solver{level: level, opts: opts}
}

// Solve dispatches on the method.
func (s *Solver) Solve(ctx context.Context, m Method) (Result, error) {
	switch m {
	case MethodDFS:
		return s.DFS(ctx)
	case MethodBFS:
		return s.BFS(ctx)
	case MethodDFSPath:
		return s.DFSPath(ctx)
	case MethodBFSPath:
		return s.BFSPath(ctx)
	default:
		return Result{Method: m}, fmt.Errorf("unknown search method %q", m)
	}
}

// DFS explores every reachable state depth-first and reports whether the
// goal is among them.
func (s *Solver) DFS(ctx context.Context) (Result, error) {
	return s.search(ctx, MethodDFS, newStackFrontier())
}

// BFS explores every reachable state breadth-first and reports whether the
// goal is among them.
func (s *Solver) BFS(ctx context.Context) (Result, error) {
	return s.search(ctx, MethodBFS, newQueueFrontier())
}

// DFSPath searches depth-first and returns the first path to the goal.
func (s *Solver) DFSPath(ctx context.Context) (Result, error) {
	return s.search(ctx, MethodDFSPath, newStackFrontier())
}

// BFSPath searches breadth-first and returns a path with the fewest moves.
func (s *Solver) BFSPath(ctx context.Context) (Result, error) {
	return s.search(ctx, MethodBFSPath, newQueueFrontier())
}

// node is a discovered state with a back link for path reconstruction.
type node struct {
	state  core.State
	parent int // -1 for the start
	action core.Action
}

// frontier abstracts the stack/queue difference between DFS and BFS.
type frontier interface {
	push(i int)
	pop() int
	empty() bool
}

type stackFrontier struct{ s *stack.Stack[int] }

func newStackFrontier() frontier { return &stackFrontier{s: stack.New[int]()} }

func (f *stackFrontier) push(i int)  { f.s.Push(i) }
func (f *stackFrontier) pop() int    { return f.s.Pop() }
func (f *stackFrontier) empty() bool { return f.s.Size() == 0 }

type queueFrontier struct{ q *queue.Queue[int] }

func newQueueFrontier() frontier { return &queueFrontier{q: queue.New[int]()} }

func (f *queueFrontier) push(i int)  { f.q.Enqueue(i) }
func (f *queueFrontier) pop() int    { return f.q.Dequeue() }
func (f *queueFrontier) empty() bool { return f.q.Empty() }

const progressEvery = 10000

// search is the shared loop. Goal states are detected when generated and
// never expanded. Exhaustive methods keep going after the first goal.
func (s *Solver) search(ctx context.Context, m Method, fr frontier) (Result, error) {
	started := time.Now()
	board := s.level.Board
	res := Result{Method: m}

	start := s.level.InitialState()
	nodes := []node{{state: start, parent: -1}}
	visited := mapset.New[core.Key]()
	visited.Put(start.Key())

	finish := func(err error) (Result, error) {
		res.Visited = visited.Size()
		res.Duration = time.Since(started)
		if s.opts.Logger != nil {
			s.opts.Logger.Debug("search finished", "level", s.level.ID, "method", m,
				"solved", res.Solved, "visited", res.Visited, "expanded", res.Expanded, "took", res.Duration)
		}
		return res, err
	}

	if board.IsGoal(start.Player) {
		res.Solved = true
		if m.RecordsPath() {
			res.Path = []core.State{start}
		}
		return finish(nil)
	}

	fr.push(0)
	for !fr.empty() {
		if err := ctx.Err(); err != nil {
			return finish(err)
		}
		cur := fr.pop()
		res.Expanded++
		if s.opts.Logger != nil && res.Expanded%progressEvery == 0 {
			s.opts.Logger.Debug("searching", "level", s.level.ID, "method", m, "expanded", res.Expanded, "visited", visited.Size())
		}

		from := nodes[cur].state
		for _, a := range core.Actions(from) {
			next, ok := board.Step(from, a)
			if !ok {
				continue
			}
			key := next.Key()
			if visited.Has(key) {
				continue
			}
			visited.Put(key)
			if s.opts.MaxStates > 0 && visited.Size() > s.opts.MaxStates {
				return finish(fmt.Errorf("%w: more than %d states", ErrBudgetExceeded, s.opts.MaxStates))
			}

			nodes = append(nodes, node{state: next, parent: cur, action: a})
			idx := len(nodes) - 1
			if board.IsGoal(next.Player) {
				res.Solved = true
				if m.RecordsPath() {
					res.Path, res.Moves = trace(nodes, idx)
					return finish(nil)
				}
				continue
			}
			fr.push(idx)
		}
	}

	if !res.Solved {
		return finish(ErrNoPath)
	}
	return finish(nil)
}

// trace walks parent links back from the goal node.
func trace(nodes []node, idx int) ([]core.State, []core.Action) {
	var path []core.State
	var moves []core.Action
	for i := idx; i >= 0; i = nodes[i].parent {
		path = append(path, nodes[i].state)
		if nodes[i].parent >= 0 {
			moves = append(moves, nodes[i].action)
		}
	}
	slices.Reverse(path)
	slices.Reverse(moves)
	return path, moves
}
