package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bloxorz/internal/config"
	"github.com/vovakirdan/tui-bloxorz/internal/puzzle/core"
	"github.com/vovakirdan/tui-bloxorz/internal/puzzle/levels"
	"github.com/vovakirdan/tui-bloxorz/internal/storage"
)

var stage1Keys = []tea.KeyMsg{
	{Type: tea.KeyRight},
	{Type: tea.KeyDown},
	{Type: tea.KeyDown},
	{Type: tea.KeyRight},
	{Type: tea.KeyRight},
	{Type: tea.KeyDown},
	{Type: tea.KeyRight},
}

func stageLevel(t *testing.T, n int) *core.Level {
	t.Helper()
	lvl, err := levels.Stage(n)
	if err != nil {
		t.Fatalf("stage %d: %v", n, err)
	}
	return lvl
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestPlay(t *testing.T, n int, store *storage.Store) PlayModel {
	t.Helper()
	return NewPlayModel(stageLevel(t, n), Options{
		Config: config.DefaultConfig(),
		Store:  store,
		Source: "tester",
	})
}

// send feeds one message and returns the updated model and command.
func send(t *testing.T, m PlayModel, msg tea.Msg) (PlayModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	pm, ok := next.(PlayModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return pm, cmd
}

func tick(t *testing.T, m PlayModel, n int) PlayModel {
	t.Helper()
	for i := 0; i < n; i++ {
		m, _ = send(t, m, TickMsg{})
	}
	return m
}

func TestPlayModelMoveAndAnimate(t *testing.T) {
	m := newTestPlay(t, 1, nil)
	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init should start the tick loop")
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Game().Moves() != 1 {
		t.Fatalf("Moves() = %d, want 1", m.Game().Moves())
	}
	if !m.anim.active() || !m.anim.showsFrom() {
		t.Fatal("a roll should start an animation at the old position")
	}
	if m.anim.from != core.Stand(core.C(1, 1)) {
		t.Errorf("animation starts from %v", m.anim.from)
	}

	m = tick(t, m, m.anim.frames)
	if m.anim.active() {
		t.Error("animation should finish after its frames")
	}
	if got := m.Game().State().Player.Orientation(); got != core.LayingX {
		t.Errorf("orientation = %v, want laying along X", got)
	}
}

func TestPlayModelInvalidMove(t *testing.T) {
	m := newTestPlay(t, 6, nil)
	before := m.Game().State()

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Game().State() != before || m.Game().Moves() != 0 {
		t.Error("invalid move should not change the game")
	}
	if m.anim.active() {
		t.Error("invalid move should not animate")
	}
	if !strings.Contains(m.Status(), "cannot left") {
		t.Errorf("status = %q", m.Status())
	}
}

func TestPlayModelWinRecordsPlay(t *testing.T) {
	store := openStore(t)
	m := newTestPlay(t, 1, store)

	for _, k := range stage1Keys {
		m, _ = send(t, m, k)
	}
	if !m.Game().Won() {
		t.Fatal("stage 1 should be won")
	}
	if !strings.Contains(m.View(), "Level complete in 7 moves") {
		t.Error("View should show the win banner")
	}

	// Further moves are ignored once won.
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.Game().Moves() != 7 {
		t.Errorf("Moves() = %d after win", m.Game().Moves())
	}

	plays, err := store.BestPlays("stage-01", 10)
	if err != nil {
		t.Fatalf("BestPlays() failed: %v", err)
	}
	if len(plays) != 1 || plays[0].Moves != 7 || plays[0].Source != "tester" {
		t.Errorf("plays = %+v", plays)
	}
}

func TestPlayModelBridgeStatus(t *testing.T) {
	m := newTestPlay(t, 2, nil)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})

	if got := m.Game().State().Bridges.String(); got != "1100" {
		t.Fatalf("bridges = %s, want 1100", got)
	}
	if !strings.Contains(m.Status(), "bridge") {
		t.Errorf("status should mention the bridge, got %q", m.Status())
	}
	if len(m.anim.flash) == 0 {
		t.Error("switched bridges should flash")
	}
	if !strings.Contains(m.View(), "Bridges: 1100") {
		t.Error("View should show the bridge status")
	}
}

func TestPlayModelRestart(t *testing.T) {
	m := newTestPlay(t, 1, nil)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = send(t, m, runeKey('r'))

	if m.Game().Moves() != 0 {
		t.Errorf("Moves() = %d after restart", m.Game().Moves())
	}
	if m.Game().State() != m.Game().Level().InitialState() {
		t.Error("restart should return to the start")
	}
}

func TestPlayModelSolveAndReplay(t *testing.T) {
	store := openStore(t)
	m := newTestPlay(t, 1, store)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})

	m, cmd := send(t, m, runeKey('s'))
	if cmd == nil {
		t.Fatal("solve should return a command")
	}
	if m.Game().Moves() != 0 {
		t.Error("solve should restart the level")
	}
	if !strings.Contains(m.View(), "Mode: solving") {
		t.Error("View should show the solving mode")
	}

	// Moves are ignored while solving.
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Game().Moves() != 0 {
		t.Error("moves should be ignored while solving")
	}

	m, _ = send(t, m, cmd())
	if !m.Replaying() {
		t.Fatalf("expected replay, status %q", m.Status())
	}

	m = tick(t, m, 200)
	if m.Replaying() {
		t.Fatal("replay should have finished")
	}
	if !m.Game().Won() || m.Game().Moves() != 7 {
		t.Errorf("replay ended with won=%v moves=%d", m.Game().Won(), m.Game().Moves())
	}

	runs, err := store.RecentRuns("stage-01", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Moves != 7 || runs[0].Method != "bfs-path" {
		t.Errorf("runs = %+v", runs)
	}
	plays, _ := store.BestPlays("stage-01", 10)
	if len(plays) != 0 {
		t.Errorf("replays should not be recorded as plays, got %+v", plays)
	}
}

func TestPlayModelRestartCancelsSolve(t *testing.T) {
	m := newTestPlay(t, 1, nil)
	m, cmd := send(t, m, runeKey('s'))
	m, _ = send(t, m, runeKey('r'))

	m, _ = send(t, m, cmd())
	if m.Replaying() {
		t.Error("a result arriving after restart should be ignored")
	}
}

func TestPlayModelStaleSolveIgnored(t *testing.T) {
	m := newTestPlay(t, 1, nil)
	m, first := send(t, m, runeKey('s'))
	m, _ = send(t, m, runeKey('r'))
	m, second := send(t, m, runeKey('s'))
	if first == nil || second == nil {
		t.Fatal("each solve should return a command")
	}

	// The first search was cancelled by the restart; its result must not
	// end the second one.
	m, _ = send(t, m, first())
	if !strings.Contains(m.View(), "Mode: solving") {
		t.Fatalf("stale result ended the running solve, status %q", m.Status())
	}

	m, _ = send(t, m, second())
	if !m.Replaying() {
		t.Fatalf("second solve should start the replay, status %q", m.Status())
	}
	m = tick(t, m, 200)
	if !m.Game().Won() || m.Game().Moves() != 7 {
		t.Errorf("replay ended with won=%v moves=%d", m.Game().Won(), m.Game().Moves())
	}
}

func TestPlayModelQuitAndBack(t *testing.T) {
	m := newTestPlay(t, 1, nil)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("esc should request the menu")
	}

	m = newTestPlay(t, 1, nil)
	m, cmd := send(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("View should be empty after quit")
	}
}

func TestRenderBoard(t *testing.T) {
	lvl := stageLevel(t, 1)
	out := renderBoard(DefaultTheme(), lvl.Board, lvl.InitialState(), animation{})
	lines := strings.Split(out, "\n")
	if len(lines) != lvl.Board.H {
		t.Fatalf("rendered %d lines, want %d", len(lines), lvl.Board.H)
	}
	if !strings.Contains(lines[1], "##@@######") {
		t.Errorf("row 1 = %q", lines[1])
	}
	if !strings.Contains(lines[4], "GG") {
		t.Errorf("row 4 should hold the goal, got %q", lines[4])
	}

	// While the first half of a roll is drawn, the block sits at its old cells.
	from := lvl.InitialState()
	to, ok := lvl.Board.Step(from, core.ActionRight)
	if !ok {
		t.Fatal("right should be valid on stage 1")
	}
	out = renderBoard(DefaultTheme(), lvl.Board, to, animation{from: from.Player, frames: 4})
	if strings.Contains(out, blockCell) || !strings.Contains(out, ghostCell) {
		t.Errorf("expected only the ghost block:\n%s", out)
	}
}
