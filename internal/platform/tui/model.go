// Package tui provides the Bubble Tea front end for the puzzle.
// It handles the play loop, solver replay, the stage picker, run history
// and serving all of it over SSH.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bloxorz/internal/config"
	"github.com/vovakirdan/tui-bloxorz/internal/puzzle/core"
	"github.com/vovakirdan/tui-bloxorz/internal/solver"
	"github.com/vovakirdan/tui-bloxorz/internal/storage"
)

// rollMS is how long one roll animation lasts.
const rollMS = 120

type playMode int

const (
	modePlay playMode = iota
	modeSolving
	modeReplay
)

func (m playMode) String() string {
	switch m {
	case modeSolving:
		return "solving"
	case modeReplay:
		return "replay"
	default:
		return "play"
	}
}

// solvedMsg carries the outcome of a background search.
type solvedMsg struct {
	solve  int // generation of the search that produced it
	result solver.Result
	err    error
}

// Options configures a PlayModel.
type Options struct {
	Config config.Config
	Store  *storage.Store // optional; plays and solver runs are recorded when set
	Logger *log.Logger    // optional
	Source string         // recorded with finished plays, "local" when empty
}

// PlayModel is the Bubble Tea model for playing one level.
type PlayModel struct {
	game  *core.Game
	opts  Options
	keys  PlayKeyMap
	help  help.Model
	theme Theme

	anim       animation
	mode       playMode
	replay     []core.Action
	replayNext int
	replayWait int
	cancel     context.CancelFunc
	solveGen   int // bumped by every startSolve; older results are stale

	status     string
	saved      bool // whether the current win has been recorded
	width      int
	height     int
	quitting   bool
	backToMenu bool
	standalone bool // quit the program on back instead of returning to a menu
}

// NewPlayModel creates a player for the level.
func NewPlayModel(level *core.Level, opts Options) PlayModel {
	h := help.New()
	h.ShowAll = false

	return PlayModel{
		game:  core.NewGame(level),
		opts:  opts,
		keys:  DefaultPlayKeyMap(),
		help:  h,
		theme: NewTheme(opts.Config.Play.Theme),
	}
}

// Init starts the tick loop.
func (m PlayModel) Init() tea.Cmd {
	return tickCmd(m.opts.Config.Play.TickRate)
}

// Update handles messages and updates the model state.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()

	case solvedMsg:
		return m.handleSolved(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.stopSolve()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.stopSolve()
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		m.restart()
		m.status = "restarted"
		return m, nil

	case key.Matches(msg, m.keys.Solve):
		if m.mode == modeSolving {
			return m, nil
		}
		cmd := m.startSolve()
		return m, cmd

	case msg.String() == "ctrl+p":
		m.saveScreenshot()
		return m, nil
	}

	a, ok := m.keys.ActionFor(msg)
	if !ok || m.mode != modePlay {
		return m, nil
	}
	m.move(a)
	return m, nil
}

// move applies a player move and starts its animation.
func (m *PlayModel) move(a core.Action) bool {
	from := m.game.State().Player
	if !m.game.Move(a) {
		if !m.game.Won() {
			m.status = fmt.Sprintf("cannot %s", a)
		}
		return false
	}
	m.anim = newAnimation(from, framesFor(rollMS, m.opts.Config.Play.TickRate), m.game.Events())
	m.status = describeEvents(m.game.Events())

	if m.game.Won() && m.mode == modePlay && !m.saved {
		m.saved = true
		if m.opts.Store != nil {
			//nolint:errcheck // Best-effort save, the game continues regardless
			m.opts.Store.SavePlay(m.game.Level().ID, m.game.Moves(), m.opts.Source)
		}
	}
	return true
}

func describeEvents(events []core.Event) string {
	var parts []string
	for _, ev := range events {
		switch ev.Kind {
		case core.EventTeleported:
			parts = append(parts, "teleported")
		case core.EventBridgeChanged:
			parts = append(parts, fmt.Sprintf("bridge %d %s", ev.BridgeID, ev.Mode))
		}
	}
	return strings.Join(parts, ", ")
}

func (m *PlayModel) restart() {
	m.stopSolve()
	m.game.Restart()
	m.mode = modePlay
	m.anim = animation{}
	m.replay = nil
	m.saved = false
}

// startSolve runs the configured path search in the background.
func (m *PlayModel) startSolve() tea.Cmd {
	m.restart()

	method, err := solver.ParseMethod(m.opts.Config.Solver.Method)
	if err != nil || !method.RecordsPath() {
		method = solver.MethodBFSPath
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.solveGen++
	gen := m.solveGen
	m.mode = modeSolving
	m.status = fmt.Sprintf("solving with %s...", method)

	level := m.game.Level()
	opts := solver.Options{MaxStates: m.opts.Config.Solver.MaxStates, Logger: m.opts.Logger}
	return func() tea.Msg {
		res, err := solver.New(level, opts).Solve(ctx, method)
		return solvedMsg{solve: gen, result: res, err: err}
	}
}

func (m *PlayModel) stopSolve() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// handleSolved records the run and starts the replay.
func (m PlayModel) handleSolved(msg solvedMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeSolving || msg.solve != m.solveGen {
		// Cancelled by restart or quit, or superseded by a newer solve.
		return m, nil
	}
	m.stopSolve()
	res := msg.result

	if m.opts.Store != nil && (msg.err == nil || errors.Is(msg.err, solver.ErrNoPath)) {
		//nolint:errcheck // Best-effort save
		m.opts.Store.SaveRun(storage.RunFromResult(m.game.Level().ID, res))
	}

	if msg.err != nil {
		m.mode = modePlay
		m.status = fmt.Sprintf("no solution: %v", msg.err)
		return m, nil
	}

	m.mode = modeReplay
	m.replay = res.Actions()
	m.replayNext = 0
	m.replayWait = framesFor(m.opts.Config.Play.ReplayIntervalMS, m.opts.Config.Play.TickRate)
	m.status = fmt.Sprintf("%s: %d moves, %d states visited", res.Method, len(m.replay), res.Visited)
	return m, nil
}

// handleTick advances the animation and the replay.
func (m PlayModel) handleTick() (tea.Model, tea.Cmd) {
	m.anim.advance()

	if m.mode == modeReplay && !m.anim.active() {
		m.replayWait--
		if m.replayWait <= 0 {
			m.stepReplay()
		}
	}

	return m, tickCmd(m.opts.Config.Play.TickRate)
}

func (m *PlayModel) stepReplay() {
	if m.replayNext >= len(m.replay) {
		m.mode = modePlay
		m.status = fmt.Sprintf("replay finished in %d moves", m.game.Moves())
		return
	}
	a := m.replay[m.replayNext]
	m.replayNext++
	if !m.move(a) {
		m.mode = modePlay
		m.status = fmt.Sprintf("replay diverged at move %d (%s)", m.replayNext, a)
		return
	}
	m.replayWait = framesFor(m.opts.Config.Play.ReplayIntervalMS, m.opts.Config.Play.TickRate)
}

// saveScreenshot saves the ASCII board to a file.
func (m *PlayModel) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".bloxorz", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.Level().ID, timestamp))
	text := core.RenderASCII(m.game.Board(), m.game.State())
	if err := os.WriteFile(path, []byte(text), 0o600); err == nil {
		m.status = "saved " + path
	}
}

// View renders the board, the HUD and the help bar.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}

	t := m.theme
	lvl := m.game.Level()
	st := m.game.State()
	var b strings.Builder

	title := lvl.ID
	if lvl.Name != "" {
		title = fmt.Sprintf("%s  %s", lvl.ID, lvl.Name)
	}
	b.WriteString(t.HUDTitle.Render("BLOXORZ") + "  " + t.HUDValue.Render(title))
	b.WriteString("\n")

	sep := t.HUDControls.Render("  |  ")
	hud := []string{
		"Moves: " + t.HUDValue.Render(fmt.Sprint(m.game.Moves())),
		"Block: " + t.HUDValue.Render(st.Player.Orientation().String()),
		"Mode: " + t.HUDValue.Render(m.mode.String()),
	}
	if st.Bridges.Len() > 0 {
		hud = append(hud, "Bridges: "+t.HUDValue.Render(st.Bridges.String()))
	}
	b.WriteString(strings.Join(hud, sep))
	b.WriteString("\n\n")

	boardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240"))
	b.WriteString(boardStyle.Render(renderBoard(t, m.game.Board(), st, m.anim)))
	b.WriteString("\n")

	if m.game.Won() {
		b.WriteString(t.Banner.Render(fmt.Sprintf("Level complete in %d moves!", m.game.Moves())))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(t.Status.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(t.HUDControls.Render(m.help.View(m.keys)))

	return b.String()
}

// Game returns the live session.
func (m PlayModel) Game() *core.Game {
	return m.game
}

// Status returns the last status line.
func (m PlayModel) Status() string {
	return m.status
}

// Replaying reports whether a solver path is being replayed.
func (m PlayModel) Replaying() bool {
	return m.mode == modeReplay
}

// IsQuitting returns true if user requested to quit entirely.
func (m PlayModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m PlayModel) BackToMenu() bool {
	return m.backToMenu
}

// RunPlay starts the Bubble Tea program for a single level.
func RunPlay(level *core.Level, opts Options) error {
	model := NewPlayModel(level, opts)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
