// Package levels turns level text into core levels and ships the built-in
// stage table. This package depends on core but core does not depend on levels.
package levels

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/vovakirdan/tui-bloxorz/internal/puzzle/core"
)

// Sentinel load errors.
var (
	ErrNoStart      = errors.New("no start cell")
	ErrInvalidStart = errors.New("start configuration is not valid")
)

// ParseError reports a malformed token in level text.
// Row and Col are zero-based; Col counts tokens, not characters.
type ParseError struct {
	Level  string
	Row    int
	Col    int
	Code   string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("level %s: row %d: %s", e.Level, e.Row+1, e.Reason)
	}
	return fmt.Sprintf("level %s: row %d col %d: %q: %s", e.Level, e.Row+1, e.Col+1, e.Code, e.Reason)
}

// LookupError reports a feature that refers to something missing.
type LookupError struct {
	Level  string
	Kind   string // "bridge" or "teleporter"
	ID     int
	At     core.Coord
	Reason string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("level %s: %s %d at %v: %s", e.Level, e.Kind, e.ID, e.At, e.Reason)
}

// CodeLen is the width of one feature code.
const CodeLen = 3

type switchRef struct {
	at core.Coord
	id int
}

type parser struct {
	id    string
	board *core.Board

	start    core.Coord
	hasStart bool

	switches []switchRef
	triggers []switchRef
	dests    map[int][]core.Coord
	destAt   map[int]core.Coord
}

// Parse builds a level from its textual grid.
//
// Rows are separated by newlines and blank rows are skipped. Tokens are
// separated by whitespace and read three characters at a time:
//
//	---  empty            ooo  hard floor       iii  soft floor
//	ggg  goal             PPP  start (hard)
//	b<slot><id>  lowered bridge segment, B<slot><id> raised
//	s<mode><id>  soft switch, S<mode><id> hard switch (mode 0 on, 1 toggle, 2 off)
//	t<id>t       teleporter trigger
//	t<id><n>     teleporter destination inserted at position n
func Parse(id, name, text string) (*core.Level, error) {
	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		rows = append(rows, fields)
	}
	if len(rows) == 0 {
		return nil, &ParseError{Level: id, Reason: "level is empty"}
	}

	w := len(rows[0])
	for y, row := range rows {
		if len(row) != w {
			return nil, &ParseError{Level: id, Row: y, Reason: fmt.Sprintf("row has %d cells, expected %d", len(row), w)}
		}
	}

	p := &parser{
		id:     id,
		board:  core.NewBoard(w, len(rows)),
		dests:  make(map[int][]core.Coord),
		destAt: make(map[int]core.Coord),
	}
	for y, row := range rows {
		for x, tok := range row {
			if err := p.cell(core.C(x, y), tok); err != nil {
				return nil, err
			}
		}
	}

	if !p.hasStart {
		return nil, fmt.Errorf("level %s: %w", id, ErrNoStart)
	}
	if err := p.resolve(); err != nil {
		return nil, err
	}

	lvl := &core.Level{ID: id, Name: name, Board: p.board, Start: p.start}
	s := lvl.InitialState()
	if !p.board.IsValid(s.Player, s.Bridges) {
		return nil, fmt.Errorf("level %s: start %v: %w", id, p.start, ErrInvalidStart)
	}
	return lvl, nil
}

func (p *parser) cell(c core.Coord, tok string) error {
	if len(tok)%CodeLen != 0 {
		return &ParseError{Level: p.id, Row: c.Y, Col: c.X, Code: tok, Reason: "token length is not a multiple of 3"}
	}

	terrain := core.TerrainEmpty
	for i := 0; i < len(tok); i += CodeLen {
		code := tok[i : i+CodeLen]
		bad := func(reason string) error {
			return &ParseError{Level: p.id, Row: c.Y, Col: c.X, Code: code, Reason: reason}
		}

		switch code {
		case "---":
			continue
		case "ooo":
			terrain = core.TerrainHard
			continue
		case "iii":
			terrain = core.TerrainSoft
			continue
		case "ggg":
			terrain = core.TerrainGoal
			continue
		case "PPP":
			if p.hasStart {
				return bad(fmt.Sprintf("second start, first at %v", p.start))
			}
			terrain = core.TerrainHard
			p.start = c
			p.hasStart = true
			continue
		}

		switch code[0] {
		case 'b', 'B':
			slot, ok1 := digit(code[1])
			id, ok2 := digit(code[2])
			if !ok1 || !ok2 {
				return bad("bridge code needs <slot><id> digits")
			}
			if _, err := p.board.AddSegment(c, id, slot, code[0] == 'B'); err != nil {
				return bad(err.Error())
			}

		case 's', 'S':
			mode, ok1 := digit(code[1])
			id, ok2 := digit(code[2])
			if !ok1 || !ok2 || mode > int(core.BridgeOff) {
				return bad("switch code needs <mode 0-2><id> digits")
			}
			kind := core.SwitchSoft
			if code[0] == 'S' {
				kind = core.SwitchHard
			}
			p.board.AddSwitch(c, core.Switch{Kind: kind, BridgeID: id, Mode: core.BridgeMode(mode)})
			p.switches = append(p.switches, switchRef{at: c, id: id})
			if terrain == core.TerrainEmpty {
				terrain = core.TerrainHard
			}

		case 't':
			id, ok := digit(code[1])
			if !ok {
				return bad("teleporter code needs an id digit")
			}
			switch code[2] {
			case 't':
				p.board.AddTrigger(c, id)
				p.triggers = append(p.triggers, switchRef{at: c, id: id})
			case '0', '1':
				pos := min(int(code[2]-'0'), len(p.dests[id]))
				p.dests[id] = slices.Insert(p.dests[id], pos, c)
				if _, seen := p.destAt[id]; !seen {
					p.destAt[id] = c
				}
			default:
				return bad("teleporter role must be t, 0 or 1")
			}
			if terrain == core.TerrainEmpty {
				terrain = core.TerrainHard
			}

		default:
			return bad("unknown feature code")
		}
	}
	p.board.SetTerrain(c, terrain)
	return nil
}

// resolve checks cross references and installs the teleporter table.
func (p *parser) resolve() error {
	for _, s := range p.switches {
		if !p.board.HasBridge(s.id) {
			return &LookupError{Level: p.id, Kind: "bridge", ID: s.id, At: s.at, Reason: "switch targets an unknown bridge"}
		}
	}

	triggered := make(map[int]bool)
	for _, t := range p.triggers {
		d := p.dests[t.id]
		if len(d) != 2 {
			return &LookupError{Level: p.id, Kind: "teleporter", ID: t.id, At: t.at, Reason: fmt.Sprintf("trigger has %d destinations, expected 2", len(d))}
		}
		triggered[t.id] = true
		p.board.SetTeleporter(t.id, [2]core.Coord{d[0], d[1]})
	}

	ids := make([]int, 0, len(p.dests))
	for id := range p.dests {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if !triggered[id] {
			return &LookupError{Level: p.id, Kind: "teleporter", ID: id, At: p.destAt[id], Reason: "destination has no trigger"}
		}
	}
	return nil
}

func digit(b byte) (int, bool) {
	if b < '0' || b > '9' {
		return 0, false
	}
	return int(b - '0'), true
}
