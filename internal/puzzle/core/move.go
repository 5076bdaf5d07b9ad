package core

// displacement is the (dx1, dy1, dx2, dy2) applied to the two cubes.
type displacement [4]int

// moves is indexed by orientation, then by rolling action.
var moves = [4][4]displacement{
	Standing: {
		ActionUp:    {0, -2, 0, -1},
		ActionDown:  {0, 1, 0, 2},
		ActionLeft:  {-2, 0, -1, 0},
		ActionRight: {1, 0, 2, 0},
	},
	LayingX: {
		ActionUp:    {0, -1, 0, -1},
		ActionDown:  {0, 1, 0, 1},
		ActionLeft:  {-1, 0, -2, 0},
		ActionRight: {2, 0, 1, 0},
	},
	LayingY: {
		ActionUp:    {0, -1, 0, -2},
		ActionDown:  {0, 2, 0, 1},
		ActionLeft:  {-1, 0, -1, 0},
		ActionRight: {1, 0, 1, 0},
	},
	Split: {
		ActionUp:    {0, -1, 0, 0},
		ActionDown:  {0, 1, 0, 0},
		ActionLeft:  {-1, 0, 0, 0},
		ActionRight: {1, 0, 0, 0},
	},
}

// TryMove applies the displacement of action a without checking the board.
// Swap exchanges the cubes and is only defined for a split block; for any
// other orientation TryMove reports false.
func TryMove(p Player, a Action) (Player, bool) {
	o := p.Orientation()
	if a == ActionSwap {
		if o != Split {
			return p, false
		}
		return Player{Block1: p.Block2, Block2: p.Block1}, true
	}
	if a > ActionRight {
		return p, false
	}
	d := moves[o][a]
	return Player{
		Block1: p.Block1.Add(d[0], d[1]),
		Block2: p.Block2.Add(d[2], d[3]),
	}, true
}

// IsValid returns true if both cubes rest on passable cells and a standing
// block is not on soft floor.
func (b *Board) IsValid(p Player, st BridgeStatus) bool {
	if !b.Passable(p.Block1, st) || !b.Passable(p.Block2, st) {
		return false
	}
	if p.Standing() && b.Terrain(p.Block1) == TerrainSoft {
		return false
	}
	return true
}

// IsGoal returns true if the block stands upright on the goal.
func (b *Board) IsGoal(p Player) bool {
	return p.Standing() && b.Terrain(p.Block1) == TerrainGoal
}

// Effects records what CheckSwitch did.
type Effects struct {
	Teleported bool
	Activated  []Switch // in firing order
}

// CheckSwitch applies switches and teleporters under the block.
//
// A standing block visits every overlay at its cell in registration order:
// triggers relocate it to the teleporter destinations and any switch fires.
// A laying block fires soft switches under Block1 then Block2. A split block
// fires soft switches under Block1 only.
func (b *Board) CheckSwitch(p Player, st BridgeStatus) (Player, BridgeStatus) {
	p, st, _ = b.checkSwitch(p, st)
	return p, st
}

func (b *Board) checkSwitch(p Player, st BridgeStatus) (Player, BridgeStatus, Effects) {
	var fx Effects
	fire := func(c Coord, hardToo bool) {
		for _, ov := range b.overlays[c] {
			sw, ok := ov.(Switch)
			if !ok || (sw.Kind == SwitchHard && !hardToo) {
				continue
			}
			st = b.Activate(st, sw.BridgeID, sw.Mode)
			fx.Activated = append(fx.Activated, sw)
		}
	}

	switch p.Orientation() {
	case Standing:
		for _, ov := range b.overlays[p.Block1] {
			switch v := ov.(type) {
			case Trigger:
				if dest, ok := b.teleporters[v.ID]; ok {
					p = Player{Block1: dest[0], Block2: dest[1]}
					fx.Teleported = true
				}
			case Switch:
				st = b.Activate(st, v.BridgeID, v.Mode)
				fx.Activated = append(fx.Activated, v)
			}
		}
	case LayingX, LayingY:
		fire(p.Block1, false)
		fire(p.Block2, false)
	case Split:
		fire(p.Block1, false)
	}
	return p, st, fx
}

// Transition describes one applied move.
type Transition struct {
	Action Action
	From   State
	To     State
	Effects
}

// Apply computes the successor of s under action a.
// The order is displacement, validity, side effects, normalization.
// It reports false if the move is not allowed; s is never modified.
func (b *Board) Apply(s State, a Action) (Transition, bool) {
	p, ok := TryMove(s.Player, a)
	if !ok || !b.IsValid(p, s.Bridges) {
		return Transition{}, false
	}
	st := s.Bridges
	var fx Effects
	if a != ActionSwap {
		p, st, fx = b.checkSwitch(p, st)
	}
	return Transition{
		Action:  a,
		From:    s,
		To:      State{Player: p.Normalize(), Bridges: st},
		Effects: fx,
	}, true
}

// Step returns the successor of s under action a.
func (b *Board) Step(s State, a Action) (State, bool) {
	t, ok := b.Apply(s, a)
	if !ok {
		return s, false
	}
	return t.To, true
}

// Actions returns the actions worth trying from s in expansion order.
func Actions(s State) []Action {
	if s.Player.Orientation() == Split {
		return []Action{ActionUp, ActionDown, ActionLeft, ActionRight, ActionSwap}
	}
	return Directions[:]
}
