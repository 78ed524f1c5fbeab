package bracket

// Link emits the progression edges for a registry produced by [Build].
//
// Stages are processed in order starting at 1. For each stage s the edges are,
// in emission order:
//
//  1. every Winners match of s-1 to Winners[s][i/2], each immediately followed
//     by its loser path to LosersUpper[s-1][i/k] (k is 2 for s == 1, else 1);
//  2. LosersUpper[s][j] to LosersLower[s][j/2] when s has a lower group;
//  3. the last losers group of s-1 at j to LosersUpper[s][j].
//
// Matches of the final stage have no outgoing edges.
func Link(reg *Registry, opts Options) ([]Progression, error) {
	l := linker{reg: reg, opts: opts}
	for s := 1; s < reg.Stages(); s++ {
		if err := l.stage(s); err != nil {
			return nil, err
		}
	}
	return l.edges, nil
}

type linker struct {
	reg   *Registry
	opts  Options
	edges []Progression
}

func (l *linker) stage(s int) error {
	k := 1
	if s == 1 {
		k = 2
	}
	for i, src := range l.reg.IDs(s-1, Winners) {
		if err := l.forward(src, Slot{Stage: s, Group: Winners, Index: i / 2}, false); err != nil {
			return err
		}
		if err := l.forward(src, Slot{Stage: s - 1, Group: LosersUpper, Index: i / k}, true); err != nil {
			return err
		}
	}

	if l.reg.Has(s, LosersLower) {
		for j, src := range l.reg.IDs(s, LosersUpper) {
			if err := l.forward(src, Slot{Stage: s, Group: LosersLower, Index: j / 2}, false); err != nil {
				return err
			}
		}
	}

	prev := LosersUpper
	if l.reg.Has(s-1, LosersLower) {
		prev = LosersLower
	}
	for j, dst := range l.reg.IDs(s, LosersUpper) {
		if err := l.backward(Slot{Stage: s - 1, Group: prev, Index: j}, dst); err != nil {
			return err
		}
	}
	return nil
}

// forward links a known source to the match at slot.
func (l *linker) forward(src int, target Slot, losers bool) error {
	dst, ok := l.reg.Lookup(target)
	if !ok {
		return l.missing(src, target)
	}
	l.edges = append(l.edges, Progression{SourceID: src, TargetID: dst, Losers: losers})
	return nil
}

// backward links the match at slot to a known target.
func (l *linker) backward(source Slot, dst int) error {
	src, ok := l.reg.Lookup(source)
	if !ok {
		return l.missing(dst, source)
	}
	l.edges = append(l.edges, Progression{SourceID: src, TargetID: dst})
	return nil
}

func (l *linker) missing(id int, want Slot) error {
	err := &UnlinkedSlotError{MatchID: id, Want: want, Have: len(l.reg.IDs(want.Stage, want.Group))}
	if !l.opts.Lenient {
		return err
	}
	l.opts.logf("skipping progression: %v", err)
	return nil
}
