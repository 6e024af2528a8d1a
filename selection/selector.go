package selection

import "sort"

// Selector collects the best intersection of each candidate. Callers pair
// PushSelectable with PopSelectable; AddIntersection in between narrows the
// running best of the current candidate.
type Selector interface {
	PushSelectable(s Selectable)
	AddIntersection(i Intersection)
	PopSelectable()
}

// accumulator is the push/add/pop state shared by the selectors below.
type accumulator struct {
	current      Selectable
	intersection Intersection
}

func (a *accumulator) push(s Selectable) {
	a.current = s
	a.intersection = Intersection{}
}

func (a *accumulator) add(i Intersection) {
	if a.current == nil {
		return
	}
	AssignIfCloser(&a.intersection, i)
}

func (a *accumulator) take() (Selectable, Intersection, bool) {
	s, i := a.current, a.intersection
	a.current = nil
	a.intersection = Intersection{}
	return s, i, s != nil
}

type poolEntry struct {
	intersection Intersection
	selectable   Selectable
	seq          uint64
}

// SortedPool keeps every hit candidate ordered nearest first. A candidate
// popped more than once keeps only its best intersection.
type SortedPool struct {
	acc     accumulator
	entries []poolEntry
	index   map[Selectable]int
	seq     uint64
}

func NewSortedPool() *SortedPool {
	return &SortedPool{index: make(map[Selectable]int)}
}

func (p *SortedPool) PushSelectable(s Selectable) {
	if p.acc.current != nil {
		p.PopSelectable()
	}
	p.acc.push(s)
}

func (p *SortedPool) AddIntersection(i Intersection) { p.acc.add(i) }

func (p *SortedPool) PopSelectable() {
	s, i, ok := p.acc.take()
	if ok {
		p.insert(i, s)
	}
}

// AddSelectable is push, add and pop in one call.
func (p *SortedPool) AddSelectable(i Intersection, s Selectable) {
	p.PushSelectable(s)
	p.AddIntersection(i)
	p.PopSelectable()
}

func (p *SortedPool) insert(i Intersection, s Selectable) {
	if !i.Valid() {
		return
	}
	if p.index == nil {
		p.index = make(map[Selectable]int)
	}
	if at, ok := p.index[s]; ok {
		if !i.Less(p.entries[at].intersection) {
			return
		}
		p.entries = append(p.entries[:at], p.entries[at+1:]...)
	}

	p.seq++
	e := poolEntry{intersection: i, selectable: s, seq: p.seq}
	// after existing equal keys, like a multimap insert
	at := sort.Search(len(p.entries), func(k int) bool {
		return i.Less(p.entries[k].intersection)
	})
	p.entries = append(p.entries, poolEntry{})
	copy(p.entries[at+1:], p.entries[at:])
	p.entries[at] = e
	p.reindex()
}

func (p *SortedPool) reindex() {
	clear(p.index)
	for k, e := range p.entries {
		p.index[e.selectable] = k
	}
}

// Empty reports whether no valid candidate was collected.
func (p *SortedPool) Empty() bool { return len(p.entries) == 0 }

func (p *SortedPool) Len() int { return len(p.entries) }

// Best returns the nearest candidate.
func (p *SortedPool) Best() (Selectable, Intersection, bool) {
	if len(p.entries) == 0 {
		return nil, Intersection{}, false
	}
	e := p.entries[0]
	return e.selectable, e.intersection, true
}

// Each visits candidates nearest first until fn returns false.
func (p *SortedPool) Each(fn func(i Intersection, s Selectable) bool) {
	for _, e := range p.entries {
		if !fn(e.intersection, e.selectable) {
			return
		}
	}
}

// Selectables returns the candidates nearest first.
func (p *SortedPool) Selectables() []Selectable {
	out := make([]Selectable, 0, len(p.entries))
	for _, e := range p.entries {
		out = append(out, e.selectable)
	}
	return out
}

// Intersection returns the pooled intersection of s.
func (p *SortedPool) Intersection(s Selectable) (Intersection, bool) {
	at, ok := p.index[s]
	if !ok {
		return Intersection{}, false
	}
	return p.entries[at].intersection, true
}

// BestSelector keeps the group of candidates tied, within epsilon, with the
// best intersection seen so far. Members that fall outside epsilon when a
// closer tie arrives are dropped from the group.
type BestSelector struct {
	acc             accumulator
	best            Intersection
	tied            []Selectable
	hits            []Intersection
	depthEpsilon    float32
	distanceEpsilon float32
}

func NewBestSelector(depthEpsilon, distanceEpsilon float32) *BestSelector {
	return &BestSelector{depthEpsilon: depthEpsilon, distanceEpsilon: distanceEpsilon}
}

func (b *BestSelector) PushSelectable(s Selectable) {
	if b.acc.current != nil {
		b.PopSelectable()
	}
	b.acc.push(s)
}

func (b *BestSelector) AddIntersection(i Intersection) { b.acc.add(i) }

func (b *BestSelector) PopSelectable() {
	s, i, ok := b.acc.take()
	if !ok || !i.Valid() {
		return
	}
	switch {
	case i.EqualEpsilon(b.best, b.depthEpsilon, b.distanceEpsilon):
		b.tied = append(b.tied, s)
		b.hits = append(b.hits, i)
		if i.Less(b.best) {
			b.best = i
			b.prune()
		}
	case i.Less(b.best):
		b.tied = append(b.tied[:0], s)
		b.hits = append(b.hits[:0], i)
		b.best = i
	}
}

// prune drops tied members no longer within epsilon of best.
func (b *BestSelector) prune() {
	k := 0
	for j, hit := range b.hits {
		if hit.EqualEpsilon(b.best, b.depthEpsilon, b.distanceEpsilon) {
			b.tied[k], b.hits[k] = b.tied[j], hit
			k++
		}
	}
	b.tied, b.hits = b.tied[:k], b.hits[:k]
}

// Failed reports whether nothing was hit.
func (b *BestSelector) Failed() bool { return len(b.tied) == 0 }

// Best returns the tied group in arrival order.
func (b *BestSelector) Best() []Selectable { return b.tied }

func (b *BestSelector) Intersection() Intersection { return b.best }

// BooleanSelector records whether any candidate that is already selected
// was hit. Intersections of unselected candidates are ignored.
type BooleanSelector struct {
	acc      accumulator
	selected bool
}

func (b *BooleanSelector) PushSelectable(s Selectable) {
	if b.acc.current != nil {
		b.PopSelectable()
	}
	b.acc.push(s)
}

func (b *BooleanSelector) AddIntersection(i Intersection) {
	if b.acc.current != nil && b.acc.current.IsSelected() {
		b.acc.add(i)
	}
}

func (b *BooleanSelector) PopSelectable() {
	if _, i, ok := b.acc.take(); ok && i.Valid() {
		b.selected = true
	}
}

func (b *BooleanSelector) IsSelected() bool { return b.selected }
