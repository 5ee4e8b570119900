// Package charclass maintains the partition of the alphabet into
// character classes: code points that no rule ever tells apart share a
// class, so the automaton can work over class indices instead of raw
// code points.
package charclass

import (
	"sort"

	"github.com/KromDaniel/lexgen/internal/charset"
)

// Partition is a set of disjoint classes whose union is [0, max].
// Refinement only ever splits classes. A Partition is not safe for
// concurrent mutation.
type Partition struct {
	max     rune
	classes []*charset.Set
}

// ClassInterval maps a run of code points to its class index.
type ClassInterval struct {
	Lo    rune
	Hi    rune
	Class int
}

// New returns the trivial partition with a single class [0, max].
func New(max rune) *Partition {
	return &Partition{
		max:     max,
		classes: []*charset.Set{charset.All(max)},
	}
}

// Max returns the largest code point covered by the partition.
func (p *Partition) Max() rune {
	return p.max
}

// NumClasses returns the current number of classes.
func (p *Partition) NumClasses() int {
	return len(p.classes)
}

// AddSet refines the partition so that set is a union of classes.
// Each class that straddles set is split into its part inside set and its
// part outside. With caseless, the case closure of set is used instead.
func (p *Partition) AddSet(set *charset.Set, caseless bool) {
	if caseless {
		set = set.Caseless()
	}
	rest := set.And(charset.All(p.max))

	n := len(p.classes)
	for i := 0; i < n && !rest.Empty(); i++ {
		c := p.classes[i]
		inter := c.And(rest)
		if inter.Empty() {
			continue
		}
		rest.Sub(inter)
		if inter.Equal(c) {
			continue
		}
		p.classes[i] = c.Minus(inter)
		p.classes = append(p.classes, inter)
	}
}

// AddChar makes c (and its case variants when caseless) a class of its
// own, up to equivalence with other added sets.
func (p *Partition) AddChar(c rune, caseless bool) {
	if caseless {
		p.AddSet(charset.CaseVariants(c), false)
		return
	}
	p.AddSet(charset.FromRune(c), false)
}

// AddString adds every character of s.
func (p *Partition) AddString(s string, caseless bool) {
	for _, c := range s {
		p.AddChar(c, caseless)
	}
}

// ClassOf returns the class index of c, or -1 when c is outside [0, max].
func (p *Partition) ClassOf(c rune) int {
	if c < 0 || c > p.max {
		return -1
	}
	for i, cl := range p.classes {
		if cl.Contains(c) {
			return i
		}
	}
	return -1
}

// ClassesOf returns the sorted indices of the classes intersecting set.
// After set has been added, their union is exactly set.
func (p *Partition) ClassesOf(set *charset.Set) []int {
	var res []int
	for i, cl := range p.classes {
		if !cl.And(set).Empty() {
			res = append(res, i)
		}
	}
	return res
}

// Classes returns copies of the classes, indexed by class number.
func (p *Partition) Classes() []*charset.Set {
	res := make([]*charset.Set, len(p.classes))
	for i, cl := range p.classes {
		res[i] = cl.Copy()
	}
	return res
}

// Intervals flattens the partition into runs sorted by code point.
// Consecutive runs always belong to different classes.
func (p *Partition) Intervals() []ClassInterval {
	var res []ClassInterval
	for i, cl := range p.classes {
		for _, iv := range cl.Intervals() {
			res = append(res, ClassInterval{Lo: iv.Lo, Hi: iv.Hi, Class: i})
		}
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Lo < res[j].Lo
	})
	return res
}
