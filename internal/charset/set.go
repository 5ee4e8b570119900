// Package charset implements sets of code points stored as ordered,
// disjoint, non-adjacent intervals.
package charset

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// MaxCodePoint is the largest code point a set may contain.
const MaxCodePoint = unicode.MaxRune

// Interval is an inclusive range of code points.
type Interval struct {
	Lo rune
	Hi rune
}

// Contains reports whether r lies inside the interval.
func (iv Interval) Contains(r rune) bool {
	return iv.Lo <= r && r <= iv.Hi
}

func (iv Interval) String() string {
	if iv.Lo == iv.Hi {
		return formatRune(iv.Lo)
	}
	return formatRune(iv.Lo) + "-" + formatRune(iv.Hi)
}

// Set is a canonical interval set: intervals are sorted by Lo, never
// overlap and never touch. The zero value is the empty set.
type Set struct {
	intervals []Interval
}

// New returns a set containing the union of the given intervals.
// Intervals may be given in any order and may overlap.
func New(intervals ...Interval) *Set {
	s := &Set{}
	if len(intervals) == 0 {
		return s
	}
	s.intervals = normalize(append([]Interval(nil), intervals...))
	return s
}

// FromRange returns the set [lo, hi]. An empty set is returned when hi < lo.
func FromRange(lo, hi rune) *Set {
	if hi < lo {
		return &Set{}
	}
	return &Set{intervals: []Interval{{Lo: lo, Hi: hi}}}
}

// FromRune returns the singleton set {r}.
func FromRune(r rune) *Set {
	return FromRange(r, r)
}

// FromRunes returns the set of the given code points.
func FromRunes(runes ...rune) *Set {
	ivs := make([]Interval, 0, len(runes))
	for _, r := range runes {
		ivs = append(ivs, Interval{Lo: r, Hi: r})
	}
	return New(ivs...)
}

// All returns the set [0, max].
func All(max rune) *Set {
	return FromRange(0, max)
}

// Copy returns an independent copy of s.
func (s *Set) Copy() *Set {
	return &Set{intervals: append([]Interval(nil), s.intervals...)}
}

// Intervals returns a copy of the canonical intervals of s.
func (s *Set) Intervals() []Interval {
	return append([]Interval(nil), s.intervals...)
}

// Len returns the number of intervals in s.
func (s *Set) Len() int {
	return len(s.intervals)
}

// Size returns the number of code points in s.
func (s *Set) Size() int {
	n := 0
	for _, iv := range s.intervals {
		n += int(iv.Hi-iv.Lo) + 1
	}
	return n
}

// Empty reports whether s contains no code points.
func (s *Set) Empty() bool {
	return len(s.intervals) == 0
}

// Contains reports whether r is a member of s.
func (s *Set) Contains(r rune) bool {
	i := sort.Search(len(s.intervals), func(i int) bool {
		return s.intervals[i].Hi >= r
	})
	return i < len(s.intervals) && s.intervals[i].Lo <= r
}

// Equal reports whether s and other contain the same code points.
func (s *Set) Equal(other *Set) bool {
	if len(s.intervals) != len(other.intervals) {
		return false
	}
	for i, iv := range s.intervals {
		if other.intervals[i] != iv {
			return false
		}
	}
	return true
}

// AddRange adds [lo, hi] to s in place.
func (s *Set) AddRange(lo, hi rune) {
	if hi < lo {
		return
	}
	s.intervals = normalize(append(s.intervals, Interval{Lo: lo, Hi: hi}))
}

// AddRune adds r to s in place.
func (s *Set) AddRune(r rune) {
	s.AddRange(r, r)
}

// Add adds every member of other to s in place.
func (s *Set) Add(other *Set) {
	if other.Empty() {
		return
	}
	merged := make([]Interval, 0, len(s.intervals)+len(other.intervals))
	merged = append(merged, s.intervals...)
	merged = append(merged, other.intervals...)
	s.intervals = normalize(merged)
}

// Sub removes every member of other from s in place. other does not need
// to be a subset of s.
func (s *Set) Sub(other *Set) {
	if s.Empty() || other.Empty() {
		return
	}
	out := make([]Interval, 0, len(s.intervals))
	j := 0
	for _, cur := range s.intervals {
		for j < len(other.intervals) && other.intervals[j].Hi < cur.Lo {
			j++
		}
		k := j
		for k < len(other.intervals) {
			o := other.intervals[k]
			if o.Lo > cur.Hi {
				break
			}
			if o.Lo > cur.Lo {
				out = append(out, Interval{Lo: cur.Lo, Hi: o.Lo - 1})
			}
			if o.Hi >= cur.Hi {
				cur.Lo = cur.Hi + 1
				break
			}
			cur.Lo = o.Hi + 1
			k++
		}
		if cur.Lo <= cur.Hi {
			out = append(out, cur)
		}
	}
	s.intervals = out
}

// Or returns s ∪ other.
func (s *Set) Or(other *Set) *Set {
	res := s.Copy()
	res.Add(other)
	return res
}

// And returns s ∩ other.
func (s *Set) And(other *Set) *Set {
	res := &Set{}
	i, j := 0, 0
	for i < len(s.intervals) && j < len(other.intervals) {
		a, b := s.intervals[i], other.intervals[j]
		lo := max(a.Lo, b.Lo)
		hi := min(a.Hi, b.Hi)
		if lo <= hi {
			res.intervals = append(res.intervals, Interval{Lo: lo, Hi: hi})
		}
		if a.Hi < b.Hi {
			i++
		} else {
			j++
		}
	}
	return res
}

// Minus returns s − other.
func (s *Set) Minus(other *Set) *Set {
	res := s.Copy()
	res.Sub(other)
	return res
}

// Complement returns [0, max] − s.
func (s *Set) Complement(max rune) *Set {
	res := &Set{}
	next := rune(0)
	for _, iv := range s.intervals {
		if iv.Lo > max {
			break
		}
		if next < iv.Lo {
			res.intervals = append(res.intervals, Interval{Lo: next, Hi: iv.Lo - 1})
		}
		if iv.Hi >= max {
			return res
		}
		next = iv.Hi + 1
	}
	if next <= max {
		res.intervals = append(res.intervals, Interval{Lo: next, Hi: max})
	}
	return res
}

// Runes calls fn for every member of s in increasing order until fn
// returns false.
func (s *Set) Runes(fn func(r rune) bool) {
	for _, iv := range s.intervals {
		for r := iv.Lo; ; r++ {
			if !fn(r) {
				return
			}
			if r == iv.Hi {
				break
			}
		}
	}
}

func (s *Set) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, iv := range s.intervals {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(iv.String())
	}
	b.WriteByte(']')
	return b.String()
}

// normalize sorts and merges intervals in place, dropping empty ones.
func normalize(ivs []Interval) []Interval {
	n := 0
	for _, iv := range ivs {
		if iv.Lo <= iv.Hi {
			ivs[n] = iv
			n++
		}
	}
	ivs = ivs[:n]
	if len(ivs) == 0 {
		return nil
	}
	sort.Slice(ivs, func(i, j int) bool {
		if ivs[i].Lo != ivs[j].Lo {
			return ivs[i].Lo < ivs[j].Lo
		}
		return ivs[i].Hi < ivs[j].Hi
	})
	out := ivs[:1]
	for _, iv := range ivs[1:] {
		last := &out[len(out)-1]
		if iv.Lo <= last.Hi+1 {
			if iv.Hi > last.Hi {
				last.Hi = iv.Hi
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}

func formatRune(r rune) string {
	if r < 0x80 && unicode.IsPrint(r) && r != ' ' && r != '-' && r != '[' && r != ']' {
		return string(r)
	}
	if r <= 0xFFFF {
		return fmt.Sprintf(`\u%04X`, r)
	}
	return fmt.Sprintf(`\U{%X}`, r)
}
