package charset

import "unicode"

// Caseless returns s extended with every case variant of its members,
// following the Unicode simple case folding orbits.
func (s *Set) Caseless() *Set {
	res := s.Copy()
	var extra []Interval
	s.Runes(func(r rune) bool {
		for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
			if !s.Contains(f) {
				extra = append(extra, Interval{Lo: f, Hi: f})
			}
		}
		return true
	})
	if len(extra) > 0 {
		res.Add(New(extra...))
	}
	return res
}

// CaseVariants returns the set of r and all of its case variants.
func CaseVariants(r rune) *Set {
	ivs := []Interval{{Lo: r, Hi: r}}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		ivs = append(ivs, Interval{Lo: f, Hi: f})
	}
	return New(ivs...)
}
