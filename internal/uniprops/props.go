// Package uniprops resolves Unicode property names to code point sets.
package uniprops

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/unicode/rangetable"

	"github.com/KromDaniel/lexgen/internal/charset"
)

// Provider looks up Unicode properties by name. A missing property is
// reported with ok == false, which is distinct from an empty set.
type Provider interface {
	Lookup(name string) (set *charset.Set, ok bool)
	MaxCodePoint() rune
}

// Options configures a Table.
type Options struct {
	// MaxCodePoint bounds every returned set (0 means unicode.MaxRune).
	MaxCodePoint rune

	// Basic restricts the table to general categories and scripts, the way
	// early Unicode data files did. Derived properties such as Uppercase,
	// Lowercase, Whitespace and Alphabetic are then absent.
	Basic bool
}

// Table is a Provider backed by the Unicode tables compiled into the Go
// runtime. It is safe for concurrent use.
type Table struct {
	max    rune
	tables map[string]*unicode.RangeTable

	mu    sync.Mutex
	cache map[string]*charset.Set
}

var _ Provider = (*Table)(nil)

// categoryAliases maps long general category names to their short form.
var categoryAliases = map[string]string{
	"Letter":                "L",
	"Cased_Letter":          "LC",
	"Uppercase_Letter":      "Lu",
	"Lowercase_Letter":      "Ll",
	"Titlecase_Letter":      "Lt",
	"Modifier_Letter":       "Lm",
	"Other_Letter":          "Lo",
	"Mark":                  "M",
	"Combining_Mark":        "M",
	"Nonspacing_Mark":       "Mn",
	"Spacing_Mark":          "Mc",
	"Enclosing_Mark":        "Me",
	"Number":                "N",
	"Decimal_Number":        "Nd",
	"Digit":                 "Nd",
	"Letter_Number":         "Nl",
	"Other_Number":          "No",
	"Punctuation":           "P",
	"Connector_Punctuation": "Pc",
	"Dash_Punctuation":      "Pd",
	"Open_Punctuation":      "Ps",
	"Close_Punctuation":     "Pe",
	"Initial_Punctuation":   "Pi",
	"Final_Punctuation":     "Pf",
	"Other_Punctuation":     "Po",
	"Symbol":                "S",
	"Math_Symbol":           "Sm",
	"Currency_Symbol":       "Sc",
	"Modifier_Symbol":       "Sk",
	"Other_Symbol":          "So",
	"Separator":             "Z",
	"Space_Separator":       "Zs",
	"Line_Separator":        "Zl",
	"Paragraph_Separator":   "Zp",
	"Other":                 "C",
	"Control":               "Cc",
	"Format":                "Cf",
	"Surrogate":             "Cs",
	"Private_Use":           "Co",
}

// derived holds binary properties that Go only exposes through their
// contributory parts.
var derived = map[string]func() *unicode.RangeTable{
	"Uppercase": func() *unicode.RangeTable {
		return rangetable.Merge(unicode.Lu, unicode.Other_Uppercase)
	},
	"Lowercase": func() *unicode.RangeTable {
		return rangetable.Merge(unicode.Ll, unicode.Other_Lowercase)
	},
	"Alphabetic": func() *unicode.RangeTable {
		return rangetable.Merge(unicode.Lu, unicode.Ll, unicode.Lt, unicode.Lm, unicode.Lo,
			unicode.Nl, unicode.Other_Alphabetic)
	},
	"Whitespace": func() *unicode.RangeTable {
		return unicode.White_Space
	},
}

// New builds a Table.
func New(opts Options) *Table {
	t := &Table{
		max:    opts.MaxCodePoint,
		tables: make(map[string]*unicode.RangeTable),
		cache:  make(map[string]*charset.Set),
	}
	if t.max <= 0 || t.max > unicode.MaxRune {
		t.max = unicode.MaxRune
	}

	for name, rt := range unicode.Categories {
		t.tables[normalizeName(name)] = rt
	}
	if _, ok := unicode.Categories["LC"]; !ok {
		t.tables[normalizeName("LC")] = rangetable.Merge(unicode.Lu, unicode.Ll, unicode.Lt)
	}
	for long, short := range categoryAliases {
		if rt, ok := t.tables[normalizeName(short)]; ok {
			t.tables[normalizeName(long)] = rt
		}
	}
	for name, rt := range unicode.Scripts {
		key := normalizeName(name)
		if _, taken := t.tables[key]; !taken {
			t.tables[key] = rt
		}
	}
	t.tables["ascii"] = &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0, Hi: 0x7F, Stride: 1}}}
	t.tables["any"] = &unicode.RangeTable{
		R16: []unicode.Range16{{Lo: 0, Hi: 0xFFFF, Stride: 1}},
		R32: []unicode.Range32{{Lo: 0x10000, Hi: unicode.MaxRune, Stride: 1}},
	}

	if opts.Basic {
		return t
	}

	for name, rt := range unicode.Properties {
		key := normalizeName(name)
		if _, taken := t.tables[key]; !taken {
			t.tables[key] = rt
		}
	}
	for name, mk := range derived {
		t.tables[normalizeName(name)] = mk()
	}
	return t
}

// MaxCodePoint returns the largest code point of the alphabet.
func (t *Table) MaxCodePoint() rune {
	return t.max
}

// Lookup returns the set for a property name. Names are matched loosely:
// case, spaces, hyphens and underscores are ignored, and the prefixes
// "gc=", "General_Category=", "sc=" and "Script=" are accepted.
// The returned set is owned by the caller.
func (t *Table) Lookup(name string) (*charset.Set, bool) {
	key := normalizeName(name)
	if i := strings.IndexByte(key, '='); i >= 0 {
		switch key[:i] {
		case "gc", "generalcategory", "sc", "script":
			key = key[i+1:]
		default:
			return nil, false
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if set, ok := t.cache[key]; ok {
		return set.Copy(), true
	}
	rt, ok := t.tables[key]
	if !ok {
		return nil, false
	}
	set := FromRangeTable(rt).And(charset.All(t.max))
	t.cache[key] = set
	return set.Copy(), true
}

// FromRangeTable converts a range table into a set.
func FromRangeTable(rt *unicode.RangeTable) *charset.Set {
	var ivs []charset.Interval
	for _, r := range rt.R16 {
		ivs = appendStrided(ivs, rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
	for _, r := range rt.R32 {
		ivs = appendStrided(ivs, rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
	return charset.New(ivs...)
}

func appendStrided(ivs []charset.Interval, lo, hi, stride rune) []charset.Interval {
	if stride == 1 {
		return append(ivs, charset.Interval{Lo: lo, Hi: hi})
	}
	for r := lo; r <= hi; r += stride {
		ivs = append(ivs, charset.Interval{Lo: r, Hi: r})
	}
	return ivs
}

func normalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch r {
		case ' ', '_', '-':
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
