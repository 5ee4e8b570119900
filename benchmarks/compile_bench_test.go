package benchmarks_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/KromDaniel/lexgen/internal/charclass"
	"github.com/KromDaniel/lexgen/internal/uniprops"
	"github.com/KromDaniel/lexgen/pkg/lexgen"
)

var ruleFiles = []string{"json.lex", "sql.lex"}

func BenchmarkBuild(b *testing.B) {
	for _, file := range ruleFiles {
		for _, workers := range []int{1, 4} {
			for _, max := range []rune{0xFF, 0xFFFF, 0x10FFFF} {
				opts := lexgen.Options{
					SpecFile:     filepath.Join("..", "examples", "rules", file),
					Workers:      workers,
					MaxCodePoint: max,
					ResolveTilde: true,
				}
				b.Run(fmt.Sprintf("%s/workers=%d/max=%#x", file, workers, max), func(b *testing.B) {
					b.ReportAllocs()
					for i := 0; i < b.N; i++ {
						if _, err := lexgen.Build(context.Background(), opts); err != nil {
							b.Fatal(err)
						}
					}
				})
			}
		}
	}
}

// BenchmarkPartition refines a partition with every Unicode script, the
// worst case for class splitting.
func BenchmarkPartition(b *testing.B) {
	props := uniprops.New(uniprops.Options{})
	names := []string{"Latin", "Greek", "Cyrillic", "Han", "Arabic", "Hebrew", "L", "Lu", "Ll", "Nd", "Sm", "Zs"}
	for _, name := range names {
		if _, ok := props.Lookup(name); !ok {
			b.Fatalf("missing property %s", name)
		}
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p := charclass.New(props.MaxCodePoint())
		for _, name := range names {
			set, _ := props.Lookup(name)
			p.AddSet(set, i%2 == 1)
		}
		if p.NumClasses() < len(names) {
			b.Fatalf("too few classes: %d", p.NumClasses())
		}
	}
}

func TestRuleFilesCompile(t *testing.T) {
	for _, file := range ruleFiles {
		t.Run(file, func(t *testing.T) {
			res, err := lexgen.Build(context.Background(), lexgen.Options{
				SpecFile: filepath.Join("..", "examples", "rules", file),
			})
			if err != nil {
				t.Fatalf("failed to build %s: %v", file, err)
			}
			if len(res.Rules) == 0 {
				t.Fatalf("%s has no rules", file)
			}
		})
	}
}
