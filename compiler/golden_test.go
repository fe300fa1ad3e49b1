package compiler

import (
	"os"
	"testing"

	"github.com/BurntSushi/toml"
)

// goldenCase is one declarative pattern -> expected-debug-text fixture.
type goldenCase struct {
	Name    string `toml:"name"`
	Pattern string `toml:"pattern"`
	Debug   string `toml:"debug"`
}

type goldenFile struct {
	Cases []goldenCase `toml:"cases"`
}

// TestCompileGoldenFixtures drives the compiler over every pattern in
// testdata/compiler_golden.toml and checks its debug text matches exactly.
func TestCompileGoldenFixtures(t *testing.T) {
	data, err := os.ReadFile("../testdata/compiler_golden.toml")
	if err != nil {
		t.Fatalf("reading golden fixtures: %v", err)
	}

	var gf goldenFile
	if _, err := toml.Decode(string(data), &gf); err != nil {
		t.Fatalf("decoding golden fixtures: %v", err)
	}
	if len(gf.Cases) == 0 {
		t.Fatal("golden fixture file has no cases")
	}

	for _, tc := range gf.Cases {
		t.Run(tc.Name, func(t *testing.T) {
			img := mustCompile(t, tc.Pattern)
			got := img.Debug()
			if got != tc.Debug {
				t.Errorf("Compile(%q) debug mismatch\n got:\n%s\nwant:\n%s", tc.Pattern, got, tc.Debug)
			}
		})
	}
}
