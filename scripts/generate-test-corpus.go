//go:build ignore

// Package main generates a synthetic source tree for benchmarking codeunify.
// Usage: go run scripts/generate-test-corpus.go -files 1000 -output testdata/bench
//
// Besides regular sources the tree carries what a real checkout has:
// dependency and cache directories, a .gitignore with a negated pattern,
// a .codeignore, Latin-1 files and CRLF line endings.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
)

var (
	numFiles  = flag.Int("files", 1000, "Number of source files to generate")
	outputDir = flag.String("output", "testdata/bench", "Output directory")
	seed      = flag.Uint64("seed", 42, "Random seed for reproducibility")
	depth     = flag.Int("depth", 3, "Maximum directory nesting")
)

var goTemplate = `package %[1]s

import (
	"context"
	"fmt"
)

// %[2]s handles %[3]s.
type %[2]s struct {
	name string
}

// %[4]s runs one %[3]s step.
func (s *%[2]s) %[4]s(ctx context.Context, input string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf("%%s: %%s", s.name, input), nil
}
`

var pyTemplate = `"""%[2]s handles %[3]s."""


class %[2]s:
    def __init__(self, name):
        self.name = name

    def %[4]s(self, data):
        return f"{self.name}: {data}"
`

var jsTemplate = `export class %[2]s {
  constructor(name) {
    this.name = name;
  }

  %[4]s(input) {
    return ` + "`${this.name}: ${input}`" + `;
  }
}
`

var mdTemplate = `# %[2]s

Notes on %[3]s. Call ` + "`%[4]s`" + ` with the input to process.
`

type language struct {
	ext      string
	template string
	share    int // percent of files
}

var languages = []language{
	{"go", goTemplate, 40},
	{"py", pyTemplate, 30},
	{"js", jsTemplate, 20},
	{"md", mdTemplate, 10},
}

var (
	nouns   = []string{"Handler", "Manager", "Service", "Parser", "Cache", "Router", "Worker", "Store"}
	verbs   = []string{"process", "handle", "parse", "render", "fetch", "store"}
	domains = []string{"caching", "logging", "routing", "parsing", "indexing", "batching"}
	dirs    = []string{"api", "core", "internal", "lib", "pkg", "util", "web"}
)

// noise is written once per corpus; all of it should be left out of the
// compiled document except keep/api.gen.js.
var noise = map[string]string{
	".gitignore":                      "*.gen.js\n!keep/api.gen.js\nbuild/\n",
	".codeignore":                     "*.generated.go\nfixtures/*\nvendor/*\n",
	"build/out.go":                    "package build\n",
	"debug.log":                       "debug\n",
	"keep/api.gen.js":                 "// kept by negation\n",
	"web/client.gen.js":               "// generated\n",
	"node_modules/left-pad/index.js":  "module.exports = () => {};\n",
	"src/__pycache__/mod.cpython.pyc": "\x00\x01",
	"vendor/github.com/x/y.go":        "package y\n",
	"docs/_build/html/index.md":       "# built\n",
	"pkg/api.generated.go":            "package pkg\n",
	"fixtures/data.json":              "{}\n",
	"dist/bundle.js":                  "bundle\n",
}

func main() {
	flag.Parse()
	rng := rand.New(rand.NewPCG(*seed, *seed))

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generating %d files in %s...\n", *numFiles, *outputDir)

	generated := 0
	for _, lang := range languages {
		n := *numFiles * lang.share / 100
		for i := 0; i < n; i++ {
			if err := generateFile(rng, lang, i); err != nil {
				fmt.Fprintf(os.Stderr, "Error generating %s file %d: %v\n", lang.ext, i, err)
				continue
			}
			generated++
		}
	}

	for rel, content := range noise {
		if err := write(rel, content); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", rel, err)
		}
	}

	fmt.Printf("Generated %d source files and %d ignore-rule fixtures.\n", generated, len(noise))
}

func generateFile(rng *rand.Rand, lang language, index int) error {
	noun := pick(rng, nouns)
	verb := pick(rng, verbs)
	domain := pick(rng, domains)

	pkg := fmt.Sprintf("pkg%d", index%50)
	content := fmt.Sprintf(lang.template, pkg, noun, domain, verb)

	switch {
	case index%17 == 0:
		// Latin-1: not valid UTF-8, exercises the fallback decoder.
		content = strings.ReplaceAll(content, domain, domain+" caf\xe9")
	case index%11 == 0:
		content = strings.ReplaceAll(content, "\n", "\r\n")
	}

	parts := make([]string, 0, *depth+1)
	for d := rng.IntN(*depth + 1); d > 0; d-- {
		parts = append(parts, pick(rng, dirs))
	}
	parts = append(parts, fmt.Sprintf("%s_%d.%s", strings.ToLower(noun), index, lang.ext))
	return write(filepath.Join(parts...), content)
}

func write(rel, content string) error {
	path := filepath.Join(*outputDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func pick(rng *rand.Rand, pool []string) string {
	return pool[rng.IntN(len(pool))]
}
