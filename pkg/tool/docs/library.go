// Package docs implements the demo lookup tools over a small library of
// markdown documents: design tokens, component specs, and code patterns.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"m2demo/pkg/tool"
)

//go:embed data/design_system.md data/component_specs.md data/code_patterns.md
var embedded embed.FS

const (
	tokensFile     = "design_system.md"
	componentsFile = "component_specs.md"
	patternsFile   = "code_patterns.md"
)

// Library holds the parsed sample documents backing the lookup tools.
type Library struct {
	tokens     *Document
	patterns   *Document
	components string // kept raw: the component tool matches on heading prefixes
}

// NewLibrary loads the embedded sample documents.
func NewLibrary() (*Library, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return loadLibrary(sub)
}

// NewLibraryFromDir loads the documents from a directory instead of the
// embedded copies, so a run can point at a real project's docs.
func NewLibraryFromDir(dir string) (*Library, error) {
	return loadLibrary(os.DirFS(filepath.Clean(dir)))
}

func loadLibrary(fsys fs.FS) (*Library, error) {
	read := func(name string) (string, error) {
		b, err := fs.ReadFile(fsys, name)
		if err != nil {
			return "", fmt.Errorf("failed to load document %s: %w", name, err)
		}
		return string(b), nil
	}

	tokensRaw, err := read(tokensFile)
	if err != nil {
		return nil, err
	}
	componentsRaw, err := read(componentsFile)
	if err != nil {
		return nil, err
	}
	patternsRaw, err := read(patternsFile)
	if err != nil {
		return nil, err
	}

	return &Library{
		tokens:     SplitSections(tokensRaw),
		patterns:   SplitSections(patternsRaw),
		components: componentsRaw,
	}, nil
}

// RegisterAll registers the three lookup tools on the provided registry.
func RegisterAll(r *tool.Registry, lib *Library) {
	r.Register(NewDesignTokens(lib))
	r.Register(NewComponentSpec(lib))
	r.Register(NewPatternGuidance(lib))
}
