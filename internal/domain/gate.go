// Package domain contains the core harness logic: the transform gate, the
// scenario loader, the per-mode runner, the dual-mode orchestration and
// the comparator.
package domain

import (
	"fmt"
	"path/filepath"
	"strings"

	"formprobe.dev/pkg/formprobe/internal/adapter"
	m "formprobe.dev/pkg/formprobe/internal/model"
)

// Gate decides, per load event, whether a source file goes through the
// memoizing transform. The decision depends only on the path: files
// outside the scenario root and files that are not Go sources pass
// through untouched. Transforming anything else (the form library, the
// render harness, vendored code) would conflate collaborator internals
// with the code under test and invalidate the comparison.
type Gate struct {
	root        m.Path
	fs          adapter.SourceFSAdapter
	transformer adapter.Transformer
	opts        m.TransformOptions
}

// NewGate constructs a Gate rooted at the scenario directory. The root is
// resolved to its absolute form once, so later predicate checks compare
// normalized paths.
func NewGate(root m.Path, fs adapter.SourceFSAdapter, transformer adapter.Transformer, opts m.TransformOptions) (*Gate, error) {
	abs, err := fs.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve scenario root: %w", err)
	}

	return &Gate{root: abs, fs: fs, transformer: transformer, opts: opts}, nil
}

// Applies reports whether the gate's predicate matches the path.
func (g *Gate) Applies(path m.Path) bool {
	if filepath.Ext(string(path)) != ".go" {
		return false
	}

	abs, err := g.fs.Abs(path)
	if err != nil {
		return false
	}

	rel, err := g.fs.RelPath(g.root, abs)
	if err != nil {
		return false
	}

	relStr := string(rel)
	if relStr == ".." || strings.HasPrefix(relStr, ".."+string(filepath.Separator)) {
		return false
	}

	// A vendor segment under the root marks dependency code.
	for _, seg := range strings.Split(relStr, string(filepath.Separator)) {
		if seg == "vendor" {
			return false
		}
	}

	return true
}

// Apply returns src unchanged when the predicate does not match, and the
// transformer's emitted code when it does. A transformer failure aborts
// the load: falling back to the untransformed source would misreport the
// file as baseline-equivalent.
func (g *Gate) Apply(path m.Path, src []byte) ([]byte, error) {
	if !g.Applies(path) {
		return src, nil
	}

	code, err := g.transformer.Transform(path, src, g.opts)
	if err != nil {
		return nil, fmt.Errorf("transform %s: %w", path, err)
	}

	return code, nil
}
