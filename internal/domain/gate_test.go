package domain

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formprobe.dev/pkg/formprobe/internal/adapter"
	m "formprobe.dev/pkg/formprobe/internal/model"
)

// stubTransformer records calls and returns a fixed emission.
type stubTransformer struct {
	calls int
	out   []byte
	err   error
}

func (s *stubTransformer) Transform(_ m.Path, _ []byte, _ m.TransformOptions) ([]byte, error) {
	s.calls++
	return s.out, s.err
}

func newTestGate(t *testing.T, root m.Path, tr adapter.Transformer) *Gate {
	t.Helper()

	gate, err := NewGate(root, adapter.NewLocalSourceFSAdapter(), tr, m.TransformOptions{TargetVersion: "go1.25"})
	require.NoError(t, err)

	return gate
}

func TestGate_AppliesOnlyInsideRoot(t *testing.T) {
	root := m.Path(t.TempDir())
	gate := newTestGate(t, root, &stubTransformer{})

	assert.True(t, gate.Applies(m.Path(filepath.Join(string(root), "stable_value.go"))))
	assert.True(t, gate.Applies(m.Path(filepath.Join(string(root), "nested", "x.go"))))

	assert.False(t, gate.Applies(m.Path(filepath.Join(string(root), "notes.md"))))
	assert.False(t, gate.Applies("/somewhere/else/file.go"))
	assert.False(t, gate.Applies(m.Path(filepath.Join(string(root), "..", "outside.go"))))
}

func TestGate_SkipsVendoredCode(t *testing.T) {
	root := m.Path(t.TempDir())
	gate := newTestGate(t, root, &stubTransformer{})

	assert.False(t, gate.Applies(m.Path(filepath.Join(string(root), "vendor", "dep", "dep.go"))))
}

func TestGate_ApplyPassesThroughNonMatching(t *testing.T) {
	root := m.Path(t.TempDir())
	tr := &stubTransformer{out: []byte("transformed")}
	gate := newTestGate(t, root, tr)

	src := []byte("original")

	out, err := gate.Apply("/elsewhere/file.go", src)
	require.NoError(t, err)

	assert.Equal(t, src, out)
	assert.Zero(t, tr.calls, "transformer must not run outside the root")
}

func TestGate_ApplyTransformsMatching(t *testing.T) {
	root := m.Path(t.TempDir())
	tr := &stubTransformer{out: []byte("transformed")}
	gate := newTestGate(t, root, tr)

	out, err := gate.Apply(m.Path(filepath.Join(string(root), "s.go")), []byte("original"))
	require.NoError(t, err)

	assert.Equal(t, []byte("transformed"), out)
	assert.Equal(t, 1, tr.calls)
}

func TestGate_TransformErrorAborts(t *testing.T) {
	root := m.Path(t.TempDir())
	gate := newTestGate(t, root, &stubTransformer{err: errors.New("emit failed")})

	_, err := gate.Apply(m.Path(filepath.Join(string(root), "s.go")), []byte("original"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "emit failed")
}

func TestResolverForMode(t *testing.T) {
	root := m.Path(t.TempDir())
	tr := &stubTransformer{out: []byte("transformed")}
	gate := newTestGate(t, root, tr)

	path := m.Path(filepath.Join(string(root), "s.go"))

	baseline := ResolverForMode(m.ModeBaseline, nil)
	out, err := baseline(path, []byte("original"))
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), out)
	assert.Zero(t, tr.calls, "baseline never touches the gate")

	transformed := ResolverForMode(m.ModeTransformed, gate)
	out, err = transformed(path, []byte("original"))
	require.NoError(t, err)
	assert.Equal(t, []byte("transformed"), out)
}
