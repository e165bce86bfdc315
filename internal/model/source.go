// Package model defines the data structures for the compatibility harness.
package model

// Path represents a file system path.
type Path string

// SourceUnit is a scenario file as read from disk. It is read fresh for
// every load event so edits between runs are always picked up.
type SourceUnit struct {
	Path Path
	Text []byte
}

// TransformOptions parameterizes the compiler under test. The options are
// opaque to the gate and the loader; only the transformer interprets them.
type TransformOptions struct {
	// TargetVersion is the runtime compatibility level the transformer
	// emits for, e.g. "go1.25".
	TargetVersion string
}

// TransformResult is the emitted code for one SourceUnit. Its lifetime is
// the load event that produced it; results are never cached across runs.
type TransformResult struct {
	Code []byte

	// Rewritten reports whether the transformer changed the source.
	// A pass-through decision by the gate leaves it false.
	Rewritten bool
}
