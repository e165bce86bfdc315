package domain

import m "formprobe.dev/pkg/formprobe/internal/model"

// SourceResolver is the strategy a loader uses to turn raw file content
// into the code it evaluates. It is fixed at environment construction:
// one resolver per process lifetime, never toggled mid-run. This is the
// whole mode switch: the baseline environment and the transformed
// environment are the same loader with different resolvers injected.
type SourceResolver func(path m.Path, src []byte) ([]byte, error)

// PassthroughResolver returns the source unchanged. The baseline run is
// provably unaffected by the gate's existence because the gate is simply
// absent from its environment.
func PassthroughResolver() SourceResolver {
	return func(_ m.Path, src []byte) ([]byte, error) {
		return src, nil
	}
}

// InterceptingResolver routes every load through the transform gate.
func InterceptingResolver(gate *Gate) SourceResolver {
	return func(path m.Path, src []byte) ([]byte, error) {
		return gate.Apply(path, src)
	}
}

// ResolverForMode selects the resolver matching a mode.
func ResolverForMode(mode m.Mode, gate *Gate) SourceResolver {
	if mode == m.ModeTransformed {
		return InterceptingResolver(gate)
	}

	return PassthroughResolver()
}
