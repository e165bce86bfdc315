package domain

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"formprobe.dev/pkg/formprobe/internal/adapter"
	m "formprobe.dev/pkg/formprobe/internal/model"
	"formprobe.dev/pkg/formprobe/internal/symbols"
	"formprobe.dev/pkg/formprobe/pkg/probe"
)

// scenarioEntrypoint is the symbol every fixture file must export.
const scenarioEntrypoint = "scenarios.Scenarios"

// Registry is the loaded scenario suite for one mode.
type Registry struct {
	Scenarios []probe.Scenario

	// Hash fingerprints the raw fixture sources, before any transform.
	// Both modes load the same files, so matching hashes prove the two
	// RunReports describe the same suite.
	Hash string
}

// Infos returns the display view of the registry.
func (r Registry) Infos() []m.ScenarioInfo {
	infos := make([]m.ScenarioInfo, 0, len(r.Scenarios))
	for _, sc := range r.Scenarios {
		infos = append(infos, m.ScenarioInfo{
			ID:         sc.ID,
			Name:       sc.Name,
			Workaround: sc.Workaround,
			PairID:     sc.PairID,
		})
	}

	return infos
}

// Loader produces a Registry from the scenario directory.
type Loader interface {
	Load(ctx context.Context) (Registry, error)
}

// InterpLoader loads fixture files through a Go interpreter. This is the
// load-interception point: the raw source is read fresh from disk, handed
// to the injected resolver, and only then evaluated. In transformed mode
// the interpreter never sees the untransformed code, and no scenario
// body can run before its source went through the resolver.
type InterpLoader struct {
	fs      adapter.SourceFSAdapter
	dir     m.Path
	resolve SourceResolver
}

// NewInterpLoader constructs an InterpLoader. The resolver is fixed for
// the loader's lifetime; there is no way to switch modes mid-run.
func NewInterpLoader(fs adapter.SourceFSAdapter, dir m.Path, resolve SourceResolver) *InterpLoader {
	return &InterpLoader{fs: fs, dir: dir, resolve: resolve}
}

// Load reads, resolves and evaluates every fixture file, joining their
// scenarios into one registry. Any resolver or evaluation failure aborts
// the load; a half-loaded registry would poison the comparison.
func (l *InterpLoader) Load(ctx context.Context) (Registry, error) {
	files, err := l.fs.ListScenarioFiles(l.dir)
	if err != nil {
		return Registry{}, err
	}

	if len(files) == 0 {
		return Registry{}, fmt.Errorf("no scenario files under %s", l.dir)
	}

	digest := sha256.New()

	var all []probe.Scenario

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return Registry{}, err
		}

		src, err := l.fs.ReadFile(path)
		if err != nil {
			slog.Error("failed to read scenario file", "path", path, "error", err)
			return Registry{}, fmt.Errorf("read %s: %w", path, err)
		}

		fmt.Fprintf(digest, "%s\n", path)
		digest.Write(src)

		code, err := l.resolve(path, src)
		if err != nil {
			return Registry{}, err
		}

		scenarios, err := evalScenarioFile(path, code)
		if err != nil {
			return Registry{}, err
		}

		all = append(all, scenarios...)
	}

	if err := checkUniqueIDs(all); err != nil {
		return Registry{}, err
	}

	return Registry{
		Scenarios: all,
		Hash:      fmt.Sprintf("%x", digest.Sum(nil)),
	}, nil
}

// evalScenarioFile evaluates one fixture in a fresh interpreter and calls
// its entrypoint. A fresh interpreter per file keeps fixtures from
// sharing package state.
func evalScenarioFile(path m.Path, code []byte) ([]probe.Scenario, error) {
	i := interp.New(interp.Options{})

	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("load interpreter stdlib: %w", err)
	}

	if err := i.Use(symbols.Exports()); err != nil {
		return nil, fmt.Errorf("load harness symbols: %w", err)
	}

	if _, err := i.Eval(string(code)); err != nil {
		slog.Error("failed to evaluate scenario file", "path", path, "error", err)
		return nil, fmt.Errorf("evaluate %s: %w", path, err)
	}

	v, err := i.Eval(scenarioEntrypoint)
	if err != nil {
		return nil, fmt.Errorf("%s: missing %s entrypoint: %w", path, scenarioEntrypoint, err)
	}

	build, ok := v.Interface().(func() []probe.Scenario)
	if !ok {
		return nil, fmt.Errorf("%s: %s has wrong signature", path, scenarioEntrypoint)
	}

	return build(), nil
}

func checkUniqueIDs(scenarios []probe.Scenario) error {
	seen := make(map[string]struct{}, len(scenarios))

	for _, sc := range scenarios {
		if sc.ID == "" {
			return fmt.Errorf("scenario %q has an empty id", sc.Name)
		}

		if _, dup := seen[sc.ID]; dup {
			return fmt.Errorf("duplicate scenario id %q", sc.ID)
		}

		seen[sc.ID] = struct{}{}
	}

	return nil
}
