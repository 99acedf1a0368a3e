package webflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/mpoindexter/spring-webflow/internal/compiler"
	"github.com/mpoindexter/spring-webflow/internal/validator"
	loamAdapter "github.com/mpoindexter/spring-webflow/pkg/adapters/loam"
	"github.com/mpoindexter/spring-webflow/pkg/convert"
	"github.com/mpoindexter/spring-webflow/pkg/model"
	"github.com/mpoindexter/spring-webflow/pkg/observability"
	"github.com/mpoindexter/spring-webflow/pkg/ports"
)

var (
	// ErrAbstractFlow is returned when an abstract flow is assembled directly.
	ErrAbstractFlow = errors.New("flow is abstract")
	// ErrInvalidDocument is wrapped by errors for definitions that do not parse.
	ErrInvalidDocument = compiler.ErrInvalidDocument
)

// Validation failures, re-exported so callers outside this module can match them.
type (
	ValidationError = validator.ValidationError
	AggregateError  = validator.AggregateError
)

// ValidationErrors returns the individual problems of a validation failure, or nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}

// InheritanceCycleError reports a flow that is, directly or indirectly, its own parent.
type InheritanceCycleError struct {
	Chain []string
}

func (e *InheritanceCycleError) Error() string {
	return "inheritance cycle: " + strings.Join(e.Chain, " -> ")
}

// Assembler is the high-level entry point of the library. It loads flow
// definitions, resolves their parent chains into one effective flow and
// validates the result.
type Assembler struct {
	loader       ports.FlowLoader
	parser       *compiler.Parser
	registry     *convert.Registry
	metrics      *observability.Metrics
	logger       *slog.Logger
	reachability bool
	Name         string
}

// Option defines a functional option for configuring the Assembler.
type Option func(*Assembler)

// WithLoader injects a custom FlowLoader, bypassing the default Loam initialization.
func WithLoader(l ports.FlowLoader) Option {
	return func(a *Assembler) {
		a.loader = l
	}
}

// WithLogger sets a custom structured logger for the assembler.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) {
		a.logger = logger
	}
}

// WithMetrics records assembly activity on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(a *Assembler) {
		a.metrics = m
	}
}

// WithEditorRegistry sets the registry used to check typed attribute values.
// By default a registry with the default editors is used.
func WithEditorRegistry(r *convert.Registry) Option {
	return func(a *Assembler) {
		a.registry = r
	}
}

// WithReachabilityCheck makes validation reject states unreachable from the start state.
func WithReachabilityCheck() Option {
	return func(a *Assembler) {
		a.reachability = true
	}
}

// New initializes a new Assembler.
// By default, it uses a Loam repository at the given path.
// If WithLoader option is provided, repoPath can be empty and Loam is skipped.
func New(repoPath string, opts ...Option) (*Assembler, error) {
	a := &Assembler{
		parser: compiler.NewParser(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.loader == nil {
		if repoPath == "" {
			return nil, fmt.Errorf("repoPath is required when no custom loader is provided")
		}

		absPath, err := filepath.Abs(repoPath)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		a.Name = filepath.Base(absPath)

		loader, err := loamAdapter.Open(absPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize loam: %w", err)
		}
		a.loader = loader
	} else if repoPath != "" {
		a.Name = filepath.Base(repoPath)
	}

	if a.registry == nil {
		a.registry = convert.NewRegistry()
		if err := convert.RegisterDefaults(a.registry); err != nil {
			return nil, fmt.Errorf("failed to register default editors: %w", err)
		}
	}

	if a.logger == nil {
		a.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if a.Name != "" {
		a.logger = a.logger.With("repository", a.Name)
	}

	return a, nil
}

// Assemble loads the flow id, merges its parents into it and validates the
// result. Validation failures are returned as *AggregateError.
func (a *Assembler) Assemble(ctx context.Context, id string) (*model.Flow, error) {
	start := time.Now()
	logger := a.logger.With("flow", id)

	// Identifiers come from callers; only those that load become metric labels.
	label := observability.UnknownFlow
	var (
		flow   *model.Flow
		merges int
	)
	err := ctx.Err()
	if err == nil {
		flow, err = a.Definition(ctx, id)
	}
	if err == nil {
		label = id
		flow, merges, err = a.inherit(ctx, flow, []string{id})
	}
	if err == nil && flow.Abstract {
		err = fmt.Errorf("assemble %s: %w", id, ErrAbstractFlow)
	}
	if err != nil {
		logger.Debug("assembly failed", "err", err)
		a.metrics.ObserveAssembly(label, observability.ResultError, time.Since(start))
		return nil, err
	}
	a.metrics.IncMerges(id, merges)

	opts := []validator.Option{validator.WithRegistry(a.registry)}
	if a.reachability {
		opts = append(opts, validator.WithReachability())
	}
	if err := validator.Validate(flow, opts...); err != nil {
		problems := validator.ValidationErrors(err)
		logger.Info("flow is invalid", "errors", len(problems))
		a.metrics.AddValidationErrors(id, len(problems))
		a.metrics.ObserveAssembly(id, observability.ResultInvalid, time.Since(start))
		return nil, err
	}

	logger.Debug("flow assembled", "parents", merges, "states", len(flow.States))
	a.metrics.ObserveAssembly(id, observability.ResultOK, time.Since(start))
	return flow, nil
}

// Definition loads and parses the flow id without resolving its parents.
func (a *Assembler) Definition(ctx context.Context, id string) (*model.Flow, error) {
	raw, err := a.loader.GetFlow(ctx, id)
	if err != nil {
		return nil, err
	}
	flow, err := a.parser.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("flow %s: %w", id, err)
	}
	return flow, nil
}

// resolve returns the effective definition of id together with the number of
// parent merges it took. chain holds the flows currently being resolved.
func (a *Assembler) resolve(ctx context.Context, id string, chain []string) (*model.Flow, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if slices.Contains(chain, id) {
		cycle := append(slices.Clone(chain), id)
		return nil, 0, &InheritanceCycleError{Chain: cycle}
	}

	// Each resolution parses a fresh model since merging mutates the base.
	child, err := a.Definition(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	return a.inherit(ctx, child, append(chain, id))
}

// inherit merges the parents of child, the last flow in chain, into it.
func (a *Assembler) inherit(ctx context.Context, child *model.Flow, chain []string) (*model.Flow, int, error) {
	if len(child.Parents) == 0 {
		return child, 0, nil
	}

	id := chain[len(chain)-1]
	var (
		result *model.Flow
		merges int
	)
	for _, parentID := range child.Parents {
		parent, n, err := a.resolve(ctx, parentID, chain)
		if err != nil {
			return nil, 0, err
		}
		merges += n + 1
		if result == nil {
			result = parent
			continue
		}
		if err := result.Merge(parent); err != nil {
			return nil, 0, err
		}
	}

	a.logger.Debug("merging flow into parents", "flow", id, "parents", child.Parents)
	if err := result.Merge(child); err != nil {
		return nil, 0, err
	}
	return result, merges, nil
}

// Inspect returns the IDs of every flow the loader knows, abstract ones included.
func (a *Assembler) Inspect(ctx context.Context) ([]string, error) {
	return a.loader.ListFlows(ctx)
}

// Watch returns a channel that signals when the underlying definitions change.
// Returns error if the loader does not support watching.
func (a *Assembler) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := a.loader.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current loader does not support watching")
}

// Loader returns the underlying FlowLoader used by the assembler.
func (a *Assembler) Loader() ports.FlowLoader {
	return a.loader
}

// Registry returns the editor registry used for attribute values.
func (a *Assembler) Registry() *convert.Registry {
	return a.registry
}
