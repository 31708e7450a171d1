package hook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abdul-hamid-achik/respvars/packages/capture"
	"github.com/abdul-hamid-achik/respvars/packages/definition"
	"github.com/abdul-hamid-achik/respvars/packages/logging"
	"github.com/abdul-hamid-achik/respvars/packages/store"
	"github.com/google/uuid"
)

// ErrNoStore is returned when the context carries no store.
var ErrNoStore = errors.New("hook context has no store")

// Accessor retrieves attributes of the completed response.
type Accessor = capture.Accessor

// Context bundles the collaborators of a single hook run.
type Context struct {
	Response Accessor
	Store    store.Store
}

// Skip records a definition that produced no variable.
type Skip struct {
	Variable string
	Reason   string
}

// Result summarizes one run.
type Result struct {
	RunID       string
	Definitions int
	Saved       []string
	Skipped     []Skip
	BodyFetched bool
}

// Saver runs the hook.
type Saver struct {
	logger *slog.Logger
}

// Option is a functional option for configuring a Saver.
type Option func(*Saver)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *Saver) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewSaver(opts ...Option) *Saver {
	s := &Saver{logger: logging.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes the hook with a default Saver.
func Run(ctx context.Context, hc Context) error {
	return NewSaver().Run(ctx, hc)
}

// Run executes the hook and discards the summary.
func (s *Saver) Run(ctx context.Context, hc Context) error {
	_, err := s.Apply(ctx, hc)
	return err
}

// Apply executes the hook and reports what it did. Once the definitions list
// has been observed it is removed, whatever happens to individual
// definitions; a malformed list is removed too and then reported.
func (s *Saver) Apply(ctx context.Context, hc Context) (*Result, error) {
	if hc.Store == nil {
		return nil, ErrNoStore
	}

	result := &Result{RunID: uuid.NewString()}
	log := s.logger.With(slog.String("run_id", result.RunID))

	value, ok, err := hc.Store.Get(ctx, definition.StoreKey)
	if err != nil {
		return result, fmt.Errorf("failed to read definitions: %w", err)
	}
	if !ok {
		log.Debug("no pending definitions")
		return result, nil
	}

	payload, present, err := definition.Payload(value)
	if err == nil && !present {
		log.Debug("definitions list is empty")
		return result, nil
	}

	var errs []error
	if err == nil {
		var defs []definition.VariableDefinition
		if defs, err = definition.Decode(payload); err == nil {
			errs = s.save(ctx, log, hc, defs, result)
		}
	}
	if err != nil {
		log.Error("cannot decode definitions", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if err := hc.Store.Remove(ctx, definition.StoreKey); err != nil {
		errs = append(errs, fmt.Errorf("failed to remove definitions: %w", err))
	}

	log.Info("hook finished",
		slog.Int("definitions", result.Definitions),
		slog.Int("saved", len(result.Saved)),
		slog.Int("skipped", len(result.Skipped)))

	return result, errors.Join(errs...)
}

func (s *Saver) save(ctx context.Context, log *slog.Logger, hc Context, defs []definition.VariableDefinition, result *Result) []error {
	var errs []error
	result.Definitions = len(defs)
	extractor := capture.NewExtractor(hc.Response)
	warnedBody := false

	for _, def := range defs {
		value, found, err := extractor.Extract(ctx, def)
		switch {
		case err != nil:
			if errors.Is(err, capture.ErrBodyUnavailable) && !warnedBody {
				log.Warn("response body cannot be queried", slog.String("error", err.Error()))
				warnedBody = true
			}
			log.Debug("skipping definition",
				slog.String("variable", def.VariableName),
				slog.String("reason", err.Error()))
			result.Skipped = append(result.Skipped, Skip{Variable: def.VariableName, Reason: err.Error()})
			continue
		case !found:
			log.Debug("no match",
				slog.String("variable", def.VariableName),
				slog.String("path", def.Path))
			result.Skipped = append(result.Skipped, Skip{Variable: def.VariableName, Reason: "no match at " + def.Path})
			continue
		}

		if err := hc.Store.Set(ctx, def.Key(), value); err != nil {
			errs = append(errs, fmt.Errorf("failed to save variable %q: %w", def.VariableName, err))
			continue
		}
		log.Debug("saved variable",
			slog.String("variable", def.VariableName),
			slog.String("key", def.Key()))
		result.Saved = append(result.Saved, def.VariableName)
	}

	result.BodyFetched = extractor.Fetched()
	return errs
}
