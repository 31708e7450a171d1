package capture

import (
	"context"
	"errors"
	"fmt"

	"github.com/abdul-hamid-achik/respvars/packages/definition"
	"github.com/abdul-hamid-achik/respvars/packages/jsonpath"
	"github.com/tidwall/gjson"
)

var (
	// ErrUnknownAttribute is returned for definitions reading an attribute
	// the extractor cannot query.
	ErrUnknownAttribute = errors.New("unknown response attribute")
	// ErrBodyUnavailable is returned when the response body could not be
	// fetched or is not valid JSON.
	ErrBodyUnavailable = errors.New("response body unavailable")
)

// Accessor retrieves attributes of a completed response.
type Accessor interface {
	// Body returns the raw, unparsed response body text.
	Body(ctx context.Context) (string, error)
}

// AccessorFunc adapts a function to the Accessor interface.
type AccessorFunc func(ctx context.Context) (string, error)

func (f AccessorFunc) Body(ctx context.Context) (string, error) {
	return f(ctx)
}

// Extractor evaluates definitions against one response. The body is fetched
// and parsed at most once, on the first definition that needs it.
type Extractor struct {
	accessor Accessor
	fetched  bool
	bodyJSON gjson.Result
	bodyErr  error
}

func NewExtractor(accessor Accessor) *Extractor {
	return &Extractor{accessor: accessor}
}

// Extract returns the value selected by def and whether it exists. A non-nil
// error explains why the definition could not be evaluated at all.
func (e *Extractor) Extract(ctx context.Context, def definition.VariableDefinition) (any, bool, error) {
	switch def.Attribute {
	case definition.AttributeBody:
		return e.extractFromBody(ctx, def.Path)
	default:
		return nil, false, fmt.Errorf("%w: %q", ErrUnknownAttribute, def.Attribute)
	}
}

// Fetched reports whether the response body was requested from the accessor.
func (e *Extractor) Fetched() bool {
	return e.fetched
}

func (e *Extractor) extractFromBody(ctx context.Context, path string) (any, bool, error) {
	if err := e.loadBody(ctx); err != nil {
		return nil, false, err
	}
	return jsonpath.Query(e.bodyJSON, path)
}

func (e *Extractor) loadBody(ctx context.Context) error {
	if e.fetched {
		return e.bodyErr
	}
	e.fetched = true

	if e.accessor == nil {
		e.bodyErr = fmt.Errorf("%w: no response", ErrBodyUnavailable)
		return e.bodyErr
	}

	text, err := e.accessor.Body(ctx)
	if err != nil {
		e.bodyErr = fmt.Errorf("%w: %v", ErrBodyUnavailable, err)
		return e.bodyErr
	}

	doc, ok := jsonpath.Parse(text)
	if !ok {
		e.bodyErr = fmt.Errorf("%w: not valid JSON", ErrBodyUnavailable)
		return e.bodyErr
	}
	e.bodyJSON = doc
	return nil
}
