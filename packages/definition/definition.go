package definition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abdul-hamid-achik/respvars/packages/store"
)

const (
	// StoreKey is the store key holding the serialized definitions list
	StoreKey = "variableDefinitions"
	// VariablePrefix prefixes the store key of every saved variable
	VariablePrefix = "variable-"
)

// ErrMalformed is returned when a serialized definitions list cannot be decoded.
var ErrMalformed = errors.New("malformed variable definitions")

// Attribute names the part of a response a definition reads from.
type Attribute string

const (
	AttributeBody Attribute = "body"
)

// Known reports whether the hook knows how to query the attribute.
func (a Attribute) Known() bool {
	return a == AttributeBody
}

// VariableDefinition is a pending instruction to extract one value from a
// response attribute and store it under VariableName.
type VariableDefinition struct {
	VariableName string    `json:"variableName" yaml:"variableName"`
	Attribute    Attribute `json:"attribute" yaml:"attribute"`
	Path         string    `json:"path" yaml:"path"`
}

// Key returns the store key the variable is saved under.
func (d VariableDefinition) Key() string {
	return VariableKey(d.VariableName)
}

// VariableKey returns the store key for a variable name.
func VariableKey(name string) string {
	return VariablePrefix + name
}

// Decode parses a serialized definitions list, preserving order.
func Decode(data []byte) ([]VariableDefinition, error) {
	var defs []VariableDefinition
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return defs, nil
}

// Encode serializes definitions in order.
func Encode(defs []VariableDefinition) ([]byte, error) {
	if defs == nil {
		defs = []VariableDefinition{}
	}
	return json.Marshal(defs)
}

// Payload returns the raw serialized list held by a store value.
// The boolean is false when there is nothing to process: the value is nil or
// an empty string.
func Payload(value any) ([]byte, bool, error) {
	switch v := value.(type) {
	case nil:
		return nil, false, nil
	case string:
		if v == "" {
			return nil, false, nil
		}
		return []byte(v), true, nil
	case []byte:
		if len(v) == 0 {
			return nil, false, nil
		}
		return v, true, nil
	default:
		return nil, false, fmt.Errorf("%w: unexpected stored type %T", ErrMalformed, value)
	}
}

// Append queues definitions after any already stored under StoreKey.
func Append(ctx context.Context, s store.Store, defs ...VariableDefinition) error {
	if len(defs) == 0 {
		return nil
	}

	value, ok, err := s.Get(ctx, StoreKey)
	if err != nil {
		return fmt.Errorf("failed to read definitions: %w", err)
	}

	var existing []VariableDefinition
	if ok {
		payload, present, err := Payload(value)
		if err != nil {
			return err
		}
		if present {
			existing, err = Decode(payload)
			if err != nil {
				return err
			}
		}
	}

	data, err := Encode(append(existing, defs...))
	if err != nil {
		return fmt.Errorf("failed to encode definitions: %w", err)
	}
	if err := s.Set(ctx, StoreKey, string(data)); err != nil {
		return fmt.Errorf("failed to save definitions: %w", err)
	}
	return nil
}

// Pending returns the definitions currently queued in the store.
func Pending(ctx context.Context, s store.Store) ([]VariableDefinition, error) {
	value, ok, err := s.Get(ctx, StoreKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions: %w", err)
	}
	if !ok {
		return nil, nil
	}
	payload, present, err := Payload(value)
	if err != nil || !present {
		return nil, err
	}
	return Decode(payload)
}
