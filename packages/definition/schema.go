package definition

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

const listSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["variableName", "attribute", "path"],
    "properties": {
      "variableName": {"type": "string", "minLength": 1},
      "attribute": {"type": "string", "minLength": 1},
      "path": {"type": "string", "minLength": 1}
    }
  }
}`

// Validate checks a serialized definitions list against the list schema.
func Validate(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(listSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrMalformed, strings.Join(errs, "; "))
}

// LoadFile reads definitions from a JSON or YAML file. Entries without an
// attribute default to the response body.
func LoadFile(path string) ([]VariableDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read definitions file: %w", err)
	}

	var defs []VariableDefinition
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &defs); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	default:
		defs, err = Decode(data)
		if err != nil {
			return nil, err
		}
	}

	for i := range defs {
		if defs[i].Attribute == "" {
			defs[i].Attribute = AttributeBody
		}
	}
	return defs, nil
}
