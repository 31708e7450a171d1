package definition

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/abdul-hamid-achik/respvars/packages/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	defs, err := Decode([]byte(`[
		{"variableName": "ticket", "attribute": "body", "path": "$.ticketId"},
		{"variableName": "etag", "attribute": "header", "path": "ETag"}
	]`))
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, VariableDefinition{VariableName: "ticket", Attribute: AttributeBody, Path: "$.ticketId"}, defs[0])
	assert.Equal(t, "variable-ticket", defs[0].Key())
	assert.True(t, defs[0].Attribute.Known())
	assert.False(t, defs[1].Attribute.Known())
}

func TestDecode_Malformed(t *testing.T) {
	for _, payload := range []string{"", "[{", `{"variableName": "x"}`, `"text"`, `[1, 2]`} {
		_, err := Decode([]byte(payload))
		assert.ErrorIs(t, err, ErrMalformed, payload)
	}
}

func TestEncode(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	data, err = Encode([]VariableDefinition{{VariableName: "a", Attribute: AttributeBody, Path: "$.a"}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"variableName":"a","attribute":"body","path":"$.a"}]`, string(data))
}

func TestPayload(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		present bool
		wantErr bool
	}{
		{"nil", nil, false, false},
		{"empty string", "", false, false},
		{"empty bytes", []byte{}, false, false},
		{"string", "[]", true, false},
		{"bytes", []byte("[]"), true, false},
		{"number", float64(3), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, present, err := Payload(tt.value)
			assert.Equal(t, tt.present, present)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformed)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAppendAndPending(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()

	pending, err := Pending(ctx, s)
	require.NoError(t, err)
	assert.Empty(t, pending)

	first := VariableDefinition{VariableName: "a", Attribute: AttributeBody, Path: "$.a"}
	second := VariableDefinition{VariableName: "b", Attribute: AttributeBody, Path: "$.b"}
	require.NoError(t, Append(ctx, s, first))
	require.NoError(t, Append(ctx, s, second))
	require.NoError(t, Append(ctx, s))

	raw, ok, err := s.Get(ctx, StoreKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.IsType(t, "", raw)

	pending, err = Pending(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, []VariableDefinition{first, second}, pending)
}

func TestAppend_MalformedExisting(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	require.NoError(t, s.Set(ctx, StoreKey, "not json"))

	err := Append(ctx, s, VariableDefinition{VariableName: "a", Attribute: AttributeBody, Path: "$.a"})
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate([]byte(`[{"variableName": "a", "attribute": "body", "path": "$.a"}]`)))
	assert.NoError(t, Validate([]byte(`[]`)))

	for _, payload := range []string{
		`{"variableName": "a"}`,
		`[{"variableName": "a", "attribute": "body"}]`,
		`[{"variableName": "", "attribute": "body", "path": "$.a"}]`,
		`[{"variableName": 1, "attribute": "body", "path": "$.a"}]`,
	} {
		err := Validate([]byte(payload))
		assert.ErrorIs(t, err, ErrMalformed, payload)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "defs.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
- variableName: ticket
  path: $.ticketId
- variableName: etag
  attribute: header
  path: ETag
`), 0644))

	defs, err := LoadFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, []VariableDefinition{
		{VariableName: "ticket", Attribute: AttributeBody, Path: "$.ticketId"},
		{VariableName: "etag", Attribute: "header", Path: "ETag"},
	}, defs)

	jsonPath := filepath.Join(dir, "defs.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[{"variableName": "id", "path": "$.id"}]`), 0644))
	defs, err = LoadFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, []VariableDefinition{{VariableName: "id", Attribute: AttributeBody, Path: "$.id"}}, defs)

	badPath := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(badPath, []byte("variableName: [unclosed"), 0644))
	_, err = LoadFile(badPath)
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
