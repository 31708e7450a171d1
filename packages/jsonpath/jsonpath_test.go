package jsonpath

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"$", ""},
		{"$.ticketId", "ticketId"},
		{"$.data.user.id", "data.user.id"},
		{"$.items[0].id", "items.0.id"},
		{"$[1]", "1"},
		{"$['ticket.id']", `ticket\.id`},
		{`$["a b"]["c"]`, "a b.c"},
		{`$['it\'s']`, `it's`},
		{"$.meta['@type']", `meta.\@type`},
		{"data.items[2]", "data.items.2"},
		{"[0].name", "0.name"},
		{"  $.padded  ", "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Compile(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		expr string
		err  error
	}{
		{"", ErrEmpty},
		{"   ", ErrEmpty},
		{"$..id", ErrUnsupported},
		{"$.*", ErrUnsupported},
		{"$.items[*]", ErrUnsupported},
		{"$.items[-1]", ErrUnsupported},
		{"$.items[0:2]", ErrUnsupported},
		{"$.items[0,1]", ErrUnsupported},
		{"$.items[?(@.id)]", ErrUnsupported},
		{"$['']", ErrUnsupported},
		{"$.", ErrSyntax},
		{"$.a[", ErrSyntax},
		{"$.a[x]", ErrSyntax},
		{"$['open", ErrSyntax},
		{"$['a'x]", ErrSyntax},
		{"$[]", ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := Compile(tt.expr)
			assert.True(t, errors.Is(err, tt.err), "got %v", err)
		})
	}
}

func TestQuery(t *testing.T) {
	doc, ok := Parse(`{
		"someValue": "test",
		"ticketId": "123",
		"nothing": null,
		"count": 3,
		"items": [{"id": "a"}, {"id": "b"}],
		"ticket.id": "dotted",
		"nested": {"flag": false}
	}`)
	require.True(t, ok)

	tests := []struct {
		name  string
		expr  string
		want  any
		found bool
	}{
		{"string leaf", "$.ticketId", "123", true},
		{"explicit null", "$.nothing", nil, true},
		{"number", "$.count", float64(3), true},
		{"bool false", "$.nested.flag", false, true},
		{"array element", "$.items[1].id", "b", true},
		{"object", "$.nested", map[string]any{"flag": false}, true},
		{"array", "$.items[0]", map[string]any{"id": "a"}, true},
		{"dotted key", "$['ticket.id']", "dotted", true},
		{"missing key", "$.doesNotExist", nil, false},
		{"index out of range", "$.items[5]", nil, false},
		{"into scalar", "$.ticketId.length", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found, err := Query(doc, tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuery_Root(t *testing.T) {
	doc, ok := Parse(`{"a": 1}`)
	require.True(t, ok)

	got, found, err := Query(doc, "$")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, map[string]any{"a": float64(1)}, got)
}

func TestQuery_StringDocument(t *testing.T) {
	doc, ok := Parse(`"Hello. I am not JSON"`)
	require.True(t, ok)

	_, found, err := Query(doc, "$.ticketId")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestQuery_UnsupportedPath(t *testing.T) {
	doc, _ := Parse(`{"a": [1, 2]}`)
	_, found, err := Query(doc, "$.a[*]")
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.False(t, found)
}

func TestParse_Invalid(t *testing.T) {
	for _, text := range []string{"", "Hello. I am not JSON", `{"a":`, "<html></html>"} {
		_, ok := Parse(text)
		assert.False(t, ok, text)
	}
}
