// Package jsonpath evaluates single-value JSONPath expressions against parsed
// JSON documents.
//
// Expressions are translated to gjson paths:
//
//	$                  -> whole document
//	$.ticket.id        -> ticket.id
//	$['a.b'][0]        -> a\.b.0
//	items[2].name      -> items.2.name
//
// Only member and index selectors are supported. Wildcards, recursive
// descent, filters, slices, unions and negative indexes select more than one
// location (or need the array length) and are rejected with ErrUnsupported.
package jsonpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	// ErrEmpty is returned for an empty expression.
	ErrEmpty = errors.New("empty path expression")
	// ErrUnsupported is returned for valid JSONPath constructs that can
	// select more than one location.
	ErrUnsupported = errors.New("unsupported path expression")
	// ErrSyntax is returned for expressions that cannot be parsed.
	ErrSyntax = errors.New("invalid path expression")
)

// gjson treats these bytes as path syntax; member names escape them.
const metaChars = `\.*?|#@!=<>%[]{}(),:"`

type segment struct {
	name    string
	index   int
	isIndex bool
}

// Compile translates a JSONPath expression into a gjson path. The empty
// string denotes the document root.
func Compile(expr string) (string, error) {
	segs, err := parse(expr)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(segs))
	for _, s := range segs {
		if s.isIndex {
			parts = append(parts, strconv.Itoa(s.index))
			continue
		}
		parts = append(parts, escape(s.name))
	}
	return strings.Join(parts, "."), nil
}

// Parse parses a JSON text into a document. The boolean is false when the
// text is not valid JSON.
func Parse(text string) (gjson.Result, bool) {
	if !gjson.Valid(text) {
		return gjson.Result{}, false
	}
	return gjson.Parse(text), true
}

// Query evaluates expr against doc. It returns the decoded value at the
// location and whether the location exists; an explicit JSON null exists and
// decodes to nil.
func Query(doc gjson.Result, expr string) (any, bool, error) {
	path, err := Compile(expr)
	if err != nil {
		return nil, false, err
	}
	if !doc.Exists() {
		return nil, false, nil
	}
	if path == "" {
		return doc.Value(), true, nil
	}

	result := doc.Get(path)
	if !result.Exists() {
		return nil, false, nil
	}
	return result.Value(), true, nil
}

func parse(expr string) ([]segment, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, ErrEmpty
	}

	rest := expr
	if strings.HasPrefix(rest, "$") {
		rest = rest[1:]
	} else if rest[0] != '.' && rest[0] != '[' {
		rest = "." + rest
	}

	var segs []segment
	for i := 0; i < len(rest); {
		switch rest[i] {
		case '.':
			i++
			if i < len(rest) && rest[i] == '.' {
				return nil, fmt.Errorf("%w: recursive descent in %q", ErrUnsupported, expr)
			}
			start := i
			for i < len(rest) && rest[i] != '.' && rest[i] != '[' {
				i++
			}
			name := rest[start:i]
			switch name {
			case "":
				return nil, fmt.Errorf("%w: empty member name in %q", ErrSyntax, expr)
			case "*":
				return nil, fmt.Errorf("%w: wildcard in %q", ErrUnsupported, expr)
			}
			segs = append(segs, segment{name: name})

		case '[':
			seg, n, err := parseBracket(rest[i:], expr)
			if err != nil {
				return nil, err
			}
			segs = append(segs, seg)
			i += n

		default:
			return nil, fmt.Errorf("%w: unexpected %q at offset %d in %q", ErrSyntax, rest[i], i, expr)
		}
	}
	return segs, nil
}

// parseBracket parses one bracket selector at the start of s and returns the
// number of bytes consumed.
func parseBracket(s, expr string) (segment, int, error) {
	if len(s) < 2 {
		return segment{}, 0, fmt.Errorf("%w: unterminated bracket in %q", ErrSyntax, expr)
	}

	if q := s[1]; q == '\'' || q == '"' {
		var b strings.Builder
		for i := 2; i < len(s); i++ {
			switch s[i] {
			case '\\':
				i++
				if i < len(s) {
					b.WriteByte(s[i])
				}
			case q:
				if i+1 >= len(s) || s[i+1] != ']' {
					return segment{}, 0, fmt.Errorf("%w: expected ] after quoted name in %q", ErrSyntax, expr)
				}
				if b.Len() == 0 {
					return segment{}, 0, fmt.Errorf("%w: empty member name in %q", ErrUnsupported, expr)
				}
				return segment{name: b.String()}, i + 2, nil
			default:
				b.WriteByte(s[i])
			}
		}
		return segment{}, 0, fmt.Errorf("%w: unterminated quoted name in %q", ErrSyntax, expr)
	}

	end := strings.IndexByte(s, ']')
	if end < 0 {
		return segment{}, 0, fmt.Errorf("%w: unterminated bracket in %q", ErrSyntax, expr)
	}
	inner := strings.TrimSpace(s[1:end])
	if inner == "" {
		return segment{}, 0, fmt.Errorf("%w: empty brackets in %q", ErrSyntax, expr)
	}
	if strings.ContainsAny(inner, "*:,?()") || strings.HasPrefix(inner, "-") {
		return segment{}, 0, fmt.Errorf("%w: selector [%s] in %q", ErrUnsupported, inner, expr)
	}
	idx, err := strconv.Atoi(inner)
	if err != nil {
		return segment{}, 0, fmt.Errorf("%w: bad index [%s] in %q", ErrSyntax, inner, expr)
	}
	return segment{index: idx, isIndex: true}, end + 1, nil
}

func escape(name string) string {
	if !strings.ContainsAny(name, metaChars) {
		return name
	}
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		if strings.IndexByte(metaChars, name[i]) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(name[i])
	}
	return b.String()
}
