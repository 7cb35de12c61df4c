// Package normalizer turns a parsed translate_a response into translation
// entries. The service answers in one of three shapes: a bare string, a
// glossary list, or a sentences/dict mapping.
package normalizer

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pricofy/translation-lookup/internal/domain"
	"github.com/pricofy/translation-lookup/internal/parser"
)

// Shape error kinds. Use errors.Is to test for them.
var (
	ErrUnrecognizedShape   = errors.New("unrecognized response shape")
	ErrMalformedGlossary   = errors.New("malformed glossary response")
	ErrMalformedDictionary = errors.New("malformed dictionary response")
)

// ShapeError reports a well-formed value that is not a usable response.
type ShapeError struct {
	Kind   error
	Detail string
}

func (e *ShapeError) Error() string {
	if e.Detail == "" {
		return "normalizer: " + e.Kind.Error()
	}
	return fmt.Sprintf("normalizer: %s: %s", e.Kind, e.Detail)
}

func (e *ShapeError) Unwrap() error { return e.Kind }

func shapeErr(kind error, format string, args ...any) *ShapeError {
	return &ShapeError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Normalize converts v into a Result. It returns nil, nil when the service
// echoed query back unchanged, which is how it signals it could not
// translate the text.
func Normalize(v parser.Value, query string) (*domain.Result, error) {
	switch v := v.(type) {
	case parser.Text:
		if string(v) == query {
			return nil, nil
		}
		return &domain.Result{Entries: []domain.Entry{domain.NewEntry(string(v))}}, nil
	case parser.List:
		return glossary(v)
	case parser.Mapping:
		return dictionary(v, query)
	case parser.Number:
		return nil, shapeErr(ErrUnrecognizedShape, "bare number %s", v)
	default:
		return nil, &ShapeError{Kind: ErrUnrecognizedShape}
	}
}

// glossary handles ["primary", [["verb", "like", "love"], ["adjective", ["good"], ...]]].
func glossary(l parser.List) (*domain.Result, error) {
	if len(l) == 0 {
		return nil, shapeErr(ErrUnrecognizedShape, "empty list")
	}
	primary, ok := l[0].(parser.Text)
	if !ok {
		return nil, shapeErr(ErrMalformedGlossary, "primary translation is %s, not a string", l[0])
	}

	res := &domain.Result{Entries: []domain.Entry{domain.NewEntry(string(primary))}}
	if len(l) < 2 {
		return res, nil
	}

	groups, ok := l[1].(parser.List)
	if !ok {
		return nil, shapeErr(ErrMalformedGlossary, "definitions are %s, not a list", l[1])
	}
	for i, g := range groups {
		group, ok := g.(parser.List)
		if !ok || len(group) == 0 {
			return nil, shapeErr(ErrMalformedGlossary, "definition %d is %s", i, g)
		}
		pos, ok := group[0].(parser.Text)
		if !ok {
			return nil, shapeErr(ErrMalformedGlossary, "definition %d has label %s", i, group[0])
		}

		// Newer responses nest the terms in a list and append reverse
		// translations after it; older ones list the terms inline.
		termValues := group[1:]
		if len(group) > 1 {
			if nested, ok := group[1].(parser.List); ok {
				termValues = nested
			}
		}
		terms, err := texts(termValues)
		if err != nil {
			return nil, shapeErr(ErrMalformedGlossary, "definition %d: %v", i, err)
		}
		res.Entries = append(res.Entries, gloss(string(pos), terms))
	}
	return res, nil
}

// dictionary handles {"sentences": [{"trans": ...}], "dict": [{"pos": ..., "terms": [...]}]}.
func dictionary(m parser.Mapping, query string) (*domain.Result, error) {
	// Without "sentences" the mapping is not a dictionary answer at all.
	raw, ok := m.Get("sentences")
	if !ok {
		return nil, shapeErr(ErrUnrecognizedShape, `mapping without "sentences"`)
	}
	sentences, ok := raw.(parser.List)
	if !ok {
		return nil, shapeErr(ErrMalformedDictionary, `"sentences" is %s, not a list`, raw)
	}

	parts := make([]string, 0, len(sentences))
	for i, s := range sentences {
		trans, err := textField(s, "trans")
		if err != nil {
			return nil, shapeErr(ErrMalformedDictionary, "sentence %d: %v", i, err)
		}
		parts = append(parts, trans)
	}

	joined := strings.Join(parts, " ")
	if joined == query {
		return nil, nil
	}
	res := &domain.Result{Entries: []domain.Entry{domain.NewEntry(joined)}}

	raw, ok = m.Get("dict")
	if !ok {
		return res, nil
	}
	groups, ok := raw.(parser.List)
	if !ok {
		return nil, shapeErr(ErrMalformedDictionary, `"dict" is %s, not a list`, raw)
	}
	for i, g := range groups {
		pos, err := textField(g, "pos")
		if err != nil {
			return nil, shapeErr(ErrMalformedDictionary, "dict %d: %v", i, err)
		}
		group := g.(parser.Mapping)
		rawTerms, ok := group.Get("terms")
		if !ok {
			return nil, shapeErr(ErrMalformedDictionary, `dict %d: missing "terms"`, i)
		}
		termList, ok := rawTerms.(parser.List)
		if !ok {
			return nil, shapeErr(ErrMalformedDictionary, `dict %d: "terms" is %s, not a list`, i, rawTerms)
		}
		terms, err := texts(termList)
		if err != nil {
			return nil, shapeErr(ErrMalformedDictionary, "dict %d: %v", i, err)
		}
		res.Entries = append(res.Entries, gloss(pos, terms))
	}
	return res, nil
}

// textField reads a string member of a mapping value.
func textField(v parser.Value, key string) (string, error) {
	m, ok := v.(parser.Mapping)
	if !ok {
		return "", fmt.Errorf("%s is not a mapping", v)
	}
	f, ok := m.Get(key)
	if !ok {
		return "", fmt.Errorf("missing %q", key)
	}
	t, ok := f.(parser.Text)
	if !ok {
		return "", fmt.Errorf("%q is %s, not a string", key, f)
	}
	return string(t), nil
}

func texts(vs []parser.Value) ([]string, error) {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		t, ok := v.(parser.Text)
		if !ok {
			return nil, fmt.Errorf("term %s is not a string", v)
		}
		out = append(out, string(t))
	}
	return out, nil
}

func gloss(pos string, terms []string) domain.Entry {
	return domain.NewEntry(Capitalize(pos) + ": " + strings.Join(terms, ", "))
}

// Capitalize upper-cases the first code point of s and leaves the rest alone.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
