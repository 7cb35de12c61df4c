package normalizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricofy/translation-lookup/internal/parser"
)

func normalizeRaw(t *testing.T, raw, query string) ([]string, error) {
	t.Helper()
	v, err := parser.Parse(raw)
	require.NoError(t, err)
	res, err := Normalize(v, query)
	if err != nil {
		return nil, err
	}
	return res.Strings(), nil
}

func TestNormalize_Text(t *testing.T) {
	t.Parallel()

	res, err := Normalize(parser.Text("Hello"), "你好")
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello"}, res.Strings())
}

func TestNormalize_TextEchoedQuery(t *testing.T) {
	t.Parallel()

	res, err := Normalize(parser.Text("canttranslatemefromchinese"), "canttranslatemefromchinese")
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestNormalize_Glossary(t *testing.T) {
	t.Parallel()

	v := parser.List{
		parser.Text("Good"),
		parser.List{parser.List{parser.Text("verb"), parser.List{parser.Text("good")}}},
	}
	res, err := Normalize(v, "好")
	require.NoError(t, err)
	assert.Equal(t, []string{"Good", "Verb: good"}, res.Strings())
}

func TestNormalize_GlossaryInlineTerms(t *testing.T) {
	t.Parallel()

	got, err := normalizeRaw(t, `["Well", [
		["verb","like","love"],
		["adjective","good"],
		["adverb","fine","OK","okay","okey","okey dokey","well"],
		["interjection","OK!","okay!","okey!"]
	]]`, "好")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Well",
		"Verb: like, love",
		"Adjective: good",
		"Adverb: fine, OK, okay, okey, okey dokey, well",
		"Interjection: OK!, okay!, okey!",
	}, got)
}

func TestNormalize_GlossaryNestedTermsIgnoresReverseTranslations(t *testing.T) {
	t.Parallel()

	got, err := normalizeRaw(t, `["Good", [
		["adjective",["good"],[["good",["好","良好"]]]],
		["verb",["love","like"],[["love",["爱"]],["like",["喜欢"]]]]
	]]`, "好")
	require.NoError(t, err)
	assert.Equal(t, []string{"Good", "Adjective: good", "Verb: love, like"}, got)
}

func TestNormalize_GlossaryPrimaryOnly(t *testing.T) {
	t.Parallel()

	got, err := normalizeRaw(t, `["Good"]`, "好")
	require.NoError(t, err)
	assert.Equal(t, []string{"Good"}, got)
}

func TestNormalize_Dictionary(t *testing.T) {
	t.Parallel()

	got, err := normalizeRaw(t, `{"sentences":[{"trans":"Hello, you are my friend?","orig":"你好，你是我的朋友吗？","translit":""}],
		"dict":[{"pos":"verb","terms":["like","love"]},{"pos":"adjective","terms":["good"]}],
		"src":"zh-CN"}`, "你好，你是我的朋友吗？")
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello, you are my friend?", "Verb: like, love", "Adjective: good"}, got)
}

func TestNormalize_DictionaryJoinsSentences(t *testing.T) {
	t.Parallel()

	got, err := normalizeRaw(t, `{"sentences":[{"trans":"Hello."},{"trans":"Are you my friend?"}],"src":"zh-CN"}`, "你好。你是我的朋友吗？")
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello. Are you my friend?"}, got)
}

func TestNormalize_DictionaryEchoedQuery(t *testing.T) {
	t.Parallel()

	v, err := parser.Parse(`{"sentences":[{"trans":"abc"},{"trans":"def"}],"dict":[{"pos":"noun","terms":["x"]}]}`)
	require.NoError(t, err)

	res, err := Normalize(v, "abc def")
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestNormalize_ShapeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		kind error
	}{
		{"bare number", `42`, ErrUnrecognizedShape},
		{"empty list", `[]`, ErrUnrecognizedShape},
		{"primary not text", `[1, []]`, ErrMalformedGlossary},
		{"groups not list", `["Good", "verb"]`, ErrMalformedGlossary},
		{"empty group", `["Good", [[]]]`, ErrMalformedGlossary},
		{"label not text", `["Good", [[1, "good"]]]`, ErrMalformedGlossary},
		{"term not text", `["Good", [["verb", 1]]]`, ErrMalformedGlossary},
		{"missing sentences", `{"dict":[]}`, ErrUnrecognizedShape},
		{"empty mapping", `{}`, ErrUnrecognizedShape},
		{"sentences not list", `{"sentences":"Hello"}`, ErrMalformedDictionary},
		{"sentence not mapping", `{"sentences":["Hello"]}`, ErrMalformedDictionary},
		{"missing trans", `{"sentences":[{"orig":"好"}]}`, ErrMalformedDictionary},
		{"dict not list", `{"sentences":[{"trans":"Well"}],"dict":{}}`, ErrMalformedDictionary},
		{"dict missing terms", `{"sentences":[{"trans":"Well"}],"dict":[{"pos":"verb"}]}`, ErrMalformedDictionary},
		{"dict terms not text", `{"sentences":[{"trans":"Well"}],"dict":[{"pos":"verb","terms":[1]}]}`, ErrMalformedDictionary},
		{"number key sentences", `{1:[{"trans":"Well"}]}`, ErrUnrecognizedShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := normalizeRaw(t, tt.raw, "好")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v, want %v", err, tt.kind)

			var se *ShapeError
			assert.True(t, errors.As(err, &se))
		})
	}
}

func TestCapitalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Verb", Capitalize("verb"))
	assert.Equal(t, "Okey dokey", Capitalize("okey dokey"))
	assert.Equal(t, "ADJ", Capitalize("aDJ"))
	assert.Equal(t, "Éclair", Capitalize("éclair"))
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "好", Capitalize("好"))
}
