package parser

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, input string) Value {
	t.Helper()
	v, err := Parse(input)
	require.NoError(t, err, "Parse(%q)", input)
	return v
}

func assertValue(t *testing.T, want, got Value) {
	t.Helper()
	assert.True(t, Equal(want, got), "want %s, got %s", want, got)
}

func TestParse_Numbers(t *testing.T) {
	t.Parallel()

	assertValue(t, NewNumber(1), mustParse(t, "1"))
	assertValue(t, NewNumber(-1), mustParse(t, "-1"))
	assertValue(t, NewNumber(0), mustParse(t, "0"))
	assertValue(t, NewNumber(1337), mustParse(t, "  1337\n"))
}

func TestParse_BigNumber(t *testing.T) {
	t.Parallel()

	v := mustParse(t, "-123456789012345678901234567890")
	n, ok := v.(Number)
	require.True(t, ok)

	want, _ := new(big.Int).SetString("-123456789012345678901234567890", 10)
	assert.Zero(t, want.Cmp(n.Int))

	_, fits := n.Int64()
	assert.False(t, fits)
}

func TestParse_Strings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  Text
	}{
		{"plain", `"hello"`, "hello"},
		{"empty", `""`, ""},
		{"tab and quote escapes", `"hello\t\"world\""`, "hello\t\"world\""},
		{"leading tab", `"\tleading whitespace"`, "\tleading whitespace"},
		{"unicode", `"好"`, "好"},
		{"json escapes", `"a\\b\/c\nd"`, "a\\b/c\nd"},
		{"unicode escape", `"\u003cb\u003e"`, "<b>"},
		{"surrogate pair", `"\ud83d\ude00"`, "\U0001F600"},
		{"unknown escape kept", `"a\qb"`, `a\qb`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assertValue(t, tt.want, mustParse(t, tt.input))
		})
	}
}

func TestParse_List(t *testing.T) {
	t.Parallel()

	want := List{NewNumber(1), Text("hello"), NewNumber(10), Text("world"), NewNumber(1337)}
	assertValue(t, want, mustParse(t, `[1, "hello", 10, "world", 1337]`))
	assertValue(t, List{}, mustParse(t, `[ ]`))
}

func TestParse_ListOfLists(t *testing.T) {
	t.Parallel()

	want := List{
		NewNumber(1),
		List{NewNumber(2), List{NewNumber(3), NewNumber(4)}},
		List{NewNumber(5), NewNumber(6)},
	}
	assertValue(t, want, mustParse(t, `[1, [2, [3, 4]], [5, 6]]`))
}

func TestParse_Mapping(t *testing.T) {
	t.Parallel()

	want := Mapping{
		{Key: Text("fruit"), Value: Text("orange")},
		{Key: NewNumber(1), Value: NewNumber(2)},
	}
	got := mustParse(t, `{"fruit":"orange",1:2}`)
	assertValue(t, want, got)

	m := got.(Mapping)
	fruit, ok := m.Get("fruit")
	require.True(t, ok)
	assertValue(t, Text("orange"), fruit)

	_, ok = m.Get("1")
	assert.False(t, ok, "number keys are not text keys")
}

func TestParse_MappingOfMappings(t *testing.T) {
	t.Parallel()

	input := `{"fruits" : {"orange" : 1, "banana" : 2}, "numbers" : {1337 : ["cool"], 13 : ["bad", "unlucky"]}}`
	want := Mapping{
		{Key: Text("fruits"), Value: Mapping{
			{Key: Text("orange"), Value: NewNumber(1)},
			{Key: Text("banana"), Value: NewNumber(2)},
		}},
		{Key: Text("numbers"), Value: Mapping{
			{Key: NewNumber(1337), Value: List{Text("cool")}},
			{Key: NewNumber(13), Value: List{Text("bad"), Text("unlucky")}},
		}},
	}
	assertValue(t, want, mustParse(t, input))
}

func TestParse_Whitespace(t *testing.T) {
	t.Parallel()

	assertValue(t, mustParse(t, `[1,"a"]`), mustParse(t, "[ 1 , \"a\" ]"))

	got := mustParse(t, "[ 1    ,\"hello\",[10, \"barr rr\"],   \"world\"   , 1337, {     \"a\" :\t\"dict\"} ]")
	want := List{
		NewNumber(1),
		Text("hello"),
		List{NewNumber(10), Text("barr rr")},
		Text("world"),
		NewNumber(1337),
		Mapping{{Key: Text("a"), Value: Text("dict")}},
	}
	assertValue(t, want, got)
}

func TestParse_Deterministic(t *testing.T) {
	t.Parallel()

	input := `{"sentences":[{"trans":"Well","orig":"好"}],"dict":[{"pos":"verb","terms":["like","love"]}],"src":"zh-CN"}`
	assertValue(t, mustParse(t, input), mustParse(t, input))
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		kind  error
	}{
		{"empty", "", ErrEmpty},
		{"blank", " \n\t", ErrEmpty},
		{"two numbers", "1 1", ErrTrailing},
		{"string then number", `"hello" 1`, ErrTrailing},
		{"list then number", "[1] 1", ErrTrailing},
		{"unknown characters", `! "hello" !`, ErrUnrecognized},
		{"bare minus", "-", ErrUnrecognized},
		{"fraction", "1.5", ErrTrailing},
		{"list not closed", `[ "hello"`, ErrUnterminated},
		{"list missing value", `[1,`, ErrUnterminated},
		{"mapping missing colon", `{ "hello" }`, ErrMalformed},
		{"mapping missing value", `{ "hello" : }`, ErrMalformed},
		{"mapping missing value compact", `{"hello":}`, ErrMalformed},
		{"mapping leading comma", `{,"a":1}`, ErrMalformed},
		{"mapping not closed", `{ "hello" : "world"`, ErrUnterminated},
		{"list key", `{[1]:2}`, ErrMalformed},
		{"list missing comma", `[1 2]`, ErrMalformed},
		{"string not closed", `"abc`, ErrUnterminated},
		{"elided list member", `[1,,2]`, ErrMalformed},
		{"trailing comma in list", `[1,]`, ErrMalformed},
		{"trailing comma in mapping", `{"a":1,}`, ErrMalformed},
		{"stray closing bracket", `]`, ErrMalformed},
		{"invalid utf-8", "\"a\xffb\"", ErrEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, err := Parse(tt.input)
			require.Error(t, err)
			assert.Nil(t, v)
			assert.True(t, errors.Is(err, tt.kind), "got %v, want kind %v", err, tt.kind)

			var pe *ParseError
			assert.True(t, errors.As(err, &pe))
		})
	}
}

func TestParseError_Position(t *testing.T) {
	t.Parallel()

	_, err := Parse("[1] x")
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 4, pe.Offset)
	assert.Equal(t, `"x"`, pe.Near)
	assert.Contains(t, err.Error(), "trailing content at offset 4")
}

func TestValue_String(t *testing.T) {
	t.Parallel()

	v := mustParse(t, `{"a" : [1, "x\ty"], 2 : -3}`)
	assert.Equal(t, `{"a":[1,"x\ty"],2:-3}`, v.String())
	assertValue(t, v, mustParse(t, v.String()))
}
