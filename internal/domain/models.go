// Package domain contains the core domain types for translation lookups.
package domain

import "strings"

// Hint tells the presentation layer how to render a Word.
type Hint string

const (
	// HintNone is ordinary translated content.
	HintNone Hint = ""
	// HintMuted marks placeholder text that should be shown greyed out.
	HintMuted Hint = "muted"
)

// Word is the smallest displayable unit of a translation.
type Word struct {
	Text string `json:"text"`
	Hint Hint   `json:"hint,omitempty"`
}

// Entry is one row of a translation: the primary translation or a gloss line.
type Entry struct {
	Words []Word `json:"words"`
}

// NewEntry builds a single-word entry.
func NewEntry(text string) Entry {
	return Entry{Words: []Word{{Text: text}}}
}

// NewMutedEntry builds a single-word entry rendered with HintMuted.
func NewMutedEntry(text string) Entry {
	return Entry{Words: []Word{{Text: text, Hint: HintMuted}}}
}

// String joins the text of all words in the entry.
func (e Entry) String() string {
	var b strings.Builder
	for _, w := range e.Words {
		b.WriteString(w.Text)
	}
	return b.String()
}

// Result is the outcome of a successful lookup.
// Entries[0] is always the primary translation; gloss entries follow in
// the order the service returned them.
type Result struct {
	Entries []Entry `json:"entries"`
}

// Primary returns the primary translation, or "" for an empty result.
func (r *Result) Primary() string {
	if r == nil || len(r.Entries) == 0 {
		return ""
	}
	return r.Entries[0].String()
}

// Strings flattens the result into one string per entry.
func (r *Result) Strings() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		out = append(out, e.String())
	}
	return out
}

// Request is the input to the lookup Lambda.
type Request struct {
	Texts      []string `json:"texts"`
	TargetLang string   `json:"targetLang"`
	Quiet      bool     `json:"quiet,omitempty"`
}

// Lookup is the outcome for a single input text. Entries is nil when the
// service had no suggestion.
type Lookup struct {
	Text    string  `json:"text"`
	Entries []Entry `json:"entries"`
}

// Response is the output from the lookup Lambda.
type Response struct {
	Results         []Lookup `json:"results,omitempty"`
	ChunksProcessed int      `json:"chunksProcessed,omitempty"`
	Error           string   `json:"error,omitempty"`
}
