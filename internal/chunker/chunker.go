// Package chunker groups the phrases of a batch so that each group stays
// under an estimated token budget.
package chunker

import "unicode"

// DefaultMaxTokens is the default budget per chunk. A chunk is looked up
// concurrently, so this also bounds how much text is in flight at once.
const DefaultMaxTokens = 200

// EstimateTokens estimates the token count of a phrase.
// Han characters count one token each; other runs are ~4 characters per
// token. Any non-empty phrase is at least one token.
func EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}

	han, other := 0, 0
	for _, r := range text {
		if unicode.Is(unicode.Han, r) {
			han++
		} else {
			other++
		}
	}

	tokens := han + (other+3)/4
	if tokens == 0 {
		tokens = 1
	}
	return tokens
}

// ChunkByTokens splits texts into runs whose estimated tokens fit in
// maxTokens, keeping each phrase whole and the input order intact. A phrase
// over budget on its own forms a single-phrase chunk. Chunks share the
// backing array of texts but have capped capacity.
func ChunkByTokens(texts []string, maxTokens int) [][]string {
	if len(texts) == 0 {
		return nil
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	var chunks [][]string
	start, used := 0, 0
	for i, text := range texts {
		n := EstimateTokens(text)
		if i > start && used+n > maxTokens {
			chunks = append(chunks, texts[start:i:i])
			start, used = i, 0
		}
		used += n
	}
	return append(chunks, texts[start:len(texts):len(texts)])
}
