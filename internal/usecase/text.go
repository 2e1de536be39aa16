package usecase

import (
	"regexp"
	"strings"
)

// chunkChars bounds the text handed to one summarize call
const chunkChars = 4000

var (
	spaceRun         = regexp.MustCompile(`\s+`)
	spaceBeforePunct = regexp.MustCompile(`\s([?.!,"])`)
)

// CleanText collapses whitespace and drops spaces before punctuation
func CleanText(text string) string {
	text = spaceRun.ReplaceAllString(text, " ")
	text = spaceBeforePunct.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}

// ChunkText groups words into chunks shorter than maxChars, counting one
// separator per word. A single word longer than maxChars gets its own chunk.
func ChunkText(text string, maxChars int) []string {
	var (
		chunks []string
		chunk  []string
		size   int
	)
	for _, w := range strings.Fields(text) {
		if len(chunk) > 0 && size+len(w)+len(chunk) >= maxChars {
			chunks = append(chunks, strings.Join(chunk, " "))
			chunk, size = nil, 0
		}
		chunk = append(chunk, w)
		size += len(w)
	}
	if len(chunk) > 0 {
		chunks = append(chunks, strings.Join(chunk, " "))
	}
	return chunks
}
