// Package extractive is a deterministic stand-in for the hosted language
// model. Summaries are the leading sentences of each chunk; answers are the
// document sentence sharing the most keywords with the question.
package extractive

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/legalease/lexctl/internal/config"
	"github.com/legalease/lexctl/internal/domain"
	"github.com/legalease/lexctl/internal/domain/entity"
)

// NoAnswer is the reply when the document does not cover the question
const NoAnswer = "The document does not provide this information."

// model is the extractive LanguageModel implementation
type model struct {
	sentences int
	latency   time.Duration
	logger    *slog.Logger
}

// New creates the extractive model
func New(cfg config.SummarizerConfig, logger *slog.Logger) domain.LanguageModel {
	sentences := cfg.Sentences
	if sentences <= 0 {
		sentences = 3
	}

	logger.Info("extractive model ready", "sentences", sentences, "latency", cfg.Latency)

	return &model{
		sentences: sentences,
		latency:   cfg.Latency,
		logger:    logger,
	}
}

// Summarize keeps the first sentences of chunk
func (m *model) Summarize(ctx context.Context, chunk string) (string, error) {
	if err := m.wait(ctx); err != nil {
		return "", err
	}

	sentences := SplitSentences(chunk)
	if len(sentences) > m.sentences {
		sentences = sentences[:m.sentences]
	}
	return strings.Join(sentences, " "), nil
}

// AnswerStreaming picks the best matching sentence and streams it word by word
func (m *model) AnswerStreaming(ctx context.Context, document string, history []entity.ChatMessage, question string) (<-chan entity.StreamChunk, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	answer := Answer(document, question)
	m.logger.Debug("answer selected",
		"history", len(history),
		"found", answer != NoAnswer,
	)

	words := strings.Fields(answer)
	out := make(chan entity.StreamChunk, len(words)+1)
	go func() {
		defer close(out)
		for i, w := range words {
			if i < len(words)-1 {
				w += " "
			}
			select {
			case out <- entity.StreamChunk{Text: w}:
			case <-ctx.Done():
				out <- entity.StreamChunk{IsEnd: true, Error: ctx.Err().Error()}
				return
			}
		}
		out <- entity.StreamChunk{IsEnd: true}
	}()
	return out, nil
}

func (m *model) wait(ctx context.Context) error {
	if m.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(m.latency)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Answer returns the first sentence of document with the highest keyword
// overlap with question, or NoAnswer.
func Answer(document, question string) string {
	keywords := Keywords(question)
	if len(keywords) == 0 {
		return NoAnswer
	}

	best, bestScore := "", 0
	for _, s := range SplitSentences(document) {
		score := 0
		seen := make(map[string]bool)
		for _, w := range words(s) {
			if keywords[w] && !seen[w] {
				seen[w] = true
				score++
			}
		}
		if score > bestScore {
			best, bestScore = s, score
		}
	}
	if bestScore == 0 {
		return NoAnswer
	}
	return best
}

// SplitSentences splits text after '.', '!' or '?' followed by whitespace.
// Whitespace inside a sentence is collapsed to single spaces.
func SplitSentences(text string) []string {
	fields := strings.Fields(text)
	var (
		out     []string
		current []string
	)
	for _, f := range fields {
		current = append(current, f)
		if strings.ContainsAny(f[len(f)-1:], ".!?") {
			out = append(out, strings.Join(current, " "))
			current = current[:0]
		}
	}
	if len(current) > 0 {
		out = append(out, strings.Join(current, " "))
	}
	return out
}

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "was": true, "were": true,
	"what": true, "who": true, "whom": true, "when": true, "where": true, "which": true,
	"why": true, "how": true, "does": true, "did": true, "this": true, "that": true,
	"these": true, "those": true, "with": true, "from": true, "into": true, "about": true,
	"there": true, "their": true, "they": true, "have": true, "has": true, "had": true,
	"can": true, "could": true, "should": true, "would": true, "will": true, "shall": true,
	"any": true, "all": true, "you": true, "your": true, "document": true, "contract": true,
	"tell": true, "please": true, "under": true, "not": true, "is": true, "of": true,
}

// Keywords lowercases question and drops short words and stopwords
func Keywords(question string) map[string]bool {
	out := make(map[string]bool)
	for _, w := range words(question) {
		if len([]rune(w)) < 3 || stopwords[w] {
			continue
		}
		out[w] = true
	}
	return out
}

func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
