package extractive

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/legalease/lexctl/internal/config"
	"github.com/legalease/lexctl/internal/domain/entity"
)

const lease = `This Lease Agreement is made between Acme Corp and Jane Doe.
The tenant shall pay rent of $1,200 on the first day of each month.
The landlord is responsible for structural repairs!   Pets are not allowed?
Either party may terminate with 60 days written notice`

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestSplitSentences(t *testing.T) {
	got := SplitSentences(lease)
	assert.Equal(t, []string{
		"This Lease Agreement is made between Acme Corp and Jane Doe.",
		"The tenant shall pay rent of $1,200 on the first day of each month.",
		"The landlord is responsible for structural repairs!",
		"Pets are not allowed?",
		"Either party may terminate with 60 days written notice",
	}, got)

	assert.Empty(t, SplitSentences("  \n "))
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name      string
		sentences int
		want      string
	}{
		{name: "first two", sentences: 2, want: "This Lease Agreement is made between Acme Corp and Jane Doe. The tenant shall pay rent of $1,200 on the first day of each month."},
		{name: "more than available", sentences: 10, want: strings.Join(SplitSentences(lease), " ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(config.SummarizerConfig{Sentences: tt.sentences}, discard)
			got, err := m.Summarize(context.Background(), lease)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnswer(t *testing.T) {
	tests := []struct {
		question string
		want     string
	}{
		{question: "How much rent does the tenant pay?", want: "The tenant shall pay rent of $1,200 on the first day of each month."},
		{question: "Who handles structural repairs?", want: "The landlord is responsible for structural repairs!"},
		{question: "What notice is needed to terminate?", want: "Either party may terminate with 60 days written notice"},
		{question: "Is there a governing law clause?", want: NoAnswer},
		{question: "what is the?", want: NoAnswer},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			assert.Equal(t, tt.want, Answer(lease, tt.question))
		})
	}
}

func collect(t *testing.T, ch <-chan entity.StreamChunk) (string, entity.StreamChunk) {
	t.Helper()
	var (
		sb   strings.Builder
		last entity.StreamChunk
	)
	for chunk := range ch {
		sb.WriteString(chunk.Text)
		last = chunk
	}
	return sb.String(), last
}

func TestAnswerStreaming(t *testing.T) {
	m := New(config.SummarizerConfig{Sentences: 3}, discard)

	ch, err := m.AnswerStreaming(context.Background(), lease, nil, "Are pets allowed?")
	require.NoError(t, err)

	text, last := collect(t, ch)
	assert.Equal(t, "Pets are not allowed?", text)
	assert.True(t, last.IsEnd)
	assert.Empty(t, last.Error)
}

func TestLatencyHonoursContext(t *testing.T) {
	m := New(config.SummarizerConfig{Sentences: 3, Latency: time.Minute}, discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Summarize(ctx, lease)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = m.AnswerStreaming(ctx, lease, nil, "rent?")
	assert.ErrorIs(t, err, context.Canceled)
}
