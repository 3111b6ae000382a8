package quizgen

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizgen/internal/llm"
)

const validTopicReply = `{"valid": true, "reason": "Clear topic", "suggestion": null}`

func threeQuestionsReply() string {
	return "Here are your questions:\n```json\n[\n" +
		`{"question_text":"What gas do plants absorb?","options":["Oxygen","Carbon dioxide","Nitrogen","Helium"],"correct_index":1,"explanation":"Plants take in CO2 for photosynthesis."},` + "\n" +
		`{"question_text":"Where does photosynthesis happen?","options":["Mitochondria","Nucleus","Chloroplast","Ribosome"],"correct_index":2,"explanation":"Chloroplasts hold chlorophyll."},` + "\n" +
		`{"question_text":"Broken","options":["a","b"],"correct_index":0,"explanation":"x"},` + "\n" +
		`{"question_text":"What is released?","options":["Oxygen","Methane","Argon","Neon"],"correct_index":0,"explanation":"Oxygen is a by-product.",},` + "\n" +
		"]\n```\nGood luck!"
}

func newTestGenerator(mock *llm.MockProvider, cfg Config) *Generator {
	g := NewGenerator(mock, cfg, nil)
	g.now = func() time.Time { return time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC) }
	return g
}

func TestGenerate_HappyPath(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.TextResponse(validTopicReply),
		llm.TextResponse(threeQuestionsReply()),
	)
	g := newTestGenerator(mock, DefaultConfig())

	q, err := g.Generate(context.Background(), "  Photosynthesis ", 5)
	require.NoError(t, err)

	assert.Len(t, q.ID, 8)
	assert.Equal(t, "Photosynthesis", q.Topic)
	assert.Equal(t, time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC), q.CreatedAt)
	require.Len(t, q.Questions, 3, "the broken element is dropped")
	assert.Equal(t, "What gas do plants absorb?", q.Questions[0].Text)
	assert.Equal(t, "What is released?", q.Questions[2].Text)

	require.Equal(t, 2, mock.CallCount())
	assert.Equal(t, topicSystemPrompt, mock.Calls[0].System)
	assert.Equal(t, questionSystemPrompt, mock.Calls[1].System)
	assert.Contains(t, mock.Calls[1].Messages[0].Content, "Generate 5 high-quality")
}

func TestGenerate_Truncates(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.TextResponse(validTopicReply),
		llm.TextResponse(threeQuestionsReply()),
	)
	q, err := newTestGenerator(mock, DefaultConfig()).Generate(context.Background(), "Photosynthesis", 2)
	require.NoError(t, err)
	assert.Len(t, q.Questions, 2)
}

func TestGenerate_ShapeChecksSkipModel(t *testing.T) {
	mock := llm.NewMockProvider()
	g := newTestGenerator(mock, DefaultConfig())

	_, err := g.Generate(context.Background(), "x", 5)
	assert.ErrorIs(t, err, ErrInvalidTopic)

	_, err = g.Generate(context.Background(), "History", 0)
	assert.ErrorIs(t, err, ErrInvalidCount)

	_, err = g.Generate(context.Background(), "History", 21)
	assert.ErrorIs(t, err, ErrInvalidCount)

	assert.Equal(t, 0, mock.CallCount())
}

func TestGenerate_RejectedTopic(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.TextResponse(`{"valid": false, "reason": "Appears to be random characters", "suggestion": "Try 'Computer Science'"}`),
	)
	_, err := newTestGenerator(mock, DefaultConfig()).Generate(context.Background(), "asdfgh", 5)
	require.Error(t, err)

	var ite *InvalidTopicError
	require.True(t, errors.As(err, &ite))
	assert.Equal(t, "asdfgh", ite.Topic)
	assert.Equal(t, "Appears to be random characters", ite.Reason)
	assert.Equal(t, "Try 'Computer Science'", ite.Suggestion)
	assert.Equal(t, 1, mock.CallCount(), "no generation after a negative verdict")
}

func TestGenerate_TopicCheckFailsOpen(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("timeout")}},
		llm.TextResponse(threeQuestionsReply()),
	)
	q, err := newTestGenerator(mock, DefaultConfig()).Generate(context.Background(), "Photosynthesis", 3)
	require.NoError(t, err)
	assert.Len(t, q.Questions, 3)
}

func TestGenerate_StrictTopicCheck(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StrictTopicCheck = true
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("timeout")}},
		llm.TextResponse(threeQuestionsReply()),
	)
	_, err := newTestGenerator(mock, cfg).Generate(context.Background(), "Photosynthesis", 3)
	require.Error(t, err)
	assert.Equal(t, 1, mock.CallCount())
}

func TestGenerate_SkipTopicCheck(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SkipTopicCheck = true
	mock := llm.NewMockProvider(llm.TextResponse(threeQuestionsReply()))

	q, err := newTestGenerator(mock, cfg).Generate(context.Background(), "Photosynthesis", 3)
	require.NoError(t, err)
	assert.Len(t, q.Questions, 3)
	assert.Equal(t, 1, mock.CallCount())
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name  string
		reply llm.MockResponse
		check func(t *testing.T, err error)
	}{
		{
			name:  "malformed",
			reply: llm.TextResponse("Sorry, I can't do that."),
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrMalformedResponse) },
		},
		{
			name:  "no valid questions",
			reply: llm.TextResponse(`[{"question_text":"Q","options":["a"],"correct_index":0,"explanation":"e"}]`),
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrNoValidQuestions) },
		},
		{
			name:  "transport",
			reply: llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}},
			check: func(t *testing.T, err error) {
				var rl *llm.ErrRateLimit
				assert.True(t, errors.As(err, &rl))
				assert.True(t, strings.HasPrefix(err.Error(), "generate questions:"))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.TextResponse(validTopicReply), tt.reply)
			_, err := newTestGenerator(mock, DefaultConfig()).Generate(context.Background(), "Photosynthesis", 3)
			require.Error(t, err)
			tt.check(t, err)
			assert.Equal(t, 2, mock.CallCount(), "the core does not retry")
		})
	}
}

func TestGenerateRequest_PriorQuestionsInPrompt(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SkipTopicCheck = true
	mock := llm.NewMockProvider(llm.TextResponse(threeQuestionsReply()))

	_, err := newTestGenerator(mock, cfg).GenerateRequest(context.Background(), Request{
		Topic:          "Photosynthesis",
		Count:          3,
		PriorQuestions: []string{"What is chlorophyll?"},
	})
	require.NoError(t, err)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "1. What is chlorophyll?")
}
