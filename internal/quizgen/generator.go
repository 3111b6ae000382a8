package quizgen

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/quizgen/internal/llm"
	"github.com/abhisek/quizgen/internal/logger"
	"github.com/abhisek/quizgen/internal/quiz"
)

// Request describes one quiz to generate.
type Request struct {
	Topic string
	Count int

	// PriorQuestions lists question texts already asked on this topic.
	// They are quoted in the prompt so the model avoids repeats.
	PriorQuestions []string
}

// Generator runs the full pipeline: shape checks, topic verdict, question
// generation, extraction, validation and assembly. It never retries on its
// own; retry policy belongs to the provider middleware and the caller.
type Generator struct {
	provider llm.Provider
	topics   *TopicValidator
	config   Config
	log      *logger.Logger
	now      func() time.Time
}

// NewGenerator creates a Generator. log may be nil.
func NewGenerator(provider llm.Provider, cfg Config, log *logger.Logger) *Generator {
	if log == nil {
		log = logger.Nop()
	}
	log = log.With("component", "quizgen")
	return &Generator{
		provider: provider,
		topics:   NewTopicValidator(provider, cfg, log),
		config:   cfg,
		log:      log,
		now:      time.Now,
	}
}

// Generate produces a quiz of up to count questions about topic. The quiz
// may hold fewer questions than asked when the model's batch had invalid
// elements.
func (g *Generator) Generate(ctx context.Context, topic string, count int) (*quiz.Quiz, error) {
	return g.GenerateRequest(ctx, Request{Topic: topic, Count: count})
}

// GenerateRequest is Generate with the full set of options.
func (g *Generator) GenerateRequest(ctx context.Context, req Request) (*quiz.Quiz, error) {
	topic := strings.TrimSpace(req.Topic)
	if err := CheckTopic(topic); err != nil {
		return nil, err
	}
	if err := CheckCount(req.Count); err != nil {
		return nil, err
	}

	if !g.config.SkipTopicCheck {
		verdict, err := g.topics.Validate(ctx, topic)
		if err != nil {
			return nil, err
		}
		if !verdict.Valid {
			return nil, &InvalidTopicError{Topic: topic, Reason: verdict.Reason, Suggestion: verdict.Suggestion}
		}
	}

	questions, err := g.questions(ctx, topic, req)
	if err != nil {
		return nil, err
	}

	q, err := Assemble(topic, questions, g.now())
	if err != nil {
		return nil, err
	}
	g.log.Info("generated quiz", "id", q.ID, "topic", q.Topic, "questions", len(q.Questions), "requested", req.Count)
	return q, nil
}

func (g *Generator) questions(ctx context.Context, topic string, req Request) ([]quiz.Question, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")

	resp, err := g.provider.Generate(ctx, buildQuestionRequest(topic, req.Count, req.PriorQuestions, g.config))
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	text := ExtractJSON(resp.Text())
	questions, discards, err := ParseQuestionsWithDiscards(text, req.Count)
	for _, d := range discards {
		g.log.Debug("discarded question", "index", d.Index, "reason", d.Reason)
	}
	if err != nil {
		return nil, fmt.Errorf("parse questions: %w", err)
	}
	return questions, nil
}
