package quizgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizgen/internal/llm"
)

const questionSystemPrompt = `You are an expert quiz creator writing multiple-choice questions.

For EACH question you MUST provide:
1. "question_text": the question text
2. "options": a list of EXACTLY 4 options (strings)
3. "correct_index": the index of the correct option (0 for the first option, 1 for the second, and so on)
4. "explanation": a clear explanation of why the correct answer is right (1-2 sentences)

Rules:
- Questions should be diverse and cover different aspects of the topic.
- Incorrect options should be plausible but clearly wrong to someone who knows the topic.
- correct_index is always 0, 1, 2 or 3.
- Keep explanations educational and concise.
- Return ONLY a valid JSON array. No additional text before or after.`

const questionExample = `[
  {
    "question_text": "What is the capital of France?",
    "options": ["Berlin", "Madrid", "Paris", "Rome"],
    "correct_index": 2,
    "explanation": "Paris is the capital of France, while Berlin is Germany's capital, Madrid is Spain's, and Rome is Italy's."
  }
]`

const topicSystemPrompt = `You decide whether a topic is appropriate for creating educational multiple-choice questions.

Consider:
1. Is it a coherent, meaningful topic?
2. Is it educational and appropriate?
3. Is it free of gibberish, random characters or nonsense?

Answer with ONE JSON object and nothing else:
- "valid": true or false
- "reason": brief explanation
- "suggestion": an alternative topic if invalid, or null if valid`

// BuildTopicRequest builds the topic-validation request.
func BuildTopicRequest(topic string, cfg Config) llm.Request {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %q\n\n", topic)
	b.WriteString("Example valid response:\n")
	b.WriteString(`{"valid": true, "reason": "Topic is clear and educational", "suggestion": null}`)
	b.WriteString("\n\nExample invalid response:\n")
	b.WriteString(`{"valid": false, "reason": "Appears to be random characters", "suggestion": "Try 'Ancient History' or 'Computer Science'"}`)

	req := llm.Request{
		System:    topicSystemPrompt,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: b.String()}},
		MaxTokens: cfg.TopicMaxTokens,
	}
	if cfg.StructuredTopicCheck {
		req.Schema = StructuredTopicVerdictSchema
	}
	return req
}

// BuildQuestionRequest builds the question-generation request for count
// questions about topic.
func BuildQuestionRequest(topic string, count int, cfg Config) llm.Request {
	return buildQuestionRequest(topic, count, nil, cfg)
}

func buildQuestionRequest(topic string, count int, prior []string, cfg Config) llm.Request {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate %d high-quality multiple-choice questions about %q.\n\n", count, topic)
	b.WriteString("Example format:\n")
	b.WriteString(questionExample)
	b.WriteString("\n")

	if len(prior) > 0 {
		b.WriteString("\nAlready asked on this topic, do not repeat:\n")
		b.WriteString(buildPrior(prior, cfg.MaxPriorQuestions))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nNow generate %d questions about %q:", count, topic)

	return llm.Request{
		System:      questionSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: b.String()}},
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}
}

// buildPrior formats earlier questions for the prompt, keeping the most
// recent max entries.
func buildPrior(prior []string, max int) string {
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}

	var b strings.Builder
	for i, q := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
