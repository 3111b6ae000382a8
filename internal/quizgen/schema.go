package quizgen

import "github.com/abhisek/quizgen/internal/llm"

// QuestionSchema is the shape every element of a generated batch must have.
var QuestionSchema = &llm.Schema{
	Name:        "quiz-question",
	Description: "A single multiple-choice question with four options and an explanation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question_text": map[string]any{
				"type":        "string",
				"description": "The question prompt shown to the user",
			},
			"options": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    4,
				"maxItems":    4,
				"description": "Exactly 4 answer options",
			},
			"correct_index": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     3,
				"description": "Index of the correct option",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Why the correct option is right, 1-2 sentences",
			},
		},
		"required": []any{"question_text", "options", "correct_index", "explanation"},
	},
}

// TopicVerdictSchema is the shape of the topic check reply.
var TopicVerdictSchema = &llm.Schema{
	Name:        "topic-verdict",
	Description: "Whether a topic is suitable for an educational quiz",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"valid":      map[string]any{"type": "boolean"},
			"reason":     map[string]any{"type": "string"},
			"suggestion": map[string]any{"type": []any{"string", "null"}},
		},
		"required": []any{"valid"},
	},
}

// StructuredTopicVerdictSchema is the verdict shape requested from the
// provider as structured output. Providers that enforce schemas need every
// property listed as required and no extra properties.
var StructuredTopicVerdictSchema = &llm.Schema{
	Name:        "topic_verdict",
	Description: "Whether a topic is suitable for an educational quiz",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"valid":      map[string]any{"type": "boolean"},
			"reason":     map[string]any{"type": "string"},
			"suggestion": map[string]any{"type": []any{"string", "null"}},
		},
		"required":             []any{"valid", "reason", "suggestion"},
		"additionalProperties": false,
	},
}
