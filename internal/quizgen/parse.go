package quizgen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/quizgen/internal/llm"
	"github.com/abhisek/quizgen/internal/quiz"
)

// Discard records why one element of a batch was dropped.
type Discard struct {
	// Index is the element's zero-based position in the batch.
	Index  int
	Reason string
}

// ParseQuestions decodes an extracted batch and keeps the elements that
// are well-formed questions, in order, truncated to requestedCount when it
// is positive.
//
// Text that is not JSON yields a *MalformedResponseError. JSON with no
// usable element yields ErrNoValidQuestions.
func ParseQuestions(jsonText string, requestedCount int) ([]quiz.Question, error) {
	qs, _, err := ParseQuestionsWithDiscards(jsonText, requestedCount)
	return qs, err
}

// ParseQuestionsWithDiscards is ParseQuestions that also reports every
// dropped element.
func ParseQuestionsWithDiscards(jsonText string, requestedCount int) ([]quiz.Question, []Discard, error) {
	var parsed any
	if err := json.Unmarshal([]byte(jsonText), &parsed); err != nil {
		return nil, nil, &MalformedResponseError{Content: jsonText, Err: err}
	}

	items, ok := questionArray(parsed)
	if !ok {
		return nil, []Discard{{Index: 0, Reason: fmt.Sprintf("expected a JSON array, got %s", jsonKind(parsed))}}, ErrNoValidQuestions
	}

	var (
		questions []quiz.Question
		discards  []Discard
	)
	for i, item := range items {
		if err := llm.ValidateValue(QuestionSchema, item); err != nil {
			discards = append(discards, Discard{Index: i, Reason: err.Error()})
			continue
		}

		q, reason := toQuestion(item.(map[string]any))
		if reason != "" {
			discards = append(discards, Discard{Index: i, Reason: reason})
			continue
		}
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return nil, discards, ErrNoValidQuestions
	}
	if requestedCount > 0 && len(questions) > requestedCount {
		questions = questions[:requestedCount]
	}
	return questions, discards, nil
}

// questionArray returns the batch array. An object wrapping the batch
// under "questions", or holding exactly one array field, is unwrapped.
func questionArray(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case map[string]any:
		if arr, ok := t["questions"].([]any); ok {
			return arr, true
		}
		var found []any
		n := 0
		for _, field := range t {
			if arr, ok := field.([]any); ok {
				found = arr
				n++
			}
		}
		if n == 1 {
			return found, true
		}
	}
	return nil, false
}

// toQuestion converts a schema-valid element, trimming every string. It
// returns a reason when a field is blank after trimming.
func toQuestion(m map[string]any) (quiz.Question, string) {
	q := quiz.Question{
		Text:         strings.TrimSpace(m["question_text"].(string)),
		Explanation:  strings.TrimSpace(m["explanation"].(string)),
		CorrectIndex: int(m["correct_index"].(float64)),
	}
	if q.Text == "" {
		return q, "question_text is blank"
	}
	if q.Explanation == "" {
		return q, "explanation is blank"
	}

	for i, opt := range m["options"].([]any) {
		s := strings.TrimSpace(opt.(string))
		if s == "" {
			return q, fmt.Sprintf("option %d is blank", i)
		}
		q.Options = append(q.Options, s)
	}
	return q, ""
}

func jsonKind(v any) string {
	switch v.(type) {
	case map[string]any:
		return "an object"
	case string:
		return "a string"
	case float64:
		return "a number"
	case bool:
		return "a boolean"
	case nil:
		return "null"
	}
	return fmt.Sprintf("%T", v)
}
