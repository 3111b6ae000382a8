package quiz

import "time"

// OptionCount is the number of answer options every question carries.
const OptionCount = 4

// Question is a single validated multiple-choice question.
type Question struct {
	// Text is the question prompt shown to the user.
	Text string `json:"question_text"`

	// Options holds exactly OptionCount non-empty answer options, in display order.
	Options []string `json:"options"`

	// CorrectIndex is the index of the correct option (0-3).
	CorrectIndex int `json:"correct_index"`

	// Explanation says why the correct option is right. Shown during review.
	Explanation string `json:"explanation"`
}

// Quiz is a generated set of questions about one topic.
type Quiz struct {
	// ID is a short opaque token, unique within one store.
	ID string `json:"id"`

	Topic     string     `json:"topic"`
	Questions []Question `json:"questions"`
	CreatedAt time.Time  `json:"created_at"`
}

// Result records one completed attempt at a quiz.
type Result struct {
	// ID identifies this attempt. Results written before IDs existed have
	// an empty ID and are addressed by QuizID instead.
	ID string `json:"id,omitempty"`

	// QuizID references the quiz that was taken. The quiz may have been
	// removed from storage since.
	QuizID string `json:"quiz_id"`

	// UserAnswers holds one option index per question, in question order.
	UserAnswers []int `json:"user_answers"`

	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	CompletedAt    time.Time `json:"completed_at"`
}

// Percent returns the score as a percentage of the total questions.
func (r Result) Percent() float64 {
	if r.TotalQuestions == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.TotalQuestions) * 100
}

// IsCorrect reports whether the answer at index i matches the question.
func (q Question) IsCorrect(answer int) bool {
	return answer == q.CorrectIndex
}

// OptionLabel returns the letter shown next to option i ("A" for 0).
func OptionLabel(i int) string {
	if i < 0 || i >= 26 {
		return "?"
	}
	return string(rune('A' + i))
}
