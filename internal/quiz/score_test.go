package quiz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQuiz(correct ...int) *Quiz {
	q := &Quiz{ID: "abc12345", Topic: "Testing"}
	for i, c := range correct {
		q.Questions = append(q.Questions, Question{
			Text:         "Question " + OptionLabel(i),
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: c,
			Explanation:  "Because.",
		})
	}
	return q
}

func TestScore(t *testing.T) {
	q := testQuiz(0, 1, 2, 3, 0)
	assert.Equal(t, 3, Score(q.Questions, []int{0, 1, 0, 3, 1}))
	assert.Equal(t, 5, Score(q.Questions, []int{0, 1, 2, 3, 0}))
	assert.Equal(t, 0, Score(q.Questions, []int{1, 0, 0, 0, 1}))
}

func TestScore_ShortAnswers(t *testing.T) {
	q := testQuiz(0, 1, 2)
	assert.Equal(t, 1, Score(q.Questions, []int{0}))
	assert.Equal(t, 0, Score(q.Questions, nil))
}

func TestNewResult(t *testing.T) {
	q := testQuiz(0, 1, 2, 3, 0)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	r, err := NewResult(q, "r1", []int{0, 1, 0, 3, 1}, now)
	require.NoError(t, err)
	assert.Equal(t, "r1", r.ID)
	assert.Equal(t, q.ID, r.QuizID)
	assert.Equal(t, 3, r.Score)
	assert.Equal(t, 5, r.TotalQuestions)
	assert.Equal(t, now, r.CompletedAt)
	assert.InDelta(t, 60.0, r.Percent(), 0.001)
}

func TestNewResult_CopiesAnswers(t *testing.T) {
	q := testQuiz(0, 1)
	answers := []int{0, 1}
	r, err := NewResult(q, "r1", answers, time.Now())
	require.NoError(t, err)

	answers[0] = 3
	assert.Equal(t, []int{0, 1}, r.UserAnswers)
}

func TestNewResult_Errors(t *testing.T) {
	q := testQuiz(0, 1, 2)

	tests := []struct {
		name    string
		answers []int
	}{
		{"too few", []int{0, 1}},
		{"too many", []int{0, 1, 2, 3}},
		{"negative", []int{0, -1, 2}},
		{"out of range", []int{0, 1, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewResult(q, "r", tt.answers, time.Now())
			require.Error(t, err)
		})
	}
}

func TestRating(t *testing.T) {
	tests := []struct {
		percent float64
		want    string
	}{
		{100, "Excellent work!"},
		{80, "Excellent work!"},
		{79.9, "Good job!"},
		{60, "Good job!"},
		{59, "Keep learning!"},
		{0, "Keep learning!"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Rating(tt.percent), "percent %.1f", tt.percent)
	}
}

func TestSummarize(t *testing.T) {
	results := []Result{
		{QuizID: "a", Score: 3, TotalQuestions: 5},
		{QuizID: "b", Score: 4, TotalQuestions: 4},
		{QuizID: "c", Score: 1, TotalQuestions: 5},
		{QuizID: "d", Score: 2, TotalQuestions: 2},
	}

	p := Summarize(results)
	assert.Equal(t, 4, p.Attempts)
	assert.InDelta(t, 10.0/16.0*100, p.AveragePercent, 0.001)
	require.NotNil(t, p.Best)
	assert.Equal(t, "b", p.Best.QuizID, "ties keep the earliest attempt")
}

func TestSummarize_Empty(t *testing.T) {
	p := Summarize(nil)
	assert.Equal(t, 0, p.Attempts)
	assert.Zero(t, p.AveragePercent)
	assert.Nil(t, p.Best)
}

func TestBestScore(t *testing.T) {
	assert.Equal(t, 0, BestScore(nil))
	assert.Equal(t, 4, BestScore([]Result{{Score: 2}, {Score: 4}, {Score: 1}}))
}

func TestOptionLabel(t *testing.T) {
	assert.Equal(t, "A", OptionLabel(0))
	assert.Equal(t, "D", OptionLabel(3))
	assert.Equal(t, "?", OptionLabel(-1))
}
