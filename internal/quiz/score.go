package quiz

import (
	"fmt"
	"time"
)

// Score counts the answers that match their question's correct index.
// Extra answers beyond len(questions) are ignored.
func Score(questions []Question, answers []int) int {
	score := 0
	for i, q := range questions {
		if i >= len(answers) {
			break
		}
		if q.IsCorrect(answers[i]) {
			score++
		}
	}
	return score
}

// NewResult scores a completed attempt. It requires one answer per question,
// each a valid option index.
func NewResult(q *Quiz, id string, answers []int, completedAt time.Time) (Result, error) {
	if len(answers) != len(q.Questions) {
		return Result{}, fmt.Errorf("got %d answers for %d questions", len(answers), len(q.Questions))
	}
	for i, a := range answers {
		if a < 0 || a >= OptionCount {
			return Result{}, fmt.Errorf("answer %d out of range: %d", i+1, a)
		}
	}

	stored := make([]int, len(answers))
	copy(stored, answers)

	return Result{
		ID:             id,
		QuizID:         q.ID,
		UserAnswers:    stored,
		Score:          Score(q.Questions, answers),
		TotalQuestions: len(q.Questions),
		CompletedAt:    completedAt,
	}, nil
}

// Rating returns the encouragement line shown with a score.
func Rating(percent float64) string {
	switch {
	case percent >= 80:
		return "Excellent work!"
	case percent >= 60:
		return "Good job!"
	default:
		return "Keep learning!"
	}
}

// Performance aggregates scores across attempts.
type Performance struct {
	Attempts       int
	AveragePercent float64

	// Best is the attempt with the highest score ratio, nil with no attempts.
	Best *Result
}

// Summarize computes the overall average (total correct over total asked)
// and the best attempt. Ties keep the earliest attempt.
func Summarize(results []Result) Performance {
	p := Performance{Attempts: len(results)}

	var correct, asked int
	bestRatio := -1.0
	for i := range results {
		r := results[i]
		correct += r.Score
		asked += r.TotalQuestions
		if r.TotalQuestions == 0 {
			continue
		}
		ratio := float64(r.Score) / float64(r.TotalQuestions)
		if ratio > bestRatio {
			bestRatio = ratio
			p.Best = &results[i]
		}
	}

	if asked > 0 {
		p.AveragePercent = float64(correct) / float64(asked) * 100
	}
	return p
}

// BestScore returns the highest score among results, 0 when empty.
func BestScore(results []Result) int {
	best := 0
	for _, r := range results {
		if r.Score > best {
			best = r.Score
		}
	}
	return best
}
