package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizgen/internal/app"
	"github.com/abhisek/quizgen/internal/quiz"
	"github.com/abhisek/quizgen/internal/router"
	"github.com/abhisek/quizgen/internal/screen"
	"github.com/abhisek/quizgen/internal/screens/picker"
	"github.com/abhisek/quizgen/internal/screens/review"
	"github.com/abhisek/quizgen/internal/store"
	"github.com/abhisek/quizgen/internal/ui/components"
)

const recentResultChoices = 10

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review a past quiz with detailed explanations",
	Long: `Review a past attempt question by question with the correct answers and explanations.

--result-id accepts a result ID or a quiz ID. A quiz ID opens the latest attempt at that quiz.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		plain, _ := cmd.Flags().GetBool("plain")

		if id, _ := cmd.Flags().GetString("result-id"); id != "" {
			r, err := e.quizzes.ResultByID(id)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("result with ID %q not found", id)
			}
			if err != nil {
				return err
			}
			q, err := e.quizzes.QuizByID(r.QuizID)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("quiz for result %q not found", id)
			}
			if err != nil {
				return err
			}

			if plain || !isInteractive() {
				printReview(cmd.OutOrStdout(), q, *r)
				return nil
			}
			return app.Run(app.Options{Start: review.New(q, *r), Log: e.log})
		}

		recent, err := e.quizzes.RecentResults(recentResultChoices)
		if err != nil {
			return err
		}
		if len(recent) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No quiz results found. Take a quiz first!")
			return nil
		}
		if plain || !isInteractive() {
			return fmt.Errorf("choose a result with --result-id when not running in a terminal")
		}

		return app.Run(app.Options{Start: resultPicker(e, recent), Log: e.log})
	},
}

func resultPicker(e *env, results []quiz.Result) screen.Screen {
	items := make([]components.MenuItem, 0, len(results))
	for i := range results {
		r := results[i]
		q, err := e.quizzes.QuizByID(r.QuizID)
		topic := "Unknown topic"
		if err == nil {
			topic = q.Topic
		}

		item := components.MenuItem{
			Label:  topic,
			Detail: fmt.Sprintf("%d/%d  %s", r.Score, r.TotalQuestions, r.CompletedAt.Local().Format("2006-01-02")),
		}
		if q == nil {
			item.Disabled = true
			item.Detail += "  (quiz missing)"
		} else {
			item.Action = func() tea.Cmd { return router.Push(review.New(q, r)) }
		}
		items = append(items, item)
	}
	return picker.New("Review", "Recent results", "", items)
}

// printReview writes the review as plain text for non-interactive use.
func printReview(w io.Writer, q *quiz.Quiz, r quiz.Result) {
	sep := strings.Repeat("=", 60)
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "DETAILED REVIEW: %s\n", q.Topic)
	fmt.Fprintf(w, "Score: %d/%d (%.1f%%)\n", r.Score, r.TotalQuestions, r.Percent())
	fmt.Fprintln(w, sep)

	for i, question := range q.Questions {
		answer := -1
		if i < len(r.UserAnswers) {
			answer = r.UserAnswers[i]
		}
		status := "INCORRECT"
		if question.IsCorrect(answer) {
			status = "CORRECT"
		}

		fmt.Fprintf(w, "\nQ%d: %s\n", i+1, status)
		fmt.Fprintln(w, question.Text)
		for j, opt := range question.Options {
			marker := ""
			switch {
			case j == question.CorrectIndex:
				marker = "✓ "
			case j == answer:
				marker = "✗ "
			}
			fmt.Fprintf(w, "   %s) %s%s\n", quiz.OptionLabel(j), marker, opt)
		}
		fmt.Fprintf(w, "\nExplanation: %s\n", question.Explanation)
		fmt.Fprintln(w, strings.Repeat("-", 40))
	}
}

func init() {
	reviewCmd.Flags().String("result-id", "", "Result ID (or quiz ID for its latest attempt)")
	reviewCmd.Flags().Bool("plain", false, "Print the review as text instead of opening the interactive view")
}
