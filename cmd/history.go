package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizgen/internal/quiz"
	"github.com/abhisek/quizgen/internal/store"
)

const (
	historyQuizzes = 10
	historyResults = 5
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View quiz and result history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()
		return printHistory(cmd.OutOrStdout(), e.quizzes)
	},
}

func printHistory(w io.Writer, s *store.QuizStore) error {
	fmt.Fprintln(w, "QUIZ HISTORY")
	fmt.Fprintln(w, strings.Repeat("=", 60))

	quizzes, err := s.RecentQuizzes(historyQuizzes)
	if err != nil {
		return err
	}
	if len(quizzes) == 0 {
		fmt.Fprintln(w, "No quizzes found yet. Generate one with 'quizgen generate'!")
		return nil
	}

	fmt.Fprintln(w, "\nRecent Quizzes:")
	for _, q := range quizzes {
		results, err := s.ResultsForQuiz(q.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  • %s\n", q.Topic)
		fmt.Fprintf(w, "    ID: %s | Questions: %d\n", q.ID, len(q.Questions))
		fmt.Fprintf(w, "    Created: %s\n", q.CreatedAt.Local().Format("2006-01-02"))
		if len(results) > 0 {
			fmt.Fprintf(w, "    Attempts: %d | Best: %d/%d\n", len(results), quiz.BestScore(results), len(q.Questions))
		}
		fmt.Fprintln(w)
	}

	results, err := s.RecentResults(historyResults)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return nil
	}

	fmt.Fprintln(w, "Recent Results:")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	for _, r := range results {
		topic := "Unknown"
		if q, err := s.QuizByID(r.QuizID); err == nil {
			topic = q.Topic
		}
		fmt.Fprintf(w, "  • %s: %d/%d\n", topic, r.Score, r.TotalQuestions)
		if r.ID != "" {
			fmt.Fprintf(w, "    Result ID: %s\n", r.ID)
		}
		fmt.Fprintf(w, "    Completed: %s\n", r.CompletedAt.Local().Format("2006-01-02 15:04"))
		fmt.Fprintln(w)
	}
	return nil
}
