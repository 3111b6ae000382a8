package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizgen/internal/quiz"
	"github.com/abhisek/quizgen/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "View quiz statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()
		return printStats(cmd.OutOrStdout(), e.quizzes)
	},
}

func printStats(w io.Writer, s *store.QuizStore) error {
	st, err := s.Stats()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "QUIZ STATISTICS")
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "\nQuizzes Generated: %d\n", st.TotalQuizzes)
	fmt.Fprintf(w, "Quiz Attempts:     %d\n", st.TotalResults)
	fmt.Fprintf(w, "Recent Quizzes:    %d\n", st.RecentQuizzes)
	fmt.Fprintf(w, "Recent Results:    %d\n", st.RecentResults)

	results, err := s.AllResults()
	if err != nil {
		return err
	}
	if perf := quiz.Summarize(results); perf.Attempts > 0 {
		fmt.Fprintf(w, "\nAverage Score: %.1f%%\n", perf.AveragePercent)
		if perf.Best != nil {
			if q, err := s.QuizByID(perf.Best.QuizID); err == nil {
				fmt.Fprintf(w, "Best Performance: %.1f%% on '%s'\n", perf.Best.Percent(), q.Topic)
			}
		}
	}

	fmt.Fprintf(w, "\nData file: %s\n", s.Path())
	fmt.Fprintf(w, "Data size: %d records\n", st.TotalQuizzes+st.TotalResults)
	return nil
}
