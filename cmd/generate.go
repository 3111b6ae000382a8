package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizgen/internal/app"
	"github.com/abhisek/quizgen/internal/quizgen"
	"github.com/abhisek/quizgen/internal/screens/take"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new quiz on a topic",
	Example: `  quizgen generate --topic "Space Exploration" --questions 10
  quizgen generate`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		out := cmd.OutOrStdout()
		p := newPrompter(cmd.InOrStdin(), out)

		count := e.cfg.DefaultQuestions
		if cmd.Flags().Changed("questions") {
			count, _ = cmd.Flags().GetInt("questions")
		}
		if err := quizgen.CheckCount(count); err != nil {
			return withHint(err, quizgen.Hint(err))
		}

		topic, _ := cmd.Flags().GetString("topic")
		if topic == "" {
			topic, err = p.line("Enter a topic for the quiz: ")
			if err != nil {
				return err
			}
		}

		topic = strings.TrimSpace(topic)
		if err := quizgen.CheckTopic(topic); err != nil {
			return withHint(err, quizgen.Hint(err))
		}

		gen, err := e.generator(cmd.Context())
		if err != nil {
			return err
		}

		prior, err := e.quizzes.QuestionsForTopic(topic)
		if err != nil {
			e.log.Warn("load earlier questions", "topic", topic, "error", err)
		}

		fmt.Fprintf(out, "\nGenerating %d-question quiz about '%s'...\n", count, topic)
		q, err := gen.GenerateRequest(cmd.Context(), quizgen.Request{
			Topic:          topic,
			Count:          count,
			PriorQuestions: prior,
		})
		if err != nil {
			return withHint(err, quizgen.Hint(err))
		}
		if err := e.quizzes.SaveQuiz(q); err != nil {
			return fmt.Errorf("save quiz: %w", err)
		}

		fmt.Fprintln(out, "Quiz generated successfully!")
		fmt.Fprintf(out, "   ID:        %s\n", q.ID)
		fmt.Fprintf(out, "   Topic:     %s\n", q.Topic)
		fmt.Fprintf(out, "   Questions: %d\n", len(q.Questions))
		fmt.Fprintf(out, "   Created:   %s\n", q.CreatedAt.Local().Format("2006-01-02 15:04"))
		if len(q.Questions) < count {
			fmt.Fprintf(out, "   (%d of the %d requested questions passed validation)\n", len(q.Questions), count)
		}

		noTake, _ := cmd.Flags().GetBool("no-take")
		if noTake || !isInteractive() {
			fmt.Fprintf(out, "\nTake it later with: quizgen take --quiz-id %s\n", q.ID)
			return nil
		}

		fmt.Fprintln(out)
		if !p.confirm("Take quiz now?", true) {
			return nil
		}
		return app.Run(app.Options{
			Start: take.New(q, e.quizzes, e.log),
			Log:   e.log,
		})
	},
}

func init() {
	generateCmd.Flags().StringP("topic", "t", "", "Topic for the quiz (prompted when omitted)")
	generateCmd.Flags().IntP("questions", "n", quizgen.DefaultQuestions, fmt.Sprintf("Number of questions (%d-%d)", quizgen.MinQuestions, quizgen.MaxQuestions))
	generateCmd.Flags().Bool("no-take", false, "Do not offer to take the quiz afterwards")
}

