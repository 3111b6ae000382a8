package cmd

import (
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizgen/internal/app"
	"github.com/abhisek/quizgen/internal/quiz"
	"github.com/abhisek/quizgen/internal/router"
	"github.com/abhisek/quizgen/internal/screen"
	"github.com/abhisek/quizgen/internal/screens/picker"
	"github.com/abhisek/quizgen/internal/screens/take"
	"github.com/abhisek/quizgen/internal/screens/topic"
	"github.com/abhisek/quizgen/internal/store"
	"github.com/abhisek/quizgen/internal/ui/components"
)

const recentQuizChoices = 5

var takeCmd = &cobra.Command{
	Use:     "take",
	Short:   "Take a quiz",
	Example: "  quizgen take --quiz-id abc12345\n  quizgen take",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		if id, _ := cmd.Flags().GetString("quiz-id"); id != "" {
			q, err := e.quizzes.QuizByID(id)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("quiz with ID %q not found", id)
			}
			if err != nil {
				return err
			}
			return app.Run(app.Options{Start: take.New(q, e.quizzes, e.log), Log: e.log})
		}

		recent, err := e.quizzes.RecentQuizzes(recentQuizChoices)
		if err != nil {
			return err
		}

		return app.Run(app.Options{Start: quizPicker(cmd, e, recent), Log: e.log})
	},
}

// quizPicker lists recent quizzes plus browse and generate entries.
func quizPicker(cmd *cobra.Command, e *env, recent []quiz.Quiz) screen.Screen {
	startQuiz := func(q *quiz.Quiz) screen.Screen {
		return take.New(q, e.quizzes, e.log)
	}

	items := quizItems(recent, startQuiz)

	items = append(items, components.MenuItem{
		Label: "Browse all quizzes",
		Action: func() tea.Cmd {
			all, err := e.quizzes.AllQuizzes()
			if err != nil {
				e.log.Warn("list quizzes", "error", err)
			}
			newestFirst := make([]quiz.Quiz, 0, len(all))
			for i := len(all) - 1; i >= 0; i-- {
				newestFirst = append(newestFirst, all[i])
			}
			return router.Push(picker.New("All Quizzes", "All quizzes (newest first)",
				"No quizzes found. Generate one first!", quizItems(newestFirst, startQuiz)))
		},
	})

	genItem := components.MenuItem{Label: "Generate new quiz"}
	gen, err := e.generator(cmd.Context())
	if err != nil {
		e.log.Debug("generation unavailable", "error", err)
		genItem.Disabled = true
		genItem.Detail = "(no model configured)"
	} else {
		genItem.Action = func() tea.Cmd {
			return router.Push(topic.New(gen, e.quizzes, e.cfg.DefaultQuestions, startQuiz, e.log))
		}
	}
	items = append(items, genItem)

	return picker.New("Take a Quiz", "Recent quizzes", "", items)
}

func quizItems(quizzes []quiz.Quiz, start func(*quiz.Quiz) screen.Screen) []components.MenuItem {
	items := make([]components.MenuItem, 0, len(quizzes))
	for i := range quizzes {
		q := &quizzes[i]
		items = append(items, components.MenuItem{
			Label:  q.Topic,
			Detail: fmt.Sprintf("(ID: %s, %d questions)", q.ID, len(q.Questions)),
			Action: func() tea.Cmd { return router.Push(start(q)) },
		})
	}
	return items
}

func init() {
	takeCmd.Flags().String("quiz-id", "", "ID of the quiz to take")
}
