package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizgen/internal/ui/banner"
)

const helpText = `COMMAND REFERENCE

  generate [--topic TOPIC] [--questions N] [--no-take]
      Create a new quiz. If no topic is given you will be prompted.
      Example: quizgen generate --topic "Space Exploration" --questions 10

  take [--quiz-id ID]
      Take a quiz. Without an ID, choose from recent quizzes, browse all
      of them or generate a new one.
      Example: quizgen take --quiz-id abc12345

  history
      View your quiz and result history.

  review [--result-id ID] [--plain]
      Review a past attempt with explanations. The ID may be a result ID
      or a quiz ID (its latest attempt).

  stats
      View statistics.

  llm list|view|stats
      Inspect logged model calls, token usage and estimated cost.

  version
      Print the version.

GLOBAL FLAGS

  --data PATH     quiz data file (default $XDG_DATA_HOME/quizgen/quizzes.json)
  --config PATH   config file (default $XDG_CONFIG_HOME/quizgen/config.yaml)
  -v, --verbose   debug logging on stderr

TIPS

  • Quiz IDs are short 8-character codes shown when you generate a quiz.
  • You can review any quiz you have taken to see explanations.
  • Set GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or
    OPENROUTER_API_KEY to pick a model provider.

EXAMPLE WORKFLOW

  1. quizgen generate --topic "Python Programming"
  2. quizgen take        (choose the quiz from the list)
  3. quizgen review      (see your results with explanations)
`

var helpCmd = &cobra.Command{
	Use:   "help [command]",
	Short: "Show detailed help",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			target, _, err := rootCmd.Find(args)
			if err != nil || target == rootCmd {
				return fmt.Errorf("unknown help topic %q", args[0])
			}
			return target.Help()
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, banner.Render(terminalWidth()))
		fmt.Fprintln(out)
		fmt.Fprint(out, helpText)
		return nil
	},
}
