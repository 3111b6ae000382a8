package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizgen/internal/ui/banner"
)

var rootCmd = &cobra.Command{
	Use:           "quizgen",
	Short:         "Generate and take quizzes on any topic",
	Long:          "Quizgen creates multiple-choice quizzes on any topic with an AI model and lets you take and review them in the terminal.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		printOverview(cmd)
		return nil
	},
}

// Execute runs the root command and reports a failure on stderr. An
// interrupt cancels the command context so in-flight model calls stop.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		var he *hintError
		if errors.As(err, &he) {
			fmt.Fprintln(os.Stderr, "Tip:", he.hint)
		}
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().String("data", "", "Path to the quiz data file (overrides QUIZGEN_DATA)")
	rootCmd.PersistentFlags().String("config", "", "Path to the config file (default $XDG_CONFIG_HOME/quizgen/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")

	rootCmd.SetHelpCommand(helpCmd)

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(takeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

func printOverview(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, banner.Render(terminalWidth()))
	fmt.Fprintln(out, "  Generate and take quizzes on any topic!")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Available commands:")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  generate   Create a new quiz")
	fmt.Fprintln(out, "  take       Take a quiz")
	fmt.Fprintln(out, "  history    View quiz history")
	fmt.Fprintln(out, "  review     Review past results")
	fmt.Fprintln(out, "  stats      View statistics")
	fmt.Fprintln(out, "  llm        Inspect model calls")
	fmt.Fprintln(out, "  help       Show detailed help")
	fmt.Fprintln(out)
	fmt.Fprintln(out, `Try 'quizgen generate --topic "Ancient Rome"' to get started!`)
}

// hintError attaches advice to an error for Execute to print.
type hintError struct {
	err  error
	hint string
}

func (e *hintError) Error() string { return e.err.Error() }
func (e *hintError) Unwrap() error { return e.err }

func withHint(err error, hint string) error {
	if err == nil {
		return nil
	}
	return &hintError{err: err, hint: hint}
}
