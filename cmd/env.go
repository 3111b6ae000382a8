package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizgen/internal/config"
	"github.com/abhisek/quizgen/internal/llm"
	"github.com/abhisek/quizgen/internal/logger"
	"github.com/abhisek/quizgen/internal/quizgen"
	"github.com/abhisek/quizgen/internal/store"
)

// env is the per-invocation wiring shared by every command: configuration,
// logger, quiz store and the model-call event log.
type env struct {
	cfg     config.Config
	log     *logger.Logger
	quizzes *store.QuizStore

	// events is nil when the event database could not be opened.
	events *store.Store
}

// loadEnv resolves configuration (flags override file and env), builds the
// logger and opens both stores.
func loadEnv(cmd *cobra.Command) (*env, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if p, _ := cmd.Flags().GetString("data"); p != "" {
		cfg.DataPath = p
	}
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		cfg.LogLevel = "debug"
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	quizzes, err := store.OpenQuizStore(cfg.DataPath, log)
	if err != nil {
		return nil, fmt.Errorf("open quiz store: %w", err)
	}

	e := &env{cfg: cfg, log: log, quizzes: quizzes}

	eventsPath := store.EventsPath(cfg.DataPath)
	if err := store.EnsureDir(eventsPath); err == nil {
		events, err := store.Open(eventsPath)
		if err != nil {
			log.Warn("event log unavailable", "path", eventsPath, "error", err)
		} else {
			e.events = events
		}
	}
	return e, nil
}

func (e *env) close() {
	if e.events != nil {
		if err := e.events.Close(); err != nil {
			e.log.Warn("close event log", "error", err)
		}
	}
	e.log.Sync()
}

// eventRepo returns the event log as an interface, nil when unavailable.
func (e *env) eventRepo() store.EventRepo {
	if e.events == nil {
		return nil
	}
	return e.events.EventRepo()
}

// requireEvents returns the event log or an error for commands that read it.
func (e *env) requireEvents() (*store.EventLog, error) {
	if e.events == nil {
		return nil, fmt.Errorf("event log at %s is unavailable", store.EventsPath(e.cfg.DataPath))
	}
	return e.events.EventRepo(), nil
}

// generator builds the model provider and the quiz generator on top of it.
func (e *env) generator(ctx context.Context) (*quizgen.Generator, error) {
	provider, err := llm.NewProvider(ctx, e.cfg.LLM, e.eventRepo(), e.log)
	if err != nil {
		return nil, withHint(fmt.Errorf("model provider not configured: %w", err),
			"Set GEMINI_API_KEY (or another provider key) or add an llm section to the config file")
	}
	e.log.Debug("model provider ready", "provider", e.cfg.LLM.Provider, "model", provider.ModelID())
	return quizgen.NewGenerator(provider, e.cfg.Quiz, e.log), nil
}

// isInteractive reports whether stdin and stdout are both terminals.
func isInteractive() bool {
	return term.IsTerminal(os.Stdin.Fd()) && term.IsTerminal(os.Stdout.Fd())
}

func terminalWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}
