package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/quizgen/internal/logger"
	"github.com/abhisek/quizgen/internal/quiz"
)

// ErrNotFound is returned when a quiz or result ID is unknown.
var ErrNotFound = errors.New("not found")

// recentWindow is the number of entries Stats counts as recent.
const recentWindow = 5

// Metadata is the bookkeeping block of the quiz document.
type Metadata struct {
	CreatedAt    time.Time `json:"created_at"`
	TotalQuizzes int       `json:"total_quizzes"`
	TotalResults int       `json:"total_results"`
}

// Stats summarizes the quiz document.
type Stats struct {
	TotalQuizzes  int `json:"total_quizzes"`
	TotalResults  int `json:"total_results"`
	RecentQuizzes int `json:"recent_quizzes"`
	RecentResults int `json:"recent_results"`
}

type document struct {
	Quizzes  []quiz.Quiz   `json:"quizzes"`
	Results  []quiz.Result `json:"results"`
	Metadata Metadata      `json:"metadata"`
}

// QuizStore persists quizzes and results in a single JSON document that is
// rewritten wholesale on every save. It is safe for use by one process.
type QuizStore struct {
	mu   sync.Mutex
	path string
	log  *logger.Logger
	now  func() time.Time
}

// OpenQuizStore prepares the document at path, creating it and its parent
// directory when missing.
func OpenQuizStore(path string, log *logger.Logger) (*QuizStore, error) {
	if log == nil {
		log = logger.Nop()
	}
	if err := EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	s := &QuizStore{path: path, log: log.With("component", "quizstore"), now: time.Now}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the document location.
func (s *QuizStore) Path() string {
	return s.path
}

// SaveQuiz appends a quiz and rewrites the document.
func (s *QuizStore) SaveQuiz(q *quiz.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	doc.Quizzes = append(doc.Quizzes, *q)
	doc.Metadata.TotalQuizzes = len(doc.Quizzes)
	return s.write(doc)
}

// SaveResult appends a result and rewrites the document.
func (s *QuizStore) SaveResult(r quiz.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	doc.Results = append(doc.Results, r)
	doc.Metadata.TotalResults = len(doc.Results)
	return s.write(doc)
}

// QuizByID returns the first quiz with the given ID.
func (s *QuizStore) QuizByID(id string) (*quiz.Quiz, error) {
	doc, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	for i := range doc.Quizzes {
		if doc.Quizzes[i].ID == id {
			return &doc.Quizzes[i], nil
		}
	}
	return nil, fmt.Errorf("quiz %q: %w", id, ErrNotFound)
}

// AllQuizzes returns every quiz in insertion order.
func (s *QuizStore) AllQuizzes() ([]quiz.Quiz, error) {
	doc, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return doc.Quizzes, nil
}

// RecentQuizzes returns up to n of the most recently saved quizzes, newest
// first.
func (s *QuizStore) RecentQuizzes(n int) ([]quiz.Quiz, error) {
	doc, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return newestFirst(doc.Quizzes, n), nil
}

// AllResults returns every result in insertion order.
func (s *QuizStore) AllResults() ([]quiz.Result, error) {
	doc, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return doc.Results, nil
}

// RecentResults returns up to n of the most recently saved results, newest
// first.
func (s *QuizStore) RecentResults(n int) ([]quiz.Result, error) {
	doc, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return newestFirst(doc.Results, n), nil
}

// QuestionsForTopic returns the question texts of every quiz whose topic
// matches topic case-insensitively, oldest first.
func (s *QuizStore) QuestionsForTopic(topic string) ([]string, error) {
	doc, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	topic = strings.TrimSpace(topic)

	var out []string
	for _, q := range doc.Quizzes {
		if !strings.EqualFold(strings.TrimSpace(q.Topic), topic) {
			continue
		}
		for _, question := range q.Questions {
			out = append(out, question.Text)
		}
	}
	return out, nil
}

// ResultsForQuiz returns the results referencing quizID in insertion order.
func (s *QuizStore) ResultsForQuiz(quizID string) ([]quiz.Result, error) {
	doc, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	var out []quiz.Result
	for _, r := range doc.Results {
		if r.QuizID == quizID {
			out = append(out, r)
		}
	}
	return out, nil
}

// ResultByID resolves id as a result ID first, then as a quiz ID, in which
// case the latest attempt at that quiz is returned.
func (s *QuizStore) ResultByID(id string) (*quiz.Result, error) {
	doc, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	for i := range doc.Results {
		if doc.Results[i].ID != "" && doc.Results[i].ID == id {
			return &doc.Results[i], nil
		}
	}
	for i := len(doc.Results) - 1; i >= 0; i-- {
		if doc.Results[i].QuizID == id {
			return &doc.Results[i], nil
		}
	}
	return nil, fmt.Errorf("result %q: %w", id, ErrNotFound)
}

// Stats counts stored quizzes and results.
func (s *QuizStore) Stats() (Stats, error) {
	doc, err := s.snapshot()
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		TotalQuizzes:  len(doc.Quizzes),
		TotalResults:  len(doc.Results),
		RecentQuizzes: min(recentWindow, len(doc.Quizzes)),
		RecentResults: min(recentWindow, len(doc.Results)),
	}, nil
}

// Metadata returns the document's bookkeeping block.
func (s *QuizStore) Metadata() (Metadata, error) {
	doc, err := s.snapshot()
	if err != nil {
		return Metadata{}, err
	}
	return doc.Metadata, nil
}

func (s *QuizStore) snapshot() (*document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// load reads the document. A missing file is initialized; an unparseable
// one is moved aside to <path>.corrupt and replaced with an empty document.
// Callers hold s.mu.
func (s *QuizStore) load() (*document, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return s.initialize()
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		aside := s.path + ".corrupt"
		s.log.Warn("quiz data unreadable, reinitializing",
			"path", s.path, "moved_to", aside, "error", err)
		if err := os.Rename(s.path, aside); err != nil {
			return nil, fmt.Errorf("move corrupt data aside: %w", err)
		}
		return s.initialize()
	}
	return &doc, nil
}

func (s *QuizStore) initialize() (*document, error) {
	doc := &document{
		Quizzes:  []quiz.Quiz{},
		Results:  []quiz.Result{},
		Metadata: Metadata{CreatedAt: s.now().UTC()},
	}
	if err := s.write(doc); err != nil {
		return nil, err
	}
	s.log.Debug("initialized quiz data", "path", s.path)
	return doc, nil
}

// write replaces the document atomically via a temp file in the same dir.
func (s *QuizStore) write(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode quiz data: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".quizzes-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

// newestFirst returns the last n items in reverse order, none when n <= 0.
func newestFirst[T any](items []T, n int) []T {
	if n <= 0 {
		return []T{}
	}
	if n > len(items) {
		n = len(items)
	}
	out := make([]T, 0, n)
	for i := len(items) - 1; i >= len(items)-n; i-- {
		out = append(out, items[i])
	}
	return out
}
