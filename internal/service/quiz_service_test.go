package service

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/quizcraft/quizcraft-backend/internal/config"
	"github.com/quizcraft/quizcraft-backend/internal/model"
	"github.com/quizcraft/quizcraft-backend/internal/quizgen"
	"github.com/quizcraft/quizcraft-backend/internal/textextract"
	"github.com/quizcraft/quizcraft-backend/internal/textsource"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wellFormedOutput = "```json\n" + `{
  "questions": [
    {
      "question": "What is 2 + 2?",
      "options": {"A": "3", "B": "4", "C": "5", "D": "6"},
      "correctAnswer": "B"
    },
    {
      "question": "What is the capital of France?",
      "options": {"A": "Paris", "B": "Berlin", "C": "Madrid", "D": "Rome"},
      "correctAnswer": "A"
    }
  ]
}` + "\n```"

type fakeStore struct {
	created    []*model.Quiz
	createErr  error
	quizzes    []model.Quiz
	listErr    error
	lastUserID uuid.UUID
	lastLimit  int
}

func (f *fakeStore) Create(_ context.Context, quiz *model.Quiz) error {
	if f.createErr != nil {
		return f.createErr
	}
	quiz.ID = uuid.New()
	quiz.CreatedAt = time.Now()
	f.created = append(f.created, quiz)
	return nil
}

func (f *fakeStore) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]model.Quiz, error) {
	f.lastUserID = userID
	f.lastLimit = limit
	return f.quizzes, f.listErr
}

type fakeGenerator struct {
	output     string
	err        error
	lastPrompt string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.output, f.err
}

type fakeVideoSource struct {
	title string
	text  string
	err   error
}

func (f *fakeVideoSource) FetchTranscript(_ context.Context, _ string) (string, string, error) {
	return f.title, f.text, f.err
}

func testConfig() *config.Config {
	return &config.Config{
		MaxSourceChars:    15000,
		HistoryLimit:      10,
		GenerationTimeout: time.Minute,
	}
}

func newTestService(store *fakeStore, gen *fakeGenerator, videos *fakeVideoSource) *QuizService {
	return NewQuizService(store, gen, videos, nil, testConfig(), zerolog.Nop())
}

func TestGenerateFromTopicStoresQuiz(t *testing.T) {
	store := &fakeStore{}
	gen := &fakeGenerator{output: wellFormedOutput}
	svc := newTestService(store, gen, nil)

	userID := uuid.New()
	quiz, err := svc.GenerateFromTopic(context.Background(), userID, &model.GenerateRequest{
		Topic:             "Basic arithmetic",
		NumberOfQuestions: 2,
	})
	require.NoError(t, err)
	require.Len(t, store.created, 1)

	assert.Equal(t, "Basic arithmetic", quiz.Topic)
	assert.Equal(t, userID, quiz.UserID)
	assert.NotEqual(t, uuid.Nil, quiz.ID)
	require.Len(t, quiz.Questions, 2)

	// Shuffling must keep the correct answer bound to its text.
	first := quiz.Questions[0]
	text, ok := first.OptionText(first.CorrectLabel)
	require.True(t, ok)
	assert.Equal(t, "4", text)

	assert.Contains(t, gen.lastPrompt, "Basic arithmetic")
	assert.Contains(t, gen.lastPrompt, "2 multiple choice questions")
}

func TestGenerateDefaultsQuestionCount(t *testing.T) {
	gen := &fakeGenerator{output: wellFormedOutput}
	svc := newTestService(&fakeStore{}, gen, nil)

	_, err := svc.GenerateFromTopic(context.Background(), uuid.New(), &model.GenerateRequest{
		Topic: "History",
	})
	require.NoError(t, err)
	assert.Contains(t, gen.lastPrompt, "5 multiple choice questions")
}

func TestGenerateMalformedOutput(t *testing.T) {
	store := &fakeStore{}
	gen := &fakeGenerator{output: "Sorry, I cannot help with that."}
	svc := newTestService(store, gen, nil)

	_, err := svc.GenerateFromTopic(context.Background(), uuid.New(), &model.GenerateRequest{Topic: "x"})

	var malformed *quizgen.MalformedOutputError
	require.ErrorAs(t, err, &malformed)
	assert.Empty(t, store.created)
}

func TestGenerateEmptyQuestions(t *testing.T) {
	gen := &fakeGenerator{output: `{"questions": []}`}
	svc := newTestService(&fakeStore{}, gen, nil)

	_, err := svc.GenerateFromTopic(context.Background(), uuid.New(), &model.GenerateRequest{Topic: "x"})
	assert.ErrorIs(t, err, quizgen.ErrInvalidPayload)
}

func TestGenerateUpstreamError(t *testing.T) {
	upstream := errors.New("boom")
	gen := &fakeGenerator{err: upstream}
	svc := newTestService(&fakeStore{}, gen, nil)

	_, err := svc.GenerateFromTopic(context.Background(), uuid.New(), &model.GenerateRequest{Topic: "x"})
	assert.ErrorIs(t, err, upstream)
}

func TestGeneratePersistFailure(t *testing.T) {
	store := &fakeStore{createErr: errors.New("connection refused")}
	gen := &fakeGenerator{output: wellFormedOutput}
	svc := newTestService(store, gen, nil)

	_, err := svc.GenerateFromTopic(context.Background(), uuid.New(), &model.GenerateRequest{Topic: "x"})
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestGenerateFromFileRemovesTempUpload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("The capital of France is Paris."), 0o644))

	gen := &fakeGenerator{output: wellFormedOutput}
	svc := newTestService(&fakeStore{}, gen, nil)

	quiz, err := svc.GenerateFromFile(context.Background(), uuid.New(), path, textextract.MimeTXT, "notes.txt", 2)
	require.NoError(t, err)
	assert.Equal(t, "Quiz from notes.txt", quiz.Topic)
	assert.Contains(t, gen.lastPrompt, "capital of France")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "temp upload should be removed")
}

func TestGenerateFromFileEmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("   \n"), 0o644))

	store := &fakeStore{}
	svc := newTestService(store, &fakeGenerator{output: wellFormedOutput}, nil)

	_, err := svc.GenerateFromFile(context.Background(), uuid.New(), path, textextract.MimeTXT, "empty.txt", 2)
	assert.ErrorIs(t, err, textextract.ErrNoContent)
	assert.Empty(t, store.created)
}

func TestGenerateFromURL(t *testing.T) {
	videos := &fakeVideoSource{title: "Intro to Go", text: "Go is a programming language."}
	gen := &fakeGenerator{output: wellFormedOutput}
	svc := newTestService(&fakeStore{}, gen, videos)

	quiz, err := svc.GenerateFromURL(context.Background(), uuid.New(), &model.GenerateFromURLRequest{
		URL: "https://youtube.com/watch?v=abc123def45",
	})
	require.NoError(t, err)
	assert.Equal(t, "Intro to Go", quiz.Topic)
	assert.Contains(t, gen.lastPrompt, "Go is a programming language.")
}

func TestGenerateFromURLFallbackTitle(t *testing.T) {
	videos := &fakeVideoSource{title: "", text: "some transcript"}
	svc := newTestService(&fakeStore{}, &fakeGenerator{output: wellFormedOutput}, videos)

	quiz, err := svc.GenerateFromURL(context.Background(), uuid.New(), &model.GenerateFromURLRequest{
		URL: "https://youtube.com/watch?v=abc123def45",
	})
	require.NoError(t, err)
	assert.Equal(t, "Video Quiz", quiz.Topic)
}

func TestGenerateFromURLNoCaptions(t *testing.T) {
	videos := &fakeVideoSource{err: textsource.ErrNoCaptions}
	svc := newTestService(&fakeStore{}, &fakeGenerator{}, videos)

	_, err := svc.GenerateFromURL(context.Background(), uuid.New(), &model.GenerateFromURLRequest{
		URL: "https://youtube.com/watch?v=abc123def45",
	})
	assert.ErrorIs(t, err, textsource.ErrNoCaptions)
}

func TestHistoryUsesConfiguredLimit(t *testing.T) {
	store := &fakeStore{quizzes: []model.Quiz{
		{ID: uuid.New(), Topic: "Newest"},
		{ID: uuid.New(), Topic: "Older"},
	}}
	svc := newTestService(store, &fakeGenerator{}, nil)

	quizzes, err := svc.History(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 10, store.lastLimit)
	require.Len(t, quizzes, 2)
	assert.Equal(t, "Newest", quizzes[0].Topic)
}

func TestHistoryQueriesOnlyRequestingUser(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, &fakeGenerator{}, nil)

	owner := uuid.New()
	_, err := svc.History(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, owner, store.lastUserID, "history must be scoped to the requesting user")

	other := uuid.New()
	_, err = svc.History(context.Background(), other)
	require.NoError(t, err)
	assert.Equal(t, other, store.lastUserID)
}

func TestGenerateShuffleSeedable(t *testing.T) {
	shuffled := func(seed int64) []quizgen.Question {
		svc := newTestService(&fakeStore{}, &fakeGenerator{output: wellFormedOutput}, nil)
		svc.rng = rand.New(rand.NewSource(seed))

		quiz, err := svc.GenerateFromTopic(context.Background(), uuid.New(), &model.GenerateRequest{
			Topic:             "x",
			NumberOfQuestions: 2,
		})
		require.NoError(t, err)
		return quiz.Questions
	}

	assert.Equal(t, shuffled(7), shuffled(7), "same seed must produce the same option order")
}
