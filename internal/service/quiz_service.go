package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/quizcraft/quizcraft-backend/internal/config"
	"github.com/quizcraft/quizcraft-backend/internal/generation"
	"github.com/quizcraft/quizcraft-backend/internal/model"
	"github.com/quizcraft/quizcraft-backend/internal/quizgen"
	"github.com/quizcraft/quizcraft-backend/internal/textextract"
	"github.com/quizcraft/quizcraft-backend/internal/textsource"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	defaultQuestionCount = 5
	historyCacheTTL      = time.Minute
)

var (
	// ErrGenerationInProgress means the user already has a generation
	// running.
	ErrGenerationInProgress = errors.New("a quiz generation is already in progress")

	// ErrPersistence means the quiz was generated but could not be stored.
	ErrPersistence = errors.New("quiz could not be saved")
)

// quizStore is the subset of QuizRepository the service needs.
type quizStore interface {
	Create(ctx context.Context, quiz *model.Quiz) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.Quiz, error)
}

// QuizService orchestrates quiz generation end to end: source text
// acquisition, prompting, output parsing, option shuffling and storage.
type QuizService struct {
	quizzes   quizStore
	generator generation.Generator
	videos    textsource.VideoSource
	rdb       *redis.Client
	cfg       *config.Config
	log       zerolog.Logger

	// rng seeds the option shuffle. Nil means the shared locked source,
	// which is what production uses; tests inject a seeded one.
	rng *rand.Rand
}

// NewQuizService creates a new QuizService. rdb may be nil, in which case
// the per-user generation lock and history cache are disabled.
func NewQuizService(
	quizzes quizStore,
	generator generation.Generator,
	videos textsource.VideoSource,
	rdb *redis.Client,
	cfg *config.Config,
	log zerolog.Logger,
) *QuizService {
	return &QuizService{
		quizzes:   quizzes,
		generator: generator,
		videos:    videos,
		rdb:       rdb,
		cfg:       cfg,
		log:       log.With().Str("component", "quiz_service").Logger(),
	}
}

// GenerateFromTopic generates a quiz from a free-form topic string.
func (s *QuizService) GenerateFromTopic(ctx context.Context, userID uuid.UUID, req *model.GenerateRequest) (*model.Quiz, error) {
	return s.generate(ctx, userID, req.Topic, req.Topic, req.NumberOfQuestions)
}

// GenerateFromFile extracts text from an uploaded document at path and
// generates a quiz from it. The file is removed before returning.
func (s *QuizService) GenerateFromFile(ctx context.Context, userID uuid.UUID, path, mimeType, filename string, numQuestions int) (*model.Quiz, error) {
	defer func() {
		if err := removeFile(path); err != nil {
			s.log.Warn().Err(err).Str("path", path).Msg("failed to remove temp upload")
		}
	}()

	text, err := textextract.ExtractText(path, mimeType)
	if err != nil {
		return nil, err
	}
	return s.generate(ctx, userID, "Quiz from "+filename, text, numQuestions)
}

// GenerateFromURL fetches a video transcript and generates a quiz from it.
func (s *QuizService) GenerateFromURL(ctx context.Context, userID uuid.UUID, req *model.GenerateFromURLRequest) (*model.Quiz, error) {
	title, transcript, err := s.videos.FetchTranscript(ctx, req.URL)
	if err != nil {
		return nil, err
	}
	if title == "" {
		title = "Video Quiz"
	}
	return s.generate(ctx, userID, title, transcript, req.NumberOfQuestions)
}

// History returns the user's most recent quizzes, newest first.
func (s *QuizService) History(ctx context.Context, userID uuid.UUID) ([]model.Quiz, error) {
	key := config.CacheKey.QuizHistoryKey(userID.String())

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Bytes()
		if err == nil {
			var quizzes []model.Quiz
			if err := json.Unmarshal(cached, &quizzes); err == nil {
				return quizzes, nil
			}
			// Corrupt cache entry, fall through to the database.
			s.rdb.Del(ctx, key)
		}
	}

	quizzes, err := s.quizzes.ListByUser(ctx, userID, s.cfg.HistoryLimit)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if encoded, err := json.Marshal(quizzes); err == nil {
			if err := s.rdb.Set(ctx, key, encoded, historyCacheTTL).Err(); err != nil {
				s.log.Warn().Err(err).Msg("failed to cache quiz history")
			}
		}
	}
	return quizzes, nil
}

func (s *QuizService) generate(ctx context.Context, userID uuid.UUID, topic, source string, numQuestions int) (*model.Quiz, error) {
	release, err := s.acquireLock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer release()

	if numQuestions <= 0 {
		numQuestions = defaultQuestionCount
	}

	prompt := generation.BuildPrompt(source, numQuestions, s.cfg.MaxSourceChars)

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	payload, err := quizgen.ExtractPayload(raw)
	if err != nil {
		var malformed *quizgen.MalformedOutputError
		if errors.As(err, &malformed) {
			s.log.Error().
				Str("reason", malformed.Reason).
				Str("raw_output", malformed.Raw).
				Msg("model returned unparseable output")
		}
		return nil, err
	}

	questions, err := quizgen.PrepareQuestions(s.rng, payload.Questions)
	if err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		Topic:     topic,
		Questions: questions,
		UserID:    userID,
	}
	if err := s.quizzes.Create(ctx, quiz); err != nil {
		s.log.Error().Err(err).Msg("failed to persist quiz")
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.invalidateHistory(ctx, userID)

	s.log.Info().
		Str("quiz_id", quiz.ID.String()).
		Str("user_id", userID.String()).
		Int("questions", len(quiz.Questions)).
		Msg("quiz generated")
	return quiz, nil
}

// acquireLock takes the per-user generation lock. The returned release
// function is always safe to call.
func (s *QuizService) acquireLock(ctx context.Context, userID uuid.UUID) (func(), error) {
	if s.rdb == nil {
		return func() {}, nil
	}

	key := config.CacheKey.GenerationLockKey(userID.String())
	ttl := 2 * s.cfg.GenerationTimeout

	ok, err := s.rdb.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		// Redis being down should not block generation.
		s.log.Warn().Err(err).Msg("generation lock unavailable")
		return func() {}, nil
	}
	if !ok {
		return func() {}, ErrGenerationInProgress
	}

	return func() {
		if err := s.rdb.Del(context.WithoutCancel(ctx), key).Err(); err != nil {
			s.log.Warn().Err(err).Msg("failed to release generation lock")
		}
	}, nil
}

func removeFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *QuizService) invalidateHistory(ctx context.Context, userID uuid.UUID) {
	if s.rdb == nil {
		return
	}
	key := config.CacheKey.QuizHistoryKey(userID.String())
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		s.log.Warn().Err(err).Msg("failed to invalidate history cache")
	}
}
