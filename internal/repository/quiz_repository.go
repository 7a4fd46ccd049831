package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quizcraft/quizcraft-backend/internal/model"
	"github.com/quizcraft/quizcraft-backend/internal/quizgen"
)

// QuizRepository handles quiz data access. Quiz rows are insert-only;
// there is no update path.
type QuizRepository struct {
	pool *pgxpool.Pool
}

// NewQuizRepository creates a new QuizRepository.
func NewQuizRepository(pool *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{pool: pool}
}

// Create inserts a quiz in a single statement. Questions travel as one
// jsonb document, so a quiz is either fully stored or not at all.
func (r *QuizRepository) Create(ctx context.Context, quiz *model.Quiz) error {
	questions, err := json.Marshal(quiz.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}

	return r.pool.QueryRow(ctx,
		`INSERT INTO quizzes (user_id, topic, questions)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		quiz.UserID, quiz.Topic, questions,
	).Scan(&quiz.ID, &quiz.CreatedAt)
}

// ListByUser retrieves a user's quizzes, newest first, capped at limit.
func (r *QuizRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.Quiz, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, topic, questions, created_at
		 FROM quizzes WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`, userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []model.Quiz
	for rows.Next() {
		var (
			quiz model.Quiz
			raw  []byte
		)
		if err := rows.Scan(&quiz.ID, &quiz.UserID, &quiz.Topic, &raw, &quiz.CreatedAt); err != nil {
			return nil, err
		}

		var questions []quizgen.Question
		if err := json.Unmarshal(raw, &questions); err != nil {
			return nil, fmt.Errorf("unmarshal questions for quiz %s: %w", quiz.ID, err)
		}
		quiz.Questions = questions

		quizzes = append(quizzes, quiz)
	}
	return quizzes, rows.Err()
}
