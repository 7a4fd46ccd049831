package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/quizcraft/quizcraft-backend/internal/quizgen"
)

// Quiz is a persisted record of one generated quiz. Questions are
// stored as a jsonb document; the record is insert-only.
type Quiz struct {
	ID        uuid.UUID          `json:"id"`
	Topic     string             `json:"topic"`
	Questions []quizgen.Question `json:"questions"`
	UserID    uuid.UUID          `json:"user"`
	CreatedAt time.Time          `json:"createdAt"`
}

// GenerateRequest is the payload for topic-based generation.
type GenerateRequest struct {
	Topic             string `json:"topic" binding:"required,min=1,max=200"`
	NumberOfQuestions int    `json:"numberOfQuestions" binding:"omitempty,min=1,max=20"`
}

// GenerateFromURLRequest is the payload for video-based generation.
type GenerateFromURLRequest struct {
	URL               string `json:"url" binding:"required,url"`
	NumberOfQuestions int    `json:"numberOfQuestions" binding:"omitempty,min=1,max=20"`
}
