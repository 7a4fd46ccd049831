package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/quizcraft/quizcraft-backend/internal/generation"
	"github.com/quizcraft/quizcraft-backend/internal/middleware"
	"github.com/quizcraft/quizcraft-backend/internal/model"
	"github.com/quizcraft/quizcraft-backend/internal/quizgen"
	"github.com/quizcraft/quizcraft-backend/internal/response"
	"github.com/quizcraft/quizcraft-backend/internal/service"
	"github.com/quizcraft/quizcraft-backend/internal/textextract"
	"github.com/quizcraft/quizcraft-backend/internal/textsource"
	"github.com/quizcraft/quizcraft-backend/internal/validator"
	"github.com/rs/zerolog"
)

const maxQuestionCount = 20

// QuizHandler handles quiz generation and history endpoints.
type QuizHandler struct {
	quizzes *service.QuizService
	uploads *service.UploadService
	log     zerolog.Logger
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizzes *service.QuizService, uploads *service.UploadService, log zerolog.Logger) *QuizHandler {
	return &QuizHandler{
		quizzes: quizzes,
		uploads: uploads,
		log:     log.With().Str("component", "quiz_handler").Logger(),
	}
}

// Generate handles POST /api/v1/quizzes/generate.
func (h *QuizHandler) Generate(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.GenerateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		failValidation(c, fields)
		return
	}

	quiz, err := h.quizzes.GenerateFromTopic(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		h.failGeneration(c, err)
		return
	}

	response.Success(c, http.StatusCreated, quiz)
}

// GenerateFromFile handles POST /api/v1/quizzes/generate-from-file. The
// document travels as a multipart upload in the "document" field.
func (h *QuizHandler) GenerateFromFile(c *gin.Context) {
	claims := middleware.GetClaims(c)

	header, err := c.FormFile("document")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}

	numQuestions, fields := parseQuestionCount(c.PostForm("numberOfQuestions"))
	if fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	path, mimeType, err := h.uploads.SaveDocument(header)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedFileType):
			response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
		case errors.Is(err, service.ErrFileTooLarge):
			response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
		default:
			h.log.Error().Err(err).Msg("document upload failed")
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	quiz, err := h.quizzes.GenerateFromFile(c.Request.Context(), claims.UserID, path, mimeType, header.Filename, numQuestions)
	if err != nil {
		h.failGeneration(c, err)
		return
	}

	response.Success(c, http.StatusCreated, quiz)
}

// GenerateFromURL handles POST /api/v1/quizzes/generate-from-url.
func (h *QuizHandler) GenerateFromURL(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.GenerateFromURLRequest
	if fields := validator.Bind(c, &req); fields != nil {
		failValidation(c, fields)
		return
	}

	quiz, err := h.quizzes.GenerateFromURL(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		h.failGeneration(c, err)
		return
	}

	response.Success(c, http.StatusCreated, quiz)
}

// History handles GET /api/v1/quizzes/history.
func (h *QuizHandler) History(c *gin.Context) {
	claims := middleware.GetClaims(c)

	quizzes, err := h.quizzes.History(c.Request.Context(), claims.UserID)
	if err != nil {
		h.log.Error().Err(err).Msg("history lookup failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if quizzes == nil {
		quizzes = []model.Quiz{}
	}

	response.Success(c, http.StatusOK, quizzes)
}

// failGeneration maps the generation pipeline's errors onto API responses.
func (h *QuizHandler) failGeneration(c *gin.Context, err error) {
	var malformed *quizgen.MalformedOutputError

	switch {
	case errors.Is(err, service.ErrGenerationInProgress):
		response.Fail(c, http.StatusConflict, response.ErrGenerationInProgress)
	case errors.Is(err, textextract.ErrUnsupportedType):
		response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
	case errors.Is(err, textextract.ErrNoContent):
		response.Fail(c, http.StatusBadRequest, response.ErrEmptyDocument)
	case errors.Is(err, textsource.ErrInvalidVideoURL):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidVideoURL)
	case errors.Is(err, textsource.ErrNoCaptions):
		response.Fail(c, http.StatusBadRequest, response.ErrNoCaptions)
	case errors.Is(err, generation.ErrUpstreamUnavailable):
		response.Fail(c, http.StatusBadGateway, response.ErrUpstreamUnavailable)
	case errors.As(err, &malformed):
		response.Fail(c, http.StatusInternalServerError, response.ErrGenerationUnparseable)
	case errors.Is(err, quizgen.ErrInvalidPayload):
		response.Fail(c, http.StatusInternalServerError, response.ErrInvalidQuizPayload)
	default:
		h.log.Error().Err(err).Msg("quiz generation failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// parseQuestionCount parses the optional numberOfQuestions form field.
func parseQuestionCount(raw string) (int, map[string]string) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > maxQuestionCount {
		return 0, map[string]string{
			"numberOfQuestions": "numberOfQuestions must be a number between 1 and 20",
		}
	}
	return n, nil
}
