package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizcraft/quizcraft-backend/internal/middleware"
	"github.com/quizcraft/quizcraft-backend/internal/model"
	"github.com/quizcraft/quizcraft-backend/internal/repository"
	"github.com/quizcraft/quizcraft-backend/internal/response"
	"github.com/quizcraft/quizcraft-backend/internal/service"
	"github.com/quizcraft/quizcraft-backend/internal/validator"
	"github.com/rs/zerolog"
)

// AuthHandler handles registration, login and profile endpoints.
type AuthHandler struct {
	users   *service.UserService
	uploads *service.UploadService
	log     zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users *service.UserService, uploads *service.UploadService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		users:   users,
		uploads: uploads,
		log:     log.With().Str("component", "auth_handler").Logger(),
	}
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		failValidation(c, fields)
		return
	}

	user, token, err := h.users.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			response.Fail(c, http.StatusConflict, response.ErrDuplicateAccount)
			return
		}
		h.log.Error().Err(err).Msg("registration failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user":  user,
		"token": token,
	})
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		failValidation(c, fields)
		return
	}

	user, token, err := h.users.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		h.log.Error().Err(err).Msg("login failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}

// Me handles GET /api/v1/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)

	user, err := h.users.GetProfile(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		h.log.Error().Err(err).Msg("profile lookup failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, user)
}

// UpdateProfile handles PUT /api/v1/auth/me. The body is multipart form
// data so the profile picture can travel with the other fields.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.UpdateProfileRequest
	if fields := validator.BindForm(c, &req); fields != nil {
		failValidation(c, fields)
		return
	}

	var avatarURL string
	if header, err := c.FormFile("profilePicture"); err == nil {
		avatarURL, err = h.uploads.SaveAvatar(header)
		if err != nil {
			h.failUpload(c, err)
			return
		}
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), claims.UserID, &req, avatarURL)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			response.Fail(c, http.StatusBadRequest, response.ErrWrongPassword)
		case errors.Is(err, repository.ErrDuplicateUser):
			response.Fail(c, http.StatusConflict, response.ErrDuplicateAccount)
		case errors.Is(err, repository.ErrUserNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		default:
			h.log.Error().Err(err).Msg("profile update failed")
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, user)
}

func (h *AuthHandler) failUpload(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnsupportedFileType):
		response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
	case errors.Is(err, service.ErrFileTooLarge):
		response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
	default:
		h.log.Error().Err(err).Msg("upload failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
