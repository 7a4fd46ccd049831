package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizcraft/quizcraft-backend/internal/response"
)

// failValidation reports a binding failure. A body that could not be
// parsed at all (the translator's single "detail" entry) is reported as
// an invalid payload; anything else is field-level validation.
func failValidation(c *gin.Context, fields map[string]string) {
	if _, ok := fields["detail"]; ok && len(fields) == 1 {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidPayload, fields)
		return
	}
	response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
}
