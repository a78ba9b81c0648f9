package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/bigy003/Compta-sub000/internal/dto"
	"github.com/bigy003/Compta-sub000/internal/middleware"
	"github.com/bigy003/Compta-sub000/internal/usecases"
	"github.com/bigy003/Compta-sub000/internal/utils"
	"github.com/gin-gonic/gin"
)

// bindJSON binds the request body or writes a 400 with readable validation
// messages and returns false
func bindJSON(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Success: false,
			Message: "Invalid request data",
			Error:   utils.FormatValidationError(err).Error(),
		})
		return false
	}
	return true
}

// errorStatus maps the use case sentinel errors to HTTP statuses. Anything
// unrecognized is a 500.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, usecases.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecases.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, usecases.ErrInvalidRule):
		return http.StatusUnprocessableEntity
	case errors.Is(err, usecases.ErrConfigurationMissing):
		return http.StatusPreconditionFailed
	case errors.Is(err, usecases.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error, message string) {
	c.JSON(errorStatus(err), dto.ErrorResponse{
		Success: false,
		Message: message,
		Error:   err.Error(),
	})
}

// companyID resolves the authenticated company or writes a 401 and returns false
func companyID(c *gin.Context) (uint, bool) {
	id, exists := middleware.GetCompanyID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Success: false,
			Message: "User not authenticated",
			Error:   "company ID not found in context",
		})
		return 0, false
	}
	return id, true
}

// pathID parses a numeric path parameter or writes a 400 and returns false
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Success: false,
			Message: "Invalid " + name + " parameter",
			Error:   err.Error(),
		})
		return 0, false
	}
	return uint(id), true
}

// asOfQuery parses the optional as_of query parameter, accepting RFC3339 or a
// plain date; it defaults to now
func asOfQuery(c *gin.Context) (time.Time, bool) {
	raw := c.Query("as_of")
	if raw == "" {
		return time.Now(), true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Success: false,
		Message: "Invalid as_of parameter",
		Error:   "as_of must be RFC3339 or YYYY-MM-DD",
	})
	return time.Time{}, false
}

// dateQuery parses an optional date query parameter into a *time.Time
func dateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, true
	}
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Success: false,
		Message: "Invalid " + name + " parameter",
		Error:   name + " must be RFC3339 or YYYY-MM-DD",
	})
	return nil, false
}
