package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/examdesk/examdesk-backend/internal/access"
	"github.com/examdesk/examdesk-backend/internal/repository"
	"github.com/examdesk/examdesk-backend/internal/response"
	"github.com/examdesk/examdesk-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// failWith maps a service or repository error onto the response envelope.
// Unclassified errors are logged and reported as 500.
func failWith(c *gin.Context, log zerolog.Logger, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, ve.Fields)
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidCredentials)
	case errors.Is(err, access.ErrAuthenticationRequired):
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
	case errors.Is(err, access.ErrAccessDenied):
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
	case errors.Is(err, repository.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, repository.ErrChoiceInUse):
		response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}

// paginate slices items when the caller asks for a page.
// Without a "page" query the full list is returned and pagination is nil.
func paginate[T any](c *gin.Context, items []T) ([]T, *response.Pagination) {
	if c.Query("page") == "" {
		return items, nil
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	total := len(items)
	start := total
	if page-1 <= total/perPage {
		start = min((page-1)*perPage, total)
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return items[start:end], response.NewPagination(page, perPage, total)
}
