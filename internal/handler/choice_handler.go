package handler

import (
	"net/http"

	"github.com/examdesk/examdesk-backend/internal/model"
	"github.com/examdesk/examdesk-backend/internal/response"
	"github.com/examdesk/examdesk-backend/internal/service"
	"github.com/examdesk/examdesk-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ChoiceHandler handles choice management endpoints.
type ChoiceHandler struct {
	choiceService *service.ChoiceService
	log           zerolog.Logger
}

// NewChoiceHandler creates a new ChoiceHandler.
func NewChoiceHandler(choiceService *service.ChoiceService, log zerolog.Logger) *ChoiceHandler {
	return &ChoiceHandler{
		choiceService: choiceService,
		log:           log.With().Str("component", "choice_handler").Logger(),
	}
}

// ListChoices godoc
// GET /question/choice/
func (h *ChoiceHandler) ListChoices(c *gin.Context) {
	choices, err := h.choiceService.List(c.Request.Context())
	if err != nil {
		failWith(c, h.log, err)
		return
	}

	page, pagination := paginate(c, choices)
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"choices": page}, pagination)
}

// CreateChoice godoc
// POST /question/choice/
func (h *ChoiceHandler) CreateChoice(c *gin.Context) {
	var req model.ChoiceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	choice, err := h.choiceService.Create(c.Request.Context(), req.Choice)
	if err != nil {
		failWith(c, h.log, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"choice": choice})
}

// GetChoice godoc
// GET /question/choice/:id/
func (h *ChoiceHandler) GetChoice(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	choice, err := h.choiceService.Get(c.Request.Context(), id)
	if err != nil {
		failWith(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"choice": choice})
}

// UpdateChoice godoc
// PATCH /question/choice/:id/
// Renames a choice for every question that references it.
func (h *ChoiceHandler) UpdateChoice(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req model.ChoiceRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	choice, err := h.choiceService.Rename(c.Request.Context(), id, req.Choice)
	if err != nil {
		failWith(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"choice": choice})
}

// DeleteChoice godoc
// DELETE /question/choice/:id/
// Fails with 409 while the choice is some question's answer.
func (h *ChoiceHandler) DeleteChoice(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.choiceService.Delete(c.Request.Context(), id); err != nil {
		failWith(c, h.log, err)
		return
	}

	response.NoContent(c)
}
