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

// AnswerHandler handles the examinee answer of a question.
type AnswerHandler struct {
	answerService *service.AnswerService
	log           zerolog.Logger
}

// NewAnswerHandler creates a new AnswerHandler.
func NewAnswerHandler(answerService *service.AnswerService, log zerolog.Logger) *AnswerHandler {
	return &AnswerHandler{
		answerService: answerService,
		log:           log.With().Str("component", "answer_handler").Logger(),
	}
}

// GetAnswer godoc
// GET /answer/:question_id/
func (h *AnswerHandler) GetAnswer(c *gin.Context) {
	questionID, ok := parseID(c, "question_id")
	if !ok {
		return
	}

	answer, err := h.answerService.Get(c.Request.Context(), questionID)
	if err != nil {
		failWith(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"answer": answer})
}

// SaveAnswer godoc
// PUT /answer/:question_id/
// Records the response to a question, replacing the previous one.
func (h *AnswerHandler) SaveAnswer(c *gin.Context) {
	questionID, ok := parseID(c, "question_id")
	if !ok {
		return
	}

	var req model.SaveExamineeAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	answer, err := h.answerService.Save(c.Request.Context(), questionID, req)
	if err != nil {
		failWith(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"answer": answer})
}
