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

// QuestionHandler handles question management endpoints.
type QuestionHandler struct {
	questionService *service.QuestionService
	log             zerolog.Logger
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService, log zerolog.Logger) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		log:             log.With().Str("component", "question_handler").Logger(),
	}
}

// ListQuestions godoc
// GET /question/question/
// Lists all questions, newest first.
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	questions, err := h.questionService.List(c.Request.Context())
	if err != nil {
		failWith(c, h.log, err)
		return
	}

	page, pagination := paginate(c, questions)
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"questions": page}, pagination)
}

// CreateQuestion godoc
// POST /question/question/
// Creates a question, reusing choices that already exist by text.
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req model.CreateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, err := h.questionService.Create(c.Request.Context(), req.Question, req.Answer.Choice, choiceTexts(req.Choices))
	if err != nil {
		failWith(c, h.log, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"question": question})
}

// GetQuestion godoc
// GET /question/question/:id/
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	question, err := h.questionService.Get(c.Request.Context(), id)
	if err != nil {
		failWith(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"question": question})
}

// UpdateQuestion godoc
// PUT|PATCH /question/question/:id/
// PUT requires question and answer; PATCH accepts any subset.
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if c.Request.Method == http.MethodPut {
		fields := map[string]string{}
		if req.Question == nil {
			fields["question"] = "question is a required field"
		}
		if req.Answer == nil {
			fields["answer"] = "answer is a required field"
		}
		if len(fields) > 0 {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
			return
		}
	}

	patch := service.QuestionPatch{Question: req.Question}
	if req.Answer != nil {
		patch.Answer = &req.Answer.Choice
	}
	if req.Choices != nil {
		patch.Choices = choiceTexts(req.Choices)
	}

	question, err := h.questionService.Update(c.Request.Context(), id, patch)
	if err != nil {
		failWith(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"question": question})
}

// DeleteQuestion godoc
// DELETE /question/question/:id/
// Deletes a question and its examinee answer. Shared choices are kept.
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.questionService.Delete(c.Request.Context(), id); err != nil {
		failWith(c, h.log, err)
		return
	}

	response.NoContent(c)
}

// choiceTexts keeps nil as nil so an absent key stays distinguishable from [].
func choiceTexts(in []model.ChoiceInput) []string {
	if in == nil {
		return nil
	}
	texts := make([]string, len(in))
	for i, ci := range in {
		texts[i] = ci.Choice
	}
	return texts
}
