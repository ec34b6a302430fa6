package handler

import (
	"net/http"

	"github.com/examdesk/examdesk-backend/internal/middleware"
	"github.com/examdesk/examdesk-backend/internal/model"
	"github.com/examdesk/examdesk-backend/internal/response"
	"github.com/examdesk/examdesk-backend/internal/service"
	"github.com/examdesk/examdesk-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// UserHandler handles registration, login and profile endpoints.
type UserHandler struct {
	userService *service.UserService
	log         zerolog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		log:         log.With().Str("component", "user_handler").Logger(),
	}
}

// CreateUser godoc
// POST /user/create/
// Registers an examinee account.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		failWith(c, h.log, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": user.Profile()})
}

// Token godoc
// POST /user/token/
// Exchanges email and password for a bearer token.
func (h *UserHandler) Token(c *gin.Context) {
	var req model.TokenRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		failWith(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, token)
}

// Logout godoc
// POST /user/logout/
// Revokes the presented token.
func (h *UserHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	if err := h.userService.Logout(c.Request.Context(), claims); err != nil {
		failWith(c, h.log, err)
		return
	}

	response.NoContent(c)
}

// Me godoc
// GET /user/user/
// Returns the caller's profile.
func (h *UserHandler) Me(c *gin.Context) {
	user := middleware.GetUser(c)
	if user == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	response.Success(c, http.StatusOK, user.Profile())
}

// EditSelf godoc
// PATCH /user/edit/
// Updates the caller's own firstname, lastname, password or role.
func (h *UserHandler) EditSelf(c *gin.Context) {
	var req model.UpdateUserRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.userService.UpdateSelf(c.Request.Context(), middleware.GetUser(c), req)
	if err != nil {
		failWith(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// ListUsers godoc
// GET /user/users/
// Lists every account. Admin only.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context(), middleware.GetUser(c))
	if err != nil {
		failWith(c, h.log, err)
		return
	}

	page, pagination := paginate(c, users)
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"users": page}, pagination)
}

// EditUser godoc
// PATCH /user/edit/:id/
// Updates another account. Admin only.
func (h *UserHandler) EditUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateUserRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.userService.UpdateOther(c.Request.Context(), middleware.GetUser(c), id, req)
	if err != nil {
		failWith(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}
