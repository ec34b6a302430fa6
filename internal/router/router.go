package router

import (
	"net/http"
	"time"

	"github.com/examdesk/examdesk-backend/internal/access"
	"github.com/examdesk/examdesk-backend/internal/config"
	"github.com/examdesk/examdesk-backend/internal/handler"
	"github.com/examdesk/examdesk-backend/internal/middleware"
	"github.com/examdesk/examdesk-backend/internal/response"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	User     *handler.UserHandler
	Question *handler.QuestionHandler
	Choice   *handler.ChoiceHandler
	Answer   *handler.AnswerHandler
	System   *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	auth middleware.Authenticator,
	tokenLimiter *middleware.RateLimiter,
	handlers *Handlers,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(gin.Recovery())
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(middleware.Brotli())

	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.ErrRouteNotFound)
	})
	router.NoMethod(func(c *gin.Context) {
		response.Fail(c, http.StatusMethodNotAllowed, response.ErrMethodNotAllowed)
	})

	router.GET("/health", handlers.System.Health)

	requireAuth := middleware.RequireAuth(auth, log)
	requireAdmin := middleware.RequireAccess(access.IsAdminUser)

	// ─── 1. User Group (no-store) ──────────────────────────────────────
	user := router.Group("/user")
	user.Use(middleware.NoStore())
	{
		user.POST("/create/", handlers.User.CreateUser)
		user.POST("/token/", tokenLimiter.Middleware(), handlers.User.Token)

		self := user.Group("", requireAuth)
		{
			self.POST("/logout/", handlers.User.Logout)
			self.GET("/user/", handlers.User.Me)
			self.PUT("/edit/", handlers.User.EditSelf)
			self.PATCH("/edit/", handlers.User.EditSelf)
		}

		admin := user.Group("", requireAuth, requireAdmin)
		{
			admin.GET("/users/", handlers.User.ListUsers)
			admin.PATCH("/edit/:id/", handlers.User.EditUser)
		}
	}

	// ─── 2. Question Group (admin) ─────────────────────────────────────
	question := router.Group("/question")
	question.Use(requireAuth, requireAdmin)
	{
		question.GET("/question/", handlers.Question.ListQuestions)
		question.POST("/question/", handlers.Question.CreateQuestion)
		question.GET("/question/:id/", handlers.Question.GetQuestion)
		question.PUT("/question/:id/", handlers.Question.UpdateQuestion)
		question.PATCH("/question/:id/", handlers.Question.UpdateQuestion)
		question.DELETE("/question/:id/", handlers.Question.DeleteQuestion)

		question.GET("/choice/", handlers.Choice.ListChoices)
		question.POST("/choice/", handlers.Choice.CreateChoice)
		question.GET("/choice/:id/", handlers.Choice.GetChoice)
		question.PATCH("/choice/:id/", handlers.Choice.UpdateChoice)
		question.DELETE("/choice/:id/", handlers.Choice.DeleteChoice)
	}

	// ─── 3. Answer Group (any authenticated user) ──────────────────────
	answer := router.Group("/answer")
	answer.Use(requireAuth)
	{
		answer.GET("/:question_id/", handlers.Answer.GetAnswer)
		answer.PUT("/:question_id/", handlers.Answer.SaveAnswer)
	}

	return router
}
