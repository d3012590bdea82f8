package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/issuedeck-dev/issuedeck/internal/handlers"
	"github.com/issuedeck-dev/issuedeck/internal/middleware"
	"github.com/issuedeck-dev/issuedeck/internal/types"
	"github.com/issuedeck-dev/issuedeck/internal/utils"
)

func NewRouter() *gin.Engine {
	utils.RegisterTagNameFunc()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/:project_id", middleware.AuthMiddleware(), handlers.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.POST("/logout", handlers.Logout)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.PUT("/me", middleware.AuthMiddleware(), handlers.UpdateUser)
			auth.DELETE("/me", middleware.AuthMiddleware(), handlers.DeleteUser)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.POST("", handlers.CreateProject)
			projects.GET("", handlers.ListProjects)
			projects.GET("/:project_id", handlers.RetrieveProject)
			projects.PUT("/:project_id", handlers.UpdateProject)
			projects.DELETE("/:project_id", handlers.DeleteProject)

			// Contributor endpoints. Single-contributor retrieval is a
			// deliberate 405, not a missing route.
			projects.POST("/:project_id/users", handlers.AddContributor)
			projects.GET("/:project_id/users", handlers.ListContributors)
			projects.GET("/:project_id/users/:user_id", handlers.ContributorDetail)
			projects.DELETE("/:project_id/users/:user_id", handlers.RemoveContributor)

			// Issue endpoints
			projects.POST("/:project_id/issues", handlers.CreateIssue)
			projects.GET("/:project_id/issues", handlers.ListIssues)
			projects.GET("/:project_id/issues/:issue_id", handlers.RetrieveIssue)
			projects.PUT("/:project_id/issues/:issue_id", handlers.UpdateIssue)
			projects.DELETE("/:project_id/issues/:issue_id", handlers.DeleteIssue)

			// Comment endpoints
			projects.POST("/:project_id/issues/:issue_id/comments", handlers.CreateComment)
			projects.GET("/:project_id/issues/:issue_id/comments", handlers.ListComments)
			projects.GET("/:project_id/issues/:issue_id/comments/:comment_id", handlers.RetrieveComment)
			projects.PUT("/:project_id/issues/:issue_id/comments/:comment_id", handlers.UpdateComment)
			projects.DELETE("/:project_id/issues/:issue_id/comments/:comment_id", handlers.DeleteComment)
		}
	}

	return r
}
