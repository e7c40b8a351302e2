package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hackmap/hackmap/internal/app/controllers"
	"github.com/hackmap/hackmap/internal/middleware"
	"github.com/hackmap/hackmap/internal/pkg/auth"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	hackathonController *controllers.HackathonController,
	teamController *controllers.TeamController,
	ideaController *controllers.IdeaController,
	notificationController *controllers.NotificationController,
	jwtService *auth.JWTService,
) {
	// Root welcome route
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the HackMap API"})
	})

	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Public auth routes ---
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/signup", authController.Signup)
		authRoutes.POST("/login", authController.Login)
		authRoutes.POST("/logout", authController.Logout)
	}

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(middleware.AuthMiddleware(jwtService))
	{
		users := authenticated.Group("/users")
		{
			users.GET("/me", userController.GetProfile)
			users.GET("/me/teams", userController.GetTeams)
			users.GET("/me/ideas", userController.GetIdeas)
		}

		hackathons := authenticated.Group("/hackathons")
		{
			hackathons.GET("", hackathonController.ListHackathons)
			hackathons.GET("/:id", hackathonController.GetHackathon)
			hackathons.POST("", hackathonController.CreateHackathon)
			hackathons.PUT("/:id", hackathonController.UpdateHackathon)
			hackathons.POST("/:id/register", hackathonController.Register)
			hackathons.POST("/:id/teams", hackathonController.CreateTeam)
		}

		teams := authenticated.Group("/teams")
		{
			teams.POST("/join", teamController.Join)
			teams.GET("/:id", teamController.GetTeam)
			teams.POST("/:id/invite", teamController.Invite)
			teams.POST("/:id/ideas", teamController.CreateIdea)
		}

		ideas := authenticated.Group("/ideas")
		{
			ideas.GET("", ideaController.ListIdeas)
			ideas.GET("/:id", ideaController.GetIdea)
			ideas.POST("/:id/comments", ideaController.AddComment)
			ideas.POST("/:id/endorse", ideaController.Endorse)
		}

		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.List)
			notifications.POST("/:id/respond", notificationController.Respond)
		}
	}
}
