package handlers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Jobs         *JobHandler
	Applications *ApplicationHandler
	Profile      *ProfileHandler
	GitHub       *GitHubHandler
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// NewRouter builds the gin engine. An empty allowedOrigins allows any origin.
func NewRouter(h Handlers, allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	if len(allowedOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowedOrigins
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	r.Use(cors.New(config))

	api := r.Group("/api/v1")
	{
		api.GET("/health", HealthCheck)

		// Job Routes
		api.GET("/jobs", h.Jobs.ListJobs)
		api.POST("/jobs/search", h.Jobs.SearchJobs)
		api.GET("/jobs/:id", h.Jobs.GetJob)
		api.POST("/jobs/:id/analyze", h.Jobs.AnalyzeJob)

		// Profile Routes
		api.GET("/profile", h.Profile.GetProfile)
		api.PUT("/profile", h.Profile.UpdateProfile)

		// GitHub Routes
		api.GET("/github/connect", h.GitHub.Connect)
		api.GET("/github/callback", h.GitHub.Callback)

		// Application Routes
		api.POST("/applications", h.Applications.CreateSession)
		api.GET("/applications/:id", h.Applications.GetSession)
		api.POST("/applications/:id/start", h.Applications.Start)
		api.POST("/applications/:id/advance", h.Applications.Advance)
		api.POST("/applications/:id/restart", h.Applications.Restart)
		api.DELETE("/applications/:id", h.Applications.CloseSession)
	}

	return r
}
