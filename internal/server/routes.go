// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Init swagger doc
	_ "jobboard-backend/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"jobboard-backend/internal/auth"
	"jobboard-backend/internal/controller/application"
	"jobboard-backend/internal/controller/job"
	"jobboard-backend/internal/middleware"
	"jobboard-backend/internal/model"
)

// MaxBodyBytes bounds every request body
const MaxBodyBytes = 1 << 20

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins(os.Getenv("ALLOW_ORIGIN")),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(middleware.SafeHeader())

	lAuth := auth.NewLocalAuthHandler(s.DB)
	logout := auth.NewLogoutController(s.Blacklist)
	jobs := job.NewJobController(s.DB)
	apps := application.NewApplicationController(s.DB)

	requireAuth := []gin.HandlerFunc{
		middleware.RequireAuth(s.DB),
		middleware.JwtBlacklistCheck(s.Blacklist),
	}

	r.GET("/", s.HelloWorldHandler)
	r.GET("/health", s.healthHandler)

	v1 := r.Group("/api/v1", middleware.EnvRateLimitMiddleware(), middleware.SizeLimit(MaxBodyBytes))
	{
		authRoute := v1.Group("/auth")
		{
			authRoute.POST("register", lAuth.RegisterHandler)
			authRoute.POST("login", lAuth.LoginHandler)

			authRoute.Use(requireAuth...)
			authRoute.GET("me", lAuth.MeHandler)
			authRoute.POST("logout", logout.LogoutHandler)
		}

		publicJobs := v1.Group("/jobs")
		{
			publicJobs.GET("", jobs.GetJobsHandler)
			publicJobs.GET("/:id", jobs.GetJobHandler)
		}

		needAuth := v1.Group("", requireAuth...)
		{
			needEmployer := needAuth.Group("", middleware.CheckRole(model.RoleEmployer))
			{
				needEmployer.POST("jobs", jobs.CreateJobHandler)
				needEmployer.PATCH("jobs/:id", jobs.UpdateJobHandler)
				needEmployer.DELETE("jobs/:id", jobs.DeleteJobHandler)
				needEmployer.GET("jobs/:id/applications", apps.GetJobApplicationsHandler)
				needEmployer.PATCH("applications/:id/status", apps.UpdateApplicationStatusHandler)
			}

			needSeeker := needAuth.Group("", middleware.CheckRole(model.RoleSeeker))
			{
				needSeeker.POST("jobs/:id/apply", apps.ApplyHandler)
				needSeeker.GET("jobs/:id/my-application", apps.GetMyApplicationForJobHandler)
				needSeeker.GET("my-applications", apps.GetMyApplicationsHandler)
			}
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func allowOrigins(raw string) []string {
	origins := []string{}
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"http://localhost:5173"}
	}
	return origins
}

// HelloWorldHandler handle request by return message "Hello World"
func (s *MyServer) HelloWorldHandler(c *gin.Context) {
	resp := make(map[string]string)
	resp["message"] = "Hello World"

	c.JSON(http.StatusOK, resp)
}

func (s *MyServer) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}
