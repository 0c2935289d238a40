package handlers

import (
	"html/template"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/jacobbria/AZ-webApp/internal/auth"
	"github.com/jacobbria/AZ-webApp/internal/config"
	"go.uber.org/zap"
)

const sessionCookieName = "jobboard_session"

type RouterParams struct {
	Config       *config.Config
	Logger       *zap.Logger
	Templates    *template.Template
	SessionStore sessions.Store
	Jobs         *JobHandler
	Pages        *PageHandler
	Auth         *AuthHandler
}

func NewRouter(p RouterParams) *gin.Engine {
	if p.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestLogger(p.Logger))
	r.Use(Recovery(p.Logger))

	corsConfig := cors.DefaultConfig()
	if len(p.Config.CORSAllowedOrigins) > 0 {
		corsConfig.AllowOrigins = p.Config.CORSAllowedOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.Use(sessions.Sessions(sessionCookieName, p.SessionStore))
	r.Use(auth.LoadSession())

	r.SetHTMLTemplate(p.Templates)

	r.GET("/", p.Pages.Index)
	r.GET("/demo", p.Pages.Demo)
	r.GET("/job/:id", p.Pages.JobDetail)
	r.GET("/health", HealthCheck)
	r.POST("/api/analyze", p.Jobs.Analyze)

	r.GET("/auth/login", p.Auth.Login)
	r.GET("/auth/callback", p.Auth.Callback)
	r.GET("/auth/logout", p.Auth.Logout)
	r.GET("/api/auth/status", p.Auth.Status)

	pages := r.Group("/", auth.RequirePage())
	{
		pages.GET("/data", p.Pages.Data)
		pages.GET("/jobs/add", p.Pages.AddJob)
		pages.GET("/jobs/review", p.Pages.ReviewJob)
		pages.GET("/my-jobs", p.Pages.MyJobs)
	}

	api := r.Group("/jobs", auth.RequireAPI())
	{
		api.POST("/parse", p.Jobs.ParseJob)
		api.POST("/save", p.Jobs.SaveJob)
	}

	r.NoRoute(p.Pages.NotFound)

	return r
}
