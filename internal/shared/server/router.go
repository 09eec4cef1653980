// Package server assembles the Gin engine from constructed handlers.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/azim128/jobify/internal/activity"
	"github.com/azim128/jobify/internal/ai"
	"github.com/azim128/jobify/internal/companies"
	"github.com/azim128/jobify/internal/jobs"
	"github.com/azim128/jobify/internal/shared/auth"
	"github.com/azim128/jobify/internal/shared/config"
	"github.com/azim128/jobify/internal/shared/server/middleware"
	"github.com/azim128/jobify/internal/shared/server/respond"
	"github.com/azim128/jobify/internal/uploads"
	"github.com/azim128/jobify/internal/users"
)

// RouterDeps carries everything NewRouter needs. Handlers are constructed by
// bootstrap; the router only decides placement and guards.
type RouterDeps struct {
	Config          config.Config
	UsersRepo       users.Repo
	Tokens          *auth.TokenIssuer
	ActivityService *activity.Service

	UsersHandler    *users.Handler
	AuthHandler     *users.AuthHandler
	CompanyHandler  *companies.Handler
	JobHandler      *jobs.Handler
	UploadHandler   *uploads.Handler
	AIHandler       *ai.Handler
	ActivityHandler *activity.Handler
}

// Login attempts are throttled much harder than general traffic.
var (
	generalRate = middleware.RateLimitRule{Rate: 10, Burst: 100}
	authRate    = middleware.RateLimitRule{Rate: 0.25, Burst: 10}
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Buckets are keyed by client IP, so each rule gets its own limiter.
	generalLimiter := middleware.NewRateLimiter(nil)
	authLimiter := middleware.NewRateLimiter(nil)

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(generalLimiter, generalRate),
	)

	authn := users.Authenticate(deps.UsersRepo, deps.Tokens)
	superAdminOnly := users.RequireRole(users.RoleSuperAdmin)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.Success(c, http.StatusOK, "OK", gin.H{"status": "ok"})
	})

	// Credential endpoints. The public ones carry the stricter limit.
	public := api.Group("", middleware.RateLimit(authLimiter, authRate))
	deps.AuthHandler.RegisterPublicRoutes(public)
	deps.AuthHandler.RegisterAuthedRoutes(api.Group("", authn))

	// The bootstrap endpoint stays open; it refuses once any user exists.
	setup := api.Group("/super-admin", middleware.RateLimit(authLimiter, authRate))
	deps.UsersHandler.RegisterSetupRoutes(setup)

	superAdmin := api.Group("/super-admin", authn, superAdminOnly, activity.Middleware(deps.ActivityService, "admin"))
	deps.UsersHandler.RegisterRoutes(superAdmin)

	company := api.Group("/company", authn, activity.Middleware(deps.ActivityService, "company"))
	deps.CompanyHandler.RegisterRoutes(company)

	job := api.Group("/job", authn, activity.Middleware(deps.ActivityService, "job"))
	deps.JobHandler.RegisterRoutes(job)

	aiGroup := api.Group("/ai", authn, users.RequireCapability(users.CapUseAI))
	deps.AIHandler.RegisterRoutes(aiGroup)

	upload := api.Group("/upload", authn, users.RequireCapability(users.CapUploadFiles))
	deps.UploadHandler.RegisterRoutes(upload)

	logs := api.Group("/activity-logs", authn, superAdminOnly)
	deps.ActivityHandler.RegisterRoutes(logs)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
