package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/portfolio/config"
	"github.com/GoSim-25-26J-441/portfolio/internal/admin"
	httpapi "github.com/GoSim-25-26J-441/portfolio/internal/api/http"
	"github.com/GoSim-25-26J-441/portfolio/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/portfolio/internal/auth"
	authhttp "github.com/GoSim-25-26J-441/portfolio/internal/auth/http"
	"github.com/GoSim-25-26J-441/portfolio/internal/logutils"
	projectshttp "github.com/GoSim-25-26J-441/portfolio/internal/projects/http"
	"github.com/GoSim-25-26J-441/portfolio/internal/projects/service"
	"github.com/GoSim-25-26J-441/portfolio/internal/session"
	"github.com/GoSim-25-26J-441/portfolio/internal/web"
)

// App is the wired service: the router plus the components the commands
// need outside of HTTP.
type App struct {
	Router   *gin.Engine
	Projects *service.ProjectService
	Guard    *session.Guard
	Admin    *admin.Controller
}

func BuildApp(cfg *config.Config, res *Resources, content *web.Content) *App {
	allow := session.NewAllowList(cfg.Admin.Emails)
	if allow.Len() == 0 {
		logutils.Log.Warn("ADMIN_EMAILS is empty, nobody can manage projects")
	}
	guard := session.NewGuard(allow, res.Sessions)
	projects := service.NewProjectService(res.Projects)
	ctl := admin.NewController(guard)
	forms := admin.NewFormController(ctl, projects)

	redirect := auth.NewFlow(guard, redirectAuthenticators(cfg.OAuth))
	token := auth.NewFlow(guard, tokenAuthenticators(res.Verifier))

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestIDMiddleware(), cors.New(corsConfig(cfg.Server.AllowedOrigins)))

	httpapi.NewHealthHandler(cfg.App.ServiceName, cfg.App.Version, res.Checks).RegisterRoutes(r)

	sessions := session.Middleware(session.CookieConfig{
		Name:   cfg.Session.CookieName,
		TTL:    cfg.Session.TTL,
		Secure: cfg.Session.Secure,
	})

	authhttp.NewHandler(redirect, token, guard, auth.NewStateSigner(cfg.Session.Secret)).
		Register(r.Group("", sessions))

	var popup []auth.Provider
	if cfg.Firebase.WebAPIKey != "" {
		popup = token.Enabled()
	}
	web.NewHandler(web.Options{
		Content:  content,
		Projects: projects,
		Guard:    guard,
		Admin:    ctl,
		Forms:    forms,
		Redirect: redirect.Enabled(),
		Popup:    popup,
		Firebase: web.FirebaseWeb{
			APIKey:     cfg.Firebase.WebAPIKey,
			AuthDomain: cfg.Firebase.AuthDomain,
			ProjectID:  cfg.Firebase.ProjectID,
		},
	}).Register(r, sessions)

	api := r.Group("/api/v1")
	projectshttp.New(projects, forms, guard, res.Verifier).Register(api.Group("/projects"))

	return &App{Router: r, Projects: projects, Guard: guard, Admin: ctl}
}

func redirectAuthenticators(cfg config.OAuthConfig) map[auth.Provider]auth.Authenticator {
	out := map[auth.Provider]auth.Authenticator{}
	if cfg.GoogleClientID != "" {
		out[auth.Google] = auth.NewGoogleAuthenticator(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.RedirectBase+"/auth/google/callback")
	}
	if cfg.GitHubClientID != "" {
		out[auth.GitHub] = auth.NewGitHubAuthenticator(cfg.GitHubClientID, cfg.GitHubClientSecret, cfg.RedirectBase+"/auth/github/callback")
	}
	return out
}

func tokenAuthenticators(verifier auth.TokenVerifier) map[auth.Provider]auth.Authenticator {
	out := map[auth.Provider]auth.Authenticator{}
	if verifier == nil {
		return out
	}
	for _, p := range auth.Providers {
		out[p] = auth.NewFirebaseAuthenticator(verifier, p)
	}
	return out
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"}
	cfg.ExposeHeaders = []string{"X-Request-Id"}
	cfg.MaxAge = 12 * time.Hour

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
