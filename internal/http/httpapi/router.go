package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"geniemetrics/internal/http/handlers"
	"geniemetrics/internal/middleware"
)

func NewRouter(app *handlers.App) http.Handler {
	r := chi.NewRouter()

	defaultLocale := "en"
	var origins []string
	rateLimit := 0
	if app.Config != nil {
		defaultLocale = app.Config.DefaultLocale
		origins = app.Config.CORSOrigins
		rateLimit = app.Config.RateLimitPerMin
	}

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(origins),
		middleware.I18N(defaultLocale, app.Countries),
	)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthz", app.Health)
		r.Get("/openapi.json", app.OpenAPIJSON)
		r.Get("/docs", app.OpenAPIDocs)
		r.Get("/tools", app.ListTools)
		r.Get("/stats/usage", app.UsageSummary)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(rateLimit, time.Minute, middleware.ByClientIP))
			r.Post("/auth/login", app.Login)
			r.Post("/auth/signup", app.Signup)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthJWT(app.JWTSecret))
			r.Post("/auth/logout", app.Logout)
			r.Get("/me", app.Me)
			r.Delete("/me/limit", app.DismissLimit)
			r.Post("/checkout", app.Checkout)
			r.With(middleware.RateLimit(rateLimit, time.Minute, middleware.BySession)).Post("/tools/{tool}", app.InvokeTool)
		})
	})

	return r
}
