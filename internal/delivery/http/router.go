package http

import (
	"log/slog"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"invitationgallery/internal/delivery/http/controllers"
	"invitationgallery/internal/delivery/http/helpers"
	"invitationgallery/internal/delivery/http/middleware"
	"invitationgallery/internal/domain"
	"invitationgallery/internal/metrics"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Invitations *controllers.InvitationController
	Admin       *controllers.AdminController
	Settings    *controllers.SettingController
	Assets      *controllers.AssetController
	Health      *controllers.HealthController
}

// RouterOptions configures the cross-cutting middleware of the router.
type RouterOptions struct {
	Logger             *slog.Logger
	Auth               domain.SessionAuthenticator
	CORSAllowedOrigins []string
	// LoginLimiter throttles login and registration; nil disables throttling.
	LoginLimiter *middleware.RateLimiter
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, opts RouterOptions) http.Handler {
	mux := http.NewServeMux()
	requireAdmin := middleware.RequireAdmin(opts.Auth, opts.Logger)
	limit := func(next http.HandlerFunc) http.HandlerFunc { return next }
	if opts.LoginLimiter != nil {
		limit = opts.LoginLimiter.Limit
	}

	// Invitations
	mux.HandleFunc("GET /api/invitations", c.Invitations.ListInvitations)
	mux.HandleFunc("GET /api/invitations/{id}", c.Invitations.GetInvitation)
	mux.HandleFunc("POST /api/invitations", requireAdmin(c.Invitations.CreateInvitation))
	mux.HandleFunc("PATCH /api/invitations/{id}", requireAdmin(c.Invitations.UpdateInvitation))
	mux.HandleFunc("DELETE /api/invitations/{id}", requireAdmin(c.Invitations.DeleteInvitation))

	// Admin
	mux.HandleFunc("POST /api/admin/login", limit(c.Admin.Login))
	mux.HandleFunc("POST /api/admin/logout", c.Admin.Logout)
	mux.HandleFunc("GET /api/admin/session", c.Admin.Session)
	mux.HandleFunc("POST /api/admin/register", limit(c.Admin.Register))

	// Settings
	mux.HandleFunc("GET /api/settings", c.Settings.ListSettings)
	mux.HandleFunc("POST /api/settings", requireAdmin(c.Settings.UpsertSetting))

	// Assets
	mux.HandleFunc("GET /api/sample-images/{type}", c.Assets.SampleImage)
	mux.Handle("GET /uploads/", c.Assets.Uploads())

	mux.HandleFunc(apiFallbackPattern, apiFallback(mux))

	// Operations
	mux.HandleFunc("GET /healthz", c.Health.Health)
	mux.Handle("GET /metrics", metrics.Handler())

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// metrics.InstrumentHandler reads r.Pattern, so it wraps the mux directly.
	var handler http.Handler = metrics.InstrumentHandler(mux)
	handler = middleware.CORS(opts.CORSAllowedOrigins)(handler)
	handler = chimw.Recoverer(handler)
	handler = middleware.Logging(opts.Logger)(handler)
	handler = chimw.RequestID(handler)
	return handler
}

const apiFallbackPattern = "/api/"

var apiMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete}

// apiFallback answers unmatched /api/ requests with JSON. A path registered under
// other methods gets 405 with an Allow header, anything else 404.
func apiFallback(mux *http.ServeMux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var allowed []string
		for _, method := range apiMethods {
			if method == r.Method {
				continue
			}
			alt := r.Clone(r.Context())
			alt.Method = method
			if _, pattern := mux.Handler(alt); pattern != "" && pattern != apiFallbackPattern {
				allowed = append(allowed, method)
			}
		}
		if len(allowed) > 0 {
			w.Header().Set("Allow", strings.Join(allowed, ", "))
			helpers.WriteJSONError(w, http.StatusMethodNotAllowed, helpers.MsgMethodNotAllowed)
			return
		}
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.MsgNotFound)
	}
}
