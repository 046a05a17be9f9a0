package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"github.com/goliatone/go-logistics-dashboard/components/dashboard"
)

// RouteOptions tunes the chi router.
type RouteOptions struct {
	ExportLimit   int
	ExportWindow  time.Duration
	SSLRedirect   bool
	AllowedHosts  []string
	FrameDeny     bool
	ContentPolicy string
}

func (o RouteOptions) withDefaults() RouteOptions {
	if o.ExportLimit <= 0 {
		o.ExportLimit = 10
	}
	if o.ExportWindow <= 0 {
		o.ExportWindow = time.Minute
	}
	if o.ContentPolicy == "" {
		o.ContentPolicy = "default-src 'self'"
	}
	return o
}

// Routes mounts every JSON operation on a chi router behind security
// headers. The CSV export is rate limited per session, then per IP.
func (h *Handlers) Routes(opts RouteOptions) http.Handler {
	opts = opts.withDefaults()
	r := chi.NewRouter()

	secureMiddleware := secure.New(secure.Options{
		AllowedHosts:          opts.AllowedHosts,
		FrameDeny:             opts.FrameDeny,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: opts.ContentPolicy,
		SSLRedirect:           opts.SSLRedirect,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
	})
	r.Use(secureMiddleware.Handler)

	limiter := httprate.Limit(opts.ExportLimit, opts.ExportWindow,
		httprate.WithKeyFuncs(h.rateLimitKey),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	)

	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/state", h.HandleState)
		r.Post("/state/activity-code", h.HandleSetActivityCode)
		r.Post("/state/date-range", h.HandleSetDateRange)
		r.Post("/state/section", h.HandleSetSection)
		r.Post("/state/sidebar", h.HandleSetSidebar)
		r.Get("/sections/{id}", func(w http.ResponseWriter, r *http.Request) {
			h.HandleSection(w, r, chi.URLParam(r, "id"))
		})
		r.Get("/events", h.HandleEvents)
		r.Get("/ws", h.HandleWebSocket)
		r.Group(func(gr chi.Router) {
			gr.Use(limiter)
			gr.Get("/export.csv", h.HandleExport)
		})
	})
	r.Route("/settings", func(r chi.Router) {
		r.Get("/preferences", h.HandleGetPreferences)
		r.Post("/preferences", h.HandleSavePreferences)
		r.Post("/theme/toggle", h.HandleToggleTheme)
	})
	return r
}

func (h *Handlers) rateLimitKey(r *http.Request) (string, error) {
	if id := r.Header.Get(dashboard.SessionHeader); id != "" {
		return "session:" + id, nil
	}
	key, err := httprate.KeyByIP(r)
	if err != nil {
		return "", err
	}
	return "ip:" + key, nil
}
