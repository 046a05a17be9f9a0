package gorouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	router "github.com/goliatone/go-router"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/goliatone/go-logistics-dashboard/components/dashboard"
	"github.com/goliatone/go-logistics-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-logistics-dashboard/components/dashboard/httpapi"
	"github.com/goliatone/go-logistics-dashboard/components/dashboard/queries"
)

// Config wires go-router with the dashboard controller, commands and hooks.
type Config[T any] struct {
	Router     router.Router[T]
	Controller *dashboard.Controller
	Service    *dashboard.Service
	API        httpapi.Executor
	Broadcast  *dashboard.BroadcastHook
	Logger     *zap.Logger
	BasePath   string
	Cookie     httpapi.CookieConfig
	Routes     RouteConfig
}

// RouteConfig customizes the relative paths used for dashboard endpoints.
type RouteConfig struct {
	HTML        string
	Profile     string
	Settings    string
	State       string
	Section     string
	Export      string
	Preferences string
	ThemeToggle string
	WebSocket   string
}

// Register mounts the dashboard routes (HTML, JSON, WebSocket) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	if cfg.Service == nil {
		return errors.New("gorouter: service is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	ep := newEndpoints(cfg)

	group := cfg.Router.Group(cfg.BasePath)

	for path, page := range map[string]dashboard.Page{
		routes.HTML:     dashboard.PageDashboard,
		routes.Profile:  dashboard.PageProfile,
		routes.Settings: dashboard.PageSettings,
	} {
		group.Get(path, ep.wrap(func(ctx context.Context, viewer dashboard.ViewerContext, _ request) response {
			return ep.page(ctx, viewer, page)
		}))
	}

	group.Get(routes.State, ep.wrap(ep.state))
	group.Post(routes.State+"/activity-code", ep.wrap(ep.setActivityCode))
	group.Post(routes.State+"/date-range", ep.wrap(ep.setDateRange))
	group.Post(routes.State+"/section", ep.wrap(ep.setSection))
	group.Post(routes.State+"/sidebar", ep.wrap(ep.setSidebar))
	group.Get(routes.Section, ep.wrap(ep.section))
	group.Get(routes.Export, ep.wrap(ep.export))
	group.Get(routes.Preferences, ep.wrap(ep.preferences))
	group.Post(routes.Preferences, ep.wrap(ep.savePreferences))
	group.Post(routes.ThemeToggle, ep.wrap(ep.toggleTheme))

	if cfg.Broadcast != nil {
		registerWebSocket(group, ep, cfg.Broadcast, routes.WebSocket)
	}
	return nil
}

// request is the transport-neutral view of an incoming call.
type request struct {
	body  []byte
	param func(string) string
	query func(string) string
}

// response is what an endpoint produced: either a JSON payload or raw bytes.
type response struct {
	status      int
	contentType string
	headers     map[string]string
	raw         []byte
	payload     any
}

type endpoints struct {
	controller *dashboard.Controller
	sessions   *dashboard.SessionManager
	api        httpapi.Executor
	stateQuery *queries.StateQuery
	sections   *queries.SectionQuery
	activity   *queries.ActivityCodesQuery
	exporter   *dashboard.Exporter
	settings   *dashboard.SettingsService
	logger     *zap.Logger
	cookie     httpapi.CookieConfig
}

func newEndpoints[T any](cfg Config[T]) *endpoints {
	api := cfg.API
	if api == nil {
		api = httpapi.NewCommandExecutor(cfg.Service, nil)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cookie := cfg.Cookie
	if cookie.Name == "" {
		cookie.Name = dashboard.DefaultSessionCookie
	}
	if cookie.Path == "" {
		cookie.Path = "/"
		if cfg.BasePath != "" {
			cookie.Path = cfg.BasePath
		}
	}
	return &endpoints{
		controller: cfg.Controller,
		sessions:   cfg.Service.Sessions(),
		api:        api,
		stateQuery: queries.NewStateQuery(cfg.Service),
		sections:   queries.NewSectionQuery(cfg.Service),
		activity:   queries.NewActivityCodesQuery(cfg.Service),
		exporter:   dashboard.NewExporter(cfg.Service),
		settings:   cfg.Service.Settings(),
		logger:     logger,
		cookie:     cookie,
	}
}

type endpointFunc func(ctx context.Context, viewer dashboard.ViewerContext, req request) response

func (e *endpoints) wrap(fn endpointFunc) router.HandlerFunc {
	return router.WrapHandler(func(ctx router.Context) error {
		sessionID, setCookie := e.resolveSession(ctx.Header("Cookie"), ctx.Header(dashboard.SessionHeader))
		if setCookie != "" {
			ctx.SetHeader("Set-Cookie", setCookie)
		}
		viewer := dashboard.ViewerContext{SessionID: sessionID, Locale: inferLocale(ctx)}
		res := fn(ctx.Context(), viewer, request{
			body:  ctx.Body(),
			param: func(name string) string { return ctx.Param(name) },
			query: func(name string) string { return ctx.Query(name) },
		})
		for key, value := range res.headers {
			ctx.SetHeader(key, value)
		}
		if res.raw != nil {
			ctx.SetHeader("Content-Type", res.contentType)
			return ctx.Send(res.raw)
		}
		return ctx.JSON(res.status, res.payload)
	})
}

// resolveSession maps the session header or cookie onto a live session. It
// returns the Set-Cookie value to send when a browser session was created.
func (e *endpoints) resolveSession(cookieHeader, sessionHeader string) (string, string) {
	id := strings.TrimSpace(sessionHeader)
	fromHeader := id != ""
	if !fromHeader {
		id = dashboard.SessionIDFromCookieHeader(cookieHeader, e.cookie.Name)
	}
	sess, created := e.sessions.Ensure(id)
	if !created || fromHeader {
		return sess.ID, ""
	}
	return sess.ID, dashboard.NewSessionCookie(e.cookie.Name, sess.ID, e.cookie.Path, e.cookie.Secure).String()
}

func (e *endpoints) page(ctx context.Context, viewer dashboard.ViewerContext, page dashboard.Page) response {
	var buf bytes.Buffer
	if err := e.controller.RenderPage(ctx, viewer, page, &buf); err != nil {
		return e.fail(err)
	}
	return response{status: http.StatusOK, contentType: "text/html; charset=utf-8", raw: buf.Bytes()}
}

func (e *endpoints) state(ctx context.Context, viewer dashboard.ViewerContext, _ request) response {
	snap, err := e.stateQuery.Query(ctx, queries.StateInput{SessionID: viewer.SessionID})
	if err != nil {
		return e.fail(err)
	}
	codes, err := e.activity.Query(ctx, struct{}{})
	if err != nil {
		return e.fail(err)
	}
	return ok(httpapi.StatePayload{State: snap, ActivityCodes: codes})
}

func (e *endpoints) setActivityCode(ctx context.Context, viewer dashboard.ViewerContext, req request) response {
	var input commands.SetActivityCodeInput
	if err := decode(req.body, &input); err != nil {
		return e.fail(err)
	}
	input.SessionID = viewer.SessionID
	return e.afterCommand(ctx, viewer, e.api.SetActivityCode(ctx, input), "")
}

func (e *endpoints) setDateRange(ctx context.Context, viewer dashboard.ViewerContext, req request) response {
	var input commands.SetDateRangeInput
	if err := decode(req.body, &input); err != nil {
		return e.fail(err)
	}
	input.SessionID = viewer.SessionID
	return e.afterCommand(ctx, viewer, e.api.SetDateRange(ctx, input), "")
}

func (e *endpoints) setSection(ctx context.Context, viewer dashboard.ViewerContext, req request) response {
	var input commands.SetSectionInput
	if err := decode(req.body, &input); err != nil {
		return e.fail(err)
	}
	input.SessionID = viewer.SessionID
	return e.afterCommand(ctx, viewer, e.api.SetSection(ctx, input), "/")
}

func (e *endpoints) setSidebar(ctx context.Context, viewer dashboard.ViewerContext, req request) response {
	var input commands.SetSidebarInput
	if err := decode(req.body, &input); err != nil {
		return e.fail(err)
	}
	input.SessionID = viewer.SessionID
	return e.afterCommand(ctx, viewer, e.api.SetSidebar(ctx, input), "")
}

func (e *endpoints) afterCommand(ctx context.Context, viewer dashboard.ViewerContext, err error, navigate string) response {
	if err != nil {
		return e.fail(err)
	}
	snap, err := e.stateQuery.Query(ctx, queries.StateInput{SessionID: viewer.SessionID})
	if err != nil {
		return e.fail(err)
	}
	return ok(httpapi.StatePayload{State: snap, Navigate: navigate})
}

func (e *endpoints) section(ctx context.Context, viewer dashboard.ViewerContext, req request) response {
	payload, err := e.sections.Query(ctx, queries.SectionInput{Viewer: viewer, Section: req.param("id")})
	if err != nil {
		return e.fail(err)
	}
	return ok(payload)
}

func (e *endpoints) export(ctx context.Context, viewer dashboard.ViewerContext, req request) response {
	exportReq := dashboard.ExportRequest{
		Viewer: viewer,
		Date:   strings.TrimSpace(req.query("date")),
	}
	for _, part := range strings.Split(req.query("sections"), ",") {
		if part = strings.TrimSpace(part); part != "" {
			exportReq.Sections = append(exportReq.Sections, dashboard.SectionID(part))
		}
	}
	var buf bytes.Buffer
	if err := e.exporter.Export(ctx, &buf, exportReq); err != nil {
		return e.fail(err)
	}
	name := "logistics-export"
	if exportReq.Date != "" {
		name += "-" + exportReq.Date
	}
	return response{
		status:      http.StatusOK,
		contentType: "text/csv; charset=utf-8",
		headers:     map[string]string{"Content-Disposition": fmt.Sprintf("attachment; filename=%q", name+".csv")},
		raw:         buf.Bytes(),
	}
}

func (e *endpoints) preferences(context.Context, dashboard.ViewerContext, request) response {
	return ok(e.settings.Current())
}

func (e *endpoints) savePreferences(ctx context.Context, _ dashboard.ViewerContext, req request) response {
	var payload map[string]any
	if err := decode(req.body, &payload); err != nil {
		return e.fail(err)
	}
	if err := e.api.SavePreferences(ctx, commands.SavePreferencesInput{Payload: payload}); err != nil {
		return e.fail(err)
	}
	return ok(e.settings.Current())
}

func (e *endpoints) toggleTheme(ctx context.Context, _ dashboard.ViewerContext, _ request) response {
	if err := e.api.ToggleTheme(ctx, commands.ToggleThemeInput{}); err != nil {
		return e.fail(err)
	}
	return ok(e.settings.Current())
}

func (e *endpoints) fail(err error) response {
	status := httpapi.StatusFor(err)
	if status >= http.StatusInternalServerError {
		e.logger.Error("dashboard route failed", zap.Error(err))
	}
	return response{status: status, payload: map[string]string{"error": err.Error()}}
}

func ok(payload any) response {
	return response{status: http.StatusOK, payload: payload}
}

func decode(body []byte, dst any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Errorf("%w: empty body", commands.ErrInvalidInput)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %v", commands.ErrInvalidInput, err)
	}
	return nil
}

const upgradeSessionKey = "session_id"

// socketEvent is the websocket frame; the session id stays server side.
type socketEvent struct {
	Kind  dashboard.StateEventKind `json:"kind"`
	State dashboard.Snapshot       `json:"state"`
}

// registerWebSocket streams the caller's own state events. The session is
// resolved from the handshake and must already exist.
func registerWebSocket[T any](r router.Router[T], ep *endpoints, hook *dashboard.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	cfg.OnPreUpgrade = func(ctx router.Context) (router.UpgradeData, error) {
		id, err := ep.socketSession(ctx.Header("Cookie"), ctx.Header(dashboard.SessionHeader))
		if err != nil {
			return nil, err
		}
		return router.UpgradeData{upgradeSessionKey: id}, nil
	}
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		value, _ := ws.UpgradeData(upgradeSessionKey)
		id, _ := value.(string)
		if id == "" {
			return ws.CloseWithStatus(websocket.ClosePolicyViolation, dashboard.ErrSessionRequired.Error())
		}
		err := streamEvents(ws.Context(), hook, id, ws.WriteJSON)
		if ws.Context().Err() != nil {
			return ws.Close()
		}
		return err
	})
}

// socketSession resolves a known session from the handshake headers. Sockets
// never create sessions.
func (e *endpoints) socketSession(cookieHeader, sessionHeader string) (string, error) {
	id := strings.TrimSpace(sessionHeader)
	if id == "" {
		id = dashboard.SessionIDFromCookieHeader(cookieHeader, e.cookie.Name)
	}
	if id == "" {
		return "", dashboard.ErrSessionRequired
	}
	sess, ok := e.sessions.Get(id)
	if !ok {
		return "", fmt.Errorf("%w: unknown session", dashboard.ErrSessionRequired)
	}
	return sess.ID, nil
}

// streamEvents writes sessionID's state events until ctx ends or a write fails.
func streamEvents(ctx context.Context, hook *dashboard.BroadcastHook, sessionID string, write func(any) error) error {
	if sessionID == "" {
		return dashboard.ErrSessionRequired
	}
	events, cancel := hook.Subscribe(sessionID)
	defer cancel()
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if err := write(socketEvent{Kind: event.Kind, State: event.State}); err != nil {
				return err
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func inferLocale(ctx router.Context) string {
	if locale, ok := ctx.Locals("locale").(string); ok && locale != "" {
		return locale
	}
	if locale := strings.TrimSpace(ctx.Query("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	if header := ctx.Header("Accept-Language"); header != "" {
		if lang := parseAcceptLanguage(header); lang != "" {
			return lang
		}
	}
	return ""
}

func parseAcceptLanguage(header string) string {
	for _, token := range strings.Split(header, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if idx := strings.Index(token, ";"); idx >= 0 {
			token = token[:idx]
		}
		if token != "" {
			return strings.ToLower(token)
		}
	}
	return ""
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/"
	}
	if routes.Profile == "" {
		routes.Profile = "/profile"
	}
	if routes.Settings == "" {
		routes.Settings = "/settings"
	}
	if routes.State == "" {
		routes.State = "/dashboard/state"
	}
	if routes.Section == "" {
		routes.Section = "/dashboard/sections/:id"
	}
	if routes.Export == "" {
		routes.Export = "/dashboard/export.csv"
	}
	if routes.Preferences == "" {
		routes.Preferences = "/settings/preferences"
	}
	if routes.ThemeToggle == "" {
		routes.ThemeToggle = "/settings/theme/toggle"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/dashboard/ws"
	}
	return routes
}
