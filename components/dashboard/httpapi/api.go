package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/goliatone/go-logistics-dashboard/components/dashboard"
	"github.com/goliatone/go-logistics-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-logistics-dashboard/components/dashboard/queries"
)

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Name   string
	Path   string
	Secure bool
}

// Handlers exposes the dashboard's JSON operations over net/http.
type Handlers struct {
	Sessions  *dashboard.SessionManager
	Executor  Executor
	State     gocommand.Querier[queries.StateInput, dashboard.Snapshot]
	Section   gocommand.Querier[queries.SectionInput, dashboard.SectionPayload]
	Activity  gocommand.Querier[struct{}, []dashboard.ActivityCodeOption]
	Exporter  *dashboard.Exporter
	Settings  *dashboard.SettingsService
	Broadcast *dashboard.BroadcastHook
	Logger    *zap.Logger
	Cookie    CookieConfig
}

// NewHandlers wires handlers onto service with the default commands and queries.
func NewHandlers(service *dashboard.Service, broadcast *dashboard.BroadcastHook, telemetry commands.Telemetry, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		Sessions:  service.Sessions(),
		Executor:  NewCommandExecutor(service, telemetry),
		State:     queries.NewStateQuery(service),
		Section:   queries.NewSectionQuery(service),
		Activity:  queries.NewActivityCodesQuery(service),
		Exporter:  dashboard.NewExporter(service),
		Settings:  service.Settings(),
		Broadcast: broadcast,
		Logger:    logger,
	}
}

// StatePayload is returned by every state endpoint.
type StatePayload struct {
	State         dashboard.Snapshot             `json:"state"`
	ActivityCodes []dashboard.ActivityCodeOption `json:"activityCodes,omitempty"`
	Navigate      string                         `json:"navigate,omitempty"`
}

func (h *Handlers) HandleState(w http.ResponseWriter, r *http.Request) {
	viewer := h.viewer(w, r)
	snap, err := h.State.Query(r.Context(), queries.StateInput{SessionID: viewer.SessionID})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	payload := StatePayload{State: snap}
	if h.Activity != nil {
		codes, err := h.Activity.Query(r.Context(), struct{}{})
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		payload.ActivityCodes = codes
	}
	writeJSON(w, http.StatusOK, payload)
}

func (h *Handlers) HandleSetActivityCode(w http.ResponseWriter, r *http.Request) {
	var input commands.SetActivityCodeInput
	if !h.decode(w, r, &input) {
		return
	}
	viewer := h.viewer(w, r)
	input.SessionID = viewer.SessionID
	h.respondState(w, r, viewer, h.Executor.SetActivityCode(r.Context(), input), "")
}

func (h *Handlers) HandleSetDateRange(w http.ResponseWriter, r *http.Request) {
	var input commands.SetDateRangeInput
	if !h.decode(w, r, &input) {
		return
	}
	viewer := h.viewer(w, r)
	input.SessionID = viewer.SessionID
	h.respondState(w, r, viewer, h.Executor.SetDateRange(r.Context(), input), "")
}

// HandleSetSection switches the section and tells browsers to go back to the
// dashboard page.
func (h *Handlers) HandleSetSection(w http.ResponseWriter, r *http.Request) {
	var input commands.SetSectionInput
	if !h.decode(w, r, &input) {
		return
	}
	viewer := h.viewer(w, r)
	input.SessionID = viewer.SessionID
	h.respondState(w, r, viewer, h.Executor.SetSection(r.Context(), input), "/")
}

func (h *Handlers) HandleSetSidebar(w http.ResponseWriter, r *http.Request) {
	var input commands.SetSidebarInput
	if !h.decode(w, r, &input) {
		return
	}
	viewer := h.viewer(w, r)
	input.SessionID = viewer.SessionID
	h.respondState(w, r, viewer, h.Executor.SetSidebar(r.Context(), input), "")
}

// HandleSection loads the cards of sectionID for the caller's session.
func (h *Handlers) HandleSection(w http.ResponseWriter, r *http.Request, sectionID string) {
	viewer := h.viewer(w, r)
	payload, err := h.Section.Query(r.Context(), queries.SectionInput{Viewer: viewer, Section: sectionID})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

// HandleExport streams the CSV export. Sections come either repeated or
// comma separated.
func (h *Handlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	viewer := h.viewer(w, r)
	req := dashboard.ExportRequest{
		Viewer:   viewer,
		Date:     strings.TrimSpace(r.URL.Query().Get("date")),
		Sections: parseSections(r.URL.Query()["sections"]),
	}
	var buf bytes.Buffer
	if err := h.Exporter.Export(r.Context(), &buf, req); err != nil {
		h.writeError(w, r, err)
		return
	}
	name := "logistics-export"
	if req.Date != "" {
		name += "-" + req.Date
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".csv"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handlers) HandleGetPreferences(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Settings.Current())
}

func (h *Handlers) HandleSavePreferences(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if !h.decode(w, r, &payload) {
		return
	}
	if err := h.Executor.SavePreferences(r.Context(), commands.SavePreferencesInput{Payload: payload}); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.Settings.Current())
}

func (h *Handlers) HandleToggleTheme(w http.ResponseWriter, r *http.Request) {
	if err := h.Executor.ToggleTheme(r.Context(), commands.ToggleThemeInput{}); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.Settings.Current())
}

// HandleEvents streams the caller's state events as SSE.
func (h *Handlers) HandleEvents(w http.ResponseWriter, r *http.Request) {
	if h.Broadcast == nil {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	viewer := h.viewer(w, r)
	h.Broadcast.ServeSSE(viewer.SessionID).ServeHTTP(w, r)
}

// HandleWebSocket streams the caller's state events over a websocket.
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	if h.Broadcast == nil {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	viewer := h.viewer(w, r)
	h.Broadcast.ServeWebSocket(viewer.SessionID).ServeHTTP(w, r)
}

func (h *Handlers) respondState(w http.ResponseWriter, r *http.Request, viewer dashboard.ViewerContext, err error, navigate string) {
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	snap, err := h.State.Query(r.Context(), queries.StateInput{SessionID: viewer.SessionID})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, StatePayload{State: snap, Navigate: navigate})
}

// viewer resolves the caller's session from the session header or cookie,
// creating one (and setting the cookie) when neither is known.
func (h *Handlers) viewer(w http.ResponseWriter, r *http.Request) dashboard.ViewerContext {
	cookie := h.cookie()
	id := strings.TrimSpace(r.Header.Get(dashboard.SessionHeader))
	fromHeader := id != ""
	if !fromHeader {
		id = dashboard.SessionIDFromCookieHeader(r.Header.Get("Cookie"), cookie.Name)
	}
	sess, created := h.Sessions.Ensure(id)
	if created && !fromHeader {
		http.SetCookie(w, dashboard.NewSessionCookie(cookie.Name, sess.ID, cookie.Path, cookie.Secure))
	}
	w.Header().Set(dashboard.SessionHeader, sess.ID)
	return dashboard.ViewerContext{SessionID: sess.ID, Locale: requestLocale(r)}
}

func (h *Handlers) cookie() CookieConfig {
	cfg := h.Cookie
	if cfg.Name == "" {
		cfg.Name = dashboard.DefaultSessionCookie
	}
	return cfg
}

func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, r, fmt.Errorf("%w: %v", commands.ErrInvalidInput, err))
		return false
	}
	return true
}

func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError && h.Logger != nil {
		h.Logger.Error("dashboard request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// requestLocale picks the caller's locale: an explicit ?locale= wins over
// Accept-Language. Empty means the dashboard default.
func requestLocale(r *http.Request) string {
	if locale := strings.TrimSpace(r.URL.Query().Get("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return ""
	}
	base, _ := tags[0].Base()
	return base.String()
}

func parseSections(values []string) []dashboard.SectionID {
	var out []dashboard.SectionID
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, dashboard.SectionID(part))
			}
		}
	}
	return out
}
