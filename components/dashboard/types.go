package dashboard

import (
	"context"
	"fmt"
	"time"
)

// DateLayout is the wire format for every date exchanged with the metrics API.
const DateLayout = "2006-01-02"

// ActivityCode identifies a logistics site or business unit.
type ActivityCode string

func (c ActivityCode) String() string { return string(c) }

// ActivityCodeOption pairs a code with its display label.
type ActivityCodeOption struct {
	Code  ActivityCode `json:"code"`
	Label string       `json:"label"`
}

// DateRange is an inclusive calendar window using DateLayout strings.
type DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// IsZero reports whether neither bound is set.
func (r DateRange) IsZero() bool {
	return r.StartDate == "" && r.EndDate == ""
}

// Valid reports whether both bounds parse and start <= end.
func (r DateRange) Valid() bool {
	start, err := time.Parse(DateLayout, r.StartDate)
	if err != nil {
		return false
	}
	end, err := time.Parse(DateLayout, r.EndDate)
	if err != nil {
		return false
	}
	return !end.Before(start)
}

// Days returns the inclusive day count, or 0 when the range is not valid.
func (r DateRange) Days() int {
	if !r.Valid() {
		return 0
	}
	start, _ := time.Parse(DateLayout, r.StartDate)
	end, _ := time.Parse(DateLayout, r.EndDate)
	return int(end.Sub(start).Hours()/24) + 1
}

// PreviousPeriod returns the window of equal length ending the day before r starts.
func (r DateRange) PreviousPeriod() DateRange {
	days := r.Days()
	if days == 0 {
		return DateRange{}
	}
	start, _ := time.Parse(DateLayout, r.StartDate)
	prevEnd := start.AddDate(0, 0, -1)
	prevStart := prevEnd.AddDate(0, 0, -(days - 1))
	return DateRange{StartDate: prevStart.Format(DateLayout), EndDate: prevEnd.Format(DateLayout)}
}

// Trend is the direction of a metric relative to its previous period.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// SectionID names one of the dashboard sections. The set is closed.
type SectionID string

const (
	SectionDailyReports SectionID = "dailyreports"
	SectionProductivity SectionID = "productivity"
	SectionFinancial    SectionID = "financial"
	SectionAlerts       SectionID = "alerts"
	SectionStock        SectionID = "stock"
	SectionQuality      SectionID = "quality"
	SectionExport       SectionID = "export"
)

// DefaultSection is shown when nothing else has been selected.
const DefaultSection = SectionDailyReports

var allSections = []SectionID{
	SectionDailyReports,
	SectionProductivity,
	SectionFinancial,
	SectionAlerts,
	SectionStock,
	SectionQuality,
	SectionExport,
}

// AllSections returns every section in sidebar order.
func AllSections() []SectionID {
	return append([]SectionID(nil), allSections...)
}

// Valid reports whether id belongs to the closed section set.
func (id SectionID) Valid() bool {
	for _, candidate := range allSections {
		if candidate == id {
			return true
		}
	}
	return false
}

// ParseSectionID converts raw input into a SectionID.
func ParseSectionID(raw string) (SectionID, error) {
	id := SectionID(raw)
	if !id.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSection, raw)
	}
	return id, nil
}

// FilterState is the shared filter applied to every section.
type FilterState struct {
	ActivityCode ActivityCode `json:"activityCode"`
	DateRange    DateRange    `json:"dateRange"`
}

// Key identifies the filter for cache and invalidation purposes.
func (f FilterState) Key() string {
	return fmt.Sprintf("%s|%s|%s", f.ActivityCode, f.DateRange.StartDate, f.DateRange.EndDate)
}

// NavigationState tracks the shell chrome.
type NavigationState struct {
	ActiveSection SectionID `json:"activeSection"`
	SidebarOpen   bool      `json:"sidebarOpen"`
}

// Snapshot is an immutable copy of a session's dashboard state.
type Snapshot struct {
	FilterState
	NavigationState
	Generation uint64 `json:"generation"`
}

// StateEventKind labels the setter that produced a StateEvent.
type StateEventKind string

const (
	StateActivityCode  StateEventKind = "activity_code"
	StateDateRange     StateEventKind = "date_range"
	StateActiveSection StateEventKind = "active_section"
	StateSidebar       StateEventKind = "sidebar"
)

// StateEvent is published after every successful state mutation.
type StateEvent struct {
	SessionID string         `json:"session_id"`
	Kind      StateEventKind `json:"kind"`
	State     Snapshot       `json:"state"`
}

// StateHook is notified about state changes (websocket/SSE broadcast etc.).
type StateHook interface {
	StateChanged(ctx context.Context, event StateEvent)
}

type noopStateHook struct{}

func (noopStateHook) StateChanged(context.Context, StateEvent) {}

// ViewerContext carries request scoped information used for rendering.
type ViewerContext struct {
	SessionID string
	Locale    string
}
