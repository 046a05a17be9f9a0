package dashboard

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"
)

// ExportOption is one selectable data kind on the export form.
type ExportOption struct {
	Section SectionID `json:"section"`
	Label   string    `json:"label"`
}

var exportLabels = map[SectionID]map[string]string{
	SectionDailyReports: {"fr": "Rapports Journaliers", "en": "Daily Reports"},
	SectionProductivity: {"fr": "Métriques de Productivité", "en": "Productivity Metrics"},
	SectionFinancial:    {"fr": "Métriques Financières", "en": "Financial Metrics"},
	SectionAlerts:       {"fr": "Alertes du Système", "en": "System Alerts"},
	SectionStock:        {"fr": "Données de Stock et Stockage", "en": "Stock and Storage Data"},
	SectionQuality:      {"fr": "Données d'Assurance Qualité", "en": "Quality Assurance Data"},
}

// ExportableSections lists every section that carries cards.
func ExportableSections() []SectionID {
	out := make([]SectionID, 0, len(AllSections()))
	for _, id := range AllSections() {
		if id != SectionExport {
			out = append(out, id)
		}
	}
	return out
}

// ExportOptions returns the export form choices for locale.
func ExportOptions(locale string) []ExportOption {
	sections := ExportableSections()
	out := make([]ExportOption, len(sections))
	for i, id := range sections {
		out[i] = ExportOption{Section: id, Label: ResolveLocalizedValue(exportLabels[id], locale, string(id))}
	}
	return out
}

// ExportRequest selects what to export. An empty date means today and no
// sections means all of them.
type ExportRequest struct {
	Viewer   ViewerContext
	Date     string
	Sections []SectionID
}

// Exporter writes card summaries as CSV.
type Exporter struct {
	service *Service
	now     func() time.Time
}

// NewExporter wires an exporter onto service.
func NewExporter(service *Service) *Exporter {
	return &Exporter{service: service, now: clock}
}

// ErrInvalidExport marks export requests with a bad date or section.
var ErrInvalidExport = errors.New("dashboard: invalid export request")

var exportHeader = []string{"section", "card", "label", "value"}

// Export writes one record per summary row. A failed card becomes a single
// error row; the export as a whole only fails on bad input or write errors.
// An empty date exports the last day of the session's range.
func (e *Exporter) Export(ctx context.Context, w io.Writer, req ExportRequest) error {
	snap, err := e.service.Snapshot(req.Viewer.SessionID)
	if err != nil {
		return err
	}
	date := req.Date
	if date == "" {
		date = snap.DateRange.EndDate
	}
	if date == "" {
		date = FormatDate(e.now())
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("%w: date %q: %v", ErrInvalidExport, date, err)
	}
	sections := req.Sections
	if len(sections) == 0 {
		sections = ExportableSections()
	}
	for _, id := range sections {
		if !id.Valid() {
			return fmt.Errorf("%w: section %q: %w", ErrInvalidExport, id, ErrUnknownSection)
		}
	}
	filters := FilterState{
		ActivityCode: snap.ActivityCode,
		DateRange:    DateRange{StartDate: date, EndDate: date},
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write(exportHeader); err != nil {
		return err
	}
	for _, id := range sections {
		results, err := e.service.FetchSection(ctx, filters, req.Viewer, id)
		if err != nil {
			return err
		}
		for _, result := range results {
			if err := writeCardRecords(writer, id, result); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	e.service.recordTelemetry(ctx, "dashboard.export", map[string]any{
		"session":  req.Viewer.SessionID,
		"date":     date,
		"sections": len(sections),
	})
	return nil
}

func writeCardRecords(writer *csv.Writer, section SectionID, result CardResult) error {
	if result.Error != nil {
		return writer.Write([]string{string(section), result.Card.Code, "error", result.Error.Message})
	}
	rows, _ := result.Data["summary"].([]SummaryRow)
	for _, row := range rows {
		if err := writer.Write([]string{string(section), result.Card.Code, row.Label, row.Value}); err != nil {
			return err
		}
	}
	return nil
}
