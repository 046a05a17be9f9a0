package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-logistics-dashboard/components/dashboard"
)

// SectionInput identifies a section request for a viewer.
type SectionInput struct {
	Viewer  dashboard.ViewerContext
	Section string
}

type sectionService interface {
	LoadSection(ctx context.Context, viewer dashboard.ViewerContext, id dashboard.SectionID) (dashboard.SectionPayload, error)
}

// SectionQuery loads every card of a section under the session's filters.
type SectionQuery struct {
	service sectionService
}

// NewSectionQuery builds the query.
func NewSectionQuery(service sectionService) *SectionQuery {
	return &SectionQuery{service: service}
}

var _ gocommand.Querier[SectionInput, dashboard.SectionPayload] = (*SectionQuery)(nil)

// Query parses the section id and loads it.
func (q *SectionQuery) Query(ctx context.Context, input SectionInput) (dashboard.SectionPayload, error) {
	id, err := dashboard.ParseSectionID(input.Section)
	if err != nil {
		return dashboard.SectionPayload{}, err
	}
	return q.service.LoadSection(ctx, input.Viewer, id)
}
