package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-logistics-dashboard/components/dashboard"
)

// StateInput identifies the session whose state is read.
type StateInput struct {
	SessionID string
}

type stateService interface {
	Snapshot(sessionID string) (dashboard.Snapshot, error)
}

// StateQuery reads the filter and navigation state of a session.
type StateQuery struct {
	service stateService
}

// NewStateQuery builds the query.
func NewStateQuery(service stateService) *StateQuery {
	return &StateQuery{service: service}
}

var _ gocommand.Querier[StateInput, dashboard.Snapshot] = (*StateQuery)(nil)

// Query returns the current snapshot.
func (q *StateQuery) Query(_ context.Context, input StateInput) (dashboard.Snapshot, error) {
	return q.service.Snapshot(input.SessionID)
}

type activityService interface {
	ActivityCodes(ctx context.Context) ([]dashboard.ActivityCodeOption, error)
}

// ActivityCodesQuery lists the selectable activity codes.
type ActivityCodesQuery struct {
	service activityService
}

// NewActivityCodesQuery builds the query.
func NewActivityCodesQuery(service activityService) *ActivityCodesQuery {
	return &ActivityCodesQuery{service: service}
}

var _ gocommand.Querier[struct{}, []dashboard.ActivityCodeOption] = (*ActivityCodesQuery)(nil)

// Query returns the directory listing.
func (q *ActivityCodesQuery) Query(ctx context.Context, _ struct{}) ([]dashboard.ActivityCodeOption, error) {
	return q.service.ActivityCodes(ctx)
}
