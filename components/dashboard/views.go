package dashboard

import (
	"context"
	"sync"
)

// ViewStatus is the lifecycle of one card load.
type ViewStatus string

const (
	ViewIdle    ViewStatus = "idle"
	ViewLoading ViewStatus = "loading"
	ViewSuccess ViewStatus = "success"
	ViewError   ViewStatus = "error"
)

// CardState is the renderable state of a card.
type CardState struct {
	Code        string         `json:"code"`
	Title       string         `json:"title"`
	Chart       string         `json:"chart,omitempty"`
	Status      ViewStatus     `json:"status"`
	Data        WidgetData     `json:"data,omitempty"`
	Error       *ProviderError `json:"error,omitempty"`
	Generation  uint64         `json:"generation"`
	Placeholder string         `json:"placeholder"`
}

// cardView guards one card's state. Every load gets a ticket; only the
// holder of the latest ticket may resolve the view.
type cardView struct {
	mu     sync.Mutex
	state  CardState
	ticket uint64
	cancel context.CancelFunc
	done   chan struct{}
}

// begin enters loading for gen, cancelling any superseded load.
func (v *cardView) begin(ctx context.Context, gen uint64) (context.Context, uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cancel != nil {
		v.cancel()
	}
	v.settle()
	loadCtx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.done = make(chan struct{})
	v.ticket++
	v.state.Status = ViewLoading
	v.state.Generation = gen
	v.state.Data = nil
	v.state.Error = nil
	return loadCtx, v.ticket
}

// resolve settles the load identified by ticket. It reports false when the
// result is stale and was discarded.
func (v *cardView) resolve(ticket uint64, data WidgetData, err error) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if ticket != v.ticket || v.state.Status != ViewLoading {
		return false
	}
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	defer v.settle()
	if err != nil {
		v.state.Status = ViewError
		v.state.Error = AsProviderError(err)
		v.state.Data = nil
		return true
	}
	v.state.Status = ViewSuccess
	v.state.Data = data
	v.state.Error = nil
	return true
}

// reset cancels in-flight work and returns the view to idle.
func (v *cardView) reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.ticket++
	v.state.Status = ViewIdle
	v.state.Data = nil
	v.state.Error = nil
	v.settle()
}

// settle wakes waiters of the current load. Callers hold v.mu.
func (v *cardView) settle() {
	if v.done != nil {
		close(v.done)
		v.done = nil
	}
}

// await blocks while a load is in flight and returns the settled state. A
// cancelled ctx returns whatever the view holds at that point.
func (v *cardView) await(ctx context.Context) CardState {
	for {
		v.mu.Lock()
		state, done := v.state, v.done
		v.mu.Unlock()
		if state.Status != ViewLoading || done == nil {
			return state
		}
		select {
		case <-done:
		case <-ctx.Done():
			return v.snapshot()
		}
	}
}

func (v *cardView) snapshot() CardState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// viewSet holds the card views of one session.
type viewSet struct {
	mu    sync.Mutex
	views map[string]*cardView
}

func newViewSet() *viewSet {
	return &viewSet{views: make(map[string]*cardView)}
}

func (s *viewSet) card(def CardDefinition, title string) *cardView {
	s.mu.Lock()
	defer s.mu.Unlock()
	view, ok := s.views[def.Code]
	if !ok {
		view = &cardView{state: CardState{
			Code:        def.Code,
			Status:      ViewIdle,
			Chart:       def.Chart,
			Placeholder: def.placeholder(),
		}}
		s.views[def.Code] = view
	}
	view.mu.Lock()
	view.state.Title = title
	view.mu.Unlock()
	return view
}

// invalidate resets every view; called when the filter key changes.
func (s *viewSet) invalidate() {
	s.mu.Lock()
	views := make([]*cardView, 0, len(s.views))
	for _, view := range s.views {
		views = append(views, view)
	}
	s.mu.Unlock()
	for _, view := range views {
		view.reset()
	}
}
