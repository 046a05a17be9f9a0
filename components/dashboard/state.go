package dashboard

import (
	"context"
	"sync"
)

// StoreOptions seeds a Store.
type StoreOptions struct {
	SessionID     string
	ActivityCode  ActivityCode
	DateRange     DateRange
	ActiveSection SectionID
	SidebarOpen   *bool
	Hook          StateHook
}

// Store holds the filter and navigation state of one dashboard session.
// Filter mutations bump the generation so loads issued against an older
// filter can be recognised as stale.
type Store struct {
	mu         sync.RWMutex
	sessionID  string
	filters    FilterState
	nav        NavigationState
	generation uint64
	hook       StateHook
}

// NewStore builds a store with defaults for any unset option.
func NewStore(opts StoreOptions) *Store {
	rng := opts.DateRange
	if rng.IsZero() {
		rng = DefaultDateRange()
	}
	section := opts.ActiveSection
	if !section.Valid() {
		section = DefaultSection
	}
	sidebar := true
	if opts.SidebarOpen != nil {
		sidebar = *opts.SidebarOpen
	}
	hook := opts.Hook
	if hook == nil {
		hook = noopStateHook{}
	}
	return &Store{
		sessionID: opts.SessionID,
		filters: FilterState{
			ActivityCode: opts.ActivityCode,
			DateRange:    rng,
		},
		nav: NavigationState{
			ActiveSection: section,
			SidebarOpen:   sidebar,
		},
		generation: 1,
		hook:       hook,
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		FilterState:     s.filters,
		NavigationState: s.nav,
		Generation:      s.generation,
	}
}

// Generation returns the current filter generation.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// SetActivityCode replaces the active code. Codes are not validated here;
// unknown codes simply produce empty results upstream.
func (s *Store) SetActivityCode(ctx context.Context, code ActivityCode) Snapshot {
	return s.update(ctx, StateActivityCode, func() bool {
		s.filters.ActivityCode = code
		return true
	})
}

// SetDateRange replaces the active window. Ordering is the caller's concern.
func (s *Store) SetDateRange(ctx context.Context, rng DateRange) Snapshot {
	return s.update(ctx, StateDateRange, func() bool {
		s.filters.DateRange = rng
		return true
	})
}

// SetActiveSection switches the visible section.
func (s *Store) SetActiveSection(ctx context.Context, id SectionID) (Snapshot, error) {
	if !id.Valid() {
		return s.Snapshot(), ErrUnknownSection
	}
	return s.update(ctx, StateActiveSection, func() bool {
		s.nav.ActiveSection = id
		return false
	}), nil
}

// SetSidebarOpen toggles the sidebar.
func (s *Store) SetSidebarOpen(ctx context.Context, open bool) Snapshot {
	return s.update(ctx, StateSidebar, func() bool {
		s.nav.SidebarOpen = open
		return false
	})
}

// update applies mutate under the lock; mutate reports whether the filter
// changed. Subscribers are notified after the lock is released.
func (s *Store) update(ctx context.Context, kind StateEventKind, mutate func() bool) Snapshot {
	s.mu.Lock()
	if mutate() {
		s.generation++
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.hook.StateChanged(ctx, StateEvent{
		SessionID: s.sessionID,
		Kind:      kind,
		State:     snap,
	})
	return snap
}
