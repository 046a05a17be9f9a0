package dashboard

import "context"

// StateHooks fans a state event out to several hooks in order.
type StateHooks []StateHook

var _ StateHook = StateHooks(nil)

// StateChanged satisfies StateHook. Nil entries are skipped.
func (hooks StateHooks) StateChanged(ctx context.Context, event StateEvent) {
	for _, hook := range hooks {
		if hook != nil {
			hook.StateChanged(ctx, event)
		}
	}
}

// TelemetryHook forwards state events to telemetry.
type TelemetryHook struct {
	Telemetry Telemetry
}

// StateChanged satisfies StateHook.
func (h TelemetryHook) StateChanged(ctx context.Context, event StateEvent) {
	if h.Telemetry == nil {
		return
	}
	h.Telemetry.Record(ctx, "dashboard.state.changed", map[string]any{
		"session":    event.SessionID,
		"kind":       string(event.Kind),
		"generation": event.State.Generation,
		"section":    string(event.State.ActiveSection),
	})
}
