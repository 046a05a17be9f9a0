package commands

import dashboard "github.com/goliatone/go-logistics-dashboard/components/dashboard"

// Telemetry is the event sink commands report to.
type Telemetry = dashboard.Telemetry

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return dashboard.NopTelemetry
	}
	return t
}
