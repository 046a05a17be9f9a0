package dashboard

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatters(t *testing.T) {
	assert.Equal(t, "23.4%", FormatPercent(23.44))
	assert.Equal(t, "$58,200", FormatCurrency(58200))
	assert.Equal(t, "-$1,250", FormatCurrency(-1250))
	assert.Equal(t, "1,970", FormatNumber(1970))
	assert.Equal(t, "35 min", FormatDuration(35))
	assert.Equal(t, "1 hr 30 min", FormatDuration(90))
	assert.Equal(t, "2 hr", FormatDuration(120))
	assert.Equal(t, "25 min", FormatDuration(24.6))
}

func TestDefaultDateRangeSpansSevenDays(t *testing.T) {
	now := time.Date(2024, 3, 8, 15, 0, 0, 0, time.UTC)
	rng := DefaultDateRangeAt(now)
	if rng.EndDate != "2024-03-08" || rng.StartDate != "2024-03-01" {
		t.Fatalf("unexpected default range %#v", rng)
	}

	restore := clock
	clock = func() time.Time { return now }
	defer func() { clock = restore }()
	if got := DefaultDateRange(); got != rng {
		t.Fatalf("expected clock-based range %#v, got %#v", rng, got)
	}
	if got := ResolveDateRange(DateRange{}); got != rng {
		t.Fatalf("expected zero range to resolve to default, got %#v", got)
	}
}

func TestFormatDateRange(t *testing.T) {
	assert.Equal(t, "Mar 1, 2024 - Mar 7, 2024", FormatDateRange(DateRange{StartDate: "2024-03-01", EndDate: "2024-03-07"}))
	assert.Equal(t, "Pick a date range", FormatDateRange(DateRange{}))
}

func TestDateRangePreviousPeriod(t *testing.T) {
	rng := DateRange{StartDate: "2024-03-01", EndDate: "2024-03-07"}
	assert.Equal(t, 7, rng.Days())
	assert.Equal(t, DateRange{StartDate: "2024-02-23", EndDate: "2024-02-29"}, rng.PreviousPeriod())

	inverted := DateRange{StartDate: "2024-03-07", EndDate: "2024-03-01"}
	assert.False(t, inverted.Valid())
	assert.True(t, inverted.PreviousPeriod().IsZero())
}

func TestAlertSeverity(t *testing.T) {
	assert.Equal(t, SeverityLow, AlertSeverity(false, 10, 100))
	assert.Equal(t, SeverityHigh, AlertSeverity(true, 90, 100))
	assert.Equal(t, SeverityCritical, AlertSeverity(true, 70, 100))
	assert.Equal(t, SeverityCritical, AlertSeverity(true, 125, 100))
	assert.Equal(t, SeverityHigh, AlertSeverity(true, 5, 0))
}

func TestSeverityClassAndText(t *testing.T) {
	assert.Equal(t, "bg-info text-info-foreground", SeverityClass(SeverityLow))
	assert.Equal(t, "bg-warning text-warning-foreground", SeverityClass(SeverityMedium))
	assert.Equal(t, "bg-destructive text-destructive-foreground", SeverityClass(SeverityCritical))
	assert.Equal(t, "bg-muted text-muted-foreground", SeverityClass("unknown"))
	assert.Equal(t, "Logis...", TruncateText("Logistics", 5))
	assert.Equal(t, "short", TruncateText("short", 10))
	assert.Equal(t, "LS", Initials("Logistics Supervisor"))
	assert.Equal(t, "JM", Initials("jean marc dupont"))
}

func TestProviderErrorNormalization(t *testing.T) {
	assert.Equal(t, "Something went wrong (status 500)", NewProviderError(500, "").Error())
	assert.Equal(t, MessageNetworkError, AsProviderError(errors.New("dial tcp")).Message)
	assert.Nil(t, AsProviderError(nil))

	original := NewProviderError(404, "Activity not found")
	wrapped := AsProviderError(errors.Join(errors.New("ctx"), original))
	assert.Same(t, original, wrapped)
}

func TestParseSectionID(t *testing.T) {
	id, err := ParseSectionID("stock")
	assert.NoError(t, err)
	assert.Equal(t, SectionStock, id)
	_, err = ParseSectionID("profile")
	assert.ErrorIs(t, err, ErrUnknownSection)
}
