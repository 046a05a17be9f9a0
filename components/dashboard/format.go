package dashboard

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultRangeDays is the width of the trailing window used when no range is set.
const DefaultRangeDays = 7

var (
	clock   = time.Now
	printer = message.NewPrinter(language.AmericanEnglish)
)

// FormatDate renders t using DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DefaultDateRange returns the trailing window ending today.
func DefaultDateRange() DateRange {
	return DefaultDateRangeAt(clock())
}

// DefaultDateRangeAt returns the trailing window ending on now.
func DefaultDateRangeAt(now time.Time) DateRange {
	return DateRange{
		StartDate: FormatDate(now.AddDate(0, 0, -DefaultRangeDays)),
		EndDate:   FormatDate(now),
	}
}

// ResolveDateRange substitutes the default window for a zero range.
func ResolveDateRange(r DateRange) DateRange {
	if r.IsZero() {
		return DefaultDateRange()
	}
	return r
}

// FormatDateRange renders a range for the header picker, e.g. "Mar 1, 2024 - Mar 7, 2024".
func FormatDateRange(r DateRange) string {
	start, err := time.Parse(DateLayout, r.StartDate)
	if err != nil {
		return "Pick a date range"
	}
	end, err := time.Parse(DateLayout, r.EndDate)
	if err != nil {
		return start.Format("Jan 2, 2006")
	}
	return start.Format("Jan 2, 2006") + " - " + end.Format("Jan 2, 2006")
}

// FormatPercent renders a 0-100 rate with one decimal.
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// FormatCurrency renders whole US dollars with thousands separators.
func FormatCurrency(value float64) string {
	rounded := int64(math.Round(value))
	if rounded < 0 {
		return "-" + printer.Sprintf("$%d", -rounded)
	}
	return printer.Sprintf("$%d", rounded)
}

// FormatNumber renders a number with thousands separators.
func FormatNumber(value float64) string {
	if value == math.Trunc(value) && math.Abs(value) < math.MaxInt64 {
		return printer.Sprintf("%d", int64(value))
	}
	return printer.Sprint(number.Decimal(value, number.MaxFractionDigits(3)))
}

// FormatDuration renders minutes as "N min", "H hr" or "H hr M min".
func FormatDuration(minutes float64) string {
	total := int(math.Round(minutes))
	if total < 60 {
		return fmt.Sprintf("%d min", total)
	}
	hours, rest := total/60, total%60
	if rest == 0 {
		return fmt.Sprintf("%d hr", hours)
	}
	return fmt.Sprintf("%d hr %d min", hours, rest)
}

// Severity ranks alerts for display.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// criticalDeviation is the relative distance from the threshold that escalates
// a triggered alert to critical.
const criticalDeviation = 0.2

// AlertSeverity derives the severity of an alert from its threshold distance.
func AlertSeverity(triggered bool, current, threshold float64) Severity {
	if !triggered {
		return SeverityLow
	}
	if threshold != 0 && math.Abs(current-threshold)/threshold > criticalDeviation {
		return SeverityCritical
	}
	return SeverityHigh
}

// SeverityClass maps a severity to the CSS classes used by alert badges.
func SeverityClass(severity Severity) string {
	switch severity {
	case SeverityLow:
		return "bg-info text-info-foreground"
	case SeverityMedium:
		return "bg-warning text-warning-foreground"
	case SeverityHigh, SeverityCritical:
		return "bg-destructive text-destructive-foreground"
	default:
		return "bg-muted text-muted-foreground"
	}
}

// TruncateText shortens text to maxLength runes, appending an ellipsis.
func TruncateText(text string, maxLength int) string {
	if utf8.RuneCountInString(text) <= maxLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxLength]) + "..."
}

// Initials returns up to two upper-case initials for a display name.
func Initials(name string) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(part)
		b.WriteRune(r)
		if utf8.RuneCountInString(b.String()) == 2 {
			break
		}
	}
	return strings.ToUpper(b.String())
}
