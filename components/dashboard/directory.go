package dashboard

import "context"

// ActivityDirectory lists the activity codes a viewer can pick from.
type ActivityDirectory interface {
	ActivityCodes(ctx context.Context) ([]ActivityCodeOption, error)
}

// StaticDirectory serves a fixed list of activity codes.
type StaticDirectory struct {
	options []ActivityCodeOption
}

// NewStaticDirectory copies options. An empty list falls back to the
// default codes.
func NewStaticDirectory(options []ActivityCodeOption) *StaticDirectory {
	if len(options) == 0 {
		options = DefaultActivityCodes()
	}
	return &StaticDirectory{options: append([]ActivityCodeOption(nil), options...)}
}

// ActivityCodes satisfies ActivityDirectory.
func (d *StaticDirectory) ActivityCodes(context.Context) ([]ActivityCodeOption, error) {
	return append([]ActivityCodeOption(nil), d.options...), nil
}

// First returns the first configured code.
func (d *StaticDirectory) First() ActivityCode {
	if len(d.options) == 0 {
		return ""
	}
	return d.options[0].Code
}

// DefaultActivityCodes returns the built-in activity sites.
func DefaultActivityCodes() []ActivityCodeOption {
	return []ActivityCodeOption{
		{Code: "ACT001", Label: "Main Warehouse"},
		{Code: "ACT002", Label: "East Distribution"},
		{Code: "ACT003", Label: "West Distribution"},
		{Code: "ACT004", Label: "North Center"},
		{Code: "ACT005", Label: "South Center"},
	}
}
