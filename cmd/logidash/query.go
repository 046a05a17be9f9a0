package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	dashboard "github.com/goliatone/go-logistics-dashboard/components/dashboard"
	"github.com/goliatone/go-logistics-dashboard/pkg/metrics"
)

type queryCmd struct {
	Metric          string `arg:"" optional:"" help:"Metric name (e.g. shipping-cost). Omit to list every metric."`
	ActivityCode    string `short:"a" name:"activity-code" help:"Activity code (defaults to the first configured one)."`
	Start           string `help:"Start date (YYYY-MM-DD)."`
	End             string `help:"End date (YYYY-MM-DD)."`
	Team            string `help:"Team id for pieces-per-worker."`
	Warehouse       string `help:"Warehouse id for occupancy-rate."`
	ProductCategory string `name:"product-category" help:"Product category for stock-rotation."`
	Reason          string `help:"Return reason for returns-analysis."`
	Threshold       string `help:"Alert threshold."`
}

func (cmd *queryCmd) Run(rt *runtime) error {
	if cmd.Metric == "" {
		for _, name := range metrics.Names() {
			fmt.Fprintln(rt.out, name)
		}
		return nil
	}
	entry, ok := metrics.Lookup(cmd.Metric)
	if !ok {
		return fmt.Errorf("logidash: unknown metric %q (run `logidash query` for the list)", cmd.Metric)
	}
	params, err := cmd.params(rt)
	if err != nil {
		return err
	}
	provider, err := metrics.New(rt.cfg.MetricsProvider())
	if err != nil {
		return err
	}
	result, err := entry.Run(rt.ctx, provider, params)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(rt.out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func (cmd *queryCmd) params(rt *runtime) (metrics.Params, error) {
	code := dashboard.ActivityCode(strings.TrimSpace(cmd.ActivityCode))
	if code == "" {
		code = dashboard.NewStaticDirectory(rt.cfg.ActivityCodes).First()
	}
	rng := dashboard.DefaultDateRange()
	if cmd.Start != "" {
		rng.StartDate = cmd.Start
	}
	if cmd.End != "" {
		rng.EndDate = cmd.End
	}
	if !rng.Valid() {
		return metrics.Params{}, fmt.Errorf("logidash: invalid date range %s..%s", rng.StartDate, rng.EndDate)
	}
	params := metrics.Params{
		ActivityCode:    code,
		Range:           rng,
		Previous:        rng.PreviousPeriod(),
		TeamID:          cmd.Team,
		WarehouseID:     cmd.Warehouse,
		ProductCategory: cmd.ProductCategory,
		Reason:          cmd.Reason,
	}
	if cmd.Threshold != "" {
		value, err := strconv.ParseFloat(cmd.Threshold, 64)
		if err != nil {
			return metrics.Params{}, fmt.Errorf("logidash: threshold: %w", err)
		}
		params.Threshold = &value
	}
	return params, nil
}

type sectionsCmd struct {
	Locale string `default:"fr" enum:"fr,en" help:"Label language."`
	Format string `default:"yaml" enum:"yaml,json" help:"Output format."`
}

type sectionListing struct {
	ID    dashboard.SectionID `yaml:"id" json:"id"`
	Name  string              `yaml:"name" json:"name"`
	Title string              `yaml:"title,omitempty" json:"title,omitempty"`
	Cards []cardListing       `yaml:"cards,omitempty" json:"cards,omitempty"`
}

type cardListing struct {
	Code  string `yaml:"code" json:"code"`
	Name  string `yaml:"name" json:"name"`
	Chart string `yaml:"chart,omitempty" json:"chart,omitempty"`
}

func (cmd *sectionsCmd) Run(rt *runtime) error {
	provider, err := metrics.New(rt.cfg.MetricsProvider())
	if err != nil {
		return err
	}
	reg := dashboard.NewRegistry()
	if err := dashboard.RegisterDefaults(reg, dashboard.SectionDeps{Metrics: provider}); err != nil {
		return err
	}
	listing := listSections(reg, cmd.Locale)
	if cmd.Format == "json" {
		enc := json.NewEncoder(rt.out)
		enc.SetIndent("", "  ")
		return enc.Encode(listing)
	}
	enc := yaml.NewEncoder(rt.out)
	enc.SetIndent(2)
	if err := enc.Encode(listing); err != nil {
		return err
	}
	return enc.Close()
}

func listSections(reg *dashboard.Registry, locale string) []sectionListing {
	sections := reg.Sections()
	out := make([]sectionListing, 0, len(sections))
	for _, def := range sections {
		entry := sectionListing{
			ID:    def.ID,
			Name:  def.NameForLocale(locale),
			Title: def.TitleForLocale(locale),
		}
		cards := reg.Cards(def.ID)
		for _, card := range cards {
			entry.Cards = append(entry.Cards, cardListing{
				Code:  card.Code,
				Name:  card.NameForLocale(locale),
				Chart: card.Chart,
			})
		}
		out = append(out, entry)
	}
	return out
}
