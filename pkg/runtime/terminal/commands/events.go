package commands

import (
	"fmt"

	"github.com/de-tools/csat-atlas/pkg/models/domain"
	"github.com/spf13/cobra"
)

type EventsCmd struct {
	env        *Env
	minFailure float64
	severities []string
	sort       string
}

func NewEventsCmd(env *Env) *cobra.Command {
	ec := &EventsCmd{env: env}
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List critical survey events",
		Args:  cobra.NoArgs,
		RunE:  ec.run,
	}

	cmd.Flags().Float64Var(&ec.minFailure, "min-failure", 0, "Minimum failure percentage (0-100)")
	cmd.Flags().StringSliceVar(&ec.severities, "severity", nil, "Severities to keep (Critical, High, Medium, Low)")
	cmd.Flags().StringVar(&ec.sort, "sort", string(domain.EventSortDate), "Sort order: date, failure_percentage or severity")

	return cmd
}

func (ec *EventsCmd) filter() (domain.EventFilter, error) {
	if ec.minFailure < 0 || ec.minFailure > 100 {
		return domain.EventFilter{}, fmt.Errorf("invalid --min-failure %v. Expected a percentage between 0 and 100", ec.minFailure)
	}
	f := domain.EventFilter{
		MinFailurePct: ec.minFailure,
		SortBy:        domain.EventSort(ec.sort),
	}
	for _, name := range ec.severities {
		sev, err := domain.ParseSeverity(name)
		if err != nil {
			return domain.EventFilter{}, err
		}
		f.Severities = append(f.Severities, sev)
	}
	return f, nil
}

func (ec *EventsCmd) run(cmd *cobra.Command, _ []string) error {
	filter, err := ec.filter()
	if err != nil {
		return err
	}

	s, err := ec.env.open(cmd, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	data, err := s.svc.SyntheticContext(s.ctx)
	if err != nil {
		return err
	}
	view, err := s.svc.Events(data, filter)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(view.Events))
	for _, e := range view.Events {
		rows = append(rows, []string{
			e.Date.Format("2006-01-02"),
			e.DayOfWeek(),
			fmt.Sprintf("%d/%d", e.FailedMetrics, e.TotalMetrics),
			fmt.Sprintf("%.1f%%", e.FailurePercentage()),
			e.Promotion,
			e.Severity.String(),
		})
	}
	reporter := ec.env.Reporter
	if err := reporter.Table("Critical Events", []string{"Date", "Day", "Failed", "Failure", "Promotion", "Severity"}, rows); err != nil {
		return err
	}
	sum := view.Summary
	return reporter.Line("%d events, average failure %.1f%%, %d critical, %d high-risk days, %s risk",
		sum.Count, sum.AvgFailurePct, sum.CriticalCount, sum.HighRiskDays, sum.RiskLevel)
}
