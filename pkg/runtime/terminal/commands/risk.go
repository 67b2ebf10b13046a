package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

type RiskCmd struct {
	env    *Env
	metric string
}

func NewRiskCmd(env *Env) *cobra.Command {
	rc := &RiskCmd{env: env}
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Rank metric priorities or assess a single metric",
		Args:  cobra.NoArgs,
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.metric, "metric", "", "Metric to assess in detail")

	return cmd
}

func (rc *RiskCmd) run(cmd *cobra.Command, _ []string) error {
	s, err := rc.env.open(cmd, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	data, err := s.svc.SyntheticContext(s.ctx)
	if err != nil {
		return err
	}
	reporter := rc.env.Reporter

	if rc.metric == "" {
		var rows [][]string
		for _, p := range s.svc.Priorities(data) {
			rows = append(rows, []string{
				p.Metric,
				formatFloat(p.Current),
				formatFloat(p.Target),
				fmt.Sprintf("%+.2f", p.Trend),
				fmt.Sprintf("%+.2f", p.Gap),
				p.Priority.String(),
			})
		}
		return reporter.Table("Metric Priorities", []string{"Metric", "Current", "Target", "Trend", "Gap", "Priority"}, rows)
	}

	a, err := s.svc.MetricAssessment(data, rc.metric)
	if err != nil {
		return err
	}

	if err := reporter.Line("\n%s: current %.2f, target %.2f, %s risk, %s trend (%+.2f), %s priority",
		a.Metric, a.Current, a.Target, a.Risk.Level, a.Risk.Trend, a.TrendDelta, a.Priority); err != nil {
		return err
	}

	var periods [][]string
	for _, p := range a.Periods {
		periods = append(periods, []string{p.Period, formatFloat(p.Score), fmt.Sprintf("%+.2f", p.DeltaVsTarget), p.Risk.String()})
	}
	if err := reporter.Table("Periods", []string{"Period", "Score", "vs Target", "Risk"}, periods); err != nil {
		return err
	}

	var recs [][]string
	for i, r := range a.Recommendations {
		recs = append(recs, []string{fmt.Sprint(i + 1), r})
	}
	return reporter.Table("Recommendations", []string{"#", "Action"}, recs)
}
