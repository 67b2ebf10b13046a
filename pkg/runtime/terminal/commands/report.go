package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

type ReportCmd struct {
	env    *Env
	month  string
	inputs []string
}

func NewReportCmd(env *Env) *cobra.Command {
	rc := &ReportCmd{env: env}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the satisfaction report",
		Args:  cobra.NoArgs,
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.month, "month", "", "Reporting month to summarize (e.g. \"July 2025\"); all months when empty")
	cmd.Flags().StringSliceVar(&rc.inputs, "input", nil, "CSV or XLSX files to report on instead of the synthetic data")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	s, err := rc.env.open(cmd, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	data, err := s.reportContext(rc.inputs, rc.env.Reporter)
	if err != nil {
		return err
	}

	report, err := s.svc.Report(data, rc.month)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	return rc.env.Reporter.Handle(report)
}
