package commands

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/de-tools/csat-atlas/pkg/models/domain"
	"github.com/de-tools/csat-atlas/pkg/services/dashboard"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

type AnalyzeCmd struct {
	env     *Env
	groupBy string
	value   string
}

func NewAnalyzeCmd(env *Env) *cobra.Command {
	ac := &AnalyzeCmd{env: env}
	cmd := &cobra.Command{
		Use:   "analyze FILE...",
		Short: "Profile uploaded CSV or XLSX files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.groupBy, "group-by", "", "Categorical column to group by")
	cmd.Flags().StringVar(&ac.value, "value", "", "Numeric column aggregated per group")

	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, args []string) error {
	bar := progressbar.NewOptions(len(args),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSetDescription("ingesting files"),
		progressbar.OptionClearOnFinish(),
	)

	s, err := ac.env.open(cmd, func(domain.FileInfo) {
		_ = bar.Add(1)
	})
	if err != nil {
		return err
	}
	defer s.Close()

	sources, closeAll, err := openSources(args)
	if err != nil {
		return err
	}
	defer closeAll()

	rc, err := s.svc.UploadedContext(s.ctx, sources...)
	if err != nil {
		return err
	}
	if rc.FallbackReason != "" {
		return errors.New(rc.FallbackReason)
	}
	_ = bar.Finish()

	a, err := s.svc.UploadAnalysis(s.ctx, rc, dashboard.GroupRequest{GroupBy: ac.groupBy, Value: ac.value})
	if err != nil {
		return err
	}
	return ac.print(a)
}

func (ac *AnalyzeCmd) print(a dashboard.UploadAnalysis) error {
	reporter := ac.env.Reporter

	var files [][]string
	for _, f := range a.Files {
		files = append(files, []string{f.Name, strconv.Itoa(f.Rows), strconv.Itoa(f.Columns)})
	}
	if err := reporter.Table("Files", []string{"File", "Rows", "Columns"}, files); err != nil {
		return err
	}

	var columns [][]string
	for _, c := range a.Columns {
		columns = append(columns, []string{c.Name, string(c.Kind)})
	}
	if err := reporter.Table("Columns", []string{"Column", "Kind"}, columns); err != nil {
		return err
	}

	c := a.Completeness
	if err := reporter.Line("\n%d rows, %d columns, %d missing of %d cells (%.1f%% complete), %d unique values",
		c.Rows, c.Columns, c.Missing, c.Cells, c.Pct, c.UniqueValues); err != nil {
		return err
	}

	if len(a.Describe) > 0 {
		var rows [][]string
		for _, d := range a.Describe {
			rows = append(rows, []string{
				d.Column, strconv.Itoa(d.Count), formatFloat(d.Mean), formatFloat(d.StdDev),
				formatFloat(d.Min), formatFloat(d.Q25), formatFloat(d.Median), formatFloat(d.Q75), formatFloat(d.Max),
			})
		}
		headers := []string{"Column", "Count", "Mean", "Std", "Min", "25%", "50%", "75%", "Max"}
		if err := reporter.Table("Statistics", headers, rows); err != nil {
			return err
		}
	}

	if a.Correlation != nil {
		headers := append([]string{""}, a.Correlation.Columns...)
		var rows [][]string
		for i, name := range a.Correlation.Columns {
			row := []string{name}
			for _, v := range a.Correlation.Values[i] {
				if math.IsNaN(v) {
					row = append(row, "n/a")
					continue
				}
				row = append(row, fmt.Sprintf("%.3f", v))
			}
			rows = append(rows, row)
		}
		if err := reporter.Table("Correlation", headers, rows); err != nil {
			return err
		}
	}

	if len(a.Variability) > 0 {
		var rows [][]string
		for _, v := range a.Variability {
			rows = append(rows, []string{v.Column, formatFloat(v.Mean), formatFloat(v.StdDev), fmt.Sprintf("%.1f%%", v.CV), v.RiskLevel.String()})
		}
		if err := reporter.Table("Variability", []string{"Column", "Mean", "Std", "CV", "Risk"}, rows); err != nil {
			return err
		}
	}

	if len(a.Groups) > 0 {
		var rows [][]string
		for _, g := range a.Groups {
			rows = append(rows, []string{g.Group, formatFloat(g.Mean), strconv.Itoa(g.Count), formatFloat(g.StdDev)})
		}
		title := fmt.Sprintf("%s by %s", ac.value, ac.groupBy)
		if err := reporter.Table(title, []string{"Group", "Mean", "Count", "Std"}, rows); err != nil {
			return err
		}
	}

	for _, n := range a.Notes {
		if err := reporter.Line("note: %s", n); err != nil {
			return err
		}
	}
	return nil
}
