package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/de-tools/csat-atlas/pkg/services/dashboard"
	"github.com/de-tools/csat-atlas/pkg/services/export"
	"github.com/spf13/cobra"
)

type ExportCmd struct {
	env     *Env
	dataset string
	format  string
	output  string
	inputs  []string
	now     func() time.Time
}

func NewExportCmd(env *Env) *cobra.Command {
	ec := &ExportCmd{env: env, now: time.Now}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a dataset to a CSV or XLSX file",
		Args:  cobra.NoArgs,
		RunE:  ec.run,
	}

	cmd.Flags().StringVar(&ec.dataset, "dataset", dashboard.DatasetSummary, "Dataset to export: daily, events, summary or upload")
	cmd.Flags().StringVar(&ec.format, "format", "csv", "Output format: csv or xlsx")
	cmd.Flags().StringVar(&ec.output, "output", "", "Output file (default <dataset>_<YYYYMMDD>.<format>)")
	cmd.Flags().StringSliceVar(&ec.inputs, "input", nil, "CSV or XLSX files to export from instead of the synthetic data")

	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, _ []string) error {
	if ec.format != "csv" && ec.format != "xlsx" {
		return fmt.Errorf("unknown format %q. Expected csv or xlsx", ec.format)
	}

	s, err := ec.env.open(cmd, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	rc, err := s.reportContext(ec.inputs, ec.env.Reporter)
	if err != nil {
		return err
	}
	ds, err := s.svc.Dataset(rc, ec.dataset)
	if err != nil {
		return err
	}

	path := ec.output
	if path == "" {
		path = export.FileName(ds.Name, ec.now(), ec.format)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}

	if ec.format == "csv" {
		err = export.WriteCSV(f, ds)
	} else {
		err = export.WriteXLSX(f, ds)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return ec.env.Reporter.Line("wrote %d rows of %s to %s", len(ds.Rows), ds.Name, path)
}
