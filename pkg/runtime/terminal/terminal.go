package terminal

import (
	"io"
	"os"

	"github.com/de-tools/csat-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/csat-atlas/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	env     *commands.Env
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output    io.Writer
	ErrOutput io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ErrOutput == nil {
		opts.ErrOutput = os.Stderr
	}

	cli := &CLI{
		env: &commands.Env{Reporter: export.NewReporter(opts.Output)},
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	cli.rootCmd.SetErr(opts.ErrOutput)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// SetArgs overrides the command-line arguments, mainly for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "csat",
		Short:         "Customer satisfaction analytics",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&cli.env.ConfigPath, "config", "c", "",
		"Path to a YAML configuration file (CSAT_* environment variables override it)")

	cmd.AddCommand(commands.NewReportCmd(cli.env))
	cmd.AddCommand(commands.NewRiskCmd(cli.env))
	cmd.AddCommand(commands.NewEventsCmd(cli.env))
	cmd.AddCommand(commands.NewExportCmd(cli.env))
	cmd.AddCommand(commands.NewAnalyzeCmd(cli.env))

	return cmd
}
