package terminal

import (
	"io"
	"os"

	"github.com/bi-tools/reportsmith/pkg/runtime/terminal/commands"
	"github.com/bi-tools/reportsmith/pkg/runtime/terminal/export"
	"github.com/bi-tools/reportsmith/pkg/services/render"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	registry render.Registry
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Registry render.Registry
	Output   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		registry: opts.Registry,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reportsmith",
		Short: "Analysis report assembly tool",
	}

	cmd.AddCommand(commands.NewRenderCmd(cli.registry, cli.reporter))
	cmd.AddCommand(commands.NewIngestCmd(cli.registry))
	cmd.AddCommand(commands.NewHistoryCmd(cli.reporter))

	return cmd
}
