package commands

import (
	"fmt"

	"github.com/bi-tools/reportsmith/pkg/services/ingest"
	"github.com/bi-tools/reportsmith/pkg/services/render"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type IngestCmd struct {
	profilePath string
	dropDir     string
	format      string
	concurrency int
	registry    render.Registry
}

func NewIngestCmd(registry render.Registry) *cobra.Command {
	ic := &IngestCmd{registry: registry}
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Render and archive every payload in a drop directory",
		RunE:  ic.run,
	}

	cmd.Flags().StringVar(&ic.profilePath, "profile", "", "Path to the configuration profile")
	cmd.Flags().StringVar(&ic.dropDir, "dir", "", "Directory of payload JSON files to ingest")
	cmd.Flags().StringVar(&ic.format, "format", "markdown", "Output format")
	cmd.Flags().IntVar(&ic.concurrency, "concurrency", 4, "Number of payloads rendered in parallel")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("dir")

	return cmd
}

func (ic *IngestCmd) run(cmd *cobra.Command, args []string) error {
	logger := zerolog.New(cmd.ErrOrStderr()).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	d, err := openDeps(ic.profilePath, ic.format, ic.registry)
	if err != nil {
		return err
	}
	defer d.Close()

	runner := ingest.NewRunner(d.archiver, ic.dropDir, d.profile.FailedDir, ingest.RunnerConfig{
		Concurrency: ic.concurrency,
	})

	summary, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("ingest run failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Ingested %d payload(s), %d failed\n",
		summary.Processed, summary.Failed)

	return nil
}
