package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/bi-tools/reportsmith/pkg/models/api"
	"github.com/bi-tools/reportsmith/pkg/runtime/terminal/export"
	"github.com/bi-tools/reportsmith/pkg/services/render"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type RenderCmd struct {
	profilePath string
	inputPath   string
	format      string
	registry    render.Registry
	reporter    *export.Reporter
}

func NewRenderCmd(registry render.Registry, reporter *export.Reporter) *cobra.Command {
	rc := &RenderCmd{registry: registry, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render and archive a single report payload",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.profilePath, "profile", "", "Path to the configuration profile")
	cmd.Flags().StringVar(&rc.inputPath, "input", "", "Path to the report payload JSON file")
	cmd.Flags().StringVar(&rc.format, "format", "markdown", "Output format")

	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (rc *RenderCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	logger := zerolog.New(cmd.ErrOrStderr()).With().Timestamp().Logger()
	ctx = logger.WithContext(ctx)

	d, err := openDeps(rc.profilePath, rc.format, rc.registry)
	if err != nil {
		return err
	}
	defer d.Close()

	data, err := os.ReadFile(rc.inputPath)
	if err != nil {
		return fmt.Errorf("failed to read payload file: %w", err)
	}

	var payload api.ReportPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("failed to decode payload file: %w", err)
	}

	record, err := d.archiver.Assemble(ctx, payload)
	if err != nil {
		return fmt.Errorf("failed to assemble report: %w", err)
	}

	return rc.reporter.Handle(record)
}
