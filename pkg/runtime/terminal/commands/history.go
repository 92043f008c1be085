package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/bi-tools/reportsmith/pkg/runtime/terminal/export"
	"github.com/spf13/cobra"
)

type HistoryCmd struct {
	profilePath string
	limit       int
	reporter    *export.Reporter
}

func NewHistoryCmd(reporter *export.Reporter) *cobra.Command {
	hc := &HistoryCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived reports, newest first",
		RunE:  hc.run,
	}

	cmd.Flags().StringVar(&hc.profilePath, "profile", "", "Path to the configuration profile")
	cmd.Flags().IntVar(&hc.limit, "limit", 20, "Maximum number of reports to list")

	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func (hc *HistoryCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	d, err := openDeps(hc.profilePath, "", nil)
	if err != nil {
		return err
	}
	defer d.Close()

	records, err := d.store.List(ctx, hc.limit)
	if err != nil {
		return fmt.Errorf("failed to list report history: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No archived reports found")
		return nil
	}

	return hc.reporter.HandleList(records)
}
