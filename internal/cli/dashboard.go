package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/cryptoboard/internal/config"
	"github.com/rshade/cryptoboard/internal/listing"
	"github.com/rshade/cryptoboard/internal/logging"
	"github.com/rshade/cryptoboard/internal/market"
	"github.com/rshade/cryptoboard/internal/refresh"
	"github.com/rshade/cryptoboard/internal/tui"
	"github.com/rshade/cryptoboard/pkg/version"
)

// NewDashboardCmd creates the dashboard command, the same view the root command opens.
func NewDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the live market dashboard",
		Long: `Opens a full-screen dashboard of assets ranked by market cap.

The list refreshes on the configured interval. Columns can be sorted with the
number keys, filtered with /, and assets can be pinned as favorites with f.
When stdout is not a terminal a single snapshot table is printed instead.`,
		Args: cobra.NoArgs,
		Annotations: map[string]string{
			annotationOwnsTerminal: "true",
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd)
		},
	}
}

// runDashboard starts the interactive program, or prints a snapshot when the
// terminal cannot host it.
func runDashboard(cmd *cobra.Command) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	mode := tui.DetectOutputMode(false, false)
	if mode != tui.OutputModeInteractive {
		log.Info().Str("mode", mode.String()).Msg("terminal is not interactive, printing snapshot")
		return runSnapshot(cmd, snapshotParams{output: "table"})
	}

	cfg := config.GetGlobalConfig()
	spec, err := listing.ParseSortExpression(cfg.Display.DefaultSort)
	if err != nil {
		return fmt.Errorf("invalid display.default_sort: %w", err)
	}

	// The listener only fires after Start, which runs from the program's Init,
	// so p is assigned before it is used.
	var p *tea.Program
	sched := refresh.New(newMarketClient(cfg), refresh.Options{
		Interval: cfg.Refresh.Interval,
		Listener: tui.Listener(func(msg tea.Msg) { p.Send(msg) }),
		Logger:   log,
	})

	model := tui.NewDashboardModel(ctx, tui.Options{
		Interval:  cfg.Refresh.Interval,
		ErrorMode: tui.ErrorMode(cfg.Display.ErrorMode),
		Sort:      spec,
		Start:     sched.Start,
	})

	p = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	return runInteractiveTUI(ctx, p, sched)
}

// runInteractiveTUI runs the program and stops the scheduler once it exits.
func runInteractiveTUI(ctx context.Context, p *tea.Program, sched *refresh.Scheduler) error {
	log := logging.FromContext(ctx)

	_, runErr := p.Run()
	sched.Stop()

	if runErr != nil {
		log.Error().Err(runErr).Msg("dashboard exited with error")
		return fmt.Errorf("failed to run interactive TUI: %w", runErr)
	}
	log.Info().Msg("dashboard closed")
	return nil
}

// newMarketClient builds the markets client for cfg.
func newMarketClient(cfg *config.Config) *market.Client {
	return market.NewClient(market.ClientConfig{
		BaseURL:    cfg.API.BaseURL,
		VsCurrency: cfg.API.VsCurrency,
		PerPage:    cfg.API.PerPage,
		Timeout:    cfg.API.Timeout,
		UserAgent:  version.UserAgent(),
	})
}
