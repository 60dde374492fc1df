package widgets

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/cli"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/widget"
)

type WidgetCmd struct {
	Show    WidgetShowCmd    `cmd:"" help:"Print the widget summary." default:"1"`
	Refresh WidgetRefreshCmd `cmd:"" help:"Push the summary to the configured surfaces."`
	Serve   WidgetServeCmd   `cmd:"" help:"Serve the summary, add-water button and metrics over HTTP."`
}

type WidgetShowCmd struct {
	JSON bool `help:"Print as JSON."`
}

func (c *WidgetShowCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Refresher().Summary()
	if err != nil {
		return err
	}
	if c.JSON {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	ctx.Printf("Habits: %s\n", s.HabitsText)
	ctx.Printf("Water:  %s\n", s.WaterText)
	ctx.Printf("Mood:   %s\n", s.MoodEmoji)
	ctx.Println(s.LastUpdated)
	return nil
}

type WidgetRefreshCmd struct{}

func (c *WidgetRefreshCmd) Run(ctx *cli.Context) error {
	r := ctx.Refresher()
	if r.Surfaces() == 0 {
		ctx.Println("No widget surfaces configured. Set widget.file or widget.nats_url in the config.")
		return nil
	}
	if _, err := r.Refresh(context.Background()); err != nil {
		return err
	}
	ctx.Printf("✓ Widget refreshed (%d surfaces)\n", r.Surfaces())
	return nil
}

type WidgetServeCmd struct {
	Listen string `help:"Listen address (default from config)." default:""`
}

func (c *WidgetServeCmd) Run(ctx *cli.Context) error {
	addr := c.Listen
	if addr == "" {
		addr = ctx.Config.Widget.Listen
	}
	srv := widget.NewServer(ctx.Refresher(), ctx.Water)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx.Printf("Serving widget on http://%s (GET /summary, POST /water, GET /metrics)\n", addr)
	return srv.ListenAndServe(runCtx, addr)
}
