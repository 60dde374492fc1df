package widgets

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/cli"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/config"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/models"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/prefs"
	"github.com/Nethmini358/LifeTracker-Mobileapp-Daily-routine/internal/widget"
)

func setupTestContext(t *testing.T, cfg *config.Config) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	ctx, err := cli.NewContext(prefs.NewMemory(), cfg)
	if err != nil {
		t.Fatalf("failed to build context: %v", err)
	}
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out
}

func TestWidgetShowCmd(t *testing.T) {
	ctx, out := setupTestContext(t, nil)

	h, err := ctx.Habits.Add("Walk", 1, "", models.CategoryCount)
	if err != nil {
		t.Fatalf("add habit failed: %v", err)
	}
	if _, err := ctx.Habits.Add("Read", 1, "", models.CategoryCount); err != nil {
		t.Fatalf("add habit failed: %v", err)
	}
	if err := ctx.Habits.Increment(h.ID); err != nil {
		t.Fatalf("increment failed: %v", err)
	}

	if err := (&WidgetShowCmd{}).Run(ctx); err != nil {
		t.Fatalf("widget show failed: %v", err)
	}
	for _, want := range []string{"Habits: 1/2", "Water:  0/8", "Mood:   😐", "Updated: "} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected %q in:\n%s", want, out.String())
		}
	}
}

func TestWidgetShowCmd_JSON(t *testing.T) {
	ctx, out := setupTestContext(t, nil)

	if err := (&WidgetShowCmd{JSON: true}).Run(ctx); err != nil {
		t.Fatalf("widget show failed: %v", err)
	}
	var s widget.Summary
	if err := json.Unmarshal(out.Bytes(), &s); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out.String())
	}
	if s.WaterText != "0/8" {
		t.Errorf("expected water 0/8, got %q", s.WaterText)
	}
}

func TestWidgetRefreshCmd(t *testing.T) {
	ctx, out := setupTestContext(t, nil)
	if err := (&WidgetRefreshCmd{}).Run(ctx); err != nil {
		t.Fatalf("widget refresh failed: %v", err)
	}
	if !strings.Contains(out.String(), "No widget surfaces configured") {
		t.Errorf("unexpected output %q", out.String())
	}

	cfg := config.Default()
	cfg.Widget.File = filepath.Join(t.TempDir(), "widget.json")
	ctx, out = setupTestContext(t, cfg)
	if err := (&WidgetRefreshCmd{}).Run(ctx); err != nil {
		t.Fatalf("widget refresh failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Widget refreshed (1 surfaces)") {
		t.Errorf("unexpected output %q", out.String())
	}
	data, err := os.ReadFile(cfg.Widget.File)
	if err != nil {
		t.Fatalf("widget file not written: %v", err)
	}
	if !strings.Contains(string(data), "\"waterText\": \"0/8\"") && !strings.Contains(string(data), "\"waterText\":\"0/8\"") {
		t.Errorf("unexpected widget file: %s", data)
	}
}
